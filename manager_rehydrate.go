package sessiongate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campaignwala/sessiongate/internal/state"
	"github.com/campaignwala/sessiongate/storage"
)

// rehydrate loads the persisted keys and installs either the recovered
// session or the guest default. Absent keys mean first visit; malformed
// profile JSON is recovered as a null profile, never an error. A persisted
// token that is already past its expiry is discarded together with the other
// keys.
func (m *Manager) rehydrate(ctx context.Context) error {
	loggedIn, _, err := m.storage.Get(ctx, storage.KeyIsLoggedIn)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	tok, _, err := m.storage.Get(ctx, storage.KeyAccessToken)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if loggedIn != "true" || tok == "" {
		m.state.Dispatch(state.HydrateAction{Session: state.Guest()})
		m.metricInc(MetricRehydrateGuest)
		return nil
	}

	if m.inspector.Expired(tok) {
		if err := m.clearPersisted(ctx); err != nil {
			return err
		}
		m.state.Dispatch(state.HydrateAction{Session: state.Guest()})
		m.metricInc(MetricTokenExpiredLocally)
		m.metricInc(MetricRehydrateGuest)
		m.emit(ctx, AuditEvent{
			EventType: EventRehydrate,
			Error:     "persisted token expired",
		})
		return nil
	}

	userType, _, err := m.storage.Get(ctx, storage.KeyUserType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	rawUser, _, err := m.storage.Get(ctx, storage.KeyUser)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	phone, _, err := m.storage.Get(ctx, storage.KeyUserPhone)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	role := ParseRole(userType)

	var profile json.RawMessage
	if rawUser != "" {
		if json.Valid([]byte(rawUser)) {
			profile = json.RawMessage(rawUser)
		} else {
			m.metricInc(MetricRehydrateCorrupt)
		}
	}

	userID := profileUserID(profile)
	if userID == "" {
		if claims, err := m.inspector.Claims(tok); err == nil {
			userID = claims.UserID
		}
	}

	perms, _ := m.grants.ForRole(string(role))

	now := time.Now()
	sess := Session{
		UserID:         userID,
		Role:           role,
		Permissions:    perms,
		Token:          tok,
		Phone:          phone,
		Profile:        profile,
		InstanceID:     uuid.NewString(),
		IssuedAt:       now,
		LastActivityAt: now,
		Authenticated:  true,
	}

	m.state.Dispatch(state.HydrateAction{Session: sess})
	m.evaluator.SetPermissions(string(role), perms)
	m.watcher.Start()

	m.metricInc(MetricRehydrateSuccess)
	m.emit(ctx, AuditEvent{
		EventType: EventRehydrate,
		UserID:    userID,
		Role:      string(role),
		SessionID: sess.InstanceID,
		Success:   true,
	})

	return nil
}

// persist writes the session's durable keys. The profile key is dropped when
// no profile is held so a later rehydrate sees it as absent.
func (m *Manager) persist(ctx context.Context, sess Session) error {
	writes := map[string]string{
		storage.KeyIsLoggedIn:  "true",
		storage.KeyUserType:    string(sess.Role),
		storage.KeyAccessToken: sess.Token,
		storage.KeyUserPhone:   sess.Phone,
	}

	for key, value := range writes {
		if err := m.storage.Set(ctx, key, value); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}

	if sess.Profile != nil {
		if err := m.storage.Set(ctx, storage.KeyUser, string(sess.Profile)); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	} else if err := m.storage.Delete(ctx, storage.KeyUser); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return nil
}

func (m *Manager) clearPersisted(ctx context.Context) error {
	if err := m.storage.Delete(ctx, storage.SessionKeys()...); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// profileUserID pulls the user identifier out of the persisted profile JSON,
// accepting the API's historical "_id" key as well as "id".
func profileUserID(profile json.RawMessage) string {
	if profile == nil {
		return ""
	}

	var fields struct {
		MongoID string `json:"_id"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal(profile, &fields); err != nil {
		return ""
	}

	if fields.MongoID != "" {
		return fields.MongoID
	}
	return fields.ID
}
