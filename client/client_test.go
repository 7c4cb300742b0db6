package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessiongate "github.com/campaignwala/sessiongate"
)

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "9000000001", body["phone"])

		writeEnvelope(w, http.StatusOK, Response{
			Success: true,
			Data:    json.RawMessage(`{"token":"tok-1","user":{"_id":"u-1","role":"moderator","phone":"9000000001"}}`),
		})
	}))
	defer srv.Close()

	payload, err := New(srv.URL).Login(context.Background(), sessiongate.Credentials{Phone: "9000000001", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", payload.UserID)
	assert.Equal(t, sessiongate.RoleModerator, payload.Role)
	assert.Equal(t, "tok-1", payload.Token)
	assert.Equal(t, "9000000001", payload.Phone)
	assert.NotNil(t, payload.Profile)
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, Response{Success: false, Message: "wrong password"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login(context.Background(), sessiongate.Credentials{Phone: "9000000001", Password: "nope"})
	assert.ErrorIs(t, err, sessiongate.ErrInvalidCredentials)
}

func TestLoginRejectedEnvelope(t *testing.T) {
	// Some endpoints answer 200 with success=false; that is still a
	// credential rejection, not a transport fault.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusOK, Response{Success: false, Message: "account disabled"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login(context.Background(), sessiongate.Credentials{})
	assert.ErrorIs(t, err, sessiongate.ErrInvalidCredentials)
}

func TestLoginServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login(context.Background(), sessiongate.Credentials{})
	assert.ErrorIs(t, err, sessiongate.ErrNetworkFailure)
}

func TestLoginConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := New(srv.URL).Login(context.Background(), sessiongate.Credentials{})
	assert.ErrorIs(t, err, sessiongate.ErrNetworkFailure)
}

func TestLogout(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, Response{Success: true})
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL).Logout(context.Background(), "tok-1"))
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestLogoutTreats401AsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, Response{Success: false})
	}))
	defer srv.Close()

	assert.NoError(t, New(srv.URL).Logout(context.Background(), "stale-token"))
}

func TestRefreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/refresh", r.URL.Path)
		writeEnvelope(w, http.StatusOK, Response{
			Success: true,
			Data:    json.RawMessage(`{"token":"tok-2"}`),
		})
	}))
	defer srv.Close()

	tok, err := New(srv.URL).RefreshToken(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
}

func TestRefreshTokenUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, Response{Success: false})
	}))
	defer srv.Close()

	_, err := New(srv.URL).RefreshToken(context.Background(), "tok-1")
	assert.True(t, errors.Is(err, sessiongate.ErrUnauthorized))
}

func writeEnvelope(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
