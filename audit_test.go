package sessiongate

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/campaignwala/sessiongate/storage/memory"
)

func TestFileSinkWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	sink := NewFileSink(FileSinkConfig{Path: path, MaxSizeMB: 1})

	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
		EventType: EventLogin,
		UserID:    "u-1",
		Success:   true,
	})
	sink.Emit(context.Background(), AuditEvent{
		EventType: EventLogout,
		UserID:    "u-1",
	})
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read audit log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("wrote %d lines, want 2", len(lines))
	}

	var event AuditEvent
	if err := json.Unmarshal([]byte(lines[0]), &event); err != nil {
		t.Fatalf("line not valid JSON: %v", err)
	}
	if event.EventType != EventLogin || event.UserID != "u-1" || !event.Success {
		t.Fatalf("event = %+v", event)
	}
}

func TestAuditEventsFlowThroughManager(t *testing.T) {
	sink := NewChannelSink(32)

	m, err := New().
		WithStorage(memory.NewStore()).
		WithAuthClient(&fakeClient{loginPayload: moderatorPayload()}).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := m.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := m.Login(context.Background(), Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	_ = m.Logout(context.Background())
	m.Close()

	var types []string
	for {
		select {
		case event := <-sink.Events():
			types = append(types, event.EventType)
			continue
		default:
		}
		break
	}

	want := map[string]bool{EventLogin: false, EventLogout: false}
	for _, typ := range types {
		if _, ok := want[typ]; ok {
			want[typ] = true
		}
	}
	for typ, seen := range want {
		if !seen {
			t.Fatalf("event %q not emitted (got %v)", typ, types)
		}
	}
}
