package rediskv

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/campaignwala/sessiongate/storage"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, "test"), mr
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, ok, err := s.Get(ctx, storage.KeyAccessToken)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("missing key reported present")
	}

	if err := s.Set(ctx, storage.KeyAccessToken, "tok"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	value, ok, err := s.Get(ctx, storage.KeyAccessToken)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || value != "tok" {
		t.Fatalf("Get = %q, %v", value, ok)
	}

	if err := s.Delete(ctx, storage.KeyAccessToken); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, ok, _ = s.Get(ctx, storage.KeyAccessToken)
	if ok {
		t.Fatal("deleted key reported present")
	}
}

func TestKeysAreNamespaced(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	if err := s.Set(ctx, storage.KeyIsLoggedIn, "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if !mr.Exists("test:" + storage.KeyIsLoggedIn) {
		t.Fatal("key not written under the configured prefix")
	}
}

func TestDeleteNoKeysIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Delete(context.Background()); err != nil {
		t.Fatalf("Delete with no keys: %v", err)
	}
}

func TestTransportErrorWrapped(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	mr.Close()

	_, _, err := s.Get(ctx, storage.KeyAccessToken)
	if !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("Get error = %v, want ErrRedisUnavailable", err)
	}
	if err := s.Set(ctx, storage.KeyAccessToken, "tok"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("Set error = %v, want ErrRedisUnavailable", err)
	}
}
