package service

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type mapThemeStore struct {
	mu      sync.Mutex
	markers map[string]string
	getErr  error
}

func newMapThemeStore() *mapThemeStore {
	return &mapThemeStore{markers: make(map[string]string)}
}

func (s *mapThemeStore) Get(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", s.getErr
	}
	return s.markers[sessionID], nil
}

func (s *mapThemeStore) Set(ctx context.Context, sessionID, marker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers[sessionID] = marker
	return nil
}

func TestThemeService_RoundTrip(t *testing.T) {
	store := newMapThemeStore()
	svc := NewThemeService(store, nil)
	ctx := context.Background()

	if svc.Dark(ctx, "s1") {
		t.Fatal("default theme must be light")
	}

	if err := svc.SetDark(ctx, "s1", true); err != nil {
		t.Fatalf("SetDark: %v", err)
	}
	if !svc.Dark(ctx, "s1") {
		t.Fatal("dark preference did not round-trip")
	}

	if err := svc.SetDark(ctx, "s1", false); err != nil {
		t.Fatalf("SetDark: %v", err)
	}
	if svc.Dark(ctx, "s1") {
		t.Fatal("light preference did not round-trip")
	}
}

func TestThemeService_UnrecognizedMarkerIsLight(t *testing.T) {
	store := newMapThemeStore()
	store.markers["s1"] = "solarized"

	svc := NewThemeService(store, nil)
	if svc.Dark(context.Background(), "s1") {
		t.Fatal("unrecognized marker must fall back to light")
	}
}

func TestThemeService_StoreErrorIsLight(t *testing.T) {
	store := newMapThemeStore()
	store.getErr = errors.New("redis down")

	svc := NewThemeService(store, nil)
	if svc.Dark(context.Background(), "s1") {
		t.Fatal("store errors must fall back to light")
	}
}
