package util

import (
	"strings"
	"testing"
)

func TestSessionSigner_RoundTrip(t *testing.T) {
	s := NewSessionSigner([]byte("test-secret"))

	token, id := s.Issue()
	if !strings.HasPrefix(token, id+".") {
		t.Fatalf("token %q does not embed id %q", token, id)
	}

	got, ok := s.Verify(token)
	if !ok || got != id {
		t.Fatalf("Verify(%q) = (%q, %v), want (%q, true)", token, got, ok, id)
	}
}

func TestSessionSigner_RejectsTampering(t *testing.T) {
	s := NewSessionSigner([]byte("test-secret"))

	token, _ := s.Issue()
	tampered := strings.Replace(token, ".", ".x", 1)
	if _, ok := s.Verify(tampered); ok {
		t.Fatal("tampered token must not verify")
	}

	if _, ok := s.Verify("no-signature-here"); ok {
		t.Fatal("unsigned token must not verify when a secret is set")
	}

	if _, ok := s.Verify(""); ok {
		t.Fatal("empty token must not verify")
	}
}

func TestSessionSigner_NoSecret(t *testing.T) {
	s := NewSessionSigner(nil)

	token, id := s.Issue()
	if token != id {
		t.Fatalf("without a secret the token should be the bare id, got %q", token)
	}

	got, ok := s.Verify(token)
	if !ok || got != id {
		t.Fatalf("Verify(%q) = (%q, %v)", token, got, ok)
	}
}
