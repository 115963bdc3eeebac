package services

import (
	"testing"

	"github.com/tom73737/non-zero-days-app-jkqfrv/config"
)

func newSessionService(t *testing.T, key string) *SessionService {
	t.Helper()
	svc, err := NewSessionService(config.AuthConfig{SessionKey: key, SessionTTL: 1})
	if err != nil {
		t.Fatalf("NewSessionService() error = %v", err)
	}
	return svc
}

func Test_SessionService_RequiresKey(t *testing.T) {
	_, err := NewSessionService(config.AuthConfig{})
	if err == nil {
		t.Fatal("NewSessionService() with empty key did not fail")
	}
}

func Test_SessionService_IssueAndVerify(t *testing.T) {
	svc := newSessionService(t, "test-key")

	token, err := svc.IssueToken("user-1")
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	session, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if session.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", session.UserID, "user-1")
	}

	// Second verification hits the cache and must agree.
	session, err = svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("cached VerifyToken() error = %v", err)
	}
	if session.UserID != "user-1" {
		t.Errorf("cached UserID = %q, want %q", session.UserID, "user-1")
	}
}

func Test_SessionService_RejectsTamperedToken(t *testing.T) {
	svc := newSessionService(t, "test-key")

	token, err := svc.IssueToken("user-1")
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	tampered := "A" + token[1:]
	if _, err := svc.VerifyToken(tampered); err == nil {
		t.Error("VerifyToken() accepted a tampered token")
	}

	if _, err := svc.VerifyToken("not-base64!!"); err == nil {
		t.Error("VerifyToken() accepted garbage input")
	}

	if _, err := svc.VerifyToken(""); err == nil {
		t.Error("VerifyToken() accepted an empty token")
	}
}

func Test_SessionService_RejectsForeignKey(t *testing.T) {
	issuer := newSessionService(t, "key-one")
	verifier := newSessionService(t, "key-two")

	token, err := issuer.IssueToken("user-1")
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	if _, err := verifier.VerifyToken(token); err == nil {
		t.Error("VerifyToken() accepted a token signed with a different key")
	}
}
