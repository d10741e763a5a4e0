package jwtauth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := New(Config{
		Secret:     []byte(strings.Repeat("k", 32)),
		Issuer:     "mindmanager",
		Audience:   "mindmanager-api",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
		ResetTTL:   time.Minute,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"short secret", Config{Secret: []byte("short"), Issuer: "i", Audience: "a"}},
		{"missing issuer", Config{Secret: []byte(strings.Repeat("k", 32)), Audience: "a"}},
		{"missing audience", Config{Secret: []byte(strings.Repeat("k", 32)), Issuer: "i"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("New() expected error, got nil")
			}
		})
	}
}

func TestIssueAndVerify(t *testing.T) {
	m := testManager(t)
	uid := uuid.New()
	sid := uuid.New()

	tok, err := m.IssueAccess(uid, "Psychologist", &sid)
	if err != nil {
		t.Fatalf("IssueAccess() error = %v", err)
	}

	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}

	if claims.Type != TokenTypeAccess {
		t.Errorf("Type = %q, want access", claims.Type)
	}
	if claims.UserID != uid {
		t.Errorf("UserID = %v, want %v", claims.UserID, uid)
	}
	if claims.Role != "Psychologist" {
		t.Errorf("Role = %q, want Psychologist", claims.Role)
	}
	if claims.SessionID == nil || *claims.SessionID != sid {
		t.Errorf("SessionID = %v, want %v", claims.SessionID, sid)
	}
	if claims.Issuer != "mindmanager" {
		t.Errorf("Issuer = %q", claims.Issuer)
	}
	if claims.TokenID == "" {
		t.Error("TokenID should not be empty")
	}
	if claims.IsExpired() {
		t.Error("freshly issued token should not be expired")
	}
}

func TestVerifyType(t *testing.T) {
	m := testManager(t)
	uid := uuid.New()

	refresh, err := m.IssueRefresh(uid, "Client", nil)
	if err != nil {
		t.Fatalf("IssueRefresh() error = %v", err)
	}

	if _, err := m.VerifyType(refresh, TokenTypeRefresh); err != nil {
		t.Errorf("VerifyType(refresh) error = %v", err)
	}
	if _, err := m.VerifyType(refresh, TokenTypeAccess); err == nil {
		t.Error("VerifyType(refresh as access) should fail")
	}
}

func TestVerifyRejectsTampered(t *testing.T) {
	m := testManager(t)
	tok, _ := m.IssueAccess(uuid.New(), "Admin", nil)

	tampered := tok[:len(tok)-2] + "xx"
	if _, err := m.Verify(tampered); err == nil {
		t.Error("Verify() should reject tampered token")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m := testManager(t)
	other, err := New(Config{
		Secret:   []byte(strings.Repeat("x", 32)),
		Issuer:   "mindmanager",
		Audience: "mindmanager-api",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tok, _ := m.IssueAccess(uuid.New(), "Admin", nil)
	if _, err := other.Verify(tok); err == nil {
		t.Error("Verify() should reject token signed with another secret")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	m, err := New(Config{
		Secret:     []byte(strings.Repeat("k", 32)),
		Issuer:     "mindmanager",
		Audience:   "mindmanager-api",
		AccessTTL:  -time.Minute,
		RefreshTTL: time.Hour,
		ResetTTL:   time.Minute,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	// New clamps non-positive TTLs to defaults, so issue manually
	tok, err := m.issue(TokenTypeAccess, uuid.New(), "Admin", nil, -time.Minute)
	if err != nil {
		t.Fatalf("issue() error = %v", err)
	}

	if _, err := m.Verify(tok); err == nil {
		t.Error("Verify() should reject expired token")
	}
}

func TestIssueReset(t *testing.T) {
	m := testManager(t)
	uid := uuid.New()

	tok, err := m.IssueReset(uid)
	if err != nil {
		t.Fatalf("IssueReset() error = %v", err)
	}

	claims, err := m.VerifyType(tok, TokenTypeReset)
	if err != nil {
		t.Fatalf("VerifyType() error = %v", err)
	}
	if claims.UserID != uid {
		t.Errorf("UserID = %v, want %v", claims.UserID, uid)
	}
	if claims.Role != "" {
		t.Errorf("reset token should carry no role, got %q", claims.Role)
	}
	if claims.SessionID != nil {
		t.Error("reset token should carry no session")
	}
}
