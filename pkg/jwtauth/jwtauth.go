package jwtauth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mindmanager/mindmanager_backend/config"
)

type Config struct {
	Secret []byte

	Issuer   string
	Audience string

	AccessTTL  time.Duration
	RefreshTTL time.Duration
	ResetTTL   time.Duration
}

type Manager struct {
	cfg    Config
	parser *jwt.Parser
}

func New(cfg Config) (*Manager, error) {
	if len(cfg.Secret) < 32 {
		return nil, ErrConfig{Msg: "secret must be at least 32 bytes"}
	}
	if cfg.Issuer == "" {
		return nil, ErrConfig{Msg: "Issuer is required"}
	}
	if cfg.Audience == "" {
		return nil, ErrConfig{Msg: "Audience is required"}
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 30 * 24 * time.Hour
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = 30 * time.Minute
	}

	p := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
		jwt.WithExpirationRequired(),
	)

	return &Manager{cfg: cfg, parser: p}, nil
}

// NewJWTManager creates a new JWT manager from central config.
// Returns an error if the configuration is invalid.
func NewJWTManager(cfg *config.Config) (*Manager, error) {
	j := cfg.Authentication.JWT

	return New(Config{
		Secret:     []byte(j.Secret),
		Issuer:     j.Issuer,
		Audience:   j.Audience,
		AccessTTL:  time.Duration(j.AccessTTLMinutes) * time.Minute,
		RefreshTTL: time.Duration(j.RefreshTTLDays) * 24 * time.Hour,
		ResetTTL:   time.Duration(j.ResetTTLMinutes) * time.Minute,
	})
}

func (m *Manager) AccessTTL() time.Duration  { return m.cfg.AccessTTL }
func (m *Manager) RefreshTTL() time.Duration { return m.cfg.RefreshTTL }
func (m *Manager) ResetTTL() time.Duration   { return m.cfg.ResetTTL }

func (m *Manager) IssueAccess(userID uuid.UUID, role string, sessionID *uuid.UUID) (string, error) {
	return m.issue(TokenTypeAccess, userID, role, sessionID, m.cfg.AccessTTL)
}

func (m *Manager) IssueRefresh(userID uuid.UUID, role string, sessionID *uuid.UUID) (string, error) {
	return m.issue(TokenTypeRefresh, userID, role, sessionID, m.cfg.RefreshTTL)
}

// IssueReset creates a short-lived token embedded in password reset emails.
func (m *Manager) IssueReset(userID uuid.UUID) (string, error) {
	return m.issue(TokenTypeReset, userID, "", nil, m.cfg.ResetTTL)
}

func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	var wc wireClaims

	_, err := m.parser.ParseWithClaims(tokenStr, &wc, func(t *jwt.Token) (any, error) {
		return m.cfg.Secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken{Err: err}
	}

	claims, err := fromWire(&wc)
	if err != nil {
		return nil, ErrInvalidToken{Err: err}
	}

	return claims, nil
}

// VerifyType checks the token and additionally requires a specific token type.
func (m *Manager) VerifyType(tokenStr string, tt TokenType) (*Claims, error) {
	claims, err := m.Verify(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Type != tt {
		return nil, ErrInvalidToken{Err: fmt.Errorf("token type %q, want %q", claims.Type, tt)}
	}
	return claims, nil
}

func (m *Manager) issue(tt TokenType, userID uuid.UUID, role string, sessionID *uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()

	wc := wireClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Audience:  jwt.ClaimStrings{m.cfg.Audience},
			Subject:   userID.String(),
			ID:        randHex(16),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Type: tt,
		UID:  userID.String(),
		Role: role,
	}
	if sessionID != nil {
		wc.SID = sessionID.String()
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, wc)
	return tok.SignedString(m.cfg.Secret)
}

func randHex(nBytes int) string {
	b := make([]byte, nBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func fromWire(wc *wireClaims) (*Claims, error) {
	if wc.UID == "" {
		return nil, errors.New("missing uid claim")
	}
	uid, err := uuid.Parse(wc.UID)
	if err != nil {
		return nil, err
	}

	out := &Claims{
		Type:    wc.Type,
		UserID:  uid,
		Role:    wc.Role,
		Issuer:  wc.Issuer,
		Subject: wc.Subject,
		TokenID: wc.ID,
	}
	if len(wc.Audience) > 0 {
		out.Audience = wc.Audience[0]
	}
	if wc.IssuedAt != nil {
		out.IssuedAt = wc.IssuedAt.Time
	}
	if wc.NotBefore != nil {
		out.NotBefore = wc.NotBefore.Time
	}
	if wc.ExpiresAt != nil {
		out.ExpiresAt = wc.ExpiresAt.Time
	}

	// sid is optional
	if wc.SID != "" {
		sid, err := uuid.Parse(wc.SID)
		if err != nil {
			return nil, err
		}
		out.SessionID = &sid
	}

	return out, nil
}
