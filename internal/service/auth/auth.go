package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mindmanager/mindmanager_backend/config"
	"github.com/mindmanager/mindmanager_backend/internal/domain"
	"github.com/mindmanager/mindmanager_backend/pkg/email"
	"github.com/mindmanager/mindmanager_backend/pkg/jwtauth"
	"github.com/mindmanager/mindmanager_backend/pkg/password"
)

const sessionKeyPrefix = "session:"

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     domain.Role
}

type LoginRequest struct {
	Email    string
	Password string
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in"`
}

type LoginResult struct {
	User   *domain.User
	Tokens TokenPair
}

type ResetPasswordRequest struct {
	Token       string
	NewPassword string
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, accessClaims *jwtauth.Claims) error
	ForgotPassword(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type authService struct {
	db     *gorm.DB
	rdb    *goredis.Client
	jwt    *jwtauth.Manager
	mailer *email.Client
	cfg    *config.Config
	logger *slog.Logger
}

func New(db *gorm.DB, rdb *goredis.Client, jwt *jwtauth.Manager, mailer *email.Client, cfg *config.Config, logger *slog.Logger) Service {
	return &authService{db: db, rdb: rdb, jwt: jwt, mailer: mailer, cfg: cfg, logger: logger}
}

// sessionTTL prefers the explicit session setting and falls back to the
// refresh token lifetime so a session never outlives its tokens.
func (s *authService) sessionTTL() time.Duration {
	if m := s.cfg.Authentication.SessionTTLMinutes; m > 0 {
		return time.Duration(m) * time.Minute
	}
	return s.jwt.RefreshTTL()
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := domain.NewUser(req.Name, req.Email, hash, req.Phone, req.Role)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if count > 0 {
			return ErrEmailAlreadyExists
		}
		if err := tx.Create(u).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	u, err := s.userByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrAccountDisabled
	}
	if !password.Match(u.PasswordHash, req.Password) {
		return nil, ErrPasswordIncorrect
	}

	sid := uuid.New()
	tokens, err := s.issuePair(u, sid)
	if err != nil {
		return nil, err
	}

	key := sessionKeyPrefix + sid.String()
	if err := s.rdb.Set(ctx, key, u.ID.String(), s.sessionTTL()).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", u.ID, "session_id", sid)
	return &LoginResult{User: u, Tokens: tokens}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.VerifyType(refreshToken, jwtauth.TokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.SessionID == nil {
		return nil, ErrInvalidToken
	}

	if err := s.checkSession(ctx, *claims.SessionID); err != nil {
		return nil, err
	}

	var u domain.User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if !u.IsActive {
		return nil, ErrAccountDisabled
	}

	tokens, err := s.issuePair(&u, *claims.SessionID)
	if err != nil {
		return nil, err
	}
	return &tokens, nil
}

func (s *authService) Logout(ctx context.Context, accessClaims *jwtauth.Claims) error {
	if accessClaims == nil || accessClaims.SessionID == nil {
		return nil
	}
	key := sessionKeyPrefix + accessClaims.SessionID.String()
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.logger.InfoContext(ctx, "user logged out", "user_id", accessClaims.UserID)
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, emailAddr string) error {
	u, err := s.userByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	token, err := s.jwt.IssueReset(u.ID)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	cfg := s.mailer.Config()
	msg := email.BuildPasswordResetEmail(email.PasswordResetData{
		Name:     u.Name,
		Email:    u.Email,
		ResetURL: resetURL(cfg.BaseURL, token),
		AppName:  cfg.AppName,
		TTL:      s.jwt.ResetTTL(),
	})

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "password reset email failed", "user_id", u.ID, "error", err)
		return ErrSendingEmail
	}

	s.logger.InfoContext(ctx, "password reset email sent", "user_id", u.ID)
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	claims, err := s.jwt.VerifyType(req.Token, jwtauth.TokenTypeReset)
	if err != nil {
		return ErrInvalidToken
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u domain.User
		if err := tx.First(&u, "id = ?", claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidToken
			}
			return fmt.Errorf("fetch user: %w", err)
		}

		u.SetPasswordHash(hash)
		if err := tx.Save(&u).Error; err != nil {
			return fmt.Errorf("save user: %w", err)
		}

		s.logger.InfoContext(ctx, "password reset", "user_id", u.ID)
		return nil
	})
}

// ---------------------------------------------------------------------------
// internals
// ---------------------------------------------------------------------------

func (s *authService) issuePair(u *domain.User, sid uuid.UUID) (TokenPair, error) {
	access, err := s.jwt.IssueAccess(u.ID, string(u.Role), &sid)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.jwt.IssueRefresh(u.ID, string(u.Role), &sid)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.jwt.AccessTTL().Seconds()),
	}, nil
}

func (s *authService) userByEmail(ctx context.Context, emailAddr string) (*domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).First(&u, "email = lower(?)", emailAddr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, fmt.Errorf("fetch user by email: %w", err)
	}
	return &u, nil
}

func (s *authService) checkSession(ctx context.Context, sid uuid.UUID) error {
	key := sessionKeyPrefix + sid.String()
	if err := s.rdb.Get(ctx, key).Err(); err != nil {
		if errors.Is(err, goredis.Nil) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("check session: %w", err)
	}
	return nil
}

// SessionKey builds the Redis key for a login session. The HTTP auth
// middleware uses it to reject access tokens whose session was revoked.
func SessionKey(sid uuid.UUID) string {
	return sessionKeyPrefix + sid.String()
}

func resetURL(baseURL, token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", baseURL, url.QueryEscape(token))
}
