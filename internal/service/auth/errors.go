package auth

import "github.com/mindmanager/mindmanager_backend/internal/fault"

var (
	ErrEmailAlreadyExists = fault.Business("EMAIL_ALREADY_EXISTS", "email is already registered")
	ErrEmailNotFound      = fault.NotFound("EMAIL_NOT_FOUND", "no account with this email")
	ErrPasswordIncorrect  = fault.Unauthorized("PASSWORD_INCORRECT", "password is incorrect")
	ErrAccountDisabled    = fault.Unauthorized("ACCOUNT_DISABLED", "account is deactivated")
	ErrInvalidToken       = fault.Unauthorized("INVALID_TOKEN", "token is invalid or expired")
	ErrSessionNotFound    = fault.Unauthorized("SESSION_NOT_FOUND", "session is expired or revoked")
	ErrSendingEmail       = fault.Business("ERROR_SENDING_EMAIL", "could not send email")
)
