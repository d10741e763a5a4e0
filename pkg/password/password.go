package password

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"

	"github.com/mindmanager/mindmanager_backend/config"
)

var (
	ErrInvalidHash = errors.New("invalid password hash format")
	ErrMismatch    = errors.New("password does not match")
	ErrTooLong     = errors.New("password exceeds 72 bytes")
)

// DefaultCost is the bcrypt cost factor used when no cost is configured.
const DefaultCost = 12

var defaultCost = DefaultCost

// SetCost overrides the cost factor used by Hash. Values outside the valid
// bcrypt range fall back to DefaultCost.
func SetCost(cost int) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	defaultCost = cost
}

// Configure applies the central password config to this package.
func Configure(c config.PasswordConfig) {
	SetCost(c.Cost)
}

// Hash generates a bcrypt hash of the password using the configured cost.
func Hash(password string) (string, error) {
	return HashWithCost(password, defaultCost)
}

// HashWithCost generates a bcrypt hash of the password using a custom cost.
func HashWithCost(password string, cost int) (string, error) {
	if len(password) > 72 {
		return "", ErrTooLong
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify compares a bcrypt hash against a candidate password.
// Returns nil on match, ErrMismatch on wrong password, ErrInvalidHash on
// a hash that is not valid bcrypt output.
func Verify(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return ErrInvalidHash
	}
}

// Match reports whether the password matches the hash.
func Match(hash, password string) bool {
	return Verify(hash, password) == nil
}

// NeedsRehash reports whether the hash was produced with a cost lower than
// the configured one and should be regenerated on next login.
func NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return true
	}
	return cost < defaultCost
}

const generateAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

// Generate returns a random password of the given length.
// A non-positive length yields a 16 character password.
func Generate(length int) string {
	if length <= 0 {
		length = 16
	}

	out := make([]byte, length)
	max := big.NewInt(int64(len(generateAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failures are unrecoverable
			panic(fmt.Sprintf("password: rand failed: %v", err))
		}
		out[i] = generateAlphabet[n.Int64()]
	}
	return string(out)
}
