package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	password := "correcthorsebatterystaple"

	hash, err := HashWithCost(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashWithCost() error = %v", err)
	}

	if !strings.HasPrefix(hash, "$2a$") && !strings.HasPrefix(hash, "$2b$") {
		t.Errorf("Hash() format invalid, got %s", hash)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost() error = %v", err)
	}
	if cost != bcrypt.MinCost {
		t.Errorf("Cost() = %d, want %d", cost, bcrypt.MinCost)
	}
}

func TestHashTooLong(t *testing.T) {
	long := strings.Repeat("a", 73)
	if _, err := HashWithCost(long, bcrypt.MinCost); err != ErrTooLong {
		t.Errorf("HashWithCost() error = %v, want ErrTooLong", err)
	}
}

func TestVerify(t *testing.T) {
	password := "mysecretpassword"

	hash, err := HashWithCost(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashWithCost() error = %v", err)
	}

	tests := []struct {
		name     string
		hash     string
		password string
		wantErr  error
	}{
		{
			name:     "correct password",
			hash:     hash,
			password: password,
			wantErr:  nil,
		},
		{
			name:     "wrong password",
			hash:     hash,
			password: "wrongpassword",
			wantErr:  ErrMismatch,
		},
		{
			name:     "invalid hash format",
			hash:     "notahash",
			password: password,
			wantErr:  ErrInvalidHash,
		},
		{
			name:     "empty password against valid hash",
			hash:     hash,
			password: "",
			wantErr:  ErrMismatch,
		},
		{
			name:     "empty hash",
			hash:     "",
			password: password,
			wantErr:  ErrInvalidHash,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.hash, tt.password)
			if err != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHashUniqueness(t *testing.T) {
	password := "samepassword"

	hash1, _ := HashWithCost(password, bcrypt.MinCost)
	hash2, _ := HashWithCost(password, bcrypt.MinCost)

	if hash1 == hash2 {
		t.Error("Hash() should produce unique hashes for same password (different salts)")
	}

	// Both should still verify
	if err := Verify(hash1, password); err != nil {
		t.Errorf("hash1 verification failed: %v", err)
	}
	if err := Verify(hash2, password); err != nil {
		t.Errorf("hash2 verification failed: %v", err)
	}
}

func TestNeedsRehash(t *testing.T) {
	password := "testpassword"

	// Hash below the configured cost should need a rehash
	oldHash, _ := HashWithCost(password, bcrypt.MinCost)
	if !NeedsRehash(oldHash) {
		t.Error("NeedsRehash() should return true for low cost hash")
	}

	if !NeedsRehash("notahash") {
		t.Error("NeedsRehash() should return true for invalid hash")
	}
}

func TestSetCost(t *testing.T) {
	defer SetCost(DefaultCost)

	SetCost(100) // out of range
	if defaultCost != DefaultCost {
		t.Errorf("SetCost(100) should fall back to default, got %d", defaultCost)
	}

	SetCost(bcrypt.MinCost)
	if defaultCost != bcrypt.MinCost {
		t.Errorf("SetCost(%d) = %d", bcrypt.MinCost, defaultCost)
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   int
	}{
		{"default length (0)", 0, 16},
		{"custom length 8", 8, 8},
		{"custom length 32", 32, 32},
		{"negative length", -5, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.length)
			if len(got) != tt.want {
				t.Errorf("Generate(%d) length = %d, want %d", tt.length, len(got), tt.want)
			}
		})
	}

	// Test uniqueness
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		p := Generate(16)
		if seen[p] {
			t.Error("Generate() produced duplicate password")
		}
		seen[p] = true
	}
}

func TestMatch(t *testing.T) {
	password := "testpassword"
	hash, _ := HashWithCost(password, bcrypt.MinCost)

	if !Match(hash, password) {
		t.Error("Match() = false, want true for correct password")
	}

	if Match(hash, "wrongpassword") {
		t.Error("Match() = true, want false for wrong password")
	}

	if Match("invalidhash", password) {
		t.Error("Match() = true, want false for invalid hash")
	}
}

func BenchmarkHash(b *testing.B) {
	password := "benchmarkpassword"
	for i := 0; i < b.N; i++ {
		HashWithCost(password, bcrypt.MinCost)
	}
}
