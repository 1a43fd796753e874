package config

import (
	"testing"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name       string
		bcryptCost string
		wantCost   int
		wantErr    bool
	}{
		{"default cost", "", 12, false},
		{"valid cost", "10", 10, false},
		{"cost too low", "9", 0, true},
		{"cost too high", "15", 0, true},
		{"invalid cost", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.bcryptCost)

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for BCRYPT_COST=%q, got none", tt.bcryptCost)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.BcryptCost != tt.wantCost {
				t.Errorf("BcryptCost = %d, expected %d", cfg.BcryptCost, tt.wantCost)
			}
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !cfg.VerifyPassword("correct horse battery staple", hash) {
		t.Error("correct password did not verify")
	}
	if cfg.VerifyPassword("wrong password", hash) {
		t.Error("wrong password verified")
	}
}

func TestVerifyPassword_WithPepper(t *testing.T) {
	withPepper := &PasswordConfig{BcryptCost: 10, Pepper: "global-secret"}
	hash, err := withPepper.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !withPepper.VerifyPassword("hunter2", hash) {
		t.Error("password with pepper did not verify")
	}

	// Same password without the pepper must not verify.
	withoutPepper := &PasswordConfig{BcryptCost: 10}
	if withoutPepper.VerifyPassword("hunter2", hash) {
		t.Error("password verified without the pepper")
	}
}

func TestVerifyAdmin(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}
	hash, err := cfg.HashPassword("admin-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	cfg.AdminHash = hash

	if !cfg.VerifyAdmin("admin-password") {
		t.Error("admin password did not verify")
	}
	if cfg.VerifyAdmin("guess") {
		t.Error("wrong admin password verified")
	}

	// No configured hash refuses everything.
	empty := &PasswordConfig{BcryptCost: 10}
	if empty.VerifyAdmin("admin-password") {
		t.Error("VerifyAdmin accepted with no configured hash")
	}
}
