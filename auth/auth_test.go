// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"12 bytes", 12, 24},
		{"16 bytes", 16, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestGenerateAdminKey(t *testing.T) {
	key := GenerateAdminKey(AdminScope, "secret-salt")

	if key != GenerateAdminKey(AdminScope, "secret-salt") {
		t.Error("GenerateAdminKey() is not deterministic")
	}
	if strings.ContainsAny(key, "=+/") {
		t.Errorf("GenerateAdminKey() = %q, want URL-safe base64 without padding", key)
	}
	// 32-byte HMAC -> 43 base64 chars without padding
	if len(key) != 43 {
		t.Errorf("GenerateAdminKey() length = %d, want 43", len(key))
	}
	if key == GenerateAdminKey(AdminScope, "other-salt") {
		t.Error("different salts produced the same key")
	}
	if key == GenerateAdminKey("other-scope", "secret-salt") {
		t.Error("different scopes produced the same key")
	}
}

func TestValidateAdminKey(t *testing.T) {
	salt := "test-salt"
	validKey := GenerateAdminKey(AdminScope, salt)

	tests := []struct {
		name     string
		scope    string
		adminKey string
		salt     string
		wantErr  bool
	}{
		{"valid key", AdminScope, validKey, salt, false},
		{"wrong key", AdminScope, "wrong-key", salt, true},
		{"wrong scope", "different", validKey, salt, true},
		{"wrong salt", AdminScope, validKey, "different-salt", true},
		{"empty key", AdminScope, "", salt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.scope, tt.adminKey, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAdminKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidAdminKey {
				t.Errorf("ValidateAdminKey() error = %v, want %v", err, ErrInvalidAdminKey)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	hash := HashIP("192.168.1.1", "salt1")
	if len(hash) != 16 {
		t.Errorf("HashIP() length = %d, want 16", len(hash))
	}
	if hash != HashIP("192.168.1.1", "salt1") {
		t.Error("HashIP() is not deterministic")
	}
	if hash == HashIP("192.168.1.2", "salt1") {
		t.Error("HashIP() produced same hash for different IPs")
	}
	if hash == HashIP("192.168.1.1", "salt2") {
		t.Error("HashIP() produced same hash for different salts")
	}
}

func BenchmarkGenerateAdminKey(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateAdminKey(AdminScope, "test-salt")
	}
}
