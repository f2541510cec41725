// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("ADMIN_KEY_SALT", "test-salt")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabasePostgres {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ADMIN_KEY_SALT", "")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-admin-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite {
		t.Errorf("expected default sqlite, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		wantErr bool
	}{
		{
			name:    "missing database url",
			env:     map[string]string{"ADMIN_KEY_SALT": "s"},
			wantErr: true,
		},
		{
			name: "memory needs no url",
			env:  map[string]string{"ADMIN_KEY_SALT": "s", "DATABASE_TYPE": "memory"},
		},
		{
			name:    "missing admin salt",
			args:    []string{"-d", "file:test.db"},
			wantErr: true,
		},
		{
			name:    "unknown database type",
			args:    []string{"-d", "x", "-t", "mysql", "-admin-salt", "s"},
			wantErr: true,
		},
		{
			name:    "invalid port env",
			env:     map[string]string{"PORT": "abc"},
			args:    []string{"-d", "x", "-admin-salt", "s"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "ADMIN_KEY_SALT"} {
				t.Setenv(key, tt.env[key])
			}

			_, err := ParseFlags(tt.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("POLL_TEST_FROM_FILE=file\nPOLL_TEST_PRESET=file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("POLL_TEST_PRESET", "env")
	t.Cleanup(func() { os.Unsetenv("POLL_TEST_FROM_FILE") })

	if err := LoadEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}

	if got := os.Getenv("POLL_TEST_FROM_FILE"); got != "file" {
		t.Errorf("expected value from file, got %q", got)
	}
	if got := os.Getenv("POLL_TEST_PRESET"); got != "env" {
		t.Errorf("existing env should win, got %q", got)
	}
}

func TestLoadEnvFeedsParseFlags(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "ADMIN_KEY_SALT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	body := "PORT=9000\nDATABASE_TYPE=memory\nADMIN_KEY_SALT=from-file\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := LoadEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabaseMemory {
		t.Errorf("expected memory database, got %q", cfg.DatabaseType)
	}
	if cfg.AdminKeySalt != "from-file" {
		t.Errorf("expected salt from file, got %q", cfg.AdminKeySalt)
	}
}
