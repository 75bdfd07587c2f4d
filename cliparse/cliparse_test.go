package cliparse

import "testing"

func TestParseFlags(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("IP_HASH_SALT", "")

	cfg, err := ParseFlags([]string{"-d", "votes.db", "-ip-salt", "s3cret"})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Port != 4318 {
		t.Errorf("Expected default port 4318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("Expected default type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "votes.db" {
		t.Errorf("Unexpected database URL: %s", cfg.DatabaseURL)
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://localhost/saasan")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("IP_HASH_SALT", "env-salt")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080 from env, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("Expected postgres from env, got %s", cfg.DatabaseType)
	}
	if cfg.IPHashSalt != "env-salt" {
		t.Errorf("Expected salt from env, got %s", cfg.IPHashSalt)
	}
}

func TestParseFlagsValidation(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("IP_HASH_SALT", "")

	tests := []struct {
		name string
		args []string
	}{
		{"missing database URL", []string{"-ip-salt", "s"}},
		{"missing salt", []string{"-d", "votes.db"}},
		{"bad database type", []string{"-d", "votes.db", "-t", "mysql", "-ip-salt", "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
