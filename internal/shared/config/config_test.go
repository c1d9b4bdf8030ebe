package config

import "testing"

func clearSecretEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("REFRESH_TOKEN_SECRET", "")
}

func TestLoadDevFallsBackToDevSecrets(t *testing.T) {
	clearSecretEnv(t)
	t.Setenv("ENV", "dev")

	cfg := Load()
	if cfg.AccessTokenSecret != "dev-access-secret" {
		t.Fatalf("access secret = %q, want dev default", cfg.AccessTokenSecret)
	}
	if cfg.RefreshTokenSecret != "dev-refresh-secret" {
		t.Fatalf("refresh secret = %q, want dev default", cfg.RefreshTokenSecret)
	}
}

func TestLoadProductionLeavesMissingSecretsEmpty(t *testing.T) {
	clearSecretEnv(t)
	t.Setenv("ENV", "production")

	cfg := Load()
	if cfg.AccessTokenSecret != "" || cfg.RefreshTokenSecret != "" {
		t.Fatalf("production secrets = %q / %q, want empty so bootstrap rejects them",
			cfg.AccessTokenSecret, cfg.RefreshTokenSecret)
	}
}

func TestLoadProductionKeepsProvidedSecrets(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("ACCESS_TOKEN_SECRET", "prod-access")
	t.Setenv("REFRESH_TOKEN_SECRET", "prod-refresh")

	cfg := Load()
	if cfg.AccessTokenSecret != "prod-access" || cfg.RefreshTokenSecret != "prod-refresh" {
		t.Fatalf("secrets = %q / %q, want the provided values",
			cfg.AccessTokenSecret, cfg.RefreshTokenSecret)
	}
}

func TestNormalizeEnv(t *testing.T) {
	cases := map[string]string{
		"prod":        "production",
		" Production": "production",
		"staging":     "staging",
		"development": "dev",
		"":            "dev",
		"whatever":    "dev",
	}
	for raw, want := range cases {
		if got := normalizeEnv(raw); got != want {
			t.Errorf("normalizeEnv(%q) = %q, want %q", raw, got, want)
		}
	}
}
