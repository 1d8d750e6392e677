package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"secretKey": map[string]any{
			"token": "",
		},
		"rateLimit": map[string]any{
			"authRate": 0,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "SECRETKEY_TOKEN", want: "secretKey.token"},
		{envKey: "RATELIMIT_AUTHRATE", want: "rateLimit.authRate"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg := &Config{}

	if cfg.IsDevelopment() {
		t.Fatal("empty env must not count as development")
	}
	if got := cfg.TokenTTL(); got != defaultTokenTTL {
		t.Fatalf("TokenTTL() = %v, want %v", got, defaultTokenTTL)
	}
	if got := cfg.CORSOrigin(); got != defaultCORSOrigin {
		t.Fatalf("CORSOrigin() = %q, want %q", got, defaultCORSOrigin)
	}

	cfg.Env.Env = EnvDevelopment
	if !cfg.IsDevelopment() {
		t.Fatal("development env not detected")
	}
}
