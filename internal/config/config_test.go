package config

import (
	"os"
	"testing"
	"time"
)

func setRequiredVars(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("COLLAB_SECRET_KEY", "sk_collab_test")
	t.Setenv("VOICE_API_KEY", "voice-key-test")
	t.Setenv("VOICE_DOMAIN", "pairdojo.daily.co")
}

func TestLoad_WithRequiredVars(t *testing.T) {
	setRequiredVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.JWTSecret != "test-secret" {
		t.Errorf("expected JWTSecret to be set, got %s", cfg.JWTSecret)
	}
	if cfg.VoiceDomain != "pairdojo.daily.co" {
		t.Errorf("expected VoiceDomain to be set, got %s", cfg.VoiceDomain)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{"JWT_SECRET", "COLLAB_SECRET_KEY", "VOICE_API_KEY", "VOICE_DOMAIN"} {
		os.Unsetenv(key)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing required vars, got nil")
	}
}

func TestConfig_Defaults(t *testing.T) {
	setRequiredVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}
	if cfg.AppPort != 8080 {
		t.Errorf("expected default AppPort 8080, got %d", cfg.AppPort)
	}
	if cfg.TokenTTL != 168*time.Hour {
		t.Errorf("expected default TokenTTL 168h, got %s", cfg.TokenTTL)
	}
	if cfg.KickDuration != 10*time.Minute {
		t.Errorf("expected default KickDuration 10m, got %s", cfg.KickDuration)
	}
	if cfg.QuickJoinThreshold != 5 {
		t.Errorf("expected default QuickJoinThreshold 5, got %d", cfg.QuickJoinThreshold)
	}
	if cfg.AnalyticsEnabled() {
		t.Error("analytics should be disabled without REDIS_URL")
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
}

func TestConfig_AnalyticsEnabled(t *testing.T) {
	setRequiredVars(t)
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cfg.AnalyticsEnabled() {
		t.Error("analytics should be enabled with REDIS_URL set")
	}
}
