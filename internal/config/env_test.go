package config

import "testing"

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("APP_ADDR", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	env := LoadEnv()
	if env.AppAddr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", env.AppAddr)
	}
	if env.JWTSecret == "" {
		t.Fatal("expected a dev fallback JWT secret")
	}
	if len(env.CORSOrigins) != 0 {
		t.Fatalf("unset origins should stay empty, got %v", env.CORSOrigins)
	}
}

func TestLoadEnvParsesCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://app.example.ng, https://admin.example.ng ,,")

	env := LoadEnv()
	if len(env.CORSOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", env.CORSOrigins)
	}
	if env.CORSOrigins[0] != "https://app.example.ng" || env.CORSOrigins[1] != "https://admin.example.ng" {
		t.Fatalf("origins not trimmed/split correctly: %v", env.CORSOrigins)
	}
}
