package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr     string
	GinMode     string
	DBDSN       string
	JWTSecret   string
	CORSOrigins []string
}

func LoadEnv() Env {
	// .env is optional; deployments set variables directly.
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "emanifest-dev-secret-change-me"
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Env{
		AppAddr:     appAddr,
		GinMode:     ginMode,
		DBDSN:       dsn,
		JWTSecret:   secret,
		CORSOrigins: origins,
	}
}
