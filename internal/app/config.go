package app

import (
	"strings"
	"time"

	"github.com/learnai/learnai-backend/internal/platform/envutil"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	AllowedOrigins  []string
}

func LoadConfig() Config {
	accessTTLSeconds := envutil.Int("ACCESS_TOKEN_TTL", 3600)
	refreshTTLSeconds := envutil.Int("REFRESH_TOKEN_TTL", 86400)

	var origins []string
	if raw := envutil.String("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return Config{
		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL:  time.Duration(accessTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTTLSeconds) * time.Second,
		AllowedOrigins:  origins,
	}
}
