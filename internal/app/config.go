package app

import (
	"time"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
	"github.com/alloyforge/metallurgy-backend/internal/utils"
)

type Config struct {
	HTTPAddr       string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	MLModelDir     string
}

func LoadConfig(log *logger.Logger) Config {
	httpAddr := utils.GetEnv("HTTP_ADDR", ":8000", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	mlModelDir := utils.GetEnv("ML_MODEL_DIR", "ml_models", log)
	return Config{
		HTTPAddr:       httpAddr,
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		MLModelDir:     mlModelDir,
	}
}
