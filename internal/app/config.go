package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
	"github.com/yardvine/yardvine-backend/internal/utils"
)

type Config struct {
	ServiceName     string
	Environment     string
	Version         string
	Port            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// configFile is the optional YAML overlay pointed at by CONFIG_PATH.
// Environment variables win over file values.
type configFile struct {
	ServiceName     string `yaml:"service_name"`
	Environment     string `yaml:"environment"`
	Version         string `yaml:"version"`
	Port            string `yaml:"port"`
	JWTSecretKey    string `yaml:"jwt_secret_key"`
	AccessTokenTTL  int    `yaml:"access_token_ttl"`
	RefreshTokenTTL int    `yaml:"refresh_token_ttl"`
}

func LoadConfig(log *logger.Logger) (Config, error) {
	var file configFile
	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
		log.Info("Loaded config file", "path", path)
	}

	pick := func(envKey, fileVal, def string) string {
		if v, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(v) != "" {
			return v
		}
		if strings.TrimSpace(fileVal) != "" {
			return fileVal
		}
		return def
	}
	pickInt := func(envKey string, fileVal, def int) int {
		if _, ok := os.LookupEnv(envKey); ok {
			return utils.GetEnvAsInt(envKey, def, log)
		}
		if fileVal > 0 {
			return fileVal
		}
		return def
	}

	return Config{
		ServiceName:     pick("SERVICE_NAME", file.ServiceName, "yardvine-backend"),
		Environment:     pick("ENVIRONMENT", file.Environment, "development"),
		Version:         pick("SERVICE_VERSION", file.Version, "dev"),
		Port:            pick("PORT", file.Port, "8080"),
		JWTSecretKey:    pick("JWT_SECRET_KEY", file.JWTSecretKey, "defaultsecret"),
		AccessTokenTTL:  time.Duration(pickInt("ACCESS_TOKEN_TTL", file.AccessTokenTTL, 3600)) * time.Second,
		RefreshTokenTTL: time.Duration(pickInt("REFRESH_TOKEN_TTL", file.RefreshTokenTTL, 86400)) * time.Second,
	}, nil
}
