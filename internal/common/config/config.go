package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AlibekovAA/tasktracker/internal/common/constants"
	commonerrors "github.com/AlibekovAA/tasktracker/internal/common/errors"
)

type Config struct {
	HTTPPort       string
	DatabaseURL    string
	SecretKey      string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
	BcryptCost     int
	LogDir         string
	LogLevel       string
	TrustedProxies []string
}

func LoadConfig() (Config, error) {
	secretKey, err := mustEnv("SECRET_KEY")
	if err != nil {
		return Config{}, err
	}

	if err := validateSecretKey(secretKey); err != nil {
		return Config{}, err
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return Config{}, err
	}

	return Config{
		HTTPPort:       getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:    databaseURL,
		SecretKey:      secretKey,
		SessionTTL:     getDurationEnv("SESSION_TTL", constants.DefaultSessionTTL),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		BcryptCost:     getIntEnv("BCRYPT_COST", constants.DefaultBcryptCost),
		LogDir:         getEnv("LOG_DIR", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		TrustedProxies: getListEnv("TRUSTED_PROXIES"),
	}, nil
}

// LoadDatabaseURL is used by commands that only need the store.
func LoadDatabaseURL() (string, error) {
	return mustEnv("DATABASE_URL")
}

func (c Config) String() string {
	return fmt.Sprintf("Config{HTTPPort: %s, SessionTTL: %s, RequestTimeout: %s, SecretKey: ***}",
		c.HTTPPort, c.SessionTTL, c.RequestTimeout)
}

func validateSecretKey(secret string) error {
	if len(secret) < constants.SecretKeyMinLength {
		return commonerrors.ErrInvalidSecretKey.WithCause(fmt.Errorf("got %d bytes", len(secret)))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("%s", key))
	}
	return v, nil
}

func getListEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}
