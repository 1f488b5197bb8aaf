package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Host string
	Port int

	// ServerURL is the OpenPIMS login endpoint used when the panel form
	// leaves the server field empty.
	ServerURL string

	UserAgent string
	TimeoutMs int

	// APIKey guards the control API when set. The proxy path itself is
	// never gated by it.
	APIKey string

	Debug string

	DataDir string
}

var (
	cfg  *Config
	once sync.Once
)

const DefaultServerURL = "https://me.openpims.de"

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()

		cfg = &Config{
			Host:      getEnv("HOST", "127.0.0.1"),
			Port:      getEnvInt("PORT", 3128),
			ServerURL: getEnv("SERVER_URL", DefaultServerURL),
			UserAgent: getEnv("USER_AGENT", "openpims-gateway/1.0"),
			TimeoutMs: getEnvInt("TIMEOUT", 30000),
			APIKey:    getEnv("API_KEY", ""),
			Debug:     getEnv("DEBUG", "off"),
			DataDir:   getEnv("DATA_DIR", "./data"),
		}

		for i, arg := range os.Args[1:] {
			if arg == "-debug" && i+1 < len(os.Args[1:]) {
				cfg.Debug = os.Args[i+2]
			}
		}
	})

	return cfg
}

func Get() *Config {
	if cfg == nil {
		return Load()
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
