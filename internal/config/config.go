package config

import (
	"os"
	"strconv"
)

// Config for the Homemates HTTP API.
type Config struct {
	HTTP struct {
		Addr string
	}

	// DataDir holds the flat-file stores (properties.csv, tenants.csv,
	// users.json, leads.json, calls.json).
	DataDir string

	// AuthEnabled=false serves every request under the guest identity.
	AuthEnabled bool
	TokenSecret string

	Redis struct {
		Enabled  bool
		Addr     string
		Password string
		DB       int
	}

	Log struct {
		Level  string
		Format string
	}

	VoiceAgent VendorConfig
	Dialer     VendorConfig
	Search     SearchConfig
}

// VendorConfig points at one external platform.
type VendorConfig struct {
	BaseURL string
	APIKey  string
}

// SearchConfig for the web-search/extraction API.
type SearchConfig struct {
	BaseURL    string
	APIKey     string
	NumResults int
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.DataDir = getEnv("DATA_DIR", "./data")

	cfg.AuthEnabled = getEnv("AUTH_ENABLED", "false") == "true"
	cfg.TokenSecret = getEnv("TOKEN_SECRET", "")

	// Default to true for local dev: when Redis is unreachable the server
	// falls back to an in-memory session store instead of failing startup.
	cfg.Redis.Enabled = getEnv("REDIS_ENABLED", "true") == "true"
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.VoiceAgent.BaseURL = getEnv("RETELL_BASE_URL", "https://api.retellai.com")
	cfg.VoiceAgent.APIKey = getEnv("RETELL_API_KEY", "")

	cfg.Dialer.BaseURL = getEnv("BLAND_BASE_URL", "https://api.bland.ai")
	cfg.Dialer.APIKey = getEnv("BLAND_API_KEY", "")

	cfg.Search.BaseURL = getEnv("EXA_BASE_URL", "https://api.exa.ai")
	cfg.Search.APIKey = getEnv("EXA_API_KEY", "")
	cfg.Search.NumResults = parseInt(getEnv("EXA_NUM_RESULTS", "10"), 10)

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
