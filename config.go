package learnhub

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the service configuration, read from the environment
type Config struct {
	Port    string
	Mode    string
	Verbose bool

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	SearchAPIKey   string
	SearchEngineID string
	YouTubeAPIKey  string

	RequestTimeout time.Duration
	SessionTTL     time.Duration

	StoreDriver string
	SQLiteDSN   string

	SessionSecret string
	LLMLogDir     string
	CORSOrigins   []string
}

// LoadConfig reads .env files (when present) into the environment and then
// builds a Config from it. With no arguments ".env" is tried.
func LoadConfig(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	return Config{
		Port:    envString("PORT", "8180"),
		Mode:    envString("APP_MODE", "dev"),
		Verbose: envBool("VERBOSE", false),

		OpenAIAPIKey:  envString("OPENAI_API_KEY", ""),
		OpenAIBaseURL: envString("OPENAI_BASE_URL", ""),
		OpenAIModel:   envString("OPENAI_MODEL", "gpt-4o-mini"),

		SearchAPIKey:   envString("GOOGLE_SEARCH_API_KEY", ""),
		SearchEngineID: envString("GOOGLE_SEARCH_ENGINE_ID", ""),
		YouTubeAPIKey:  envString("YOUTUBE_API_KEY", ""),

		RequestTimeout: envDuration("REQUEST_TIMEOUT", 60*time.Second),
		SessionTTL:     envDuration("QUIZ_SESSION_TTL", 2*time.Hour),

		StoreDriver: envString("STORE_DRIVER", "memory"),
		SQLiteDSN:   envString("SQLITE_DSN", DefaultSQLiteDSN),

		SessionSecret: envString("SESSION_SECRET", ""),
		LLMLogDir:     envString("LLM_LOG_DIR", ""),
		CORSOrigins:   envList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5001"}),
	}, nil
}

// Validate reports every missing key. The search keys are only needed when
// the content aggregator runs.
func (c Config) Validate(needSearch bool) error {
	var errs []error
	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, fmt.Errorf("%s environment variable is required", name))
		}
	}

	require("OPENAI_API_KEY", c.OpenAIAPIKey)
	if needSearch {
		require("GOOGLE_SEARCH_API_KEY", c.SearchAPIKey)
		require("GOOGLE_SEARCH_ENGINE_ID", c.SearchEngineID)
		require("YOUTUBE_API_KEY", c.YouTubeAPIKey)
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if c.SessionTTL < 0 {
		errs = append(errs, errors.New("QUIZ_SESSION_TTL must not be negative"))
	}
	return errors.Join(errs...)
}

func envString(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func envBool(name string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// envDuration accepts Go durations ("90s", "2h") or a bare number of seconds
func envDuration(name string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func envList(name string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
