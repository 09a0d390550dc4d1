package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CORS    CORSConfig
	Log     LogConfig
	Planner PlannerConfig
	Advisor AdvisorConfig
	Export  ExportConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// PlannerConfig bounds the schedule generator and the saved-schedule session store.
type PlannerConfig struct {
	NodeBudget    int
	MaxCandidates int
	MaxResults    int
	SessionTTL    time.Duration
}

// AdvisorConfig gates the canned-response advisor endpoint.
type AdvisorConfig struct {
	Enabled bool
}

// ExportConfig toggles schedule download rendering.
type ExportConfig struct {
	DownloadsEnabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Planner = PlannerConfig{
		NodeBudget:    v.GetInt("PLANNER_NODE_BUDGET"),
		MaxCandidates: v.GetInt("PLANNER_MAX_CANDIDATES"),
		MaxResults:    v.GetInt("PLANNER_MAX_RESULTS"),
		SessionTTL:    parseDuration(v.GetString("PLANNER_SESSION_TTL"), 12*time.Hour),
	}

	cfg.Advisor = AdvisorConfig{
		Enabled: v.GetBool("ENABLE_ADVISOR"),
	}

	cfg.Export = ExportConfig{
		DownloadsEnabled: v.GetBool("ENABLE_DOWNLOADS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("PLANNER_NODE_BUDGET", 50000)
	v.SetDefault("PLANNER_MAX_CANDIDATES", 200)
	v.SetDefault("PLANNER_MAX_RESULTS", 10)
	v.SetDefault("PLANNER_SESSION_TTL", "12h")

	v.SetDefault("ENABLE_ADVISOR", true)
	v.SetDefault("ENABLE_DOWNLOADS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
