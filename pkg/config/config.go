package config

import (
	"errors"
	"strings"

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
	Catalog CatalogConfig
	Solver  SolverConfig
	Export  ExportConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CatalogConfig controls schedule file autoloading at startup.
type CatalogConfig struct {
	ScheduleDir string
	Autoload    bool
}

// SolverConfig bounds solve requests accepted by the host.
type SolverConfig struct {
	MaxResultsCap int
}

// ExportConfig names the generated calendars.
type ExportConfig struct {
	CalendarName string
	Timezone     string
	ProductID    string
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

	cfg.Catalog = CatalogConfig{
		ScheduleDir: v.GetString("CATALOG_SCHEDULE_DIR"),
		Autoload:    v.GetBool("CATALOG_AUTOLOAD"),
	}

	cfg.Solver = SolverConfig{
		MaxResultsCap: v.GetInt("SOLVER_MAX_RESULTS_CAP"),
	}

	cfg.Export = ExportConfig{
		CalendarName: v.GetString("EXPORT_CALENDAR_NAME"),
		Timezone:     v.GetString("EXPORT_TIMEZONE"),
		ProductID:    v.GetString("EXPORT_PRODUCT_ID"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CATALOG_SCHEDULE_DIR", "courseschedules")
	v.SetDefault("CATALOG_AUTOLOAD", true)
	v.SetDefault("SOLVER_MAX_RESULTS_CAP", 2000)
	v.SetDefault("EXPORT_CALENDAR_NAME", "Course Schedule")
	v.SetDefault("EXPORT_TIMEZONE", "America/New_York")
	v.SetDefault("EXPORT_PRODUCT_ID", "-//Schedule Pro//schedule-pro-api//EN")
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
