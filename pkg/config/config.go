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

	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	Cache     CacheConfig
	Registrar RegistrarConfig
	Planner   PlannerConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig controls caching of generated timetables.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// RegistrarConfig points the section client at the registration system.
type RegistrarConfig struct {
	BaseURL   string
	Timeout   time.Duration
	PageSize  int
	UserAgent string
	RateLimit int
}

// PlannerConfig tunes the timetable search.
type PlannerConfig struct {
	Workers    int
	Timeout    time.Duration
	MaxCourses int
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
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_TIMETABLE_CACHE"),
		TTL:     parseDuration(v.GetString("TIMETABLE_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Registrar = RegistrarConfig{
		BaseURL:   strings.TrimRight(v.GetString("REGISTRAR_BASE_URL"), "/"),
		Timeout:   parseDuration(v.GetString("REGISTRAR_TIMEOUT"), 15*time.Second),
		PageSize:  v.GetInt("REGISTRAR_PAGE_SIZE"),
		UserAgent: v.GetString("REGISTRAR_USER_AGENT"),
		RateLimit: v.GetInt("REGISTRAR_RATE_LIMIT"),
	}

	cfg.Planner = PlannerConfig{
		Workers:    v.GetInt("PLANNER_WORKERS"),
		Timeout:    parseDuration(v.GetString("PLANNER_TIMEOUT"), 10*time.Second),
		MaxCourses: v.GetInt("PLANNER_MAX_COURSES"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_TIMETABLE_CACHE", false)
	v.SetDefault("TIMETABLE_CACHE_TTL", "5m")

	v.SetDefault("REGISTRAR_BASE_URL", "https://aurora-registration.umanitoba.ca/StudentRegistrationSsb/ssb")
	v.SetDefault("REGISTRAR_TIMEOUT", "15s")
	v.SetDefault("REGISTRAR_PAGE_SIZE", 50)
	v.SetDefault("REGISTRAR_USER_AGENT", "course-planner-api/0.1")
	v.SetDefault("REGISTRAR_RATE_LIMIT", 5)

	v.SetDefault("PLANNER_WORKERS", 1)
	v.SetDefault("PLANNER_TIMEOUT", "10s")
	v.SetDefault("PLANNER_MAX_COURSES", 10)
}

func isMissingFile(err error) bool {
	return strings.Contains(err.Error(), "no such file or directory")
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
