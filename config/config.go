package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the loan-insight service configuration.
type Config struct {
	HTTPPort          int           `yaml:"http_port"`
	PredictionURL     string        `yaml:"prediction_url"`
	PredictionTimeout time.Duration `yaml:"prediction_timeout"`
	AnnualRate        float64       `yaml:"annual_rate"`
	RateLimit         int           `yaml:"rate_limit"`
	RateLimitWindow   time.Duration `yaml:"rate_limit_window"`
	RedisAddr         string        `yaml:"redis_addr"`
	ReportTTL         time.Duration `yaml:"report_ttl"`
	KafkaBrokers      []string      `yaml:"kafka_brokers"`
	KafkaTopic        string        `yaml:"kafka_topic"`
	LogLevel          string        `yaml:"log_level"`
	LogFormat         string        `yaml:"log_format"`
	StaticDir         string        `yaml:"static_dir"`
}

func Defaults() Config {
	return Config{
		HTTPPort:        8080,
		PredictionURL:   "http://localhost:5000/api/predict",
		AnnualRate:      0.08,
		RateLimit:       5,
		RateLimitWindow: time.Minute,
		ReportTTL:       time.Hour,
		KafkaTopic:      "loan.assessments",
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

// Load reads configuration from a .env file (if present), then the YAML
// file named by CONFIG_FILE (if set), then environment variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.HTTPPort = getEnvInt("HTTP_PORT", c.HTTPPort)
	c.PredictionURL = getEnv("PREDICTION_URL", c.PredictionURL)
	c.PredictionTimeout = getEnvDuration("PREDICTION_TIMEOUT", c.PredictionTimeout)
	c.AnnualRate = getEnvFloat("ANNUAL_RATE", c.AnnualRate)
	c.RateLimit = getEnvInt("RATE_LIMIT", c.RateLimit)
	c.RateLimitWindow = getEnvDuration("RATE_LIMIT_WINDOW", c.RateLimitWindow)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.ReportTTL = getEnvDuration("REPORT_TTL", c.ReportTTL)
	c.KafkaBrokers = getEnvList("KAFKA_BROKERS", c.KafkaBrokers)
	c.KafkaTopic = getEnv("KAFKA_TOPIC", c.KafkaTopic)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.StaticDir = getEnv("STATIC_DIR", c.StaticDir)
}

func (c Config) Validate() error {
	u, err := url.Parse(c.PredictionURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid PREDICTION_URL %q", c.PredictionURL)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTPPort)
	}
	if c.AnnualRate < 0 {
		return fmt.Errorf("ANNUAL_RATE cannot be negative, got %v", c.AnnualRate)
	}
	if c.PredictionTimeout < 0 {
		return fmt.Errorf("PREDICTION_TIMEOUT cannot be negative, got %s", c.PredictionTimeout)
	}
	if c.RateLimit <= 0 || c.RateLimitWindow <= 0 {
		return errors.New("RATE_LIMIT and RATE_LIMIT_WINDOW must be positive")
	}
	if c.ReportTTL <= 0 {
		return errors.New("REPORT_TTL must be positive")
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
