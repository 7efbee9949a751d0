package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime configuration with sensible defaults for local dev.
type Config struct {
	Port            int           `mapstructure:"PORT"`
	BaseURL         string        `mapstructure:"BASE_URL"`  // no trailing slash
	StoreURL        string        `mapstructure:"STORE_URL"` // sqlite://path or redis://host:port/db
	AuthToken       string        `mapstructure:"AUTHORIZATION_TOKEN"`
	StatsToken      string        `mapstructure:"STATS_AUTHORIZATION_TOKEN"`
	RateLimit       string        `mapstructure:"RATE_LIMIT"` // "10", "10rps" or "10:20"
	Env             string        `mapstructure:"GO_ENV"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	RateLimitRPS   int `mapstructure:"-"` // 0 disables limiting
	RateLimitBurst int `mapstructure:"-"`
}

var defaults = map[string]any{
	"PORT":                      8080,
	"BASE_URL":                  "http://localhost:8080",
	"STORE_URL":                 "sqlite://./data/urlshorty.db",
	"AUTHORIZATION_TOKEN":       "",
	"STATS_AUTHORIZATION_TOKEN": "",
	"RATE_LIMIT":                "10:10",
	"GO_ENV":                    "development",
	"LOG_LEVEL":                 "info",
	"SHUTDOWN_TIMEOUT":          "10s",
}

// legacy env names still honoured; the first one set wins.
var aliases = map[string][]string{
	"STORE_URL":           {"STORE_URL", "DB_PATH"},
	"AUTHORIZATION_TOKEN": {"AUTHORIZATION_TOKEN", "AUTHOURIZATION_TOKEN"},
}

// Load reads configuration into v from an optional ".env" file and the
// environment, then decodes it. Flags bound to v beforehand take precedence.
func Load(v *viper.Viper) (Config, error) {
	return LoadFile(v, ".env")
}

// LoadFile is Load with an explicit dotenv path; a missing file is skipped.
func LoadFile(v *viper.Viper, envFile string) (Config, error) {
	for k, def := range defaults {
		v.SetDefault(k, def)
	}
	for k, names := range aliases {
		if err := v.BindEnv(append([]string{k}, names...)...); err != nil {
			return Config{}, err
		}
	}
	v.AutomaticEnv()

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read %s: %w", envFile, err)
			}
			applyFileAliases(v)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return finish(cfg)
}

// applyFileAliases maps legacy names found in the dotenv file onto their
// canonical key. The result sits at default precedence, so the process
// environment and explicit flags still win.
func applyFileAliases(v *viper.Viper) {
	for k, names := range aliases {
		if v.InConfig(k) {
			continue
		}
		for _, name := range names {
			if name != k && v.InConfig(name) {
				v.SetDefault(k, v.Get(name))
				break
			}
		}
	}
}

func finish(cfg Config) (Config, error) {
	cfg.BaseURL = sanitizeBaseURL(cfg.BaseURL)
	cfg.StoreURL = strings.TrimSpace(cfg.StoreURL)
	cfg.AuthToken = strings.TrimSpace(cfg.AuthToken)
	cfg.StatsToken = strings.TrimSpace(cfg.StatsToken)
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %d", cfg.Port)
	}
	if cfg.StoreURL == "" {
		return Config{}, errors.New("STORE_URL must not be empty")
	}

	rl := strings.TrimSpace(cfg.RateLimit)
	if rl != "" && rl != "0" {
		rps, burst := parseRateLimit(rl)
		if rps <= 0 {
			return Config{}, fmt.Errorf("invalid RATE_LIMIT %q", cfg.RateLimit)
		}
		// Ensure burst >= rps
		if burst < rps {
			burst = rps
		}
		cfg.RateLimitRPS, cfg.RateLimitBurst = rps, burst
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return cfg, nil
}

func sanitizeBaseURL(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "/")
	if s == "" {
		return "http://localhost:8080"
	}
	return s
}

var rateRe = regexp.MustCompile(`^\s*(\d+)\s*(?:rps)?\s*(?::\s*(\d+)\s*)?$`)

// parseRateLimit accepts "10", "10rps", or "10:20" (rps:burst).
func parseRateLimit(s string) (rps, burst int) {
	s = strings.ToLower(strings.TrimSpace(s))
	m := rateRe.FindStringSubmatch(s)
	if len(m) == 0 {
		return 0, 0
	}
	rps, _ = strconv.Atoi(m[1])
	if len(m) >= 3 && m[2] != "" {
		burst, _ = strconv.Atoi(m[2])
	} else {
		burst = rps
	}
	return rps, burst
}
