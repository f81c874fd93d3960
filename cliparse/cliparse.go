package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort            = 3318
	DefaultDatabaseURL     = "quickly-league.db"
	DefaultDatabaseType    = "sqlite"
	DefaultEnvironment     = "development"
	DefaultShutdownTimeout = 30 * time.Second
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	SessionSecret   string
	ShareSlugSalt   string
	BaseURL         string
	AllowedOrigins  []string
	Environment     string
	ShutdownTimeout time.Duration
}

// IsDevelopment reports whether human-readable logs should be used
func (c Config) IsDevelopment() bool {
	return c.Environment == DefaultEnvironment
}

// fileConfig mirrors the optional YAML config file. Secrets may live
// there for local setups but the environment should be preferred.
type fileConfig struct {
	Port                   int      `yaml:"port"`
	BaseURL                string   `yaml:"base_url"`
	AllowedOrigins         []string `yaml:"allowed_origins"`
	Environment            string   `yaml:"environment"`
	ShutdownTimeoutSeconds int      `yaml:"shutdown_timeout_seconds"`
	Database               struct {
		Type string `yaml:"type"`
		URL  string `yaml:"url"`
	} `yaml:"database"`
	SessionSecret string `yaml:"session_secret"`
	ShareSlugSalt string `yaml:"share_slug_salt"`
}

// ParseFlags builds the config from flags, then environment variables,
// then the YAML file, then defaults. A .env file in the working
// directory is loaded first when present.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var configPath, origins string

	fs := flag.NewFlagSet("quickly-league", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or sqlite file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&configPath, "c", "", "Path to YAML config file")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "Public base URL used in share links")
	fs.StringVar(&cfg.Environment, "env", "", "Environment (development or production)")
	fs.StringVar(&origins, "allowed-origins", "", "Comma-separated origins allowed to make credentialed requests")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session signing secret (prefer env)")
	fs.StringVar(&cfg.ShareSlugSalt, "slug-salt", "", "Share slug salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	}

	if configPath == "" {
		configPath = os.Getenv("CONFIG_FILE")
	}
	var file fileConfig
	if configPath != "" {
		loaded, err := loadFile(configPath)
		if err != nil {
			return Config{}, err
		}
		file = loaded
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else if file.Port != 0 {
			cfg.Port = file.Port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port out of range: %d", cfg.Port)
	}

	cfg.DatabaseURL = firstNonEmpty(cfg.DatabaseURL, os.Getenv("DATABASE_URL"), file.Database.URL, DefaultDatabaseURL)
	cfg.DatabaseType = firstNonEmpty(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), file.Database.Type, DefaultDatabaseType)
	switch cfg.DatabaseType {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("unsupported database type: %s", cfg.DatabaseType)
	}

	cfg.Environment = firstNonEmpty(cfg.Environment, os.Getenv("ENVIRONMENT"), file.Environment, DefaultEnvironment)
	cfg.BaseURL = firstNonEmpty(cfg.BaseURL, os.Getenv("BASE_URL"), file.BaseURL, fmt.Sprintf("http://localhost:%d", cfg.Port))

	// Only the app's own origin may send cookies cross-origin unless told otherwise
	if origins = firstNonEmpty(origins, os.Getenv("ALLOWED_ORIGINS")); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	} else if len(file.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = file.AllowedOrigins
	} else {
		cfg.AllowedOrigins = []string{cfg.BaseURL}
	}

	cfg.ShutdownTimeout = DefaultShutdownTimeout
	if s := os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"); s != "" {
		secs, err := strconv.Atoi(s)
		if err != nil || secs <= 0 {
			return Config{}, errors.New("invalid SHUTDOWN_TIMEOUT_SECONDS env variable")
		}
		cfg.ShutdownTimeout = time.Duration(secs) * time.Second
	} else if file.ShutdownTimeoutSeconds > 0 {
		cfg.ShutdownTimeout = time.Duration(file.ShutdownTimeoutSeconds) * time.Second
	}

	// Secrets - MUST be provided
	cfg.SessionSecret = firstNonEmpty(cfg.SessionSecret, os.Getenv("SESSION_SECRET"), file.SessionSecret)
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	cfg.ShareSlugSalt = firstNonEmpty(cfg.ShareSlugSalt, os.Getenv("SHARE_SLUG_SALT"), file.ShareSlugSalt)
	if cfg.ShareSlugSalt == "" {
		return Config{}, errors.New("SHARE_SLUG_SALT required")
	}

	return cfg, nil
}

func loadFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("error reading config file: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fileConfig{}, fmt.Errorf("error parsing config file: %w", err)
	}
	return file, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
