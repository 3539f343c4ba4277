package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config covers both binaries: the interactive client reads the top group,
// the reference server the bottom one. Values resolve as defaults, then the
// optional YAML file, then environment variables.
type Config struct {
	ServerURL string `yaml:"server_url"`
	TokenFile string `yaml:"token_file"`
	PageSize  int    `yaml:"page_size"`

	Addr          string `yaml:"addr"`
	DatabaseURL   string `yaml:"database_url"`
	JWTSecret     string `yaml:"jwt_secret"`
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
}

func defaults() Config {
	return Config{
		ServerURL: "http://127.0.0.1:8000",
		TokenFile: defaultTokenFile(),
		PageSize:  10,
		Addr:      ":8000",
	}
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.empdir/token"
}

// Load resolves configuration from defaults and the environment.
func Load() Config {
	return applyEnv(defaults())
}

// LoadFile layers a YAML config file between the defaults and the
// environment.
func LoadFile(path string) (Config, error) {
	cfg := defaults()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse yaml: %w", err)
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	cfg.ServerURL = getEnv("EMPDIR_SERVER_URL", cfg.ServerURL)
	cfg.TokenFile = getEnv("EMPDIR_TOKEN_FILE", cfg.TokenFile)
	cfg.PageSize = getEnvInt("EMPDIR_PAGE_SIZE", cfg.PageSize)

	cfg.Addr = getEnv("APP_ADDR", cfg.Addr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.AdminEmail = getEnv("ADMIN_EMAIL", cfg.AdminEmail)
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", cfg.AdminPassword)
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// ValidateClient checks the fields the interactive client needs.
func (c Config) ValidateClient() error {
	if strings.TrimSpace(c.ServerURL) == "" {
		return fmt.Errorf("EMPDIR_SERVER_URL is required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("EMPDIR_PAGE_SIZE must be positive")
	}
	return nil
}

// ValidateServer checks the fields the reference server needs.
func (c Config) ValidateServer() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("APP_ADDR is required")
	}
	if c.JWTSecret != "" {
		if strings.TrimSpace(c.AdminEmail) == "" || strings.TrimSpace(c.AdminPassword) == "" {
			return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD are required when JWT_SECRET is set")
		}
	}
	return nil
}
