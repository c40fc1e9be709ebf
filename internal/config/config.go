// Package config содержит логику чтения конфигурации пекарни.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	defaultRunAddress  = "localhost:7070"
	defaultCatalogFile = "bread_details.json"
	defaultStaticDir   = "public"
	defaultAppVersion  = "dev"
)

// Config содержит параметры конфигурации сервиса.
type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseURI   string `env:"DATABASE_URI"`
	CatalogFile   string `env:"CATALOG_FILE"`
	SessionSecret string `env:"SESSION_SECRET"`
	StaticDir     string `env:"STATIC_DIR"`
	AppVersion    string `env:"APP_VERSION"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fromEnv := *cfg

	flag.StringVar(&cfg.RunAddress, "a", defaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI for the product catalog")
	flag.StringVar(&cfg.CatalogFile, "c", defaultCatalogFile, "product catalog JSON file")
	flag.StringVar(&cfg.SessionSecret, "s", "", "secret key for session cookies")
	flag.StringVar(&cfg.StaticDir, "static", defaultStaticDir, "directory with static assets")
	flag.StringVar(&cfg.AppVersion, "version", defaultAppVersion, "application version shown in pages")

	flag.Parse()

	override(&cfg.RunAddress, fromEnv.RunAddress)
	override(&cfg.DatabaseURI, fromEnv.DatabaseURI)
	override(&cfg.CatalogFile, fromEnv.CatalogFile)
	override(&cfg.SessionSecret, fromEnv.SessionSecret)
	override(&cfg.StaticDir, fromEnv.StaticDir)
	override(&cfg.AppVersion, fromEnv.AppVersion)

	if cfg.RunAddress == "" {
		cfg.RunAddress = defaultRunAddress
	}
	if cfg.CatalogFile == "" {
		cfg.CatalogFile = defaultCatalogFile
	}

	return cfg, nil
}

func override(dst *string, envValue string) {
	if envValue != "" {
		*dst = envValue
	}
}
