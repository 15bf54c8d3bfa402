// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultPort            = 4000
	DefaultDatabaseType    = "sqlite"
	DefaultSQLiteURL       = "file:ballotwatch.db"
	DefaultGeneratorPeriod = 500 * time.Millisecond
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	SecretSalt      string
	GeneratorPeriod time.Duration
	LogLevel        string
	LogFormat       string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("ballotwatch", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SecretSalt, "secret-salt", "", "Voter secret salt (prefer env)")

	fs.DurationVar(&cfg.GeneratorPeriod, "generator-period", 0, "Interval between generated candidates")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DefaultDatabaseType
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultSQLiteURL
	}

	if cfg.GeneratorPeriod == 0 {
		if periodStr := os.Getenv("GENERATOR_PERIOD"); periodStr != "" {
			period, err := time.ParseDuration(periodStr)
			if err != nil {
				return Config{}, errors.New("invalid GENERATOR_PERIOD env variable")
			}
			cfg.GeneratorPeriod = period
		} else {
			cfg.GeneratorPeriod = DefaultGeneratorPeriod
		}
	}
	if cfg.GeneratorPeriod < 0 {
		return Config{}, errors.New("generator period must be positive")
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = os.Getenv("LOG_FORMAT")
	}

	// Secrets - MUST be provided
	if cfg.SecretSalt == "" {
		cfg.SecretSalt = os.Getenv("SECRET_SALT")
	}
	if cfg.SecretSalt == "" {
		return Config{}, errors.New("SECRET_SALT required")
	}

	return cfg, nil
}
