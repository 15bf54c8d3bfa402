// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4000)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: connection string (default for sqlite: file:ballotwatch.db)
  - SecretSalt: Secret for voter secret HMAC (required)
  - GeneratorPeriod: interval between generated candidates (default: 500ms)
  - LogLevel, LogFormat: slog handler settings

# CLI Flags

	-p                  Server port
	-d                  Database URL
	-t                  Database type
	--secret-salt       Voter secret salt
	--generator-period  Generator interval (Go duration)
	--log-level         debug, info, warn, error
	--log-format        text or json

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	SECRET_SALT      → --secret-salt
	GENERATOR_PERIOD → --generator-period
	LOG_LEVEL        → --log-level
	LOG_FORMAT       → --log-format

CLI flags take precedence over environment variables. main loads a .env file
into the environment before parsing, if one exists.

# Validation

ParseFlags returns an error if:

  - SECRET_SALT is missing
  - DATABASE_TYPE is not sqlite or postgres
  - DATABASE_URL is missing for postgres
  - PORT or GENERATOR_PERIOD cannot be parsed
*/
package cliparse
