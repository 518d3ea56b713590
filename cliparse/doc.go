// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: sqlite file/DSN or PostgreSQL connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminPassword: shared password for destructive operations (required)
  - EventFile: event YAML (judges, participants, rubrics); embedded default when empty
  - LogLevel: debug, info, warn, error (default: info)
  - ExportTimezone: IANA zone for exported timestamps (default: UTC)

# Sources

Settings are layered, lowest precedence first:

 1. built-in defaults
 2. .env in the working directory (optional, never overrides the real environment)
 3. YAML file named by JUDGEBOARD_CONFIG (same keys as the koanf tags)
 4. environment variables
 5. CLI flags that were explicitly set

# CLI Flags and Environment Variables

	-p               PORT
	-d               DATABASE_URL
	-t               DATABASE_TYPE
	-admin-password  ADMIN_PASSWORD
	-event           EVENT_FILE
	-log-level       LOG_LEVEL
	-tz              EXPORT_TIMEZONE

# Validation

ParseFlags returns an error if DATABASE_URL or ADMIN_PASSWORD is missing, or if
DATABASE_TYPE, LOG_LEVEL or EXPORT_TIMEZONE hold unsupported values.
*/
package cliparse
