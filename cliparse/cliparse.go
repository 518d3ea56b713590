// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileEnv names the optional YAML file layered under the environment.
const ConfigFileEnv = "JUDGEBOARD_CONFIG"

type Config struct {
	Port           int    `koanf:"port" validate:"min=1,max=65535"`
	DatabaseURL    string `koanf:"database_url" validate:"required"`
	DatabaseType   string `koanf:"database_type" validate:"oneof=sqlite postgres"`
	AdminPassword  string `koanf:"admin_password" validate:"required"`
	EventFile      string `koanf:"event_file"`
	LogLevel       string `koanf:"log_level" validate:"oneof=debug info warn error"`
	ExportTimezone string `koanf:"export_timezone" validate:"timezone"`
}

// ExportLocation resolves ExportTimezone, falling back to UTC.
func (c Config) ExportLocation() *time.Location {
	loc, err := time.LoadLocation(c.ExportTimezone)
	if err != nil || c.ExportTimezone == "" {
		return time.UTC
	}
	return loc
}

// env names that map onto Config keys
var envKeys = map[string]string{
	"PORT":            "port",
	"DATABASE_URL":    "database_url",
	"DATABASE_TYPE":   "database_type",
	"ADMIN_PASSWORD":  "admin_password",
	"EVENT_FILE":      "event_file",
	"LOG_LEVEL":       "log_level",
	"EXPORT_TIMEZONE": "export_timezone",
}

func defaults() Config {
	return Config{
		Port:           3318,
		DatabaseType:   "sqlite",
		LogLevel:       "info",
		ExportTimezone: "UTC",
	}
}

// ParseFlags builds the configuration from defaults, an optional .env file,
// an optional YAML file ($JUDGEBOARD_CONFIG), environment variables and
// finally CLI flags. Only flags that were explicitly set override.
func ParseFlags(args []string) (Config, error) {
	var flags Config

	fs := flag.NewFlagSet("judgeboard", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&flags.Port, "p", 0, "Server port")
	fs.StringVar(&flags.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&flags.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Event and presentation
	fs.StringVar(&flags.EventFile, "event", "", "Event YAML with judges, participants and rubrics")
	fs.StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&flags.ExportTimezone, "tz", "", "Timezone for exported timestamps")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&flags.AdminPassword, "admin-password", "", "Admin password for destructive operations (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	envProvider := env.Provider("", ".", func(s string) string {
		return envKeys[s]
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	// CLI overrides env
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Port = flags.Port
		case "d":
			cfg.DatabaseURL = flags.DatabaseURL
		case "t":
			cfg.DatabaseType = flags.DatabaseType
		case "event":
			cfg.EventFile = flags.EventFile
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		case "tz":
			cfg.ExportTimezone = flags.ExportTimezone
		case "admin-password":
			cfg.AdminPassword = flags.AdminPassword
		}
	})
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var configValidator = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("koanf")
	})
	return v
}()

func validate(cfg Config) error {
	err := configValidator.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	name := strings.ToUpper(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s required", name)
	case "oneof":
		return fmt.Errorf("invalid %s %v: must be one of %s", name, fe.Value(), fe.Param())
	default:
		return fmt.Errorf("invalid %s %v", name, fe.Value())
	}
}
