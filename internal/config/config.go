package config

import (
	"errors"
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
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	envPrefix     = "HEPTA_"
	configFileEnv = envPrefix + "CONFIG_FILE"
)

type Config struct {
	Addr           string        `koanf:"addr" validate:"required"`
	DBDriver       string        `koanf:"db_driver" validate:"oneof=sqlite3 sqlite"`
	DBPath         string        `koanf:"db_path" validate:"required_if=Storage sqlite"`
	Storage        string        `koanf:"storage" validate:"oneof=sqlite memory"`
	LogLevel       string        `koanf:"log_level" validate:"required"`
	Timezone       string        `koanf:"timezone" validate:"required"`
	WorkerCount    int           `koanf:"worker_count" validate:"min=1,max=64"`
	QueueSize      int           `koanf:"queue_size" validate:"min=1"`
	DigestInterval time.Duration `koanf:"digest_interval" validate:"min=0s"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"gt=0s"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"gt=0s"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Addr:           ":8080",
		DBDriver:       "sqlite3",
		DBPath:         "heptareview.db",
		Storage:        "sqlite",
		LogLevel:       "INFO",
		Timezone:       "Local",
		WorkerCount:    1,
		QueueSize:      16,
		DigestInterval: time.Hour,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   30 * time.Second,
	}
}

// Load builds the configuration from, in increasing precedence: defaults, an
// optional YAML file, HEPTA_* environment variables (a .env file is loaded
// into the environment first) and command-line flags.
func Load(args []string) (Config, error) {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	cfg := Default()
	fs := newFlagSet(cfg)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	k := koanf.New(".")

	path, _ := fs.GetString("config")
	if path == "" {
		path = os.Getenv(configFileEnv)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	// Unchanged flags only fill keys no earlier layer has set.
	if err := k.Load(posflag.ProviderWithFlag(fs, ".", k, flagKey(fs)), nil); err != nil {
		return Config{}, fmt.Errorf("load flags: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newFlagSet(def Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("heptareview", pflag.ContinueOnError)
	fs.String("config", "", "path to a YAML config file")
	fs.String("addr", def.Addr, "HTTP listen address")
	fs.String("db-driver", def.DBDriver, "SQLite driver: sqlite3 (cgo) or sqlite (pure Go)")
	fs.String("db-path", def.DBPath, "SQLite database file")
	fs.String("storage", def.Storage, "storage backend: sqlite or memory")
	fs.String("log-level", def.LogLevel, "DEBUG, INFO, WARN or ERROR")
	fs.String("timezone", def.Timezone, "IANA time zone that decides the current day")
	fs.Int("worker-count", def.WorkerCount, "background workers")
	fs.Int("queue-size", def.QueueSize, "background job queue size")
	fs.Duration("digest-interval", def.DigestInterval, "how often to log the due digest, 0 disables it")
	fs.Duration("read-timeout", def.ReadTimeout, "HTTP read timeout")
	fs.Duration("write-timeout", def.WriteTimeout, "HTTP write timeout")
	return fs
}

func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

func flagKey(fs *pflag.FlagSet) func(f *pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(fs, f)
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.ToUpper(f.Tag.Get("koanf"))
	})
	return v
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = append(errs, fieldError(fe))
		}
	}

	if c.LogLevel != "" && !validLogLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("TIMEZONE %q is not a known time zone", c.Timezone))
		}
	}

	return errors.Join(errs...)
}

// Location resolves Timezone; call Validate first.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func fieldError(fe validator.FieldError) error {
	name := fe.Field()
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Errorf("%s cannot be empty", name)
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %q", name, fe.Param(), fe.Value())
	case "min":
		return fmt.Errorf("%s must be at least %s, got %v", name, fe.Param(), fe.Value())
	case "max":
		return fmt.Errorf("%s must be at most %s, got %v", name, fe.Param(), fe.Value())
	case "gt":
		return fmt.Errorf("%s must be greater than %s, got %v", name, fe.Param(), fe.Value())
	default:
		return fmt.Errorf("%s is invalid (%s)", name, fe.Tag())
	}
}

func validLogLevel(s string) bool {
	switch strings.ToUpper(s) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
		return true
	}
	return false
}
