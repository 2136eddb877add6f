package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/persons/pkg/jwtx"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	KeyStorageEphemeral  = "ephemeral"
	KeyStoragePersistent = "persistent"
)

// Config is read from the environment and an optional .env file. Variables
// set in the environment win over the file.
type Config struct {
	Env                 string `mapstructure:"ENV"`                   // dev, staging, prod
	LogLevel            string `mapstructure:"LOG_LEVEL"`             // debug, info, warn, error
	LogFormat           string `mapstructure:"LOG_FORMAT"`            // json, text
	Port                int    `mapstructure:"PORT"`                  // HTTP listen port
	ShutdownGracePeriod string `mapstructure:"SHUTDOWN_GRACE_PERIOD"` // e.g. "10s"

	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"` // sqlite or postgres
	DatabaseFile   string `mapstructure:"DATABASE_FILE"`   // SQLite file path
	DatabaseURL    string `mapstructure:"DATABASE_URL"`    // Postgres DSN

	PepperFile     string `mapstructure:"AUTH_PEPPER_FILE"`
	Issuer         string `mapstructure:"AUTH_ISSUER"`
	Audience       string `mapstructure:"AUTH_AUDIENCE"`  // comma separated, empty disables the check
	Algorithm      string `mapstructure:"AUTH_ALGORITHM"` // EdDSA, ES256, RS256
	RSABits        int    `mapstructure:"AUTH_RSA_BITS"`
	NumKeys        int    `mapstructure:"AUTH_NUM_KEYS"`
	KeyStorageMode string `mapstructure:"AUTH_KEY_STORAGE_MODE"` // ephemeral or persistent
	MasterKeyFile  string `mapstructure:"AUTH_MASTER_KEY_FILE"`
	TokenTTLRaw    string `mapstructure:"AUTH_TOKEN_TTL"` // duration or integer minutes
	StrictIdentity bool   `mapstructure:"AUTH_STRICT_IDENTITY"`

	BootstrapToken string `mapstructure:"BOOTSTRAP_TOKEN"`
	SeedDemoUser   bool   `mapstructure:"SEED_DEMO_USER"`
}

var defaults = map[string]any{
	"ENV":                   "dev",
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "json",
	"PORT":                  8080,
	"SHUTDOWN_GRACE_PERIOD": "10s",
	"DATABASE_DRIVER":       DriverSQLite,
	"DATABASE_FILE":         "persons.db",
	"DATABASE_URL":          "",
	"AUTH_PEPPER_FILE":      "pepper",
	"AUTH_ISSUER":           "persons-api",
	"AUTH_AUDIENCE":         "",
	"AUTH_ALGORITHM":        jwtx.AlgorithmEdDSA,
	"AUTH_RSA_BITS":         4096,
	"AUTH_NUM_KEYS":         3,
	"AUTH_KEY_STORAGE_MODE": KeyStorageEphemeral,
	"AUTH_MASTER_KEY_FILE":  "master.key",
	"AUTH_TOKEN_TTL":        "24h",
	"AUTH_STRICT_IDENTITY":  false,
	"BOOTSTRAP_TOKEN":       "",
	"SEED_DEMO_USER":        false,
}

// LoadConfig reads ./.env if present, then the environment.
func LoadConfig() (Config, error) {
	return LoadConfigFile(".env")
}

// LoadConfigFile is LoadConfig with an explicit .env path. A missing file is
// ignored.
func LoadConfigFile(envFile string) (Config, error) {
	v := viper.New()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		_ = v.ReadInConfig()
	}

	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("config: DATABASE_FILE must be set for sqlite"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("config: DATABASE_URL must be set for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown DATABASE_DRIVER %q", c.DatabaseDriver))
	}

	switch c.Algorithm {
	case jwtx.AlgorithmEdDSA, jwtx.AlgorithmES256, jwtx.AlgorithmRS256:
	default:
		errs = append(errs, fmt.Errorf("config: unsupported AUTH_ALGORITHM %q", c.Algorithm))
	}

	switch c.KeyStorageMode {
	case KeyStorageEphemeral:
	case KeyStoragePersistent:
		if c.MasterKeyFile == "" {
			errs = append(errs, errors.New("config: AUTH_MASTER_KEY_FILE must be set for persistent keys"))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown AUTH_KEY_STORAGE_MODE %q", c.KeyStorageMode))
	}

	if c.Issuer == "" {
		errs = append(errs, errors.New("config: AUTH_ISSUER must be set"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("config: invalid PORT %d", c.Port))
	}
	if _, err := parseDuration(c.TokenTTLRaw); err != nil {
		errs = append(errs, fmt.Errorf("config: AUTH_TOKEN_TTL: %w", err))
	}
	if _, err := parseDuration(c.ShutdownGracePeriod); err != nil {
		errs = append(errs, fmt.Errorf("config: SHUTDOWN_GRACE_PERIOD: %w", err))
	}

	return errors.Join(errs...)
}

// TokenTTL is the access token lifetime.
func (c Config) TokenTTL() time.Duration {
	d, err := parseDuration(c.TokenTTLRaw)
	if err != nil {
		return jwtx.DefaultAccessTokenTTL
	}
	return d
}

// ShutdownTimeout is how long in-flight requests get to finish.
func (c Config) ShutdownTimeout() time.Duration {
	d, err := parseDuration(c.ShutdownGracePeriod)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// AudienceList splits Audience on commas.
func (c Config) AudienceList() []string {
	if c.Audience == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(c.Audience, ",") {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseDuration accepts Go durations ("90s", "24h") and bare integer minutes.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	d, err := time.ParseDuration(s)
	if err != nil {
		minutes, convErr := strconv.Atoi(s)
		if convErr != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		d = time.Duration(minutes) * time.Minute
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	return d, nil
}
