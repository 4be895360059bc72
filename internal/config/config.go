package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/finsec/cli/internal/models"
	"github.com/finsec/cli/internal/movement"
)

const (
	fileName  = ".finsec"
	envPrefix = "FINSEC"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig     `mapstructure:"server" yaml:"server"`
	Session  SessionConfig    `mapstructure:"session" yaml:"session"`
	Format   FormatConfig     `mapstructure:"format" yaml:"format"`
	Log      LogConfig        `mapstructure:"log" yaml:"log"`
	Limits   LimitsConfig     `mapstructure:"limits" yaml:"limits"`
	Contacts []models.Contact `mapstructure:"contacts" yaml:"contacts"`

	path string
}

// ServerConfig contains server connection settings
type ServerConfig struct {
	URL     string        `mapstructure:"url" yaml:"url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// SessionConfig is the session persisted between invocations
type SessionConfig struct {
	Token  string `mapstructure:"token" yaml:"token"`
	UserID string `mapstructure:"user_id" yaml:"user_id"`
	Email  string `mapstructure:"email" yaml:"email"`
}

// FormatConfig contains output formatting settings
type FormatConfig struct {
	Default string `mapstructure:"default" yaml:"default"`
	Colors  bool   `mapstructure:"colors" yaml:"colors"`
}

// LogConfig selects the diagnostic log level
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// LimitsConfig overrides the money-movement thresholds
type LimitsConfig struct {
	SendWarn    decimal.Decimal `mapstructure:"send_warn" yaml:"send_warn"`
	RequestWarn decimal.Decimal `mapstructure:"request_warn" yaml:"request_warn"`
	TopUpWarn   decimal.Decimal `mapstructure:"topup_warn" yaml:"topup_warn"`
	RequestMin  decimal.Decimal `mapstructure:"request_min" yaml:"request_min"`
	TopUpMin    decimal.Decimal `mapstructure:"topup_min" yaml:"topup_min"`
}

var (
	globalConfig *Config
	debug        bool
	outputFormat string
)

// Default returns the configuration written on first run
func Default() *Config {
	p := movement.DefaultPolicy()
	return &Config{
		Server: ServerConfig{
			URL:     "http://localhost:5000",
			Timeout: 30 * time.Second,
		},
		Format: FormatConfig{
			Default: "table",
			Colors:  true,
		},
		Log: LogConfig{Level: "warn"},
		Limits: LimitsConfig{
			SendWarn:    p.SendWarn,
			RequestWarn: p.RequestWarn,
			TopUpWarn:   p.TopUpWarn,
			RequestMin:  p.RequestMin,
			TopUpMin:    p.TopUpMin,
		},
		Contacts: []models.Contact{
			{ID: "1", Name: "Sarah Johnson", Account: "**** 4321", Status: models.ContactActive,
				DailyLimit: decimal.NewFromInt(1000), Current: decimal.NewFromInt(200)},
			{ID: "2", Name: "Michael Chen", Account: "**** 8765", Status: models.ContactActive,
				DailyLimit: decimal.NewFromInt(2000), Current: decimal.Zero},
			{ID: "3", Name: "Emma Wilson", Account: "**** 2468", Status: models.ContactInactive},
			{ID: "4", Name: "James Brown", Account: "**** 1357", Status: models.ContactBlocked},
		},
	}
}

// DefaultPath is $HOME/.finsec.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get home directory: %w", err)
	}
	return filepath.Join(home, fileName+".yaml"), nil
}

// Initialize loads the configuration and makes it the process-wide config
func Initialize(configFile string) error {
	cfg, err := Load(configFile)
	if err != nil {
		return err
	}
	globalConfig = cfg
	return nil
}

// Load reads configFile, or $HOME/.finsec.yaml when empty, creating it with defaults if
// it does not exist. FINSEC_* environment variables override file values.
func Load(configFile string) (*Config, error) {
	path := configFile
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		if err := write(path, Default()); err != nil {
			return nil, fmt.Errorf("could not create default config: %w", err)
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		decimalHookFunc(),
	))); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	for i := range cfg.Contacts {
		if cfg.Contacts[i].Status == "" {
			cfg.Contacts[i].Status = models.ContactActive
		}
	}
	cfg.path = path
	return cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.url", d.Server.URL)
	v.SetDefault("server.timeout", d.Server.Timeout.String())
	v.SetDefault("session.token", "")
	v.SetDefault("session.user_id", "")
	v.SetDefault("session.email", "")
	v.SetDefault("format.default", d.Format.Default)
	v.SetDefault("format.colors", d.Format.Colors)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("limits.send_warn", d.Limits.SendWarn.String())
	v.SetDefault("limits.request_warn", d.Limits.RequestWarn.String())
	v.SetDefault("limits.topup_warn", d.Limits.TopUpWarn.String())
	v.SetDefault("limits.request_min", d.Limits.RequestMin.String())
	v.SetDefault("limits.topup_min", d.Limits.TopUpMin.String())
}

// decimalHookFunc decodes numbers and numeric strings into decimal.Decimal
func decimalHookFunc() mapstructure.DecodeHookFuncType {
	target := reflect.TypeOf(decimal.Decimal{})
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != target {
			return data, nil
		}
		switch v := data.(type) {
		case nil:
			return decimal.Zero, nil
		case string:
			if strings.TrimSpace(v) == "" {
				return decimal.Zero, nil
			}
			return decimal.NewFromString(strings.TrimSpace(v))
		case int:
			return decimal.NewFromInt(int64(v)), nil
		case int64:
			return decimal.NewFromInt(v), nil
		case uint64:
			return decimal.NewFromString(fmt.Sprint(v))
		case float64:
			return decimal.NewFromFloat(v), nil
		case float32:
			return decimal.NewFromFloat32(v), nil
		case decimal.Decimal:
			return v, nil
		default:
			return nil, fmt.Errorf("cannot decode %T into a decimal", data)
		}
	}
}

func write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		globalConfig = Default()
	}
	return globalConfig
}

// Path is the file the configuration was loaded from
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration back to the file it was loaded from
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return err
		}
		c.path = path
	}
	return write(path, c)
}

// Save saves the global configuration to file
func Save() error {
	if globalConfig == nil {
		return fmt.Errorf("no configuration to save")
	}
	return globalConfig.Save()
}

// Policy builds the money-movement policy from the configured limits. Unset limits
// keep their defaults.
func (c *Config) Policy() movement.Policy {
	p := movement.DefaultPolicy()
	set := func(dst *decimal.Decimal, v decimal.Decimal) {
		if v.IsPositive() {
			*dst = v
		}
	}
	set(&p.SendWarn, c.Limits.SendWarn)
	set(&p.RequestWarn, c.Limits.RequestWarn)
	set(&p.TopUpWarn, c.Limits.TopUpWarn)
	set(&p.RequestMin, c.Limits.RequestMin)
	set(&p.TopUpMin, c.Limits.TopUpMin)
	return p
}

// SetDebug sets the debug mode
func SetDebug(enabled bool) {
	debug = enabled
}

// IsDebug returns whether debug mode is enabled
func IsDebug() bool {
	return debug
}

// SetOutputFormat sets the output format
func SetOutputFormat(format string) {
	outputFormat = format
}

// GetOutputFormat returns the current output format
func GetOutputFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	if globalConfig != nil && globalConfig.Format.Default != "" {
		return globalConfig.Format.Default
	}
	return "table"
}
