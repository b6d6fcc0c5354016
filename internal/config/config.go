package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "LEDGER"

type Config struct {
	Log        LogConfig   `mapstructure:"log"`
	Input      InputConfig `mapstructure:"input"`
	Kafka      KafkaConfig `mapstructure:"kafka"`
	ConfigPath string      `mapstructure:"-"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type InputConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Query  string `mapstructure:"query"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

func NewDefault() *Config {
	return &Config{
		Log:   LogConfig{Level: "info", Format: "text"},
		Input: InputConfig{Driver: "csv", Query: "SELECT type, client, tx, amount FROM transactions ORDER BY id"},
		Kafka: KafkaConfig{Topic: "account_snapshots"},
	}
}

// PublishEnabled reports whether snapshots should also go to Kafka.
func (c *Config) PublishEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

func (c *Config) Validate() error {
	switch c.Input.Driver {
	case "csv":
	case "postgres", "sqlite3":
		if c.Input.DSN == "" {
			return fmt.Errorf("input.dsn is required for driver %q", c.Input.Driver)
		}
	default:
		return fmt.Errorf("unsupported input driver %q", c.Input.Driver)
	}
	if c.PublishEnabled() && c.Kafka.Topic == "" {
		return errors.New("kafka.topic is required when kafka.brokers is set")
	}
	return nil
}

// Load reads configuration from defaults, an optional .env file, an optional config file and
// LEDGER_* environment variables, in increasing order of precedence. Flags bound to v win over all of them.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	defaults := NewDefault()
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("input.driver", defaults.Input.Driver)
	v.SetDefault("input.dsn", defaults.Input.DSN)
	v.SetDefault("input.query", defaults.Input.Query)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", defaults.Kafka.Topic)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv() // allow using environment variables to override

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := NewDefault()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %v", err)
	}
	cfg.ConfigPath = v.ConfigFileUsed()
	cfg.Kafka.Brokers = compact(cfg.Kafka.Brokers)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
