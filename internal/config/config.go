// Package config builds the process-wide configuration once at start-up. The returned
// Config is treated as read-only by every consumer.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config store backends.
const (
	StoreDir      = "dir"
	StoreDynamoDB = "dynamodb"
)

// Config is the main application configuration struct.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Invoice InvoiceConfig `mapstructure:"invoice"`
	PDF     PDFConfig     `mapstructure:"pdf"`
	AWS     AWSConfig     `mapstructure:"aws"`
	Events  EventsConfig  `mapstructure:"events"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Port     int  `mapstructure:"port"`
	RunLocal bool `mapstructure:"run_local"`
}

// Addr returns the listen address for the local HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type InvoiceConfig struct {
	TemplatePath  string `mapstructure:"template_path"`
	Store         string `mapstructure:"store"`
	ConfigDir     string `mapstructure:"config_dir"`
	DynamoDBTable string `mapstructure:"dynamodb_table"`
}

type PDFConfig struct {
	ChromeURL       string        `mapstructure:"chrome_url"`  // remote DevTools websocket
	ChromePath      string        `mapstructure:"chrome_path"` // local executable
	Timeout         time.Duration `mapstructure:"timeout"`
	PrintBackground bool          `mapstructure:"print_background"`
}

type AWSConfig struct {
	Region           string `mapstructure:"region"`
	EndpointOverride string `mapstructure:"endpoint_override"`
}

type EventsConfig struct {
	QueueURL string `mapstructure:"queue_url"`
}

type MetricsConfig struct {
	CloudWatchNamespace string `mapstructure:"cloudwatch_namespace"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NeedsAWS reports whether any configured component talks to AWS.
func (c *Config) NeedsAWS() bool {
	return c.Invoice.Store == StoreDynamoDB || c.Events.QueueURL != "" || c.Metrics.CloudWatchNamespace != ""
}

// Load reads .env (if present), configs/config.yaml or ./config.yaml (if present) and the
// environment, in increasing precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadFromFile loads configuration from a specific file path; the environment still
// overrides file values.
func LoadFromFile(path string) (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	// SERVER_PORT, INVOICE_TEMPLATE_PATH, ...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("server.run_local", "SERVER_RUN_LOCAL", "RUN_LOCAL")
	_ = v.BindEnv("aws.region", "AWS_REGION")
	_ = v.BindEnv("aws.endpoint_override", "AWS_ENDPOINT_OVERRIDE")

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.run_local", false)

	v.SetDefault("invoice.template_path", "./templates/invoice.html")
	v.SetDefault("invoice.store", StoreDir)
	v.SetDefault("invoice.config_dir", "./config/invoices")
	v.SetDefault("invoice.dynamodb_table", "")

	v.SetDefault("pdf.chrome_url", "")
	v.SetDefault("pdf.chrome_path", "")
	v.SetDefault("pdf.timeout", 30*time.Second)
	v.SetDefault("pdf.print_background", true)

	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.endpoint_override", "")

	v.SetDefault("events.queue_url", "")
	v.SetDefault("metrics.cloudwatch_namespace", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", cfg.Server.Port)
	}
	if cfg.Invoice.TemplatePath == "" {
		return fmt.Errorf("invoice.template_path is required")
	}

	switch cfg.Invoice.Store {
	case StoreDir:
		if cfg.Invoice.ConfigDir == "" {
			return fmt.Errorf("invoice.config_dir is required for the %q store", StoreDir)
		}
	case StoreDynamoDB:
		if cfg.Invoice.DynamoDBTable == "" {
			return fmt.Errorf("invoice.dynamodb_table is required for the %q store", StoreDynamoDB)
		}
	default:
		return fmt.Errorf("invoice.store must be %q or %q, got %q", StoreDir, StoreDynamoDB, cfg.Invoice.Store)
	}

	if cfg.PDF.Timeout <= 0 {
		return fmt.Errorf("pdf.timeout must be positive")
	}

	return nil
}

// Getenv is a small helper for binaries that read a single variable before Load.
func Getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
