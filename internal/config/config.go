package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// this is a pointer so that if someone attempts to use it before loading it will
// panic and force them to load it first.
// it is also private so that it cannot be modified after loading.
var _loaded *Config

// Config is the main configuration structure
type Config struct {
	Common Common `yaml:"common"`
}

// Load loads the configuration following proper precedence: defaults → config file → environment variables
func Load() {
	// Start with defaults
	_loaded = &defaultConfig

	// Try to load from config file and merge over defaults
	configFile := os.Getenv("REQUISITION_CONFIG_FILE")
	if configFile == "" {
		configFile = "requisition.yaml"
	}

	if err := LoadFromFile(configFile); err != nil {
		log.Printf("Failed to load config file %s: %v, using defaults", configFile, err)
	}

	// Apply environment variable overrides (highest priority)
	ApplyEnvOverrides()
}

func LoadDefault() {
	config := defaultConfig
	_loaded = &config
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := defaultConfig

	// Merge YAML values over defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	_loaded = &cfg
	return nil
}

// ApplyEnvOverrides overrides loaded configuration with environment variables if present
func ApplyEnvOverrides() {
	config := *_loaded

	if dbHost := os.Getenv("REQUISITION_DB_HOST"); dbHost != "" {
		config.Common.Postgres.Host = dbHost
	}
	if dbPort := os.Getenv("REQUISITION_DB_PORT"); dbPort != "" {
		if port, err := strconv.Atoi(dbPort); err == nil {
			config.Common.Postgres.Port = port
		}
	}
	if dbUser := os.Getenv("REQUISITION_DB_USER"); dbUser != "" {
		config.Common.Postgres.User = dbUser
	}
	if dbPassword := os.Getenv("REQUISITION_DB_PASSWORD"); dbPassword != "" {
		config.Common.Postgres.Password = dbPassword
	}
	if dbName := os.Getenv("REQUISITION_DB_NAME"); dbName != "" {
		config.Common.Postgres.Database = dbName
	}

	if httpHost := os.Getenv("REQUISITION_HTTP_HOST"); httpHost != "" {
		config.Common.Http.Host = httpHost
	}
	if httpPort := os.Getenv("REQUISITION_HTTP_PORT"); httpPort != "" {
		if port, err := strconv.Atoi(httpPort); err == nil {
			config.Common.Http.Port = port
		}
	}
	if origin := os.Getenv("REQUISITION_ALLOWED_ORIGIN"); origin != "" {
		config.Common.Http.AllowedOrigins = []string{origin}
	}

	if logLevel := os.Getenv("REQUISITION_LOG_LEVEL"); logLevel != "" {
		config.Common.Log.Level = logLevel
	}
	if logFormat := os.Getenv("REQUISITION_LOG_FORMAT"); logFormat != "" {
		config.Common.Log.Format = logFormat
	}

	if adminID := os.Getenv("REQUISITION_ADMIN_EXTERNAL_ID"); adminID != "" {
		config.Common.Bootstrap.AdminExternalID = adminID
	}
	if adminPassword := os.Getenv("REQUISITION_ADMIN_PASSWORD"); adminPassword != "" {
		config.Common.Bootstrap.AdminPassword = adminPassword
	}
	if adminName := os.Getenv("REQUISITION_ADMIN_NAME"); adminName != "" {
		config.Common.Bootstrap.AdminName = adminName
	}

	_loaded = &config
}

// set sane defaults for all of the config options. when loading the config from
// the file, any options that are not set will be set to these defaults.
var defaultConfig = Config{
	Common: Common{
		Log: logConfig{
			Level:  "info",
			Format: "json",
		},
		Http: httpConfig{
			Host:           "0.0.0.0",
			Port:           5000,
			AllowedOrigins: []string{"*"},
		},
		Postgres: postgresConfig{
			User:               "postgres",
			Password:           "postgres",
			Host:               "localhost",
			Port:               5432,
			Database:           "requisition",
			MaxOpenConnections: 10,
		},
		Bootstrap: bootstrapConfig{
			AdminExternalID: "admin123",
			AdminPassword:   "password123",
			AdminName:       "Admin User",
		},
	},
}

type Common struct {
	Log       logConfig       `yaml:"log"`
	Http      httpConfig      `yaml:"http"`
	Postgres  postgresConfig  `yaml:"postgres"`
	Bootstrap bootstrapConfig `yaml:"bootstrap"`
}

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type httpConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type postgresConfig struct {
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	Database           string `yaml:"database"`
	MaxOpenConnections int    `yaml:"max_open_connections"`
}

func (c postgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		url.QueryEscape(c.Database),
	)
}

type bootstrapConfig struct {
	AdminExternalID string `yaml:"admin_external_id"`
	AdminPassword   string `yaml:"admin_password"`
	AdminName       string `yaml:"admin_name"`
}

// Get returns the loaded configuration
func Get() *Config {
	return _loaded
}

// Logger returns the logging configuration
func Logger() logConfig {
	return _loaded.Common.Log
}

// Http returns the HTTP server configuration
func Http() httpConfig {
	return _loaded.Common.Http
}

// Postgres returns the PostgreSQL configuration
func Postgres() postgresConfig {
	return _loaded.Common.Postgres
}

// Bootstrap returns the default-admin bootstrap configuration
func Bootstrap() bootstrapConfig {
	return _loaded.Common.Bootstrap
}
