package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort           = 8080
	DefaultHost           = "127.0.0.1"
	DefaultLogLevel       = "info"
	DefaultMaxFileSize    = 50 * 1024 * 1024 // 50MB
	DefaultOCRLanguage    = "eng"
	DefaultTimeoutSeconds = 30

	// Directory permissions
	DefaultDirPerm = 0o750
)

// Config holds all configuration for the certificate intelligence server
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Certificate processing configuration
	CertificateDirectory string
	RosterPath           string
	CatalogPath          string
	MaxFileSize          int64 // Maximum upload size in bytes
	OCRLanguage          string
	TimeoutSeconds       int

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		// Fallback to current directory if working directory cannot be determined
		currentDir = "."
	}

	return &Config{
		Mode:                 ModeStdio, // Default to stdio mode for MCP compatibility
		Host:                 DefaultHost,
		Port:                 DefaultPort,
		CertificateDirectory: currentDir,
		Version:              "1.0.0",
		ServerName:           "certintel",
		LogLevel:             DefaultLogLevel,
		MaxFileSize:          DefaultMaxFileSize,
		OCRLanguage:          DefaultOCRLanguage,
		TimeoutSeconds:       DefaultTimeoutSeconds,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.CertificateDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.CertificateDirectory); err == nil {
			cfg.CertificateDirectory = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("CERTINTEL")
	viper.AutomaticEnv()

	// Define flags with Viper
	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.CertificateDirectory)
	viper.SetDefault("roster", cfg.RosterPath)
	viper.SetDefault("catalog", cfg.CatalogPath)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("ocrlanguage", cfg.OCRLanguage)
	viper.SetDefault("timeout", cfg.TimeoutSeconds)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.CertificateDirectory, "Directory containing certificate files")
	pflag.String("roster", cfg.RosterPath, "Path to the member roster JSON file")
	pflag.String("catalog", cfg.CatalogPath, "Path to the training-class catalog JSON file")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum certificate file size in bytes")
	pflag.String("ocrlanguage", cfg.OCRLanguage, "Tesseract language for OCR passes")
	pflag.Int("timeout", cfg.TimeoutSeconds, "Per-extraction timeout in seconds")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("dir", pflag.Lookup("dir"))
	_ = viper.BindPFlag("roster", pflag.Lookup("roster"))
	_ = viper.BindPFlag("catalog", pflag.Lookup("catalog"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("ocrlanguage", pflag.Lookup("ocrlanguage"))
	_ = viper.BindPFlag("timeout", pflag.Lookup("timeout"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nCertIntel - certificate field extraction and recipient matching for training records\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                          "+
			"# stdio mode, current directory (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/path/to/certs --roster=roster.json # stdio mode with roster\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --dir=/path/to/certs        # server mode\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --host=0.0.0.0 --port=8081  # server on all interfaces\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  CERTINTEL_MODE        Server mode\n")
		fmt.Fprintf(os.Stderr, "  CERTINTEL_HOST        Server host\n")
		fmt.Fprintf(os.Stderr, "  CERTINTEL_PORT        Server port\n")
		fmt.Fprintf(os.Stderr, "  CERTINTEL_DIR         Certificate directory\n")
		fmt.Fprintf(os.Stderr, "  CERTINTEL_ROSTER      Member roster JSON path\n")
		fmt.Fprintf(os.Stderr, "  CERTINTEL_CATALOG     Class catalog JSON path\n")
		fmt.Fprintf(os.Stderr, "  CERTINTEL_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  CERTINTEL_MAXFILESIZE Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  CERTINTEL_OCRLANGUAGE Tesseract OCR language\n")
		fmt.Fprintf(os.Stderr, "  CERTINTEL_TIMEOUT     Per-extraction timeout in seconds\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.CertificateDirectory = viper.GetString("dir")
	cfg.RosterPath = viper.GetString("roster")
	cfg.CatalogPath = viper.GetString("catalog")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.OCRLanguage = viper.GetString("ocrlanguage")
	cfg.TimeoutSeconds = viper.GetInt("timeout")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	// Validate certificate directory
	if c.CertificateDirectory == "" {
		return errors.New("certificate directory cannot be empty")
	}

	// Check if certificate directory exists, create if it doesn't
	if _, err := os.Stat(c.CertificateDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.CertificateDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create certificate directory %s: %w", c.CertificateDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access certificate directory %s: %w", c.CertificateDirectory, err)
	}

	// Roster and catalog are optional, but must exist when configured
	if c.RosterPath != "" {
		if _, err := os.Stat(c.RosterPath); err != nil {
			return fmt.Errorf("cannot access roster file %s: %w", c.RosterPath, err)
		}
	}
	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); err != nil {
			return fmt.Errorf("cannot access catalog file %s: %w", c.CatalogPath, err)
		}
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	// Validate OCR language
	if c.OCRLanguage == "" {
		return errors.New("OCR language cannot be empty")
	}

	// Validate timeout
	if c.TimeoutSeconds <= 0 {
		return errors.New("timeout must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, CertificateDirectory: %s, LogLevel: %s, MaxFileSize: %d, OCRLanguage: %s, TimeoutSeconds: %d}",
		c.Mode, c.Host, c.Port, c.CertificateDirectory, c.LogLevel, c.MaxFileSize, c.OCRLanguage, c.TimeoutSeconds)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
