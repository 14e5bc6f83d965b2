// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON file and environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"port"`

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string `json:"database_dsn"`

	// Config is the path to the Config file.
	Config string `json:"-"`

	// SessionDir is the badger directory for session state. Empty keeps sessions in memory.
	SessionDir string `json:"session_dir"`

	// SessionTTL bounds the lifetime of a visitor session and its unlocks.
	// The config file spells it as a duration string such as "24h".
	SessionTTL time.Duration `json:"-"`

	// CookieName is the name of the session cookie.
	CookieName string `json:"cookie_name"`

	// CookieSecure marks the session cookie Secure.
	CookieSecure bool `json:"cookie_secure"`

	// AdminToken guards the admin API. Empty disables it.
	AdminToken string `json:"admin_token"`

	// LogLevel is the zap level name.
	LogLevel string `json:"log_level"`

	// TLSCert and TLSKey are PEM files. When both are set the server speaks HTTPS.
	TLSCert string `json:"tls_cert"`
	TLSKey  string `json:"tls_key"`
}

// Parse parses the command-line flags, the config file and environment variables.
// Invalid input terminates the process.
func Parse() *Options {
	options, err := ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("error while parsing configuration: %v", err)
	}
	return options
}

// ParseArgs builds Options from args. Flags are applied first, then the JSON
// config file if it exists, then environment variables.
func ParseArgs(args []string) (*Options, error) {
	options := &Options{}

	fs := flag.NewFlagSet("pageguard", flag.ContinueOnError)
	fs.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	fs.StringVar(&options.SessionDir, "s", "", "session store directory (empty for in-memory)")
	fs.DurationVar(&options.SessionTTL, "ttl", 24*time.Hour, "session lifetime")
	fs.StringVar(&options.CookieName, "cookie", "pageguard_session", "session cookie name")
	fs.BoolVar(&options.CookieSecure, "secure", false, "mark session cookie secure")
	fs.StringVar(&options.AdminToken, "t", "", "admin API bearer token")
	fs.StringVar(&options.LogLevel, "l", "info", "log level")
	fs.StringVar(&options.TLSCert, "tls-cert", "", "server certificate PEM file")
	fs.StringVar(&options.TLSKey, "tls-key", "", "server key PEM file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
			var durations struct {
				SessionTTL string `json:"session_ttl"`
			}
			if err := json.Unmarshal(data, &durations); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
			if durations.SessionTTL != "" {
				ttl, err := time.ParseDuration(durations.SessionTTL)
				if err != nil {
					return nil, fmt.Errorf("parse config file: session_ttl: %w", err)
				}
				options.SessionTTL = ttl
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if dir := os.Getenv("SESSION_DIR"); dir != "" {
		options.SessionDir = dir
	}
	if token := os.Getenv("ADMIN_TOKEN"); token != "" {
		options.AdminToken = token
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}
	if cert := os.Getenv("TLS_CERT_FILE"); cert != "" {
		options.TLSCert = cert
	}
	if key := os.Getenv("TLS_KEY_FILE"); key != "" {
		options.TLSKey = key
	}

	if options.SessionTTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", options.SessionTTL)
	}
	if (options.TLSCert == "") != (options.TLSKey == "") {
		return nil, errors.New("tls-cert and tls-key must be set together")
	}

	return options, nil
}
