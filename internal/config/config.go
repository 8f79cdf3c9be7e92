// Package config loads runtime configuration for the stockkeeper CLI.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config (see parseJson).
//  3. STOCKKEEPER_* environment variables, including a .env file (see parseEnv).
//  4. Command-line flags (see parseFlags).
package config

import "time"

// Config holds runtime settings.
type Config struct {
	// DatabaseDSN is the SQLite file (or DSN) holding users, items and settings.
	DatabaseDSN string

	LogFile   string
	LogLevel  string
	LogFormat string

	// Hasher selects the password digest: "sha256" or "argon2id".
	Hasher string
	// HashPepper is the installation-wide secret mixed into argon2id digests.
	HashPepper string

	// SessionSecret signs the persisted logged-in marker. Empty means a
	// random key generated on first run and kept in the database.
	SessionSecret string
	SessionTTL    time.Duration

	// ChallengeTTL bounds how long a one-time login code stays valid.
	// Zero disables expiry.
	ChallengeTTL time.Duration

	// SMSGateway is "console" (print messages to the terminal; "log" is an
	// alias), "smtp" (deliver through a carrier email-to-SMS domain) or
	// "webhook" (POST to an HTTP SMS provider).
	SMSGateway       string
	WebhookURL       string
	WebhookTimeout   time.Duration
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPassword     string
	SMTPFrom         string
	SMSCarrierDomain string
}

// LoadDefaults populates c with defaults suitable for a local install.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "stockkeeper.db"
	c.LogFile = "stockkeeper.log"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.Hasher = "sha256"
	c.SessionTTL = 30 * 24 * time.Hour
	c.ChallengeTTL = 10 * time.Minute
	c.SMSGateway = "log"
	c.SMTPPort = 587
	c.WebhookTimeout = 10 * time.Second
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
