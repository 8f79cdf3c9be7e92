package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const envPrefix = "STOCKKEEPER_"

// dotEnvFile is loaded into the process environment before the variables are
// read. Variables that are already set keep their values.
var dotEnvFile = ".env"

// parseEnv overlays Config with STOCKKEEPER_* environment variables.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
	applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	strs := map[string]*string{
		"DATABASE_DSN":       &cfg.DatabaseDSN,
		"LOG_FILE":           &cfg.LogFile,
		"LOG_LEVEL":          &cfg.LogLevel,
		"HASH_PEPPER":        &cfg.HashPepper,
		"SESSION_SECRET":     &cfg.SessionSecret,
		"SMS_GATEWAY":        &cfg.SMSGateway,
		"SMTP_HOST":          &cfg.SMTPHost,
		"SMTP_USER":          &cfg.SMTPUser,
		"SMTP_PASSWORD":      &cfg.SMTPPassword,
		"SMTP_FROM":          &cfg.SMTPFrom,
		"SMS_CARRIER_DOMAIN": &cfg.SMSCarrierDomain,
		"WEBHOOK_URL":        &cfg.WebhookURL,
	}
	for name, dst := range strs {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}

	if v, ok := lookup(envPrefix + "SMTP_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.SMTPPort = port
	}
}
