package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/flagx"
)

// parseFlags overlays Config with command-line flags.
//
//	-d string   database DSN
//	-l string   log file
//	-v string   log level
//	-H string   password hasher (sha256|argon2id)
//	-s string   session signing secret
//	-t int      one-time code validity, minutes (0 disables expiry)
//	-g string   SMS gateway (console|smtp|webhook)
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l", "-v", "-H", "-s", "-t", "-g"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "log file")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.Hasher, "H", cfg.Hasher, "password hasher (sha256|argon2id)")
	fs.StringVar(&cfg.SessionSecret, "s", cfg.SessionSecret, "session signing secret")
	challengeTTL := fs.Int("t", int(cfg.ChallengeTTL.Minutes()), "one-time code validity (in minutes)")
	fs.StringVar(&cfg.SMSGateway, "g", cfg.SMSGateway, "SMS gateway (console|smtp|webhook)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ChallengeTTL = time.Duration(*challengeTTL) * time.Minute
}
