package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/stockkeeper/internal/flagx"
	"github.com/dmitrijs2005/stockkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Only fields present in
// the file override the current values.
type JsonConfig struct {
	DatabaseDSN      *string         `json:"database_dsn"`
	LogFile          *string         `json:"log_file"`
	LogLevel         *string         `json:"log_level"`
	LogFormat        *string         `json:"log_format"`
	Hasher           *string         `json:"hasher"`
	HashPepper       *string         `json:"hash_pepper"`
	SessionSecret    *string         `json:"session_secret"`
	SessionTTL       *timex.Duration `json:"session_ttl"`
	ChallengeTTL     *timex.Duration `json:"challenge_ttl"`
	SMSGateway       *string         `json:"sms_gateway"`
	SMTPHost         *string         `json:"smtp_host"`
	SMTPPort         *int            `json:"smtp_port"`
	SMTPUser         *string         `json:"smtp_user"`
	SMTPPassword     *string         `json:"smtp_password"`
	SMTPFrom         *string         `json:"smtp_from"`
	SMSCarrierDomain *string         `json:"sms_carrier_domain"`
	WebhookURL       *string         `json:"webhook_url"`
	WebhookTimeout   *timex.Duration `json:"webhook_timeout"`
}

// parseJson overlays Config with the file named by -c/-config. It panics on
// read or decode errors; a missing flag means nothing is loaded.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.LogFile, jc.LogFile)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.Hasher, jc.Hasher)
	setString(&cfg.HashPepper, jc.HashPepper)
	setString(&cfg.SessionSecret, jc.SessionSecret)
	setString(&cfg.SMSGateway, jc.SMSGateway)
	setString(&cfg.SMTPHost, jc.SMTPHost)
	setString(&cfg.SMTPUser, jc.SMTPUser)
	setString(&cfg.SMTPPassword, jc.SMTPPassword)
	setString(&cfg.SMTPFrom, jc.SMTPFrom)
	setString(&cfg.SMSCarrierDomain, jc.SMSCarrierDomain)
	setString(&cfg.WebhookURL, jc.WebhookURL)

	if jc.SMTPPort != nil {
		cfg.SMTPPort = *jc.SMTPPort
	}
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.ChallengeTTL != nil {
		cfg.ChallengeTTL = jc.ChallengeTTL.Duration
	}
	if jc.WebhookTimeout != nil {
		cfg.WebhookTimeout = jc.WebhookTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
