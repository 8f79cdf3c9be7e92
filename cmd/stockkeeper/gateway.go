package main

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/stockkeeper/internal/config"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/notify"
)

func newGateway(cfg *config.Config, log logging.Logger) (notify.Gateway, error) {
	switch cfg.SMSGateway {
	case "", "log", "console":
		return notify.NewConsoleGateway(os.Stdout), nil
	case "smtp":
		return notify.NewSMTPGateway(notify.SMTPConfig{
			Host:          cfg.SMTPHost,
			Port:          cfg.SMTPPort,
			User:          cfg.SMTPUser,
			Password:      cfg.SMTPPassword,
			From:          cfg.SMTPFrom,
			CarrierDomain: cfg.SMSCarrierDomain,
		}, log), nil
	case "webhook":
		return notify.NewWebhookGateway(cfg.WebhookURL, cfg.WebhookTimeout, log), nil
	default:
		return nil, fmt.Errorf("unknown sms gateway %q", cfg.SMSGateway)
	}
}
