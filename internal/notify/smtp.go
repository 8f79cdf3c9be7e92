package notify

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/dmitrijs2005/stockkeeper/internal/logging"
)

// SMTPConfig describes an email-to-SMS relay: the message is mailed to
// <digits>@<CarrierDomain>.
type SMTPConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	From          string
	CarrierDomain string
}

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPGateway delivers texts through a carrier's email-to-SMS address.
type SMTPGateway struct {
	cfg    SMTPConfig
	sender mailSender
	log    logging.Logger
}

func NewSMTPGateway(cfg SMTPConfig, log logging.Logger) *SMTPGateway {
	if log == nil {
		log = logging.Nop()
	}
	return &SMTPGateway{
		cfg:    cfg,
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		log:    log.With("component", "smtp_gateway"),
	}
}

func (g *SMTPGateway) Send(ctx context.Context, destination, body string) error {
	if g.cfg.Host == "" || g.cfg.From == "" || g.cfg.CarrierDomain == "" {
		return ErrNotConfigured
	}
	to := smsAddress(destination, g.cfg.CarrierDomain)
	if to == "" {
		return ErrNoDestination
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", g.cfg.From)
	m.SetHeader("To", to)
	m.SetBody("text/plain", body)

	if err := g.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	g.log.Info(ctx, "sms handed to relay", "to", MaskPhone(destination))
	return nil
}

// smsAddress keeps only the digits of phone; an empty result means there
// is nowhere to send.
func smsAddress(phone, domain string) string {
	digits := onlyDigits(phone)
	if digits == "" {
		return ""
	}
	return digits + "@" + strings.TrimPrefix(domain, "@")
}
