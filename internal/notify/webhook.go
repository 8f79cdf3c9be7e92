package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/netx"
)

type webhookMessage struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// WebhookGateway posts {"to", "body"} to an HTTP SMS provider.
type WebhookGateway struct {
	url    string
	client *http.Client
	log    logging.Logger
}

func NewWebhookGateway(url string, timeout time.Duration, log logging.Logger) *WebhookGateway {
	if log == nil {
		log = logging.Nop()
	}
	return &WebhookGateway{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    log.With("component", "webhook_gateway"),
	}
}

func (g *WebhookGateway) Send(ctx context.Context, destination, body string) error {
	if g.url == "" {
		return ErrNotConfigured
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return ErrNoDestination
	}
	if err := netx.PostJSON(ctx, g.client, g.url, webhookMessage{To: destination, Body: body}); err != nil {
		return fmt.Errorf("post sms: %w", err)
	}
	g.log.Info(ctx, "sms handed to provider", "to", MaskPhone(destination))
	return nil
}
