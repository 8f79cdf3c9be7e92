package alerts

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/notify"
)

// PhoneBook resolves an account's phone number.
type PhoneBook interface {
	GetPhoneNumber(ctx context.Context, email string) (string, error)
}

// Dispatcher turns a fired Decision into a text message.
type Dispatcher struct {
	phones  PhoneBook
	gateway notify.Gateway
	log     logging.Logger
}

func NewDispatcher(phones PhoneBook, gw notify.Gateway, log logging.Logger) *Dispatcher {
	if log == nil {
		log = logging.Nop()
	}
	return &Dispatcher{phones: phones, gateway: gw, log: log.With("component", "alerts")}
}

// Message composes the alert text, or "" for Suppress.
func Message(d Decision, itemName string, p Policy) string {
	switch d {
	case FireOutOfStock:
		return fmt.Sprintf("Stock alert: out of inventory for %s", itemName)
	case FireLowStock:
		return fmt.Sprintf("Stock alert: low inventory - %s is down to %d", itemName, p.MinimumThreshold)
	default:
		return ""
	}
}

// Dispatch sends the alert for d to owner's phone. It reports whether a
// message was handed to the gateway; failures are logged only.
func (d *Dispatcher) Dispatch(ctx context.Context, owner, itemName string, dec Decision, p Policy) bool {
	body := Message(dec, itemName, p)
	if body == "" {
		return false
	}
	log := d.log.With("decision", dec.String())

	phone, err := d.phones.GetPhoneNumber(ctx, owner)
	if err != nil {
		log.Warn(ctx, "alert not sent, phone number unavailable", "error", err)
		return false
	}
	sent := notify.TrySend(ctx, d.gateway, log, phone, body)
	if sent {
		log.Info(ctx, "alert sent", "item", itemName)
	}
	return sent
}
