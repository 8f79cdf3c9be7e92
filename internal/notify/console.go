package notify

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ConsoleGateway prints messages to a writer instead of sending them.
// It stands in for a real SMS provider during local use.
type ConsoleGateway struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsoleGateway(w io.Writer) *ConsoleGateway {
	return &ConsoleGateway{w: w}
}

func (g *ConsoleGateway) Send(ctx context.Context, destination, body string) error {
	if strings.TrimSpace(destination) == "" {
		return ErrNoDestination
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, err := fmt.Fprintf(g.w, "[sms to %s] %s\n", destination, body); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}
