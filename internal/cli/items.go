package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/stockkeeper/internal/alerts"
	"github.com/dmitrijs2005/stockkeeper/internal/common"
	"github.com/dmitrijs2005/stockkeeper/internal/inventory"
)

var errUsage = errors.New("usage")

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errUsage
	}
	return id, nil
}

func parseQuantity(s string) (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || q < 0 {
		return 0, fmt.Errorf("%w: quantity must be a whole number of zero or more", common.ErrorValidation)
	}
	return q, nil
}

// itemError prints a user-facing message for err and returns it.
func (a *App) itemError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		a.say("Item not found")
		return err
	case errors.Is(err, common.ErrorValidation):
		a.say("Item name is required and quantity must be zero or more")
		return err
	default:
		return a.fail(ctx, "inventory operation failed", err)
	}
}

func (a *App) List(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	order := inventory.SortInsertion
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "name":
			order = inventory.SortByName
		case "qty", "quantity":
			order = inventory.SortByQuantity
		default:
			a.say("Usage: list [name|qty]")
			return errUsage
		}
	}

	items, err := a.inventory.List(ctx, a.user, order)
	if err != nil {
		return a.itemError(ctx, err)
	}
	if len(items) == 0 {
		a.say("No items yet - use 'add' to create one")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", it.ID, it.Name, it.Quantity)
	}
	return tw.Flush()
}

func (a *App) Add(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	name, err := getSimpleText(a.reader, "Item name", a.out)
	if err != nil {
		return err
	}
	qtyText, err := getSimpleText(a.reader, "Quantity", a.out)
	if err != nil {
		return err
	}
	if name == "" || qtyText == "" {
		a.say("All fields are required")
		return common.ErrorValidation
	}
	qty, err := parseQuantity(qtyText)
	if err != nil {
		return a.itemError(ctx, err)
	}

	item, err := a.inventory.Add(ctx, a.user, name, qty)
	if err != nil {
		return a.itemError(ctx, err)
	}
	a.sayf("Added %s (id %d)", item.Name, item.ID)
	return nil
}

// Edit prompts for a new name and quantity; an empty answer keeps the
// current value.
func (a *App) Edit(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	id, err := parseID(args)
	if err != nil {
		a.say("Usage: edit <id>")
		return err
	}
	item, err := a.inventory.Get(ctx, a.user, id)
	if err != nil {
		return a.itemError(ctx, err)
	}

	name := item.Name
	if r := Prompt(a.reader, fmt.Sprintf("Item name [%s]", item.Name), a.out); r.Outcome == Input {
		name = r.Text
	}
	qty := item.Quantity
	if r := Prompt(a.reader, fmt.Sprintf("Quantity [%d]", item.Quantity), a.out); r.Outcome == Input {
		if qty, err = parseQuantity(r.Text); err != nil {
			return a.itemError(ctx, err)
		}
	}

	c, err := a.inventory.Update(ctx, a.user, id, name, qty)
	if err != nil {
		return a.itemError(ctx, err)
	}
	a.say("Item updated")
	a.reportChange(c)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	id, err := parseID(args)
	if err != nil {
		a.say("Usage: delete <id>")
		return err
	}
	if r := Prompt(a.reader, "This will delete this item from inventory completely. Are you sure? [y/N]", a.out); r.Outcome != Confirmed {
		a.say("Delete cancelled")
		return nil
	}
	if err := a.inventory.Delete(ctx, a.user, id); err != nil {
		return a.itemError(ctx, err)
	}
	a.say("Item deleted successfully")
	return nil
}

func (a *App) Inc(ctx context.Context, args []string) error {
	return a.step(ctx, args, "inc", a.inventory.Increment)
}

func (a *App) Dec(ctx context.Context, args []string) error {
	return a.step(ctx, args, "dec", a.inventory.Decrement)
}

func (a *App) step(ctx context.Context, args []string, name string, fn func(context.Context, string, int64) (*inventory.Change, error)) error {
	if !a.requireLogin() {
		return nil
	}
	id, err := parseID(args)
	if err != nil {
		a.sayf("Usage: %s <id>", name)
		return err
	}
	c, err := fn(ctx, a.user, id)
	if err != nil {
		return a.itemError(ctx, err)
	}
	a.reportChange(c)
	return nil
}

func (a *App) reportChange(c *inventory.Change) {
	a.sayf("%s: %d", c.Item.Name, c.Item.Quantity)
	switch {
	case c.Decision == alerts.Suppress:
	case c.Alerted:
		a.sayf("Alert sent (%s)", c.Decision)
	default:
		a.sayf("Alert could not be sent (%s)", c.Decision)
	}
}

// Why explains what decrementing the item once would trigger under the
// current settings.
func (a *App) Why(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	id, err := parseID(args)
	if err != nil {
		a.say("Usage: why <id>")
		return err
	}
	item, err := a.inventory.Get(ctx, a.user, id)
	if err != nil {
		return a.itemError(ctx, err)
	}
	p, err := a.prefs.Policy(ctx)
	if err != nil {
		return a.fail(ctx, "failed to read alert policy", err)
	}

	next := item.Quantity - 1
	switch {
	case item.Quantity == 0:
		a.sayf("%s is already at 0; dec changes nothing and sends no alert", item.Name)
	case !p.SMSEnabled:
		a.say("SMS notifications are off; no alert is sent")
	default:
		d := alerts.Decide(item.Quantity, next, p)
		if d == alerts.Suppress {
			a.sayf("dec takes %s to %d; alerts fire only at exactly %d or at 0 with zero alerts on (zero alerts: %s)",
				item.Name, next, p.MinimumThreshold, onOff(p.NotifyAtZero))
		} else {
			a.sayf("dec takes %s to %d and would send: %q", item.Name, next, alerts.Message(d, item.Name, p))
		}
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
