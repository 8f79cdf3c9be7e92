package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/stockkeeper/internal/settings"
)

// parseToggle reads "on" or "off".
func parseToggle(args []string) (bool, bool) {
	if len(args) == 0 {
		return false, false
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		return true, true
	case "off", "false", "0":
		return false, true
	}
	return false, false
}

func (a *App) ShowSettings(ctx context.Context) error {
	p, err := a.prefs.Policy(ctx)
	if err != nil {
		return a.fail(ctx, "failed to read settings", err)
	}
	a.sayf("SMS notifications:   %s", onOff(p.SMSEnabled))
	a.sayf("Low stock threshold: %d", p.MinimumThreshold)
	a.sayf("Out of stock alerts: %s", onOff(p.NotifyAtZero))
	if a.isLoggedIn() {
		a.sayf("Two-factor login:    %s", onOff(a.prefs.TwoFactorEnabled(ctx, a.user)))
	}
	return nil
}

// SMS toggles SMS notifications. Enabling asks for confirmation; disabling
// also turns off two-factor login for the current user.
func (a *App) SMS(ctx context.Context, args []string) error {
	on, ok := parseToggle(args)
	if !ok {
		a.say("Usage: sms on|off")
		return errUsage
	}

	if on {
		a.say("Enabling SMS notifications lets stockkeeper text you stock alerts and use two-factor authentication at login.")
		if r := Prompt(a.reader, "Enable SMS notifications? [y/N]", a.out); r.Outcome != Confirmed {
			a.say("SMS notifications unchanged")
			return nil
		}
		if err := a.prefs.SetSMSEnabled(ctx, a.user, true); err != nil {
			return a.fail(ctx, "failed to enable sms", err)
		}
		a.say("SMS notifications enabled")
		return nil
	}

	had2FA := a.isLoggedIn() && a.prefs.TwoFactorEnabled(ctx, a.user)
	if err := a.prefs.SetSMSEnabled(ctx, a.user, false); err != nil {
		return a.fail(ctx, "failed to disable sms", err)
	}
	a.say("SMS notifications disabled")
	if had2FA {
		a.say("2FA has been disabled as SMS notifications are turned off")
	}
	return nil
}

func (a *App) TwoFactor(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	on, ok := parseToggle(args)
	if !ok {
		a.say("Usage: 2fa on|off")
		return errUsage
	}
	err := a.prefs.SetTwoFactor(ctx, a.user, on)
	if errors.Is(err, settings.ErrSMSDisabled) {
		a.say("2FA cannot be enabled as SMS notifications are disabled.")
		return err
	}
	if err != nil {
		return a.fail(ctx, "failed to update 2fa", err)
	}
	a.sayf("Two-factor login %s", onOff(on))
	return nil
}

func (a *App) Zero(ctx context.Context, args []string) error {
	on, ok := parseToggle(args)
	if !ok {
		a.say("Usage: zero on|off")
		return errUsage
	}
	err := a.prefs.SetNotifyAtZero(ctx, on)
	if errors.Is(err, settings.ErrSMSDisabled) {
		a.say("Inventory zero notifications require SMS to be enabled.")
		return err
	}
	if err != nil {
		return a.fail(ctx, "failed to update zero alerts", err)
	}
	a.sayf("Out of stock alerts %s", onOff(on))
	return nil
}

func (a *App) Threshold(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.say("Usage: threshold <n>")
		return errUsage
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		a.say("Threshold must be a whole number of zero or more")
		return errUsage
	}
	if err := a.prefs.SetMinimumThreshold(ctx, n); err != nil {
		return a.fail(ctx, "failed to set threshold", err)
	}
	a.sayf("Low stock threshold set to %d", n)
	return nil
}
