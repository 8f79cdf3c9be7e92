package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/stockkeeper/internal/alerts"
	"github.com/dmitrijs2005/stockkeeper/internal/auth"
	"github.com/dmitrijs2005/stockkeeper/internal/inventory"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/dmitrijs2005/stockkeeper/internal/models"
	"github.com/dmitrijs2005/stockkeeper/internal/settings"
)

// Authenticator runs register and login attempts off the REPL goroutine.
type Authenticator interface {
	RegisterAsync(ctx context.Context, req auth.RegistrationRequest) <-chan auth.Result
	LoginAsync(ctx context.Context, req auth.LoginRequest, smsEnabled bool) <-chan auth.Result
}

// Preferences is the settings surface used by the commands.
type Preferences interface {
	Policy(ctx context.Context) (alerts.Policy, error)
	SMSEnabled(ctx context.Context) (bool, error)
	SetSMSEnabled(ctx context.Context, owner string, enabled bool) error
	SetTwoFactor(ctx context.Context, owner string, enabled bool) error
	TwoFactorEnabled(ctx context.Context, owner string) bool
	SetNotifyAtZero(ctx context.Context, enabled bool) error
	SetMinimumThreshold(ctx context.Context, n int) error
	SaveSession(ctx context.Context, email string) error
	CurrentSession(ctx context.Context) (string, error)
	ClearSession(ctx context.Context) error
}

// Inventory is the item surface used by the commands.
type Inventory interface {
	Add(ctx context.Context, owner, name string, quantity int) (*models.Item, error)
	Get(ctx context.Context, owner string, id int64) (*models.Item, error)
	List(ctx context.Context, owner string, order inventory.SortOrder) ([]*models.Item, error)
	Update(ctx context.Context, owner string, id int64, name string, quantity int) (*inventory.Change, error)
	Delete(ctx context.Context, owner string, id int64) error
	Increment(ctx context.Context, owner string, id int64) (*inventory.Change, error)
	Decrement(ctx context.Context, owner string, id int64) (*inventory.Change, error)
}

type App struct {
	auth      Authenticator
	prefs     Preferences
	inventory Inventory
	reader    *bufio.Reader
	out       io.Writer
	log       logging.Logger
	user      string
}

func NewApp(a Authenticator, p Preferences, inv Inventory, in io.Reader, out io.Writer, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		auth:      a,
		prefs:     p,
		inventory: inv,
		reader:    bufio.NewReader(in),
		out:       out,
		log:       log.With("component", "cli"),
	}
}

// Run restores a remembered session, if any, and serves the REPL until the
// user exits.
func (a *App) Run(ctx context.Context) {
	a.restoreSession(ctx)
	a.say("Welcome to stockkeeper (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) restoreSession(ctx context.Context) {
	email, err := a.prefs.CurrentSession(ctx)
	if err != nil {
		if !errors.Is(err, settings.ErrNoSession) {
			a.log.Warn(ctx, "failed to restore session", "error", err)
		}
		return
	}
	a.user = email
}

func (a *App) isLoggedIn() bool {
	return a.user != ""
}

func (a *App) status() string {
	if a.user == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", a.user)
}

func (a *App) say(msg string) {
	fmt.Fprintln(a.out, msg)
}

func (a *App) sayf(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// requireLogin prints a hint and reports false when nobody is logged in.
func (a *App) requireLogin() bool {
	if !a.isLoggedIn() {
		a.say("Please log in first")
		return false
	}
	return true
}

// fail reports an unexpected error generically and logs the detail.
func (a *App) fail(ctx context.Context, what string, err error) error {
	a.log.Error(ctx, what, "error", err)
	a.say("Something went wrong - Please try again")
	return err
}
