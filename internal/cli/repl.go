package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printFn and printlnFn are test seams for REPL output. In tests, replace them with stubs.
var (
	printFn   = fmt.Print
	printlnFn = fmt.Println
)

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Inc(ctx context.Context, args []string) error
	Dec(ctx context.Context, args []string) error
	Why(ctx context.Context, args []string) error
	ShowSettings(ctx context.Context) error
	SMS(ctx context.Context, args []string) error
	TwoFactor(ctx context.Context, args []string) error
	Zero(ctx context.Context, args []string) error
	Threshold(ctx context.Context, args []string) error
}

// runREPL reads commands line by line and dispatches them to a.
//
//	Not logged in:
//	  - help                 show available commands
//	  - register             create an account
//	  - login                authenticate
//	  - sms on|off           toggle SMS notifications
//	  - exit | quit          leave the program
//
//	Logged in, in addition:
//	  - list [name|qty]      list items, optionally sorted
//	  - add                  add an item
//	  - edit <id>            change name and quantity
//	  - delete <id>          delete an item
//	  - inc <id> / dec <id>  change quantity by one
//	  - why <id>             explain what the next dec would trigger
//	  - settings             show alert and login settings
//	  - 2fa on|off           toggle two-factor login
//	  - zero on|off          toggle out-of-stock alerts
//	  - threshold <n>        set the low-stock threshold
//	  - logout
//
// Handlers report their own errors to the user; the loop keeps going. It
// exits on end of input or on exit/quit.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("stock%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: list [name|qty], add, edit <id>, delete <id>, inc <id>, dec <id>, why <id>, settings, sms on|off, 2fa on|off, zero on|off, threshold <n>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, sms on|off, exit")
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "l", "list":
			_ = a.List(ctx, args)
		case "add":
			_ = a.Add(ctx)
		case "edit":
			_ = a.Edit(ctx, args)
		case "delete", "rm":
			_ = a.Delete(ctx, args)
		case "inc", "+":
			_ = a.Inc(ctx, args)
		case "dec", "-":
			_ = a.Dec(ctx, args)
		case "why":
			_ = a.Why(ctx, args)
		case "settings":
			_ = a.ShowSettings(ctx)
		case "sms":
			_ = a.SMS(ctx, args)
		case "2fa":
			_ = a.TwoFactor(ctx, args)
		case "zero":
			_ = a.Zero(ctx, args)
		case "threshold":
			_ = a.Threshold(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
