package cli

import (
	"context"

	"github.com/dmitrijs2005/stockkeeper/internal/auth"
	"github.com/dmitrijs2005/stockkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register collects the registration form and creates the account. It does
// not log the user in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)
	phone, err := getSimpleText(a.reader, "Enter phone number", a.out)
	if err != nil {
		return err
	}

	res := <-a.auth.RegisterAsync(ctx, auth.RegistrationRequest{
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
		Phone:           phone,
	})
	if res.Err != nil {
		a.say(auth.UserMessage(res.Err))
		return res.Err
	}
	a.say("Registration successful - Please log in")
	return nil
}

// Login authenticates and, when required, asks for the SMS code. On success
// the session is remembered across restarts.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	smsOn, err := a.prefs.SMSEnabled(ctx)
	if err != nil {
		return a.fail(ctx, "failed to read sms setting", err)
	}

	res := <-a.auth.LoginAsync(ctx, auth.LoginRequest{Email: email, Password: string(password)}, smsOn)
	if res.Err != nil {
		a.say(auth.UserMessage(res.Err))
		return res.Err
	}
	s := res.Session

	if s.State() == auth.StateAwaitingCode {
		if !s.CodeDelivered() {
			a.say("The verification code could not be sent")
		}
		answer := Prompt(a.reader, "Enter the verification code sent to your phone (empty to cancel)", a.out)
		if answer.Outcome != Input {
			a.say("Login cancelled")
			return nil
		}
		if err := s.Verify(answer.Text); err != nil {
			a.say(auth.UserMessage(err))
			return err
		}
	}

	a.user = s.Email()
	if err := a.prefs.SaveSession(ctx, a.user); err != nil {
		a.log.Warn(ctx, "session not remembered", "error", err)
	}
	a.sayf("Logged in as %s", a.user)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.prefs.ClearSession(ctx); err != nil {
		return a.fail(ctx, "failed to clear session", err)
	}
	a.user = ""
	a.say("Logged out")
	return nil
}
