package cli

import (
	"context"
	"os"

	"github.com/easyflowhq/easyflow/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for email, company name, and password and attempts to
// create an account. A successful registration also signs the user in.
//
// The password byte slice is wiped before returning. Failures are reported
// to the user; the session manager logs the underlying cause.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	companyName, err := getSimpleText(a.reader, "Enter company name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if !a.session.Register(ctx, email, string(password), companyName) {
		printlnFn("Registration failed, please try again.")
		return nil
	}

	printlnFn("Success!")
	return nil
}

// Login prompts for credentials and tries to authenticate. On success the
// session manager persists the session and starts the background refresh.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if !a.session.Login(ctx, email, string(password)) {
		printlnFn("Login failed, please check your credentials.")
		return nil
	}

	printlnFn("Welcome back!")
	return nil
}

// Logout ends the session. It never fails: the remote call is best effort
// and the local state is cleared unconditionally.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	printlnFn("Logged out.")
	return nil
}
