package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskdesk/internal/client/api"
	"github.com/dmitrijs2005/taskdesk/internal/client/navigation"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
)

var errAlreadyLoggedIn = errors.New("already logged in")

// Login prompts for credentials, authenticates against the backend and
// routes to the home screen of the user's role.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.println("Already logged in. Type 'logout' first.")
		return errAlreadyLoggedIn
	}

	email, err := GetSimpleText(a.in, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := a.password()
	if err != nil {
		return err
	}

	resp, err := a.auth.Login(ctx, email, password)
	if err != nil {
		a.println("Login failed:", loginMessage(err))
		return err
	}
	if err := a.sessions.Login(ctx, resp.Token, resp.User); err != nil {
		a.logger.Warn(ctx, "backend returned an unusable session", logging.KeyError, err)
		a.println("Login failed: the server returned an invalid session.")
		return err
	}

	a.monitor.SessionStarted(ctx)
	a.Navigate(navigation.Home(resp.User))
	return nil
}

func loginMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == 0 {
		return "server is unreachable"
	}
	return err.Error()
}

// Logout ends the session and returns to the login screen.
func (a *App) Logout(ctx context.Context) {
	a.endSession(ctx)
	a.println("Logged out.")
	a.Navigate(navigation.LoginScreen(false))
}

func (a *App) endSession(ctx context.Context) {
	a.sessions.Logout(ctx)
	a.monitor.SessionEnded(ctx)
}

// ResetLocalData ends the session, if any, and wipes everything the client
// keeps on disk.
func (a *App) ResetLocalData(ctx context.Context) {
	if a.isLoggedIn() {
		a.endSession(ctx)
	}
	if err := a.store.Clear(ctx); err != nil {
		a.logger.Warn(ctx, "local data not cleared", logging.KeyError, err)
		a.println("Error:", err)
		return
	}
	a.println("Local data cleared.")
	a.Navigate(navigation.LoginScreen(false))
}
