package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/taskdesk/internal/client/batch"
	"github.com/dmitrijs2005/taskdesk/internal/client/navigation"
	"github.com/dmitrijs2005/taskdesk/internal/common"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
)

const (
	helpLoggedOut = "Available commands: login, reset, help, exit"
	helpTable     = "Table commands: show, menu <id>, menu, select <id> <action>, save, undo"
	helpAdmin     = "Available commands: dashboard, approve, managers, resources <managerID> [assign|unassign], logout, reset, help, exit"
	helpManager   = "Available commands: dashboard, tasks, assign, create, logout, reset, help, exit"
	helpUser      = "Available commands: dashboard, tasks, logout, reset, help, exit"
	helpRoleError = "Available commands: logout, reset, help, exit"
)

// Activity reports user input to the inactivity monitor.
func (a *App) Activity(ctx context.Context) {
	if a.isLoggedIn() {
		a.monitor.Activity(ctx)
	}
}

// Dispatch runs one command and reports whether the REPL should stop.
func (a *App) Dispatch(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "exit", "quit":
		a.println("Bye!")
		return true
	case "help":
		a.help()
		return false
	case "reset":
		a.ResetLocalData(ctx)
		return false
	}

	route := a.currentRoute()
	if route.To == navigation.Login {
		if cmd == "login" {
			_ = a.Login(ctx)
		} else {
			a.println("Unknown command:", cmd)
		}
		return false
	}

	if cmd == "logout" {
		a.Logout(ctx)
		return false
	}
	if a.tableCommand(ctx, cmd, args) {
		return false
	}

	var handled bool
	switch route.To {
	case navigation.Admin:
		handled = a.adminCommand(ctx, cmd, args)
	case navigation.Manager:
		handled = a.managerCommand(ctx, cmd, args)
	case navigation.User:
		handled = a.userCommand(ctx, cmd, args)
	}
	if !handled {
		a.println("Unknown command:", cmd)
	}
	return false
}

func (a *App) help() {
	route := a.currentRoute()
	switch route.To {
	case navigation.Login:
		a.println(helpLoggedOut)
		return
	case navigation.Admin:
		a.println(helpAdmin)
	case navigation.Manager:
		a.println(helpManager)
	case navigation.User:
		a.println(helpUser)
	default:
		a.println(helpRoleError)
		return
	}
	a.println(helpTable)
}

func (a *App) tableCommand(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "show", "menu", "select", "save", "undo":
	default:
		return false
	}

	t := a.currentTable()
	if t == nil {
		a.println("No table is open.")
		return true
	}

	switch cmd {
	case "show":
		a.render(t)

	case "menu":
		if len(args) == 0 {
			t.CloseMenu()
			return true
		}
		id, ok := a.rowArg(args[0])
		if !ok {
			return true
		}
		if err := t.ToggleMenu(id); err != nil {
			a.println("Error:", err)
		}

	case "select":
		if len(args) != 2 {
			a.println("Usage: select <id> <action>")
			return true
		}
		id, ok := a.rowArg(args[0])
		if !ok {
			return true
		}
		if err := t.Select(id, args[1]); err != nil {
			a.println("Error:", err)
		}

	case "save":
		n, err := t.Save(ctx)
		switch {
		case errors.Is(err, batch.ErrReload):
			a.printf("Saved %d change(s), but the list could not be reloaded.\n", n)
			a.fail(ctx, errors.Unwrap(err))
		case err != nil:
			a.fail(ctx, err)
			if a.currentTable() == t {
				a.println("Your changes are kept. Type 'save' to retry.")
			}
			return true
		case n == 0:
			a.println("Nothing to save.")
			return true
		default:
			a.printf("Saved %d change(s).\n", n)
		}
		if a.currentTable() == t {
			a.render(t)
		}

	case "undo":
		t.Undo()
		a.render(t)
	}
	return true
}

func (a *App) rowArg(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		a.println("Row id must be a number:", s)
		return 0, false
	}
	return id, true
}

// fail reports err to the user. A rejected credential ends the session.
func (a *App) fail(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, common.ErrUnauthorized) {
		a.logger.Info(ctx, "credential rejected by backend", logging.KeyError, err)
		a.endSession(ctx)
		a.println("Your session is no longer valid.")
		a.Navigate(navigation.LoginScreen(false))
		return
	}
	a.println("Error:", err)
}

// replaceTable opens t, warning about staged changes on the table it
// replaces.
func (a *App) replaceTable(t table) {
	if old := a.currentTable(); old != nil && old.Dirty() {
		a.println("Unsaved changes on", old.Title(), "were discarded.")
	}
	a.openTable(t)
}
