// Package cli provides the interactive TaskDesk command-line client.
//
// It wires configuration, local storage, the session store, the inactivity
// monitor and the backend services into a REPL. Each role gets its own set
// of screens; screens that edit lists are backed by a batch.Editor and
// share the table commands (menu, select, save, undo, show).
//
// Every line typed counts as user activity. Suspending the process with
// Ctrl-Z and resuming it with fg are treated as going to the background and
// coming back, so an idle session can expire while the client is stopped.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
