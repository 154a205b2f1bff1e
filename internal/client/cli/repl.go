package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// commander is the command surface the REPL needs. *App satisfies it;
// tests can provide a lightweight stub.
type commander interface {
	Activity(ctx context.Context)
	Dispatch(ctx context.Context, cmd string, args []string) (quit bool)
}

// runREPL reads commands from reader until EOF, ctx is done, or a command
// asks to quit. Every non-empty line is reported as activity before it is
// dispatched.
func runREPL(ctx context.Context, a commander, prompt func() string, write func(string), reader *bufio.Reader) {
	for ctx.Err() == nil {
		write(prompt())

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		a.Activity(ctx)
		if a.Dispatch(ctx, strings.ToLower(parts[0]), parts[1:]) {
			return
		}
	}
}
