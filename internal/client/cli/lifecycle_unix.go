//go:build unix

package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/taskdesk/internal/logging"
	"golang.org/x/sys/unix"
)

// watchLifecycle treats Ctrl-Z as going to the background and fg as coming
// back. On SIGTSTP it runs onBackground and then stops the process itself.
func watchLifecycle(ctx context.Context, logger logging.Logger, onBackground, onForeground func(context.Context)) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGTSTP, unix.SIGCONT)
	defer signal.Stop(ch)

	l := lifecycle{logger: logger, suspend: suspendSelf, onBackground: onBackground, onForeground: onForeground}
	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-ch:
			l.handle(ctx, sig)
		}
	}
}

type lifecycle struct {
	logger       logging.Logger
	suspend      func() error
	onBackground func(context.Context)
	onForeground func(context.Context)
}

func (l lifecycle) handle(ctx context.Context, sig os.Signal) {
	switch sig {
	case unix.SIGTSTP:
		l.onBackground(ctx)
		if err := l.suspend(); err != nil {
			l.logger.Warn(ctx, "process not suspended", logging.KeyError, err)
		}
	case unix.SIGCONT:
		l.onForeground(ctx)
	}
}

func suspendSelf() error {
	return unix.Kill(unix.Getpid(), unix.SIGSTOP)
}
