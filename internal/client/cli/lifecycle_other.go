//go:build !unix

package cli

import (
	"context"

	"github.com/dmitrijs2005/taskdesk/internal/logging"
)

// watchLifecycle has no job control to watch outside unix.
func watchLifecycle(ctx context.Context, _ logging.Logger, _, _ func(context.Context)) {
	<-ctx.Done()
}
