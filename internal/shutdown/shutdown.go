// Package shutdown ties a context to SIGINT and SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-sod/sodkit/internal/logging"
)

// New returns a context, carrying the default logger, that is cancelled on
// the first interrupt or termination signal, and the function releasing it.
func New() (context.Context, func()) {
	ctx := logging.WithLogger(context.Background(), logging.DefaultLogger())
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
