package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/finsec/cli/cmd"
	"github.com/finsec/cli/internal/app"
	"github.com/finsec/cli/internal/format"
	"github.com/finsec/cli/internal/session"
	"github.com/finsec/cli/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()
	if err == nil {
		return
	}

	var blocked *app.BlockedError
	switch {
	case errors.As(err, &blocked):
		format.PrintDecision(blocked.Decision)
	case errors.Is(err, app.ErrCancelled):
		format.PrintWarning("Cancelled")
	case errors.Is(err, session.ErrNotAuthenticated):
		format.PrintError("Not logged in. Run 'finsec auth login' first.")
	case utils.IsAuthError(err):
		format.PrintError("%v", err)
		format.PrintInfo("Your session may have expired. Run 'finsec auth login' to sign in again.")
	default:
		format.PrintError("%v", err)
	}
	os.Exit(1)
}
