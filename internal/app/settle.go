package app

import (
	"errors"

	"github.com/finsec/cli/internal/format"
	"github.com/finsec/cli/internal/movement"
)

// ErrCancelled is returned when the user declines a confirmation
var ErrCancelled = errors.New("cancelled")

// BlockedError carries a decision that stopped a money movement
type BlockedError struct {
	Decision movement.Decision
}

func (e *BlockedError) Error() string {
	if e.Decision.Detail == "" {
		return e.Decision.Message
	}
	return e.Decision.Message + ". " + e.Decision.Detail
}

// Settle turns a decision into go or no-go. Blocks fail without prompting. Warnings
// are printed, then warnings and clean decisions alike are confirmed unless assumeYes
// is set.
func (a *App) Settle(d movement.Decision, question string, assumeYes bool) error {
	switch d.Outcome {
	case movement.Block:
		return &BlockedError{Decision: d}
	case movement.Warn:
		format.PrintDecision(d)
	}
	if assumeYes {
		return nil
	}
	ok, err := a.Prompt.Confirm(question)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}
	return nil
}
