package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrAutoProgressOrdersCommandIsNotConstructed = errors.New(
	"AutoProgressOrdersCommand must be created via NewAutoProgressOrdersCommand constructor",
)

// AutoProgressOrdersCommand represents one scheduler sweep: find every order
// whose persisted ship or deliver due time has elapsed and advance it.
type AutoProgressOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewAutoProgressOrdersCommand creates a command for a scheduler sweep.
func NewAutoProgressOrdersCommand() (AutoProgressOrdersCommand, error) {
	return AutoProgressOrdersCommand{guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoProgressOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAutoProgressOrdersCommandIsNotConstructed)
}
