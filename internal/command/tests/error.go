package tests

import (
	"errors"
)

// errDeliberate is what /tests error fails with.
var errDeliberate = errors.New("deliberate failure")

type ErrorCommand struct{}

func (c *ErrorCommand) Name() string        { return "error" }
func (c *ErrorCommand) Description() string { return "Fail on purpose" }
func (c *ErrorCommand) Category() string    { return category }

func (c *ErrorCommand) Run(ctx interface{}) error {
	return errDeliberate
}
