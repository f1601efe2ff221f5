// Package cmd provides a transport-agnostic command core: a handler is something
// with a name, description, and Run(ctx, invocation), addressed by a NamePath.
// How events become invocations (Discord slash, CLI) is defined by adapters.
package cmd

import "context"

// Invocation carries what any adapter can pass to a handler: the resolved path,
// extra arguments and an opaque payload. Adapters set Data to their context
// (e.g. the Discord session plus the triggering interaction).
type Invocation struct {
	Path NamePath
	Args []string
	Data interface{}
}

// Command is the universal handler contract: identity plus execution. Permissions
// and transport-specific registration stay in adapters.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}

// Func adapts a plain function to Command.
func Func(name, description string, run func(ctx context.Context, inv *Invocation) error) Command {
	return &funcCommand{name: name, description: description, run: run}
}

type funcCommand struct {
	name        string
	description string
	run         func(ctx context.Context, inv *Invocation) error
}

func (f *funcCommand) Name() string        { return f.name }
func (f *funcCommand) Description() string { return f.description }

func (f *funcCommand) Run(ctx context.Context, inv *Invocation) error {
	return f.run(ctx, inv)
}
