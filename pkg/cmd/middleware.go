package cmd

// Middleware wraps a handler (e.g. logging, permission check, metrics).
// The wrapped value remains a Command.
type Middleware func(Command) Command

// Apply applies middlewares in order; the first in the list is the innermost.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}
