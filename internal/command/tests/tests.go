// Package tests registers the developer-only /tests command family, used to
// exercise the resolver, the dispatch facade and paginated views.
package tests

import (
	"github.com/keshon/wavebot/internal/command"
	"github.com/keshon/wavebot/internal/middleware"
	"github.com/keshon/wavebot/pkg/cmd"
)

const category = "🧪 Testing"

func init() {
	command.RegisterRoot(command.Root{
		Name:        "tests",
		Description: "Test commands for the bot",
		Groups:      map[string]string{"pages": "Pagination modes"},
	})

	mws := []cmd.Middleware{middleware.WithDeveloperOnly(), middleware.WithCommandLogger()}

	command.RegisterCommand(cmd.Path("tests", "", "lb"), &LeaderboardCommand{}, mws...)
	command.RegisterCommand(cmd.Path("tests", "", "listcmds"), &ListCommandsCommand{}, mws...)
	command.RegisterCommand(cmd.Path("tests", "", "error"), &ErrorCommand{}, mws...)
	command.RegisterCommand(cmd.Path("tests", "pages", "single"), &SingleCommand{}, mws...)

	command.RegisterComponent(pingButtonID, &SingleCommand{})
}
