package core

import (
	"context"
	"fmt"

	"github.com/keshon/wavebot/internal/command"
	"github.com/keshon/wavebot/internal/middleware"
	"github.com/keshon/wavebot/internal/paginator"
	"github.com/keshon/wavebot/internal/version"
	"github.com/keshon/wavebot/pkg/cmd"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Get a list of available commands" }
func (c *HelpCommand) Category() string    { return "🕯️ Information" }

// Run presents the command list. Mentioning the bot in a message lands here
// as well, with the message as origin.
func (c *HelpCommand) Run(ctx interface{}) error {
	var (
		pager  *paginator.Engine
		reg    *cmd.Registry
		origin paginator.Origin
		footer string
	)

	switch v := ctx.(type) {
	case *command.SlashInteractionContext:
		pager, reg, origin = v.Pager, v.Registry, v.Origin()
		footer = fmt.Sprintf("Requested via %s", v.Path)
	case *command.MessageContext:
		pager, reg, origin = v.Pager, v.Registry, v.Origin()
		footer = "Requested via mention"
	default:
		return nil
	}

	if pager == nil {
		return fmt.Errorf("help: no paginator")
	}
	if reg == nil {
		reg = cmd.DefaultRegistry
	}

	return pager.Present(context.Background(), paginator.Request{
		Title:    version.AppName + " Help",
		Items:    command.CommandLines(reg),
		Origin:   origin,
		PageSize: paginator.DefaultPageSize,
		Footer:   footer,
	})
}

func init() {
	command.RegisterCommand(
		cmd.Path("help", "", ""),
		&HelpCommand{},
		middleware.WithCommandLogger(),
	)
}
