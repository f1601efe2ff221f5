package tests

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/wavebot/internal/command"
	"github.com/keshon/wavebot/internal/paginator"
	"github.com/keshon/wavebot/pkg/cmd"
)

const defaultListPageSize = 5

type ListCommandsCommand struct{}

func (c *ListCommandsCommand) Name() string        { return "listcmds" }
func (c *ListCommandsCommand) Description() string { return "List registered commands" }
func (c *ListCommandsCommand) Category() string    { return category }

func (c *ListCommandsCommand) Options() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "number",
			Description: "(optional) Results per page, default is 5",
			Required:    false,
		},
	}
}

func (c *ListCommandsCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	reg := slash.Registry
	if reg == nil {
		reg = cmd.DefaultRegistry
	}

	return slash.Pager.Present(context.Background(), paginator.Request{
		Title:    "📚 Registered commands",
		Items:    command.CommandLines(reg),
		Origin:   slash.Origin(),
		PageSize: pageSize(slash.Options),
	})
}

func pageSize(opts []*discordgo.ApplicationCommandInteractionDataOption) int {
	if o, ok := command.Option(opts, "number"); ok {
		return int(o.IntValue())
	}
	return defaultListPageSize
}
