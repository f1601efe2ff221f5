package tests

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/wavebot/internal/bot"
	"github.com/keshon/wavebot/internal/command"
	"github.com/keshon/wavebot/internal/paginator"
)

const pingButtonID = "tests_ping"

type SingleCommand struct{}

func (c *SingleCommand) Name() string        { return "single" }
func (c *SingleCommand) Description() string { return "One item per page with an extra button row" }
func (c *SingleCommand) Category() string    { return category }

func (c *SingleCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	return slash.Pager.Present(context.Background(), paginator.Request{
		Title:    "📄 Single item pages",
		Items:    singleItems(),
		Origin:   slash.Origin(),
		PageSize: 1,
		Extra:    pingRow(),
		Footer:   "The ping button is handled outside the paginator",
	})
}

// Component answers the extra row's button.
func (c *SingleCommand) Component(ctx *command.ComponentInteractionContext) error {
	user := bot.InteractionUser(ctx.Event.Interaction)
	return bot.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("Pong, <@%s>!", user.ID))
}

func singleItems() []string {
	return []string{
		"**Apple**\nA round fruit with red or green skin.",
		"**Banana**\nA long curved fruit with a yellow skin.",
		"**Cherry**\nA small round stone fruit.",
		"**Date**\nThe sweet fruit of the date palm.",
	}
}

func pingRow() *discordgo.ActionsRow {
	return &discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{
			CustomID: pingButtonID,
			Label:    "ping",
			Style:    discordgo.PrimaryButton,
		},
	}}
}
