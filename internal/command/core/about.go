package core

import (
	"fmt"

	dembed "github.com/clinet/discordgo-embed"

	"github.com/keshon/wavebot/internal/bot"
	"github.com/keshon/wavebot/internal/command"
	"github.com/keshon/wavebot/internal/embed"
	"github.com/keshon/wavebot/internal/middleware"
	"github.com/keshon/wavebot/internal/version"
	"github.com/keshon/wavebot/pkg/cmd"
)

type AboutCommand struct{}

func (c *AboutCommand) Name() string        { return "about" }
func (c *AboutCommand) Description() string { return "Discover the origin of the bot" }
func (c *AboutCommand) Category() string    { return "🕯️ Information" }

func (c *AboutCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	s := context.Session
	e := context.Event

	invite := bot.NoPermissionText
	if e.GuildID != "" && s.State != nil && s.State.User != nil {
		invite = bot.GuildInvite(s, s.State.User.ID, e.GuildID)
	}

	brand := ""
	if context.Config != nil {
		brand = context.Config.FooterBrand
	}

	msg := aboutEmbed(invite).MessageEmbed
	msg.Footer = embed.Footer(brand, "", "")
	return bot.RespondEmbed(s, e, msg)
}

func aboutEmbed(invite string) *dembed.Embed {
	return dembed.NewEmbed().
		SetColor(embed.Color).
		SetTitle(fmt.Sprintf("ℹ️ About %s", version.AppName)).
		SetDescription(version.AppDescription).
		AddField("Version", version.Version).
		AddField("Server invite", invite)
}

func init() {
	command.RegisterCommand(
		cmd.Path("about", "", ""),
		&AboutCommand{},
		middleware.WithCommandLogger(),
	)
}
