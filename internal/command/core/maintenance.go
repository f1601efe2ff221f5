package core

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/wavebot/internal/bot"
	"github.com/keshon/wavebot/internal/command"
	"github.com/keshon/wavebot/internal/embed"
	"github.com/keshon/wavebot/internal/middleware"
	"github.com/keshon/wavebot/internal/paginator"
	"github.com/keshon/wavebot/internal/storage"
	"github.com/keshon/wavebot/pkg/cmd"
)

type PingCommand struct{}

func (c *PingCommand) Name() string        { return "ping" }
func (c *PingCommand) Description() string { return "Check bot latency" }
func (c *PingCommand) Category() string    { return "🛠️ Maintenance" }

func (c *PingCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	s := context.Session
	return bot.RespondEmbedEphemeral(s, context.Event, &discordgo.MessageEmbed{
		Title:       "Pong! 🏓",
		Description: fmt.Sprintf("Latency: %dms", s.HeartbeatLatency().Milliseconds()),
		Color:       embed.Color,
	})
}

type HistoryCommand struct{}

func (c *HistoryCommand) Name() string        { return "history" }
func (c *HistoryCommand) Description() string { return "Show the latest commands used on this server" }
func (c *HistoryCommand) Category() string    { return "🛠️ Maintenance" }

func (c *HistoryCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	if slash.Storage == nil || slash.Pager == nil {
		return fmt.Errorf("history: storage or paginator not configured")
	}

	if err := bot.RespondDeferred(slash.Session, slash.Event); err != nil {
		return fmt.Errorf("defer history response: %w", err)
	}

	records, err := slash.Storage.FetchCommandHistory(slash.Event.GuildID)
	if err != nil {
		return fmt.Errorf("fetch command history: %w", err)
	}

	return slash.Pager.Present(context.Background(), paginator.Request{
		Title:    "📜 Command History",
		Items:    historyLines(records),
		Origin:   slash.DeferredOrigin(),
		PageSize: 5,
	})
}

// historyLines renders the newest record first.
func historyLines(records []storage.CommandHistoryRecord) []string {
	lines := make([]string, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		lines = append(lines, fmt.Sprintf("<t:%d:R> **%s** `%s` in <#%s>",
			r.Datetime.Unix(), r.Username, r.Command, r.ChannelID))
	}
	return lines
}

func init() {
	command.RegisterRoot(command.Root{
		Name:        "maintenance",
		Description: "Bot maintenance commands",
	})

	command.RegisterCommand(
		cmd.Path("maintenance", "", "ping"),
		&PingCommand{},
		middleware.WithDeveloperOnly(),
	)
	command.RegisterCommand(
		cmd.Path("maintenance", "", "history"),
		&HistoryCommand{},
		middleware.WithGuildOnly(),
		middleware.WithDeveloperOnly(),
	)
}
