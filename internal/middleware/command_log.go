package middleware

import (
	"context"
	"log"

	"github.com/keshon/wavebot/internal/bot"
	"github.com/keshon/wavebot/internal/command"
	"github.com/keshon/wavebot/pkg/cmd"
)

// WithCommandLogger wraps a command to log its execution
func WithCommandLogger() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			err := c.Run(ctx, inv)

			switch v := inv.Data.(type) {
			case *command.SlashInteractionContext:
				e := v.Event
				user := bot.InteractionUser(e.Interaction)
				if lerr := bot.LogCommand(v.Storage, e.GuildID, e.ChannelID, user.ID, user.Username, inv.Path.Key()); lerr != nil {
					log.Printf("[WARN] Failed to log command %s: %v", inv.Path, lerr)
				}
			case *command.MessageContext:
				// skip message commands
			}
			return err
		})
	}
}
