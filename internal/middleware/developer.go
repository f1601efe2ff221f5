package middleware

import (
	"context"
	"errors"
	"log"
	"slices"

	"github.com/keshon/wavebot/internal/bot"
	"github.com/keshon/wavebot/internal/command"
	"github.com/keshon/wavebot/internal/config"
	"github.com/keshon/wavebot/internal/storage"
	"github.com/keshon/wavebot/pkg/cmd"
)

// DevStatus is the outcome of a developer check.
type DevStatus int

const (
	// DevNone means there is no record for the user, or it could not be read.
	DevNone DevStatus = iota
	DevYes
	DevNo
)

func (s DevStatus) String() string {
	switch s {
	case DevYes:
		return "yes"
	case DevNo:
		return "no"
	default:
		return "none"
	}
}

// DeveloperFlags are the common flags that grant developer access.
var DeveloperFlags = []string{"head_dev", "assistant", "manager"}

const devOnlyText = "This command is restricted to developers."

// UserStore reads user records.
type UserStore interface {
	User(userID string) (*storage.UserRecord, error)
}

// DevCheck reports whether userID is a developer. The configured developer
// always is; everyone else needs a developer flag on their stored record.
// cfg may be nil.
func DevCheck(store UserStore, cfg *config.Config, userID string) DevStatus {
	if userID == "" {
		return DevNo
	}
	if config.IsDeveloper(cfg, userID) {
		return DevYes
	}
	if store == nil {
		return DevNone
	}

	record, err := store.User(userID)
	if err != nil {
		if !errors.Is(err, storage.ErrUserNotFound) {
			log.Printf("[WARN] Developer check for %s failed: %v", userID, err)
		}
		return DevNone
	}

	for _, f := range record.Flags.Common {
		if slices.Contains(DeveloperFlags, f) {
			return DevYes
		}
	}
	return DevNo
}

// WithDeveloperOnly lets only developers run the command. Interactions from
// anyone else get an ephemeral notice; messages are ignored.
func WithDeveloperOnly() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			switch v := inv.Data.(type) {
			case *command.SlashInteractionContext:
				user := bot.InteractionUser(v.Event.Interaction)
				if DevCheck(userStore(v.Storage), v.Config, user.ID) != DevYes {
					return bot.RespondEphemeral(v.Session, v.Event, devOnlyText)
				}
			case *command.MessageContext:
				if v.Event.Author == nil || DevCheck(userStore(v.Storage), v.Config, v.Event.Author.ID) != DevYes {
					return nil
				}
			}
			return c.Run(ctx, inv)
		})
	}
}

func userStore(s *storage.Storage) UserStore {
	if s == nil {
		return nil
	}
	return s
}
