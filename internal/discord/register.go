package discord

import (
	"context"
	"fmt"
	"log"
	"maps"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/wavebot/pkg/retrylimit"
)

// commandAPI is the part of *discordgo.Session used to manage guild commands.
type commandAPI interface {
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

// hashStore persists the hash of every command last registered per guild.
type hashStore interface {
	CommandHashes(guildID string) (map[string]string, error)
	SetCommandHashes(guildID string, hashes map[string]string) error
}

type registrar struct {
	api     commandAPI
	store   hashStore
	limiter *retrylimit.AdaptiveLimiter
	retry   retrylimit.Config
}

// sync makes the guild's commands match wanted: remote commands that are no
// longer defined are deleted, and definitions whose hash differs from the
// stored one are created (Discord upserts by name). Hashes are stored only for
// commands that were accepted.
func (r *registrar) sync(ctx context.Context, appID, guildID string, wanted []*discordgo.ApplicationCommand) error {
	var remote []*discordgo.ApplicationCommand
	err := retrylimit.WithRetryConfig(ctx, func() error {
		var err error
		remote, err = r.api.ApplicationCommands(appID, guildID, discordgo.WithContext(ctx))
		return err
	}, r.limiter, r.retry)
	if err != nil {
		return fmt.Errorf("list commands for guild %s: %w", guildID, err)
	}

	stored, err := r.store.CommandHashes(guildID)
	if err != nil {
		return fmt.Errorf("load command hashes for guild %s: %w", guildID, err)
	}
	hashes := maps.Clone(stored)

	local := make(map[string]string, len(wanted))
	for _, def := range wanted {
		local[def.Name] = hashCommand(def)
	}

	remoteNames := make(map[string]struct{}, len(remote))
	for _, rc := range remote {
		remoteNames[rc.Name] = struct{}{}
		if _, keep := local[rc.Name]; keep {
			continue
		}
		log.Printf("[INFO] [%s] Deleting obsolete command: %s", guildID, rc.Name)
		err := retrylimit.WithRetryConfig(ctx, func() error {
			return r.api.ApplicationCommandDelete(appID, guildID, rc.ID, discordgo.WithContext(ctx))
		}, r.limiter, r.retry)
		if err != nil {
			log.Printf("[ERR] [%s] Failed to delete %s: %v", guildID, rc.Name, err)
			continue
		}
		delete(hashes, rc.Name)
	}

	changed := 0
	for _, def := range wanted {
		_, registered := remoteNames[def.Name]
		if registered && hashes[def.Name] == local[def.Name] {
			continue
		}
		changed++
		err := retrylimit.WithRetryConfig(ctx, func() error {
			_, err := r.api.ApplicationCommandCreate(appID, guildID, def, discordgo.WithContext(ctx))
			return err
		}, r.limiter, r.retry)
		if err != nil {
			log.Printf("[ERR] [%s] Failed to register %s: %v", guildID, def.Name, err)
			continue
		}
		hashes[def.Name] = local[def.Name]
		log.Printf("[DONE] [%s] Registered: %s", guildID, def.Name)
	}

	if changed == 0 && maps.Equal(hashes, stored) {
		return nil
	}
	log.Printf("[INFO] [%s] %d command(s) changed", guildID, changed)
	if err := r.store.SetCommandHashes(guildID, hashes); err != nil {
		return fmt.Errorf("save command hashes for guild %s: %w", guildID, err)
	}
	return nil
}
