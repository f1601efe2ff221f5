package bot

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// NoPermissionText replaces the invite link when none can be read or created.
const NoPermissionText = "No permission"

// InviteSource is the part of *discordgo.Session GuildInvite needs.
type InviteSource interface {
	GuildInvites(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Invite, error)
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	ChannelInviteCreate(channelID string, i discordgo.Invite, options ...discordgo.RequestOption) (*discordgo.Invite, error)
}

// GuildInvite returns a permanent invite URL for guildID. It prefers one the
// bot created, then any permanent invite, and otherwise creates one in the
// first text channel.
func GuildInvite(s InviteSource, selfID, guildID string) string {
	invites, err := s.GuildInvites(guildID)
	if err != nil {
		log.Printf("[WARN] Unable to list invites for guild %s: %v", guildID, err)
		return NoPermissionText
	}

	var fallback *discordgo.Invite
	for _, inv := range invites {
		if inv.MaxAge != 0 {
			continue
		}
		if inv.Inviter != nil && inv.Inviter.ID == selfID {
			return inviteURL(inv)
		}
		if fallback == nil {
			fallback = inv
		}
	}
	if fallback != nil {
		return inviteURL(fallback)
	}

	channels, err := s.GuildChannels(guildID)
	if err != nil {
		log.Printf("[WARN] Unable to list channels for guild %s: %v", guildID, err)
		return NoPermissionText
	}
	for _, ch := range channels {
		if ch.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		inv, err := s.ChannelInviteCreate(ch.ID, discordgo.Invite{MaxAge: 0})
		if err != nil {
			log.Printf("[WARN] Unable to create invite for guild %s: %v", guildID, err)
			return NoPermissionText
		}
		return inviteURL(inv)
	}
	return NoPermissionText
}

func inviteURL(inv *discordgo.Invite) string {
	return "https://discord.gg/" + inv.Code
}
