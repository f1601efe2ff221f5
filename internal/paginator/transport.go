package paginator

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Transport is the platform surface a session needs.
type Transport interface {
	// ReplyMessage answers a plain message with the view.
	ReplyMessage(ctx context.Context, m *discordgo.Message, v View) (*discordgo.Message, error)
	// Respond answers a fresh interaction and returns the created message.
	Respond(ctx context.Context, i *discordgo.Interaction, v View) (*discordgo.Message, error)
	// EditResponse replaces the original response of a deferred or replied interaction.
	EditResponse(ctx context.Context, i *discordgo.Interaction, v View) (*discordgo.Message, error)
	// Update acknowledges a component or modal interaction by rewriting its message.
	Update(ctx context.Context, i *discordgo.Interaction, v View) error
	// EditComponents rewrites only the component rows of a message.
	EditComponents(ctx context.Context, channelID, messageID string, components []discordgo.MessageComponent) error
	// Notice sends an ephemeral text reply.
	Notice(ctx context.Context, i *discordgo.Interaction, content string) error
	// Prompt opens a modal.
	Prompt(ctx context.Context, i *discordgo.Interaction, modal *discordgo.InteractionResponseData) error
}

// SessionTransport implements Transport over a discordgo session.
type SessionTransport struct {
	Session *discordgo.Session
}

func (t *SessionTransport) ReplyMessage(ctx context.Context, m *discordgo.Message, v View) (*discordgo.Message, error) {
	return t.Session.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{v.Embed},
		Components: v.Components,
		Reference:  m.Reference(),
	}, discordgo.WithContext(ctx))
}

func (t *SessionTransport) Respond(ctx context.Context, i *discordgo.Interaction, v View) (*discordgo.Message, error) {
	err := t.Session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{v.Embed},
			Components: v.Components,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	msg, err := t.Session.InteractionResponse(i, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch interaction response: %w", err)
	}
	return msg, nil
}

func (t *SessionTransport) EditResponse(ctx context.Context, i *discordgo.Interaction, v View) (*discordgo.Message, error) {
	embeds := []*discordgo.MessageEmbed{v.Embed}
	components := v.Components
	return t.Session.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Embeds:     &embeds,
		Components: &components,
	}, discordgo.WithContext(ctx))
}

func (t *SessionTransport) Update(ctx context.Context, i *discordgo.Interaction, v View) error {
	return t.Session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{v.Embed},
			Components: v.Components,
		},
	}, discordgo.WithContext(ctx))
}

func (t *SessionTransport) EditComponents(ctx context.Context, channelID, messageID string, components []discordgo.MessageComponent) error {
	_, err := t.Session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         messageID,
		Channel:    channelID,
		Components: &components,
	}, discordgo.WithContext(ctx))
	return err
}

func (t *SessionTransport) Notice(ctx context.Context, i *discordgo.Interaction, content string) error {
	return t.Session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
}

func (t *SessionTransport) Prompt(ctx context.Context, i *discordgo.Interaction, modal *discordgo.InteractionResponseData) error {
	return t.Session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: modal,
	}, discordgo.WithContext(ctx))
}
