package paginator

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/wavebot/internal/embed"
)

// View is one rendering of a session: the embed plus its component rows.
type View struct {
	Embed      *discordgo.MessageEmbed
	Components []discordgo.MessageComponent
}

func button(id, label string, disabled bool) discordgo.Button {
	return discordgo.Button{
		CustomID: id,
		Label:    label,
		Style:    discordgo.SecondaryButton,
		Disabled: disabled,
	}
}

func (s *state) controls() discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		button(BackButtonID, "prev", s.backDisabled()),
		button(PageInfoID, s.pageLabel(), s.pageInfoDisabled()),
		button(ForwardButtonID, "next", s.forwardDisabled()),
	}}
}

func (s *state) withExtra(row discordgo.ActionsRow) []discordgo.MessageComponent {
	if s.extra == nil {
		return []discordgo.MessageComponent{row}
	}
	return []discordgo.MessageComponent{row, *s.extra}
}

func (s *state) view(brand string) View {
	return View{
		Embed: &discordgo.MessageEmbed{
			Title:       s.title,
			Description: s.page(),
			Color:       embed.Color,
			Footer:      embed.Footer(brand, s.footer, ""),
		},
		Components: s.withExtra(s.controls()),
	}
}

// expiredComponents replaces the navigation row with one disabled button and
// keeps the caller's row.
func (s *state) expiredComponents() []discordgo.MessageComponent {
	return s.withExtra(discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		button(ExpiredButtonID, ExpiredText, true),
	}})
}

func modalID(messageID string, nonce uint64) string {
	return fmt.Sprintf("%s:%s:%d", PageModalPrefix, messageID, nonce)
}

func pageModal(customID string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: customID,
		Title:    "Page Indexer",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    PageNumberInputID,
					Label:       "Page",
					Placeholder: "Please provide the page number you wish to visit",
					Style:       discordgo.TextInputShort,
					Required:    true,
					MaxLength:   6,
				},
			}},
		},
	}
}

// modalValue returns the value of the text input with the given id.
func modalValue(data discordgo.ModalSubmitInteractionData, inputID string) string {
	for _, c := range data.Components {
		var inner []discordgo.MessageComponent
		switch row := c.(type) {
		case *discordgo.ActionsRow:
			inner = row.Components
		case discordgo.ActionsRow:
			inner = row.Components
		}
		for _, ic := range inner {
			switch in := ic.(type) {
			case *discordgo.TextInput:
				if in.CustomID == inputID {
					return in.Value
				}
			case discordgo.TextInput:
				if in.CustomID == inputID {
					return in.Value
				}
			}
		}
	}
	return ""
}
