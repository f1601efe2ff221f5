package embed

import (
	"github.com/bwmarrin/discordgo"

	"github.com/keshon/wavebot/internal/version"
)

// Color is Discord's "DarkButNotBlack".
const Color = 0x2C2F33

// Footer builds the branded footer: optional text on the first line, then
// "<brand> | <version>".
func Footer(brand, text, iconURL string) *discordgo.MessageEmbedFooter {
	line := brand + " | " + version.Version
	if brand == "" {
		line = version.AppName + " | " + version.Version
	}
	if text != "" {
		line = text + "\n" + line
	}
	return &discordgo.MessageEmbedFooter{Text: line, IconURL: iconURL}
}
