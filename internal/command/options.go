package command

import (
	"github.com/bwmarrin/discordgo"

	"github.com/keshon/wavebot/pkg/cmd"
)

// PathFromInteraction extracts the name path from slash command data and
// returns the options that belong to the leaf. At most one subcommand group
// and one subcommand are read; a command without them resolves to its index
// leaf.
func PathFromInteraction(data discordgo.ApplicationCommandInteractionData) (cmd.NamePath, []*discordgo.ApplicationCommandInteractionDataOption) {
	path := cmd.NamePath{Command: data.Name}
	opts := data.Options

	if len(opts) > 0 && opts[0].Type == discordgo.ApplicationCommandOptionSubCommandGroup {
		path.Group = opts[0].Name
		opts = opts[0].Options
	}
	if len(opts) > 0 && opts[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		path.Subcommand = opts[0].Name
		opts = opts[0].Options
	}
	return path, opts
}

// Option returns the leaf option with the given name.
func Option(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) (*discordgo.ApplicationCommandInteractionDataOption, bool) {
	for _, o := range opts {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}
