package discord

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// shape is the part of a command definition Discord shows to users. IDs and
// versions assigned by Discord are left out so a fetched command hashes like
// the local definition it came from.
type shape struct {
	Name        string                           `json:"name"`
	Description string                           `json:"description"`
	Type        discordgo.ApplicationCommandType `json:"type"`
	Options     []optionShape                    `json:"options,omitempty"`
}

type optionShape struct {
	Name         string                                      `json:"name"`
	Description  string                                      `json:"description"`
	Type         discordgo.ApplicationCommandOptionType      `json:"type"`
	Required     bool                                        `json:"required,omitempty"`
	Autocomplete bool                                        `json:"autocomplete,omitempty"`
	MinValue     *float64                                    `json:"min_value,omitempty"`
	MaxValue     float64                                     `json:"max_value,omitempty"`
	MinLength    *int                                        `json:"min_length,omitempty"`
	MaxLength    int                                         `json:"max_length,omitempty"`
	ChannelTypes []discordgo.ChannelType                     `json:"channel_types,omitempty"`
	Choices      []*discordgo.ApplicationCommandOptionChoice `json:"choices,omitempty"`
	Options      []optionShape                               `json:"options,omitempty"`
}

// hashCommand returns a stable hex digest of a command definition.
func hashCommand(def *discordgo.ApplicationCommand) string {
	data, _ := json.Marshal(shape{
		Name:        def.Name,
		Description: def.Description,
		Type:        def.Type,
		Options:     optionShapes(def.Options),
	})
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

// optionShapes sorts subcommands and groups by name since Discord lists them
// alphabetically. Leaf parameters keep their declared order, which is the
// order users fill them in.
func optionShapes(opts []*discordgo.ApplicationCommandOption) []optionShape {
	if len(opts) == 0 {
		return nil
	}

	out := make([]optionShape, 0, len(opts))
	nested := false
	for _, o := range opts {
		if isBranch(o.Type) {
			nested = true
		}
		out = append(out, optionShape{
			Name:         o.Name,
			Description:  o.Description,
			Type:         o.Type,
			Required:     o.Required,
			Autocomplete: o.Autocomplete,
			MinValue:     o.MinValue,
			MaxValue:     o.MaxValue,
			MinLength:    o.MinLength,
			MaxLength:    o.MaxLength,
			ChannelTypes: o.ChannelTypes,
			Choices:      o.Choices,
			Options:      optionShapes(o.Options),
		})
	}

	if nested {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out
}

func isBranch(t discordgo.ApplicationCommandOptionType) bool {
	return t == discordgo.ApplicationCommandOptionSubCommand ||
		t == discordgo.ApplicationCommandOptionSubCommandGroup
}
