package command

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/wavebot/pkg/cmd"
)

func TestPathFromInteraction(t *testing.T) {
	number := &discordgo.ApplicationCommandInteractionDataOption{
		Name:  "number",
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(3),
	}

	tests := []struct {
		name     string
		data     discordgo.ApplicationCommandInteractionData
		wantKey  string
		wantOpts int
	}{
		{
			name:    "no subcommand",
			data:    discordgo.ApplicationCommandInteractionData{Name: "about"},
			wantKey: "about/index",
		},
		{
			name: "subcommand with option",
			data: discordgo.ApplicationCommandInteractionData{
				Name: "tests",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{{
					Name:    "listcmds",
					Type:    discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandInteractionDataOption{number},
				}},
			},
			wantKey:  "tests/listcmds",
			wantOpts: 1,
		},
		{
			name: "group and subcommand",
			data: discordgo.ApplicationCommandInteractionData{
				Name: "tests",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{{
					Name: "pages",
					Type: discordgo.ApplicationCommandOptionSubCommandGroup,
					Options: []*discordgo.ApplicationCommandInteractionDataOption{{
						Name: "single",
						Type: discordgo.ApplicationCommandOptionSubCommand,
					}},
				}},
			},
			wantKey: "tests/pages/single",
		},
		{
			name: "index with plain option",
			data: discordgo.ApplicationCommandInteractionData{
				Name:    "help",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{number},
			},
			wantKey:  "help/index",
			wantOpts: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, opts := PathFromInteraction(tt.data)
			assert.Equal(t, tt.wantKey, path.Key())
			assert.Len(t, opts, tt.wantOpts)
		})
	}
}

func TestOption(t *testing.T) {
	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "number", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(7)},
	}
	o, ok := Option(opts, "number")
	require.True(t, ok)
	assert.Equal(t, int64(7), o.IntValue())

	_, ok = Option(opts, "missing")
	assert.False(t, ok)
}

type leaf struct {
	name, desc string
	opts       []*discordgo.ApplicationCommandOption
}

func (l *leaf) Name() string                                   { return l.name }
func (l *leaf) Description() string                            { return l.desc }
func (l *leaf) Category() string                               { return "🧪 Testing" }
func (l *leaf) Run(interface{}) error                          { return nil }
func (l *leaf) Options() []*discordgo.ApplicationCommandOption { return l.opts }

func TestDefinitions(t *testing.T) {
	reg := cmd.NewRegistry()
	reg.Register(cmd.Path("ping", "", ""), &DiscordAdapter{Cmd: &leaf{name: "ping", desc: "Check latency"}})
	reg.Register(cmd.Path("zz", "", "lb"), &DiscordAdapter{Cmd: &leaf{name: "lb", desc: "Leaderboard"}})
	reg.Register(cmd.Path("zz", "", "list"), &DiscordAdapter{Cmd: &leaf{
		name: "list",
		desc: "List",
		opts: []*discordgo.ApplicationCommandOption{{Name: "number", Type: discordgo.ApplicationCommandOptionInteger}},
	}})
	reg.Register(cmd.Path("zz", "pages", "single"), &DiscordAdapter{Cmd: &leaf{name: "single", desc: "Single"}})
	RegisterRoot(Root{Name: "zz", Description: "Test commands", Groups: map[string]string{"pages": "Pagination"}})

	defs := Definitions(reg)
	require.Len(t, defs, 2)

	assert.Equal(t, "ping", defs[0].Name)
	assert.Equal(t, "Check latency", defs[0].Description)
	assert.Empty(t, defs[0].Options)

	zz := defs[1]
	assert.Equal(t, "Test commands", zz.Description)
	require.Len(t, zz.Options, 3)
	assert.Equal(t, "lb", zz.Options[0].Name)
	assert.Equal(t, "list", zz.Options[1].Name)
	require.Len(t, zz.Options[1].Options, 1)

	group := zz.Options[2]
	assert.Equal(t, discordgo.ApplicationCommandOptionSubCommandGroup, group.Type)
	assert.Equal(t, "Pagination", group.Description)
	require.Len(t, group.Options, 1)
	assert.Equal(t, "single", group.Options[0].Name)
}

type componentStub struct{}

func (componentStub) Component(*ComponentInteractionContext) error { return nil }

func TestComponentHandlerLongestPrefix(t *testing.T) {
	short, long := componentStub{}, &componentStub{}
	RegisterComponent("zz_", short)
	RegisterComponent("zz_ping", long)

	h, ok := ComponentHandler("zz_ping_1")
	require.True(t, ok)
	assert.Same(t, long, h)

	h, ok = ComponentHandler("zz_other")
	require.True(t, ok)
	assert.Equal(t, short, h)

	_, ok = ComponentHandler("unknown")
	assert.False(t, ok)
}

func TestSlashOrigins(t *testing.T) {
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{ID: "i1"}}
	ctx := &SlashInteractionContext{Event: i}

	assert.Same(t, i.Interaction, ctx.Origin().Interaction)
	assert.False(t, ctx.Origin().Deferred)
	assert.Same(t, i.Interaction, ctx.DeferredOrigin().Interaction)
	assert.True(t, ctx.DeferredOrigin().Deferred)
}
