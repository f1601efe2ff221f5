package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/wavebot/internal/command"
	"github.com/keshon/wavebot/internal/storage"
	"github.com/keshon/wavebot/internal/version"
	"github.com/keshon/wavebot/pkg/cmd"
)

func TestRegisteredPaths(t *testing.T) {
	for _, p := range []cmd.NamePath{
		cmd.Path("about", "", ""),
		cmd.Path("help", "", ""),
		cmd.Path("maintenance", "", "ping"),
		cmd.Path("maintenance", "", "history"),
	} {
		c, err := cmd.DefaultRegistry.Resolve(p)
		require.NoError(t, err, p.Key())
		assert.NotEmpty(t, c.Description())
	}
}

func TestHelpListsItself(t *testing.T) {
	lines := command.CommandLines(cmd.DefaultRegistry)
	assert.Contains(t, lines, "`/help` - Get a list of available commands")
	assert.Contains(t, lines, "`/about` - Discover the origin of the bot")
}

func TestAboutEmbed(t *testing.T) {
	e := aboutEmbed("https://discord.gg/abc").MessageEmbed
	assert.Equal(t, version.AppDescription, e.Description)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, version.Version, e.Fields[0].Value)
	assert.Equal(t, "https://discord.gg/abc", e.Fields[1].Value)
}

func TestHistoryLinesNewestFirst(t *testing.T) {
	at := time.Unix(1700000000, 0)
	lines := historyLines([]storage.CommandHistoryRecord{
		{ChannelID: "c1", Username: "ann", Command: "about/index", Datetime: at},
		{ChannelID: "c2", Username: "bob", Command: "help/index", Datetime: at.Add(time.Minute)},
	})
	require.Len(t, lines, 2)
	assert.Equal(t, "<t:1700000060:R> **bob** `help/index` in <#c2>", lines[0])
	assert.Equal(t, "<t:1700000000:R> **ann** `about/index` in <#c1>", lines[1])
}
