package command

import (
	"fmt"
	"sort"

	"github.com/keshon/wavebot/internal/config"
	"github.com/keshon/wavebot/pkg/cmd"
)

// CommandLines renders one line per registered name path, ordered by
// category weight and then by key.
func CommandLines(reg *cmd.Registry) []string {
	type entry struct {
		path   cmd.NamePath
		desc   string
		weight int
	}

	all := reg.All()
	entries := make([]entry, 0, len(all))
	for _, e := range all {
		entries = append(entries, entry{
			path:   e.Path,
			desc:   e.Command.Description(),
			weight: config.CategoryWeights[Category(e.Command)],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].weight < entries[j].weight
	})

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("`%s` - %s", e.path, e.desc))
	}
	return lines
}
