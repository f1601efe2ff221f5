package tests

import (
	"context"
	"fmt"

	"github.com/keshon/wavebot/internal/command"
	"github.com/keshon/wavebot/internal/paginator"
)

const (
	leaderboardSize     = 25
	leaderboardPageSize = 10
)

type LeaderboardCommand struct{}

func (c *LeaderboardCommand) Name() string        { return "lb" }
func (c *LeaderboardCommand) Description() string { return "Show a demo leaderboard" }
func (c *LeaderboardCommand) Category() string    { return category }

func (c *LeaderboardCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}

	return slash.Pager.Present(context.Background(), paginator.Request{
		Title:    "🏆 Leaderboard",
		Items:    leaderboardLines(leaderboardSize),
		Origin:   slash.Origin(),
		PageSize: leaderboardPageSize,
		Footer:   "Demo data",
	})
}

// leaderboardLines ranks n made-up players with strictly falling scores.
func leaderboardLines(n int) []string {
	lines := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		lines = append(lines, fmt.Sprintf("**%d.** Player %d: %d points", i, i, (n-i+1)*100))
	}
	return lines
}
