package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/wavebot/internal/command"
	_ "github.com/keshon/wavebot/internal/command/core"
	_ "github.com/keshon/wavebot/internal/command/tests"
	"github.com/keshon/wavebot/pkg/cmd"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List the registered command paths",
	RunE: func(c *cobra.Command, args []string) error {
		for _, p := range cmd.DefaultRegistry.Paths() {
			h, err := cmd.DefaultRegistry.Resolve(p)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "%-24s %-28s %s\n", p.Key(), p.String(), command.Category(h))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
