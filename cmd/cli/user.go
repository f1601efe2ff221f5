package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keshon/wavebot/internal/middleware"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user permission flags",
}

var userShowCmd = &cobra.Command{
	Use:   "show <user-id>",
	Short: "Print a user's record and developer status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		status := middleware.DevCheck(store, nil, args[0])
		record, err := store.User(args[0])
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "No record for %s (developer: %s)\n", args[0], status)
			return nil
		}

		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		fmt.Fprintf(cmd.OutOrStdout(), "developer: %s\n", status)
		return nil
	},
}

var userGrantCmd = &cobra.Command{
	Use:   "grant <user-id> <flag>",
	Short: "Add a flag to a user (developer flags: " + strings.Join(middleware.DeveloperFlags, ", ") + ")",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.GrantFlag(args[0], args[1]); err != nil {
			return fmt.Errorf("grant %s to %s: %w", args[1], args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Granted %s to %s\n", args[1], args[0])
		return nil
	},
}

var userRevokeCmd = &cobra.Command{
	Use:   "revoke <user-id> <flag>",
	Short: "Remove a flag from a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.RevokeFlag(args[0], args[1]); err != nil {
			return fmt.Errorf("revoke %s from %s: %w", args[1], args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Revoked %s from %s\n", args[1], args[0])
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List every stored user",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		users, err := store.Users()
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		if len(users) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
			return nil
		}
		for _, u := range users {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s [%s]\n", u.UserID, strings.Join(u.Flags.Common, ", "))
		}
		return nil
	},
}

func init() {
	userCmd.AddCommand(userShowCmd, userGrantCmd, userRevokeCmd, userListCmd)
	rootCmd.AddCommand(userCmd)
}
