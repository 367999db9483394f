package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached API responses",
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached response (preferences are kept)",
		Args:  cobra.NoArgs,
	}
	clearCmd.RunE = withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		removed, err := a.Cache.Clear()
		if err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cache cleared (%d entries).\n", removed)
		return nil
	})

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show cache statistics",
		Args:  cobra.NoArgs,
	}
	showCmd.RunE = withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		stats, err := a.Cache.Stats()
		if err != nil {
			return fmt.Errorf("reading cache stats: %w", err)
		}
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Store: %s\n", a.Backend.Location)
		fmt.Fprintln(out, string(data))
		return nil
	})

	cmd.AddCommand(clearCmd, showCmd)
	return cmd
}
