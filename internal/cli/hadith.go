package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/noor/internal/domain"
	"github.com/spf13/cobra"
)

func newHadithCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "hadith [collection]",
		Short: "List the collections, or print hadiths from one",
		Args:  cobra.MaximumNArgs(1),
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of hadiths to print (default: hadith.limit)")

	cmd.RunE = withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			for _, c := range a.Services.Hadith.Collections() {
				fmt.Fprintf(out, "%-12s %-28s %d hadiths\n", c.ID, c.Name, c.Count)
			}
			return nil
		}

		id := strings.ToLower(args[0])
		if _, ok := domain.FindHadithCollection(id); !ok {
			return fmt.Errorf("unknown collection %q (run `noor hadith` for the list): %w", args[0], domain.ErrNotFound)
		}
		if err := a.Services.Hadith.SelectCollection(id); err != nil {
			a.Logger.Warn("failed to save collection", "error", err)
		}

		result := a.Services.Hadith.Hadiths(ctx, id, limit)
		if result.Fallback {
			fmt.Fprintf(cmd.ErrOrStderr(), "Showing sample hadiths: %s could not be loaded (%v)\n", id, result.Cause)
		}

		fmt.Fprintf(out, "%s\n\n", result.Collection.Name)
		for _, h := range result.Hadiths {
			fmt.Fprintf(out, "%s\n%s\n", h.Title, h.Text)
			if h.Translation != "" {
				fmt.Fprintln(out, h.Translation)
			}
			if h.Reference != "" {
				fmt.Fprintf(out, "(%s)\n", h.Reference)
			}
			fmt.Fprintln(out)
		}
		return nil
	})
	return cmd
}
