package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mmcdole/noor/internal/domain"
	"github.com/spf13/cobra"
)

func newLocationCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Show or change the prayer location",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		loc, ok := a.Services.Location.Saved()
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "No location saved. Run `noor location detect` or `noor location set <latitude> <longitude> [city]`.")
			return nil
		}
		printLocation(cmd.OutOrStdout(), loc)
		return nil
	})

	cmd.AddCommand(newLocationSetCmd(opts), newLocationDetectCmd(opts))
	return cmd
}

func newLocationSetCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <latitude> <longitude> [city]",
		Short: "Fix the prayer location and save it to config.yaml",
		Example: `  noor location set 21.4225 39.8262 Makkah
  noor location set -- -33.8688 151.2093 Sydney`,
		Args: cobra.MinimumNArgs(2),
	}
	cmd.RunE = withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		lat, lon, err := parseCoordinates(args[0], args[1])
		if err != nil {
			return err
		}
		city := strings.Join(args[2:], " ")

		loc, err := a.Services.Location.Update(ctx, domain.Location{Latitude: lat, Longitude: lon, City: city})
		if err != nil {
			return fmt.Errorf("failed to save location: %w", err)
		}
		if err := a.Loader.SaveLocation(loc.Latitude, loc.Longitude, loc.City); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printLocation(out, loc)
		fmt.Fprintf(out, "Saved to %s\n", a.Loader.ConfigFile())
		return nil
	})
	return cmd
}

func newLocationDetectCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect the location from the network and save it",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		loc, err := a.Services.Location.Detect(ctx)
		if err != nil {
			return err
		}
		printLocation(cmd.OutOrStdout(), loc)
		return nil
	})
	return cmd
}

func printLocation(out io.Writer, loc domain.Location) {
	fmt.Fprintf(out, "%s (%.4f, %.4f)\n", loc.DisplayName(), loc.Latitude, loc.Longitude)
}

// parseCoordinates parses and range-checks a latitude/longitude pair
func parseCoordinates(latArg, lonArg string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latArg), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q", latArg)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonArg), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q", lonArg)
	}
	if !domain.ValidCoordinates(lat, lon) {
		return 0, 0, fmt.Errorf("coordinates out of range: %.4f, %.4f", lat, lon)
	}
	return lat, lon, nil
}
