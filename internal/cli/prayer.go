package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/prayer"
	"github.com/mmcdole/noor/internal/schedule"
	"github.com/mmcdole/noor/internal/service"
	"github.com/spf13/cobra"
)

// Scheduler job names used by `prayer --watch`
const (
	countdownJob = "prayer-countdown"
	rolloverJob  = "prayer-rollover"

	everyMinute = "0 * * * * *"
)

func newPrayerCmd(opts *rootOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "prayer",
		Short: "Show today's prayer times and the next prayer",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep running, print the countdown every minute and refresh at midnight")

	cmd.RunE = withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		loc, err := a.Services.Location.Current(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrLocationUnavailable) {
				return fmt.Errorf("%w; set one with `noor location set <latitude> <longitude> [city]`", err)
			}
			return err
		}

		timings, err := a.Services.Prayer.Today(ctx, loc)
		if err != nil {
			return fmt.Errorf("failed to load prayer times: %w", err)
		}
		printSchedule(out, a.Services.Prayer, loc, timings)

		if !watch {
			return nil
		}
		return watchPrayer(ctx, a, out, loc, timings)
	})
	return cmd
}

// printSchedule writes the day's table followed by the next prayer
func printSchedule(out io.Writer, svc *service.PrayerService, loc domain.Location, timings domain.PrayerTimings) {
	fmt.Fprintf(out, "Prayer times for %s on %s\n\n", loc.DisplayName(), timings.Date)
	reminders := svc.Notifications()
	for _, row := range svc.Schedule(timings) {
		marker := "  "
		if row.Next {
			marker = "› "
		}
		reminder := ""
		if row.Name != prayer.Sunrise && !reminders[row.Name] {
			reminder = "  (reminder off)"
		}
		fmt.Fprintf(out, "%s%-8s %s%s\n", marker, row.Name, row.Formatted, reminder)
	}
	fmt.Fprintln(out)
	printNext(out, svc, timings)
}

func printNext(out io.Writer, svc *service.PrayerService, timings domain.PrayerTimings) {
	next, ok := svc.Next(timings)
	if !ok {
		fmt.Fprintln(out, "No valid prayer times for today.")
		return
	}
	fmt.Fprintf(out, "Next: %s at %s (%s)\n", next.Name, next.Formatted, countdown(svc, next))
}

func countdown(svc *service.PrayerService, next domain.NextPrayer) string {
	remaining := svc.Remaining(next)
	if remaining == "now" {
		return remaining
	}
	return "in " + remaining
}

// watchPrayer prints the countdown every minute and reloads the timings at
// midnight until ctx is cancelled
func watchPrayer(ctx context.Context, a *app, out io.Writer, loc domain.Location, timings domain.PrayerTimings) error {
	var mu sync.Mutex
	s := schedule.New(a.Logger)

	if err := s.Every(countdownJob, everyMinute, func() {
		mu.Lock()
		defer mu.Unlock()
		printNext(out, a.Services.Prayer, timings)
	}); err != nil {
		return err
	}

	if err := s.Every(rolloverJob, schedule.Midnight, func() {
		fresh, err := a.Services.Prayer.Today(ctx, loc)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			a.Logger.Error("failed to refresh prayer times", "error", err)
			fmt.Fprintf(out, "Could not refresh prayer times: %v\n", err)
			return
		}
		timings = fresh
		fmt.Fprintln(out)
		printSchedule(out, a.Services.Prayer, loc, timings)
	}); err != nil {
		return err
	}

	s.Start()
	defer s.Stop()

	<-ctx.Done()
	return nil
}

func newHijriCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hijri",
		Short: "Show today's Hijri date",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		d, err := a.Services.Calendar.Today(ctx)
		if err != nil {
			return fmt.Errorf("failed to load hijri date: %w", err)
		}
		line := d.Hijri.String()
		if d.Hijri.Month.Ar != "" {
			line += "  " + d.Hijri.Month.Ar
		}
		fmt.Fprintln(out, line)
		if g := d.Gregorian.String(); g != "" {
			fmt.Fprintln(out, g)
		}
		return nil
	})
	return cmd
}
