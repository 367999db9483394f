// Package cli wires configuration, storage and services into the noor
// command line. Without a subcommand it opens the interactive reader.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmcdole/noor/internal/schedule"
	"github.com/mmcdole/noor/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
)

// rootOptions are the persistent flags shared by every command
type rootOptions struct {
	configDir string
	envFile   string
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "noor",
		Short:         "Quran, hadith and prayer times in the terminal",
		Long:          "Noor reads the Quran and hadith collections, shows today's Hijri date and tracks the next prayer.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "Directory holding config.yaml (default $XDG_CONFIG_HOME/noor)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Dotenv file read before the environment (default .env)")

	root.AddCommand(
		newPrayerCmd(opts),
		newHijriCmd(opts),
		newSurahsCmd(opts),
		newAyahsCmd(opts),
		newHadithCmd(opts),
		newLocationCmd(opts),
		newCacheCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Run executes the command line and returns the process exit code
func Run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return ExitSuccess
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the reader needs a terminal; use a subcommand such as `noor prayer` for plain output")
	}

	a, err := openApp(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer a.Close()

	model := tui.NewModel(a.Services, tui.Options{
		Theme:      a.Config.UI.Theme,
		DefaultTab: a.Config.UI.DefaultTab,
		Logger:     a.Logger,
	})
	return tui.Run(model, schedule.New(a.Logger), a.Logger)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print noor version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "noor %s\n", Version)
		},
	}
}
