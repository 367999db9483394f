package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/service"
	"github.com/mmcdole/noor/internal/source/alquran"
	"github.com/spf13/cobra"
)

func newSurahsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "surahs [query]",
		Short: "List surahs, optionally filtered by number or name",
		Example: `  noor surahs
  noor surahs kahf
  noor surahs 36`,
	}
	cmd.RunE = withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		surahs, err := a.Services.Quran.Surahs(ctx)
		if err != nil {
			return fmt.Errorf("failed to load surahs: %w", err)
		}

		if query := strings.Join(args, " "); query != "" {
			surahs = service.FindSurah(surahs, query)
			if len(surahs) == 0 {
				return fmt.Errorf("no surah matches %q: %w", query, domain.ErrNotFound)
			}
		}

		out := cmd.OutOrStdout()
		for _, s := range surahs {
			fmt.Fprintf(out, "%3d  %-20s %-26s %s, %d ayahs\n",
				s.Number, s.EnglishName, s.EnglishNameTranslation, s.RevelationType, s.NumberOfAyahs)
		}
		return nil
	})
	return cmd
}

func newAyahsCmd(opts *rootOptions) *cobra.Command {
	var (
		reciter   string
		showAudio bool
		play      bool
		from      int
	)

	cmd := &cobra.Command{
		Use:   "ayahs <surah>",
		Short: "Print a surah with its translation",
		Example: `  noor ayahs 1
  noor ayahs 36 --reciter ar.minshawi --audio
  noor ayahs 18 --play --from 10`,
		Args: cobra.ExactArgs(1),
	}
	cmd.Flags().StringVarP(&reciter, "reciter", "r", "", "Audio edition to use (default: the selected reciter)")
	cmd.Flags().BoolVar(&showAudio, "audio", false, "Print the recitation URL under each ayah")
	cmd.Flags().BoolVarP(&play, "play", "p", false, "Play the recitation in an external player instead of printing")
	cmd.Flags().IntVar(&from, "from", 1, "First ayah to play with --play")

	cmd.RunE = withApp(opts, func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		number, err := parseSurahNumber(args[0])
		if err != nil {
			return err
		}

		surah, err := a.Services.Quran.Surah(ctx, number)
		if err != nil {
			return fmt.Errorf("failed to load surah %d: %w", number, err)
		}

		if play {
			rec, err := a.Services.Playback.PlaySurah(ctx, surah, reciter, from)
			if err != nil {
				return fmt.Errorf("failed to play surah %d: %w", number, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Playing %s (%s), %d ayahs from ayah %d\n",
				surah.DisplayTitle(), rec.Reciter.Name, rec.Tracks, rec.From)
			return nil
		}

		ayahs, err := a.Services.Quran.Ayahs(ctx, number, reciter)
		if err != nil {
			return fmt.Errorf("failed to load ayahs of surah %d: %w", number, err)
		}
		a.Services.Quran.MarkRead(surah)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s\n%s\n\n", surah.DisplayTitle(), surah.Name, surah.Description())
		for _, ayah := range ayahs {
			fmt.Fprintf(out, "%s ﴿%d﴾\n", ayah.Text, ayah.NumberInSurah)
			if ayah.Translation != "" {
				fmt.Fprintln(out, ayah.Translation)
			}
			if showAudio && ayah.Audio != "" {
				fmt.Fprintln(out, ayah.Audio)
			}
			fmt.Fprintln(out)
		}
		return nil
	})
	return cmd
}

func parseSurahNumber(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > alquran.SurahCount {
		return 0, fmt.Errorf("invalid surah %q (want 1-%d)", arg, alquran.SurahCount)
	}
	return n, nil
}
