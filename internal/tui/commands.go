package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/player"
	"github.com/mmcdole/noor/internal/service"
)

// Command factories for async operations

// requestTimeout bounds every load started from the UI
const requestTimeout = 30 * time.Second

// LoadHijriCmd loads today's Hijri date
func LoadHijriCmd(svc *service.CalendarService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		date, err := svc.Today(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading hijri date", Tab: TabHome}
		}
		return HijriLoadedMsg{Date: date}
	}
}

// ResolveLocationCmd returns the saved location, detecting one when none is
// saved or when detect is set.
func ResolveLocationCmd(svc *service.LocationService, detect bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		var (
			loc domain.Location
			err error
		)
		if detect {
			loc, err = svc.Detect(ctx)
		} else {
			loc, err = svc.Current(ctx)
		}
		if err != nil {
			if errors.Is(err, domain.ErrLocationUnavailable) {
				return LocationErrMsg{Err: err}
			}
			return ErrMsg{Err: err, Context: "resolving location", Tab: TabPrayer}
		}
		return LocationResolvedMsg{Location: loc}
	}
}

// LoadTimingsCmd loads today's prayer timings at loc
func LoadTimingsCmd(svc *service.PrayerService, loc domain.Location) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		timings, err := svc.Today(ctx, loc)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading prayer times", Tab: TabPrayer}
		}
		return TimingsLoadedMsg{Timings: timings, Location: loc}
	}
}

// LoadSurahsCmd loads the surah list
func LoadSurahsCmd(svc *service.QuranService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		surahs, err := svc.Surahs(ctx)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading surahs", Tab: TabQuran}
		}
		return SurahsLoadedMsg{Surahs: surahs}
	}
}

// LoadAyahsCmd loads one surah's ayahs with the given reciter's audio
func LoadAyahsCmd(svc *service.QuranService, surah domain.Surah, reciter domain.Reciter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		ayahs, err := svc.Ayahs(ctx, surah.Number, reciter.ID)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading " + surah.EnglishName, Tab: TabQuran}
		}
		svc.MarkRead(surah)
		return AyahsLoadedMsg{Surah: surah, Reciter: reciter, Ayahs: ayahs}
	}
}

// LoadHadithsCmd loads a hadith collection. It always yields a page.
func LoadHadithsCmd(svc *service.HadithService, collection string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := svc.SelectCollection(collection); err != nil {
			return ErrMsg{Err: err, Context: "selecting collection", Tab: TabHadith}
		}
		return HadithsLoadedMsg{Result: svc.Hadiths(ctx, collection, 0)}
	}
}

// SelectReciterCmd stores the reciter choice
func SelectReciterCmd(svc *service.QuranService, id string) tea.Cmd {
	return func() tea.Msg {
		r, err := svc.SelectReciter(id)
		if err != nil {
			return StatusMsg{Message: "Could not save reciter: " + err.Error(), IsError: true}
		}
		return ReciterSelectedMsg{Reciter: r}
	}
}

// ToggleNotificationCmd flips the reminder toggle for a prayer
func ToggleNotificationCmd(svc *service.PrayerService, name string) tea.Cmd {
	return func() tea.Msg {
		enabled, err := svc.ToggleNotification(name)
		if err != nil {
			return StatusMsg{Message: "Could not save reminder: " + err.Error(), IsError: true}
		}
		return NotificationToggledMsg{Prayer: name, Enabled: enabled}
	}
}

// SpinnerTickCmd returns a command that advances the spinner after a delay
func SpinnerTickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// PlaySurahCmd hands a surah's recitation by the selected reciter to the player
func PlaySurahCmd(svc *service.PlaybackService, surah domain.Surah) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		rec, err := svc.PlaySurah(ctx, surah, "", 1)
		switch {
		case errors.Is(err, player.ErrNoPlayer):
			return StatusMsg{Message: "No audio player found: install mpv or set player.command", IsError: true}
		case err != nil:
			return StatusMsg{Message: ErrorHint(ErrMsg{Err: err, Context: "loading the recitation"}), IsError: true}
		}
		return RecitationStartedMsg{Recitation: rec}
	}
}
