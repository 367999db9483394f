package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/prayer"
	"github.com/mmcdole/noor/internal/tui/components"
	"github.com/mmcdole/noor/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}
	if m.State == StateHelp {
		return m.renderHelp()
	}

	bodyHeight := max(m.Height-ChromeHeight, 3)

	var body string
	switch m.Tab {
	case TabHome:
		body = m.renderHome()
	case TabQuran:
		body = m.renderQuran()
	case TabHadith:
		body = m.renderHadith()
	case TabPrayer:
		body = m.renderPrayer()
	case TabSettings:
		body = m.renderSettings()
	}

	body = lipgloss.NewStyle().
		Width(m.Width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		RenderTabBar(m.Tab, m.Width),
		body,
		m.renderFooter(),
	)
}

// RenderTabBar renders the tab strip with the active tab highlighted
func RenderTabBar(active Tab, width int) string {
	parts := make([]string, 0, len(Tabs)+1)
	for i, t := range Tabs {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == active {
			parts = append(parts, styles.ActiveTabStyle.Render(label))
		} else {
			parts = append(parts, styles.InactiveTabStyle.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	brand := styles.AccentStyle.Render(" noor ")
	gap := width - lipgloss.Width(bar) - lipgloss.Width(brand)
	if gap > 0 {
		bar += styles.TabGapStyle.Render(strings.Repeat(" ", gap)) + brand
	}
	return bar
}

// Home

func (m Model) renderHome() string {
	var b strings.Builder
	pad := lipgloss.NewStyle().Padding(1, 2)

	b.WriteString(styles.ArabicStyle.Render("بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ"))
	b.WriteString("\n\n")

	switch {
	case m.Hijri != nil:
		b.WriteString(styles.TitleStyle.Render(m.Hijri.Hijri.String()))
		if ar := m.Hijri.Hijri.Month.Ar; ar != "" {
			b.WriteString("  " + styles.SubtitleStyle.Render(ar))
		}
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(m.Hijri.Gregorian.String()))
	case m.HijriErr != nil:
		b.WriteString(RenderError(m.HijriErr, m.Width-4))
	default:
		b.WriteString(m.renderSpinner() + styles.DimStyle.Render(" Loading date..."))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderNextPrayer())
	b.WriteString("\n\n")

	if rows := m.scheduleRows(); len(rows) > 0 {
		b.WriteString(RenderPrayerStrip(rows))
		b.WriteString("\n")
	}

	if last, ok := m.svc.Quran.LastRead(); ok {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render("Continue reading: "))
		b.WriteString(styles.SubtitleStyle.Render(last.DisplayTitle() + "  " + last.Name))
	}

	return pad.Render(b.String())
}

// renderNextPrayer renders the next prayer with its live countdown, or the
// state explaining why there is none
func (m Model) renderNextPrayer() string {
	switch {
	case m.LocationErr != nil:
		return RenderLocationNotice(m.LocationErr, m.Width-4)
	case m.PrayerErr != nil:
		return RenderError(m.PrayerErr, m.Width-4)
	}

	next, ok := m.nextPrayer()
	if !ok {
		return m.renderSpinner() + styles.DimStyle.Render(" Calculating prayer times...")
	}

	var b strings.Builder
	b.WriteString(styles.DimStyle.Render("Next prayer"))
	if m.Location != nil {
		b.WriteString(styles.DimStyle.Render(" · " + m.Location.DisplayName()))
	}
	b.WriteString("\n")
	b.WriteString(styles.NextPrayerStyle.Render(next.Name))
	b.WriteString("  ")
	b.WriteString(styles.TitleStyle.Render(next.Formatted))
	b.WriteString("  ")
	b.WriteString(styles.CountdownStyle.Render(CountdownLabel(next, m.Now)))
	return b.String()
}

// CountdownLabel renders "in 1h 45m", or "now" once the prayer is due
func CountdownLabel(next domain.NextPrayer, now time.Time) string {
	remaining := prayer.Remaining(next, now)
	if remaining == "now" {
		return remaining
	}
	return "in " + remaining
}

// RenderPrayerStrip renders the day's prayers on one line
func RenderPrayerStrip(rows []prayer.Row) string {
	parts := make([]string, 0, len(rows))
	for _, r := range rows {
		label := r.Name + " " + r.Formatted
		switch {
		case r.Next:
			parts = append(parts, styles.NextPrayerStyle.Render(label))
		case r.Passed || !r.Valid:
			parts = append(parts, styles.PassedPrayerStyle.Render(label))
		default:
			parts = append(parts, styles.SubtitleStyle.Render(label))
		}
	}
	return strings.Join(parts, styles.DimStyle.Render("  ·  "))
}

// Quran

func (m Model) renderQuran() string {
	left := m.SurahList.View()

	var right string
	switch {
	case m.QuranErr != nil && (m.PendingSurah != nil || len(m.SurahList.Items()) == 0):
		right = m.renderPane(RenderError(m.QuranErr, m.AyahReader.ContentWidth()), m.Width-m.SurahList.Width())
	case m.LoadingAyahs && m.PendingSurah != nil:
		msg := m.renderSpinner() + styles.DimStyle.Render(" Loading "+m.PendingSurah.EnglishName+"...")
		right = m.renderPane(msg, m.Width-m.SurahList.Width())
	case m.Surah != nil:
		right = m.AyahReader.View()
	default:
		right = m.renderPane(m.renderSurahPreview(), m.Width-m.SurahList.Width())
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// renderSurahPreview describes the surah under the cursor
func (m Model) renderSurahPreview() string {
	item, ok := m.SurahList.SelectedItem().(components.SurahItem)
	if !ok {
		return styles.DimStyle.Render("Select a surah")
	}
	s := item.Surah
	var b strings.Builder
	b.WriteString(styles.ArabicStyle.Render(s.Name) + "\n")
	b.WriteString(styles.TitleStyle.Render(s.DisplayTitle()) + "\n")
	b.WriteString(styles.SubtitleStyle.Render(s.Description()) + "\n\n")
	b.WriteString(styles.DimStyle.Render("Reciter: "+m.Reciter.Name) + "\n")
	b.WriteString(styles.DimStyle.Render("enter to read"))
	return b.String()
}

// FormatAyahs renders ayahs with their translation and audio link, wrapped to width
func FormatAyahs(ayahs []domain.Ayah, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width-1, 10))

	blocks := make([]string, 0, len(ayahs))
	for _, a := range ayahs {
		var b strings.Builder
		b.WriteString(wrap.Render(styles.ArabicStyle.Render(fmt.Sprintf("%s ﴿%d﴾", a.Text, a.NumberInSurah))))
		if a.Translation != "" {
			b.WriteString("\n")
			b.WriteString(wrap.Render(styles.SubtitleStyle.Render(a.Translation)))
		}
		if a.Audio != "" {
			b.WriteString("\n")
			b.WriteString(styles.LinkStyle.Render(a.Audio))
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

// Hadith

func (m Model) renderHadith() string {
	readerWidth := m.Width - m.CollectionList.Width() - m.HadithList.Width()

	var right string
	switch {
	case m.HadithErr != nil:
		right = m.renderPane(RenderError(m.HadithErr, readerWidth-4), readerWidth)
	case m.HadithList.SelectedItem() == nil:
		right = m.renderPane(styles.DimStyle.Render("Select a hadith"), readerWidth)
	default:
		right = m.HadithReader.View()
	}

	view := lipgloss.JoinHorizontal(lipgloss.Top, m.CollectionList.View(), m.HadithList.View(), right)
	return view
}

// FormatHadith renders one hadith wrapped to width
func FormatHadith(h domain.Hadith, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width-1, 10))

	var b strings.Builder
	b.WriteString(wrap.Render(styles.ArabicStyle.Render(h.Text)))
	if h.Translation != "" {
		b.WriteString("\n\n")
		b.WriteString(wrap.Render(styles.SubtitleStyle.Render(h.Translation)))
	}

	var meta []string
	if h.Chapter != "" {
		meta = append(meta, h.Chapter)
	}
	if h.Reference != "" {
		meta = append(meta, h.Reference)
	}
	if h.Grade != "" {
		meta = append(meta, h.Grade)
	}
	if len(meta) > 0 {
		b.WriteString("\n\n")
		b.WriteString(wrap.Render(styles.DimStyle.Render(strings.Join(meta, " · "))))
	}
	return b.String()
}

// Prayer

func (m Model) renderPrayer() string {
	var b strings.Builder
	pad := lipgloss.NewStyle().Padding(1, 2)

	b.WriteString(styles.TitleStyle.Render("Prayer times"))
	if m.Location != nil {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  %s (%.4f, %.4f)",
			m.Location.DisplayName(), m.Location.Latitude, m.Location.Longitude)))
	}
	b.WriteString("\n\n")

	switch {
	case m.LocationErr != nil:
		b.WriteString(RenderLocationNotice(m.LocationErr, m.Width-4))
		return pad.Render(b.String())
	case m.PrayerErr != nil:
		b.WriteString(RenderError(m.PrayerErr, m.Width-4))
		return pad.Render(b.String())
	case m.Timings == nil:
		b.WriteString(m.renderSpinner() + styles.DimStyle.Render(" Loading prayer times..."))
		return pad.Render(b.String())
	}

	b.WriteString(RenderPrayerTable(m.scheduleRows(), m.Notifications, m.cursorPrayer()))
	b.WriteString("\n\n")

	if next, ok := m.nextPrayer(); ok {
		b.WriteString(styles.NextPrayerStyle.Render(next.Name) + " ")
		b.WriteString(styles.CountdownStyle.Render(CountdownLabel(next, m.Now)))
		b.WriteString("\n")
	}
	if m.LoadingPrayer {
		b.WriteString(m.renderSpinner() + styles.DimStyle.Render(" Refreshing..."))
	}

	return pad.Render(b.String())
}

func (m Model) cursorPrayer() string {
	if m.PrayerCursor < 0 || m.PrayerCursor >= len(prayer.CanonicalPrayers) {
		return ""
	}
	return prayer.CanonicalPrayers[m.PrayerCursor]
}

// RenderPrayerTable renders one row per prayer with its reminder toggle.
// Sunrise is informational and has no toggle.
func RenderPrayerTable(rows []prayer.Row, notifications map[string]bool, cursor string) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		marker := "  "
		if r.Name == cursor {
			marker = styles.AccentStyle.Render("› ")
		}

		name := styles.Pad(r.Name, 9)
		clock := styles.Pad(r.Formatted, 10)
		var line string
		switch {
		case r.Next:
			line = styles.NextPrayerStyle.Render(name + clock)
		case r.Passed || !r.Valid:
			line = styles.PassedPrayerStyle.Render(name + clock)
		default:
			line = styles.SubtitleStyle.Render(name + clock)
		}

		reminder := ""
		if r.Name != prayer.Sunrise {
			if notifications[r.Name] {
				reminder = styles.SuccessStyle.Render("● reminder on")
			} else {
				reminder = styles.DimStyle.Render("○ reminder off")
			}
		}
		lines = append(lines, marker+line+reminder)
	}
	return strings.Join(lines, "\n")
}

// Settings

func (m Model) renderSettings() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Settings") + "\n\n")
	b.WriteString(styles.DimStyle.Render("Reciter  ") + styles.SubtitleStyle.Render(m.Reciter.Name) + "\n")
	b.WriteString(styles.DimStyle.Render("Theme    ") + styles.SubtitleStyle.Render(m.Theme) + "\n")
	if m.Location != nil {
		b.WriteString(styles.DimStyle.Render("Location ") + styles.SubtitleStyle.Render(m.Location.DisplayName()) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("enter selects a reciter · t toggles the theme"))

	info := lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, m.ReciterList.View(), info)
}

// Shared pieces

// renderPane draws content in an unfocused bordered box the size of a reader
func (m Model) renderPane(content string, width int) string {
	style := styles.InactiveBorder
	frameW, frameH := style.GetFrameSize()
	height := max(m.Height-ChromeHeight, 3)
	return style.
		Width(max(width-frameW, 0)).
		Height(max(height-frameH, 0)).
		Render(content)
}

func (m Model) renderFooter() string {
	var left string
	switch {
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.SuccessStyle.Render(m.StatusMsg)
	case m.Tab == TabHadith && m.HadithResult != nil && m.HadithResult.Fallback:
		left = styles.WarningStyle.Render("Showing sample hadiths: the collection could not be loaded (r to retry)")
	default:
		left = m.renderHints()
	}
	return lipgloss.NewStyle().MaxWidth(max(m.Width, 1)).Render(left)
}

// renderHints shows the keys that matter on the current tab
func (m Model) renderHints() string {
	hints := [][2]string{{"tab", "switch"}}
	switch m.Tab {
	case TabQuran:
		if m.Reading {
			hints = append(hints, [2]string{"j/k", "scroll"}, [2]string{"h", "back"})
		} else {
			hints = append(hints, [2]string{"enter", "read"}, [2]string{"/", "filter"})
		}
		if m.svc.Playback != nil {
			hints = append(hints, [2]string{"p", "play"})
		}
	case TabHadith:
		hints = append(hints, [2]string{"enter", "open"}, [2]string{"h", "back"}, [2]string{"/", "filter"})
	case TabPrayer:
		hints = append(hints, [2]string{"space", "reminder"}, [2]string{"d", "detect location"})
	case TabSettings:
		hints = append(hints, [2]string{"enter", "select"}, [2]string{"t", "theme"})
	}
	hints = append(hints, [2]string{"r", "retry"}, [2]string{"?", "help"}, [2]string{"q", "quit"})

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = styles.HelpKeyStyle.Render(h[0]) + " " + styles.HelpDescStyle.Render(h[1])
	}
	return " " + strings.Join(parts, "  ")
}

func (m Model) renderHelp() string {
	bindings := []key.Binding{
		Keys.NextTab, Keys.PrevTab, Keys.Home, Keys.Quran, Keys.Hadith, Keys.Prayer, Keys.Options,
		Keys.Up, Keys.Down, Keys.Enter, Keys.Back, Keys.Filter,
		Keys.Retry, Keys.Detect, Keys.Toggle, Keys.Play, Keys.Theme, Keys.Help, Keys.Quit,
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Keyboard shortcuts") + "\n\n")
	for _, kb := range bindings {
		h := kb.Help()
		b.WriteString(styles.HelpKeyStyle.Render(styles.Pad(h.Key, 10)))
		b.WriteString(styles.HelpDescStyle.Render(h.Desc) + "\n")
	}
	b.WriteString("\n" + styles.DimStyle.Render("press ? or esc to close"))

	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center,
		styles.ActiveBorder.Padding(1, 3).Render(b.String()))
}

func (m Model) renderSpinner() string {
	return RenderSpinner(m.SpinnerFrame)
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(components.SpinnerFrames[frame%len(components.SpinnerFrames)])
}

// RenderError renders a load failure with a retry hint
func RenderError(err error, width int) string {
	msg := lipgloss.NewStyle().Width(max(width, 20)).Render(ErrorHint(err))
	return styles.ErrorStyle.Render(msg) + "\n" + styles.DimStyle.Render("press r to retry")
}

// ErrorHint turns a load failure into a sentence for the user
func ErrorHint(err error) string {
	var detail string
	var em ErrMsg
	if errors.As(err, &em) && em.Context != "" {
		detail = " while " + em.Context
	}

	switch {
	case errors.Is(err, domain.ErrOffline):
		return "Could not reach the content service" + detail + ". Check your connection."
	case errors.Is(err, domain.ErrUnexpectedStatus), errors.Is(err, domain.ErrInvalidResponse):
		return "The content service returned an unexpected response" + detail + "."
	case errors.Is(err, domain.ErrNotFound):
		return "Nothing was found" + detail + "."
	default:
		return "Something went wrong" + detail + ": " + err.Error()
	}
}

// RenderLocationNotice explains that no location is known and how to set one
func RenderLocationNotice(err error, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width, 20))
	var b strings.Builder
	b.WriteString(styles.WarningStyle.Render("Your location could not be determined."))
	b.WriteString("\n")
	b.WriteString(wrap.Render(styles.DimStyle.Render(
		"Press d to try detecting it again, or set it with: noor location set <latitude> <longitude> [city]")))
	if err != nil {
		b.WriteString("\n")
		b.WriteString(wrap.Render(styles.DimStyle.Render(err.Error())))
	}
	return b.String()
}
