package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/prayer"
	"github.com/mmcdole/noor/internal/prefs"
	"github.com/mmcdole/noor/internal/service"
	"github.com/mmcdole/noor/internal/tui/components"
	"github.com/mmcdole/noor/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// Tab is one of the top-level views
type Tab int

const (
	TabHome Tab = iota
	TabQuran
	TabHadith
	TabPrayer
	TabSettings
)

var tabNames = []string{"Home", "Quran", "Hadith", "Prayer", "Settings"}

// Tabs lists every tab in display order
var Tabs = []Tab{TabHome, TabQuran, TabHadith, TabPrayer, TabSettings}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}

// ParseTab maps a ui.default_tab value to a Tab, defaulting to Home
func ParseTab(name string) Tab {
	for i, n := range tabNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Tab(i)
		}
	}
	return TabHome
}

// hadithPane is the focused column on the Hadith tab
type hadithPane int

const (
	paneCollections hadithPane = iota
	paneHadiths
	paneHadithReader
)

// Layout proportions
const (
	SurahColumnPercent      = 38
	CollectionColumnPercent = 26
	HadithColumnPercent     = 30

	// Tab bar and footer
	ChromeHeight = 2

	spinnerInterval = 100 * time.Millisecond
	statusDuration  = 3 * time.Second
)

// Services bundles what the UI reads from
type Services struct {
	Quran    *service.QuranService
	Hadith   *service.HadithService
	Calendar *service.CalendarService
	Prayer   *service.PrayerService
	Location *service.LocationService
	Playback *service.PlaybackService // optional; nil disables playback
	Prefs    *prefs.Store
}

// Options configures the initial UI
type Options struct {
	Theme      string
	DefaultTab string
	Logger     *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	State ApplicationState
	Ready bool
	Tab   Tab

	svc    Services
	logger *slog.Logger

	// Dimensions
	Width  int
	Height int

	// Wall clock, advanced by ClockTickMsg
	Now time.Time

	// Home and Prayer
	Hijri         *domain.HijriDate
	HijriErr      error
	LoadingHijri  bool
	Location      *domain.Location
	LocationErr   error
	Timings       *domain.PrayerTimings
	PrayerErr     error
	LoadingPrayer bool
	Notifications prefs.Notifications
	PrayerCursor  int

	// Quran
	SurahList    *components.ListColumn
	AyahReader   components.Reader
	Surah        *domain.Surah
	PendingSurah *domain.Surah
	Reading      bool
	LoadingAyahs bool
	QuranErr     error

	// Hadith
	CollectionList *components.ListColumn
	HadithList     *components.ListColumn
	HadithReader   components.Reader
	HadithResult   *service.HadithResult
	HadithPane     hadithPane
	HadithErr      error

	// Settings
	ReciterList *components.ListColumn
	Reciter     domain.Reciter
	Theme       string

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
}

// NewModel creates the application model. Loads start in Init.
func NewModel(svc Services, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	theme := opts.Theme
	if saved, ok := svc.Prefs.Theme(); ok {
		theme = saved
	}
	palette, ok := styles.PaletteByName(theme)
	if !ok {
		palette = styles.DarkPalette
	}
	styles.Apply(palette)

	m := Model{
		State:          StateBrowsing,
		Tab:            ParseTab(opts.DefaultTab),
		svc:            svc,
		logger:         logger,
		Now:            svc.Prayer.Now(),
		LoadingHijri:   true,
		LoadingPrayer:  true,
		Notifications:  svc.Prayer.Notifications(),
		SurahList:      components.NewListColumn("Surahs"),
		AyahReader:     components.NewReader(),
		CollectionList: components.NewListColumn("Collections"),
		HadithList:     components.NewListColumn("Hadiths"),
		HadithReader:   components.NewReader(),
		ReciterList:    components.NewListColumn("Reciter"),
		Reciter:        svc.Quran.SelectedReciter(),
		Theme:          palette.Name,
	}

	m.SurahList.SetLoading(true)
	m.HadithList.SetLoading(true)

	m.CollectionList.SetItems(components.CollectionItems(svc.Hadith.Collections()))
	last := svc.Hadith.LastCollection()
	m.CollectionList.SelectID(last.ID)
	m.CollectionList.SetMarked(last.ID)
	m.HadithList.SetTitle(last.Name)

	m.ReciterList.SetItems(components.ReciterItems(svc.Quran.Reciters()))
	m.ReciterList.SelectID(m.Reciter.ID)
	m.ReciterList.SetMarked(m.Reciter.ID)

	if loc, ok := svc.Location.Saved(); ok {
		m.Location = &loc
	}

	m.updateFocus()
	return m
}

// Init starts the initial loads
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadHijriCmd(m.svc.Calendar),
		ResolveLocationCmd(m.svc.Location, false),
		LoadSurahsCmd(m.svc.Quran),
		LoadHadithsCmd(m.svc.Hadith, m.selectedCollectionID()),
		SpinnerTickCmd(spinnerInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case SpinnerTickMsg:
		m.SpinnerFrame++
		m.SurahList.SetSpinnerFrame(m.SpinnerFrame)
		m.HadithList.SetSpinnerFrame(m.SpinnerFrame)
		return m, SpinnerTickCmd(spinnerInterval)

	case ClockTickMsg:
		m.Now = msg.Now
		return m, nil

	case DayRolloverMsg:
		m.Now = msg.Now
		m.logger.Info("day rollover", "date", msg.Now.Format(time.DateOnly))
		return m, m.reloadDay()

	case HijriLoadedMsg:
		m.Hijri = &msg.Date
		m.HijriErr = nil
		m.LoadingHijri = false
		return m, nil

	case LocationResolvedMsg:
		m.Location = &msg.Location
		m.LocationErr = nil
		m.PrayerErr = nil
		m.LoadingPrayer = true
		return m, LoadTimingsCmd(m.svc.Prayer, msg.Location)

	case LocationErrMsg:
		m.LocationErr = msg.Err
		m.LoadingPrayer = false
		return m, nil

	case TimingsLoadedMsg:
		m.Timings = &msg.Timings
		m.PrayerErr = nil
		m.LoadingPrayer = false
		return m, nil

	case SurahsLoadedMsg:
		m.SurahList.SetItems(components.SurahItems(msg.Surahs))
		if last, ok := m.svc.Quran.LastRead(); ok {
			m.SurahList.SelectID(components.SurahItem{Surah: last}.ItemID())
			m.SurahList.SetMarked(components.SurahItem{Surah: last}.ItemID())
		}
		m.QuranErr = nil
		return m, nil

	case AyahsLoadedMsg:
		if m.PendingSurah == nil || m.PendingSurah.Number != msg.Surah.Number {
			// superseded by a later selection
			return m, nil
		}
		surah := msg.Surah
		m.Surah = &surah
		m.PendingSurah = nil
		m.LoadingAyahs = false
		m.QuranErr = nil
		m.Reading = true
		m.SurahList.SetMarked(components.SurahItem{Surah: surah}.ItemID())
		m.AyahReader.SetContent(
			surah.DisplayTitle()+"  "+surah.Name,
			FormatAyahs(msg.Ayahs, m.AyahReader.ContentWidth()),
		)
		m.updateFocus()
		return m, nil

	case HadithsLoadedMsg:
		result := msg.Result
		m.HadithResult = &result
		m.HadithErr = nil
		m.HadithList.SetTitle(result.Collection.Name)
		m.HadithList.SetItems(components.HadithItems(result.Hadiths))
		m.CollectionList.SetMarked(result.Collection.ID)
		m.showSelectedHadith()
		return m, nil

	case ReciterSelectedMsg:
		m.Reciter = msg.Reciter
		m.ReciterList.SetMarked(msg.Reciter.ID)
		m.StatusMsg = "Reciter: " + msg.Reciter.Name
		m.StatusIsErr = false
		cmds := []tea.Cmd{ClearStatusCmd(statusDuration)}
		if m.Surah != nil {
			cmds = append(cmds, m.openSurah(*m.Surah))
		}
		return m, tea.Batch(cmds...)

	case NotificationToggledMsg:
		m.Notifications[msg.Prayer] = msg.Enabled
		state := "off"
		if msg.Enabled {
			state = "on"
		}
		m.StatusMsg = msg.Prayer + " reminder " + state
		m.StatusIsErr = false
		return m, ClearStatusCmd(statusDuration)

	case ErrMsg:
		m.applyError(msg)
		return m, nil

	case RecitationStartedMsg:
		r := msg.Recitation
		m.StatusMsg = fmt.Sprintf("Playing %s · %s (%d ayahs)", r.Surah.EnglishName, r.Reciter.Name, r.Tracks)
		m.StatusIsErr = false
		return m, ClearStatusCmd(statusDuration)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(statusDuration)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// applyError records a failed load on the tab that shows it
func (m *Model) applyError(msg ErrMsg) {
	m.logger.Error("load failed", "context", msg.Context, "error", msg.Err)

	switch msg.Tab {
	case TabHome:
		m.HijriErr = msg
		m.LoadingHijri = false
	case TabPrayer:
		m.PrayerErr = msg
		m.LoadingPrayer = false
	case TabQuran:
		m.QuranErr = msg
		m.LoadingAyahs = false
		m.SurahList.SetLoading(false)
	case TabHadith:
		m.HadithErr = msg
		m.HadithList.SetLoading(false)
	default:
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
	}
}

// openSurah starts loading a surah with the selected reciter
func (m *Model) openSurah(surah domain.Surah) tea.Cmd {
	m.PendingSurah = &surah
	m.LoadingAyahs = true
	m.QuranErr = nil
	return LoadAyahsCmd(m.svc.Quran, surah, m.Reciter)
}

// openCollection starts loading a hadith collection
func (m *Model) openCollection(id string) tea.Cmd {
	m.HadithErr = nil
	m.HadithList.SetLoading(true)
	return LoadHadithsCmd(m.svc.Hadith, id)
}

// reloadDay refetches what depends on the calendar date
func (m *Model) reloadDay() tea.Cmd {
	m.LoadingHijri = true
	m.HijriErr = nil
	cmds := []tea.Cmd{LoadHijriCmd(m.svc.Calendar)}
	if m.Location != nil {
		m.LoadingPrayer = true
		m.PrayerErr = nil
		cmds = append(cmds, LoadTimingsCmd(m.svc.Prayer, *m.Location))
	}
	return tea.Batch(cmds...)
}

// retry reloads whatever failed on the current tab
func (m *Model) retry() tea.Cmd {
	switch m.Tab {
	case TabHome:
		cmds := []tea.Cmd{}
		if m.HijriErr != nil || m.Hijri == nil {
			m.LoadingHijri = true
			m.HijriErr = nil
			cmds = append(cmds, LoadHijriCmd(m.svc.Calendar))
		}
		if cmd := m.retryPrayer(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return tea.Batch(cmds...)

	case TabPrayer:
		return m.retryPrayer()

	case TabQuran:
		if len(m.SurahList.Items()) == 0 {
			m.QuranErr = nil
			m.SurahList.SetLoading(true)
			return LoadSurahsCmd(m.svc.Quran)
		}
		if m.QuranErr != nil {
			if m.PendingSurah != nil {
				return m.openSurah(*m.PendingSurah)
			}
			if item, ok := m.SurahList.SelectedItem().(components.SurahItem); ok {
				return m.openSurah(item.Surah)
			}
		}
		return nil

	case TabHadith:
		return m.openCollection(m.selectedCollectionID())
	}
	return nil
}

func (m *Model) retryPrayer() tea.Cmd {
	if m.Location == nil || m.LocationErr != nil {
		m.LoadingPrayer = true
		m.LocationErr = nil
		m.PrayerErr = nil
		return ResolveLocationCmd(m.svc.Location, false)
	}
	if m.PrayerErr != nil || m.Timings == nil {
		m.LoadingPrayer = true
		m.PrayerErr = nil
		return LoadTimingsCmd(m.svc.Prayer, *m.Location)
	}
	return nil
}

// toggleTheme switches between dark and light and remembers the choice
func (m *Model) toggleTheme() tea.Cmd {
	next := styles.LightPalette
	if m.Theme == styles.ThemeLight {
		next = styles.DarkPalette
	}
	styles.Apply(next)
	m.Theme = next.Name
	for _, l := range []*components.ListColumn{m.SurahList, m.CollectionList, m.HadithList, m.ReciterList} {
		l.Restyle()
	}

	if err := m.svc.Prefs.SetTheme(next.Name); err != nil {
		m.logger.Warn("failed to save theme", "error", err)
		return func() tea.Msg {
			return StatusMsg{Message: "Theme changed but could not be saved", IsError: true}
		}
	}
	m.StatusMsg = "Theme: " + next.Name
	m.StatusIsErr = false
	return ClearStatusCmd(statusDuration)
}

// switchTab activates t
func (m *Model) switchTab(t Tab) {
	m.Tab = t
	m.updateFocus()
}

// updateFocus sets which component receives keys
func (m *Model) updateFocus() {
	m.SurahList.SetFocused(m.Tab == TabQuran && !m.Reading)
	m.AyahReader.SetFocused(m.Tab == TabQuran && m.Reading)
	m.CollectionList.SetFocused(m.Tab == TabHadith && m.HadithPane == paneCollections)
	m.HadithList.SetFocused(m.Tab == TabHadith && m.HadithPane == paneHadiths)
	m.HadithReader.SetFocused(m.Tab == TabHadith && m.HadithPane == paneHadithReader)
	m.ReciterList.SetFocused(m.Tab == TabSettings)
}

// updateLayout sizes the components to the window
func (m *Model) updateLayout() {
	bodyHeight := max(m.Height-ChromeHeight, 3)

	surahWidth := m.Width * SurahColumnPercent / 100
	m.SurahList.SetSize(surahWidth, bodyHeight)
	m.AyahReader.SetSize(m.Width-surahWidth, bodyHeight)

	collWidth := m.Width * CollectionColumnPercent / 100
	hadithWidth := m.Width * HadithColumnPercent / 100
	m.CollectionList.SetSize(collWidth, bodyHeight)
	m.HadithList.SetSize(hadithWidth, bodyHeight)
	m.HadithReader.SetSize(m.Width-collWidth-hadithWidth, bodyHeight)

	m.ReciterList.SetSize(m.Width/2, bodyHeight)

	m.showSelectedHadith()
}

// showSelectedHadith renders the hadith under the cursor into the reader
func (m *Model) showSelectedHadith() {
	item, ok := m.HadithList.SelectedItem().(components.HadithItem)
	if !ok {
		m.HadithReader.SetContent("", "")
		return
	}
	m.HadithReader.SetContent(item.Hadith.Title, FormatHadith(item.Hadith, m.HadithReader.ContentWidth()))
}

func (m Model) selectedCollectionID() string {
	if item, ok := m.CollectionList.SelectedItem().(components.CollectionItem); ok {
		return item.Collection.ID
	}
	return domain.DefaultHadithCollections[0].ID
}

// nextPrayer resolves the next prayer at the model's clock
func (m Model) nextPrayer() (domain.NextPrayer, bool) {
	if m.Timings == nil {
		return domain.NextPrayer{}, false
	}
	return m.svc.Prayer.NextAt(*m.Timings, m.Now)
}

// scheduleRows returns the prayer table at the model's clock
func (m Model) scheduleRows() []prayer.Row {
	if m.Timings == nil {
		return nil
	}
	return m.svc.Prayer.ScheduleAt(*m.Timings, m.Now)
}
