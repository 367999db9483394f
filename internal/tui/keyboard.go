package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/noor/internal/prayer"
	"github.com/mmcdole/noor/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.State == StateHelp {
		if key.Matches(msg, Keys.Help, Keys.Back, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil
	}

	// A focused filter swallows everything except ctrl+c
	if list := m.focusedList(); list != nil && list.IsFilterTyping() {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		_, cmd := list.Update(msg)
		return m, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.NextTab):
		m.switchTab((m.Tab + 1) % Tab(len(Tabs)))
		return m, nil

	case key.Matches(msg, Keys.PrevTab):
		m.switchTab((m.Tab + Tab(len(Tabs)) - 1) % Tab(len(Tabs)))
		return m, nil

	case key.Matches(msg, Keys.Home):
		m.switchTab(TabHome)
		return m, nil
	case key.Matches(msg, Keys.Quran):
		m.switchTab(TabQuran)
		return m, nil
	case key.Matches(msg, Keys.Hadith):
		m.switchTab(TabHadith)
		return m, nil
	case key.Matches(msg, Keys.Prayer):
		m.switchTab(TabPrayer)
		return m, nil
	case key.Matches(msg, Keys.Options):
		m.switchTab(TabSettings)
		return m, nil

	case key.Matches(msg, Keys.Theme):
		return m, m.toggleTheme()

	case key.Matches(msg, Keys.Retry):
		return m, m.retry()
	}

	switch m.Tab {
	case TabQuran:
		return m.handleQuranKey(msg)
	case TabHadith:
		return m.handleHadithKey(msg)
	case TabPrayer:
		return m.handlePrayerKey(msg)
	case TabSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m Model) handleQuranKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.Play) {
		return m, m.playSurah()
	}

	if m.Reading {
		if key.Matches(msg, Keys.Back) {
			m.Reading = false
			m.updateFocus()
			return m, nil
		}
		var cmd tea.Cmd
		m.AyahReader, cmd = m.AyahReader.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Filter):
		m.SurahList.ToggleFilter()
		return m, nil

	case key.Matches(msg, Keys.Enter):
		item, ok := m.SurahList.SelectedItem().(components.SurahItem)
		if !ok {
			return m, nil
		}
		if m.Surah != nil && m.Surah.Number == item.Surah.Number && m.PendingSurah == nil {
			m.Reading = true
			m.updateFocus()
			return m, nil
		}
		return m, m.openSurah(item.Surah)
	}

	_, cmd := m.SurahList.Update(msg)
	return m, cmd
}

func (m Model) handleHadithKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.HadithPane {
	case paneCollections:
		switch {
		case key.Matches(msg, Keys.Filter):
			m.CollectionList.ToggleFilter()
			return m, nil
		case key.Matches(msg, Keys.Enter):
			item, ok := m.CollectionList.SelectedItem().(components.CollectionItem)
			if !ok {
				return m, nil
			}
			m.HadithPane = paneHadiths
			m.updateFocus()
			if m.HadithResult != nil && m.HadithResult.Collection.ID == item.Collection.ID && m.HadithErr == nil {
				return m, nil
			}
			return m, m.openCollection(item.Collection.ID)
		}
		_, cmd := m.CollectionList.Update(msg)
		return m, cmd

	case paneHadiths:
		switch {
		case key.Matches(msg, Keys.Filter):
			m.HadithList.ToggleFilter()
			return m, nil
		case key.Matches(msg, Keys.Enter):
			if m.HadithList.SelectedItem() == nil {
				return m, nil
			}
			m.HadithPane = paneHadithReader
			m.updateFocus()
			return m, nil
		case key.Matches(msg, Keys.Back) && !m.HadithList.IsFiltering():
			m.HadithPane = paneCollections
			m.updateFocus()
			return m, nil
		}
		before := m.HadithList.SelectedIndex()
		_, cmd := m.HadithList.Update(msg)
		if m.HadithList.SelectedIndex() != before || m.HadithList.IsFiltering() {
			m.showSelectedHadith()
		}
		return m, cmd

	default:
		if key.Matches(msg, Keys.Back) {
			m.HadithPane = paneHadiths
			m.updateFocus()
			return m, nil
		}
		var cmd tea.Cmd
		m.HadithReader, cmd = m.HadithReader.Update(msg)
		return m, cmd
	}
}

func (m Model) handlePrayerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Up):
		if m.PrayerCursor > 0 {
			m.PrayerCursor--
		}
	case key.Matches(msg, Keys.Down):
		if m.PrayerCursor < len(prayer.CanonicalPrayers)-1 {
			m.PrayerCursor++
		}
	case key.Matches(msg, Keys.Toggle):
		return m, ToggleNotificationCmd(m.svc.Prayer, prayer.CanonicalPrayers[m.PrayerCursor])
	case key.Matches(msg, Keys.Detect):
		m.LoadingPrayer = true
		m.LocationErr = nil
		m.PrayerErr = nil
		return m, ResolveLocationCmd(m.svc.Location, true)
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.Enter) {
		if item, ok := m.ReciterList.SelectedItem().(components.ReciterItem); ok {
			return m, SelectReciterCmd(m.svc.Quran, item.Reciter.ID)
		}
		return m, nil
	}
	_, cmd := m.ReciterList.Update(msg)
	return m, cmd
}

// playSurah plays the open surah, or the one under the cursor
func (m Model) playSurah() tea.Cmd {
	if m.svc.Playback == nil {
		return nil
	}
	if m.Reading && m.Surah != nil {
		return PlaySurahCmd(m.svc.Playback, *m.Surah)
	}
	if item, ok := m.SurahList.SelectedItem().(components.SurahItem); ok {
		return PlaySurahCmd(m.svc.Playback, item.Surah)
	}
	return nil
}

// focusedList returns the list receiving keys, if any
func (m Model) focusedList() *components.ListColumn {
	for _, l := range []*components.ListColumn{m.SurahList, m.CollectionList, m.HadithList, m.ReciterList} {
		if l.IsFocused() {
			return l
		}
	}
	return nil
}
