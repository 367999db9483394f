package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/noor/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// SpinnerFrames is the loading animation shared by components
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Layout constants for list columns
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// ListColumn is a bordered, scrollable, filterable list of ListItems
type ListColumn struct {
	items []ListItem

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	// Marks one item (by ID) with a check, e.g. the selected reciter
	markedID string

	loading      bool
	spinnerFrame int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into items
}

// NewListColumn creates an empty column with the given title
func NewListColumn(title string) *ListColumn {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ListColumn{
		title:       title,
		filterInput: ti,
	}
}

// Update handles navigation and filter keys when the column is focused
func (c *ListColumn) Update(msg tea.Msg) (*ListColumn, tea.Cmd) {
	if !c.focused {
		return c, nil
	}

	// Typing into the filter
	if c.filterActive && c.filterInput.Focused() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, ListColumnKeys.Escape):
				c.clearFilter()
				return c, nil
			case key.Matches(msg, ListColumnKeys.Enter):
				// Keep results, return to navigation
				c.filterInput.Blur()
				return c, nil
			case msg.String() == "backspace" && c.filterInput.Value() == "":
				c.clearFilter()
				return c, nil
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return c, cmd
	}

	// Filter applied but blurred
	if c.filterActive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, ListColumnKeys.Escape):
				c.clearFilter()
				return c, nil
			case key.Matches(msg, ListColumnKeys.Filter):
				c.filterInput.Focus()
				return c, nil
			}
		}
	}

	count := c.ItemCount()
	if count == 0 {
		return c, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, ListColumnKeys.Down):
			if c.cursor < count-1 {
				c.cursor++
				c.ensureVisible()
			}
		case key.Matches(msg, ListColumnKeys.Up):
			if c.cursor > 0 {
				c.cursor--
				c.ensureVisible()
			}
		case key.Matches(msg, ListColumnKeys.Home):
			c.cursor = 0
			c.offset = 0
		case key.Matches(msg, ListColumnKeys.End):
			c.cursor = count - 1
			c.ensureVisible()
		case key.Matches(msg, ListColumnKeys.HalfDown):
			c.cursor = min(c.cursor+max(c.maxVisible/2, 1), count-1)
			c.ensureVisible()
		case key.Matches(msg, ListColumnKeys.HalfUp):
			c.cursor = max(c.cursor-max(c.maxVisible/2, 1), 0)
			c.ensureVisible()
		}
	}

	return c, nil
}

// View renders the column at its configured size
func (c *ListColumn) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(c.width-frameW, 0)).
		Height(max(c.height-frameH, 0)).
		Render(c.renderContent())
}

// SetSize sets the outer dimensions including the border
func (c *ListColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *ListColumn) Width() int              { return c.width }
func (c *ListColumn) Height() int             { return c.height }
func (c *ListColumn) SetFocused(focused bool) { c.focused = focused }
func (c *ListColumn) IsFocused() bool         { return c.focused }
func (c *ListColumn) Title() string           { return c.title }
func (c *ListColumn) SetTitle(title string)   { c.title = title }

// Restyle picks up the current theme for the filter input
func (c *ListColumn) Restyle() {
	c.filterInput.PromptStyle = styles.FilterPromptStyle
	c.filterInput.TextStyle = styles.FilterStyle
}

// SetMarked marks the item with the given ID
func (c *ListColumn) SetMarked(id string) { c.markedID = id }

// SetLoading shows the spinner in place of the items
func (c *ListColumn) SetLoading(loading bool) { c.loading = loading }
func (c *ListColumn) IsLoading() bool         { return c.loading }

// SetSpinnerFrame advances the loading animation
func (c *ListColumn) SetSpinnerFrame(frame int) { c.spinnerFrame = frame }

// SetItems replaces the items and resets selection and filter
func (c *ListColumn) SetItems(items []ListItem) {
	c.items = items
	c.loading = false
	c.cursor = 0
	c.offset = 0
	c.clearFilter()
}

// Items returns the unfiltered items
func (c *ListColumn) Items() []ListItem {
	return c.items
}

// SelectedItem returns the item under the cursor, or nil
func (c *ListColumn) SelectedItem() ListItem {
	count := c.ItemCount()
	if count == 0 || c.cursor >= count {
		return nil
	}
	return c.items[c.mapIndex(c.cursor)]
}

func (c *ListColumn) SelectedIndex() int {
	return c.cursor
}

// SelectID moves the cursor to the item with the given ID, clearing any filter
func (c *ListColumn) SelectID(id string) bool {
	for i, item := range c.items {
		if item.ItemID() == id {
			c.clearFilter()
			c.cursor = i
			c.ensureVisible()
			return true
		}
	}
	return false
}

// ItemCount returns the number of visible (filtered) items
func (c *ListColumn) ItemCount() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return len(c.items)
}

// ToggleFilter activates the filter input
func (c *ListColumn) ToggleFilter() {
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (c *ListColumn) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active and input is focused
func (c *ListColumn) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (c *ListColumn) ClearFilter() {
	c.clearFilter()
}

// SetFilter applies query directly, as if typed
func (c *ListColumn) SetFilter(query string) {
	c.filterActive = true
	c.filterInput.SetValue(query)
	c.applyFilter()
	c.recalcMaxVisible()
}

// Internal methods

func (c *ListColumn) recalcMaxVisible() {
	// Interior minus title and scroll indicators
	c.maxVisible = c.height - BorderHeight - ScrollIndicatorLines - 1
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *ListColumn) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *ListColumn) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filteredIdx = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
}

func (c *ListColumn) applyFilter() {
	query := c.filterInput.Value()
	c.filterQuery = query

	if query == "" {
		c.filteredIdx = nil
		return
	}

	values := make([]string, len(c.items))
	for i, item := range c.items {
		values[i] = strings.ToLower(item.FilterValue())
	}

	matches := fuzzy.Find(strings.ToLower(query), values)

	c.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		c.filteredIdx[i] = match.Index
	}

	c.cursor = 0
	c.offset = 0
}

func (c *ListColumn) mapIndex(i int) int {
	if c.filteredIdx != nil && i < len(c.filteredIdx) {
		return c.filteredIdx[i]
	}
	return i
}

// Rendering

func (c *ListColumn) renderContent() string {
	itemWidth := max(c.width-BorderWidth, 10)

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	if c.loading {
		spinner := SpinnerFrames[c.spinnerFrame%len(SpinnerFrames)]
		return titleLine + "\n \n" + styles.DimStyle.Render(spinner+" Loading...") + "\n "
	}

	count := c.ItemCount()
	if count == 0 {
		emptyMsg := "No items"
		if c.filterActive && c.filterQuery != "" {
			emptyMsg = "No matches"
		}
		content := titleLine + "\n \n" + styles.DimStyle.Render(emptyMsg) + "\n "
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	end := min(c.offset+c.maxVisible, count)

	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderItem(c.items[c.mapIndex(i)], i == c.cursor, itemWidth))
	}

	// Header and footer lines are always reserved to keep the layout stable
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}
	return content
}

func (c *ListColumn) renderItem(item ListItem, selected bool, width int) string {
	prefix := "  "
	var prefixFg *lipgloss.Color
	if c.markedID != "" && item.ItemID() == c.markedID {
		prefix = "✓ "
		green := styles.Current.Green
		prefixFg = &green
	}

	// prefix + margins
	avail := width - 2 - 2
	title := item.ItemTitle()
	subtitle := item.ItemSubtitle()

	parts := []styles.RowPart{{Text: prefix, Foreground: prefixFg}}

	titleWidth := lipgloss.Width(title)
	if subtitle != "" && titleWidth+3 < avail {
		parts = append(parts, styles.RowPart{Text: title})
		dim := styles.Current.Dim
		parts = append(parts, styles.RowPart{
			Text:       "  " + styles.Truncate(subtitle, avail-titleWidth-2),
			Foreground: &dim,
		})
	} else {
		parts = append(parts, styles.RowPart{Text: styles.Truncate(title, avail)})
	}

	return styles.RenderListRow(parts, selected, width)
}

func (c *ListColumn) renderFilterBar() string {
	input := c.filterInput.View()
	if c.filterQuery == "" {
		return input
	}
	return input + styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), len(c.items)))
}
