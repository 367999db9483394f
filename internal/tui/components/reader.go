package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/noor/internal/tui/styles"
)

// Reader is a bordered, scrollable text pane for ayahs and hadith
type Reader struct {
	viewport viewport.Model
	title    string
	width    int
	height   int
	focused  bool
}

// NewReader creates an empty reader
func NewReader() Reader {
	return Reader{viewport: viewport.New(0, 0)}
}

// SetSize sets the outer dimensions including the border
func (r *Reader) SetSize(width, height int) {
	r.width = width
	r.height = height
	// border plus title line
	r.viewport.Width = max(width-BorderWidth, 0)
	r.viewport.Height = max(height-BorderHeight-1, 0)
}

// SetContent replaces the text and scrolls to the top
func (r *Reader) SetContent(title, content string) {
	r.title = title
	r.viewport.SetContent(content)
	r.viewport.GotoTop()
}

// ContentWidth is the usable width for wrapping text
func (r *Reader) ContentWidth() int {
	return r.viewport.Width
}

func (r *Reader) SetFocused(focused bool) { r.focused = focused }
func (r *Reader) Title() string           { return r.title }

// Update scrolls the viewport
func (r Reader) Update(msg tea.Msg) (Reader, tea.Cmd) {
	if !r.focused {
		return r, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, ReaderKeys.Top):
			r.viewport.GotoTop()
			return r, nil
		case key.Matches(msg, ReaderKeys.Bottom):
			r.viewport.GotoBottom()
			return r, nil
		}
	}
	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return r, cmd
}

// View renders the reader with a scroll position indicator in the title
func (r Reader) View() string {
	style := styles.InactiveBorder
	if r.focused {
		style = styles.ActiveBorder
	}

	contentWidth := max(r.width-BorderWidth, 1)
	pct := styles.DimStyle.Render(fmt.Sprintf(" %3.0f%%", r.viewport.ScrollPercent()*100))
	title := styles.AccentStyle.Render(styles.Truncate(r.title, max(contentWidth-5, 1))) + pct

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(r.width-frameW, 0)).
		Height(max(r.height-frameH, 0)).
		Render(title + "\n" + r.viewport.View())
}
