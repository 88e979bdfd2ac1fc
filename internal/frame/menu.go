package frame

import (
	"fmt"
	"strings"

	"github.com/atlanticdynamic/kgames/internal/capability"
	"github.com/atlanticdynamic/kgames/internal/catalog"
)

const (
	menuTitle    = "KGames"
	menuRowSize  = 30.0
	menuListTop  = 160.0
	menuRowInset = 40.0
)

// menu is the script selection screen: a fuzzy query and a cursor. A row
// pressed with the mouse is selected when the button is released over it.
type menu struct {
	query    string
	cursor   int
	pressed  int
	pressing bool
}

// step handles menu input and draws the menu for one frame.
func (m *menu) step(r *Runner) {
	w := r.window
	matches := catalog.Filter(catalog.FromScripts(r.host.Scripts()), m.query)

	switch {
	case w.KeyPressed(capability.KeyUp):
		m.cursor--
	case w.KeyPressed(capability.KeyDown):
		m.cursor++
	case w.KeyPressed(capability.KeyEscape):
		m.query, m.cursor = "", 0
	case m.backspace(w):
		m.query = m.query[:len(m.query)-1]
		m.cursor = 0
	case w.KeyPressed(capability.KeyEnter):
		if m.cursor < len(matches) {
			r.selectScript(matches[m.cursor].Path)
			return
		}
	default:
		if key, ok := w.LastKeyPressed(); ok {
			if ch, ok := queryRune(key); ok {
				m.query += string(ch)
				m.cursor = 0
				matches = catalog.Filter(catalog.FromScripts(r.host.Scripts()), m.query)
			}
		}
	}
	m.cursor = min(max(m.cursor, 0), max(len(matches)-1, 0))

	row, onRow := rowAt(w.MousePosition(), len(matches))
	switch {
	case w.MouseDown(capability.MouseLeft):
		m.pressed, m.pressing = row, onRow
	case w.MouseReleased(capability.MouseLeft):
		hit := m.pressing && onRow && row == m.pressed
		m.pressing = false
		if hit {
			r.selectScript(matches[row].Path)
			return
		}
	}

	m.draw(r, matches)
}

func (m *menu) backspace(w Window) bool {
	k, ok := capability.KeyByName("BACKSPACE")
	return ok && len(m.query) > 0 && w.KeyPressed(k)
}

func (m *menu) draw(r *Runner, matches []catalog.Match) {
	w := r.window
	style := r.app.Theme.Style()
	ui := r.app.Config.UI
	width := w.ScreenWidth()

	w.Clear(style.Background)
	titleSize := min(max(width/10, 40), 105)
	w.Text(menuTitle, width/2-float64(len(menuTitle))*titleSize/4, titleSize, titleSize, style.Foreground)

	m.box(w, menuListTop-2*menuRowSize+4, ui.Background.RGBA(), ui.Border.RGBA())
	w.Text("Search: "+m.query, menuRowInset, menuListTop-menuRowSize, 20, ui.Foreground.RGBA())

	if len(matches) == 0 {
		w.Text("No scripts", menuRowInset, menuListTop, menuRowSize, ui.Foreground.RGBA())
		return
	}
	hover, onRow := rowAt(w.MousePosition(), len(matches))
	for i, match := range matches {
		y := menuListTop + float64(i)*menuRowSize
		fill := ui.Background
		switch {
		case m.pressing && i == m.pressed:
			fill = ui.BackgroundClick
		case i == m.cursor, onRow && i == hover:
			fill = ui.BackgroundHover
		}
		if i == m.cursor {
			m.box(w, y-menuRowSize+4, fill.RGBA(), ui.Border.RGBA())
		} else {
			w.Rectangle(menuRowInset/2, y-menuRowSize+4, w.ScreenWidth()-menuRowInset, menuRowSize, fill.RGBA())
		}
		label := match.Name
		if match.IsExample {
			label = fmt.Sprintf("%s (example)", label)
		}
		w.Text(label, menuRowInset, y, menuRowSize, ui.Foreground.RGBA())
	}
}

// box fills one full-width row at y and outlines it.
func (m *menu) box(w Window, y float64, fill, border capability.RGBA) {
	width := w.ScreenWidth() - menuRowInset
	w.Rectangle(menuRowInset/2, y, width, menuRowSize, fill)
	w.RectangleLines(menuRowInset/2, y, width, menuRowSize, 1, border)
}

// rowAt maps a pointer position to a row of the list.
func rowAt(p capability.Point, rows int) (int, bool) {
	if p.Y < menuListTop-menuRowSize || p.X < 0 {
		return 0, false
	}
	row := int((p.Y - (menuListTop - menuRowSize)) / menuRowSize)
	if row >= rows {
		return 0, false
	}
	return row, true
}

// queryRune maps a printable key to the character it types.
func queryRune(k capability.Key) (rune, bool) {
	if k.Code < 0x20 || k.Code > 0x7e {
		return 0, false
	}
	ch := []rune(strings.ToLower(string(rune(k.Code))))[0]
	return ch, catalog.IsQueryRune(ch)
}
