// Package theme holds the fixed, ordered list of UI color themes.
package theme

import (
	"fmt"
	"strings"

	"github.com/atlanticdynamic/kgames/internal/capability"
	"github.com/charmbracelet/lipgloss"
)

// Theme is one entry of the theme list.
type Theme int

const (
	Default Theme = iota
	Gruvbox
	Matrix
	Midnight
	Bolus
)

// All lists every theme in cycling order.
var All = []Theme{Default, Gruvbox, Matrix, Midnight, Bolus}

var names = map[Theme]string{
	Default:  "Default",
	Gruvbox:  "Gruvbox",
	Matrix:   "Matrix",
	Midnight: "Midnight",
	Bolus:    "BOLUS",
}

// Style is the set of colors a theme draws with.
type Style struct {
	Background capability.RGBA
	Foreground capability.RGBA
	Accent     capability.RGBA
}

var styles = map[Theme]Style{
	Default: {
		Background: rgb(0, 0, 0),
		Foreground: rgb(1, 1, 1),
		Accent:     rgb(0, 0.894, 0.188),
	},
	Gruvbox: {
		Background: rgb(0.156, 0.156, 0.156),
		Foreground: rgb(0.921, 0.858, 0.698),
		Accent:     rgb(0.800, 0.141, 0.113),
	},
	Matrix: {
		Background: rgb(0.074, 0.090, 0.129),
		Foreground: rgb(0.196, 0.776, 0.011),
		Accent:     rgb(0.000, 0.474, 0.945),
	},
	Midnight: {
		Background: rgb(0, 0, 0),
		Foreground: rgb(0.784, 0.784, 0.784),
		Accent:     rgb(0, 0.474, 0.945),
	},
	Bolus: {
		Background: rgb(0, 0, 0),
		Foreground: rgb(1, 1, 1),
		Accent:     rgb(0, 0.894, 0.188),
	},
}

func rgb(r, g, b float64) capability.RGBA {
	return capability.RGBA{R: r, G: g, B: b, A: 1}
}

// String returns the display name of the theme.
func (t Theme) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("Theme(%d)", int(t))
}

// Valid reports whether t is one of the listed themes.
func (t Theme) Valid() bool {
	_, ok := names[t]
	return ok
}

// Next returns the following theme, wrapping from the last to the first.
func (t Theme) Next() Theme {
	return All[(t.index()+1)%len(All)]
}

// Previous returns the preceding theme, wrapping from the first to the last.
func (t Theme) Previous() Theme {
	return All[(t.index()+len(All)-1)%len(All)]
}

func (t Theme) index() int {
	for i, v := range All {
		if v == t {
			return i
		}
	}
	return 0
}

// Style returns the colors of the theme. Unknown themes use Default.
func (t Theme) Style() Style {
	if s, ok := styles[t]; ok {
		return s
	}
	return styles[Default]
}

// Parse looks a theme up by name, ignoring case.
func Parse(name string) (Theme, error) {
	for _, t := range All {
		if strings.EqualFold(names[t], name) {
			return t, nil
		}
	}
	return Default, fmt.Errorf("unknown theme: %q", name)
}

// Names returns the display names in cycling order.
func Names() []string {
	out := make([]string, len(All))
	for i, t := range All {
		out[i] = names[t]
	}
	return out
}

// Hex formats c as #rrggbb.
func Hex(c capability.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Lipgloss converts c for terminal rendering.
func Lipgloss(c capability.RGBA) lipgloss.Color {
	return lipgloss.Color(Hex(c))
}
