package fancy

import (
	"github.com/charmbracelet/lipgloss"
)

// Terminal colors, with a darker variant picked on light backgrounds.
var (
	ColorBlue     = lipgloss.AdaptiveColor{Light: "25", Dark: "39"}
	ColorMagenta  = lipgloss.AdaptiveColor{Light: "127", Dark: "201"}
	ColorOrange   = lipgloss.AdaptiveColor{Light: "166", Dark: "208"}
	ColorGreen    = lipgloss.AdaptiveColor{Light: "28", Dark: "82"}
	ColorYellow   = lipgloss.AdaptiveColor{Light: "136", Dark: "228"}
	ColorCyan     = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
	ColorRed      = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	ColorGray     = lipgloss.AdaptiveColor{Light: "242", Dark: "250"}
	ColorWhite    = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	ColorDarkGray = lipgloss.AdaptiveColor{Light: "248", Dark: "240"}
)
