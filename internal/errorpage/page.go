// Package errorpage presents the failures of a load pass and lets the user
// retry it.
package errorpage

import (
	"fmt"
	"strings"

	"github.com/atlanticdynamic/kgames/internal/capability"
	"github.com/atlanticdynamic/kgames/internal/engine"
	"github.com/atlanticdynamic/kgames/internal/fancy"
	"github.com/atlanticdynamic/kgames/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	hintEscape = "Press Escape to return"
	hintReload = "Press F5 to reload scripts"
)

// Background is the fill color of the on-screen page.
var Background = capability.RGBA{R: 0.7, A: 1}

// Reloader repeats the most recent load pass.
type Reloader interface {
	Reload(ledger *engine.Ledger) error
}

// Page is the error view: a context message plus the ledger of the pass
// that failed.
type Page struct {
	Context string
	Ledger  *engine.Ledger
	Theme   theme.Theme
}

// New creates a page for ledger. A nil ledger is replaced by an empty one.
func New(context string, ledger *engine.Ledger, th theme.Theme) *Page {
	if ledger == nil {
		ledger = &engine.Ledger{}
	}
	return &Page{Context: context, Ledger: ledger, Theme: th}
}

// Summary returns the error count line.
func (p *Page) Summary() string {
	return fmt.Sprintf("Encountered %d errors", p.Ledger.Len())
}

// HandleKey reacts to one key press and reports whether the page stays open.
// Escape closes it. F5 clears the ledger and repeats the load; the page
// closes when the retry succeeds and otherwise shows the new failures.
func (p *Page) HandleKey(key capability.Key, r Reloader) bool {
	switch key {
	case capability.KeyEscape:
		return false
	case capability.KeyF5:
		p.Ledger.Clear()
		if err := r.Reload(p.Ledger); err != nil {
			p.Context = err.Error()
			return true
		}
		p.Context = ""
		return false
	default:
		return true
	}
}

// Render returns the page as styled terminal text wrapped to width columns.
func (p *Page) Render(width int) string {
	if width < 20 {
		width = 20
	}
	style := p.Theme.Style()
	fg := theme.Lipgloss(style.Foreground)
	accent := theme.Lipgloss(style.Accent)

	title := lipgloss.NewStyle().Bold(true).Foreground(fancy.ColorRed).Width(width).Align(lipgloss.Center)
	heading := lipgloss.NewStyle().Bold(true).Foreground(accent)
	body := lipgloss.NewStyle().Foreground(fg).Width(width)
	hint := lipgloss.NewStyle().Italic(true).Foreground(fancy.ColorGray)

	var b strings.Builder
	b.WriteString(title.Render("ERROR"))
	b.WriteString("\n")
	if p.Context != "" {
		b.WriteString(body.Render(p.Context))
		b.WriteString("\n")
	}
	b.WriteString(body.Render(p.Summary()))
	b.WriteString("\n")

	for i, f := range p.Ledger.Entries() {
		b.WriteString("\n")
		b.WriteString(heading.Render(fmt.Sprintf("Error #%d", i+1)))
		b.WriteString("\n")
		b.WriteString(fancy.SourceText("Source: " + f.Path))
		b.WriteString("\n")
		b.WriteString(body.Render(f.Err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hint.Render(hintEscape))
	b.WriteString("\n")
	b.WriteString(hint.Render(hintReload))
	return b.String()
}

// Tree returns the failures as a tree, one branch per failing path.
func (p *Page) Tree() string {
	root := fancy.NewComponentTree(fancy.ErrorText(p.Summary()))
	for _, f := range p.Ledger.Entries() {
		branch := fancy.FailureTree(f.Path)
		for _, line := range strings.Split(f.Err.Error(), "\n") {
			if strings.TrimSpace(line) != "" {
				branch.AddChild(line)
			}
		}
		root.AddChild(branch.Tree())
	}
	return root.String()
}

// Draw paints the page onto canvas.
func (p *Page) Draw(c capability.Canvas, width, height float64) {
	fg := p.Theme.Style().Foreground
	muted := capability.RGBA{R: 0.78, G: 0.78, B: 0.78, A: 1}
	c.Clear(Background)

	titleSize := min(max(width/5, 10), 200)
	centered(c, "ERROR", width, titleSize, titleSize, fg)

	y := titleSize + 30
	if p.Context != "" {
		centered(c, p.Context, width, y, 20, fg)
		y += 20
	}
	centered(c, p.Summary(), width, y, 20, fg)

	for i, f := range p.Ledger.Entries() {
		y += 60
		centered(c, fmt.Sprintf("Error #%d", i+1), width, y, 60, fg)
		y += 30
		centered(c, "Source: "+f.Path, width, y, 30, muted)
		y += 25
		y = wrapped(c, f.Err.Error(), 10, y, width-20, 30, fg)
		if y > height {
			break
		}
	}

	y += 100
	centered(c, hintEscape, width, y, 50, fg)
	centered(c, hintReload, width, y+50, 50, fg)
}

// charWidth approximates the advance of one glyph at size.
func charWidth(size float64) float64 {
	return size / 2
}

func centered(c capability.Canvas, text string, width, y, size float64, color capability.RGBA) {
	w := float64(len(text)) * charWidth(size)
	c.Text(text, width/2-w/2, y, size, color)
}

// wrapped draws text word-wrapped to width and returns the y below it.
func wrapped(c capability.Canvas, text string, x, y, width, size float64, color capability.RGBA) float64 {
	cols := max(int(width/charWidth(size)), 1)
	for _, line := range strings.Split(ansi.Wordwrap(text, cols, ""), "\n") {
		c.Text(line, x, y, size, color)
		y += size
	}
	return y
}
