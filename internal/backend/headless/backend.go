// Package headless is a window backend without a window. It records every
// draw call of the current frame and replays scripted keyboard and mouse
// input, which makes it suitable for the CLI and for tests.
package headless

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/atlanticdynamic/kgames/internal/assets"
	"github.com/atlanticdynamic/kgames/internal/capability"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultFPS    = 60
)

var _ capability.Backend = (*Backend)(nil)

// Command is one recorded draw call.
type Command struct {
	Op   string
	Args []any
}

func (c Command) String() string {
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

type click struct {
	button capability.Mouse
	at     capability.Point
}

// Backend implements capability.Backend. It is driven by BeginFrame and
// EndFrame and is not safe for concurrent use.
type Backend struct {
	width  float64
	height float64
	fps    int
	logger *slog.Logger

	frame    int
	current  []Command
	last     []Command
	drawn    int
	messages []string

	presses map[int][]capability.Key
	clicks  map[int][]click
	mouse   capability.Point
	lastKey *capability.Key
}

// Option configures a Backend.
type Option func(*Backend)

// WithSize sets the reported screen size.
func WithSize(width, height int) Option {
	return func(b *Backend) {
		if width > 0 && height > 0 {
			b.width, b.height = float64(width), float64(height)
		}
	}
}

// WithFPS sets the reported frame rate and, from it, the frame time.
func WithFPS(fps int) Option {
	return func(b *Backend) {
		if fps > 0 {
			b.fps = fps
		}
	}
}

// WithLogger sets the logger message boxes are written to.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		b.logger = logger
	}
}

// New creates a backend positioned before its first frame.
func New(opts ...Option) *Backend {
	b := &Backend{
		width:   DefaultWidth,
		height:  DefaultHeight,
		fps:     DefaultFPS,
		logger:  slog.Default().WithGroup("headless.Backend"),
		frame:   -1,
		presses: make(map[int][]capability.Key),
		clicks:  make(map[int][]click),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Press schedules keys to be pressed during frame. Frames count from zero.
func (b *Backend) Press(frame int, keys ...capability.Key) {
	b.presses[frame] = append(b.presses[frame], keys...)
}

// Click schedules a mouse button press at position during frame.
func (b *Backend) Click(frame int, button capability.Mouse, at capability.Point) {
	b.clicks[frame] = append(b.clicks[frame], click{button: button, at: at})
}

// BeginFrame advances to the next frame and starts a new command list.
func (b *Backend) BeginFrame() {
	b.frame++
	b.current = b.current[:0]
	if keys := b.presses[b.frame]; len(keys) > 0 {
		k := keys[len(keys)-1]
		b.lastKey = &k
	} else {
		b.lastKey = nil
	}
	if cs := b.clicks[b.frame]; len(cs) > 0 {
		b.mouse = cs[len(cs)-1].at
	}
}

// EndFrame publishes the commands recorded since BeginFrame.
func (b *Backend) EndFrame() {
	b.last = slices.Clone(b.current)
	b.drawn += len(b.current)
}

// Frame returns the index of the current frame, or -1 before the first.
func (b *Backend) Frame() int {
	return b.frame
}

// Commands returns the draw calls of the most recently completed frame.
func (b *Backend) Commands() []Command {
	return slices.Clone(b.last)
}

// Drawn returns the number of draw calls over all completed frames.
func (b *Backend) Drawn() int {
	return b.drawn
}

// Messages returns every message box shown so far, formatted "title: message".
func (b *Backend) Messages() []string {
	return slices.Clone(b.messages)
}

func (b *Backend) record(op string, args ...any) {
	b.current = append(b.current, Command{Op: op, Args: args})
}

func (b *Backend) Clear(c capability.RGBA) {
	b.record("clear", c)
}

func (b *Backend) Text(text string, x, y, size float64, c capability.RGBA) {
	b.record("text", text, x, y, size, c)
}

func (b *Backend) Circle(x, y, radius float64, c capability.RGBA) {
	b.record("circle", x, y, radius, c)
}

func (b *Backend) Line(x1, y1, x2, y2, thickness float64, c capability.RGBA) {
	b.record("line", x1, y1, x2, y2, thickness, c)
}

func (b *Backend) Triangle(v1, v2, v3 capability.Point, c capability.RGBA) {
	b.record("triangle", v1, v2, v3, c)
}

func (b *Backend) Rectangle(x, y, w, h float64, c capability.RGBA) {
	b.record("rectangle", x, y, w, h, c)
}

func (b *Backend) RectangleLines(x, y, w, h, thickness float64, c capability.RGBA) {
	b.record("rectangle_lines", x, y, w, h, thickness, c)
}

func (b *Backend) Texture(t assets.Texture, x, y float64, tint capability.RGBA, params capability.TextureParams) {
	b.record("texture", t.Name, x, y, tint, params)
}

// MessageBox records the message and logs it; there is no dialog to block on.
func (b *Backend) MessageBox(title, message string) {
	b.messages = append(b.messages, title+": "+message)
	b.record("msgbox", title, message)
	b.logger.Info("Message box", "title", title, "message", message)
}

func (b *Backend) FrameTime() float64 {
	return 1 / float64(b.fps)
}

func (b *Backend) ScreenWidth() float64 {
	return b.width
}

func (b *Backend) ScreenHeight() float64 {
	return b.height
}

func (b *Backend) FPS() int {
	return b.fps
}

func (b *Backend) LastKeyPressed() (capability.Key, bool) {
	if b.lastKey == nil {
		return capability.Key{}, false
	}
	return *b.lastKey, true
}

// KeyDown reports keys pressed this frame. Scripted keys are held for
// exactly one frame.
func (b *Backend) KeyDown(k capability.Key) bool {
	return b.KeyPressed(k)
}

func (b *Backend) KeyPressed(k capability.Key) bool {
	return slices.Contains(b.presses[b.frame], k)
}

// KeyReleased reports keys that were pressed in the previous frame.
func (b *Backend) KeyReleased(k capability.Key) bool {
	return slices.Contains(b.presses[b.frame-1], k)
}

func (b *Backend) MouseDown(m capability.Mouse) bool {
	return b.MousePressed(m)
}

func (b *Backend) MousePressed(m capability.Mouse) bool {
	return slices.ContainsFunc(b.clicks[b.frame], func(c click) bool { return c.button == m })
}

func (b *Backend) MouseReleased(m capability.Mouse) bool {
	return slices.ContainsFunc(b.clicks[b.frame-1], func(c click) bool { return c.button == m })
}

func (b *Backend) MousePosition() capability.Point {
	return b.mouse
}
