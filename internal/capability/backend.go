package capability

import "github.com/atlanticdynamic/kgames/internal/assets"

// RGBA is a plain color passed to the backend.
type RGBA struct {
	R, G, B, A float64
}

// Point is a plain 2D point passed to the backend.
type Point struct {
	X, Y float64
}

// Area is a plain rectangle passed to the backend.
type Area struct {
	X, Y, W, H float64
}

// TextureParams carries the optional arguments of the extended texture draws.
type TextureParams struct {
	DestSize *Point
	Source   *Area
	Rotation float64
	Pivot    *Point
}

// Canvas receives the drawing primitives exposed to scripts.
type Canvas interface {
	Clear(c RGBA)
	Text(text string, x, y, size float64, c RGBA)
	Circle(x, y, radius float64, c RGBA)
	Line(x1, y1, x2, y2, thickness float64, c RGBA)
	Triangle(v1, v2, v3 Point, c RGBA)
	Rectangle(x, y, w, h float64, c RGBA)
	RectangleLines(x, y, w, h, thickness float64, c RGBA)
	Texture(t assets.Texture, x, y float64, tint RGBA, params TextureParams)
	MessageBox(title, message string)
}

// Input answers the state queries exposed to scripts.
type Input interface {
	FrameTime() float64
	ScreenWidth() float64
	ScreenHeight() float64
	FPS() int
	LastKeyPressed() (Key, bool)
	KeyDown(k Key) bool
	KeyPressed(k Key) bool
	KeyReleased(k Key) bool
	MouseDown(b Mouse) bool
	MousePressed(b Mouse) bool
	MouseReleased(b Mouse) bool
	MousePosition() Point
}

// Backend is the window/rendering collaborator behind the surface.
type Backend interface {
	Canvas
	Input
}

// TextureStore is the asset cache behind the resource functions.
type TextureStore interface {
	Load(name string) (assets.Texture, error)
	Get(name string) (assets.Texture, bool)
}
