package capability

import (
	"maps"
	"testing"

	"github.com/atlanticdynamic/kgames/internal/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

type drawCall struct {
	op   string
	args []any
}

type fakeBackend struct {
	calls    []drawCall
	down     map[int]bool
	lastKey  *Key
	mouse    Point
	pressedM map[int]bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{down: map[int]bool{}, pressedM: map[int]bool{}}
}

func (f *fakeBackend) record(op string, args ...any) {
	f.calls = append(f.calls, drawCall{op: op, args: args})
}

func (f *fakeBackend) Clear(c RGBA)                                 { f.record("clear", c) }
func (f *fakeBackend) Text(s string, x, y, size float64, c RGBA)    { f.record("text", s, x, y, size, c) }
func (f *fakeBackend) Circle(x, y, r float64, c RGBA)               { f.record("circle", x, y, r, c) }
func (f *fakeBackend) Line(x1, y1, x2, y2, th float64, c RGBA)      { f.record("line", x1, y1, x2, y2, th, c) }
func (f *fakeBackend) Triangle(v1, v2, v3 Point, c RGBA)            { f.record("triangle", v1, v2, v3, c) }
func (f *fakeBackend) Rectangle(x, y, w, h float64, c RGBA)         { f.record("rectangle", x, y, w, h, c) }
func (f *fakeBackend) RectangleLines(x, y, w, h, th float64, c RGBA) { f.record("rectangle_lines", x, y, w, h, th, c) }
func (f *fakeBackend) MessageBox(title, msg string)                 { f.record("msgbox", title, msg) }

func (f *fakeBackend) Texture(t assets.Texture, x, y float64, tint RGBA, p TextureParams) {
	f.record("texture", t.Name, x, y, tint, p)
}

func (f *fakeBackend) FrameTime() float64    { return 0.016 }
func (f *fakeBackend) ScreenWidth() float64  { return 800 }
func (f *fakeBackend) ScreenHeight() float64 { return 600 }
func (f *fakeBackend) FPS() int              { return 60 }

func (f *fakeBackend) LastKeyPressed() (Key, bool) {
	if f.lastKey == nil {
		return Key{}, false
	}
	return *f.lastKey, true
}

func (f *fakeBackend) KeyDown(k Key) bool        { return f.down[k.Code] }
func (f *fakeBackend) KeyPressed(k Key) bool     { return f.down[k.Code] }
func (f *fakeBackend) KeyReleased(k Key) bool    { return false }
func (f *fakeBackend) MouseDown(b Mouse) bool    { return f.pressedM[b.Button] }
func (f *fakeBackend) MousePressed(b Mouse) bool { return f.pressedM[b.Button] }
func (f *fakeBackend) MouseReleased(Mouse) bool  { return false }
func (f *fakeBackend) MousePosition() Point      { return f.mouse }

// exec runs src against the surface with constants in scope and returns its globals.
func exec(t *testing.T, s *Surface, src string) (starlarkLib.StringDict, error) {
	t.Helper()
	predeclared := s.Predeclared()
	maps.Copy(predeclared, Constants())
	thread := &starlarkLib.Thread{Name: t.Name()}
	return starlarkLib.ExecFileOptions(&syntax.FileOptions{}, thread, "test.star", src, predeclared)
}

func TestSurface_Registration(t *testing.T) {
	s := New(newFakeBackend(), assets.New(t.TempDir()))

	want := []string{
		"circle", "clear", "color", "deltatime", "fps", "get_texture",
		"key_down", "key_pressed", "key_released", "last_keypress", "line",
		"load_texture", "mouse_down", "mouse_position", "mouse_pressed",
		"mouse_released", "msgbox", "overlaps", "rect", "rectangle",
		"rectangle_lines", "screen_height", "screen_width", "text", "texture",
		"texture_ex", "texture_pro", "triangle", "vec2", "vec3",
	}
	assert.Equal(t, want, s.Functions())

	for _, name := range []string{"json", "math", "time", "vec2"} {
		assert.True(t, s.Has(name), name)
	}
	assert.False(t, s.Has("open"))
	assert.False(t, s.Has("RED"))

	pre := s.Predeclared()
	assert.Contains(t, pre, "len")
	assert.Contains(t, pre, "json")

	// each call returns an independent dict
	pre["clear"] = starlarkLib.None
	assert.NotEqual(t, starlarkLib.None, s.Predeclared()["clear"])
}

func TestConstants(t *testing.T) {
	c := Constants()
	assert.Len(t, Colors, 25)
	assert.Len(t, Keys, 121)
	assert.Len(t, c, 25+121+4)

	assert.Contains(t, c, "KEY_A")
	assert.Contains(t, c, "KEY_KEY0")
	assert.Contains(t, c, "KEY_KP9")
	assert.Contains(t, c, "KEY_F25")
	assert.Contains(t, c, "MOUSE_MIDDLE")

	k, ok := KeyByName("F5")
	require.True(t, ok)
	assert.Equal(t, KeyF5, k)
	assert.Equal(t, 0xffd6, c["KEY_F25"].(Key).Code)

	t.Run("fresh values per call", func(t *testing.T) {
		a := Constants()["RED"].(*Color)
		b := Constants()["RED"].(*Color)
		assert.NotSame(t, a, b)
	})

	t.Run("colors are frozen", func(t *testing.T) {
		red := Constants()["RED"].(*Color)
		err := red.SetField("r", starlarkLib.Float(0))
		require.Error(t, err)
		assert.InDelta(t, 0.90, red.R, 1e-9)
	})

	t.Run("unknown key is falsy", func(t *testing.T) {
		assert.False(t, bool(KeyUnknown.Truth()))
		assert.True(t, bool(KeyEscape.Truth()))
	})
}

func TestSurface_Drawing(t *testing.T) {
	backend := newFakeBackend()
	s := New(backend, assets.New(t.TempDir()))

	_, err := exec(t, s, `
clear(BLACK)
text("hi", 1, 2, 20, WHITE)
circle(10, 20, 5.5, RED)
line(0, 0, 1, 1, 2, BLUE)
triangle(vec2(0, 0), vec2(1, 0), vec2(0, 1), GREEN)
rectangle(1, 2, 3, 4, color(0.5, 0.5, 0.5))
rectangle_lines(1, 2, 3, 4, 1, GRAY)
msgbox("title", "body")
`)
	require.NoError(t, err)

	ops := make([]string, 0, len(backend.calls))
	for _, c := range backend.calls {
		ops = append(ops, c.op)
	}
	assert.Equal(t, []string{"clear", "text", "circle", "line", "triangle", "rectangle", "rectangle_lines", "msgbox"}, ops)
	assert.Equal(t, RGBA{0, 0, 0, 1}, backend.calls[0].args[0])
	assert.Equal(t, []any{10.0, 20.0, 5.5, RGBA{0.90, 0.16, 0.22, 1}}, backend.calls[2].args)
	assert.Equal(t, Point{1, 0}, backend.calls[4].args[1])
	assert.Equal(t, RGBA{0.5, 0.5, 0.5, 1}, backend.calls[5].args[4])
}

func TestSurface_Textures(t *testing.T) {
	backend := newFakeBackend()
	s := New(backend, assets.New(t.TempDir()))

	globals, err := exec(t, s, `
t = load_texture("brick")
w = t.width
missing = get_texture("nope")
found = get_texture("yes")
texture(t, 1, 2, WHITE)
texture("warning", 3, 4, WHITE)
texture_ex(t, 0, 0, WHITE, vec2(10, 10), 1.5)
texture_pro(t, 0, 0, WHITE, None, rect(0, 0, 8, 8), 0, vec2(4, 4))
`)
	require.NoError(t, err)
	assert.Equal(t, starlarkLib.Float(64), globals["w"])
	assert.Equal(t, starlarkLib.None, globals["missing"])
	assert.Equal(t, "Texture", globals["found"].Type())

	require.Len(t, backend.calls, 4)
	assert.Equal(t, "brick", backend.calls[0].args[0])
	assert.Equal(t, "warning", backend.calls[1].args[0])

	ex := backend.calls[2].args[4].(TextureParams)
	require.NotNil(t, ex.DestSize)
	assert.Equal(t, Point{10, 10}, *ex.DestSize)
	assert.InDelta(t, 1.5, ex.Rotation, 1e-9)

	pro := backend.calls[3].args[4].(TextureParams)
	assert.Nil(t, pro.DestSize)
	require.NotNil(t, pro.Source)
	assert.Equal(t, Area{0, 0, 8, 8}, *pro.Source)
	require.NotNil(t, pro.Pivot)

	t.Run("missing texture fails the call", func(t *testing.T) {
		_, err := exec(t, s, `load_texture("nothing")`)
		require.Error(t, err)
		assert.ErrorIs(t, err, assets.ErrTextureNotFound)
	})
}

func TestSurface_Queries(t *testing.T) {
	backend := newFakeBackend()
	backend.down[KeySpace.Code] = true
	backend.pressedM[MouseLeft.Button] = true
	backend.mouse = Point{X: 3, Y: 4}
	s := New(backend, assets.New(t.TempDir()))

	globals, err := exec(t, s, `
dt = deltatime()
w = screen_width()
h = screen_height()
f = fps()
space = key_down(KEY_SPACE)
enter = key_pressed(KEY_ENTER)
released = key_released(KEY_SPACE)
left = mouse_down(MOUSE_LEFT)
right = mouse_pressed(MOUSE_RIGHT)
pos = mouse_position()
last = last_keypress()
`)
	require.NoError(t, err)
	assert.Equal(t, starlarkLib.Float(0.016), globals["dt"])
	assert.Equal(t, starlarkLib.Float(800), globals["w"])
	assert.Equal(t, starlarkLib.Float(600), globals["h"])
	assert.Equal(t, starlarkLib.MakeInt(60), globals["f"])
	assert.Equal(t, starlarkLib.True, globals["space"])
	assert.Equal(t, starlarkLib.False, globals["enter"])
	assert.Equal(t, starlarkLib.False, globals["released"])
	assert.Equal(t, starlarkLib.True, globals["left"])
	assert.Equal(t, starlarkLib.False, globals["right"])
	assert.Equal(t, starlarkLib.None, globals["last"])

	pos := globals["pos"].(*Vec2)
	assert.Equal(t, Point{3, 4}, pos.Point())

	backend.lastKey = &KeyEscape
	globals, err = exec(t, s, `last = last_keypress()
is_escape = last == KEY_ESCAPE`)
	require.NoError(t, err)
	assert.Equal(t, starlarkLib.True, globals["is_escape"])
}

func TestSurface_ValueTypes(t *testing.T) {
	s := New(newFakeBackend(), assets.New(t.TempDir()))

	globals, err := exec(t, s, `
v = vec2(1, 2)
v.x = 5
moved = v + vec2(1, 1)
scaled = v * 2
r = rect(0, 0, 10, 10)
hit = overlaps(r, rect(5, 5, 10, 10))
miss = r.overlaps(rect(20, 20, 1, 1))
inside = r.contains(vec2(1, 1))
c = r.center()
size = r.size()
same = vec3(1, 2, 3) == vec3(1, 2, 3)
length = vec2(3, 4).length()
`)
	require.NoError(t, err)
	assert.Equal(t, Point{5, 2}, globals["v"].(*Vec2).Point())
	assert.Equal(t, Point{6, 3}, globals["moved"].(*Vec2).Point())
	assert.Equal(t, Point{10, 4}, globals["scaled"].(*Vec2).Point())
	assert.Equal(t, starlarkLib.True, globals["hit"])
	assert.Equal(t, starlarkLib.False, globals["miss"])
	assert.Equal(t, starlarkLib.True, globals["inside"])
	assert.Equal(t, Point{5, 5}, globals["c"].(*Vec2).Point())
	assert.Equal(t, Point{10, 10}, globals["size"].(*Vec2).Point())
	assert.Equal(t, starlarkLib.True, globals["same"])
	assert.Equal(t, starlarkLib.Float(5), globals["length"])

	tests := []struct {
		name string
		src  string
	}{
		{name: "unknown field", src: `v = vec2(); v.z = 1`},
		{name: "non numeric field", src: `v = vec2(); v.x = "a"`},
		{name: "wrong color type", src: `clear(1)`},
		{name: "wrong arity", src: `circle(1, 2)`},
		{name: "mutate constant", src: `RED.r = 0`},
		{name: "bad texture argument", src: `texture(1, 0, 0, WHITE)`},
		{name: "bad source argument", src: `texture_pro("brick", 0, 0, WHITE, None, 1)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := exec(t, s, tt.src)
			assert.Error(t, err)
		})
	}
}
