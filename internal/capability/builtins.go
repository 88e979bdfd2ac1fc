package capability

import (
	"fmt"

	starlarkLib "go.starlark.net/starlark"
)

type builtinFunc func(thread *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error)

// number accepts an int or a float argument.
type number float64

func (n *number) Unpack(v starlarkLib.Value) error {
	f, ok := starlarkLib.AsFloat(v)
	if !ok {
		return fmt.Errorf("got %s, want number", v.Type())
	}
	*n = number(f)
	return nil
}

func (s *Surface) register() starlarkLib.StringDict {
	fns := map[string]builtinFunc{
		// drawing
		"clear":           s.clear,
		"text":            s.text,
		"circle":          s.circle,
		"line":            s.line,
		"triangle":        s.triangle,
		"rectangle":       s.rectangle,
		"rectangle_lines": s.rectangleLines,
		"texture":         s.texture,
		"texture_ex":      s.textureEx,
		"texture_pro":     s.texturePro,
		"msgbox":          s.msgbox,

		// geometry
		"overlaps": overlaps,

		// queries
		"deltatime":      s.deltatime,
		"screen_width":   s.screenWidth,
		"screen_height":  s.screenHeight,
		"fps":            s.fps,
		"last_keypress":  s.lastKeypress,
		"key_down":       s.keyQuery(s.backend.KeyDown),
		"key_pressed":    s.keyQuery(s.backend.KeyPressed),
		"key_released":   s.keyQuery(s.backend.KeyReleased),
		"mouse_down":     s.mouseQuery(s.backend.MouseDown),
		"mouse_pressed":  s.mouseQuery(s.backend.MousePressed),
		"mouse_released": s.mouseQuery(s.backend.MouseReleased),
		"mouse_position": s.mousePosition,

		// resources
		"load_texture": s.loadTexture,
		"get_texture":  s.getTexture,

		// constructors
		"vec2":  newVec2,
		"vec3":  newVec3,
		"rect":  newRect,
		"color": newColor,
	}

	dict := make(starlarkLib.StringDict, len(fns))
	for name, fn := range fns {
		dict[name] = starlarkLib.NewBuiltin(name, fn)
	}
	return dict
}

func (s *Surface) clear(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var c *Color
	if err := starlarkLib.UnpackArgs(b.Name(), args, kwargs, "color", &c); err != nil {
		return nil, err
	}
	s.backend.Clear(c.RGBA())
	return starlarkLib.None, nil
}

func (s *Surface) text(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var (
		str     string
		x, y, n number
		c       *Color
	)
	if err := starlarkLib.UnpackArgs(b.Name(), args, kwargs, "text", &str, "x", &x, "y", &y, "size", &n, "color", &c); err != nil {
		return nil, err
	}
	s.backend.Text(str, float64(x), float64(y), float64(n), c.RGBA())
	return starlarkLib.None, nil
}

func (s *Surface) circle(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var (
		x, y, r number
		c       *Color
	)
	if err := starlarkLib.UnpackArgs(b.Name(), args, kwargs, "x", &x, "y", &y, "radius", &r, "color", &c); err != nil {
		return nil, err
	}
	s.backend.Circle(float64(x), float64(y), float64(r), c.RGBA())
	return starlarkLib.None, nil
}

func (s *Surface) line(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var (
		x1, y1, x2, y2, thickness number
		c                         *Color
	)
	if err := starlarkLib.UnpackArgs(b.Name(), args, kwargs,
		"x1", &x1, "y1", &y1, "x2", &x2, "y2", &y2, "thickness", &thickness, "color", &c); err != nil {
		return nil, err
	}
	s.backend.Line(float64(x1), float64(y1), float64(x2), float64(y2), float64(thickness), c.RGBA())
	return starlarkLib.None, nil
}

func (s *Surface) triangle(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var (
		v1, v2, v3 *Vec2
		c          *Color
	)
	if err := starlarkLib.UnpackArgs(b.Name(), args, kwargs, "v1", &v1, "v2", &v2, "v3", &v3, "color", &c); err != nil {
		return nil, err
	}
	s.backend.Triangle(v1.Point(), v2.Point(), v3.Point(), c.RGBA())
	return starlarkLib.None, nil
}

func (s *Surface) rectangle(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var (
		x, y, w, h number
		c          *Color
	)
	if err := starlarkLib.UnpackArgs(b.Name(), args, kwargs, "x", &x, "y", &y, "w", &w, "h", &h, "color", &c); err != nil {
		return nil, err
	}
	s.backend.Rectangle(float64(x), float64(y), float64(w), float64(h), c.RGBA())
	return starlarkLib.None, nil
}

func (s *Surface) rectangleLines(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var (
		x, y, w, h, thickness number
		c                     *Color
	)
	if err := starlarkLib.UnpackArgs(b.Name(), args, kwargs,
		"x", &x, "y", &y, "w", &w, "h", &h, "thickness", &thickness, "color", &c); err != nil {
		return nil, err
	}
	s.backend.RectangleLines(float64(x), float64(y), float64(w), float64(h), float64(thickness), c.RGBA())
	return starlarkLib.None, nil
}

func (s *Surface) texture(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var (
		tex  starlarkLib.Value
		x, y number
		c    *Color
	)
	if err := starlarkLib.UnpackArgs(b.Name(), args, kwargs, "texture", &tex, "x", &x, "y", &y, "color", &c); err != nil {
		return nil, err
	}
	t, err := s.resolveTexture(b.Name(), tex)
	if err != nil {
		return nil, err
	}
	s.backend.Texture(t.Asset(), float64(x), float64(y), c.RGBA(), TextureParams{})
	return starlarkLib.None, nil
}

func (s *Surface) textureEx(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var (
		tex            starlarkLib.Value
		x, y, rotation number
		c              *Color
		dest           starlarkLib.Value = starlarkLib.None
	)
	if err := starlarkLib.UnpackArgs(b.Name(), args, kwargs,
		"texture", &tex, "x", &x, "y", &y, "color", &c, "dest_size?", &dest, "rotation?", &rotation); err != nil {
		return nil, err
	}
	t, err := s.resolveTexture(b.Name(), tex)
	if err != nil {
		return nil, err
	}
	destSize, err := optionalPoint(b.Name(), "dest_size", dest)
	if err != nil {
		return nil, err
	}
	s.backend.Texture(t.Asset(), float64(x), float64(y), c.RGBA(), TextureParams{
		DestSize: destSize,
		Rotation: float64(rotation),
	})
	return starlarkLib.None, nil
}

func (s *Surface) texturePro(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var (
		tex            starlarkLib.Value
		x, y, rotation number
		c              *Color
		dest           starlarkLib.Value = starlarkLib.None
		source         starlarkLib.Value = starlarkLib.None
		pivot          starlarkLib.Value = starlarkLib.None
	)
	if err := starlarkLib.UnpackArgs(b.Name(), args, kwargs,
		"texture", &tex, "x", &x, "y", &y, "color", &c,
		"dest_size?", &dest, "source?", &source, "rotation?", &rotation, "pivot?", &pivot); err != nil {
		return nil, err
	}
	t, err := s.resolveTexture(b.Name(), tex)
	if err != nil {
		return nil, err
	}
	params := TextureParams{Rotation: float64(rotation)}
	if params.DestSize, err = optionalPoint(b.Name(), "dest_size", dest); err != nil {
		return nil, err
	}
	if params.Pivot, err = optionalPoint(b.Name(), "pivot", pivot); err != nil {
		return nil, err
	}
	switch src := source.(type) {
	case starlarkLib.NoneType:
	case *Rect:
		area := src.Area()
		params.Source = &area
	default:
		return nil, fmt.Errorf("%s: for parameter source: got %s, want Rect or None", b.Name(), source.Type())
	}
	s.backend.Texture(t.Asset(), float64(x), float64(y), c.RGBA(), params)
	return starlarkLib.None, nil
}

func (s *Surface) msgbox(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var title, message string
	if err := starlarkLib.UnpackArgs(b.Name(), args, kwargs, "title", &title, "message", &message); err != nil {
		return nil, err
	}
	s.backend.MessageBox(title, message)
	return starlarkLib.None, nil
}

func overlaps(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var r1, r2 *Rect
	if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &r1, &r2); err != nil {
		return nil, err
	}
	return starlarkLib.Bool(r1.Overlaps(r2)), nil
}

func (s *Surface) deltatime(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlarkLib.Float(s.backend.FrameTime()), nil
}

func (s *Surface) screenWidth(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlarkLib.Float(s.backend.ScreenWidth()), nil
}

func (s *Surface) screenHeight(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlarkLib.Float(s.backend.ScreenHeight()), nil
}

func (s *Surface) fps(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlarkLib.MakeInt(s.backend.FPS()), nil
}

func (s *Surface) lastKeypress(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	if k, ok := s.backend.LastKeyPressed(); ok {
		return k, nil
	}
	return starlarkLib.None, nil
}

func (s *Surface) keyQuery(query func(Key) bool) builtinFunc {
	return func(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
		var k Key
		if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &k); err != nil {
			return nil, err
		}
		return starlarkLib.Bool(query(k)), nil
	}
}

func (s *Surface) mouseQuery(query func(Mouse) bool) builtinFunc {
	return func(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
		var m Mouse
		if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &m); err != nil {
			return nil, err
		}
		return starlarkLib.Bool(query(m)), nil
	}
}

func (s *Surface) mousePosition(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	p := s.backend.MousePosition()
	return NewVec2(p.X, p.Y), nil
}

func (s *Surface) loadTexture(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var name string
	if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	t, err := s.textures.Load(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return NewTexture(t), nil
}

func (s *Surface) getTexture(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var name string
	if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	if t, ok := s.textures.Get(name); ok {
		return NewTexture(t), nil
	}
	return starlarkLib.None, nil
}

// resolveTexture accepts either a Texture handle or a texture name.
func (s *Surface) resolveTexture(fn string, v starlarkLib.Value) (Texture, error) {
	switch t := v.(type) {
	case Texture:
		return t, nil
	case starlarkLib.String:
		asset, err := s.textures.Load(string(t))
		if err != nil {
			return Texture{}, fmt.Errorf("%s: %w", fn, err)
		}
		return NewTexture(asset), nil
	}
	return Texture{}, fmt.Errorf("%s: for parameter texture: got %s, want Texture or string", fn, v.Type())
}

func optionalPoint(fn, param string, v starlarkLib.Value) (*Point, error) {
	switch p := v.(type) {
	case starlarkLib.NoneType:
		return nil, nil
	case *Vec2:
		pt := p.Point()
		return &pt, nil
	}
	return nil, fmt.Errorf("%s: for parameter %s: got %s, want Vec2 or None", fn, param, v.Type())
}

func newVec2(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var x, y number
	if err := starlarkLib.UnpackArgs(b.Name(), args, kwargs, "x?", &x, "y?", &y); err != nil {
		return nil, err
	}
	return NewVec2(float64(x), float64(y)), nil
}

func newVec3(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var x, y, z number
	if err := starlarkLib.UnpackArgs(b.Name(), args, kwargs, "x?", &x, "y?", &y, "z?", &z); err != nil {
		return nil, err
	}
	return NewVec3(float64(x), float64(y), float64(z)), nil
}

func newRect(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var x, y, w, h number
	if err := starlarkLib.UnpackArgs(b.Name(), args, kwargs, "x?", &x, "y?", &y, "w?", &w, "h?", &h); err != nil {
		return nil, err
	}
	return NewRect(float64(x), float64(y), float64(w), float64(h)), nil
}

func newColor(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
	var r, g, bl number
	a := number(1)
	if err := starlarkLib.UnpackArgs(b.Name(), args, kwargs, "r", &r, "g", &g, "b", &bl, "a?", &a); err != nil {
		return nil, err
	}
	return NewColor(float64(r), float64(g), float64(bl), float64(a)), nil
}
