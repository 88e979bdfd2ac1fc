package capability

import (
	"fmt"
	"math"

	"github.com/atlanticdynamic/kgames/internal/assets"
	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var (
	_ starlarkLib.HasSetField = (*Vec2)(nil)
	_ starlarkLib.HasBinary   = (*Vec2)(nil)
	_ starlarkLib.Comparable  = (*Vec2)(nil)
	_ starlarkLib.HasSetField = (*Vec3)(nil)
	_ starlarkLib.Comparable  = (*Vec3)(nil)
	_ starlarkLib.HasSetField = (*Rect)(nil)
	_ starlarkLib.Comparable  = (*Rect)(nil)
	_ starlarkLib.HasSetField = (*Color)(nil)
	_ starlarkLib.Comparable  = (*Color)(nil)
	_ starlarkLib.HasAttrs    = Texture{}
	_ starlarkLib.Comparable  = Key{}
	_ starlarkLib.Comparable  = Mouse{}
)

// fields is the shared get/set plumbing for the float-backed value types.
type fields struct {
	typeName string
	names    []string
	values   []*float64
	frozen   bool
}

func newFields(typeName string, names []string, values ...*float64) *fields {
	return &fields{typeName: typeName, names: names, values: values}
}

func (f *fields) attr(name string) (starlarkLib.Value, error) {
	for i, n := range f.names {
		if n == name {
			return starlarkLib.Float(*f.values[i]), nil
		}
	}
	return nil, nil
}

func (f *fields) setField(name string, val starlarkLib.Value) error {
	if f.frozen {
		return fmt.Errorf("cannot set .%s of frozen %s", name, f.typeName)
	}
	v, ok := starlarkLib.AsFloat(val)
	if !ok {
		return fmt.Errorf("%s.%s: got %s, want number", f.typeName, name, val.Type())
	}
	for i, n := range f.names {
		if n == name {
			*f.values[i] = v
			return nil
		}
	}
	return starlarkLib.NoSuchAttrError(fmt.Sprintf("%s has no .%s field", f.typeName, name))
}

func (f *fields) compare(op syntax.Token, other *fields) (bool, error) {
	equal := true
	for i := range f.values {
		if *f.values[i] != *other.values[i] {
			equal = false
			break
		}
	}
	switch op {
	case syntax.EQL:
		return equal, nil
	case syntax.NEQ:
		return !equal, nil
	default:
		return false, fmt.Errorf("%s %s %s not implemented", f.typeName, op, f.typeName)
	}
}

func (f *fields) String() string {
	s := f.typeName + "("
	for i, v := range f.values {
		if i > 0 {
			s += ", "
		}
		s += starlarkLib.Float(*v).String()
	}
	return s + ")"
}

// Vec2 is a two dimensional vector with mutable x and y fields.
type Vec2 struct {
	X, Y float64
	f    *fields
}

// NewVec2 returns a new Vec2.
func NewVec2(x, y float64) *Vec2 {
	v := &Vec2{X: x, Y: y}
	v.f = newFields("Vec2", []string{"x", "y"}, &v.X, &v.Y)
	return v
}

func (v *Vec2) String() string {
	return v.f.String()
}

func (v *Vec2) Type() string {
	return "Vec2"
}

func (v *Vec2) Freeze() {
	v.f.frozen = true
}

func (v *Vec2) Truth() starlarkLib.Bool {
	return true
}

func (v *Vec2) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: Vec2")
}

func (v *Vec2) AttrNames() []string {
	return []string{"length", "x", "y"}
}

func (v *Vec2) Attr(name string) (starlarkLib.Value, error) {
	if name == "length" {
		return method(name, func() starlarkLib.Value { return starlarkLib.Float(math.Hypot(v.X, v.Y)) }), nil
	}
	return v.f.attr(name)
}

func (v *Vec2) SetField(name string, val starlarkLib.Value) error {
	return v.f.setField(name, val)
}

func (v *Vec2) CompareSameType(op syntax.Token, y starlarkLib.Value, _ int) (bool, error) {
	return v.f.compare(op, y.(*Vec2).f)
}

// Binary implements vector addition, subtraction and scaling.
func (v *Vec2) Binary(op syntax.Token, y starlarkLib.Value, side starlarkLib.Side) (starlarkLib.Value, error) {
	switch op {
	case syntax.PLUS, syntax.MINUS:
		o, ok := y.(*Vec2)
		if !ok {
			return nil, nil
		}
		if op == syntax.PLUS {
			return NewVec2(v.X+o.X, v.Y+o.Y), nil
		}
		if side == starlarkLib.Left {
			return NewVec2(v.X-o.X, v.Y-o.Y), nil
		}
		return NewVec2(o.X-v.X, o.Y-v.Y), nil
	case syntax.STAR:
		k, ok := starlarkLib.AsFloat(y)
		if !ok {
			return nil, nil
		}
		return NewVec2(v.X*k, v.Y*k), nil
	}
	return nil, nil
}

// Vec3 is a three dimensional vector with mutable x, y and z fields.
type Vec3 struct {
	X, Y, Z float64
	f       *fields
}

// NewVec3 returns a new Vec3.
func NewVec3(x, y, z float64) *Vec3 {
	v := &Vec3{X: x, Y: y, Z: z}
	v.f = newFields("Vec3", []string{"x", "y", "z"}, &v.X, &v.Y, &v.Z)
	return v
}

func (v *Vec3) String() string {
	return v.f.String()
}

func (v *Vec3) Type() string {
	return "Vec3"
}

func (v *Vec3) Freeze() {
	v.f.frozen = true
}

func (v *Vec3) Truth() starlarkLib.Bool {
	return true
}

func (v *Vec3) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: Vec3")
}

func (v *Vec3) AttrNames() []string {
	return []string{"x", "y", "z"}
}

func (v *Vec3) Attr(name string) (starlarkLib.Value, error) {
	return v.f.attr(name)
}

func (v *Vec3) SetField(name string, val starlarkLib.Value) error {
	return v.f.setField(name, val)
}

func (v *Vec3) CompareSameType(op syntax.Token, y starlarkLib.Value, _ int) (bool, error) {
	return v.f.compare(op, y.(*Vec3).f)
}

// Rect is an axis aligned rectangle with mutable x, y, w and h fields.
type Rect struct {
	X, Y, W, H float64
	f          *fields
}

// NewRect returns a new Rect.
func NewRect(x, y, w, h float64) *Rect {
	r := &Rect{X: x, Y: y, W: w, H: h}
	r.f = newFields("Rect", []string{"x", "y", "w", "h"}, &r.X, &r.Y, &r.W, &r.H)
	return r
}

func (r *Rect) String() string {
	return r.f.String()
}

func (r *Rect) Type() string {
	return "Rect"
}

func (r *Rect) Freeze() {
	r.f.frozen = true
}

func (r *Rect) Truth() starlarkLib.Bool {
	return true
}

func (r *Rect) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: Rect")
}

func (r *Rect) AttrNames() []string {
	return []string{"center", "contains", "h", "overlaps", "size", "w", "x", "y"}
}

func (r *Rect) Attr(name string) (starlarkLib.Value, error) {
	switch name {
	case "size":
		return method(name, func() starlarkLib.Value { return NewVec2(r.W, r.H) }), nil
	case "center":
		return method(name, func() starlarkLib.Value { return NewVec2(r.X+r.W/2, r.Y+r.H/2) }), nil
	case "overlaps":
		return starlarkLib.NewBuiltin(name, func(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
			var other *Rect
			if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &other); err != nil {
				return nil, err
			}
			return starlarkLib.Bool(r.Overlaps(other)), nil
		}), nil
	case "contains":
		return starlarkLib.NewBuiltin(name, func(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
			var p *Vec2
			if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &p); err != nil {
				return nil, err
			}
			return starlarkLib.Bool(r.Contains(p)), nil
		}), nil
	}
	return r.f.attr(name)
}

func (r *Rect) SetField(name string, val starlarkLib.Value) error {
	return r.f.setField(name, val)
}

func (r *Rect) CompareSameType(op syntax.Token, y starlarkLib.Value, _ int) (bool, error) {
	return r.f.compare(op, y.(*Rect).f)
}

// Overlaps reports whether the two rectangles intersect.
func (r *Rect) Overlaps(o *Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Contains reports whether the point lies inside the rectangle.
func (r *Rect) Contains(p *Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
	f          *fields
}

// NewColor returns a new Color.
func NewColor(r, g, b, a float64) *Color {
	c := &Color{R: r, G: g, B: b, A: a}
	c.f = newFields("Color", []string{"r", "g", "b", "a"}, &c.R, &c.G, &c.B, &c.A)
	return c
}

func (c *Color) String() string {
	return c.f.String()
}

func (c *Color) Type() string {
	return "Color"
}

func (c *Color) Freeze() {
	c.f.frozen = true
}

func (c *Color) Truth() starlarkLib.Bool {
	return true
}

func (c *Color) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: Color")
}

func (c *Color) AttrNames() []string {
	return []string{"a", "b", "g", "r"}
}

func (c *Color) Attr(name string) (starlarkLib.Value, error) {
	return c.f.attr(name)
}

func (c *Color) SetField(name string, val starlarkLib.Value) error {
	return c.f.setField(name, val)
}

func (c *Color) CompareSameType(op syntax.Token, y starlarkLib.Value, _ int) (bool, error) {
	return c.f.compare(op, y.(*Color).f)
}

// Texture is an opaque handle to a cached texture.
type Texture struct {
	asset assets.Texture
}

// NewTexture wraps a cached texture.
func NewTexture(t assets.Texture) Texture {
	return Texture{asset: t}
}

// Asset returns the cached texture behind the handle.
func (t Texture) Asset() assets.Texture {
	return t.asset
}

func (t Texture) String() string {
	return fmt.Sprintf("Texture(%q)", t.asset.Name)
}

func (t Texture) Type() string {
	return "Texture"
}

func (t Texture) Freeze() {}

func (t Texture) Truth() starlarkLib.Bool {
	return true
}

func (t Texture) Hash() (uint32, error) {
	return starlarkLib.String(t.asset.Name).Hash()
}

func (t Texture) AttrNames() []string {
	return []string{"height", "name", "width"}
}

func (t Texture) Attr(name string) (starlarkLib.Value, error) {
	switch name {
	case "width":
		return starlarkLib.Float(t.asset.Width), nil
	case "height":
		return starlarkLib.Float(t.asset.Height), nil
	case "name":
		return starlarkLib.String(t.asset.Name), nil
	}
	return nil, nil
}

// Key is an opaque key code.
type Key struct {
	Code int
	Name string
}

func (k Key) String() string {
	return fmt.Sprintf("Key(%s)", k.Name)
}

func (k Key) Type() string {
	return "Key"
}

func (k Key) Freeze() {}

func (k Key) Truth() starlarkLib.Bool {
	return k.Code != KeyUnknown.Code
}

func (k Key) Hash() (uint32, error) {
	return uint32(k.Code), nil
}

func (k Key) CompareSameType(op syntax.Token, y starlarkLib.Value, _ int) (bool, error) {
	return compareCodes(op, k.Code, y.(Key).Code, "Key")
}

// Mouse is an opaque mouse button.
type Mouse struct {
	Button int
	Name   string
}

func (m Mouse) String() string {
	return fmt.Sprintf("Mouse(%s)", m.Name)
}

func (m Mouse) Type() string {
	return "Mouse"
}

func (m Mouse) Freeze() {}

func (m Mouse) Truth() starlarkLib.Bool {
	return true
}

func (m Mouse) Hash() (uint32, error) {
	return uint32(m.Button), nil
}

func (m Mouse) CompareSameType(op syntax.Token, y starlarkLib.Value, _ int) (bool, error) {
	return compareCodes(op, m.Button, y.(Mouse).Button, "Mouse")
}

func compareCodes(op syntax.Token, a, b int, typeName string) (bool, error) {
	switch op {
	case syntax.EQL:
		return a == b, nil
	case syntax.NEQ:
		return a != b, nil
	default:
		return false, fmt.Errorf("%s %s %s not implemented", typeName, op, typeName)
	}
}

// method wraps a zero-argument accessor as a bound builtin.
func method(name string, fn func() starlarkLib.Value) *starlarkLib.Builtin {
	return starlarkLib.NewBuiltin(name, func(_ *starlarkLib.Thread, b *starlarkLib.Builtin, args starlarkLib.Tuple, kwargs []starlarkLib.Tuple) (starlarkLib.Value, error) {
		if err := starlarkLib.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		return fn(), nil
	})
}

// RGBA returns the plain color components.
func (c *Color) RGBA() RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Point returns the plain vector components.
func (v *Vec2) Point() Point {
	return Point{X: v.X, Y: v.Y}
}

// Area returns the plain rectangle components.
func (r *Rect) Area() Area {
	return Area{X: r.X, Y: r.Y, W: r.W, H: r.H}
}
