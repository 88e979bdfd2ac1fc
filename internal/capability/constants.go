package capability

import (
	"fmt"

	starlarkLib "go.starlark.net/starlark"
)

// NamedColor is one entry of the color table.
type NamedColor struct {
	Name  string
	Color RGBA
}

// Colors are the named colors injected into every script scope.
var Colors = []NamedColor{
	{"LIGHTGRAY", RGBA{0.78, 0.78, 0.78, 1.00}},
	{"GRAY", RGBA{0.51, 0.51, 0.51, 1.00}},
	{"DARKGRAY", RGBA{0.31, 0.31, 0.31, 1.00}},
	{"YELLOW", RGBA{0.99, 0.98, 0.00, 1.00}},
	{"GOLD", RGBA{1.00, 0.80, 0.00, 1.00}},
	{"ORANGE", RGBA{1.00, 0.63, 0.00, 1.00}},
	{"PINK", RGBA{1.00, 0.43, 0.76, 1.00}},
	{"RED", RGBA{0.90, 0.16, 0.22, 1.00}},
	{"MAROON", RGBA{0.75, 0.13, 0.22, 1.00}},
	{"GREEN", RGBA{0.00, 0.89, 0.19, 1.00}},
	{"LIME", RGBA{0.00, 0.62, 0.18, 1.00}},
	{"DARKGREEN", RGBA{0.00, 0.46, 0.17, 1.00}},
	{"SKYBLUE", RGBA{0.40, 0.75, 1.00, 1.00}},
	{"BLUE", RGBA{0.00, 0.47, 0.95, 1.00}},
	{"DARKBLUE", RGBA{0.00, 0.32, 0.67, 1.00}},
	{"PURPLE", RGBA{0.78, 0.48, 1.00, 1.00}},
	{"VIOLET", RGBA{0.53, 0.24, 0.75, 1.00}},
	{"DARKPURPLE", RGBA{0.44, 0.12, 0.49, 1.00}},
	{"BEIGE", RGBA{0.83, 0.69, 0.51, 1.00}},
	{"BROWN", RGBA{0.50, 0.42, 0.31, 1.00}},
	{"DARKBROWN", RGBA{0.30, 0.25, 0.18, 1.00}},
	{"WHITE", RGBA{1.00, 1.00, 1.00, 1.00}},
	{"BLACK", RGBA{0.00, 0.00, 0.00, 1.00}},
	{"BLANK", RGBA{0.00, 0.00, 0.00, 0.00}},
	{"MAGENTA", RGBA{1.00, 0.00, 1.00, 1.00}},
}

// Key codes used directly by the host.
var (
	KeyUnknown = Key{Code: 0x01ff, Name: "UNKNOWN"}
	KeyEscape  = Key{Code: 0xff1b, Name: "ESCAPE"}
	KeyEnter   = Key{Code: 0xff0d, Name: "ENTER"}
	KeySpace   = Key{Code: 0x0020, Name: "SPACE"}
	KeyF1      = Key{Code: 0xffbe, Name: "F1"}
	KeyF5      = Key{Code: 0xffc2, Name: "F5"}
	KeyF10     = Key{Code: 0xffc7, Name: "F10"}
	KeyF12     = Key{Code: 0xffc9, Name: "F12"}
	KeyUp      = Key{Code: 0xff52, Name: "UP"}
	KeyDown    = Key{Code: 0xff54, Name: "DOWN"}
)

// Keys are the named key codes injected into every script scope, in table
// order. Script names carry a KEY_ prefix.
var Keys = buildKeys()

func buildKeys() []Key {
	keys := []Key{
		{0x0020, "SPACE"},
		{0x0027, "APOSTROPHE"},
		{0x002c, "COMMA"},
		{0x002d, "MINUS"},
		{0x002e, "PERIOD"},
		{0x002f, "SLASH"},
	}
	for i := 0; i <= 9; i++ {
		keys = append(keys, Key{0x0030 + i, fmt.Sprintf("KEY%d", i)})
	}
	keys = append(keys, Key{0x003b, "SEMICOLON"}, Key{0x003d, "EQUAL"})
	for c := 'A'; c <= 'Z'; c++ {
		keys = append(keys, Key{int(c), string(c)})
	}
	keys = append(keys,
		Key{0x005b, "LEFTBRACKET"},
		Key{0x005c, "BACKSLASH"},
		Key{0x005d, "RIGHTBRACKET"},
		Key{0x0060, "GRAVEACCENT"},
		Key{0x0100, "WORLD1"},
		Key{0x0101, "WORLD2"},
		KeyEscape,
		KeyEnter,
		Key{0xff09, "TAB"},
		Key{0xff08, "BACKSPACE"},
		Key{0xff63, "INSERT"},
		Key{0xffff, "DELETE"},
		Key{0xff53, "RIGHT"},
		Key{0xff51, "LEFT"},
		KeyDown,
		KeyUp,
		Key{0xff55, "PAGEUP"},
		Key{0xff56, "PAGEDOWN"},
		Key{0xff50, "HOME"},
		Key{0xff57, "END"},
		Key{0xffe5, "CAPSLOCK"},
		Key{0xff14, "SCROLLLOCK"},
		Key{0xff7f, "NUMLOCK"},
		Key{0xfd1d, "PRINTSCREEN"},
		Key{0xff13, "PAUSE"},
	)
	for i := 0; i < 25; i++ {
		keys = append(keys, Key{KeyF1.Code + i, fmt.Sprintf("F%d", i+1)})
	}
	for i := 0; i <= 9; i++ {
		keys = append(keys, Key{0xffb0 + i, fmt.Sprintf("KP%d", i)})
	}
	keys = append(keys,
		Key{0xffae, "KPDECIMAL"},
		Key{0xffaf, "KPDIVIDE"},
		Key{0xffaa, "KPMULTIPLY"},
		Key{0xffad, "KPSUBTRACT"},
		Key{0xffab, "KPADD"},
		Key{0xff8d, "KPENTER"},
		Key{0xffbd, "KPEQUAL"},
		Key{0xffe1, "LEFTSHIFT"},
		Key{0xffe3, "LEFTCONTROL"},
		Key{0xffe9, "LEFTALT"},
		Key{0xffeb, "LEFTSUPER"},
		Key{0xffe2, "RIGHTSHIFT"},
		Key{0xffe4, "RIGHTCONTROL"},
		Key{0xffea, "RIGHTALT"},
		Key{0xffec, "RIGHTSUPER"},
		Key{0xff67, "MENU"},
		KeyUnknown,
	)
	return keys
}

// KeyByName looks up a key by its table name, without the KEY_ prefix.
func KeyByName(name string) (Key, bool) {
	for _, k := range Keys {
		if k.Name == name {
			return k, true
		}
	}
	return Key{}, false
}

// Mouse buttons injected into every script scope.
var (
	MouseLeft    = Mouse{Button: 0, Name: "LEFT"}
	MouseRight   = Mouse{Button: 1, Name: "RIGHT"}
	MouseMiddle  = Mouse{Button: 2, Name: "MIDDLE"}
	MouseUnknown = Mouse{Button: 255, Name: "UNKNOWN"}

	MouseButtons = []Mouse{MouseLeft, MouseRight, MouseMiddle, MouseUnknown}
)

// Constants returns the named colors, keys and mouse buttons as fresh, frozen
// values. Every call allocates new values so no two scopes share a constant.
func Constants() starlarkLib.StringDict {
	dict := make(starlarkLib.StringDict, len(Colors)+len(Keys)+len(MouseButtons))
	for _, c := range Colors {
		v := NewColor(c.Color.R, c.Color.G, c.Color.B, c.Color.A)
		v.Freeze()
		dict[c.Name] = v
	}
	for _, k := range Keys {
		dict["KEY_"+k.Name] = k
	}
	for _, m := range MouseButtons {
		dict["MOUSE_"+m.Name] = m
	}
	return dict
}
