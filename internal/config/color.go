package config

import (
	"fmt"
	"strconv"

	"github.com/atlanticdynamic/kgames/internal/capability"
	"github.com/atlanticdynamic/kgames/internal/config/errz"
)

// HexColor is a color written as #rrggbb.
type HexColor string

// Validate checks the #rrggbb form.
func (h HexColor) Validate() error {
	if len(h) != len("#123456") || h[0] != '#' {
		return fmt.Errorf("%w: %q", errz.ErrInvalidColor, string(h))
	}
	if _, err := strconv.ParseUint(string(h[1:]), 16, 32); err != nil {
		return fmt.Errorf("%w: %q", errz.ErrInvalidColor, string(h))
	}
	return nil
}

// RGBA converts the color to components in [0, 1]. Invalid colors convert
// to opaque black.
func (h HexColor) RGBA() capability.RGBA {
	if h.Validate() != nil {
		return capability.RGBA{A: 1}
	}
	v, _ := strconv.ParseUint(string(h[1:]), 16, 32)
	return capability.RGBA{
		R: float64(v>>16&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}
}
