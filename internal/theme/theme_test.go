package theme

import (
	"testing"

	"github.com/atlanticdynamic/kgames/internal/capability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTheme_Cycle(t *testing.T) {
	assert.Equal(t, Gruvbox, Default.Next())
	assert.Equal(t, Default, Bolus.Next())
	assert.Equal(t, Bolus, Default.Previous())
	assert.Equal(t, Matrix, Midnight.Previous())

	th := Default
	for range All {
		th = th.Next()
	}
	assert.Equal(t, Default, th)

	for _, v := range All {
		assert.Equal(t, v, v.Next().Previous())
	}
}

func TestTheme_Parse(t *testing.T) {
	tests := []struct {
		input   string
		want    Theme
		wantErr bool
	}{
		{input: "Default", want: Default},
		{input: "gruvbox", want: Gruvbox},
		{input: "bolus", want: Bolus},
		{input: "MIDNIGHT", want: Midnight},
		{input: "solarized", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTheme_Names(t *testing.T) {
	assert.Equal(t, []string{"Default", "Gruvbox", "Matrix", "Midnight", "BOLUS"}, Names())
	assert.Equal(t, "BOLUS", Bolus.String())
	assert.Equal(t, "Theme(42)", Theme(42).String())
	assert.False(t, Theme(42).Valid())
	assert.Equal(t, Default.Style(), Theme(42).Style())
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#000000", Hex(capability.RGBA{}))
	assert.Equal(t, "#ffffff", Hex(capability.RGBA{R: 1, G: 1, B: 1}))
	assert.Equal(t, "#ff0080", Hex(capability.RGBA{R: 2, G: -1, B: 0.5}))
	assert.Equal(t, "#00e430", Hex(Default.Style().Accent))
}
