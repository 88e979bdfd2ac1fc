package interpolation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDirs struct {
	Root    string   `env_interpolation:"path"`
	Scripts string   `env_interpolation:"yes"`
	Code    string   `env_interpolation:"no"`
	Plain   string
	Extra   []string `env_interpolation:"path"`
	ignored string   //nolint:unused
}

type testConfig struct {
	Name string `env_interpolation:"yes"`
	Dirs testDirs
	Ptr  *testDirs
}

func TestInterpolateStruct(t *testing.T) {
	t.Setenv("KG_TEST_ROOT", "/srv/kgames")
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Run("tagged fields only", func(t *testing.T) {
		dirs := &testDirs{
			Root:    "${KG_TEST_ROOT}",
			Scripts: "${KG_TEST_MISSING:scripts}",
			Code:    "print('${KG_TEST_ROOT}')",
			Plain:   "${KG_TEST_ROOT}",
			Extra:   []string{"~/games", "", "${KG_TEST_ROOT}/x"},
		}
		require.NoError(t, InterpolateStruct(dirs))
		assert.Equal(t, "/srv/kgames", dirs.Root)
		assert.Equal(t, "scripts", dirs.Scripts)
		assert.Equal(t, "print('${KG_TEST_ROOT}')", dirs.Code)
		assert.Equal(t, "${KG_TEST_ROOT}", dirs.Plain)
		assert.Equal(t, []string{filepath.Join(home, "games"), "", "/srv/kgames/x"}, dirs.Extra)
	})

	t.Run("nested structs and pointers", func(t *testing.T) {
		cfg := &testConfig{
			Name: "kg-${KG_TEST_ROOT}",
			Dirs: testDirs{Root: "~"},
			Ptr:  &testDirs{Scripts: "${KG_TEST_ROOT}/scripts"},
		}
		require.NoError(t, InterpolateStruct(cfg))
		assert.Equal(t, "kg-/srv/kgames", cfg.Name)
		assert.Equal(t, home, cfg.Dirs.Root)
		assert.Equal(t, "/srv/kgames/scripts", cfg.Ptr.Scripts)
	})

	t.Run("missing variables are reported per field", func(t *testing.T) {
		dirs := &testDirs{Root: "${KG_TEST_UNSET_A}", Scripts: "${KG_TEST_UNSET_B}"}
		err := InterpolateStruct(dirs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field Root")
		assert.Contains(t, err.Error(), "field Scripts")
	})

	t.Run("invalid inputs", func(t *testing.T) {
		assert.NoError(t, InterpolateStruct(nil))
		assert.NoError(t, InterpolateStruct((*testDirs)(nil)))
		assert.Error(t, InterpolateStruct("not a struct"))
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("KG_TEST_SUB", "games")

	tests := []struct {
		input string
		want  string
	}{
		{input: "~", want: home},
		{input: "~/${KG_TEST_SUB}", want: filepath.Join(home, "games")},
		{input: "/abs/~/x", want: "/abs/~/x"},
		{input: "~user", want: "~user"},
		{input: "relative", want: "relative"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = ExpandPath("~/${KG_TEST_UNSET_C}")
	assert.Error(t, err)
}
