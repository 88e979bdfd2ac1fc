package interpolation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnvVars(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		env     map[string]string
		want    string
		wantErr string
	}{
		{name: "empty", input: "", want: ""},
		{name: "no references", input: "scripts", want: "scripts"},
		{name: "single", input: "${KG_ROOT}", env: map[string]string{"KG_ROOT": "/srv/kgames"}, want: "/srv/kgames"},
		{name: "embedded", input: "${KG_ROOT}/scripts", env: map[string]string{"KG_ROOT": "/srv"}, want: "/srv/scripts"},
		{
			name:  "several",
			input: "${KG_A}/${KG_B}/${KG_C}.star",
			env:   map[string]string{"KG_A": "a", "KG_B": "b", "KG_C": "c"},
			want:  "a/b/c.star",
		},
		{name: "default used", input: "${KG_UNSET_HOME:kgames}", want: "kgames"},
		{name: "empty default", input: "x${KG_UNSET_EMPTY:}y", want: "xy"},
		{name: "env wins over default", input: "${KG_SET:fallback}", env: map[string]string{"KG_SET": "set"}, want: "set"},
		{name: "default with path", input: "${KG_UNSET_LOG:/var/log/kgames.log}", want: "/var/log/kgames.log"},
		{name: "single dollar untouched", input: "$KG_ROOT", want: "$KG_ROOT"},
		{name: "digit start untouched", input: "${1KG}", want: "${1KG}"},
		{
			name:    "missing",
			input:   "${KG_MISSING}/scripts",
			want:    "${KG_MISSING}/scripts",
			wantErr: "environment variable not defined: KG_MISSING",
		},
		{
			name:    "partially missing",
			input:   "${KG_DEF}/${KG_MISSING_ONE}/${KG_MISSING_TWO}",
			env:     map[string]string{"KG_DEF": "ok"},
			want:    "ok/${KG_MISSING_ONE}/${KG_MISSING_TWO}",
			wantErr: "KG_MISSING_TWO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			got, err := ExpandEnvVars(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
