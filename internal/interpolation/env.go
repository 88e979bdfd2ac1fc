package interpolation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// envRef matches ${NAME} and ${NAME:default}. The colon is captured on its
// own so ${NAME:} means an empty default.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:)?([^}]*)\}`)

// ExpandEnvVars replaces every ${NAME} or ${NAME:default} reference. A set
// variable wins over its default. A reference with neither is left in place
// and reported; all missing names are joined into the returned error.
func ExpandEnvVars(input string) (string, error) {
	var missing []error
	result := envRef.ReplaceAllStringFunc(input, func(ref string) string {
		m := envRef.FindStringSubmatch(ref)
		name, hasDefault, def := m[1], m[2] == ":", m[3]
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		if hasDefault {
			return def
		}
		missing = append(missing, fmt.Errorf("environment variable not defined: %s", name))
		return ref
	})
	return result, errors.Join(missing...)
}

// ExpandPath expands environment variables like ExpandEnvVars and then
// replaces a leading "~" with the user's home directory.
func ExpandPath(input string) (string, error) {
	expanded, err := ExpandEnvVars(input)
	if err != nil {
		return expanded, err
	}
	if expanded != "~" && !strings.HasPrefix(expanded, "~/") {
		return expanded, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return expanded, fmt.Errorf("cannot expand %q: %w", input, err)
	}
	return filepath.Join(home, strings.TrimPrefix(expanded, "~")), nil
}
