package starlark

import (
	"encoding/hex"
	"fmt"
	"io"
	"maps"
	"math/big"
	"path/filepath"
	"slices"
	"unicode"

	"github.com/atlanticdynamic/kgames/internal/engine"
	"github.com/robbyt/go-polyscript/platform/script/loader"
	"github.com/zeebo/blake3"
	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// fileOptions are the dialect options every script is parsed with.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// unit is a compiled script: the program plus the literal bindings captured
// from its unresolved syntax tree.
type unit struct {
	program   *starlarkLib.Program
	literals  starlarkLib.StringDict
	constants []string
	variables []string
	digest    string
}

// readSource reads a script through the polyscript disk loader.
func readSource(path string) ([]byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", engine.ErrRead, err)
	}
	ld, err := loader.NewFromDisk(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", engine.ErrRead, err)
	}
	r, err := ld.GetReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", engine.ErrRead, err)
	}
	defer func() { _ = r.Close() }()

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", engine.ErrRead, err)
	}
	return src, nil
}

// compile turns source into a runnable unit in two phases. The first parses
// without resolution and captures top-level literal assignments; the second
// resolves and compiles the program against the predeclared names plus those
// literals.
func compile(path string, src []byte, predeclared starlarkLib.StringDict) (*unit, error) {
	f, err := fileOptions.Parse(path, src, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", engine.ErrCompile, err)
	}

	u := &unit{literals: extractLiterals(f)}
	for _, name := range slices.Sorted(maps.Keys(u.literals)) {
		if isConstantName(name) {
			u.constants = append(u.constants, name)
		} else {
			u.variables = append(u.variables, name)
		}
	}

	isPredeclared := func(name string) bool {
		if _, ok := predeclared[name]; ok {
			return true
		}
		_, ok := u.literals[name]
		return ok
	}
	u.program, err = starlarkLib.FileProgram(f, isPredeclared)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", engine.ErrCompile, err)
	}

	sum := blake3.Sum256(src)
	u.digest = hex.EncodeToString(sum[:])
	return u, nil
}

// extractLiterals collects `name = <literal>` statements at the top level of f.
// A name assigned more than once keeps its first literal value.
func extractLiterals(f *syntax.File) starlarkLib.StringDict {
	out := make(starlarkLib.StringDict)
	for _, stmt := range f.Stmts {
		assign, ok := stmt.(*syntax.AssignStmt)
		if !ok || assign.Op != syntax.EQ {
			continue
		}
		id, ok := assign.LHS.(*syntax.Ident)
		if !ok {
			continue
		}
		if _, dup := out[id.Name]; dup {
			continue
		}
		if v, ok := literalValue(assign.RHS); ok {
			out[id.Name] = v
		}
	}
	return out
}

func literalValue(e syntax.Expr) (starlarkLib.Value, bool) {
	switch e := e.(type) {
	case *syntax.Literal:
		switch v := e.Value.(type) {
		case int64:
			return starlarkLib.MakeInt64(v), true
		case *big.Int:
			return starlarkLib.MakeBigInt(v), true
		case float64:
			return starlarkLib.Float(v), true
		case string:
			if e.Token == syntax.BYTES {
				return starlarkLib.Bytes(v), true
			}
			return starlarkLib.String(v), true
		}
	case *syntax.UnaryExpr:
		if e.Op != syntax.MINUS {
			return nil, false
		}
		v, ok := literalValue(e.X)
		if !ok {
			return nil, false
		}
		switch n := v.(type) {
		case starlarkLib.Int:
			return starlarkLib.MakeInt(0).Sub(n), true
		case starlarkLib.Float:
			return -n, true
		}
	case *syntax.ParenExpr:
		return literalValue(e.X)
	case *syntax.Ident:
		switch e.Name {
		case "True":
			return starlarkLib.True, true
		case "False":
			return starlarkLib.False, true
		case "None":
			return starlarkLib.None, true
		}
	}
	return nil, false
}

// isConstantName reports whether name is written in UPPER_SNAKE_CASE.
func isConstantName(name string) bool {
	hasLetter := false
	for _, r := range name {
		switch {
		case unicode.IsUpper(r):
			hasLetter = true
		case r == '_' || unicode.IsDigit(r):
		default:
			return false
		}
	}
	return hasLetter
}
