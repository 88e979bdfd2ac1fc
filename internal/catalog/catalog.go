// Package catalog filters the loaded scripts for the selection menu.
package catalog

import (
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/atlanticdynamic/kgames/internal/engine"
	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

var initScheme = sync.OnceFunc(func() { algo.Init("default") })

// slab is the fzf scratch space shared by every Filter call.
var (
	slabMu sync.Mutex
	slab   = util.MakeSlab(100*1024, 2048)
)

// Entry is one selectable script.
type Entry struct {
	Name      string
	Path      string
	IsExample bool
}

// Match is an entry that satisfied a query.
type Match struct {
	Entry
	// Index is the position of the entry in the unfiltered list.
	Index int
	Score int
}

// FromScripts builds entries from the live scripts, keeping their order.
func FromScripts(scripts []engine.Script) []Entry {
	entries := make([]Entry, 0, len(scripts))
	for _, s := range scripts {
		entries = append(entries, Entry{Name: s.Name(), Path: s.Path(), IsExample: s.IsExample()})
	}
	return entries
}

// Filter returns the entries matching query, best first. Ties keep the
// original order. An empty query returns every entry with a zero score.
func Filter(entries []Entry, query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]Match, len(entries))
		for i, e := range entries {
			out[i] = Match{Entry: e, Index: i}
		}
		return out
	}

	initScheme()
	pattern := []rune(strings.ToLower(query))

	slabMu.Lock()
	defer slabMu.Unlock()
	var out []Match
	for i, e := range entries {
		chars := util.ToChars([]byte(e.Name))
		res, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, slab)
		if res.Start < 0 || res.Score <= 0 {
			continue
		}
		out = append(out, Match{Entry: e, Index: i, Score: res.Score})
	}
	slices.SortStableFunc(out, func(a, b Match) int {
		return b.Score - a.Score
	})
	return out
}

// Best returns the highest scoring match for query.
func Best(entries []Entry, query string) (Match, bool) {
	matches := Filter(entries, query)
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}

// IsQueryRune reports whether r may be typed into a search query.
func IsQueryRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == ' '
}
