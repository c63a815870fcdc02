// internal/lookup/lookup.go
package lookup

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// WordFilter rejects names that equal or contain a banned word, case-insensitively.
// It is immutable once built and safe for concurrent use.
type WordFilter struct {
	exact map[string]struct{}
	words []string
}

// NewWordFilter builds a filter from a list of banned words.
func NewWordFilter(words []string) *WordFilter {
	f := &WordFilter{exact: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		f.exact[w] = struct{}{}
		f.words = append(f.words, w)
	}
	return f
}

// LoadWordFilter reads a JSON array of banned words from path.
func LoadWordFilter(path string) (*WordFilter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read banned words file: %w", err)
	}
	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("failed to parse banned words file %s: %w", path, err)
	}
	return NewWordFilter(words), nil
}

// IsNameAllowed reports whether name is free of banned words.
func (f *WordFilter) IsNameAllowed(name string) bool {
	name = strings.ToLower(name)
	// exact hit first, it's the common case
	if _, banned := f.exact[name]; banned {
		return false
	}
	for _, w := range f.words {
		if strings.Contains(name, w) {
			return false
		}
	}
	return true
}

// Aliases is the allow-list of vanity lobby aliases. An alias may be reserved for a
// single game tag; an unbound alias works for any game.
type Aliases struct {
	games map[string]string
}

// NewAliases builds an allow-list of unbound aliases.
func NewAliases(names ...string) *Aliases {
	a := &Aliases{games: make(map[string]string, len(names))}
	for _, n := range names {
		a.games[n] = ""
	}
	return a
}

// NewBoundAliases builds an allow-list from alias -> game tag ("" for any game).
func NewBoundAliases(games map[string]string) *Aliases {
	a := &Aliases{games: make(map[string]string, len(games))}
	for k, v := range games {
		a.games[k] = v
	}
	return a
}

// LoadAliases reads the alias file at path. The file holds either a JSON array of
// aliases or an object mapping alias to game tag.
func LoadAliases(path string) (*Aliases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read aliases file: %w", err)
	}
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		return NewAliases(names...), nil
	}
	var games map[string]string
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("failed to parse aliases file %s: %w", path, err)
	}
	return NewBoundAliases(games), nil
}

// IsKnownAlias reports whether alias is on the allow-list.
func (a *Aliases) IsKnownAlias(alias string) bool {
	_, ok := a.games[alias]
	return ok
}

// GameFor returns the game alias is reserved for.
func (a *Aliases) GameFor(alias string) (string, bool) {
	g, ok := a.games[alias]
	if !ok || g == "" {
		return "", false
	}
	return g, true
}

// Len returns the number of aliases.
func (a *Aliases) Len() int {
	return len(a.games)
}
