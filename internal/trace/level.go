package trace

import (
	"fmt"
	"slices"
	"strings"
)

// Level controls tracing verbosity. Each level admits events up to a
// scope: phase stops at files, detail at fix passes, debug lets sniffs in.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // only ring dumps on crash
	LevelPhase               // driver + file boundaries
	LevelDetail              // fix loop passes
	LevelDebug               // everything including sniffs
)

var levelNames = []string{"off", "error", "phase", "detail", "debug"}

// deepest scope a level admits; 0 admits nothing
var levelScope = [...]Scope{0, 0, ScopeFile, ScopePass, ScopeSniff}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts the level names case-insensitively; "" means off.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(s)
	if name == "" {
		return LevelOff, nil
	}
	if i := slices.Index(levelNames, name); i >= 0 {
		return Level(i), nil
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames, "|"))
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(levelScope) {
		return false
	}
	return scope != 0 && scope <= levelScope[l]
}
