package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity. Each level includes everything below it.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // только дамп при панике
	LevelPhase        // границы driver и проходов
	LevelDetail       // + каждый файл
	LevelDebug        // + каждая группа перегрузок
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a --trace-level value.
func ParseLevel(s string) (Level, error) {
	want := strings.ToLower(s)
	for i, name := range levelNames {
		if name == want {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	var widest Scope
	switch l {
	case LevelOff, LevelError:
		return false
	case LevelPhase:
		widest = ScopePass
	case LevelDetail:
		widest = ScopeUnit
	default:
		return true
	}
	return scope <= widest
}
