// Package glob implements gtest-style benchmark selection filters.
//
// A filter has the form "positive[-negative]" where each side is a
// colon-separated list of wildcard patterns: '?' matches exactly one
// character and '*' matches any run of characters, including none.
package glob

import (
	"errors"
	"fmt"
	"strings"
)

// MaxPatternLength bounds the length of a filter accepted by ParseFilter.
const MaxPatternLength = 1024

// ErrPatternTooLong is returned for filters longer than MaxPatternLength.
var ErrPatternTooLong = errors.New("filter pattern too long")

// Filter is a parsed include/exclude filter.
type Filter struct {
	Positive string
	Negative string
}

// ParseFilter splits pattern at its first '-'. Without a '-' nothing is
// excluded; an empty positive part before the '-' selects everything.
func ParseFilter(pattern string) (Filter, error) {
	if len(pattern) > MaxPatternLength {
		return Filter{}, fmt.Errorf("%w: %d bytes (max %d)", ErrPatternTooLong, len(pattern), MaxPatternLength)
	}

	positive, negative, found := strings.Cut(pattern, "-")
	if found && positive == "" {
		positive = "*"
	}
	return Filter{Positive: positive, Negative: negative}, nil
}

// Includes reports whether name matches at least one positive pattern and
// no negative pattern.
func (f Filter) Includes(name string) bool {
	return MatchesFilter(f.Positive, name) && !matchesNegative(f.Negative, name)
}

func (f Filter) String() string {
	if f.Negative == "" {
		return f.Positive
	}
	return f.Positive + "-" + f.Negative
}

func matchesNegative(negative, name string) bool {
	if negative == "" {
		return false
	}
	return MatchesFilter(negative, name)
}

// MatchesFilter reports whether any ':'-separated pattern in patterns
// matches name.
func MatchesFilter(patterns, name string) bool {
	for {
		if MatchesPattern(patterns, name) {
			return true
		}
		i := strings.IndexByte(patterns, ':')
		if i < 0 {
			return false
		}
		patterns = patterns[i+1:]
	}
}

// MatchesPattern matches a single pattern against name. The pattern ends at
// the end of the string or at the first ':'.
func MatchesPattern(pattern, name string) bool {
	if pattern == "" || pattern[0] == ':' {
		return name == ""
	}

	switch pattern[0] {
	case '?':
		return name != "" && MatchesPattern(pattern[1:], name[1:])
	case '*':
		return (name != "" && MatchesPattern(pattern, name[1:])) ||
			MatchesPattern(pattern[1:], name)
	default:
		return name != "" && pattern[0] == name[0] && MatchesPattern(pattern[1:], name[1:])
	}
}
