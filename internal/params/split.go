package params

import "strings"

type quoting int

const (
	unquoted quoting = iota
	singleQuoted
	doubleQuoted
)

// scanner tracks bracket nesting and quoting over a byte stream. The nesting
// counter is shared by all bracket kinds and never goes negative.
type scanner struct {
	depth   int
	state   quoting
	escaped bool
}

// topLevel consumes c and reports whether it sits outside any quote or
// bracket. Opening brackets, quotes and closing brackets that close a nesting
// level are never top level.
func (s *scanner) topLevel(c byte) bool {
	if s.state != unquoted {
		switch {
		case s.escaped:
			s.escaped = false
		case c == '\\':
			s.escaped = true
		case s.state == doubleQuoted && c == '"', s.state == singleQuoted && c == '\'':
			s.state = unquoted
		}
		return false
	}

	switch c {
	case '"':
		s.state, s.escaped = doubleQuoted, false
		return false
	case '\'':
		s.state, s.escaped = singleQuoted, false
		return false
	case '<', '(', '[', '{':
		s.depth++
		return false
	case '>', ')', ']', '}':
		if s.depth > 0 {
			s.depth--
			return false
		}
	}
	return s.depth == 0
}

type token struct {
	text  string
	start int
}

// splitList splits a parenthesised, comma separated list at top-level commas.
// It returns the trimmed tokens and the list body; each token's start indexes
// into body, which ends just before the closing parenthesis.
func splitList(raw string) ([]token, string) {
	i := 0
	for i < len(raw) && isSpace(raw[i]) {
		i++
	}
	if i < len(raw) && raw[i] == '(' {
		i++
	}

	var (
		sc     scanner
		tokens []token
		start  = i
		end    = len(raw)
	)
	for ; i < len(raw); i++ {
		c := raw[i]
		if !sc.topLevel(c) || (c != ',' && c != ')') {
			continue
		}
		tokens = append(tokens, token{text: trim(raw[start:i]), start: start})
		start = i + 1
		if c == ')' {
			end = i
			break
		}
	}

	// Tolerate a missing closing parenthesis.
	if end == len(raw) && start <= len(raw) && (len(tokens) > 0 || trim(raw[start:]) != "") {
		tokens = append(tokens, token{text: trim(raw[start:]), start: start})
	}

	if len(tokens) == 1 && tokens[0].text == "" {
		return nil, raw[:end]
	}
	return tokens, raw[:end]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func trim(s string) string {
	return strings.Trim(s, " \t\r\n")
}
