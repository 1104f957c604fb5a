package memspy

import (
	"fmt"
	"strings"
)

// PatternToken is one position in a [Pattern]: either a wildcard matching
// any byte, or a set of admissible bytes. The textual grammar in
// CompilePattern only ever produces singleton sets or wildcards, but the
// token model itself supports multi-byte sets so a future grammar (e.g.
// hex alternation like "[41|61]") can be added without touching the
// scanner.
type PatternToken struct {
	wildcard bool
	set      [256]bool
}

// Wildcard matches any byte.
func Wildcard() PatternToken {
	return PatternToken{wildcard: true}
}

// ByteToken matches exactly the one byte b.
func ByteToken(b byte) PatternToken {
	var t PatternToken
	t.set[b] = true
	return t
}

// Matches reports whether b satisfies this token.
func (t PatternToken) Matches(b byte) bool {
	return t.wildcard || t.set[b]
}

// Pattern is a compiled, ordered sequence of [PatternToken]; its length in
// tokens equals its match window length in bytes.
type Pattern struct {
	tokens []PatternToken
}

// Len returns the pattern's match window length in bytes.
func (p Pattern) Len() int {
	return len(p.tokens)
}

// Matches reports whether window (len(window) == p.Len()) satisfies every
// token in order. Callers are expected to have already bounds-checked
// window's length; a mismatched length always returns false.
func (p Pattern) Matches(window []byte) bool {
	if len(window) != len(p.tokens) {
		return false
	}
	for i, t := range p.tokens {
		if !t.Matches(window[i]) {
			return false
		}
	}
	return true
}

// CompilePattern parses a whitespace-separated textual pattern into a
// [Pattern]. Each token is either the literal "??" (wildcard) or two
// case-insensitive hex digits (a concrete byte). An empty or all-whitespace
// input compiles successfully to a zero-length pattern, which matches
// nothing (see scan edge policy). Any other malformed token returns
// [ErrMalformedPattern].
func CompilePattern(text string) (Pattern, error) {
	fields := strings.Fields(text)
	tokens := make([]PatternToken, 0, len(fields))

	for _, f := range fields {
		if f == "??" {
			tokens = append(tokens, Wildcard())
			continue
		}

		b, err := parseHexByte(f)
		if err != nil {
			return Pattern{}, fmt.Errorf("token %q: %w: %v", f, ErrMalformedPattern, err)
		}
		tokens = append(tokens, ByteToken(b))
	}

	return Pattern{tokens: tokens}, nil
}

func parseHexByte(tok string) (byte, error) {
	if len(tok) != 2 {
		return 0, fmt.Errorf("expected 2 hex digits, got %d characters", len(tok))
	}

	hi, err := hexNibble(tok[0])
	if err != nil {
		return 0, err
	}
	lo, err := hexNibble(tok[1])
	if err != nil {
		return 0, err
	}

	return hi<<4 | lo, nil
}

func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, fmt.Errorf("invalid hex digit %q", c)
	}
}
