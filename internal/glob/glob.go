// Package glob compiles wildcard patterns into anchored regular expressions.
//
// Supported syntax:
//
//	**      any sequence, including path separators ("**/" also matches nothing)
//	*       any sequence without a path separator
//	?       exactly one character other than a path separator
//	[...]   character class, contents passed through to the regexp engine
//	{a,b}   alternation; commas separate branches only inside braces
//
// Regular-expression metacharacters . ^ $ ( ) | + \ and the separator are
// escaped and match themselves. A comma outside any brace group is literal,
// and so is an unmatched closing brace.
//
// The compiled Matcher accepts a candidate only when the entire string
// satisfies the pattern.
package glob

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Separator is the path separator excluded by * and ?
const Separator = '/'

var (
	// ErrUnclosedBracket is returned when a character class is never closed
	ErrUnclosedBracket = errors.New("unclosed '['")
	// ErrUnclosedBrace is returned when an alternation group is never closed
	ErrUnclosedBrace = errors.New("unclosed '{'")
)

// PatternError reports a wildcard pattern that cannot be compiled
type PatternError struct {
	Pattern string
	Offset  int // Byte offset of the offending character, -1 when unknown
	Err     error
}

func (e *PatternError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("invalid pattern %q at offset %d: %v", e.Pattern, e.Offset, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// Matcher tests names against a compiled wildcard pattern
type Matcher struct {
	pattern string
	re      *regexp.Regexp
}

// Compile translates pattern and compiles the resulting expression
func Compile(pattern string) (*Matcher, error) {
	expr, err := Translate(pattern)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Offset: -1, Err: err}
	}
	return &Matcher{pattern: pattern, re: re}, nil
}

// Match reports whether name satisfies the whole pattern
func (m *Matcher) Match(name string) bool {
	return m.re.MatchString(name)
}

// Pattern returns the source wildcard pattern
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Regexp returns the translated expression
func (m *Matcher) Regexp() string {
	return m.re.String()
}

// Translate converts a wildcard pattern into an anchored regular expression.
// It validates bracket and brace balance but leaves class contents to the
// regexp compiler.
func Translate(pattern string) (string, error) {
	var b strings.Builder
	b.Grow(len(pattern)*2 + 2)
	b.WriteByte('^')

	var braces []int // offsets of open '{'
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				i++
				if i+1 < len(pattern) && pattern[i+1] == Separator {
					i++
					b.WriteString("(?:.*/)?")
				} else {
					b.WriteString(".*")
				}
			} else {
				b.WriteString("[^/]*")
			}
		case '?':
			b.WriteString("[^/]")
		case '[':
			end, err := classEnd(pattern, i)
			if err != nil {
				return "", err
			}
			if pattern[i+1] == '!' {
				b.WriteString("[^")
				b.WriteString(pattern[i+2 : end+1])
			} else {
				b.WriteString(pattern[i : end+1])
			}
			i = end
		case '{':
			braces = append(braces, i)
			b.WriteString("(?:")
		case '}':
			if len(braces) == 0 {
				b.WriteString(`\}`)
				continue
			}
			braces = braces[:len(braces)-1]
			b.WriteByte(')')
		case ',':
			if len(braces) > 0 {
				b.WriteByte('|')
			} else {
				b.WriteByte(',')
			}
		case '.', '^', '$', '(', ')', '|', '+', '\\', Separator:
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}

	if len(braces) > 0 {
		return "", &PatternError{Pattern: pattern, Offset: braces[len(braces)-1], Err: ErrUnclosedBrace}
	}

	b.WriteByte('$')
	return b.String(), nil
}

// classEnd returns the offset of the ']' closing the class opened at start.
// A ']' directly after '[', '[^' or '[!' is a member of the class. Backslash
// escapes are skipped.
func classEnd(pattern string, start int) (int, error) {
	i := start + 1
	if i < len(pattern) && (pattern[i] == '^' || pattern[i] == '!') {
		i++
	}
	if i < len(pattern) && pattern[i] == ']' {
		i++
	}
	for ; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case ']':
			return i, nil
		}
	}
	return 0, &PatternError{Pattern: pattern, Offset: start, Err: ErrUnclosedBracket}
}
