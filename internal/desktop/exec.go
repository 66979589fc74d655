package desktop

import (
	"errors"
	"strings"
)

// ErrUnterminatedQuote is returned by SplitWords for an exec line with an
// unbalanced quote.
var ErrUnterminatedQuote = errors.New("unterminated quote in exec line")

// StripFieldCodes removes freedesktop Exec field codes (%f, %F, %u, %U, %i,
// %c, %k and the deprecated %d/%D/%n/%N/%v/%m) from an exec line. A launcher
// with no file or URL to hand over expands them all to nothing. %% unescapes
// to a literal percent. Surrounding whitespace left behind by a removed code
// is collapsed.
func StripFieldCodes(exec string) string {
	var b strings.Builder
	b.Grow(len(exec))
	for i := 0; i < len(exec); i++ {
		if exec[i] != '%' {
			b.WriteByte(exec[i])
			continue
		}
		if i+1 >= len(exec) {
			break // trailing bare %, drop it
		}
		i++
		if exec[i] == '%' {
			b.WriteByte('%')
		}
		// Any other code expands to nothing.
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// SplitWords splits an exec line into argv words following shell quoting
// rules: double quotes group words and honor backslash escapes, single
// quotes group words verbatim.
func SplitWords(s string) ([]string, error) {
	var (
		words []string
		cur   strings.Builder
		have  bool
	)
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			if have {
				words = append(words, cur.String())
				cur.Reset()
				have = false
			}
			i++
		case c == '\'':
			end := strings.IndexByte(s[i+1:], '\'')
			if end < 0 {
				return nil, ErrUnterminatedQuote
			}
			cur.WriteString(s[i+1 : i+1+end])
			have = true
			i += end + 2
		case c == '"':
			i++
			closed := false
			for i < len(s) {
				if s[i] == '\\' && i+1 < len(s) {
					cur.WriteByte(s[i+1])
					i += 2
					continue
				}
				if s[i] == '"' {
					closed = true
					i++
					break
				}
				cur.WriteByte(s[i])
				i++
			}
			if !closed {
				return nil, ErrUnterminatedQuote
			}
			have = true
		case c == '\\' && i+1 < len(s):
			cur.WriteByte(s[i+1])
			have = true
			i += 2
		default:
			cur.WriteByte(c)
			have = true
			i++
		}
	}
	if have {
		words = append(words, cur.String())
	}
	return words, nil
}
