package parser

import "strings"

// closers maps each tracked opening delimiter to its closer.
var closers = map[byte]byte{
	'(': ')',
	'[': ']',
	'{': '}',
}

func isCloser(c byte) bool {
	return c == ')' || c == ']' || c == '}'
}

// splitGroup scans src starting at i, which must be the first byte after an
// opening delimiter whose closer is want. It returns the index of the matching
// closer and the indexes of every comma found at nesting depth zero.
//
// String literals, char literals and backquoted identifiers are skipped so
// that delimiters inside them do not affect nesting.
func splitGroup(src string, i int, want byte) (int, []int, error) {
	var stack []byte
	var commas []int

	for i < len(src) {
		c := src[i]
		switch {
		case c == '"':
			j, err := skipString(src, i)
			if err != nil {
				return 0, nil, err
			}
			i = j
			continue
		case c == '`':
			end := strings.IndexByte(src[i+1:], '`')
			if end < 0 {
				return 0, nil, malformed(src, i, "unterminated backquoted identifier")
			}
			i += end + 2
			continue
		case c == '\'':
			i += charLiteralLen(src, i)
			continue
		case closers[c] != 0:
			stack = append(stack, closers[c])
		case isCloser(c):
			if len(stack) == 0 {
				if c == want {
					return i, commas, nil
				}
				return 0, nil, malformed(src, i, "mismatched %q, expected %q", c, want)
			}
			if top := stack[len(stack)-1]; top != c {
				return 0, nil, malformed(src, i, "mismatched %q, expected %q", c, top)
			}
			stack = stack[:len(stack)-1]
		case c == ',' && len(stack) == 0:
			commas = append(commas, i)
		}
		i++
	}

	return 0, nil, malformed(src, len(src), "unbalanced delimiters: missing %q", want)
}

// skipString returns the index just past the string literal starting at i.
// Both "..." and """...""" literals are recognized.
func skipString(src string, i int) (int, error) {
	if strings.HasPrefix(src[i:], `"""`) {
		end := strings.Index(src[i+3:], `"""`)
		if end < 0 {
			return 0, malformed(src, i, "unterminated string literal")
		}
		return i + 3 + end + 3, nil
	}

	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '"':
			return j + 1, nil
		}
	}
	return 0, malformed(src, i, "unterminated string literal")
}

// charLiteralLen returns the length of the char literal at i ('a' or '\n').
// A quote that does not start a char literal, such as a symbol literal,
// counts as a single byte.
func charLiteralLen(src string, i int) int {
	rest := src[i:]
	if len(rest) >= 4 && rest[1] == '\\' && rest[3] == '\'' {
		return 4
	}
	if len(rest) >= 3 && rest[1] != '\\' && rest[2] == '\'' {
		return 3
	}
	return 1
}

// splitAt cuts src[start:end] at the given comma positions.
func splitAt(src string, start, end int, commas []int) []chunk {
	chunks := make([]chunk, 0, len(commas)+1)
	from := start
	for _, c := range commas {
		chunks = append(chunks, chunk{text: src[from:c], offset: from})
		from = c + 1
	}
	return append(chunks, chunk{text: src[from:end], offset: from})
}

// chunk is a slice of the input together with its offset.
type chunk struct {
	text   string
	offset int
}

func (c chunk) blank() bool {
	return strings.TrimSpace(c.text) == ""
}
