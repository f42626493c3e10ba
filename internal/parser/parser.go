// Package parser turns a one-line case class declaration into an ir.Record.
//
// The parser is a depth-tracking scanner rather than a single regular
// expression, so type expressions may nest brackets and parentheses freely:
//
//	case class Nested(items: List[Pair[Int, String]])
//
// yields exactly one field whose type is "List[Pair[Int, String]]".
package parser

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/roach88/circegen/internal/ir"
)

// declarationKeywords may precede the record name but are never a name.
var declarationKeywords = map[string]bool{
	"case":     true,
	"class":    true,
	"final":    true,
	"sealed":   true,
	"abstract": true,
	"private":  true,
	"object":   true,
	"trait":    true,
}

// fieldModifiers may precede a field name and are dropped.
var fieldModifiers = map[string]bool{
	"val":       true,
	"var":       true,
	"private":   true,
	"protected": true,
	"override":  true,
	"final":     true,
	"implicit":  true,
	"lazy":      true,
}

// Parse extracts the record name, type parameters and ordered fields from a
// declaration such as
//
//	case class Something(number: Int, whatever: String)
//
// Line breaks are flattened before parsing, so a declaration spread over
// several lines parses the same as its single-line form. Every failure is a
// *MalformedInputError; no partial record is ever returned.
func Parse(input string) (*ir.Record, error) {
	src := flatten(input)

	open, err := findParamList(src)
	if err != nil {
		return nil, err
	}

	name, typeParams, err := parseHead(src, open)
	if err != nil {
		return nil, err
	}

	end, commas, err := splitGroup(src, open+1, ')')
	if err != nil {
		return nil, err
	}

	if err := checkTail(src, end+1); err != nil {
		return nil, err
	}

	fields, err := parseFields(src, splitAt(src, open+1, end, commas))
	if err != nil {
		return nil, err
	}

	rec := &ir.Record{
		Name:       name,
		TypeParams: typeParams,
		Fields:     fields,
	}

	slog.Debug("record parsed",
		"name", rec.Name,
		"fields", rec.Arity(),
		"type_params", len(rec.TypeParams))

	return rec, nil
}

// flatten joins physical lines into one logical line.
func flatten(input string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(input)
}

// findParamList returns the index of the first opening parenthesis outside
// any bracket group.
func findParamList(src string) (int, error) {
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '(':
			return i, nil
		case '[':
			end, _, err := splitGroup(src, i+1, ']')
			if err != nil {
				return 0, err
			}
			i = end
		case ')', ']', '}':
			return 0, malformed(src, i, "unexpected %q before parameter list", src[i])
		}
	}
	return 0, malformed(src, -1, "no parameter list found")
}

// parseHead reads the record name and optional type parameter clause that
// precede the parameter list at open.
func parseHead(src string, open int) (string, []ir.TypeParam, error) {
	head := strings.TrimRightFunc(src[:open], unicode.IsSpace)

	var typeParams []ir.TypeParam
	if strings.HasSuffix(head, "]") {
		lb := matchingBracket(head)
		if lb < 0 {
			return "", nil, malformed(src, len(head)-1, "unbalanced type parameter clause")
		}
		var err error
		typeParams, err = parseTypeParams(src, lb)
		if err != nil {
			return "", nil, err
		}
		head = strings.TrimRightFunc(head[:lb], unicode.IsSpace)
	}

	tokens := strings.Fields(head)
	if len(tokens) == 0 || declarationKeywords[tokens[len(tokens)-1]] {
		return "", nil, malformed(src, open, "record name is empty")
	}
	name := tokens[len(tokens)-1]
	if !isIdentifier(name) {
		return "", nil, malformed(src, len(head)-len(name), "record name %q is not an identifier", name)
	}

	return name, typeParams, nil
}

// matchingBracket returns the index of the '[' matching the final ']' of s.
func matchingBracket(s string) int {
	depth := 0
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case ']':
			depth++
		case '[':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseTypeParams parses the bracket group starting at lb.
func parseTypeParams(src string, lb int) ([]ir.TypeParam, error) {
	rb, commas, err := splitGroup(src, lb+1, ']')
	if err != nil {
		return nil, err
	}

	var params []ir.TypeParam
	for _, c := range splitAt(src, lb+1, rb, commas) {
		if c.blank() {
			return nil, malformed(src, c.offset, "empty type parameter")
		}
		params = append(params, parseTypeParam(c))
	}
	for i, tp := range params {
		if tp.Name == "" {
			return nil, malformed(src, lb+1, "type parameter %d has no name", i+1)
		}
	}
	return params, nil
}

// parseTypeParam splits "+A <: B" into variance, name and bounds.
func parseTypeParam(c chunk) ir.TypeParam {
	text := strings.TrimSpace(c.text)

	var tp ir.TypeParam
	if text != "" && (text[0] == '+' || text[0] == '-') {
		tp.Variance = text[:1]
		text = strings.TrimSpace(text[1:])
	}

	n := identPrefixLen(text)
	tp.Name = text[:n]
	tp.Bounds = strings.TrimSpace(text[n:])
	return tp
}

// checkTail rejects a second parameter list and stray delimiters after the
// first one. Other trailing text such as an extends clause is ignored.
func checkTail(src string, from int) error {
	tail := strings.TrimLeftFunc(src[from:], unicode.IsSpace)
	if strings.HasPrefix(tail, "(") {
		return malformed(src, len(src)-len(tail), "multiple parameter lists are not supported")
	}

	for i := from; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '"':
			j, err := skipString(src, i)
			if err != nil {
				return err
			}
			i = j - 1
		case closers[c] != 0:
			end, _, err := splitGroup(src, i+1, closers[c])
			if err != nil {
				return err
			}
			i = end
		case isCloser(c):
			return malformed(src, i, "unbalanced delimiters: unexpected %q", c)
		}
	}
	return nil
}

// parseFields turns each comma-delimited chunk into a field. A single
// trailing comma is accepted; any other empty chunk is an error.
func parseFields(src string, chunks []chunk) ([]ir.Field, error) {
	if len(chunks) == 1 && chunks[0].blank() {
		return []ir.Field{}, nil
	}
	if len(chunks) > 1 && chunks[len(chunks)-1].blank() {
		chunks = chunks[:len(chunks)-1]
	}

	fields := make([]ir.Field, 0, len(chunks))
	for _, c := range chunks {
		if c.blank() {
			return nil, malformed(src, c.offset, "empty field")
		}
		f, err := parseField(src, c)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// parseField splits "name: Type = default" on the first colon.
func parseField(src string, c chunk) (ir.Field, error) {
	colon := topLevelIndex(c.text, func(s string, i int) bool { return s[i] == ':' })
	if colon < 0 {
		return ir.Field{}, malformed(src, c.offset, "field %q has no ':'", strings.TrimSpace(c.text))
	}

	name, err := fieldName(src, c, c.text[:colon])
	if err != nil {
		return ir.Field{}, err
	}

	typ := c.text[colon+1:]
	var def string
	if eq := topLevelIndex(typ, isDefaultAssign); eq >= 0 {
		def = strings.TrimSpace(typ[eq+1:])
		typ = typ[:eq]
		if def == "" {
			return ir.Field{}, malformed(src, c.offset+colon+1+eq, "field %q has an empty default value", name)
		}
	}

	typ = strings.TrimSpace(typ)
	if typ == "" {
		return ir.Field{}, malformed(src, c.offset+colon, "field %q has no type", name)
	}

	return ir.Field{Name: name, Type: typ, Default: def}, nil
}

// fieldName strips annotations and modifiers from the text before the colon
// and returns the remaining name. Backquoted names are kept with their quotes.
func fieldName(src string, c chunk, text string) (string, error) {
	text = stripAnnotations(strings.TrimSpace(text))

	var name string
	if len(text) > 1 && strings.HasSuffix(text, "`") {
		if start := strings.LastIndexByte(text[:len(text)-1], '`'); start >= 0 {
			name = text[start:]
			text = text[:start]
		}
	}

	tokens := strings.Fields(text)
	if name == "" {
		if len(tokens) == 0 {
			return "", malformed(src, c.offset, "empty field name")
		}
		name = tokens[len(tokens)-1]
		tokens = tokens[:len(tokens)-1]
	}

	for _, tok := range tokens {
		if !fieldModifiers[tok] {
			return "", malformed(src, c.offset, "field name %q is not an identifier",
				strings.TrimSpace(strings.Join(append(tokens, name), " ")))
		}
	}
	return name, nil
}

// stripAnnotations removes leading annotations such as @deprecated("x").
func stripAnnotations(text string) string {
	for strings.HasPrefix(text, "@") {
		i := 1
		for i < len(text) && (isIdentRune(rune(text[i])) || text[i] == '.') {
			i++
		}
		if i < len(text) && text[i] == '(' {
			end, _, err := splitGroup(text, i+1, ')')
			if err != nil {
				return text
			}
			i = end + 1
		}
		text = strings.TrimSpace(text[i:])
	}
	return text
}

// topLevelIndex returns the first index i in s outside any delimiter group,
// string literal or backquoted identifier for which match(s, i) holds.
func topLevelIndex(s string, match func(string, int) bool) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			j, err := skipString(s, i)
			if err != nil {
				return -1
			}
			i = j - 1
			continue
		case c == '`':
			end := strings.IndexByte(s[i+1:], '`')
			if end < 0 {
				return -1
			}
			i += end + 1
			continue
		case c == '\'':
			i += charLiteralLen(s, i) - 1
			continue
		case closers[c] != 0:
			depth++
			continue
		case isCloser(c):
			depth--
			continue
		}
		if depth == 0 && match(s, i) {
			return i
		}
	}
	return -1
}

// isDefaultAssign reports whether s[i] is a lone '=' introducing a default
// value, as opposed to part of "=>", "==", "<=", ">=" or "!=".
func isDefaultAssign(s string, i int) bool {
	if s[i] != '=' {
		return false
	}
	if i+1 < len(s) && (s[i+1] == '>' || s[i+1] == '=') {
		return false
	}
	if i > 0 && strings.IndexByte("<>!=:", s[i-1]) >= 0 {
		return false
	}
	return true
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// identPrefixLen returns the byte length of the identifier at the start of s.
func identPrefixLen(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !isIdentRune(r) || (n == 0 && unicode.IsDigit(r)) {
			break
		}
		n += size
	}
	return n
}

// isIdentifier reports whether s is a plain identifier.
func isIdentifier(s string) bool {
	return s != "" && identPrefixLen(s) == len(s)
}
