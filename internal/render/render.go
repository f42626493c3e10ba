// Package render turns an ir.Record into a Scala companion object holding
// circe Encoder and Decoder instances built with forProductN.
//
// For a record with N fields the encoder and decoder both list the N field
// names, in declaration order, as external JSON keys:
//
//	object Person {
//	  implicit lazy val encoder: Encoder[Person] = Encoder.forProduct2("age", "favoriteFood")(a => (a.age, a.favoriteFood))
//
//	  implicit lazy val decoder: Decoder[Person] = Decoder.forProduct2("age", "favoriteFood")(Person.apply)
//	}
package render

import (
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/roach88/circegen/internal/ir"
)

//go:embed templates/companion.tmpl
var companionSource string

// KeyCase selects how field names are turned into external keys.
type KeyCase string

const (
	// KeyVerbatim uses field names unchanged.
	KeyVerbatim KeyCase = "verbatim"
	// KeySnake converts camelCase field names to snake_case.
	KeySnake KeyCase = "snake"
	// KeyKebab converts camelCase field names to kebab-case.
	KeyKebab KeyCase = "kebab"
)

// ValidKeyCases lists the accepted KeyCase values.
var ValidKeyCases = []KeyCase{KeyVerbatim, KeySnake, KeyKebab}

// ParseKeyCase validates a key case name.
func ParseKeyCase(s string) (KeyCase, error) {
	for _, kc := range ValidKeyCases {
		if string(kc) == s {
			return kc, nil
		}
	}
	return "", fmt.Errorf("invalid key case %q: must be one of %v", s, ValidKeyCases)
}

// Options controls rendering.
type Options struct {
	KeyCase KeyCase // defaults to KeyVerbatim
}

// Render produces the companion object for rec. The result has no trailing
// newline. Rendering cannot fail for a record produced by the parser.
func Render(rec *ir.Record, opts Options) string {
	tmpl := template.Must(template.New("companion").
		Funcs(funcMap(opts)).
		Parse(companionSource))

	var b strings.Builder
	if err := tmpl.Execute(&b, rec); err != nil {
		// The template is fixed and only reads fields of rec.
		panic(fmt.Sprintf("render: executing companion template: %v", err))
	}

	slog.Debug("record rendered", "name", rec.Name, "arity", rec.Arity(), "key_case", keyCase(opts))

	return strings.TrimRight(b.String(), "\n")
}

func keyCase(opts Options) KeyCase {
	if opts.KeyCase == "" {
		return KeyVerbatim
	}
	return opts.KeyCase
}

// funcMap extends sprig's text functions with the helpers the companion
// template needs.
func funcMap(opts Options) template.FuncMap {
	fm := sprig.TxtFuncMap()

	key := func(s string) string { return s }
	switch keyCase(opts) {
	case KeySnake:
		key = fm["snakecase"].(func(string) string)
	case KeyKebab:
		key = fm["kebabcase"].(func(string) string)
	}
	fm["key"] = key

	fm["binding"] = binding
	fm["fullName"] = fullName
	fm["applyParams"] = applyParams
	fm["typeParams"] = contextBounds
	return fm
}

// binding is "def" for generic records, whose instances need their own
// implicit parameters, and "lazy val" otherwise.
func binding(rec *ir.Record) string {
	if rec.IsGeneric() {
		return "def"
	}
	return "lazy val"
}

// applyParams returns "[A, B]" for generic records and "" otherwise.
func applyParams(rec *ir.Record) string {
	if !rec.IsGeneric() {
		return ""
	}
	return "[" + strings.Join(rec.TypeParamNames(), ", ") + "]"
}

// fullName returns the record name with its type parameters applied.
func fullName(rec *ir.Record) string {
	return rec.Name + applyParams(rec)
}

// contextBounds returns "[A: bound, B: bound]" for generic records.
func contextBounds(rec *ir.Record, bound string) string {
	if !rec.IsGeneric() {
		return ""
	}
	params := make([]string, len(rec.TypeParams))
	for i, name := range rec.TypeParamNames() {
		params[i] = name + ": " + bound
	}
	return "[" + strings.Join(params, ", ") + "]"
}
