package harness

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/circegen/internal/ir"
	"github.com/roach88/circegen/internal/render"
)

// AssertionError is returned when an expectation or invariant fails.
type AssertionError struct {
	Type     string // what was checked, e.g. "fields"
	Expected string // human-readable expected outcome
	Actual   string // human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

// assertRecord checks the parsed record against the scenario expectations.
func assertRecord(expect Expect, rec *ir.Record) []error {
	var errs []error

	if expect.Name != "" && expect.Name != rec.Name {
		errs = append(errs, &AssertionError{
			Type:     "name",
			Expected: strconv.Quote(expect.Name),
			Actual:   strconv.Quote(rec.Name),
		})
	}

	check := func(kind string, want, got []string) {
		if want != nil && !slices.Equal(want, got) {
			errs = append(errs, &AssertionError{
				Type:     kind,
				Expected: fmt.Sprintf("%q", want),
				Actual:   fmt.Sprintf("%q", got),
			})
		}
	}

	types := make([]string, len(rec.Fields))
	for i, f := range rec.Fields {
		types[i] = f.Type
	}

	check("fields", expect.Fields, rec.FieldNames())
	check("types", expect.Types, types)
	check("type_params", expect.TypeParams, rec.TypeParamNames())

	return errs
}

// assertRendered checks the invariants every rendered companion object must
// satisfy, independent of the scenario: it is named after the record, both
// codecs use forProductN with N the field count, and the keys follow the
// field declaration order.
func assertRendered(rec *ir.Record, out string, opts render.Options) []error {
	var errs []error

	header := "object " + rec.Name + " {"
	if !strings.HasPrefix(out, header) {
		errs = append(errs, &AssertionError{
			Type:     "companion",
			Expected: strconv.Quote(header),
			Actual:   strconv.Quote(firstLine(out)),
		})
	}

	keys := renderedKeys(rec, opts)
	for _, codec := range []string{"Encoder", "Decoder"} {
		want := fmt.Sprintf("%s.forProduct%d(%s)", codec, rec.Arity(), keys)
		if !strings.Contains(out, want) {
			errs = append(errs, &AssertionError{
				Type:     strings.ToLower(codec),
				Expected: strconv.Quote(want),
				Actual:   "not found in output",
			})
		}
	}

	apply := rec.Name + ".apply"
	if !strings.Contains(out, apply) {
		errs = append(errs, &AssertionError{
			Type:     "constructor",
			Expected: strconv.Quote(apply),
			Actual:   "not found in output",
		})
	}

	return errs
}

// renderedKeys renders the key list of rec alone, using a single-field view
// per key so that the comparison does not depend on the template layout.
func renderedKeys(rec *ir.Record, opts render.Options) string {
	keys := make([]string, len(rec.Fields))
	for i, f := range rec.Fields {
		one := render.Render(&ir.Record{Name: rec.Name, Fields: []ir.Field{f}}, opts)
		keys[i] = between(one, "forProduct1(", ")")
	}
	return strings.Join(keys, ", ")
}

// between returns the text of s between the first start marker and the next
// end marker.
func between(s, start, end string) string {
	_, rest, ok := strings.Cut(s, start)
	if !ok {
		return ""
	}
	inner, _, _ := strings.Cut(rest, end)
	return inner
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
