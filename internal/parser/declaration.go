package parser

import (
	"strings"

	"github.com/roach88/circegen/internal/ir"
)

// Declaration renders rec back into a normalized single-line declaration.
// Parsing the result yields a record equal to rec.
func Declaration(rec *ir.Record) string {
	var b strings.Builder
	b.WriteString("case class ")
	b.WriteString(rec.Name)

	if rec.IsGeneric() {
		params := make([]string, len(rec.TypeParams))
		for i, tp := range rec.TypeParams {
			params[i] = typeParamString(tp)
		}
		b.WriteByte('[')
		b.WriteString(strings.Join(params, ", "))
		b.WriteByte(']')
	}

	fields := make([]string, len(rec.Fields))
	for i, f := range rec.Fields {
		fields[i] = f.Name + ": " + f.Type
		if f.Default != "" {
			fields[i] += " = " + f.Default
		}
	}
	b.WriteByte('(')
	b.WriteString(strings.Join(fields, ", "))
	b.WriteByte(')')

	return b.String()
}

func typeParamString(tp ir.TypeParam) string {
	s := tp.Variance + tp.Name
	switch {
	case tp.Bounds == "":
		return s
	case strings.HasPrefix(tp.Bounds, ":"), strings.HasPrefix(tp.Bounds, "["):
		return s + tp.Bounds
	default:
		return s + " " + tp.Bounds
	}
}
