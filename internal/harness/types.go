package harness

import "github.com/roach88/circegen/internal/ir"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: no expectation or invariant failed.
	Pass bool `json:"pass"`

	// Record is the parsed record. Nil when the input was malformed.
	Record *ir.Record `json:"record,omitempty"`

	// Output is the rendered companion object without trailing newline.
	Output string `json:"output,omitempty"`

	// Malformed reports that the parser rejected the input.
	Malformed bool `json:"malformed"`

	// ParseError holds the parser's message when Malformed is true.
	ParseError string `json:"parse_error,omitempty"`

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
