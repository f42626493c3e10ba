package harness

import (
	"errors"
	"fmt"

	"github.com/roach88/circegen/internal/parser"
	"github.com/roach88/circegen/internal/render"
)

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Parse the scenario input
//  2. If the parser rejects it, compare against expect.malformed and stop
//  3. Render the record with the scenario's key case
//  4. Check expectations and output invariants
//
// Run returns an error only when the scenario itself is unusable; failed
// expectations are reported through Result.
func Run(scenario *Scenario) (*Result, error) {
	opts, err := renderOptions(scenario)
	if err != nil {
		return nil, err
	}

	result := NewResult()

	rec, err := parser.Parse(scenario.Input)
	if err != nil {
		if !errors.Is(err, parser.ErrMalformedInput) {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		result.Malformed = true
		result.ParseError = err.Error()
		if !scenario.Expect.Malformed {
			result.AddError(fmt.Sprintf("unexpected parse failure: %v", err))
		}
		return result, nil
	}

	result.Record = rec
	result.Output = render.Render(rec, opts)

	if scenario.Expect.Malformed {
		result.AddError(fmt.Sprintf("expected malformed input, parsed record %q with %d field(s)", rec.Name, rec.Arity()))
	}
	for _, e := range assertRecord(scenario.Expect, rec) {
		result.AddError(e.Error())
	}
	for _, e := range assertRendered(rec, result.Output, opts) {
		result.AddError(e.Error())
	}

	return result, nil
}

func renderOptions(scenario *Scenario) (render.Options, error) {
	if scenario.KeyCase == "" {
		return render.Options{KeyCase: render.KeyVerbatim}, nil
	}
	kc, err := render.ParseKeyCase(scenario.KeyCase)
	if err != nil {
		return render.Options{}, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	return render.Options{KeyCase: kc}, nil
}
