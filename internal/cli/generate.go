package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/circegen/internal/ir"
	"github.com/roach88/circegen/internal/parser"
	"github.com/roach88/circegen/internal/render"
)

// GenerateResult is the JSON payload of a successful generation.
type GenerateResult struct {
	Record *ir.Record `json:"record"`
	Output string     `json:"output"`
}

// runGenerate reads one declaration from stdin and writes the companion
// object followed by a newline. In text format nothing else is written to
// stdout.
func runGenerate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	renderOpts, err := opts.renderOptions()
	if err != nil {
		return outputCommandError(formatter, ErrCodeGeneric, err.Error())
	}

	rec, err := readRecord(formatter, cmd)
	if err != nil {
		return err
	}

	out := render.Render(rec, renderOpts)
	formatter.VerboseLog("Rendered %s with %d key(s)", rec.Name, rec.Arity())

	if opts.Format == "json" {
		return formatter.Success(GenerateResult{Record: rec, Output: out})
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// readRecord reads and parses the declaration on stdin, reporting failures
// through formatter.
func readRecord(formatter *OutputFormatter, cmd *cobra.Command) (*ir.Record, error) {
	line, err := readLine(cmd.InOrStdin())
	if err != nil {
		return nil, outputCommandError(formatter, ErrCodeReadFailed, err.Error())
	}

	rec, err := parser.Parse(line)
	if err != nil {
		return nil, outputParseError(formatter, err)
	}
	return rec, nil
}

// outputParseError reports a parser failure. Malformed input exits with
// ExitFailure and shows the offending input.
func outputParseError(formatter *OutputFormatter, err error) error {
	var malformed *parser.MalformedInputError
	if errors.As(err, &malformed) {
		var details any = "input: " + malformed.Input
		if formatter.Format == "json" {
			d := map[string]any{"input": malformed.Input}
			if malformed.Offset >= 0 {
				d["offset"] = malformed.Offset
			}
			details = d
		}
		_ = formatter.Error(ErrCodeMalformedInput, malformed.Error(), details)
		return WrapExitError(ExitFailure, ErrCodeMalformedInput, err)
	}

	_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitFailure, ErrCodeGeneric, err)
}

// outputCommandError reports a command-level error (exit code 2).
func outputCommandError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}
