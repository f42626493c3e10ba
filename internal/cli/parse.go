package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/circegen/internal/ir"
	"github.com/roach88/circegen/internal/parser"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Show the record parsed from stdin",
		Long: `Parse one declaration from stdin and print the record it describes.

Text output lists the name, type parameters and fields. JSON output is
canonical (sorted keys, no insignificant whitespace) and includes a
fingerprint that only changes when the parsed record changes.

Examples:
  echo 'case class Pair[A](left: A, right: A)' | circegen parse
  echo 'case class Pair[A](left: A, right: A)' | circegen parse --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, cmd)
		},
	}

	return cmd
}

func runParse(opts *ParseOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	rec, err := readRecord(formatter, cmd)
	if err != nil {
		return err
	}

	fingerprint, err := ir.RecordHash(rec)
	if err != nil {
		return outputCommandError(formatter, ErrCodeGeneric, err.Error())
	}
	formatter.VerboseLog("Fingerprint %s", fingerprint)

	if opts.Format == "json" {
		data, err := ir.MarshalCanonical(map[string]any{
			"status": "ok",
			"data": map[string]any{
				"record":      rec.Canonical(),
				"fingerprint": fingerprint,
			},
		})
		if err != nil {
			return outputCommandError(formatter, ErrCodeGeneric, err.Error())
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	return writeRecordText(cmd.OutOrStdout(), rec, fingerprint)
}

// writeRecordText prints rec as an aligned, human-readable listing.
func writeRecordText(w io.Writer, rec *ir.Record, fingerprint string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Record: %s\n", rec.Name)
	if rec.IsGeneric() {
		fmt.Fprintf(&b, "Type parameters: %s\n", strings.Join(rec.TypeParamNames(), ", "))
	}

	fmt.Fprintf(&b, "Fields (%d):\n", rec.Arity())
	width := 0
	for _, f := range rec.Fields {
		width = max(width, len(f.Name))
	}
	for _, f := range rec.Fields {
		fmt.Fprintf(&b, "  %-*s  %s", width, f.Name, f.Type)
		if f.Default != "" {
			fmt.Fprintf(&b, " = %s", f.Default)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Declaration: %s\n", parser.Declaration(rec))
	fmt.Fprintf(&b, "Fingerprint: %s\n", fingerprint)

	_, err := io.WriteString(w, b.String())
	return err
}
