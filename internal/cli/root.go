package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/circegen/internal/render"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	KeyCase string // "verbatim" | "snake" | "kebab"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// renderOptions converts the global flags into renderer options. KeyCase is
// validated in PersistentPreRunE, so the error only surfaces when a
// subcommand is executed on its own.
func (o *RootOptions) renderOptions() (render.Options, error) {
	if o.KeyCase == "" {
		return render.Options{KeyCase: render.KeyVerbatim}, nil
	}
	kc, err := render.ParseKeyCase(o.KeyCase)
	if err != nil {
		return render.Options{}, err
	}
	return render.Options{KeyCase: kc}, nil
}

// NewRootCommand creates the root command for the circegen CLI. Run without
// a subcommand it reads one declaration from stdin and writes its companion
// object to stdout.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "circegen",
		Short: "circegen - circe codecs for Scala case classes",
		Long: `Generate circe Encoder and Decoder instances for a Scala case class.

Reads one declaration from stdin, such as

  case class Person(age: Int, favoriteFood: Food)

and writes a companion object using forProductN with one key per field,
in declaration order.

Exit codes:
  0 - Companion object written
  1 - Malformed input
  2 - Command error (bad flags, unreadable stdin)

Examples:
  echo 'case class Person(age: Int, name: String)' | circegen
  echo 'case class Person(age: Int, favoriteFood: Food)' | circegen --key-case snake`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if _, err := render.ParseKeyCase(opts.KeyCase); err != nil {
				return err
			}
			setupLogging(cmd, opts)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.KeyCase, "key-case", string(render.KeyVerbatim), "external key style (verbatim|snake|kebab)")

	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// Run executes the CLI with the given arguments and streams and returns the
// process exit code. Commands report their own failures; errors raised by
// cobra itself, such as unknown flags, are printed here.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return GetExitCode(err)
}

// setupLogging installs the default slog logger on the command's stderr.
// Only warnings are shown unless --verbose is set.
func setupLogging(cmd *cobra.Command, opts *RootOptions) {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// newFormatter builds the output formatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
