package harness

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/roach88/circegen/internal/render"
)

//go:embed schema.cue
var schemaSource string

// Scenario defines a conformance scenario: one declaration and what parsing
// and rendering it must produce.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is the declaration fed to the parser, as it would arrive on stdin.
	Input string `yaml:"input"`

	// KeyCase selects the key style for rendering. Empty means verbatim.
	KeyCase string `yaml:"key_case,omitempty"`

	// Expect lists the expected parse results.
	Expect Expect `yaml:"expect"`

	// Golden enables byte-for-byte comparison of the rendered output.
	Golden bool `yaml:"golden,omitempty"`
}

// Expect specifies expected parse results. Nil slices are not checked; an
// empty slice asserts that there are none.
type Expect struct {
	// Name is the expected record name.
	Name string `yaml:"name,omitempty"`

	// Fields are the expected field names, in order.
	Fields []string `yaml:"fields,omitempty"`

	// Types are the expected field type expressions, in order.
	Types []string `yaml:"types,omitempty"`

	// TypeParams are the expected type parameter names, in order.
	TypeParams []string `yaml:"type_params,omitempty"`

	// Malformed expects the parser to reject the input.
	Malformed bool `yaml:"malformed,omitempty"`
}

// LoadScenario reads a scenario YAML file, validates it against the
// scenario schema and decodes it. Unknown fields are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(path, data)
}

// ParseScenario validates and decodes scenario YAML. filename is used only
// in error messages.
func ParseScenario(filename string, data []byte) (*Scenario, error) {
	if err := validateSchema(filename, data); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateSchema unifies the YAML document with #Scenario from schema.cue.
func validateSchema(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue")).
		LookupPath(cue.ParsePath("#Scenario"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling scenario schema: %w", err)
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	value := schema.Unify(ctx.BuildFile(file))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%s", cueerrors.Details(err, nil))
	}
	return nil
}

// validateScenario checks constraints the schema cannot express.
func validateScenario(s *Scenario) error {
	if s.KeyCase != "" {
		if _, err := render.ParseKeyCase(s.KeyCase); err != nil {
			return err
		}
	}

	e := s.Expect
	if e.Malformed {
		if e.Name != "" || e.Fields != nil || e.Types != nil || e.TypeParams != nil {
			return fmt.Errorf("expect: malformed excludes name, fields, types and type_params")
		}
		if s.Golden {
			return fmt.Errorf("golden requires a well-formed input")
		}
		return nil
	}

	if e.Types != nil && e.Fields != nil && len(e.Types) != len(e.Fields) {
		return fmt.Errorf("expect: %d types given for %d fields", len(e.Types), len(e.Fields))
	}
	return nil
}
