package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenSuffix is the file extension of golden files.
const GoldenSuffix = ".golden"

// GoldenPath returns the golden file path for a scenario name.
func GoldenPath(dir, name string) string {
	return filepath.Join(dir, name+GoldenSuffix)
}

// goldenBytes is the exact content a golden file holds for output: the
// rendered block followed by one newline, as written to stdout.
func goldenBytes(output string) []byte {
	return []byte(output + "\n")
}

// RunWithGolden executes a scenario, fails t on any expectation error and
// compares the rendered output against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if the scenario cannot be executed.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Errorf("%s: %s", scenario.Name, msg)
	}
	if result.Malformed {
		return nil
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(GoldenSuffix),
	)
	g.Assert(t, scenario.Name, goldenBytes(result.Output))

	return nil
}

// CompareGolden compares output with the golden file at path. With update
// set, the file is (re)written instead and the comparison always succeeds.
func CompareGolden(path, output string, update bool) (bool, error) {
	want := goldenBytes(output)

	if update {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return false, fmt.Errorf("creating golden directory: %w", err)
		}
		if err := os.WriteFile(path, want, 0644); err != nil {
			return false, fmt.Errorf("writing golden file: %w", err)
		}
		return true, nil
	}

	got, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("golden file not found: %s (run with --update to create it)", path)
	}
	if err != nil {
		return false, fmt.Errorf("reading golden file: %w", err)
	}

	return bytes.Equal(got, want), nil
}
