package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarios runs every scenario in testdata/scenarios and compares the
// rendered output of golden scenarios with testdata/golden.
func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		scenario, err := LoadScenario(path)
		require.NoError(t, err, path)

		t.Run(scenario.Name, func(t *testing.T) {
			if !scenario.Golden {
				result, err := Run(scenario)
				require.NoError(t, err)
				assert.True(t, result.Pass, "errors: %v", result.Errors)
				return
			}
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}

func TestGoldenPath(t *testing.T) {
	assert.Equal(t, filepath.Join("testdata", "golden", "nested.golden"), GoldenPath(filepath.Join("testdata", "golden"), "nested"))
}

func TestCompareGolden(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/nested.yaml")
	require.NoError(t, err)
	result, err := Run(s)
	require.NoError(t, err)

	match, err := CompareGolden(GoldenPath("testdata/golden", s.Name), result.Output, false)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = CompareGolden(GoldenPath("testdata/golden", s.Name), result.Output+" ", false)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestCompareGoldenUpdate(t *testing.T) {
	path := GoldenPath(filepath.Join(t.TempDir(), "golden"), "fresh")

	_, err := CompareGolden(path, "object Fresh {}", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "golden file not found")

	match, err := CompareGolden(path, "object Fresh {}", true)
	require.NoError(t, err)
	assert.True(t, match)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "object Fresh {}\n", string(data))

	match, err = CompareGolden(path, "object Fresh {}", false)
	require.NoError(t, err)
	assert.True(t, match)
}
