package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	assert.Empty(t, Diff("a\nb", "a\nb"))

	d := Diff("a\nb\nc", "a\nx\nc")
	assert.Contains(t, d, "L0002: - b")
	assert.Contains(t, d, "+ x")
	assert.NotContains(t, d, "- a")
}

func TestLoadSuite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "basic.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"overview": "basics",
		"tests": [
			{"name": "Hello", "data": {"x": 1}, "template": "{{x}}", "expected": "1",
			 "settings": {"undefined": "strict", "delimiters": ["<%", "%>"]}}
		]
	}`), 0o644))

	suites, err := LoadSuites(dir)
	require.NoError(t, err)
	require.Len(t, suites, 1)
	suite := suites[0]
	assert.Equal(t, "basic.json", suite.File)
	require.Len(t, suite.Tests, 1)
	tc := suite.Tests[0]
	assert.Equal(t, "{{x}}", tc.Template)
	assert.Equal(t, map[string]any{"x": float64(1)}, tc.Data)
	assert.True(t, tc.Settings.HasDelimiters())
	assert.Equal(t, "strict", tc.Settings.Undefined)
}

func TestLoadSuiteRejectsUnnamed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tests": [{"template": "x"}]}`), 0o644))
	_, err := LoadSuite(path)
	assert.Error(t, err)
}
