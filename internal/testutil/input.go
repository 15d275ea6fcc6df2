// Package testutil provides testing utilities for the mustache packages.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Suite is one fixture file: a list of render cases sharing a topic.
type Suite struct {
	Overview string      `json:"overview"`
	Tests    []*TestCase `json:"tests"`
	File     string      `json:"-"`
}

// TestCase is a single template, its view and the expected output.
type TestCase struct {
	Name     string            `json:"name"`
	Desc     string            `json:"desc"`
	Data     any               `json:"data"`
	Template string            `json:"template"`
	Partials map[string]string `json:"partials"`
	Expected string            `json:"expected"`
	Settings *TestSettings     `json:"settings"`
}

// TestSettings represents the optional renderer settings of a case.
type TestSettings struct {
	Undefined  string    `json:"undefined"`
	Delimiters [2]string `json:"delimiters"`
	Error      string    `json:"error"`
}

// HasDelimiters returns true if custom delimiters are configured.
func (s *TestSettings) HasDelimiters() bool {
	return s != nil && s.Delimiters[0] != "" && s.Delimiters[1] != ""
}

// LoadSuite reads and parses a fixture file.
func LoadSuite(path string) (*Suite, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	suite := &Suite{File: filepath.Base(path)}
	if err := json.Unmarshal(content, suite); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i, tc := range suite.Tests {
		if tc.Name == "" {
			return nil, fmt.Errorf("%s: test %d has no name", path, i)
		}
	}
	return suite, nil
}

// LoadSuites loads every *.json fixture in dir, sorted by file name.
func LoadSuites(dir string) ([]*Suite, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	suites := make([]*Suite, 0, len(paths))
	for _, path := range paths {
		suite, err := LoadSuite(path)
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}
	return suites, nil
}
