package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Conformance fixtures are YAML suites of small Lox programs paired with the
// output or diagnostic they must produce. They drive the end-to-end tests in
// fixtures_test.go.

type fixtureSuite struct {
	Cases []fixtureCase `yaml:"cases"`
}

type fixtureCase struct {
	Name   string          `yaml:"name"`
	Source string          `yaml:"source"`
	Output []string        `yaml:"output"`
	Error  *fixtureFailure `yaml:"error"`
}

// fixtureFailure describes the expected failure of a case. Kind is "static"
// or "runtime"; Count, when nonzero, pins the number of accumulated static
// diagnostics.
type fixtureFailure struct {
	Kind     string `yaml:"kind"`
	Contains string `yaml:"contains"`
	Count    int    `yaml:"count"`
}

func loadFixtureSuite(path string) (*fixtureSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var suite fixtureSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	for idx, c := range suite.Cases {
		if c.Name == "" {
			return nil, fmt.Errorf("fixture %s: case %d has no name", path, idx)
		}
		if c.Source == "" {
			return nil, fmt.Errorf("fixture %s: case %q has no source", path, c.Name)
		}
		if c.Error != nil && c.Error.Kind != "static" && c.Error.Kind != "runtime" {
			return nil, fmt.Errorf("fixture %s: case %q has unknown error kind %q", path, c.Name, c.Error.Kind)
		}
	}
	return &suite, nil
}

// fixturePaths lists the suite files under testdata in stable order.
func fixturePaths(root string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(root, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
