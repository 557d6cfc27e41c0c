// Package config loads the harness configuration file.
//
// The file is YAML, decoded strictly, then checked against an embedded CUE
// schema:
//
//	corpora:
//	  - tests/custom-html5lib-tests/tree-construction
//	  - tests/html5lib-tests/tree-construction
//	database: .treeconf/history.db
//	expected_failures:
//	  - id: tests1.dat:12:noscript
//	    reason: adoption agency divergence
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/treeconf/internal/harness"
)

//go:embed schema.cue
var schemaCUE string

// ExpectedFailure names a trial known to fail.
type ExpectedFailure struct {
	ID     string `yaml:"id" json:"id"`
	Reason string `yaml:"reason" json:"reason"`
}

// Config is the harness configuration.
type Config struct {
	Corpora          []string          `yaml:"corpora" json:"corpora"`
	Database         string            `yaml:"database" json:"database,omitempty"`
	ExpectedFailures []ExpectedFailure `yaml:"expected_failures" json:"expected_failures"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Corpora:          slices.Clone(harness.DefaultCorpora),
		ExpectedFailures: []ExpectedFailure{},
	}
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration document. Unknown keys are
// rejected. An empty document yields Default.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if len(cfg.Corpora) == 0 {
		cfg.Corpora = slices.Clone(harness.DefaultCorpora)
	}
	if cfg.ExpectedFailures == nil {
		cfg.ExpectedFailures = []ExpectedFailure{}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("config schema: %w", err)
	}

	v := schema.LookupPath(cue.ParsePath("#Config")).Unify(ctx.Encode(cfg))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %s", cueerrors.Details(err, nil))
	}

	seen := make(map[string]bool, len(cfg.ExpectedFailures))
	for _, ef := range cfg.ExpectedFailures {
		if seen[ef.ID] {
			return fmt.Errorf("invalid config: duplicate expected failure %s", ef.ID)
		}
		seen[ef.ID] = true
	}
	return nil
}

// Expectations converts the expected failure list for the runner.
func (c *Config) Expectations() (harness.Expectations, error) {
	entries := make(map[string]string, len(c.ExpectedFailures))
	for _, ef := range c.ExpectedFailures {
		entries[ef.ID] = ef.Reason
	}
	return harness.NewExpectations(entries)
}
