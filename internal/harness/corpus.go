package harness

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/treeconf/internal/dat"
)

// DefaultCorpora lists the tree-construction corpora in load order: the
// project's own cases first, then the imported html5lib-tests suite.
var DefaultCorpora = []string{
	"tests/custom-html5lib-tests/tree-construction",
	"tests/html5lib-tests/tree-construction",
}

// Discover returns the .dat files of each corpus directory, corpus by
// corpus, each corpus in lexical order. A missing directory is an error.
func Discover(corpora []string) ([]string, error) {
	var files []string
	for _, dir := range corpora {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("corpus directory not found: %s", dir)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("corpus is not a directory: %s", dir)
		}

		matches, err := filepath.Glob(filepath.Join(dir, "*.dat"))
		if err != nil {
			return nil, fmt.Errorf("failed to scan corpus %s: %w", dir, err)
		}
		files = append(files, matches...)
	}
	return files, nil
}

// LoadTrials parses every corpus file and expands its cases into trials.
// A malformed file aborts loading. Trial ids carry only the file's base
// name, so two corpus files with the same base name are rejected.
func LoadTrials(corpora []string) ([]Trial, error) {
	files, err := Discover(corpora)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(files))
	var trials []Trial
	for _, file := range files {
		name := filepath.Base(file)
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate corpus file name %s: %s and %s", name, prev, file)
		}
		seen[name] = file

		cases, err := dat.ParseFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load corpus: %w", err)
		}
		trials = append(trials, ExpandTrials(name, cases)...)
	}
	return trials, nil
}
