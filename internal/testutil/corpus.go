package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Case is one tree-construction test case for WriteDat.
type Case struct {
	Data     string
	Fragment string
	Script   string // "", "on" or "off"
	Document []string
}

// Render returns the case in .dat form. Document lines get their "| "
// prefix from the caller.
func (c Case) Render() string {
	var b strings.Builder
	b.WriteString("#data\n")
	b.WriteString(c.Data)
	b.WriteString("\n#errors\n")
	switch c.Script {
	case "on":
		b.WriteString("#script-on\n")
	case "off":
		b.WriteString("#script-off\n")
	}
	if c.Fragment != "" {
		b.WriteString("#document-fragment\n")
		b.WriteString(c.Fragment)
		b.WriteByte('\n')
	}
	b.WriteString("#document\n")
	for _, line := range c.Document {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteDat writes cases as dir/name, separated by blank lines, and returns
// the file path. dir is created if needed.
func WriteDat(t *testing.T, dir, name string, cases ...Case) string {
	t.Helper()

	rendered := make([]string, len(cases))
	for i, c := range cases {
		rendered[i] = c.Render()
	}

	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(rendered, "\n")), 0o644))
	return path
}

// Corpus creates an empty corpus directory under t.TempDir.
func Corpus(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "tree-construction")
}
