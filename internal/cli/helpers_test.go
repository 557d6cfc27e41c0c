package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/treeconf/internal/testutil"
)

var helloDocument = []string{
	"| <html>",
	"|   <head>",
	"|   <body>",
	"|     <p>",
	`|       "hi"`,
}

// passingCorpus writes a corpus whose four trials pass on x/net/html.
func passingCorpus(t *testing.T) string {
	t.Helper()
	dir := testutil.Corpus(t)
	testutil.WriteDat(t, dir, "a.dat",
		testutil.Case{Data: "<p>hi", Document: helloDocument},
		testutil.Case{Data: "x", Fragment: "td", Document: []string{`| "x"`}},
	)
	return dir
}

// failingCorpus writes a corpus whose first case expects the wrong tree.
func failingCorpus(t *testing.T) string {
	t.Helper()
	dir := testutil.Corpus(t)
	testutil.WriteDat(t, dir, "a.dat",
		testutil.Case{Data: "<p>bye", Document: helloDocument},
		testutil.Case{Data: "x", Fragment: "td", Document: []string{`| "x"`}},
	)
	return dir
}

func newTestRootOptions(format string) *RootOptions {
	ids := &testutil.SequentialRunIDs{}
	return &RootOptions{
		Format:   format,
		NewRunID: ids.NewRunID,
		Now:      testutil.FixedClock,
	}
}

// execute runs cmd with args and returns what it wrote to stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "treeconf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func writeBytes(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), data, 0o644)
}
