package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/treeconf/internal/canon"
	"github.com/roach88/treeconf/internal/dat"
	"github.com/roach88/treeconf/internal/harness"
	"github.com/roach88/treeconf/internal/xnet"
)

// TreeOptions holds flags for the tree command.
type TreeOptions struct {
	*RootOptions
	Fragment  string // fragment context, e.g. "td" or "svg path"
	Scripting bool
}

// TreeResult is the canonical form of one parse.
type TreeResult struct {
	Tree   string `json:"tree"`
	Digest string `json:"digest"`
}

// NewTreeCommand creates the tree command.
func NewTreeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TreeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tree [html]",
		Short: "Print the canonical tree of an input",
		Long: `Parse an HTML input and print its tree in the canonical html5lib form.

The input is the argument, or standard input when no argument (or "-")
is given. Use the output as the #document section of a new test case.

Examples:
  treeconf tree '<p>hello'
  treeconf tree --fragment td '<b>x'
  echo '<noscript><p>' | treeconf tree --scripting=false`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Fragment, "fragment", "", "parse as a fragment in this context element")
	cmd.Flags().BoolVar(&opts.Scripting, "scripting", true, "parse with scripting enabled")

	return cmd
}

func runTree(opts *TreeOptions, args []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	var input string
	if len(args) == 1 && args[0] != "-" {
		input = args[0]
	} else {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return f.CommandError(ErrCodeInput, "failed to read input", err)
		}
		input = strings.TrimSuffix(string(b), "\n")
	}

	// Stored test-case sections end in a newline the executor trims.
	tc := &dat.Testcase{Data: input + "\n"}
	if opts.Fragment != "" {
		context := opts.Fragment + "\n"
		tc.DocumentFragment = &context
	}

	nodes, err := harness.NewExecutor(xnet.New(logger), logger).Execute(tc, opts.Scripting)
	if err != nil {
		return f.CommandError(ErrCodeGeneric, "failed to parse input", err)
	}

	tree := harness.Serialize(nodes)
	return f.Success(TreeResult{Tree: tree, Digest: canon.Digest(tree)})
}

func (r TreeResult) renderText(w io.Writer) {
	fmt.Fprint(w, r.Tree)
}
