package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Filter string
}

// ListResult holds the trial ids of a corpus in execution order.
type ListResult struct {
	Trials []string `json:"trials"`
	Total  int      `json:"total"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list [corpus-dir...]",
		Short: "List trial ids",
		Long: `List the trial ids of the corpora in the order test runs them.

Trial ids have the form <file>:<index>:<noscript|yesscript> and are the
keys used by --filter and by expected_failures in the config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter trials by glob pattern over trial ids")

	return cmd
}

func runList(opts *ListOptions, args []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	cfg, err := opts.loadConfig()
	if err != nil {
		return configError(f, err)
	}

	trials, err := loadTrials(f, cfg, args, opts.Filter)
	if err != nil {
		return err
	}

	result := ListResult{Trials: make([]string, 0, len(trials)), Total: len(trials)}
	for _, t := range trials {
		result.Trials = append(result.Trials, t.ID.String())
	}
	return f.Success(result)
}

func (r ListResult) renderText(w io.Writer) {
	for _, id := range r.Trials {
		fmt.Fprintln(w, id)
	}
}
