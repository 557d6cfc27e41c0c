// Command treeconf runs html5lib tree-construction corpora against the
// golang.org/x/net/html tree builder.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/treeconf/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
