// Package harness runs html5lib tree-construction conformance tests.
//
// The harness parses .dat corpora into test cases, expands each case into
// one trial per permitted scripting mode, parses the case's input with a
// pluggable backend, renders the resulting tree in the canonical html5lib
// form and compares it with the expected "#document" section.
//
// # Trials
//
// A trial is identified by file name, 1-based index of the case within the
// file, and scripting label:
//
//	tests1.dat:12:noscript
//	tests1.dat:12:yesscript
//
// A case with a "#script-on" section only runs with scripting enabled, one
// with "#script-off" only with scripting disabled. Every other case runs
// twice.
//
// # Canonical form
//
// Each node is one line starting with "|" and an indent of one space per
// level, two per nesting step:
//
//	| <!DOCTYPE html>
//	| <html>
//	|   <head>
//	|   <body>
//	|     <svg svg>
//	|       xlink href="#a"
//	|     <template>
//	|       content
//	|         "text"
//
// Attributes follow their element, sorted by local name. Template contents
// follow the template's own children under a "content" line.
//
// # Backends
//
// The tokenizer and tree builder are reached through the Backend interface.
// The xnet package provides one backed by golang.org/x/net/html.
//
// # Usage
//
//	runner := harness.NewRunner(xnet.New(logger), harness.WithLogger(logger))
//	trials, err := harness.LoadTrials(harness.DefaultCorpora)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	summary := runner.Run(trials)
//
// From a Go test, RunTrials reports every trial as a parallel subtest.
package harness
