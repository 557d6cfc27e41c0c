// Package dat reads html5lib tree-construction test files.
//
// A .dat file is a sequence of blocks. Each block opens with a "#data" line and
// continues with section headers, each followed by the lines that belong to it:
//
//	#data
//	<p>hi
//	#errors
//	(1,3): expected-doctype-but-got-start-tag
//	#document
//	| <html>
//	|   <head>
//	|   <body>
//	|     <p>
//	|       "hi"
//
// Every stored line keeps a trailing newline, so consumers strip exactly one
// newline from fields they feed onward. A block is a complete test case only
// once an "#errors" section (or a later one) has been seen; anything else is
// dropped as noise.
package dat
