package app

import (
	"schemac.dev/schemac/ast"
	"schemac.dev/schemac/compiler"
	"schemac.dev/schemac/diagnostic"
)

// NoParser is the parse function the stock schemac binary ships with:
// this repo has no lexer/parser (spec.md's Non-goals), so the default
// build reports a configuration error rather than silently compiling
// nothing. A real front end is wired in by building a different main
// package against app.NewRootCommand with its own compiler.Parser.
func NoParser(filename, _ string) compiler.ParseResult {
	return compiler.ParseResult{
		ParseErrors: []diagnostic.Diagnostic{
			diagnostic.New(
				ast.Pos{File: filename},
				"no schema front end configured; this build of schemac has no lexer/parser wired in",
			),
		},
	}
}
