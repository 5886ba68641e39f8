// Package resolver supplies concrete compiler.ImportCallback
// implementations: reading schema files from an io/fs.FS, fanning
// distinct import names of a build out concurrently, and skipping
// repeated diagnostic reporting for unchanged files across runs
// (spec.md SPEC_FULL S4.9). The compiler core never performs I/O
// itself -- this package is the entire boundary where it happens
// (spec.md S5).
package resolver

import (
	"io/fs"

	"schemac.dev/schemac/compiler"
)

// FileSystem is an ImportCallback backed by an io/fs.FS: an import
// name is treated directly as a path relative to FS's root, read, and
// handed to Parse before being recursively compiled with itself as
// the import callback for whatever it, in turn, imports.
type FileSystem struct {
	FS      fs.FS
	Parse   compiler.Parser
	Options []compiler.Option
}

// Resolve implements compiler.ImportCallback.
func (r *FileSystem) Resolve(name string) compiler.ImportResult {
	data, err := fs.ReadFile(r.FS, name)
	if err != nil {
		return compiler.ImportResult{Err: err.Error()}
	}

	out := compiler.ParseAndCompileFile(name, string(data), r.Parse, r.Resolve, r.Options...)
	file, ok := out.Value()
	if !ok {
		return compiler.ImportResult{Err: "import " + name + " failed to compile"}
	}
	return compiler.ImportResult{File: file}
}
