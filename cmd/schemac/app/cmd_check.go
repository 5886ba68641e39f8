package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/spf13/pflag"

	"schemac.dev/schemac/compiler"
	"schemac.dev/schemac/config"
	"schemac.dev/schemac/internal/diskcache"
	"schemac.dev/schemac/internal/report"
	"schemac.dev/schemac/resolver"
)

type cmdCheck struct {
	parse compiler.Parser

	maxOrdinal int64
	configPath string
	cacheDir   string
}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check <files...>",
		summary: "type-check schema files and print diagnostics",
	}
}

func (cmd *cmdCheck) flags(flags *pflag.FlagSet) {
	flags.Int64Var(&cmd.maxOrdinal, "max-ordinal", int64(compiler.MaxFieldOrdinal), "largest representable field/enumerant/method number")
	flags.StringVar(&cmd.configPath, "config", "", "path to a schemac.toml project file")
	flags.StringVar(&cmd.cacheDir, "cache-dir", "", "directory for the on-disk diagnostic cache (disabled if empty)")
}

func (cmd *cmdCheck) run(ctx context.Context, argv []string) int {
	if len(argv) < 1 {
		fmt.Fprintln(os.Stderr, "usage: schemac check [options] <files...>")
		return 1
	}

	maxOrdinal, err := safecast.Conv[uint32](cmd.maxOrdinal)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid --max-ordinal:", err)
		return 1
	}

	var project *config.Project
	if cmd.configPath != "" {
		project, err = config.Load(cmd.configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if project.Schema.MaxOrdinal != 0 {
			maxOrdinal = project.Schema.MaxOrdinal
		}
	}

	options := []compiler.Option{compiler.WithMaxOrdinal(maxOrdinal)}

	var cache *diskcache.Cache
	if cmd.cacheDir != "" {
		cache, err = diskcache.Open(cmd.cacheDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	root := os.DirFS(".")
	fsResolver := &resolver.FileSystem{FS: root, Parse: cmd.parse, Options: options}
	var importCB compiler.ImportCallback = fsResolver.Resolve
	if cache != nil {
		importCB = (&resolver.Cached{Underlying: importCB, FS: root, Cache: cache, MaxOrdinal: maxOrdinal}).Resolve
	}

	diagCount := 0
	for _, path := range argv {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		name := filepath.ToSlash(path)
		out := compiler.ParseAndCompileFile(name, string(src), cmd.parse, importCB, options...)
		diags := out.Errors()
		report.Print(os.Stdout, diags)
		diagCount += len(diags)
	}

	report.PrintSummary(os.Stdout, len(argv), diagCount)
	if diagCount > 0 {
		return 1
	}
	return 0
}
