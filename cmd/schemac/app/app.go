// Package app builds the schemac cobra command tree over an injected
// compiler.Parser, so that cmd/schemac stays a thin wrapper and a real
// lexer/parser front end can be plugged in by another main package
// without touching the compiler core (spec.md's Non-goals exclude
// lexing/parsing from this repo; see ast's package comment for the
// Parser Contract).
package app

import (
	"context"
	stdflag "flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"schemac.dev/schemac/compiler"
)

type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
}

// Run builds the root command wired against parse and executes it
// against os.Args, returning the process exit code.
func Run(parse compiler.Parser) int {
	ctx := context.Background()
	exitCode := 0
	rootCmd := NewRootCommand(ctx, parse, &exitCode)

	rootCmd.Flags().AddGoFlagSet(stdflag.CommandLine)
	rootCmd.ParseFlags(nil)
	if _, err := rootCmd.ExecuteC(); err != nil {
		return 1
	}
	return exitCode
}

// NewRootCommand builds the schemac cobra.Command tree, mirroring
// go.idol-lang.org/bin/idol's root-command-plus-subcommands wiring
// over pflag.FlagSet. Each subcommand's run() result is written into
// exitCode, since cobra's ExecuteC only reports whether an error
// occurred, not a process status.
func NewRootCommand(ctx context.Context, parse compiler.Parser, exitCode *int) *cobra.Command {
	rootCmd := &cobra.Command{
		Use: "schemac [options] COMMAND",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	rootCmd.RunE = func(*cobra.Command, []string) error {
		fmt.Fprint(os.Stderr, rootCmd.UsageString())
		*exitCode = 1
		return nil
	}

	commands := []command{
		&cmdCheck{parse: parse},
		&cmdCache{},
	}
	for _, cmd := range commands {
		cmd := cmd
		help := cmd.help()
		cobraCmd := &cobra.Command{
			Use:   help.usage,
			Short: help.summary,
			RunE: func(_ *cobra.Command, args []string) error {
				*exitCode = cmd.run(ctx, args)
				return nil
			},
		}
		cmd.flags(cobraCmd.Flags())
		rootCmd.AddCommand(cobraCmd)
	}

	return rootCmd
}
