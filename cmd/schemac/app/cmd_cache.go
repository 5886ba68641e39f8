package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"schemac.dev/schemac/internal/diskcache"
)

type cmdCache struct {
	cacheDir string
}

func (*cmdCache) help() *commandHelp {
	return &commandHelp{
		usage:   "cache clear",
		summary: "manage the on-disk diagnostic cache",
	}
}

func (cmd *cmdCache) flags(flags *pflag.FlagSet) {
	flags.StringVar(&cmd.cacheDir, "cache-dir", defaultCacheDir(), "directory holding the on-disk diagnostic cache")
}

func (cmd *cmdCache) run(_ context.Context, argv []string) int {
	if len(argv) != 1 || argv[0] != "clear" {
		fmt.Fprintln(os.Stderr, "usage: schemac cache clear")
		return 1
	}

	cache, err := diskcache.Open(cmd.cacheDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := cache.Clear(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintln(os.Stdout, "cleared", cache.Dir())
	return 0
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".schemac-cache"
	}
	return dir + "/schemac"
}
