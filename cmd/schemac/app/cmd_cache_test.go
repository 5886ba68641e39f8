package app

import (
	"context"
	"testing"

	"schemac.dev/schemac/internal/diskcache"
	"schemac.dev/schemac/internal/testutil"
)

func TestCmdCacheClearSucceeds(t *testing.T) {
	dir := t.TempDir()
	cache, err := diskcache.Open(dir)
	testutil.ExpectNoError(t, err)
	testutil.ExpectNoError(t, cache.Put(diskcache.KeyFor([]byte("x"), 1), &diskcache.DiskPayload{OK: true}))

	cmd := &cmdCache{cacheDir: dir}
	code := cmd.run(context.Background(), []string{"clear"})
	testutil.ExpectEq(t, 0, code)

	_, hit, err := cache.Get(diskcache.KeyFor([]byte("x"), 1))
	testutil.ExpectNoError(t, err)
	testutil.ExpectFalse(t, hit)
}

func TestCmdCacheRejectsUnknownSubcommand(t *testing.T) {
	cmd := &cmdCache{cacheDir: t.TempDir()}
	code := cmd.run(context.Background(), []string{"nope"})
	testutil.ExpectEq(t, 1, code)
}

func TestCmdCacheRequiresExactlyOneArg(t *testing.T) {
	cmd := &cmdCache{cacheDir: t.TempDir()}
	code := cmd.run(context.Background(), nil)
	testutil.ExpectEq(t, 1, code)
}
