package resolver

import (
	"context"
	"sync/atomic"
	"testing"

	"schemac.dev/schemac/compiler"
	"schemac.dev/schemac/internal/testutil"
)

func TestConcurrentResolveCallsUnderlyingOncePerName(t *testing.T) {
	var calls int64
	underlying := func(name string) compiler.ImportResult {
		atomic.AddInt64(&calls, 1)
		return compiler.ImportResult{Err: "not found: " + name}
	}
	c := NewConcurrent(underlying)

	c.Resolve("a.schema")
	c.Resolve("a.schema")
	c.Resolve("a.schema")

	testutil.ExpectEq(t, int64(1), atomic.LoadInt64(&calls))
}

func TestConcurrentResolveReturnsUnderlyingResult(t *testing.T) {
	underlying := func(name string) compiler.ImportResult {
		return compiler.ImportResult{Err: "boom: " + name}
	}
	c := NewConcurrent(underlying)

	result := c.Resolve("a.schema")
	testutil.ExpectEq(t, "boom: a.schema", result.Err)
}

func TestConcurrentPrefetchWarmsMemoForAllDistinctNames(t *testing.T) {
	var calls int64
	underlying := func(name string) compiler.ImportResult {
		atomic.AddInt64(&calls, 1)
		return compiler.ImportResult{}
	}
	c := NewConcurrent(underlying)

	err := c.Prefetch(context.Background(), []string{"a", "b", "a", "c", "b"})
	testutil.ExpectNoError(t, err)
	testutil.ExpectEq(t, int64(3), atomic.LoadInt64(&calls))

	c.Resolve("a")
	c.Resolve("b")
	c.Resolve("c")
	testutil.ExpectEq(t, int64(3), atomic.LoadInt64(&calls))
}
