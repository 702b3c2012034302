// Package parallel provides chunked data-parallel loops for column statistics.
//
// Callers must write results only to indices inside their [start, end) range;
// under that rule the output is identical to a sequential loop.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits [0, items) into at most workers contiguous ranges and
// runs fn on each range in its own goroutine. workers <= 0 means NumCPU.
func Parallelize(items, workers int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items
	}

	chunkSize := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) inline when work is at most
// threshold, and falls back to Parallelize otherwise. work is the caller's
// estimate of total cost (for column statistics: rows × columns).
func ParallelizeWithThreshold(items, work, threshold int, fn func(start, end int)) {
	if work <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, 0, fn)
}
