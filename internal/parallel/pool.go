// Package parallel provides a small worker-indexed chunk processor used to
// fan work out across a static partition of goroutines.
//
// Grounded on the ChunkProcessor pattern in a sibling-module performance
// analysis tool (ProcessChunks: divide items into numWorkers contiguous
// chunks, run each chunk on its own goroutine with its worker index
// available to the callback, join with a sync.WaitGroup). This package
// re-implements that shape directly rather than depending on the other
// module, since lambdarank has no other use for a full generic task-queue
// worker pool.
package parallel

import (
	"context"
	"runtime"
	"sync"
)

// DefaultWorkers returns a sensible worker count for CPU-bound fan-out:
// NumCPU, clamped to [1, 8] the same way the grounding package's
// DefaultPoolConfig does.
func DefaultWorkers() int {
	n := runtime.NumCPU()
	if n > 8 {
		n = 8
	}
	if n < 1 {
		n = 1
	}
	return n
}

// ProcessIndexed runs fn once for every index in [0, n) across workers
// goroutines (DefaultWorkers() if workers <= 0), partitioning the index
// range into contiguous chunks so each worker owns a stable workerID it can
// use to address private scratch state. It blocks until every chunk has
// either finished or ctx has been cancelled between items.
//
// A worker whose fn returns an error stops its own chunk there; the other
// workers are not interrupted and run their chunks to completion (a partial
// result for one query must never be read — see lambdarank's concurrency
// model — but other queries' results are independent and are preserved).
// If several workers fail, the error of the lowest-numbered worker is
// returned, and the caller is responsible for discarding the whole batch
// if err != nil.
func ProcessIndexed(ctx context.Context, n, workers int, fn func(ctx context.Context, workerID, index int) error) error {
	if n == 0 {
		return nil
	}
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if workers > n {
		workers = n
	}

	chunkSize := (n + workers - 1) / workers
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		wg.Add(1)
		go func(workerID, start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					errs[workerID] = ctx.Err()
					return
				default:
				}
				if err := fn(ctx, workerID, i); err != nil {
					errs[workerID] = err
					return
				}
			}
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
