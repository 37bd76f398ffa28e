package precision

import (
	"fmt"
	"runtime"
	"sync"
)

// minChunk is the smallest slice of a sweep handed to one worker.
const minChunk = 256

// Sweep returns FracRange for every value in xs. Large sweeps are split
// across workers; the error, if any, names the lowest failing sample.
func Sweep(xs []float64) ([]float64, error) {
	out := make([]float64, len(xs))
	failed := make([]error, len(xs))

	parallelFor(len(xs), minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			n, err := Near(xs[i])
			if err != nil {
				failed[i] = err
				return
			}
			out[i] = n.FracRange
		}
	})

	for i, err := range failed {
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
	}
	return out, nil
}

// parallelFor calls fn over contiguous chunks of [0, n), at most one chunk
// per CPU and none smaller than minChunk.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	workers := min(runtime.GOMAXPROCS(0), n/minChunk)
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
