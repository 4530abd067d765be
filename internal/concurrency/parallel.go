// Package concurrency runs independent jobs on a bounded worker pool.
package concurrency

import (
	"context"
	"sync"
)

const defaultWorkers = 4

// Options bounds a parallel run.
type Options struct {
	// MaxWorkers caps the number of goroutines; <= 0 means the default.
	MaxWorkers int
}

func DefaultOptions() Options {
	return Options{MaxWorkers: defaultWorkers}
}

func (o Options) workers(n int) int {
	w := o.MaxWorkers
	if w <= 0 {
		w = defaultWorkers
	}
	if w > n {
		w = n
	}
	return w
}

// run feeds the indexes of n items to the pool. Items not yet started when
// ctx is done are skipped.
func run(ctx context.Context, n int, opts Options, job func(i int)) {
	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < opts.workers(n); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				job(i)
			}
		}()
	}
	wg.Wait()
}

// Map calls fn for every item and returns the results in input order.
// Errors are returned in completion order; skipped items keep the zero value.
func Map[T, R any](
	ctx context.Context,
	items []T,
	opts Options,
	fn func(ctx context.Context, index int, item T) (R, error),
) ([]R, []error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	run(ctx, len(items), opts, func(i int) {
		r, err := fn(ctx, i, items[i])
		results[i] = r
		if err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
	})
	return results, errs
}

// ForEach is Map for side effects only.
func ForEach[T any](
	ctx context.Context,
	items []T,
	opts Options,
	fn func(ctx context.Context, index int, item T) error,
) []error {
	_, errs := Map(ctx, items, opts, func(ctx context.Context, i int, item T) (struct{}, error) {
		return struct{}{}, fn(ctx, i, item)
	})
	return errs
}
