// Package batch runs many independent API calls with bounded concurrency.
package batch

import (
	"context"
	"sync"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	"github.com/panjf2000/ants/v2"
)

const defaultWorkers = 4

var ErrInvalidWorkers = errm.New("number of workers must be positive")

// Config represents batch execution configuration
type Config struct {
	Workers int `yaml:"workers" env:"BATCH_WORKERS"`
}

func (c *Config) PrepareAndValidate() error {
	if c.Workers < 0 {
		return ErrInvalidWorkers
	}
	c.Workers = lang.Check(c.Workers, defaultWorkers)
	return nil
}

// Result is the outcome of one item.
type Result[T any] struct {
	Value T
	Err   error
}

// Runner executes functions on a fixed-size goroutine pool.
type Runner struct {
	pool *ants.Pool
	log  logze.Logger
}

// New creates a runner with cfg.Workers goroutines.
func New(cfg Config) (*Runner, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}
	pool, err := ants.NewPool(cfg.Workers)
	if err != nil {
		return nil, errm.Wrap(err, "failed to create ants pool")
	}
	return &Runner{
		pool: pool,
		log:  logze.With("component", "batch"),
	}, nil
}

// Close releases the pool. Running tasks are not interrupted.
func (r *Runner) Close() {
	r.pool.Release()
}

// Run calls fn for every item and returns results in input order.
// Items not started before ctx is done get ctx.Err().
func Run[In, Out any](ctx context.Context, r *Runner, items []In, fn func(context.Context, In) (Out, error)) []Result[Out] {
	results := make([]Result[Out], len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return
			}
			results[i].Value, results[i].Err = fn(ctx, item)
		})
		if err != nil {
			wg.Done()
			results[i].Err = errm.Wrap(err, "failed to submit task")
		}
	}
	wg.Wait()

	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	r.log.Debug("batch done", "items", len(items), "failed", failed)

	return results
}
