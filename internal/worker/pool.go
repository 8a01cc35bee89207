// Package worker provides the bounded concurrency primitives for evidence
// gathering: a claim-processing pool and a per-domain rate limiter.
package worker

import (
	"context"
	"sync"

	"github.com/akovalev/claimsift/internal/model"
)

// Outcome is the result of investigating one claim. The claim is mutated in
// place by the investigation; Err records a per-claim failure without
// aborting the rest of the batch.
type Outcome struct {
	Claim *model.Claim
	Err   error
}

// Pool runs per-claim investigations with a bounded number of workers.
// Cancelling the context aborts the whole batch; an individual claim's
// failure only marks its own outcome.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker count
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Process runs fn over every claim concurrently and returns one outcome per
// claim in input order. It blocks until all workers finish or the context is
// cancelled; on cancellation the remaining claims get ctx.Err() outcomes.
func (p *Pool) Process(ctx context.Context, claims []*model.Claim, fn func(context.Context, *model.Claim) error) []Outcome {
	outcomes := make([]Outcome, len(claims))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					outcomes[i] = Outcome{Claim: claims[i], Err: err}
					continue
				}
				outcomes[i] = Outcome{Claim: claims[i], Err: fn(ctx, claims[i])}
			}
		}()
	}

	for i := range claims {
		select {
		case jobs <- i:
		case <-ctx.Done():
			outcomes[i] = Outcome{Claim: claims[i], Err: ctx.Err()}
		}
	}
	close(jobs)
	wg.Wait()

	return outcomes
}
