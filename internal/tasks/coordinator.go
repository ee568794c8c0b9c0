package tasks

import (
	"context"
	"sync"

	"github.com/gitelweb/ossync/internal/services"
)

// fetchAll fans the given folios out over a bounded worker pool and hands
// every outcome to handle, sequentially, in completion order. It returns
// once every folio has been fetched and handled, or the context is done.
func (e *SyncEngine) fetchAll(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	phase Phase,
	folios []string,
	handle func(services.FetchOutcome),
) {
	if len(folios) == 0 {
		return
	}

	jobs := make(chan string, len(folios))
	results := make(chan services.FetchOutcome, len(folios))

	var wg sync.WaitGroup
	for i := 0; i < e.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for folio := range jobs {
				results <- e.client.FetchByFolio(ctx, folio)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, folio := range folios {
			select {
			case <-ctx.Done():
				return
			case jobs <- folio:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	done := 0
	for outcome := range results {
		done++
		e.sendProgress(prog, fetchedUpdate(phase, done, len(folios), outcome.Folio))
		handle(outcome)
	}
}
