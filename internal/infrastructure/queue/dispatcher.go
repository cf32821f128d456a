package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rtetrack/tracking-desk/internal/core/domain"
	"github.com/rtetrack/tracking-desk/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// TrackingRunner is the slice of the tracking service the dispatcher needs.
type TrackingRunner interface {
	RunTrackingQuery(ctx context.Context, in domain.FormInput) (*ports.TrackingOutcome, error)
}

// Result pairs an input with what its tracking query produced.
type Result struct {
	Input   domain.FormInput
	Outcome *ports.TrackingOutcome
	Err     error
}

type job struct {
	index int
	input domain.FormInput
}

// Dispatcher runs tracking queries for many pairs on a fixed set of workers.
// Pairs are sharded by tax id so queries for one company run sequentially.
type Dispatcher struct {
	workers int
	service TrackingRunner
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service TrackingRunner, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Dispatcher{workers: numWorkers, service: service, log: log}
}

// Run queries every input and returns the results in input order. Inputs not yet
// started when ctx is cancelled carry ctx.Err().
func (d *Dispatcher) Run(ctx context.Context, inputs []domain.FormInput) []Result {
	results := make([]Result, len(inputs))
	chans := make([]chan job, d.workers)

	var wg sync.WaitGroup
	for i := range chans {
		chans[i] = make(chan job, channelBuffer)
		wg.Add(1)
		go func(id int, ch <-chan job) {
			defer wg.Done()
			d.runWorker(ctx, id, ch, results)
		}(i, chans[i])
	}

	for i, in := range inputs {
		chans[d.shardIndex(in.TaxID)] <- job{index: i, input: in}
	}
	for _, ch := range chans {
		close(ch)
	}
	wg.Wait()

	return results
}

// shardIndex maps a tax id deterministically to a worker index.
func (d *Dispatcher) shardIndex(taxID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(taxID))
	return int(h.Sum32() % uint32(d.workers))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan job, results []Result) {
	for j := range ch {
		res := Result{Input: j.input}
		if err := ctx.Err(); err != nil {
			res.Err = err
			results[j.index] = res
			continue
		}

		res.Outcome, res.Err = d.service.RunTrackingQuery(ctx, j.input)
		if res.Err != nil {
			d.log.Error().Err(res.Err).
				Str("tax_id", j.input.TaxID).
				Str("invoice", j.input.InvoiceNumber).
				Int("worker_id", id).
				Msg("batch tracking query failed")
		}
		results[j.index] = res
	}
}
