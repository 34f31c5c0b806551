// Package poller drives periodic reconciliation of task status between the
// note-generation backend and the local store.
package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/syncs"

	"github.com/billnote/notewatch/app/backend"
	"github.com/billnote/notewatch/app/store"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . StatusFetcher
//go:generate moq -out mocks/event_handler.go -pkg mocks -skip-ensure -fmt goimports . EventHandler

// Store defines the subset of the task table the poller needs
type Store interface {
	NonTerminal() []string
	ApplyStatus(id string, status store.Status, result json.RawMessage) (rec store.Record, transitioned, ok bool)
}

// StatusFetcher fetches the backend-reported status of a single task
type StatusFetcher interface {
	Status(ctx context.Context, id string) (backend.StatusReply, error)
}

// EventHandler gets invoked when a poll response moves a task into a terminal status
type EventHandler interface {
	OnTaskComplete(rec store.Record)
}

// Poller polls all non-terminal tasks on a fixed interval and merges the
// responses back into the store. Fetches for independent tasks fan out
// concurrently, while a per-task in-flight guard keeps at most one outstanding
// request per task so a slow backend can't pile up duplicates.
type Poller struct {
	Store        Store
	Fetcher      StatusFetcher
	EventHandler EventHandler  // optional
	Interval     time.Duration // default 3s
	Concurrency  int           // default 8

	started  atomic.Bool
	inFlight inFlight
}

// Run starts the blocking poll loop, terminated by ctx cancellation. Starting
// an already running poller is refused, re-initialization can't double the
// poll rate.
func (p *Poller) Run(ctx context.Context) error {
	if !p.started.CompareAndSwap(false, true) {
		return fmt.Errorf("poller already running")
	}
	p.inFlight.init()

	interval := p.Interval
	if interval <= 0 {
		interval = 3 * time.Second
	}
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 8
	}

	gr := syncs.NewSizedGroup(concurrency, syncs.Context(ctx))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[INFO] poller started, interval %v, concurrency %d", interval, concurrency)
	for {
		select {
		case <-ctx.Done():
			gr.Wait() // let in-flight fetches finish, their results are discarded
			log.Printf("[DEBUG] poller terminated")
			return nil
		case <-ticker.C:
			p.tick(gr)
		}
	}
}

// tick fans out a status fetch for every non-terminal task. Terminal tasks are
// excluded up front, an empty set costs no network calls at all.
func (p *Poller) tick(gr *syncs.SizedGroup) {
	ids := p.Store.NonTerminal()
	if len(ids) == 0 {
		return
	}

	for _, id := range ids {
		if !p.inFlight.add(id) {
			continue // previous fetch for this task still in flight, skip the tick
		}
		gr.Go(func(ctx context.Context) {
			defer p.inFlight.remove(id)
			p.pollOne(ctx, id)
		})
	}
}

func (p *Poller) pollOne(ctx context.Context, id string) {
	reply, err := p.Fetcher.Status(ctx, id)
	if err != nil {
		// transient by definition, the next tick retries. no backoff, no cutoff
		log.Printf("[DEBUG] status fetch failed for task %s: %v", id, err)
		return
	}
	if ctx.Err() != nil {
		return // poller torn down while the fetch was in flight, discard the result
	}

	rec, transitioned, ok := p.Store.ApplyStatus(id, reply.Status, reply.Result)
	if !ok {
		log.Printf("[DEBUG] discarded status for untracked task %s", id)
		return
	}
	if transitioned {
		log.Printf("[INFO] task %s finished with %s", id, rec.Status)
		if p.EventHandler != nil {
			p.EventHandler.OnTaskComplete(rec)
		}
	}
}
