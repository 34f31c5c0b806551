package poller

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billnote/notewatch/app/backend"
	"github.com/billnote/notewatch/app/poller/mocks"
	"github.com/billnote/notewatch/app/store"
)

func TestPoller_NoFetchesWhenIdle(t *testing.T) {
	st := &mocks.StoreMock{
		NonTerminalFunc: func() []string { return []string{} },
		ApplyStatusFunc: func(id string, status store.Status, result json.RawMessage) (store.Record, bool, bool) {
			return store.Record{}, false, true
		},
	}
	fetcher := &mocks.StatusFetcherMock{
		StatusFunc: func(ctx context.Context, id string) (backend.StatusReply, error) {
			return backend.StatusReply{}, nil
		},
	}

	p := Poller{Store: st, Fetcher: fetcher, Interval: 10 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, p.Run(ctx))

	assert.GreaterOrEqual(t, len(st.NonTerminalCalls()), 2, "ticks happened")
	assert.Empty(t, fetcher.StatusCalls(), "no in-flight tasks, no status requests")
}

func TestPoller_ProgressesToCompletion(t *testing.T) {
	realStore := store.New(nil)
	realStore.Upsert(store.Record{ID: "t1", Status: store.StatusPending})

	var polls int32
	fetcher := &mocks.StatusFetcherMock{
		StatusFunc: func(ctx context.Context, id string) (backend.StatusReply, error) {
			switch atomic.AddInt32(&polls, 1) {
			case 1:
				return backend.StatusReply{Status: store.StatusProcessing}, nil
			default:
				return backend.StatusReply{Status: store.StatusSuccess, Result: json.RawMessage(`{"markdown":"# note"}`)}, nil
			}
		},
	}

	done := make(chan store.Record, 1)
	handler := &mocks.EventHandlerMock{
		OnTaskCompleteFunc: func(rec store.Record) { done <- rec },
	}

	p := Poller{Store: realStore, Fetcher: fetcher, EventHandler: handler, Interval: 10 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
		cancel()
	}()
	require.NoError(t, p.Run(ctx))

	require.Len(t, handler.OnTaskCompleteCalls(), 1)
	rec := handler.OnTaskCompleteCalls()[0].Rec
	assert.Equal(t, "t1", rec.ID)
	assert.Equal(t, store.StatusSuccess, rec.Status)
	assert.JSONEq(t, `{"markdown":"# note"}`, string(rec.Result))

	assert.Empty(t, realStore.NonTerminal(), "finished task no longer polled")
}

func TestPoller_FetchErrorRetriedNextTick(t *testing.T) {
	realStore := store.New(nil)
	realStore.Upsert(store.Record{ID: "t1", Status: store.StatusPending})

	var polls int32
	fetcher := &mocks.StatusFetcherMock{
		StatusFunc: func(ctx context.Context, id string) (backend.StatusReply, error) {
			if atomic.AddInt32(&polls, 1) < 3 {
				return backend.StatusReply{}, &backend.FetchError{TaskID: id, Err: errors.New("conn refused")}
			}
			return backend.StatusReply{Status: store.StatusSuccess}, nil
		},
	}
	done := make(chan store.Record, 1)
	handler := &mocks.EventHandlerMock{OnTaskCompleteFunc: func(rec store.Record) { done <- rec }}

	p := Poller{Store: realStore, Fetcher: fetcher, EventHandler: handler, Interval: 10 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
		}
		cancel()
	}()
	require.NoError(t, p.Run(ctx))

	rec, _ := realStore.Get("t1")
	assert.Equal(t, store.StatusSuccess, rec.Status, "errors don't fail the task, polling just continues")
	assert.GreaterOrEqual(t, atomic.LoadInt32(&polls), int32(3))
}

func TestPoller_UntrackedResponseDiscarded(t *testing.T) {
	st := &mocks.StoreMock{
		NonTerminalFunc: func() []string { return []string{"ghost"} },
		ApplyStatusFunc: func(id string, status store.Status, result json.RawMessage) (store.Record, bool, bool) {
			return store.Record{}, false, false // task was deleted between tick and response
		},
	}
	fetcher := &mocks.StatusFetcherMock{
		StatusFunc: func(ctx context.Context, id string) (backend.StatusReply, error) {
			return backend.StatusReply{Status: store.StatusSuccess}, nil
		},
	}
	handler := &mocks.EventHandlerMock{OnTaskCompleteFunc: func(rec store.Record) {}}

	p := Poller{Store: st, Fetcher: fetcher, EventHandler: handler, Interval: 10 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, p.Run(ctx))

	assert.NotEmpty(t, st.ApplyStatusCalls())
	assert.Empty(t, handler.OnTaskCompleteCalls(), "discarded response fires no events")
}

func TestPoller_SingleInFlightPerTask(t *testing.T) {
	var concurrent, maxConcurrent int32
	release := make(chan struct{})
	var once sync.Once

	st := &mocks.StoreMock{
		NonTerminalFunc: func() []string { return []string{"slow"} },
		ApplyStatusFunc: func(id string, status store.Status, result json.RawMessage) (store.Record, bool, bool) {
			return store.Record{ID: id, Status: status}, false, true
		},
	}
	fetcher := &mocks.StatusFetcherMock{
		StatusFunc: func(ctx context.Context, id string) (backend.StatusReply, error) {
			cur := atomic.AddInt32(&concurrent, 1)
			for {
				max := atomic.LoadInt32(&maxConcurrent)
				if cur <= max || atomic.CompareAndSwapInt32(&maxConcurrent, max, cur) {
					break
				}
			}
			<-release // hold the request well past several ticks
			atomic.AddInt32(&concurrent, -1)
			return backend.StatusReply{Status: store.StatusProcessing}, nil
		},
	}

	p := Poller{Store: st, Fetcher: fetcher, Interval: 10 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(150 * time.Millisecond) // ~15 ticks while the first fetch hangs
		once.Do(func() { close(release) })
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	require.NoError(t, p.Run(ctx))

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxConcurrent), "slow fetch skips ticks instead of stacking")
}

func TestPoller_RefusesDoubleStart(t *testing.T) {
	st := &mocks.StoreMock{NonTerminalFunc: func() []string { return []string{} }}
	p := Poller{Store: st, Fetcher: &mocks.StatusFetcherMock{}, Interval: 10 * time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	started := make(chan struct{})
	go func() {
		close(started)
		_ = p.Run(ctx)
	}()
	<-started
	time.Sleep(20 * time.Millisecond)

	err := p.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
}
