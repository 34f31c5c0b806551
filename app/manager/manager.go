// Package manager provides the lifecycle controller for generation tasks,
// the single entry point used by UI-facing code to mutate task state.
package manager

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/billnote/notewatch/app/store"
)

//go:generate moq -out mocks/backend.go -pkg mocks -skip-ensure -fmt goimports . Backend
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier
//go:generate moq -out mocks/repeater.go -pkg mocks -skip-ensure -fmt goimports . Repeater

// Backend defines the note-generation service operations the manager consumes
type Backend interface {
	Submit(ctx context.Context, payload json.RawMessage) (string, error)
	Delete(ctx context.Context, platform, id string) error
}

// Notifier defines delivery of task completion and failure notifications
type Notifier interface {
	SendCompletion(ctx context.Context, msg string) error
	SendFailure(ctx context.Context, msg string) error
	IsOnCompletion() bool
	IsOnFailure() bool
}

// Repeater repeats failed function
type Repeater interface {
	Do(ctx context.Context, fun func() error, errors ...error) (err error)
}

// Manager enforces the task lifecycle invariants: records are created on
// submit only, status moves forward only, the terminal-to-PENDING edge exists
// solely through an explicit retry, and there is a single focus pointer.
type Manager struct {
	Store         *store.Store
	Backend       Backend
	Notifier      Notifier // optional
	Repeater      Repeater // optional, wraps delete and notification delivery
	HostName      string
	NotifyTimeout time.Duration
}

// Submit sends a new generation request to the backend and registers the
// returned task as PENDING and current. A backend rejection is surfaced to the
// caller as-is and leaves no local state behind, retry at this layer is always
// explicit and user-initiated.
func (m *Manager) Submit(ctx context.Context, platform string, payload json.RawMessage) (string, error) {
	if len(payload) == 0 {
		return "", fmt.Errorf("empty form payload")
	}

	id, err := m.Backend.Submit(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("failed to submit task: %w", err)
	}

	if _, exists := m.Store.Get(id); exists {
		// backend reissued an id we already track (same source resubmitted),
		// re-arm the existing slot instead of merging into a possibly terminal record
		if _, err := m.Store.Reset(id, id, payload); err != nil {
			return "", err
		}
	} else {
		m.Store.Upsert(store.Record{ID: id, Platform: platform, FormData: payload, Status: store.StatusPending})
	}
	m.Store.SetCurrent(id)
	m.Store.RecordAttempt(store.Attempt{TaskID: id, Event: store.AttemptSubmitted, Status: store.StatusPending})
	log.Printf("[INFO] task %s submitted for platform %s", id, platform)
	return id, nil
}

// Retry re-submits the payload under the existing record slot: status back to
// PENDING, prior result cleared, polling picks it up again. The backend may
// echo the same task id or reissue a new one, either way the slot identity is
// preserved and the focus pointer is left where it was.
func (m *Manager) Retry(ctx context.Context, id string, payload json.RawMessage) error {
	rec, ok := m.Store.Get(id)
	if !ok {
		return fmt.Errorf("can't retry task %q: %w", id, store.ErrNotFound)
	}
	if len(payload) == 0 {
		payload = rec.FormData
	}

	body, err := withTaskID(payload, id)
	if err != nil {
		return fmt.Errorf("failed to prepare retry payload: %w", err)
	}
	newID, err := m.Backend.Submit(ctx, body)
	if err != nil {
		return fmt.Errorf("failed to retry task %s: %w", id, err)
	}

	if _, err := m.Store.Reset(id, newID, payload); err != nil {
		return err
	}
	m.Store.RecordAttempt(store.Attempt{TaskID: newID, Event: store.AttemptRetried, Status: store.StatusPending})
	if newID != id {
		log.Printf("[INFO] task %s retried, backend reissued id %s", id, newID)
		return nil
	}
	log.Printf("[INFO] task %s retried", id)
	return nil
}

// SelectCurrent switches the focus to the given task, empty id clears it
// ("start a new note"). Selecting an unknown id is a no-op.
func (m *Manager) SelectCurrent(id string) {
	m.Store.SetCurrent(id)
}

// Current returns the focused task record, ok=false when nothing selected.
// Pure read, recomputed from the store on every call.
func (m *Manager) Current() (store.Record, bool) {
	return m.Store.Current()
}

// Delete removes the task on the backend and then locally. The backend call is
// idempotent and wrapped in the repeater, the local record survives if the
// backend removal ultimately fails.
func (m *Manager) Delete(ctx context.Context, id string) error {
	rec, ok := m.Store.Get(id)
	if !ok {
		return fmt.Errorf("can't delete task %q: %w", id, store.ErrNotFound)
	}

	err := m.repeat(ctx, func() error { return m.Backend.Delete(ctx, rec.Platform, id) })
	if err != nil {
		return fmt.Errorf("failed to delete task %s on backend: %w", id, err)
	}

	m.Store.Remove(id)
	log.Printf("[INFO] task %s deleted", id)
	return nil
}

// OnTaskComplete implements poller.EventHandler, invoked when a poll response
// moves a task into SUCCESS or FAILED. Records the attempt history entry and
// sends the notification, notification failures never propagate.
func (m *Manager) OnTaskComplete(rec store.Record) {
	event := store.AttemptCompleted
	if rec.Status == store.StatusFailed {
		event = store.AttemptFailed
	}
	m.Store.RecordAttempt(store.Attempt{TaskID: rec.ID, Event: event, Status: rec.Status})
	m.notify(rec)
}

func (m *Manager) notify(rec store.Record) {
	if m.Notifier == nil || reflect.ValueOf(m.Notifier).IsNil() {
		return
	}

	failed := rec.Status == store.StatusFailed
	if failed && !m.Notifier.IsOnFailure() {
		return
	}
	if !failed && !m.Notifier.IsOnCompletion() {
		return
	}

	timeout := m.NotifyTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	msg := fmt.Sprintf("note generation for task %s (%s) completed on %s", rec.ID, rec.Platform, m.HostName)
	send := m.Notifier.SendCompletion
	if failed {
		msg = fmt.Sprintf("note generation for task %s (%s) failed on %s", rec.ID, rec.Platform, m.HostName)
		send = m.Notifier.SendFailure
	}

	if err := m.repeat(ctx, func() error { return send(ctx, msg) }); err != nil {
		log.Printf("[WARN] failed to notify about task %s: %v", rec.ID, err)
	}
}

func (m *Manager) repeat(ctx context.Context, fun func() error) error {
	if m.Repeater == nil || reflect.ValueOf(m.Repeater).IsNil() {
		return fun()
	}
	return m.Repeater.Do(ctx, fun)
}

// withTaskID injects the task id into the otherwise opaque form payload, the
// backend uses it to associate the retry with the original task
func withTaskID(payload json.RawMessage, id string) (json.RawMessage, error) {
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("form payload is not a json object: %w", err)
	}
	fields["task_id"] = id
	res, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return res, nil
}
