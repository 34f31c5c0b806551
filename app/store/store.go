package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/go-pkgz/lgr"
)

// ErrNotFound returned for operations on a task id not present in the table
var ErrNotFound = errors.New("task not found")

// Persister defines durable storage for the task table and attempt history.
// Save gets the complete table on every call, replacing whatever was stored before.
type Persister interface {
	Load() (records []Record, currentID string, err error)
	Save(records []Record, currentID string) error
	RecordAttempt(a Attempt) error
	Attempts(taskID string, limit int) ([]Attempt, error)
	CleanupAttempts(taskID string, keep int) error
	Close() error
}

// Store is the in-memory table of tracked tasks with a single current (focus)
// pointer. Every mutation is a read-modify-write under one lock, followed by a
// write-through of the full snapshot to the persister. Persister failures are
// logged and never corrupt the in-memory state.
type Store struct {
	mu        sync.RWMutex
	records   map[string]Record
	currentID string
	persister Persister // may be nil for memory-only operation
}

// New makes a store backed by the given persister, nil persister makes
// a memory-only store
func New(p Persister) *Store {
	return &Store{records: make(map[string]Record), persister: p}
}

// Load populates the table from the persister. A current pointer referencing a
// missing record is dropped instead of violating the table invariant.
func (s *Store) Load() error {
	if s.persister == nil {
		return nil
	}
	records, currentID, err := s.persister.Load()
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.records[r.ID] = r
	}
	if _, ok := s.records[currentID]; ok {
		s.currentID = currentID
	} else if currentID != "" {
		log.Printf("[WARN] dropping dangling current task %q", currentID)
	}
	log.Printf("[INFO] loaded %d tasks, current %q", len(s.records), s.currentID)
	return nil
}

// Upsert inserts a new record or merges into the existing one by id following
// the monotonic-status rule: a terminal status is never overwritten and a
// lower-rank status never replaces a higher one. Zero-value fields of the
// incoming record don't erase existing data. Returns the resulting record and
// whether this call moved the task into a terminal status.
func (s *Store) Upsert(rec Record) (Record, bool) {
	now := time.Now()

	s.mu.Lock()
	cur, exists := s.records[rec.ID]
	if !exists {
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		rec.UpdatedAt = now
		s.records[rec.ID] = rec
		s.mu.Unlock()
		s.persist()
		return rec, rec.Status.Terminal()
	}

	if cur.Status.Terminal() || rec.Status.rank() < cur.Status.rank() {
		s.mu.Unlock()
		return cur, false
	}

	transitioned := rec.Status.Terminal()
	cur.Status = rec.Status
	if len(rec.Result) > 0 {
		cur.Result = rec.Result
	}
	if len(rec.FormData) > 0 {
		cur.FormData = rec.FormData
	}
	if rec.Platform != "" {
		cur.Platform = rec.Platform
	}
	cur.UpdatedAt = now
	s.records[cur.ID] = cur
	s.mu.Unlock()

	s.persist()
	return cur, transitioned
}

// ApplyStatus merges a poll response into an existing record. Responses for
// tasks no longer tracked are discarded (ok=false) rather than resurrecting a
// deleted record. Stale responses, ones that would move the status backward or
// touch a terminal record, are discarded too.
func (s *Store) ApplyStatus(id string, status Status, result json.RawMessage) (rec Record, transitioned, ok bool) {
	s.mu.Lock()
	cur, found := s.records[id]
	if !found {
		s.mu.Unlock()
		return Record{}, false, false
	}
	if cur.Status.Terminal() || status.rank() < cur.Status.rank() {
		s.mu.Unlock()
		return cur, false, true
	}
	if status == cur.Status && len(result) == 0 { // nothing new, skip the write-through
		s.mu.Unlock()
		return cur, false, true
	}

	transitioned = status.Terminal()
	cur.Status = status
	if len(result) > 0 {
		cur.Result = result
	}
	cur.UpdatedAt = time.Now()
	s.records[id] = cur
	s.mu.Unlock()

	s.persist()
	return cur, transitioned, true
}

// Get returns the record by id
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

// List returns all records, most recently created first
func (s *Store) List() []Record {
	s.mu.RLock()
	res := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		res = append(res, rec)
	}
	s.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID < res[j].ID
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res
}

// NonTerminal returns ids of tasks still in flight, i.e. with absent, PENDING
// or PROCESSING status. Used by the poller to decide what to fetch.
func (s *Store) NonTerminal() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := []string{}
	for id, rec := range s.records {
		if !rec.Status.Terminal() {
			res = append(res, id)
		}
	}
	sort.Strings(res)
	return res
}

// Current returns the focused record, ok=false if no focus set
func (s *Store) Current() (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentID == "" {
		return Record{}, false
	}
	rec, ok := s.records[s.currentID]
	return rec, ok
}

// CurrentID returns the id of the focused task, empty if none
func (s *Store) CurrentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentID
}

// SetCurrent moves the focus pointer. Empty id clears the focus. Setting to an
// id not present in the table is a no-op, callers must upsert first.
func (s *Store) SetCurrent(id string) {
	s.mu.Lock()
	if id != "" {
		if _, ok := s.records[id]; !ok {
			s.mu.Unlock()
			log.Printf("[WARN] ignored select of unknown task %q", id)
			return
		}
	}
	if s.currentID == id {
		s.mu.Unlock()
		return
	}
	s.currentID = id
	s.mu.Unlock()
	s.persist()
}

// Remove deletes the record. If it was the focused task the focus is cleared.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	if _, ok := s.records[id]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.records, id)
	if s.currentID == id {
		s.currentID = ""
	}
	s.mu.Unlock()
	s.persist()
}

// Reset re-arms an existing record slot for a retry: form data replaced, status
// back to PENDING, prior result cleared. When the backend reissues the task id
// the record is re-keyed and the focus pointer follows. CreatedAt is preserved,
// the retried task keeps its place in the list.
func (s *Store) Reset(id, newID string, formData json.RawMessage) (Record, error) {
	s.mu.Lock()
	rec, ok := s.records[id]
	if !ok {
		s.mu.Unlock()
		return Record{}, fmt.Errorf("can't reset task %q: %w", id, ErrNotFound)
	}

	if newID == "" {
		newID = id
	}
	if newID != id {
		delete(s.records, id)
		if s.currentID == id {
			s.currentID = newID
		}
		rec.ID = newID
	}
	if len(formData) > 0 {
		rec.FormData = formData
	}
	rec.Status = StatusPending
	rec.Result = nil
	rec.UpdatedAt = time.Now()
	s.records[newID] = rec
	s.mu.Unlock()

	s.persist()
	return rec, nil
}

// RecordAttempt appends an entry to the task's attempt history. History is
// best-effort, failures are logged and don't affect the table.
func (s *Store) RecordAttempt(a Attempt) {
	if s.persister == nil {
		return
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	if err := s.persister.RecordAttempt(a); err != nil {
		log.Printf("[WARN] failed to record attempt for task %s: %v", a.TaskID, err)
	}
}

// Attempts returns up to limit history entries for the task, newest first
func (s *Store) Attempts(id string, limit int) ([]Attempt, error) {
	if s.persister == nil {
		return []Attempt{}, nil
	}
	return s.persister.Attempts(id, limit)
}

// Cleanup trims attempt history of every tracked task to keep entries.
// Task records themselves are never evicted, removal is always explicit.
func (s *Store) Cleanup(keep int) {
	if s.persister == nil || keep <= 0 {
		return
	}
	s.mu.RLock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		if err := s.persister.CleanupAttempts(id, keep); err != nil {
			log.Printf("[WARN] failed to cleanup attempts for task %s: %v", id, err)
		}
	}
}

// Close flushes nothing (writes are synchronous) and closes the persister
func (s *Store) Close() error {
	if s.persister == nil {
		return nil
	}
	return s.persister.Close()
}

// persist writes the full snapshot through to the persister. Called after the
// mutation lock is released, on a snapshot taken under the read lock, following
// the same pattern as the rest of the mutators.
func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	s.mu.RLock()
	records := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	currentID := s.currentID
	s.mu.RUnlock()

	if err := s.persister.Save(records, currentID); err != nil {
		log.Printf("[WARN] failed to persist tasks: %v", err)
	}
}
