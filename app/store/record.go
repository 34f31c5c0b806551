// Package store keeps the table of tracked generation tasks with a single
// focus pointer and write-through persistence.
package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status represents the backend-reported state of a generation task.
// StatusNone means the task was submitted but not yet acknowledged by the backend.
type Status int

// task statuses, ordered by progress
const (
	StatusNone Status = iota
	StatusPending
	StatusProcessing
	StatusSuccess
	StatusFailed
)

var statusNames = map[Status]string{
	StatusNone:       "NONE",
	StatusPending:    "PENDING",
	StatusProcessing: "PROCESSING",
	StatusSuccess:    "SUCCESS",
	StatusFailed:     "FAILED",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus converts a wire or database value to Status. Values are matched
// case-insensitive, empty string maps to StatusNone.
func ParseStatus(v string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "", "NONE":
		return StatusNone, nil
	case "PENDING":
		return StatusPending, nil
	case "PROCESSING":
		return StatusProcessing, nil
	case "SUCCESS":
		return StatusSuccess, nil
	case "FAILED":
		return StatusFailed, nil
	default:
		return StatusNone, fmt.Errorf("unknown status %q", v)
	}
}

// Terminal reports whether the status ends the task lifecycle. Terminal tasks
// are not polled and their status is never changed by poll responses.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// rank orders statuses for the monotonic merge rule. Both terminal states share
// the top rank, so neither can replace the other.
func (s Status) rank() int {
	if s.Terminal() {
		return int(StatusSuccess)
	}
	return int(s)
}

// MarshalText implements encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Record represents a tracked generation task. FormData is the exact submission
// payload and is retained after the task completes or fails, so the originating
// form can be re-rendered and the task retried.
type Record struct {
	ID        string          `json:"id"`
	Platform  string          `json:"platform,omitempty"`
	FormData  json.RawMessage `json:"form_data,omitempty"`
	Status    Status          `json:"status"`
	Result    json.RawMessage `json:"result,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Attempt represents one entry of a task's attempt history
type Attempt struct {
	ID        int       `json:"id"`
	TaskID    string    `json:"task_id"`
	Event     string    `json:"event"`
	Status    Status    `json:"status"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// attempt history events
const (
	AttemptSubmitted = "submitted"
	AttemptRetried   = "retried"
	AttemptCompleted = "completed"
	AttemptFailed    = "failed"
)
