// Package backend implements the client for the note-generation service API.
// The service is consumed as a black box: submit a generation request, fetch
// task status by id, delete a task.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/billnote/notewatch/app/store"
)

// Client talks to the note-generation backend over HTTP
type Client struct {
	baseURL string
	client  *http.Client
}

// StatusReply is the backend's answer to a status fetch
type StatusReply struct {
	Status store.Status    `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
}

// SubmissionError indicates the backend rejected a generation request.
// Surfaced to the submit caller as-is, no local state is created on it.
type SubmissionError struct {
	StatusCode int
	Msg        string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission rejected (%d): %s", e.StatusCode, e.Msg)
}

// FetchError indicates a transient failure while polling task status. Never
// treated as a task failure, the poll is retried on the next tick.
type FetchError struct {
	TaskID string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch status for task %s: %v", e.TaskID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// New makes a backend client for the given base url
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Submit posts a generation request and returns the backend-assigned task id
func (c *Client) Submit(ctx context.Context, payload json.RawMessage) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate_note", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to make submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &SubmissionError{StatusCode: 0, Msg: err.Error()}
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return "", &SubmissionError{StatusCode: resp.StatusCode, Msg: err.Error()}
	}

	var reply struct {
		TaskID string `json:"task_id"`
		Msg    string `json:"msg"`
	}
	_ = json.Unmarshal(body, &reply) // tolerate non-json error bodies

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := reply.Msg
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		if msg == "" {
			msg = resp.Status
		}
		return "", &SubmissionError{StatusCode: resp.StatusCode, Msg: msg}
	}

	if reply.TaskID == "" {
		return "", &SubmissionError{StatusCode: resp.StatusCode, Msg: "backend response missing task_id"}
	}
	return reply.TaskID, nil
}

// Status fetches the current state of the task. Safe to call repeatedly,
// the endpoint is idempotent.
func (c *Client) Status(ctx context.Context, id string) (StatusReply, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/task_status/"+id, http.NoBody)
	if err != nil {
		return StatusReply{}, &FetchError{TaskID: id, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return StatusReply{}, &FetchError{TaskID: id, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return StatusReply{}, &FetchError{TaskID: id, Err: fmt.Errorf("unexpected response %s", resp.Status)}
	}

	var reply StatusReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return StatusReply{}, &FetchError{TaskID: id, Err: fmt.Errorf("failed to decode status: %w", err)}
	}
	return reply, nil
}

// Delete removes the task on the backend. Idempotent, safe to retry.
func (c *Client) Delete(ctx context.Context, platform, id string) error {
	body, err := json.Marshal(map[string]string{"task_id": id, "platform": platform})
	if err != nil {
		return fmt.Errorf("failed to marshal delete request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/delete_task", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make delete request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("failed to delete task %s: unexpected response %s", id, resp.Status)
	}
	return nil
}
