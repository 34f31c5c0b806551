package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billnote/notewatch/app/store"
)

func TestClient_Submit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate_note", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"video_url":"https://example.com/v","platform":"bilibili"}`, string(body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"task_id":"t1","msg":"accepted"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, time.Second)
	id, err := c.Submit(context.Background(), json.RawMessage(`{"video_url":"https://example.com/v","platform":"bilibili"}`))
	require.NoError(t, err)
	assert.Equal(t, "t1", id)
}

func TestClient_SubmitRejected(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{name: "json error body", status: http.StatusUnprocessableEntity, body: `{"msg":"unsupported url"}`,
			wantStatus: http.StatusUnprocessableEntity, wantMsg: "unsupported url"},
		{name: "plain text body", status: http.StatusInternalServerError, body: "boom",
			wantStatus: http.StatusInternalServerError, wantMsg: "boom"},
		{name: "empty body falls back to status line", status: http.StatusBadGateway, body: "",
			wantStatus: http.StatusBadGateway, wantMsg: "502 Bad Gateway"},
		{name: "ok status but no task id", status: http.StatusOK, body: `{"msg":"queued"}`,
			wantStatus: http.StatusOK, wantMsg: "backend response missing task_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c := New(ts.URL, time.Second)
			_, err := c.Submit(context.Background(), json.RawMessage(`{}`))
			require.Error(t, err)

			var submissionErr *SubmissionError
			require.True(t, errors.As(err, &submissionErr))
			assert.Equal(t, tt.wantStatus, submissionErr.StatusCode)
			assert.Equal(t, tt.wantMsg, submissionErr.Msg)
		})
	}
}

func TestClient_SubmitConnectionFailure(t *testing.T) {
	c := New("http://127.0.0.1:1", 100*time.Millisecond)
	_, err := c.Submit(context.Background(), json.RawMessage(`{}`))
	require.Error(t, err)
	var submissionErr *SubmissionError
	assert.True(t, errors.As(err, &submissionErr))
}

func TestClient_Status(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/task_status/t1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"SUCCESS","result":{"markdown":"# note"}}`))
	}))
	defer ts.Close()

	c := New(ts.URL+"/", time.Second) // trailing slash trimmed
	reply, err := c.Status(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, store.StatusSuccess, reply.Status)
	assert.JSONEq(t, `{"markdown":"# note"}`, string(reply.Result))
}

func TestClient_StatusErrors(t *testing.T) {
	t.Run("non-200 response", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		c := New(ts.URL, time.Second)
		_, err := c.Status(context.Background(), "t1")
		require.Error(t, err)
		var fetchErr *FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Equal(t, "t1", fetchErr.TaskID)
	})

	t.Run("broken body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer ts.Close()

		c := New(ts.URL, time.Second)
		_, err := c.Status(context.Background(), "t1")
		var fetchErr *FetchError
		require.True(t, errors.As(err, &fetchErr))
	})

	t.Run("unknown status value", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"EXPLODED"}`))
		}))
		defer ts.Close()

		c := New(ts.URL, time.Second)
		_, err := c.Status(context.Background(), "t1")
		var fetchErr *FetchError
		require.True(t, errors.As(err, &fetchErr), "unknown status is a decode failure, not a silent NONE")
	})

	t.Run("connection refused", func(t *testing.T) {
		c := New("http://127.0.0.1:1", 100*time.Millisecond)
		_, err := c.Status(context.Background(), "t1")
		var fetchErr *FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Error(t, fetchErr.Unwrap())
	})
}

func TestClient_Delete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/delete_task", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"task_id":"t1","platform":"bilibili"}`, string(body))
	}))
	defer ts.Close()

	c := New(ts.URL, time.Second)
	require.NoError(t, c.Delete(context.Background(), "bilibili", "t1"))
}

func TestClient_DeleteFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := New(ts.URL, time.Second)
	err := c.Delete(context.Background(), "bilibili", "t1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected response")
}

func TestClient_DefaultTimeout(t *testing.T) {
	c := New("http://localhost:8000", 0)
	assert.Equal(t, 30*time.Second, c.client.Timeout)
	assert.Equal(t, "http://localhost:8000", c.baseURL)
}
