package manager

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billnote/notewatch/app/manager/mocks"
	"github.com/billnote/notewatch/app/store"
)

func TestManager_Submit(t *testing.T) {
	st := store.New(nil)
	bk := &mocks.BackendMock{
		SubmitFunc: func(ctx context.Context, payload json.RawMessage) (string, error) { return "t1", nil },
	}
	m := Manager{Store: st, Backend: bk}

	id, err := m.Submit(context.Background(), "bilibili", json.RawMessage(`{"video_url":"https://example.com/v"}`))
	require.NoError(t, err)
	assert.Equal(t, "t1", id)

	rec, ok := st.Get("t1")
	require.True(t, ok)
	assert.Equal(t, store.StatusPending, rec.Status)
	assert.Equal(t, "bilibili", rec.Platform)
	cur, ok := m.Current()
	require.True(t, ok, "submitted task becomes current")
	assert.Equal(t, "t1", cur.ID)
	assert.Equal(t, store.StatusPending, cur.Status)

	require.Len(t, bk.SubmitCalls(), 1)
	assert.JSONEq(t, `{"video_url":"https://example.com/v"}`, string(bk.SubmitCalls()[0].Payload))
}

func TestManager_SubmitRejected(t *testing.T) {
	st := store.New(nil)
	bk := &mocks.BackendMock{
		SubmitFunc: func(ctx context.Context, payload json.RawMessage) (string, error) {
			return "", errors.New("backend down")
		},
	}
	m := Manager{Store: st, Backend: bk}

	_, err := m.Submit(context.Background(), "bilibili", json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Empty(t, st.List(), "rejected submission leaves no record behind")
	assert.Equal(t, "", st.CurrentID())

	_, err = m.Submit(context.Background(), "bilibili", nil)
	require.Error(t, err, "empty payload rejected locally")
	assert.Len(t, bk.SubmitCalls(), 1, "no backend call for empty payload")
}

func TestManager_SubmitReissuedExistingID(t *testing.T) {
	st := store.New(nil)
	st.Upsert(store.Record{ID: "t1", Platform: "bilibili", Status: store.StatusSuccess,
		Result: json.RawMessage(`{"markdown":"old"}`)})
	bk := &mocks.BackendMock{
		SubmitFunc: func(ctx context.Context, payload json.RawMessage) (string, error) { return "t1", nil },
	}
	m := Manager{Store: st, Backend: bk}

	id, err := m.Submit(context.Background(), "bilibili", json.RawMessage(`{"video_url":"v2"}`))
	require.NoError(t, err)
	assert.Equal(t, "t1", id)

	rec, _ := st.Get("t1")
	assert.Equal(t, store.StatusPending, rec.Status, "existing slot re-armed, not stuck terminal")
	assert.Nil(t, rec.Result)
}

func TestManager_Retry(t *testing.T) {
	st := store.New(nil)
	st.Upsert(store.Record{ID: "t1", Platform: "bilibili", Status: store.StatusFailed,
		FormData: json.RawMessage(`{"video_url":"v1"}`), Result: json.RawMessage(`{"error":"boom"}`)})
	st.SetCurrent("t1")

	bk := &mocks.BackendMock{
		SubmitFunc: func(ctx context.Context, payload json.RawMessage) (string, error) { return "t1", nil },
	}
	m := Manager{Store: st, Backend: bk}

	require.NoError(t, m.Retry(context.Background(), "t1", nil))

	rec, _ := st.Get("t1")
	assert.Equal(t, store.StatusPending, rec.Status)
	assert.Nil(t, rec.Result, "prior result cleared")
	assert.Equal(t, "t1", st.CurrentID())

	require.Len(t, bk.SubmitCalls(), 1)
	var sent map[string]any
	require.NoError(t, json.Unmarshal(bk.SubmitCalls()[0].Payload, &sent))
	assert.Equal(t, "t1", sent["task_id"], "retry payload carries the original task id")
	assert.Equal(t, "v1", sent["video_url"], "stored form data reused when no override given")
}

func TestManager_RetryReissuedID(t *testing.T) {
	st := store.New(nil)
	st.Upsert(store.Record{ID: "t1", Status: store.StatusFailed, FormData: json.RawMessage(`{"a":1}`)})
	st.SetCurrent("t1")

	bk := &mocks.BackendMock{
		SubmitFunc: func(ctx context.Context, payload json.RawMessage) (string, error) { return "t2", nil },
	}
	m := Manager{Store: st, Backend: bk}

	require.NoError(t, m.Retry(context.Background(), "t1", nil))

	_, ok := st.Get("t1")
	assert.False(t, ok)
	rec, ok := st.Get("t2")
	require.True(t, ok)
	assert.Equal(t, store.StatusPending, rec.Status)
	assert.Equal(t, "t2", st.CurrentID(), "focus follows the reissued id")
}

func TestManager_RetryErrors(t *testing.T) {
	st := store.New(nil)
	m := Manager{Store: st, Backend: &mocks.BackendMock{}}

	err := m.Retry(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, store.ErrNotFound)

	st.Upsert(store.Record{ID: "t1", Status: store.StatusFailed, FormData: json.RawMessage(`"not an object"`)})
	m.Backend = &mocks.BackendMock{
		SubmitFunc: func(ctx context.Context, payload json.RawMessage) (string, error) { return "t1", nil },
	}
	err = m.Retry(context.Background(), "t1", nil)
	require.Error(t, err, "payload must be a json object to carry the task id")

	st.Upsert(store.Record{ID: "t2", Status: store.StatusFailed, FormData: json.RawMessage(`{"a":1}`)})
	m.Backend = &mocks.BackendMock{
		SubmitFunc: func(ctx context.Context, payload json.RawMessage) (string, error) {
			return "", errors.New("backend down")
		},
	}
	err = m.Retry(context.Background(), "t2", nil)
	require.Error(t, err)
	rec, _ := st.Get("t2")
	assert.Equal(t, store.StatusFailed, rec.Status, "failed re-submission leaves the record untouched")
}

func TestManager_SelectAndCurrent(t *testing.T) {
	st := store.New(nil)
	st.Upsert(store.Record{ID: "t1", Status: store.StatusPending})
	m := Manager{Store: st, Backend: &mocks.BackendMock{}}

	_, ok := m.Current()
	assert.False(t, ok)

	m.SelectCurrent("t1")
	rec, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "t1", rec.ID)

	m.SelectCurrent("")
	_, ok = m.Current()
	assert.False(t, ok, "empty select starts a new note")
}

func TestManager_Delete(t *testing.T) {
	st := store.New(nil)
	st.Upsert(store.Record{ID: "t1", Platform: "youtube", Status: store.StatusSuccess})
	st.SetCurrent("t1")

	bk := &mocks.BackendMock{
		DeleteFunc: func(ctx context.Context, platform, id string) error { return nil },
	}
	m := Manager{Store: st, Backend: bk}

	require.NoError(t, m.Delete(context.Background(), "t1"))
	_, ok := st.Get("t1")
	assert.False(t, ok)
	assert.Equal(t, "", st.CurrentID())

	require.Len(t, bk.DeleteCalls(), 1)
	assert.Equal(t, "youtube", bk.DeleteCalls()[0].Platform)

	assert.ErrorIs(t, m.Delete(context.Background(), "t1"), store.ErrNotFound)
}

func TestManager_DeleteBackendFailure(t *testing.T) {
	st := store.New(nil)
	st.Upsert(store.Record{ID: "t1", Status: store.StatusSuccess})

	rp := &mocks.RepeaterMock{
		DoFunc: func(ctx context.Context, fun func() error, errs ...error) error {
			_ = fun()
			return errors.New("failed after retries")
		},
	}
	m := Manager{
		Store:    st,
		Backend:  &mocks.BackendMock{DeleteFunc: func(ctx context.Context, platform, id string) error { return errors.New("boom") }},
		Repeater: rp,
	}

	require.Error(t, m.Delete(context.Background(), "t1"))
	_, ok := st.Get("t1")
	assert.True(t, ok, "local record survives a failed backend delete")
	assert.Len(t, rp.DoCalls(), 1)
}

func TestManager_OnTaskComplete(t *testing.T) {
	st := store.New(nil)
	nt := &mocks.NotifierMock{
		IsOnCompletionFunc: func() bool { return true },
		IsOnFailureFunc:    func() bool { return true },
		SendCompletionFunc: func(ctx context.Context, msg string) error { return nil },
		SendFailureFunc:    func(ctx context.Context, msg string) error { return nil },
	}
	m := Manager{Store: st, Backend: &mocks.BackendMock{}, Notifier: nt, HostName: "host1", NotifyTimeout: time.Second}

	m.OnTaskComplete(store.Record{ID: "t1", Platform: "bilibili", Status: store.StatusSuccess})
	require.Len(t, nt.SendCompletionCalls(), 1)
	assert.Contains(t, nt.SendCompletionCalls()[0].Msg, "t1")
	assert.Contains(t, nt.SendCompletionCalls()[0].Msg, "host1")
	assert.Empty(t, nt.SendFailureCalls())

	m.OnTaskComplete(store.Record{ID: "t2", Status: store.StatusFailed})
	require.Len(t, nt.SendFailureCalls(), 1)
	assert.Contains(t, nt.SendFailureCalls()[0].Msg, "failed")
}

func TestManager_OnTaskCompleteDisabledKinds(t *testing.T) {
	st := store.New(nil)
	nt := &mocks.NotifierMock{
		IsOnCompletionFunc: func() bool { return false },
		IsOnFailureFunc:    func() bool { return true },
		SendCompletionFunc: func(ctx context.Context, msg string) error { return nil },
		SendFailureFunc:    func(ctx context.Context, msg string) error { return nil },
	}
	m := Manager{Store: st, Backend: &mocks.BackendMock{}, Notifier: nt}

	m.OnTaskComplete(store.Record{ID: "t1", Status: store.StatusSuccess})
	assert.Empty(t, nt.SendCompletionCalls(), "completion notifications disabled")

	m.OnTaskComplete(store.Record{ID: "t2", Status: store.StatusFailed})
	assert.Len(t, nt.SendFailureCalls(), 1)
}

func TestManager_OnTaskCompleteNilNotifier(t *testing.T) {
	st := store.New(nil)
	m := Manager{Store: st, Backend: &mocks.BackendMock{}}
	m.OnTaskComplete(store.Record{ID: "t1", Status: store.StatusSuccess}) // no panic

	var typedNil *mocks.NotifierMock
	m.Notifier = typedNil
	m.OnTaskComplete(store.Record{ID: "t1", Status: store.StatusSuccess}) // typed nil handled too
}

func TestManager_NotifyFailureAbsorbed(t *testing.T) {
	st := store.New(nil)
	nt := &mocks.NotifierMock{
		IsOnCompletionFunc: func() bool { return true },
		SendCompletionFunc: func(ctx context.Context, msg string) error { return errors.New("smtp down") },
	}
	m := Manager{Store: st, Backend: &mocks.BackendMock{}, Notifier: nt}

	m.OnTaskComplete(store.Record{ID: "t1", Status: store.StatusSuccess}) // error logged, not propagated
	assert.Len(t, nt.SendCompletionCalls(), 1)
}
