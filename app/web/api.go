package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/invopop/jsonschema"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/billnote/notewatch/app/backend"
	"github.com/billnote/notewatch/app/store"
)

// SubmitRequest is the POST /api/v1/tasks body. Payload is passed to the
// note-generation backend as-is.
type SubmitRequest struct {
	Platform string          `json:"platform" jsonschema:"required,enum=bilibili,enum=youtube,enum=douyin,enum=local,title=Media platform"`
	Payload  json.RawMessage `json:"payload" jsonschema:"required,title=Generation form payload"`
}

// SubmitResponse is the JSON response for a successful submission
type SubmitResponse struct {
	TaskID string `json:"task_id"`
}

// APITask represents a task in JSON API responses
type APITask struct {
	ID        string          `json:"id"`
	Platform  string          `json:"platform,omitempty"`
	Status    string          `json:"status"`
	Current   bool            `json:"current"`
	Result    json.RawMessage `json:"result,omitempty"`
	FormData  json.RawMessage `json:"form_data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// APIStats represents aggregated statistics in JSON API responses
type APIStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Success    int `json:"success"`
	Failed     int `json:"failed"`
}

// StatusResponse is the JSON response for /api/v1/status
type StatusResponse struct {
	Tasks     []APITask `json:"tasks"`
	Stats     APIStats  `json:"stats"`
	CurrentID string    `json:"current_id,omitempty"`
	Hostname  string    `json:"hostname,omitempty"`
	Version   string    `json:"version,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// APIAttempt represents an attempt history entry in JSON API responses
type APIAttempt struct {
	ID        int       `json:"id"`
	Event     string    `json:"event"`
	Status    string    `json:"status"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryResponse is the JSON response for task attempt history
type HistoryResponse struct {
	Task     APITask      `json:"task"`
	Attempts []APIAttempt `json:"attempts"`
}

// SystemResponse is the JSON response for /api/v1/system, mirrors what the
// note-generation UI shows in its environment check panel
type SystemResponse struct {
	Hostname    string    `json:"hostname,omitempty"`
	Uptime      string    `json:"uptime"`
	CPUPercent  float64   `json:"cpu_percent"`
	MemPercent  float64   `json:"mem_percent"`
	MemTotal    uint64    `json:"mem_total"`
	MemUsed     uint64    `json:"mem_used"`
	DiskPercent float64   `json:"disk_percent"`
	DiskFree    uint64    `json:"disk_free"`
	LoadAvg1    float64   `json:"load_avg_1,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func (s *Server) toAPITask(rec store.Record) APITask {
	return APITask{
		ID:        rec.ID,
		Platform:  rec.Platform,
		Status:    rec.Status.String(),
		Current:   rec.ID == s.reader.CurrentID(),
		Result:    rec.Result,
		FormData:  rec.FormData,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

// handleStatus returns all tracked tasks with aggregated stats,
// designed for CLI/jq consumption
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	records := s.reader.List()

	tasks := make([]APITask, 0, len(records))
	stats := APIStats{Total: len(records)}
	for _, rec := range records {
		tasks = append(tasks, s.toAPITask(rec))
		switch rec.Status {
		case store.StatusNone, store.StatusPending:
			stats.Pending++
		case store.StatusProcessing:
			stats.Processing++
		case store.StatusSuccess:
			stats.Success++
		case store.StatusFailed:
			stats.Failed++
		}
	}

	resp := StatusResponse{
		Tasks:     tasks,
		Stats:     stats,
		CurrentID: s.reader.CurrentID(),
		Hostname:  s.hostname,
		Version:   s.version,
		Timestamp: time.Now(),
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleSubmit sends a new generation request to the backend and starts
// tracking the returned task
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Platform == "" {
		s.writeJSONError(w, http.StatusBadRequest, "platform required")
		return
	}
	if len(req.Payload) == 0 {
		s.writeJSONError(w, http.StatusBadRequest, "payload required")
		return
	}

	id, err := s.manager.Submit(r.Context(), req.Platform, req.Payload)
	if err != nil {
		log.Printf("[WARN] submission failed: %v", err)
		s.writeBackendError(w, err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, SubmitResponse{TaskID: id})
}

// handleCurrent returns the focused task, 404 when nothing selected
func (s *Server) handleCurrent(w http.ResponseWriter, _ *http.Request) {
	rec, ok := s.manager.Current()
	if !ok {
		s.writeJSONError(w, http.StatusNotFound, "no current task")
		return
	}
	s.writeJSON(w, http.StatusOK, s.toAPITask(rec))
}

// handleClearCurrent drops the focus pointer ("start a new note"), the record
// itself stays tracked
func (s *Server) handleClearCurrent(w http.ResponseWriter, _ *http.Request) {
	s.manager.SelectCurrent("")
	s.writeJSON(w, http.StatusOK, rest.JSON{"status": "cleared"})
}

// handleSelect switches the focus to the given task
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.reader.Get(id); !ok {
		s.writeJSONError(w, http.StatusNotFound, "task not found")
		return
	}
	s.manager.SelectCurrent(id)
	s.writeJSON(w, http.StatusOK, rest.JSON{"status": "selected", "task_id": id})
}

// handleRetry re-submits a task, optional body overrides the stored payload
func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var payload json.RawMessage
	if r.Body != nil && r.ContentLength != 0 {
		var req SubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		payload = req.Payload
	}

	if err := s.manager.Retry(r.Context(), id, payload); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeJSONError(w, http.StatusNotFound, "task not found")
			return
		}
		log.Printf("[WARN] retry failed for task %s: %v", id, err)
		s.writeBackendError(w, err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, rest.JSON{"status": "retrying", "task_id": id})
}

// handleDelete removes a task on the backend and locally
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.manager.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeJSONError(w, http.StatusNotFound, "task not found")
			return
		}
		log.Printf("[WARN] delete failed for task %s: %v", id, err)
		s.writeBackendError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rest.JSON{"status": "deleted", "task_id": id})
}

// handleHistory returns the attempt history for a task
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, ok := s.reader.Get(id)
	if !ok {
		s.writeJSONError(w, http.StatusNotFound, "task not found")
		return
	}

	attempts, err := s.reader.Attempts(id, 50)
	if err != nil {
		log.Printf("[ERROR] failed to get attempts for task %s: %v", id, err)
		s.writeJSONError(w, http.StatusInternalServerError, "failed to load attempt history")
		return
	}

	apiAttempts := make([]APIAttempt, 0, len(attempts))
	for _, a := range attempts {
		apiAttempts = append(apiAttempts, APIAttempt{
			ID: a.ID, Event: a.Event, Status: a.Status.String(), Detail: a.Detail, CreatedAt: a.CreatedAt})
	}
	s.writeJSON(w, http.StatusOK, HistoryResponse{Task: s.toAPITask(rec), Attempts: apiAttempts})
}

// handleSchema returns the json schema of the submission body, lets clients
// validate forms before posting
func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	schema := jsonschema.Reflect(&SubmitRequest{})
	s.writeJSON(w, http.StatusOK, schema)
}

// handleSystem returns host resource usage, the same environment info the
// note-generation UI surfaces before accepting a submission
func (s *Server) handleSystem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := SystemResponse{
		Hostname:  s.hostname,
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Timestamp: time.Now(),
	}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		resp.CPUPercent = percents[0]
	} else if err != nil {
		log.Printf("[DEBUG] failed to get cpu usage: %v", err)
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		resp.MemPercent = vm.UsedPercent
		resp.MemTotal = vm.Total
		resp.MemUsed = vm.Used
	} else {
		log.Printf("[DEBUG] failed to get memory usage: %v", err)
	}

	if du, err := disk.UsageWithContext(ctx, "/"); err == nil {
		resp.DiskPercent = du.UsedPercent
		resp.DiskFree = du.Free
	} else {
		log.Printf("[DEBUG] failed to get disk usage: %v", err)
	}

	if la, err := load.AvgWithContext(ctx); err == nil {
		resp.LoadAvg1 = la.Load1
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// writeBackendError maps backend submission failures to 502, everything else
// to 500
func (s *Server) writeBackendError(w http.ResponseWriter, err error) {
	var submissionErr *backend.SubmissionError
	if errors.As(err, &submissionErr) {
		s.writeJSONError(w, http.StatusBadGateway, submissionErr.Msg)
		return
	}
	s.writeJSONError(w, http.StatusInternalServerError, "request failed")
}
