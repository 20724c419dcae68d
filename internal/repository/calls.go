package repository

import (
	"context"
	"sync"
	"time"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/domain"
	"github.com/google/uuid"
)

// JSONCallsRepo stores call logs in calls.json.
type JSONCallsRepo struct {
	path  string
	mu    sync.RWMutex
	calls []domain.CallLog
}

func NewJSONCallsRepo(path string) (*JSONCallsRepo, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	calls, err := loadJSON[domain.CallLog](path)
	if err != nil {
		return nil, err
	}
	return &JSONCallsRepo{path: path, calls: calls}, nil
}

func (r *JSONCallsRepo) List(_ context.Context) ([]domain.CallLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.CallLog, len(r.calls))
	copy(out, r.calls)
	return out, nil
}

func (r *JSONCallsRepo) Get(_ context.Context, id string) (*domain.CallLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.calls {
		if r.calls[i].CallID == id || r.calls[i].VendorID == id {
			c := r.calls[i]
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (r *JSONCallsRepo) Create(_ context.Context, call domain.CallLog) (*domain.CallLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if call.CallID == "" {
		call.CallID = uuid.NewString()
	}
	if call.CreatedAt == "" {
		call.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	r.calls = append(r.calls, call)
	if err := saveJSON(r.path, r.calls); err != nil {
		return nil, err
	}
	return &call, nil
}

func (r *JSONCallsRepo) Update(_ context.Context, id string, patch map[string]any) (*domain.CallLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.calls {
		if r.calls[i].CallID != id && r.calls[i].VendorID != id {
			continue
		}
		c := &r.calls[i]
		if v, ok := patch["status"].(string); ok && v != "" {
			c.Status = v
		}
		if v, ok := patch["transcript"].(string); ok {
			c.Transcript = v
		}
		if v, ok := patch["recording_url"].(string); ok {
			c.RecordingURL = v
		}
		// JSON patches decode numbers as float64; in-process callers pass int.
		switch v := patch["duration_sec"].(type) {
		case float64:
			c.DurationSec = int(v)
		case int:
			c.DurationSec = v
		}
		if v, ok := patch["tenant_id"].(string); ok {
			c.TenantID = v
		}
		if err := saveJSON(r.path, r.calls); err != nil {
			return nil, err
		}
		out := *c
		return &out, nil
	}
	return nil, ErrNotFound
}
