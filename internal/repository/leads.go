package repository

import (
	"context"
	"sync"
	"time"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/domain"
	"github.com/google/uuid"
)

// JSONLeadsRepo stores leads in leads.json.
type JSONLeadsRepo struct {
	path  string
	mu    sync.RWMutex
	leads []domain.Lead
}

func NewJSONLeadsRepo(path string) (*JSONLeadsRepo, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	leads, err := loadJSON[domain.Lead](path)
	if err != nil {
		return nil, err
	}
	return &JSONLeadsRepo{path: path, leads: leads}, nil
}

func (r *JSONLeadsRepo) List(_ context.Context, status string) ([]domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Lead, 0, len(r.leads))
	for _, l := range r.leads {
		if status != "" && string(l.Status) != status {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *JSONLeadsRepo) Get(_ context.Context, id string) (*domain.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.leads {
		if r.leads[i].LeadID == id {
			l := r.leads[i]
			return &l, nil
		}
	}
	return nil, ErrNotFound
}

func (r *JSONLeadsRepo) Create(_ context.Context, lead domain.Lead) (*domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if lead.LeadID == "" {
		lead.LeadID = uuid.NewString()
	}
	if lead.Status == "" {
		lead.Status = domain.LeadStatusNew
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if lead.CreatedAt == "" {
		lead.CreatedAt = now
	}
	lead.UpdatedAt = now

	r.leads = append(r.leads, lead)
	if err := saveJSON(r.path, r.leads); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *JSONLeadsRepo) Update(_ context.Context, id string, patch map[string]any) (*domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.leads {
		if r.leads[i].LeadID != id {
			continue
		}
		l := &r.leads[i]
		if v, ok := patch["status"].(string); ok && v != "" {
			l.Status = domain.LeadStatus(v)
		}
		if v, ok := patch["notes"].(string); ok {
			l.Notes = v
		}
		if v, ok := patch["transcript"].(string); ok {
			l.Transcript = v
		}
		if v, ok := patch["recording_url"].(string); ok {
			l.RecordingURL = v
		}
		if v, ok := patch["match_score"].(float64); ok {
			l.MatchScore = v
		}
		l.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		if err := saveJSON(r.path, r.leads); err != nil {
			return nil, err
		}
		out := *l
		return &out, nil
	}
	return nil, ErrNotFound
}
