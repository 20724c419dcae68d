package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/domain"
	"github.com/google/uuid"
)

// JSONUsersRepo stores accounts in users.json.
type JSONUsersRepo struct {
	path  string
	mu    sync.RWMutex
	users []domain.User
}

func NewJSONUsersRepo(path string) (*JSONUsersRepo, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	users, err := loadJSON[domain.User](path)
	if err != nil {
		return nil, err
	}
	return &JSONUsersRepo{path: path, users: users}, nil
}

func (r *JSONUsersRepo) Get(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].UserID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *JSONUsersRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if strings.EqualFold(r.users[i].Email, email) {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *JSONUsersRepo) Create(_ context.Context, user domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if strings.EqualFold(r.users[i].Email, user.Email) {
			return nil, ErrDuplicate
		}
	}
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = "owner"
	}
	if user.CreatedAt == "" {
		user.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	r.users = append(r.users, user)
	if err := saveJSON(r.path, r.users); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *JSONUsersRepo) Update(_ context.Context, id string, patch map[string]any) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].UserID != id {
			continue
		}
		u := &r.users[i]
		if v, ok := patch["name"].(string); ok && v != "" {
			u.Name = v
		}
		if v, ok := patch["password_hash"].(string); ok && v != "" {
			u.PasswordHash = v
		}
		if v, ok := patch["voice_agent_token"].(string); ok {
			u.VoiceAgentToken = v
		}
		if v, ok := patch["dialer_token"].(string); ok {
			u.DialerToken = v
		}
		if err := saveJSON(r.path, r.users); err != nil {
			return nil, err
		}
		out := *u
		return &out, nil
	}
	return nil, ErrNotFound
}
