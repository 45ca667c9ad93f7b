package consult

import (
	"context"
	"sort"
	"sync"

	"github.com/forexorbit/academy-calls/internal/domain"
)

// inmemRepo backs tests and single-node dev runs.
type inmemRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Consultation
}

func NewInMemRepository() Repository {
	return &inmemRepo{byID: make(map[string]domain.Consultation)}
}

func (r *inmemRepo) Create(_ context.Context, c *domain.Consultation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[c.ID] = *c
	return nil
}

func (r *inmemRepo) Get(_ context.Context, id string) (domain.Consultation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return domain.Consultation{}, ErrNotFound
	}
	return c, nil
}

func (r *inmemRepo) Update(_ context.Context, c *domain.Consultation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID]; !ok {
		return ErrNotFound
	}
	r.byID[c.ID] = *c
	return nil
}

func (r *inmemRepo) List(_ context.Context, status domain.ConsultationStatus) ([]domain.Consultation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Consultation, 0, len(r.byID))
	for _, c := range r.byID {
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
