// Package consult tracks consultation requests between students and
// experts and drives their lifecycle: pending -> active -> completed,
// or pending -> rejected.
package consult

import (
	"context"
	"errors"

	"github.com/forexorbit/academy-calls/internal/domain"
)

var ErrNotFound = errors.New("consultation not found")

// Repository persists consultation documents.
type Repository interface {
	Create(ctx context.Context, c *domain.Consultation) error
	Get(ctx context.Context, id string) (domain.Consultation, error)
	Update(ctx context.Context, c *domain.Consultation) error
	List(ctx context.Context, status domain.ConsultationStatus) ([]domain.Consultation, error)
}
