package consult

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/forexorbit/academy-calls/internal/core"
	"github.com/forexorbit/academy-calls/internal/domain"
)

var (
	ErrInvalidTransition = errors.New("invalid consultation transition")
	ErrInvalidKind       = errors.New("invalid call kind")
)

// ChannelEvictor clears a live channel: every member is kicked, their
// relays stopped, and the channel removed from the manager.
type ChannelEvictor interface {
	EvictChannel(id domain.ChannelID)
}

// Service owns consultation lifecycle. Channel allocation happens on
// accept; the call itself is run by the channel server and the
// callsession adapter, not by this service.
type Service struct {
	repo     Repository
	channels core.ChannelManager
	evictor  ChannelEvictor
}

func NewService(repo Repository, channels core.ChannelManager, evictor ChannelEvictor) *Service {
	return &Service{repo: repo, channels: channels, evictor: evictor}
}

func (s *Service) Request(ctx context.Context, studentID, expertID domain.UserID, topic string, kind domain.CallKind) (domain.Consultation, error) {
	if kind != domain.CallVoice && kind != domain.CallVideo {
		return domain.Consultation{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	now := time.Now().UTC()
	c := domain.Consultation{
		ID:        uuid.NewString(),
		StudentID: studentID,
		ExpertID:  expertID,
		Topic:     topic,
		Kind:      kind,
		Status:    domain.ConsultationPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return domain.Consultation{}, err
	}
	log.Info().Str("module", "consult").Str("id", c.ID).Str("student", string(studentID)).Str("expert", string(expertID)).Msg("consultation requested")
	return c, nil
}

// Accept transitions pending -> active and allocates the call channel.
func (s *Service) Accept(ctx context.Context, id string) (domain.Consultation, error) {
	c, err := s.transition(ctx, id, domain.ConsultationPending, domain.ConsultationActive, func(c *domain.Consultation) {
		c.Channel = domain.ChannelName(uuid.NewString())
	})
	if err != nil {
		return domain.Consultation{}, err
	}
	s.channels.Create(c.Channel)
	log.Info().Str("module", "consult").Str("id", c.ID).Str("channel", string(c.Channel)).Msg("consultation accepted")
	return c, nil
}

// Complete transitions active -> completed and ends the call: members
// still in the channel are evicted before it is stopped.
func (s *Service) Complete(ctx context.Context, id string) (domain.Consultation, error) {
	c, err := s.transition(ctx, id, domain.ConsultationActive, domain.ConsultationCompleted, nil)
	if err != nil {
		return domain.Consultation{}, err
	}
	if ch, ok := s.channels.GetByName(c.Channel); ok {
		s.evictor.EvictChannel(ch.Channel().ID)
	}
	log.Info().Str("module", "consult").Str("id", c.ID).Msg("consultation completed")
	return c, nil
}

// Reject transitions pending -> rejected.
func (s *Service) Reject(ctx context.Context, id string) (domain.Consultation, error) {
	c, err := s.transition(ctx, id, domain.ConsultationPending, domain.ConsultationRejected, nil)
	if err != nil {
		return domain.Consultation{}, err
	}
	log.Info().Str("module", "consult").Str("id", c.ID).Msg("consultation rejected")
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Consultation, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, status domain.ConsultationStatus) ([]domain.Consultation, error) {
	return s.repo.List(ctx, status)
}

func (s *Service) transition(ctx context.Context, id string, from, to domain.ConsultationStatus, mutate func(*domain.Consultation)) (domain.Consultation, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Consultation{}, err
	}
	if c.Status != from {
		return domain.Consultation{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, to)
	}
	c.Status = to
	c.UpdatedAt = time.Now().UTC()
	if mutate != nil {
		mutate(&c)
	}
	if err := s.repo.Update(ctx, &c); err != nil {
		return domain.Consultation{}, err
	}
	return c, nil
}
