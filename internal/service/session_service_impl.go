package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/era/internal/breath"
	"github.com/alexanderramin/era/internal/domain"
	"github.com/alexanderramin/era/internal/repository"
)

var ErrSessionLimitReached = errors.New("free session limit reached")

// SessionSettings configures how sessions run and who may start them.
type SessionSettings struct {
	Timing breath.Timing
	// FreeQuota is the number of completed sessions allowed without a
	// subscription. Negative disables the limit.
	FreeQuota int
	Clock     Clock
	Logger    *slog.Logger
}

type startConfig struct {
	timing *breath.Timing
}

// StartOption adjusts a single StartSession call.
type StartOption func(*startConfig)

// WithTiming overrides the configured timing for one session.
func WithTiming(t breath.Timing) StartOption {
	return func(c *startConfig) { c.timing = &t }
}

type sessionService struct {
	sessions     repository.SessionRepo
	entitlements EntitlementProvider
	settings     SessionSettings
	observer     UseCaseObserver
}

func NewSessionService(
	sessions repository.SessionRepo,
	entitlements EntitlementProvider,
	settings SessionSettings,
	observers ...UseCaseObserver,
) SessionService {
	settings.Clock = clockOrSystem(settings.Clock)
	if settings.Logger == nil {
		settings.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if entitlements == nil {
		entitlements = StaticEntitlements{}
	}
	return &sessionService{
		sessions:     sessions,
		entitlements: entitlements,
		settings:     settings,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *sessionService) CanStart(ctx context.Context) (bool, error) {
	isPro, err := s.entitlements.IsPro(ctx)
	if err != nil {
		return false, fmt.Errorf("checking entitlement: %w", err)
	}
	if isPro {
		return true, nil
	}
	completed, err := s.sessions.CountCompleted(ctx)
	if err != nil {
		return false, fmt.Errorf("counting completed sessions: %w", err)
	}
	return domain.CanStartSession(completed, isPro, s.settings.FreeQuota), nil
}

func (s *sessionService) StartSession(ctx context.Context, obs breath.Observer, opts ...StartOption) (rec *domain.SessionRecord, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		fields["cancelled"] = errors.Is(err, context.Canceled)
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "start-session",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var ok bool
	ok, err = s.CanStart(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionLimitReached
	}

	var sc startConfig
	for _, o := range opts {
		o(&sc)
	}
	timing := s.settings.Timing
	if sc.timing != nil {
		timing = *sc.timing
	}
	fields["total_sec"] = timing.Total().Seconds()

	seqOpts := []breath.Option{
		breath.WithClock(s.settings.Clock),
		breath.WithLogger(s.settings.Logger),
	}
	if obs != nil {
		seqOpts = append(seqOpts, breath.WithObserver(obs))
	}
	seq := breath.New(timing, s, seqOpts...)

	rec, err = seq.Run(ctx)
	if err != nil {
		return nil, err
	}
	fields["session_id"] = rec.ID
	return rec, nil
}

// Record persists a completed session. It is the sequencer's recorder.
func (s *sessionService) Record(ctx context.Context, rec *domain.SessionRecord) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      UseCaseRecordSession,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields: map[string]any{
				"session_id":   rec.ID,
				"duration_sec": rec.Duration().Seconds(),
			},
		})
	}()

	if err = rec.Validate(); err != nil {
		return err
	}
	if err = s.sessions.Create(ctx, rec); err != nil {
		return fmt.Errorf("recording session: %w", err)
	}
	return nil
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*domain.SessionRecord, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *sessionService) ListRecent(ctx context.Context, limit int) ([]*domain.SessionRecord, error) {
	return s.sessions.ListRecent(ctx, limit)
}
