package breath

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/era/internal/domain"
	"github.com/google/uuid"
)

var ErrAlreadyStarted = errors.New("breathing sequence already started")

// Frame is one progress sample.
type Frame struct {
	Phase    domain.Phase
	Progress float64
	Pulse    float64
	Beat     int
	Elapsed  time.Duration
	// Gap marks the feedback pause after Phase has finished.
	Gap bool
}

type Observer interface {
	OnFrame(Frame)
}

type ObserverFunc func(Frame)

func (f ObserverFunc) OnFrame(fr Frame) { f(fr) }

// Recorder persists the completed session.
type Recorder interface {
	Record(ctx context.Context, s *domain.SessionRecord) error
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type Option func(*Sequencer)

func WithClock(c Clock) Option {
	return func(s *Sequencer) { s.clock = c }
}

func WithObserver(o Observer) Option {
	return func(s *Sequencer) { s.observer = o }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Sequencer) { s.logger = l }
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Sequencer) { s.newID = fn }
}

// Sequencer drives one session. It is single-shot: Run may be called once.
type Sequencer struct {
	timing   Timing
	recorder Recorder
	clock    Clock
	observer Observer
	logger   *slog.Logger
	newID    func() string

	started atomic.Bool

	mu    sync.Mutex
	phase domain.Phase
}

func New(timing Timing, recorder Recorder, opts ...Option) *Sequencer {
	s := &Sequencer{
		timing:   timing,
		recorder: recorder,
		clock:    systemClock{},
		observer: ObserverFunc(func(Frame) {}),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:    func() string { return uuid.New().String() },
		phase:    domain.PhaseInhale,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sequencer) Phase() domain.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Sequencer) Timing() Timing {
	return s.timing
}

// Run walks Inhale, Hold and Exhale, waiting out each phase and the gaps
// between them, then records the session and returns it. Cancelling ctx
// before Done returns a wrapped ctx error and records nothing. A failed
// write is logged and dropped.
func (s *Sequencer) Run(ctx context.Context) (*domain.SessionRecord, error) {
	if !s.started.CompareAndSwap(false, true) {
		return nil, ErrAlreadyStarted
	}

	id := s.newID()
	startedAt := s.clock.Now()

	for i, p := range domain.ActivePhases {
		if i > 0 {
			prev := domain.ActivePhases[i-1]
			s.emit(Frame{Phase: prev, Progress: ProgressAt(prev, s.timing.PhaseDuration(prev), s.timing), Gap: true})
			if err := s.wait(ctx, s.timing.Gap, nil); err != nil {
				return nil, err
			}
		}
		if err := s.runPhase(ctx, p); err != nil {
			return nil, err
		}
	}

	// Last boundary before the side effect.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("breathing session cancelled: %w", err)
	}

	s.setPhase(domain.PhaseDone)
	s.emit(Frame{Phase: domain.PhaseDone})

	rec := domain.NewCompletedRecord(id, startedAt, s.clock.Now())
	if err := s.recorder.Record(context.WithoutCancel(ctx), rec); err != nil {
		s.logger.WarnContext(ctx, "breathing_session_not_saved", "session_id", rec.ID, "error", err.Error())
	}
	return rec, nil
}

func (s *Sequencer) runPhase(ctx context.Context, p domain.Phase) error {
	s.setPhase(p)
	total := s.timing.PhaseDuration(p)
	s.emit(s.frameAt(p, 0))

	err := s.wait(ctx, total, func(elapsed time.Duration) {
		s.emit(s.frameAt(p, elapsed))
	})
	if err != nil {
		return err
	}
	s.emit(s.frameAt(p, total))
	return nil
}

// wait blocks for d, calling tick every FrameInterval. It returns early with
// a wrapped error when ctx is cancelled. A zero d still honours cancellation.
func (s *Sequencer) wait(ctx context.Context, d time.Duration, tick func(time.Duration)) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("breathing session cancelled: %w", err)
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	var ticks <-chan time.Time
	if tick != nil && s.timing.FrameInterval > 0 {
		ticker := time.NewTicker(s.timing.FrameInterval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("breathing session cancelled: %w", ctx.Err())
		case <-ticks:
			tick(time.Since(start))
		case <-timer.C:
			return nil
		}
	}
}

func (s *Sequencer) frameAt(p domain.Phase, elapsed time.Duration) Frame {
	f := Frame{
		Phase:    p,
		Progress: ProgressAt(p, elapsed, s.timing),
		Beat:     BeatAt(p, elapsed, s.timing),
		Elapsed:  elapsed,
	}
	if p == domain.PhaseHold {
		f.Pulse = PulseAt(elapsed, s.timing)
	}
	return f
}

func (s *Sequencer) setPhase(p domain.Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}

func (s *Sequencer) emit(f Frame) {
	s.observer.OnFrame(f)
}
