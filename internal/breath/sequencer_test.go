package breath

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/era/internal/domain"
	"github.com/alexanderramin/era/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRecorder struct {
	mu      sync.Mutex
	records []*domain.SessionRecord
	err     error
}

func (r *memRecorder) Record(_ context.Context, s *domain.SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, s)
	return nil
}

func (r *memRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type frameLog struct {
	mu     sync.Mutex
	frames []Frame
}

func (l *frameLog) OnFrame(f Frame) {
	l.mu.Lock()
	l.frames = append(l.frames, f)
	l.mu.Unlock()
}

// phases returns distinct non-gap phases in the order first seen.
func (l *frameLog) phases() []domain.Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []domain.Phase
	for _, f := range l.frames {
		if f.Gap {
			continue
		}
		if len(out) == 0 || out[len(out)-1] != f.Phase {
			out = append(out, f.Phase)
		}
	}
	return out
}

func TestSequencer_ZeroTimingRecordsOnce(t *testing.T) {
	clock := testutil.NewFixedClock(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	rec := &memRecorder{}
	frames := &frameLog{}

	seq := New(ZeroTiming(), rec, WithClock(clock), WithObserver(frames),
		WithIDGenerator(func() string { return "sess-1" }))

	got, err := seq.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, rec.count())

	assert.Equal(t, "sess-1", got.ID)
	require.NotNil(t, got.EndedAt)
	assert.False(t, got.EndedAt.Before(got.StartedAt))
	assert.Equal(t, domain.PhaseDone, seq.Phase())
	assert.Equal(t,
		[]domain.Phase{domain.PhaseInhale, domain.PhaseHold, domain.PhaseExhale, domain.PhaseDone},
		frames.phases())
}

func TestSequencer_EmitsGapFramesBetweenPhases(t *testing.T) {
	frames := &frameLog{}
	seq := New(ZeroTiming(), &memRecorder{}, WithObserver(frames))

	_, err := seq.Run(context.Background())
	require.NoError(t, err)

	var gaps []domain.Phase
	for _, f := range frames.frames {
		if f.Gap {
			gaps = append(gaps, f.Phase)
		}
	}
	assert.Equal(t, []domain.Phase{domain.PhaseInhale, domain.PhaseHold}, gaps)
}

func TestSequencer_CancelDuringHoldWritesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &memRecorder{}
	obs := ObserverFunc(func(f Frame) {
		if f.Phase == domain.PhaseHold && !f.Gap {
			cancel()
		}
	})
	seq := New(ZeroTiming(), rec, WithObserver(obs))

	got, err := seq.Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, got)
	assert.Equal(t, 0, rec.count())
	assert.Equal(t, domain.PhaseHold, seq.Phase())
}

func TestSequencer_CancelWhileWaitingOnTimer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	timing := ZeroTiming()
	timing.Hold = time.Hour
	rec := &memRecorder{}
	entered := make(chan struct{})
	var once sync.Once
	obs := ObserverFunc(func(f Frame) {
		if f.Phase == domain.PhaseHold {
			once.Do(func() { close(entered) })
		}
	})
	seq := New(timing, rec, WithObserver(obs))

	errCh := make(chan error, 1)
	go func() {
		_, err := seq.Run(ctx)
		errCh <- err
	}()

	<-entered
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("sequencer did not stop after cancel")
	}
	assert.Equal(t, 0, rec.count())
}

func TestSequencer_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &memRecorder{}
	_, err := New(ZeroTiming(), rec).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, rec.count())
}

func TestSequencer_SecondRunFails(t *testing.T) {
	seq := New(ZeroTiming(), &memRecorder{})

	_, err := seq.Run(context.Background())
	require.NoError(t, err)

	_, err = seq.Run(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestSequencer_RecorderFailureIsDropped(t *testing.T) {
	rec := &memRecorder{err: errors.New("disk full")}
	seq := New(ZeroTiming(), rec)

	got, err := seq.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 0, rec.count())
}

func TestSequencer_ShortTimingEmitsProgress(t *testing.T) {
	timing := Timing{
		Inhale:         20 * time.Millisecond,
		Hold:           10 * time.Millisecond,
		Exhale:         20 * time.Millisecond,
		Gap:            time.Millisecond,
		Beats:          4,
		PulseAmplitude: 0.06,
		PulseCycles:    3,
		FrameInterval:  2 * time.Millisecond,
	}
	rec := &memRecorder{}
	frames := &frameLog{}
	seq := New(timing, rec, WithObserver(frames))

	got, err := seq.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, rec.count())
	assert.GreaterOrEqual(t, got.Duration(), 50*time.Millisecond)

	for _, f := range frames.frames {
		assert.GreaterOrEqual(t, f.Progress, 0.0)
		assert.LessOrEqual(t, f.Progress, 1.0)
		if f.Phase != domain.PhaseHold {
			assert.Zero(t, f.Pulse)
		}
	}
}
