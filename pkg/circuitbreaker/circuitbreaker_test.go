package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripsAfterMaxFailures(t *testing.T) {
	cb := New(Settings{Name: "test", MaxFailures: 3, Timeout: time.Hour})
	boom := errors.New("publish failed")

	for i := 0; i < 3; i++ {
		err := cb.Execute(func() error { return boom })
		assert.Equal(t, boom, err)
	}

	// Breaker is open now; calls fail fast without running fn.
	ran := false
	err := cb.Execute(func() error { ran = true; return nil })
	assert.Equal(t, ErrOpen, err)
	assert.False(t, ran)
}

func TestRecoversAfterTimeout(t *testing.T) {
	cb := New(Settings{Name: "test", MaxFailures: 1, Timeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(func() error { return errors.New("down") }))
	assert.Equal(t, ErrOpen, cb.Execute(func() error { return nil }))

	time.Sleep(15 * time.Millisecond)

	// Half-open probe succeeds and closes the breaker.
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.NoError(t, cb.Execute(func() error { return nil }))
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb := New(Settings{Name: "test", MaxFailures: 1, Timeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(func() error { return errors.New("down") }))
	time.Sleep(15 * time.Millisecond)

	// Probe fails; breaker snaps back open immediately.
	require.Error(t, cb.Execute(func() error { return errors.New("still down") }))
	assert.Equal(t, ErrOpen, cb.Execute(func() error { return nil }))
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := New(Settings{Name: "test", MaxFailures: 2, Timeout: time.Hour})

	require.Error(t, cb.Execute(func() error { return errors.New("blip") }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.Error(t, cb.Execute(func() error { return errors.New("blip") }))

	// Still closed: the success in between reset the streak.
	require.NoError(t, cb.Execute(func() error { return nil }))
}
