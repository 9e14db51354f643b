package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_StartsIdle(t *testing.T) {
	s := NewSlot[int]()
	snap := s.Snapshot()

	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Nil(t, snap.Result)
	assert.Nil(t, snap.Err)
}

func TestSlot_SuccessfulSubmitCommits(t *testing.T) {
	s := NewSlot[int]()

	effectRan := false
	res, err := s.Submit(context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	}, func(v *int) {
		effectRan = true
	})

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 42, *res)
	assert.True(t, effectRan)

	snap := s.Snapshot()
	assert.Equal(t, PhaseSucceeded, snap.Phase)
	require.NotNil(t, snap.Result)
	assert.Equal(t, 42, *snap.Result)
}

func TestSlot_EffectMayMutateCommittedValue(t *testing.T) {
	s := NewSlot[string]()

	res, err := s.Submit(context.Background(), func(ctx context.Context) (string, error) {
		return "base", nil
	}, func(v *string) {
		*v = "base+effect"
	})

	require.NoError(t, err)
	assert.Equal(t, "base+effect", *res)
	assert.Equal(t, "base+effect", *s.Snapshot().Result)
}

func TestSlot_FailureRetainsPriorResult(t *testing.T) {
	s := NewSlot[int]()

	_, err := s.Submit(context.Background(), func(ctx context.Context) (int, error) {
		return 7, nil
	}, nil)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = s.Submit(context.Background(), func(ctx context.Context) (int, error) {
		return 0, boom
	}, nil)
	require.ErrorIs(t, err, boom)

	snap := s.Snapshot()
	assert.Equal(t, PhaseFailed, snap.Phase)
	assert.Equal(t, boom, snap.Err)
	require.NotNil(t, snap.Result, "last good result survives a failure")
	assert.Equal(t, 7, *snap.Result)
}

func TestSlot_LastSubmitWins(t *testing.T) {
	s := NewSlot[string]()

	firstStarted := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan error, 1)
	firstEffect := false

	go func() {
		_, err := s.Submit(context.Background(), func(ctx context.Context) (string, error) {
			close(firstStarted)
			<-release
			return "stale", nil
		}, func(v *string) {
			firstEffect = true
		})
		firstDone <- err
	}()

	<-firstStarted

	res, err := s.Submit(context.Background(), func(ctx context.Context) (string, error) {
		return "fresh", nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "fresh", *res)

	close(release)
	require.ErrorIs(t, <-firstDone, ErrSuperseded)
	assert.False(t, firstEffect, "superseded submission must not run its effect")

	snap := s.Snapshot()
	assert.Equal(t, PhaseSucceeded, snap.Phase)
	assert.Equal(t, "fresh", *snap.Result)
}

func TestSlot_ResetInvalidatesInFlight(t *testing.T) {
	s := NewSlot[int]()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		_, err := s.Submit(context.Background(), func(ctx context.Context) (int, error) {
			close(started)
			<-release
			return 1, nil
		}, nil)
		done <- err
	}()

	<-started
	s.Reset()
	close(release)

	require.ErrorIs(t, <-done, ErrSuperseded)

	snap := s.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Nil(t, snap.Result)
}

func TestSlot_ResetClearsResultAndError(t *testing.T) {
	s := NewSlot[int]()

	_, err := s.Submit(context.Background(), func(ctx context.Context) (int, error) {
		return 5, nil
	}, nil)
	require.NoError(t, err)

	s.Reset()

	snap := s.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Nil(t, snap.Result)
	assert.Nil(t, snap.Err)
	assert.WithinDuration(t, time.Now(), snap.UpdatedAt, time.Second)
}
