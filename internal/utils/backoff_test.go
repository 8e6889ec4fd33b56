package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffStopsOnSuccess(t *testing.T) {
	calls := 0
	err := NewBackoff(time.Millisecond, 3).Do(func(int) error {
		calls++
		if calls < 2 {
			return errors.New("again")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestBackoffExhaustsRetries(t *testing.T) {
	calls := 0
	err := NewBackoff(time.Millisecond, 2).Do(func(int) error {
		calls++
		return errors.New("nope")
	})
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestBackoffNoSleepAfterLastAttempt(t *testing.T) {
	// base 60ms, one retry: a single sleep between the two attempts, no
	// trailing sleep before returning the final error
	start := time.Now()
	err := NewBackoff(60*time.Millisecond, 1).Do(func(int) error {
		return errors.New("nope")
	})
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}
