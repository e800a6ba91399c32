package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunOnceRunsEveryJob(t *testing.T) {
	s := NewScheduler()

	var first, second atomic.Int32
	s.AddJob(Job{Name: "first", Interval: time.Hour, Fn: func(ctx context.Context) error {
		first.Add(1)
		return nil
	}})
	s.AddJob(Job{Name: "second", Interval: time.Hour, Fn: func(ctx context.Context) error {
		second.Add(1)
		return nil
	}})

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), first.Load())
	assert.Equal(t, int32(1), second.Load())
}

func TestStartHonorsRunAtStart(t *testing.T) {
	s := NewScheduler()

	var eager, deferred atomic.Int32
	s.AddJob(Job{Name: "eager", Interval: time.Hour, RunAtStart: true, Fn: func(ctx context.Context) error {
		eager.Add(1)
		return nil
	}})
	s.AddJob(Job{Name: "deferred", Interval: time.Hour, Fn: func(ctx context.Context) error {
		deferred.Add(1)
		return nil
	}})

	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(1), eager.Load())
	assert.Equal(t, int32(0), deferred.Load())
}
