package server

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskio/internal/logging"
	"github.com/stretchr/testify/assert"
)

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) PurgeExpiredTokens(context.Context, time.Time) (int64, error) {
	p.calls.Add(1)
	return 1, p.err
}

func TestRunTokenCleanup_TicksUntilCancelled(t *testing.T) {
	for _, perr := range []error{nil, errors.New("db down")} {
		p := &countingPurger{err: perr}
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			runTokenCleanup(ctx, p, 5*time.Millisecond, logging.Nop{})
			close(done)
		}()

		assert.Eventually(t, func() bool { return p.calls.Load() >= 2 }, time.Second, time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("cleanup loop did not stop")
		}
	}
}

func TestRunTokenCleanup_DisabledInterval(t *testing.T) {
	p := &countingPurger{}
	runTokenCleanup(context.Background(), p, 0, logging.Nop{})
	assert.Zero(t, p.calls.Load())
}
