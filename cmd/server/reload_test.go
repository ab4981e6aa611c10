package main

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mockInvalidator struct {
	calls atomic.Int32
	err   error
}

func (m *mockInvalidator) Invalidate(context.Context) error {
	m.calls.Add(1)
	return m.err
}

func TestWatchRuleReload(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	rules := &mockInvalidator{}

	done := make(chan struct{})
	go func() {
		watchRuleReload(ctx, signals, rules)
		close(done)
	}()

	signals <- syscall.SIGHUP
	signals <- syscall.SIGHUP

	assert.Eventually(t, func() bool { return rules.calls.Load() == 2 }, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatchRuleReload_KeepsWatchingAfterError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	rules := &mockInvalidator{err: errors.New("redis: connection refused")}

	go watchRuleReload(ctx, signals, rules)

	signals <- syscall.SIGHUP
	signals <- syscall.SIGHUP

	assert.Eventually(t, func() bool { return rules.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}
