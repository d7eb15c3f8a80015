package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/mcggEz/gradalyze/pkg/lifecycle"
)

func TestStartupHooksCompleteBeforeReady(t *testing.T) {
	lc := lifecycle.New()

	var count atomic.Int32
	lc.OnStartup(func() { count.Add(1) })
	lc.OnStartup(func() { count.Add(1) })

	if lc.Ready() {
		t.Error("coordinator should not report ready before WaitForStartup")
	}

	lc.WaitForStartup()

	if got := count.Load(); got != 2 {
		t.Errorf("startup hooks run = %d, want 2", got)
	}
	if !lc.Ready() {
		t.Error("coordinator should report ready after WaitForStartup")
	}
}

func TestShutdownCancelsContextAndRunsHooks(t *testing.T) {
	lc := lifecycle.New()

	var cleaned atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		cleaned.Store(true)
	})

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	if !cleaned.Load() {
		t.Error("shutdown hook did not run")
	}

	select {
	case <-lc.Context().Done():
	default:
		t.Error("context should be cancelled after shutdown")
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	release := make(chan struct{})
	lc.OnShutdown(func() {
		<-release
	})

	err := lc.Shutdown(20 * time.Millisecond)
	close(release)

	if err == nil {
		t.Error("expected timeout error for a hung shutdown hook")
	}
}
