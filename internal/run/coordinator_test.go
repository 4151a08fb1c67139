package run

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestCoordinatorWaitJoinsWorkers(t *testing.T) {
	state := NewState()
	c := NewCoordinator(state)

	var finished atomic.Int32
	for i := 0; i < 3; i++ {
		c.Go("worker", func() {
			for state.Running() {
				time.Sleep(time.Millisecond)
			}
			finished.Add(1)
		})
	}

	done := make(chan struct{})
	go func() {
		c.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() がワーカー終了後に戻らない")
	}

	if got := finished.Load(); got != 3 {
		t.Errorf("終了したワーカー数 = %d, want 3", got)
	}
}

func TestCoordinatorWatchState(t *testing.T) {
	state := NewState()
	c := NewCoordinator(state)

	quit := make(chan struct{})
	c.WatchState(func() { close(quit) })

	// 停止要求前は quit が呼ばれないこと
	select {
	case <-quit:
		t.Fatal("停止要求前に quit が呼ばれた")
	case <-time.After(100 * time.Millisecond):
	}

	state.Stop()

	select {
	case <-quit:
	case <-time.After(2 * time.Second):
		t.Fatal("停止要求後に quit が呼ばれない")
	}
}

func TestCoordinatorSessionID(t *testing.T) {
	state := NewState()
	a := NewCoordinator(state)
	b := NewCoordinator(state)

	if a.SessionID() == "" {
		t.Error("SessionID は空であってはならない")
	}
	if a.SessionID() == b.SessionID() {
		t.Error("SessionID は起動ごとに一意であるべき")
	}
}
