package sequencer

import (
	"sync"
	"testing"
	"time"
)

func TestStepsRunInScheduleOrder(t *testing.T) {
	s := New(0)
	defer s.Close()

	var mu sync.Mutex
	var got []int
	for i := 0; i < 20; i++ {
		i := i
		s.Schedule(time.Duration(20-i)*time.Millisecond, func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 20 {
		t.Fatalf("ran %d steps, want 20", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("step order %v, want ascending", got)
		}
	}
}

func TestDelaysChainFromPreviousCompletion(t *testing.T) {
	s := New(1)
	defer s.Close()

	start := time.Now()
	var second time.Time
	s.Schedule(30*time.Millisecond, func() {})
	s.Schedule(30*time.Millisecond, func() { second = time.Now() })
	s.Wait()

	if elapsed := second.Sub(start); elapsed < 60*time.Millisecond {
		t.Errorf("second step ran after %v, want >= 60ms (delays must chain)", elapsed)
	}
}

func TestZeroScaleCollapsesDelays(t *testing.T) {
	s := New(0)
	defer s.Close()

	start := time.Now()
	for i := 0; i < 5; i++ {
		s.Schedule(time.Hour, func() {})
	}
	s.Wait()

	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("zero-scale run took %v", elapsed)
	}
}

func TestWaitWithEmptyQueueReturns(t *testing.T) {
	s := New(0)
	defer s.Close()

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked with an empty queue")
	}
}

func TestScheduleAfterCloseIsDropped(t *testing.T) {
	s := New(0)
	s.Close()

	ran := false
	s.Schedule(0, func() { ran = true })
	s.Wait()
	if ran {
		t.Error("step scheduled after Close still ran")
	}
}
