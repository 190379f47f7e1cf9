package state

import (
	"sync"
	"testing"
)

func TestSemaphoreCompletesOnce(t *testing.T) {
	fired := 0
	sem := NewSemaphore(3, func() { fired++ })

	sem.Done()
	sem.Done()
	if fired != 0 {
		t.Fatalf("callback fired after %d of 3 decrements", 3-sem.Remaining())
	}
	sem.Done()
	if fired != 1 {
		t.Fatalf("callback fired %d times, want 1", fired)
	}
}

func TestSemaphoreOverDecrementPanics(t *testing.T) {
	sem := NewSemaphore(1, nil)
	sem.Done()

	defer func() {
		if recover() == nil {
			t.Error("decrement past zero did not panic")
		}
	}()
	sem.Done()
}

// Done is safe to call from any goroutine; the callback still fires exactly
// once, on the final decrement.
func TestSemaphoreConcurrentDone(t *testing.T) {
	const n = 64
	var fired int
	done := make(chan struct{})
	sem := NewSemaphore(n, func() {
		fired++
		close(done)
	})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem.Done()
		}()
	}
	wg.Wait()
	<-done
	if fired != 1 {
		t.Fatalf("callback fired %d times, want 1", fired)
	}
	if sem.Remaining() != 0 {
		t.Errorf("remaining = %d, want 0", sem.Remaining())
	}
}
