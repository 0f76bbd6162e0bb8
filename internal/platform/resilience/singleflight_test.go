package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSingleFlight_DeduplicatesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var flight SingleFlight
	var executions atomic.Int32
	release := make(chan struct{})

	const callers = 8
	results := make([]any, callers)
	shared := make([]bool, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			val, err, wasShared := flight.Do("key", func() (any, error) {
				executions.Add(1)
				<-release
				return "done", nil
			})
			if err != nil {
				t.Errorf("Do error: %v", err)
			}
			results[i] = val
			shared[i] = wasShared
		}()
	}

	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("expected exactly 1 execution, got %d", got)
	}
	for i := 0; i < callers; i++ {
		if results[i] != "done" {
			t.Fatalf("caller %d got %v", i, results[i])
		}
	}
}

func TestSingleFlight_DifferentKeysRunIndependently(t *testing.T) {
	t.Parallel()

	var flight SingleFlight

	a, err, _ := flight.Do("a", func() (any, error) { return 1, nil })
	if err != nil || a != 1 {
		t.Fatalf("Do(a) = %v, %v", a, err)
	}
	b, err, _ := flight.Do("b", func() (any, error) { return 2, nil })
	if err != nil || b != 2 {
		t.Fatalf("Do(b) = %v, %v", b, err)
	}
}
