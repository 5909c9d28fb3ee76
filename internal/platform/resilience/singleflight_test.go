package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, err, _ := g.Do("live-stats:3", func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_TryDoDropsOverlappingCall(t *testing.T) {
	var g SingleFlight

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _, ran := g.TryDo("autobid-tick", func() (any, error) {
			close(entered)
			<-release
			return nil, nil
		})
		if !ran {
			t.Errorf("first TryDo should run")
		}
	}()

	<-entered
	if !g.InFlight("autobid-tick") {
		t.Fatalf("expected key to be in flight")
	}

	var second int32
	_, _, ran := g.TryDo("autobid-tick", func() (any, error) {
		atomic.AddInt32(&second, 1)
		return nil, nil
	})
	if ran {
		t.Fatalf("overlapping TryDo should be dropped")
	}
	if atomic.LoadInt32(&second) != 0 {
		t.Fatalf("dropped function must not run")
	}

	close(release)
	<-done

	if g.InFlight("autobid-tick") {
		t.Fatalf("key should be released after completion")
	}
	_, _, ran = g.TryDo("autobid-tick", func() (any, error) { return nil, nil })
	if !ran {
		t.Fatalf("TryDo after release should run")
	}
}
