package channel

import (
	"sync"
	"testing"
	"time"
)

func TestFIFOOrder(t *testing.T) {
	p, c := NewChannel[int](4)
	go func() {
		for i := 0; i < 10; i++ {
			if !p.Emplace(i) {
				t.Errorf("Emplace(%d) returned false", i)
			}
		}
		p.Close()
	}()
	for i := 0; i < 10; i++ {
		v, ok := c.Get()
		if !ok {
			t.Fatalf("Get() returned ok=false at i=%d", i)
		}
		if v != i {
			t.Fatalf("Get() = %d, want %d", v, i)
		}
	}
	if _, ok := c.Get(); ok {
		t.Fatalf("Get() after drain+close should report ok=false")
	}
	if !c.Closed() {
		t.Fatalf("consumer should be closed after observing permanent closure")
	}
}

// TestCapacityTwoInterleaving is end-to-end scenario #1 from the channel's
// testable-properties section: capacity 2, a third push blocks until the
// consumer reads one value, and the producer closes once drained.
func TestCapacityTwoInterleaving(t *testing.T) {
	p, c := NewChannel[int](2)

	if !p.Emplace(1) {
		t.Fatal("Emplace(1) failed")
	}
	if !p.Emplace(2) {
		t.Fatal("Emplace(2) failed")
	}

	pushed := make(chan bool, 1)
	go func() { pushed <- p.Emplace(3) }()

	select {
	case <-pushed:
		t.Fatal("Emplace(3) should have blocked while the queue is full")
	case <-time.After(50 * time.Millisecond):
	}

	v, ok := c.Get()
	if !ok || v != 1 {
		t.Fatalf("Get() = (%d, %v), want (1, true)", v, ok)
	}

	select {
	case ok := <-pushed:
		if !ok {
			t.Fatal("Emplace(3) should have succeeded once room freed up")
		}
	case <-time.After(time.Second):
		t.Fatal("Emplace(3) never unblocked after a Get()")
	}

	for _, want := range []int{2, 3} {
		v, ok := c.Get()
		if !ok || v != want {
			t.Fatalf("Get() = (%d, %v), want (%d, true)", v, ok, want)
		}
	}

	p.Close()
	if _, ok := c.Get(); ok {
		t.Fatal("Get() should report ok=false once drained and closed")
	}
}

// TestConsumerClosesFirst is end-to-end scenario #2: capacity 1, the
// consumer closes mid-stream without reading, and the producer's next
// Emplace must return false within a bounded number of attempts.
func TestConsumerClosesFirst(t *testing.T) {
	p, c := NewChannel[string](1)

	if !p.Emplace("A") {
		t.Fatal("Emplace(\"A\") failed")
	}
	c.Close()

	const maxAttempts = 8
	var ok bool
	for i := 0; i < maxAttempts; i++ {
		if ok = p.Emplace("B"); !ok {
			break
		}
	}
	if ok {
		t.Fatalf("Emplace(\"B\") kept succeeding past %d attempts after consumer close", maxAttempts)
	}
	if !p.Closed() {
		t.Fatal("producer should have self-closed after observing consumer close")
	}
}

func TestNoLossOnGracefulClose(t *testing.T) {
	p, c := NewChannel[int](3)
	const n = 37
	done := make(chan struct{})
	go func() {
		for i := 0; i < n; i++ {
			if !p.Emplace(i) {
				t.Errorf("Emplace(%d) failed", i)
			}
		}
		p.Close()
		close(done)
	}()

	got := 0
	for {
		v, ok := c.Get()
		if !ok {
			break
		}
		if v != got {
			t.Fatalf("Get() = %d, want %d", v, got)
		}
		got++
	}
	<-done
	if got != n {
		t.Fatalf("consumer received %d values, want %d", got, n)
	}
	if !c.Closed() {
		t.Fatal("consumer should report closed after a permanent empty Get")
	}
}

func TestCapacityBound(t *testing.T) {
	p, c := NewChannel[int](5)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			for !p.TryEmplace(i) && !p.Closed() {
			}
		}
		p.Close()
	}()

	for {
		if p.q.length() > 5 {
			t.Fatalf("observed queue length > capacity")
		}
		if _, ok := c.Get(); !ok {
			break
		}
	}
	wg.Wait()
}

func TestTryEmplaceLiveness(t *testing.T) {
	p, c := NewChannel[int](1)
	if !p.Emplace(1) {
		t.Fatal("Emplace(1) failed")
	}

	result := make(chan bool, 1)
	go func() {
		for {
			if p.TryEmplace(2) {
				result <- true
				return
			}
		}
	}()

	if _, ok := c.Get(); !ok {
		t.Fatal("Get() failed")
	}

	select {
	case ok := <-result:
		if !ok {
			t.Fatal("TryEmplace eventually returned false")
		}
	case <-time.After(time.Second):
		t.Fatal("TryEmplace never succeeded once room was available")
	}
}

func TestTryGetDistinguishesEmptyFromClosed(t *testing.T) {
	p, c := NewChannel[int](1)

	if _, ok := c.TryGet(); ok {
		t.Fatal("TryGet on an empty, open channel should report ok=false")
	}
	if c.Closed() {
		t.Fatal("channel should not be reported closed while merely empty")
	}

	p.Close()
	if _, ok := c.TryGet(); ok {
		t.Fatal("TryGet on a closed, empty channel should report ok=false")
	}
	if !c.Closed() {
		t.Fatal("consumer should observe closed after a terminal empty TryGet")
	}
}

func TestEmplaceOnSelfClosedProducerIsImmediate(t *testing.T) {
	p, _ := NewChannel[int](1)
	p.Close()
	if p.Emplace(1) {
		t.Fatal("Emplace on a closed producer should return false")
	}
}
