package lockset

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockSerializesSameKey(t *testing.T) {
	s := New()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := s.Lock("room:1")
			defer unlock()

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, s.Len())
}

func TestOverlappingKeySetsDoNotDeadlock(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Lock("room:a", "room:b")()
		}()
		go func() {
			defer wg.Done()
			s.Lock("room:b", "room:a")()
		}()
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("lock acquisition deadlocked")
	}
}

func TestUnlockIsIdempotentAndDedupes(t *testing.T) {
	s := New()
	unlock := s.Lock("k", "k", "")
	require.Equal(t, 1, s.Len())
	unlock()
	unlock()
	assert.Equal(t, 0, s.Len())

	// distinct keys never block each other
	u1 := s.Lock("a")
	u2 := s.Lock("b")
	u1()
	u2()
}
