package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBusDown = errors.New("bus down")

// flakyBus fails the first failFirst publishes, or all of them when failAlways is set.
type flakyBus struct {
	mu         sync.Mutex
	failFirst  int
	failAlways bool
	delay      time.Duration
	attempts   []time.Time
	delivered  []Event
}

func (b *flakyBus) Publish(_ context.Context, evt Event) error {
	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attempts = append(b.attempts, time.Now())
	if b.failAlways || len(b.attempts) <= b.failFirst {
		return errBusDown
	}
	b.delivered = append(b.delivered, evt)
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) attemptCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.attempts)
}

func (b *flakyBus) deliveredCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.delivered)
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []DeadLetterEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e DeadLetterEntry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		out = append(out, e)
	}
	require.NoError(t, sc.Err())
	return out
}

func catalogEvent(id string) Event {
	return NewCatalogChangedEvent("quest", id, "update")
}

func TestResilientPublisher_DeliversInline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dl.jsonl")
	bus := &flakyBus{}
	rp, err := NewResilientPublisher(bus, 3, 20*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), catalogEvent("daily-sketch"))

	assert.Equal(t, 1, bus.deliveredCount())
	require.NoError(t, rp.Shutdown(context.Background()))
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_RecoversAfterTransientFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dl.jsonl")
	bus := &flakyBus{failFirst: 2}
	rp, err := NewResilientPublisher(bus, 5, 20*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), NewLoginDailyResetEvent(time.Now(), 12))

	assert.Eventually(t, func() bool { return bus.deliveredCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 3, bus.attemptCount())

	require.NoError(t, rp.Shutdown(context.Background()))
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_ExhaustedRetriesAreDeadLettered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dl.jsonl")
	bus := &flakyBus{failAlways: true}
	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), catalogEvent("bounty-mural"))

	// inline attempt plus retries 1..3
	assert.Eventually(t, func() bool { return bus.attemptCount() == 4 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, DeadLetterSchemaVersion, entries[0].SchemaVersion)
	assert.Equal(t, CatalogChanged, entries[0].Event.Type)
	assert.Equal(t, 3, entries[0].Attempts)
	assert.Equal(t, errBusDown.Error(), entries[0].LastError)
}

func TestResilientPublisher_BackoffDoubles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dl.jsonl")
	bus := &flakyBus{failFirst: 3}
	base := 40 * time.Millisecond
	rp, err := NewResilientPublisher(bus, 5, base, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), catalogEvent("patron-visit"))
	require.Eventually(t, func() bool { return bus.deliveredCount() == 1 }, 2*time.Second, 5*time.Millisecond)

	bus.mu.Lock()
	defer bus.mu.Unlock()
	gaps := []time.Duration{
		bus.attempts[1].Sub(bus.attempts[0]),
		bus.attempts[2].Sub(bus.attempts[1]),
		bus.attempts[3].Sub(bus.attempts[2]),
	}
	assert.GreaterOrEqual(t, gaps[0], base)
	assert.GreaterOrEqual(t, gaps[1], 2*base)
	assert.GreaterOrEqual(t, gaps[2], 4*base)
}

func TestResilientPublisher_FullQueueSpillsToDeadLetter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dl.jsonl")
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)

	bus := &flakyBus{failAlways: true}
	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, 2),
		maxRetries: 1,
		retryDelay: time.Hour,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}
	// No worker running: the queue only fills.
	for i := 0; i < 5; i++ {
		rp.PublishWithRetry(context.Background(), catalogEvent(fmt.Sprintf("q%d", i)))
	}

	spilled := readDeadLetters(t, path)
	assert.Len(t, spilled, 3)
	assert.Len(t, rp.retryQueue, 2)
}

func TestResilientPublisher_ShutdownDrainsQueue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dl.jsonl")
	bus := &flakyBus{failFirst: 3}
	rp, err := NewResilientPublisher(bus, 5, time.Hour, path)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		rp.PublishWithRetry(context.Background(), catalogEvent(fmt.Sprintf("q%d", i)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	assert.Equal(t, 3, bus.deliveredCount())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_PublishAfterShutdownIsDeadLettered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dl.jsonl")
	bus := &flakyBus{failAlways: true}
	rp, err := NewResilientPublisher(bus, 2, 10*time.Millisecond, path)
	require.NoError(t, err)

	rp.closeOnce.Do(func() { close(rp.shutdown) })
	rp.wg.Wait()

	assert.NoError(t, rp.Publish(context.Background(), catalogEvent("late")))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Attempts)
}

func TestResilientPublisher_ConcurrentPublishers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dl.jsonl")
	bus := &flakyBus{}
	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				rp.PublishWithRetry(context.Background(), catalogEvent(fmt.Sprintf("%d-%d", g, i)))
			}
		}(g)
	}
	wg.Wait()

	assert.Equal(t, 80, bus.deliveredCount())
}

func TestCalculateRetryDelay(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{-1, 2 * time.Second},
		{0, 2 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{5, 32 * time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculateRetryDelay(2*time.Second, tt.attempt), "attempt %d", tt.attempt)
	}
}
