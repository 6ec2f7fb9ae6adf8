package verification

import (
	"context"
	"sync"

	"github.com/osse101/DreamJournal_Go/internal/domain"
	"github.com/osse101/DreamJournal_Go/internal/event"
)

// Notifier fans verification status events out to waiters watching a single artifact
type Notifier struct {
	mu       sync.Mutex
	watchers map[string]map[chan domain.ArtifactStatus]struct{}
}

// NewNotifier creates a notifier and subscribes it to bus
func NewNotifier(bus event.Bus) *Notifier {
	n := &Notifier{watchers: make(map[string]map[chan domain.ArtifactStatus]struct{})}
	if bus != nil {
		bus.Subscribe(event.VerificationStatusChanged, n.handle)
	}
	return n
}

// Watch returns a channel receiving the artifact's next status changes and a stop func.
// stop must be called; it is safe to call more than once.
func (n *Notifier) Watch(artifactID string) (<-chan domain.ArtifactStatus, func()) {
	ch := make(chan domain.ArtifactStatus, 1)

	n.mu.Lock()
	set, ok := n.watchers[artifactID]
	if !ok {
		set = make(map[chan domain.ArtifactStatus]struct{})
		n.watchers[artifactID] = set
	}
	set[ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.watchers[artifactID], ch)
			if len(n.watchers[artifactID]) == 0 {
				delete(n.watchers, artifactID)
			}
		})
	}
	return ch, stop
}

// Notify delivers status to every watcher of artifactID without blocking
func (n *Notifier) Notify(artifactID string, status domain.ArtifactStatus) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.watchers[artifactID] {
		select {
		case ch <- status:
		default:
		}
	}
}

func (n *Notifier) watching() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.watchers)
}

func (n *Notifier) handle(_ context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.VerificationStatusChangedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	n.Notify(payload.ArtifactID, domain.ArtifactStatus(payload.Status))
	return nil
}
