// Package connectivity tracks whether the server is reachable and broadcasts
// state transitions and sync progress to subscribers.
package connectivity

import "sync"

// EventKind identifies what happened.
type EventKind int

const (
	// EventOffline fires on the reachable -> unreachable transition.
	EventOffline EventKind = iota
	// EventOnline fires on the unreachable -> reachable transition.
	EventOnline
	// EventSyncStarted fires when queued writes begin replaying.
	EventSyncStarted
	// EventSyncFinished fires when the replay pass ends, whether or not it
	// drained every queue.
	EventSyncFinished
	// EventServedFromCache fires when a read was answered from the local
	// cache instead of the server.
	EventServedFromCache
)

// Event is a single notification.
type Event struct {
	Kind EventKind
	// Detail optionally names what the event relates to (a cache partition,
	// a queue).
	Detail string
}

// Monitor is a small event bus for connectivity state. A new Monitor starts
// online, since the client assumes reachability until a request fails.
type Monitor struct {
	mu      sync.Mutex
	offline bool
	subs    map[int]chan Event
	nextID  int
}

// NewMonitor returns a Monitor in the online state with no subscribers.
func NewMonitor() *Monitor {
	return &Monitor{subs: make(map[int]chan Event)}
}

// Online reports the current reachability state.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.offline
}

// SetOnline records a reachability observation. Only actual transitions
// publish an event; repeated observations of the same state are silent.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.offline != online {
		return
	}
	m.offline = !online

	kind := EventOffline
	if online {
		kind = EventOnline
	}
	m.broadcastLocked(Event{Kind: kind})
}

// Publish broadcasts an event to all subscribers without touching the
// reachability state.
func (m *Monitor) Publish(e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcastLocked(e)
}

// Subscribe returns a channel of events and a cancel function. The channel
// is buffered; a subscriber that stops draining loses newer events rather
// than blocking publishers.
func (m *Monitor) Subscribe() (<-chan Event, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	ch := make(chan Event, 16)
	m.subs[id] = ch

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (m *Monitor) broadcastLocked(e Event) {
	for _, ch := range m.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
