package ecs

// Event is a frame-scoped message between systems. Producers push during
// their update; consumers drain later in the same frame. Anything left over
// is dropped when the frame ends.
type Event struct {
	Type string
	Data any
}

// Event types emitted by the gameplay systems.
const (
	EventStateChanged   = "state_changed"
	EventHeadStomp      = "head_stomp"
	EventAbilityPicked  = "ability_picked"
	EventPlayerRespawn  = "player_respawn"
	EventConfigReloaded = "config_reloaded"
)

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all queued events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
