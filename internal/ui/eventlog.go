package ui

// EventLog keeps the most recent dashboard events, dropping the oldest once full.
type EventLog struct {
	items    []Event
	head     int
	capacity int
}

// NewEventLog creates an event log holding at most capacity events.
func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		capacity = 1
	}
	return &EventLog{
		items:    make([]Event, 0, capacity),
		capacity: capacity,
	}
}

// Add records an event.
func (l *EventLog) Add(e Event) {
	if len(l.items) < l.capacity {
		l.items = append(l.items, e)
		return
	}
	l.items[l.head] = e
	l.head = (l.head + 1) % l.capacity
}

// Items returns the retained events, oldest first.
func (l *EventLog) Items() []Event {
	out := make([]Event, 0, len(l.items))
	for i := range l.items {
		out = append(out, l.items[(l.head+i)%len(l.items)])
	}
	return out
}

// Len returns the number of retained events.
func (l *EventLog) Len() int {
	return len(l.items)
}

// Latest returns the most recent event.
func (l *EventLog) Latest() (Event, bool) {
	if len(l.items) == 0 {
		return Event{}, false
	}
	if len(l.items) < l.capacity {
		return l.items[len(l.items)-1], true
	}
	return l.items[(l.head+l.capacity-1)%l.capacity], true
}
