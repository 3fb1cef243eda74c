package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPriority is returned when a priority string cannot be parsed.
var ErrUnknownPriority = errors.New("unknown priority")

// Priority is the urgency of a recommendation. Lower values are more urgent.
type Priority int

// Priority levels, most urgent first.
const (
	PriorityUrgent Priority = iota + 1
	PriorityHigh
	PriorityNormal
)

var priorityNames = map[Priority]string{
	PriorityUrgent: "urgent",
	PriorityHigh:   "high",
	PriorityNormal: "normal",
}

// IsValid reports whether p is a defined priority.
func (p Priority) IsValid() bool {
	return p >= PriorityUrgent && p <= PriorityNormal
}

// String returns the canonical name ("urgent", "high", "normal").
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// MoreUrgentThan reports whether p ranks above other.
func (p Priority) MoreUrgentThan(other Priority) bool {
	return p < other
}

// ParsePriority converts a priority name into a Priority.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "urgent":
		return PriorityUrgent, nil
	case "high":
		return PriorityHigh, nil
	case "normal":
		return PriorityNormal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPriority, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPriority, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Recommendation is a generated clinical instruction.
// It carries reconstructed text only and never references the findings it was built from.
type Recommendation struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Action      string   `json:"action" yaml:"action"`
	Priority    Priority `json:"priority" yaml:"priority"`
}
