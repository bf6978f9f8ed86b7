package notify

import (
	"fmt"
	"time"
)

// Kind is the tag of a notification state.
type Kind int

const (
	Idle Kind = iota
	Success
	Error
)

var kindNames = [...]string{
	Idle:    "idle",
	Success: "success",
	Error:   "error",
}

// String returns "idle", "success" or "error".
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind parses the String form of a Kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return Idle, fmt.Errorf("unknown notification kind %q", s)
}

// State is the current notification. IssuedAt is zero for Idle.
type State struct {
	Kind     Kind
	IssuedAt time.Time
}

// Showing reports whether an overlay should be displayed.
func (s State) Showing() bool {
	return s.Kind != Idle
}

// Message is the overlay text for the state; empty for Idle.
func (s State) Message() string {
	switch s.Kind {
	case Success:
		return "submitted"
	case Error:
		return "invalid input"
	default:
		return ""
	}
}

// Expired reports whether s has been showing for at least d at now.
// Idle never expires.
func Expired(s State, now time.Time, d time.Duration) bool {
	if s.Kind == Idle {
		return false
	}
	return now.Sub(s.IssuedAt) >= d
}
