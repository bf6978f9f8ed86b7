package notify

import (
	"time"

	"github.com/roach88/paperscore/internal/clock"
)

// DefaultDisplayDuration is how long a notification stays visible.
const DefaultDisplayDuration = time.Second

// Machine is the notification state machine.
type Machine struct {
	clock   clock.Clock
	display time.Duration
	state   State
}

// New creates an Idle machine. A nil clock uses the system clock and a
// non-positive display duration uses DefaultDisplayDuration.
func New(c clock.Clock, display time.Duration) *Machine {
	if c == nil {
		c = clock.System{}
	}
	if display <= 0 {
		display = DefaultDisplayDuration
	}
	return &Machine{clock: c, display: display}
}

// Succeed enters Success(now), replacing any current state.
func (m *Machine) Succeed() State {
	m.state = State{Kind: Success, IssuedAt: m.clock.Now()}
	return m.state
}

// Fail enters Error(now), replacing any current state.
func (m *Machine) Fail() State {
	m.state = State{Kind: Error, IssuedAt: m.clock.Now()}
	return m.state
}

// Poll runs the expiry check and returns the resulting state.
// Call once per host tick.
func (m *Machine) Poll() State {
	if Expired(m.state, m.clock.Now(), m.display) {
		m.state = State{}
	}
	return m.state
}

// State returns the current state without running the expiry check.
func (m *Machine) State() State {
	return m.state
}
