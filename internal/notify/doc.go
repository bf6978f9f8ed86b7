// Package notify implements the single-slot, self-expiring submission
// notification.
//
// The machine holds exactly one State: Idle, Success(t) or Error(t), where
// t is the instant the state was entered. A new submission outcome always
// replaces the current state and restarts the timer. Expiry is a level
// check: the host calls Poll once per render tick, and Poll moves a
// Success or Error state to Idle once the display duration has elapsed
// since t. There are no timers or callbacks.
//
//	Idle ──Succeed──▶ Success(now) ──Poll, elapsed >= d──▶ Idle
//	Idle ──Fail─────▶ Error(now)   ──Poll, elapsed >= d──▶ Idle
//	Success/Error ──Succeed/Fail──▶ Success(now)/Error(now)
//
// A Machine is not safe for concurrent use; it is owned by the single
// thread driving the host loop.
package notify
