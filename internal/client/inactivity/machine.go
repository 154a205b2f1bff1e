// Package inactivity logs the user out after a period without input.
//
// The policy lives in Transition, a pure function from (machine, event,
// now) to the next machine and the effects to carry out. Monitor drives it
// with a real or fake clock and performs the effects.
package inactivity

import (
	"fmt"
	"time"
)

type State int

const (
	Disarmed State = iota
	Armed
	Expired
)

func (s State) String() string {
	switch s {
	case Disarmed:
		return "disarmed"
	case Armed:
		return "armed"
	case Expired:
		return "expired"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type EventKind int

const (
	// SessionStarted follows a successful login. The login itself has
	// already persisted the activity timestamp.
	SessionStarted EventKind = iota
	// SessionRestored follows a restore at startup. Event.LastActivity is
	// the persisted timestamp, zero when absent.
	SessionRestored
	// Activity is a qualifying user input.
	Activity
	TimerFired
	// Foreground is a return from the background. Event.LastActivity is
	// the persisted timestamp, zero when it could not be read.
	Foreground
	Background
	SessionEnded
	Teardown
	// LoggedOut reports that the Logout effect of an expiry has run.
	LoggedOut
)

type Event struct {
	Kind         EventKind
	LastActivity time.Time
}

type EffectKind int

const (
	CancelTimer EffectKind = iota
	// PersistActivity writes Effect.At as the last activity timestamp.
	PersistActivity
	// ArmTimer starts the timer for Effect.Delay.
	ArmTimer
	Logout
	NotifyExpired
)

type Effect struct {
	Kind  EffectKind
	Delay time.Duration
	At    time.Time
}

type Machine struct {
	State        State
	Timeout      time.Duration
	LastActivity time.Time
}

// NewMachine returns a disarmed machine with the given timeout.
func NewMachine(timeout time.Duration) Machine {
	return Machine{State: Disarmed, Timeout: timeout}
}

// Transition applies ev at time now. Effects must be carried out in the
// returned order.
func Transition(m Machine, ev Event, now time.Time) (Machine, []Effect) {
	switch ev.Kind {
	case SessionStarted:
		m.State = Armed
		m.LastActivity = now
		return m, []Effect{{Kind: CancelTimer}, {Kind: ArmTimer, Delay: m.Timeout}}

	case SessionRestored:
		if ev.LastActivity.IsZero() {
			return expire(m)
		}
		m.LastActivity = ev.LastActivity
		return check(m, now)

	case Activity:
		if m.State != Armed {
			return m, nil
		}
		m.LastActivity = now
		return m, []Effect{
			{Kind: CancelTimer},
			{Kind: PersistActivity, At: now},
			{Kind: ArmTimer, Delay: m.Timeout},
		}

	case TimerFired:
		if m.State != Armed {
			return m, nil
		}
		return check(m, now)

	case Foreground:
		if m.State != Armed {
			return m, nil
		}
		if !ev.LastActivity.IsZero() {
			m.LastActivity = ev.LastActivity
		}
		return check(m, now)

	case Background:
		if m.State != Armed {
			return m, nil
		}
		return m, []Effect{{Kind: CancelTimer}}

	case SessionEnded, Teardown:
		m.State = Disarmed
		return m, []Effect{{Kind: CancelTimer}}

	case LoggedOut:
		if m.State == Expired {
			m.State = Disarmed
		}
		return m, nil
	}
	return m, nil
}

// check expires m if the timeout has elapsed since the last activity and
// otherwise arms the timer for what is left.
func check(m Machine, now time.Time) (Machine, []Effect) {
	elapsed := now.Sub(m.LastActivity)
	if elapsed >= m.Timeout {
		return expire(m)
	}
	m.State = Armed
	return m, []Effect{{Kind: CancelTimer}, {Kind: ArmTimer, Delay: m.Timeout - elapsed}}
}

func expire(m Machine) (Machine, []Effect) {
	m.State = Expired
	return m, []Effect{{Kind: CancelTimer}, {Kind: Logout}, {Kind: NotifyExpired}}
}
