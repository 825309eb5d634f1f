// Package hotkey watches keyboard input devices and reports press and
// release edges of a single configured key.
package hotkey

import "time"

// Edge is a logical key transition derived from raw device values.
type Edge int

const (
	Down Edge = iota
	Up
)

func (e Edge) String() string {
	if e == Down {
		return "down"
	}
	return "up"
}

// Event is one hotkey edge. Events are ephemeral: produced by the
// listener and consumed exactly once by its callback.
type Event struct {
	Device string // device path, e.g. /dev/input/event3
	Edge   Edge
	Time   time.Time
}
