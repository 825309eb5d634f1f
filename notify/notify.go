// Package notify sends best-effort desktop notifications over the
// session bus. Every failure is swallowed: feedback must never block
// or break a dictation cycle.
package notify

import (
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/Robonectics/soupawhisper/log"
)

const appName = "SoupaWhisper"

// Notifier talks to org.freedesktop.Notifications. The zero value and
// nil are both usable and silently do nothing; use New to get a
// connected one.
type Notifier struct {
	conn *dbus.Conn
}

// New connects to the session bus. A missing bus is not an error —
// the returned Notifier simply drops everything.
func New() *Notifier {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		log.Warnf("notifications unavailable: %v", err)
		return &Notifier{}
	}
	return &Notifier{conn: conn}
}

// Notify shows a transient notification. Consecutive notifications
// replace each other (the synchronous hint) so a dictation cycle
// shows as one updating bubble, not a stack.
func (n *Notifier) Notify(title, body, icon string, timeout time.Duration) {
	if n == nil || n.conn == nil {
		return
	}
	hints := map[string]dbus.Variant{
		"x-canonical-private-synchronous": dbus.MakeVariant("soupawhisper"),
	}
	obj := n.conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		appName,             // app_name
		uint32(0),           // replaces_id
		icon,                // app_icon
		title,               // summary
		body,                // body
		[]string{},          // actions
		hints,               // hints
		int32(timeout.Milliseconds()),
	)
	if call.Err != nil {
		log.Warnf("notify failed: %v", call.Err)
	}
}

// Close releases the bus connection.
func (n *Notifier) Close() {
	if n != nil && n.conn != nil {
		n.conn.Close()
	}
}
