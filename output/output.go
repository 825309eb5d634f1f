// Package output delivers transcribed text to the desktop: clipboard
// always, simulated typing optionally. The backend is chosen once at
// startup from the session family; there is no runtime branching
// after that.
package output

import (
	"fmt"
	"os/exec"
	"strings"
)

// Family is the desktop session family, which determines the
// clipboard and typing commands.
type Family string

const (
	X11     Family = "x11"
	Wayland Family = "wayland"
)

// Dispatcher writes text into the desktop session.
type Dispatcher interface {
	// SetClipboard replaces the clipboard contents with text.
	SetClipboard(text string) error
	// TypeText injects text as keystrokes into the focused window.
	TypeText(text string) error
	// Commands lists the external binaries the backend depends on;
	// typing commands come last.
	Commands(autoType bool) []string
}

// ForSession returns the backend for a session family.
func ForSession(family Family) Dispatcher {
	if family == Wayland {
		return waylandDispatcher{}
	}
	return x11Dispatcher{}
}

func runWithStdin(text string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	// Stdout and stderr stay unwired: xclip and wl-copy fork a child
	// that keeps serving the selection, and that child would hold a
	// capture pipe open until clipboard ownership is lost.
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func run(name string, args ...string) error {
	if out, err := exec.Command(name, args...).CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

type x11Dispatcher struct{}

func (x11Dispatcher) SetClipboard(text string) error {
	return runWithStdin(text, "xclip", "-selection", "clipboard")
}

func (x11Dispatcher) TypeText(text string) error {
	return run("xdotool", "type", "--clearmodifiers", text)
}

func (x11Dispatcher) Commands(autoType bool) []string {
	cmds := []string{"xclip"}
	if autoType {
		cmds = append(cmds, "xdotool")
	}
	return cmds
}

type waylandDispatcher struct{}

func (waylandDispatcher) SetClipboard(text string) error {
	return runWithStdin(text, "wl-copy")
}

func (waylandDispatcher) TypeText(text string) error {
	return run("wtype", text)
}

func (waylandDispatcher) Commands(autoType bool) []string {
	cmds := []string{"wl-copy"}
	if autoType {
		cmds = append(cmds, "wtype")
	}
	return cmds
}
