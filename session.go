package main

import (
	"os"
	"strings"

	"github.com/Robonectics/soupawhisper/output"
)

// detectSession picks the desktop session family from the
// environment. XDG_SESSION_TYPE wins when it names a known family;
// otherwise the display-server variables decide, defaulting to X11.
func detectSession() output.Family {
	switch strings.ToLower(os.Getenv("XDG_SESSION_TYPE")) {
	case "wayland":
		return output.Wayland
	case "x11":
		return output.X11
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return output.Wayland
	}
	return output.X11
}
