package output

import (
	"slices"
	"testing"
)

func TestForSession(t *testing.T) {
	if _, ok := ForSession(Wayland).(waylandDispatcher); !ok {
		t.Error("ForSession(Wayland) should return the Wayland backend")
	}
	if _, ok := ForSession(X11).(x11Dispatcher); !ok {
		t.Error("ForSession(X11) should return the X11 backend")
	}
	// Unknown family falls back to X11, matching session detection.
	if _, ok := ForSession(Family("mir")).(x11Dispatcher); !ok {
		t.Error("unknown family should fall back to X11")
	}
}

func TestCommands(t *testing.T) {
	for _, tt := range []struct {
		family   Family
		autoType bool
		want     []string
	}{
		{X11, false, []string{"xclip"}},
		{X11, true, []string{"xclip", "xdotool"}},
		{Wayland, false, []string{"wl-copy"}},
		{Wayland, true, []string{"wl-copy", "wtype"}},
	} {
		got := ForSession(tt.family).Commands(tt.autoType)
		if !slices.Equal(got, tt.want) {
			t.Errorf("Commands(%s, %v) = %v, want %v", tt.family, tt.autoType, got, tt.want)
		}
	}
}
