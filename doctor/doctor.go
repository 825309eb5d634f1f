// Package doctor verifies the external commands the dictation
// pipeline shells out to.
package doctor

import (
	"fmt"
	"os/exec"

	"github.com/Robonectics/soupawhisper/output"
	"github.com/Robonectics/soupawhisper/recorder"
)

// Dependency is a required external command and the distro package
// that provides it.
type Dependency struct {
	Command string
	Package string
}

var packages = map[string]string{
	"arecord": "alsa-utils",
	"xclip":   "xclip",
	"xdotool": "xdotool",
	"wl-copy": "wl-clipboard",
	"wtype":   "wtype",
}

func required(d output.Dispatcher, autoType bool) []Dependency {
	cmds := append([]string{recorder.Command}, d.Commands(autoType)...)
	deps := make([]Dependency, 0, len(cmds))
	for _, cmd := range cmds {
		pkg, ok := packages[cmd]
		if !ok {
			pkg = cmd
		}
		deps = append(deps, Dependency{Command: cmd, Package: pkg})
	}
	return deps
}

// Missing returns the required commands that are not on PATH.
func Missing(d output.Dispatcher, autoType bool) []Dependency {
	var missing []Dependency
	for _, dep := range required(d, autoType) {
		if _, err := exec.LookPath(dep.Command); err != nil {
			missing = append(missing, dep)
		}
	}
	return missing
}

// Run prints a check line per required command and returns an exit
// code (0 = all present, 1 = any missing).
func Run(family output.Family, d output.Dispatcher, autoType bool) int {
	fmt.Printf("Checking external commands (session: %s)\n", family)
	code := 0
	for _, dep := range required(d, autoType) {
		if path, err := exec.LookPath(dep.Command); err == nil {
			fmt.Printf("  PASS: %s (%s)\n", dep.Command, path)
		} else {
			fmt.Printf("  FAIL: %s - install with: sudo apt install %s\n", dep.Command, dep.Package)
			code = 1
		}
	}
	return code
}
