// Package recorder captures microphone audio by driving an external
// arecord process writing 16-bit mono 16 kHz WAV, the input format
// the recognition engine expects.
package recorder

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// stopTimeout bounds the wait for arecord to exit after SIGTERM; a
// stuck process is killed so a release edge can never hang the loop.
const stopTimeout = 3 * time.Second

// Command is the capture binary, a package variable so tests can
// substitute a stand-in.
var Command = "arecord"

// Process is a handle on a running capture.
type Process struct {
	cmd  *exec.Cmd
	wait chan error
}

// Start spawns the capture process writing to path. The recording
// runs until Stop is called.
func Start(path string) (*Process, error) {
	cmd := exec.Command(Command,
		"-f", "S16_LE",
		"-r", "16000",
		"-c", "1",
		"-t", "wav",
		path,
	)
	// arecord chatters on stderr; none of it is useful here.
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", Command, err)
	}

	p := &Process{cmd: cmd, wait: make(chan error, 1)}
	go func() { p.wait <- cmd.Wait() }()
	return p, nil
}

// Stop terminates the capture and waits for the process to exit,
// escalating to SIGKILL after stopTimeout. The WAV file is complete
// once Stop returns.
func (p *Process) Stop() error {
	if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
		p.cmd.Process.Kill()
	}

	select {
	case <-p.wait:
		return nil
	case <-time.After(stopTimeout):
	}

	p.cmd.Process.Kill()
	select {
	case <-p.wait:
	case <-time.After(stopTimeout):
		return fmt.Errorf("%s did not exit after SIGKILL", Command)
	}
	return nil
}
