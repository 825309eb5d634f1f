//go:build linux

package hotkey

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"
)

const (
	evKey      = 1
	keyRelease = 0
	keyPress   = 1
	keyRepeat  = 2
)

// input_event is 24 bytes on 64-bit Linux:
// timeval (16 bytes) + type (2) + code (2) + value (4)
const inputEventSize = 24

// pollTimeout bounds the readiness wait so the loop re-checks the
// shutdown flag at least this often.
const pollTimeout = 1 * time.Second

type device struct {
	fd   int
	path string
	name string
}

// Listener multiplexes all qualifying keyboard devices and delivers
// hotkey edges synchronously to a callback.
type Listener struct {
	code    uint16
	devices []device
	quit    atomic.Bool
}

// NewListener opens every input device that qualifies as a keyboard
// carrying the hotkey. A device qualifies when its key capability
// bitmap has both the hotkey code and KEY_A set; the latter excludes
// power buttons, lid switches and similar non-keyboards.
func NewListener(code uint16) (*Listener, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, fmt.Errorf("scanning input devices: %w", err)
	}

	l := &Listener{code: code}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		if !supportsKeys(e.Name(), code) {
			continue
		}
		path := filepath.Join("/dev/input", e.Name())
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
		if err != nil {
			continue
		}
		l.devices = append(l.devices, device{fd: fd, path: path, name: deviceName(e.Name())})
	}

	if len(l.devices) == 0 {
		return nil, errors.New("no keyboard devices found (is user in 'input' group?)")
	}
	return l, nil
}

func supportsKeys(eventName string, code uint16) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	caps := string(data)
	return hasKeyBit(caps, KeyA) && hasKeyBit(caps, code)
}

func deviceName(eventName string) string {
	namePath := filepath.Join("/sys/class/input", eventName, "device", "name")
	data, err := os.ReadFile(namePath)
	if err != nil {
		return eventName
	}
	return strings.TrimSpace(string(data))
}

// DeviceNames returns the human-readable names of the monitored devices.
func (l *Listener) DeviceNames() []string {
	names := make([]string, len(l.devices))
	for i, d := range l.devices {
		names[i] = d.name
	}
	return names
}

// Stop requests Run to return. Run observes the flag within one poll
// timeout at the latest.
func (l *Listener) Stop() {
	l.quit.Store(true)
}

// Run blocks, polling all monitored devices and invoking onEdge
// synchronously for each hotkey press or release. A device that fails
// to read (unplugged, revoked) is dropped from monitoring; Run only
// returns when Stop has been called, or with an error when no devices
// remain.
func (l *Listener) Run(onEdge func(Event)) error {
	defer l.closeAll()

	buf := make([]byte, inputEventSize*64)
	for !l.quit.Load() {
		if len(l.devices) == 0 {
			return errors.New("all keyboard devices dropped")
		}

		fds := make([]unix.PollFd, len(l.devices))
		for i, d := range l.devices {
			fds[i] = unix.PollFd{Fd: int32(d.fd), Events: unix.POLLIN}
		}

		n, err := unix.Poll(fds, int(pollTimeout.Milliseconds()))
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return fmt.Errorf("polling input devices: %w", err)
		}
		if n == 0 {
			continue
		}

		var kept []device
		for i, d := range l.devices {
			re := fds[i].Revents
			if re == 0 {
				kept = append(kept, d)
				continue
			}
			if re&(unix.POLLERR|unix.POLLHUP|unix.POLLNVAL) != 0 {
				unix.Close(d.fd)
				continue
			}
			if l.drain(d, buf, onEdge) {
				kept = append(kept, d)
			} else {
				unix.Close(d.fd)
			}
		}
		l.devices = kept
	}
	return nil
}

// drain reads all pending events from a device. It reports false when
// the device should be dropped.
func (l *Listener) drain(d device, buf []byte, onEdge func(Event)) bool {
	for {
		n, err := unix.Read(d.fd, buf)
		if n > 0 {
			l.emit(d, buf[:n], onEdge)
		}
		if err != nil {
			return errors.Is(err, unix.EAGAIN)
		}
		if n <= 0 {
			return false
		}
	}
}

func (l *Listener) emit(d device, data []byte, onEdge func(Event)) {
	for i := 0; i+inputEventSize <= len(data); i += inputEventSize {
		evType := binary.LittleEndian.Uint16(data[i+16:])
		evCode := binary.LittleEndian.Uint16(data[i+18:])
		evValue := int32(binary.LittleEndian.Uint32(data[i+20:]))

		if evType != evKey || evCode != l.code {
			continue
		}

		switch evValue {
		case keyPress:
			onEdge(Event{Device: d.path, Edge: Down, Time: time.Now()})
		case keyRelease:
			onEdge(Event{Device: d.path, Edge: Up, Time: time.Now()})
		case keyRepeat:
			// auto-repeat while held, not an edge
		}
	}
}

func (l *Listener) closeAll() {
	for _, d := range l.devices {
		unix.Close(d.fd)
	}
	l.devices = nil
}
