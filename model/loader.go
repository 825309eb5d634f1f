// Package model loads the recognition engine in the background and
// exposes a one-shot readiness latch.
package model

import (
	"context"
	"strings"
	"sync"

	"github.com/Robonectics/soupawhisper/log"
	"github.com/Robonectics/soupawhisper/transcriber"
)

// Loader constructs the engine once, off the caller's goroutine. Its
// state is monotonic: loading until the latch fires, then either
// ready or failed forever. All methods are safe for concurrent use.
type Loader struct {
	build func() (transcriber.Engine, error)

	once   sync.Once
	done   chan struct{}
	engine transcriber.Engine
	err    error
}

// NewLoader wraps an engine constructor. Start must be called before
// Await can complete.
func NewLoader(build func() (transcriber.Engine, error)) *Loader {
	return &Loader{build: build, done: make(chan struct{})}
}

// Start kicks off construction in the background. Subsequent calls
// are no-ops.
func (l *Loader) Start() {
	l.once.Do(func() {
		go func() {
			defer close(l.done)
			l.engine, l.err = l.build()
			if l.err == nil {
				return
			}
			log.Errorf("model load failed: %v", l.err)
			msg := strings.ToLower(l.err.Error())
			if strings.Contains(msg, "cuda") || strings.Contains(msg, "cudnn") {
				log.Warn("hint: try setting device = cpu in your config")
			}
		}()
	})
}

// Ready reports whether the engine loaded successfully. It never
// blocks.
func (l *Loader) Ready() bool {
	select {
	case <-l.done:
		return l.err == nil
	default:
		return false
	}
}

// Failed reports whether loading finished with an error. It never
// blocks; false also means "still loading".
func (l *Loader) Failed() bool {
	select {
	case <-l.done:
		return l.err != nil
	default:
		return false
	}
}

// Err returns the load error, or nil while loading or after success.
func (l *Loader) Err() error {
	select {
	case <-l.done:
		return l.err
	default:
		return nil
	}
}

// Await blocks until loading finishes or ctx is done. On success the
// engine is returned; a load failure is returned as-is.
func (l *Loader) Await(ctx context.Context) (transcriber.Engine, error) {
	select {
	case <-l.done:
		return l.engine, l.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
