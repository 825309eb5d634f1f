package transcriber

import (
	"context"
	"sync"
)

// Fake is a scripted engine for tests.
type Fake struct {
	Segments []Segment
	Err      error

	mu    sync.Mutex
	calls []string
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Transcribe(_ context.Context, wavPath string) ([]Segment, error) {
	f.mu.Lock()
	f.calls = append(f.calls, wavPath)
	f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Segments, nil
}

// Calls returns the WAV paths Transcribe was invoked with.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
