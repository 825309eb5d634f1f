// Package transcriber turns finished WAV recordings into text. The
// recognition engine itself is opaque: audio file in, ordered text
// segments out.
package transcriber

import "context"

// Segment is one unit of recognized speech with its time span in
// seconds, in emission order.
type Segment struct {
	Text  string
	Start float64
	End   float64
}

// Engine runs speech recognition on a recorded file. Implementations
// must honor ctx cancellation; a run can otherwise hang on a
// misbehaving backend.
type Engine interface {
	Name() string
	Transcribe(ctx context.Context, wavPath string) ([]Segment, error)
}
