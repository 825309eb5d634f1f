package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Robonectics/soupawhisper/config"
	"github.com/Robonectics/soupawhisper/hotkey"
	"github.com/Robonectics/soupawhisper/log"
	"github.com/Robonectics/soupawhisper/model"
	"github.com/Robonectics/soupawhisper/output"
	"github.com/Robonectics/soupawhisper/transcriber"
)

// transcribeTimeout bounds a single engine run. A wedged engine
// otherwise blocks the event loop forever.
const transcribeTimeout = 2 * time.Minute

const (
	previewLimit  = 100 // success notification text preview
	errorMsgLimit = 50  // error notification body
)

type state int

const (
	stateIdle state = iota
	stateRecording
	stateTranscribing
)

// notifier is the feedback surface the controller needs; satisfied by
// *notify.Notifier (nil-safe) and by the test fake.
type notifier interface {
	Notify(title, body, icon string, timeout time.Duration)
}

// recordProcess is a running capture; satisfied by *recorder.Process.
type recordProcess interface {
	Stop() error
}

type recordFunc func(path string) (recordProcess, error)

// recordingSession exists iff the controller is Recording or
// Transcribing; its temp file is deleted exactly once, on every exit
// path out of the cycle.
type recordingSession struct {
	tempPath  string
	proc      recordProcess
	startedAt time.Time
}

// dictation is the push-to-talk state machine. It is single-threaded
// by design: edges arrive synchronously from the listener loop, and
// all heavy work — waiting for the model, running the engine — blocks
// that loop inline. New edges are not processed until a cycle
// finishes.
type dictation struct {
	ctx     context.Context
	cfg     config.Config
	loader  *model.Loader
	out     output.Dispatcher
	notif   notifier
	record  recordFunc
	keyName string

	state   state
	session *recordingSession
}

func newDictation(ctx context.Context, cfg config.Config, loader *model.Loader, out output.Dispatcher, n notifier, record recordFunc, keyName string) *dictation {
	return &dictation{
		ctx:     ctx,
		cfg:     cfg,
		loader:  loader,
		out:     out,
		notif:   n,
		record:  record,
		keyName: keyName,
	}
}

// HandleEdge drives the state machine. It is the listener's callback
// and must only be called from one goroutine.
func (d *dictation) HandleEdge(e hotkey.Event) {
	switch e.Edge {
	case hotkey.Down:
		d.handleDown()
	case hotkey.Up:
		d.handleUp()
	}
}

func (d *dictation) handleDown() {
	if d.state != stateIdle {
		// Debounce: a second Down while recording is a no-op.
		return
	}
	if d.loader.Failed() {
		d.notif.Notify("Error", "Model failed to load", "dialog-error", 3*time.Second)
		return
	}

	tmp, err := os.CreateTemp("", "soupawhisper-*.wav")
	if err != nil {
		log.Errorf("creating temp file: %v", err)
		return
	}
	tmp.Close()

	proc, err := d.record(tmp.Name())
	if err != nil {
		os.Remove(tmp.Name())
		log.Errorf("starting capture: %v", err)
		d.notif.Notify("Error", truncate(err.Error(), errorMsgLimit), "dialog-error", 3*time.Second)
		return
	}

	d.session = &recordingSession{tempPath: tmp.Name(), proc: proc, startedAt: time.Now()}
	d.state = stateRecording
	fmt.Println("Recording...")
	d.notif.Notify("Recording...",
		fmt.Sprintf("Release %s when done", strings.ToUpper(d.keyName)),
		"audio-input-microphone", 30*time.Second)
}

func (d *dictation) handleUp() {
	if d.state != stateRecording {
		return
	}
	sess := d.session
	d.state = stateTranscribing

	// The temp file is released exactly once, whatever happens below.
	defer func() {
		os.Remove(sess.tempPath)
		d.session = nil
		d.state = stateIdle
	}()

	if err := sess.proc.Stop(); err != nil {
		log.Errorf("stopping capture: %v", err)
		d.notif.Notify("Error", truncate(err.Error(), errorMsgLimit), "dialog-error", 3*time.Second)
		return
	}

	fmt.Println("Transcribing...")
	d.notif.Notify("Transcribing...", "Processing your speech", "emblem-synchronizing", 30*time.Second)

	// Block until the model finishes loading. A release right after
	// startup pays the remaining load time here, once.
	engine, err := d.loader.Await(d.ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Println("Cannot transcribe: model failed to load")
		d.notif.Notify("Error", "Model failed to load", "dialog-error", 3*time.Second)
		return
	}

	tctx, cancel := context.WithTimeout(d.ctx, transcribeTimeout)
	defer cancel()
	segments, err := engine.Transcribe(tctx, sess.tempPath)
	if err != nil {
		log.Errorf("transcription: %v", err)
		d.notif.Notify("Error", truncate(err.Error(), errorMsgLimit), "dialog-error", 3*time.Second)
		return
	}

	text := transcriber.Join(segments)
	if text == "" {
		fmt.Println("No speech detected")
		d.notif.Notify("No speech detected", "Try speaking louder", "dialog-warning", 2*time.Second)
		return
	}

	d.deliver(text)
}

func (d *dictation) deliver(text string) {
	failed := false
	if err := d.out.SetClipboard(text); err != nil {
		failed = true
		log.Errorf("clipboard: %v", err)
		d.notif.Notify("Error", truncate(err.Error(), errorMsgLimit), "dialog-error", 3*time.Second)
	}
	if d.cfg.AutoType {
		if err := d.out.TypeText(text); err != nil {
			failed = true
			log.Errorf("typing: %v", err)
			d.notif.Notify("Error", truncate(err.Error(), errorMsgLimit), "dialog-error", 3*time.Second)
		}
	}
	if failed {
		return
	}
	fmt.Printf("Copied: %s\n", text)
	d.notif.Notify("Copied!", truncate(text, previewLimit), "emblem-ok-symbolic", 3*time.Second)
}

// Shutdown aborts an in-flight recording: the capture process is
// stopped and the temp file removed. Call only after the listener
// loop has returned.
func (d *dictation) Shutdown() {
	if d.session == nil {
		return
	}
	if err := d.session.proc.Stop(); err != nil {
		log.Errorf("stopping capture on shutdown: %v", err)
	}
	os.Remove(d.session.tempPath)
	d.session = nil
	d.state = stateIdle
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
