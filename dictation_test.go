package main

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Robonectics/soupawhisper/config"
	"github.com/Robonectics/soupawhisper/hotkey"
	"github.com/Robonectics/soupawhisper/model"
	"github.com/Robonectics/soupawhisper/output"
	"github.com/Robonectics/soupawhisper/transcriber"
)

type fakeNotifier struct {
	titles []string
	bodies []string
}

func (f *fakeNotifier) Notify(title, body, _ string, _ time.Duration) {
	f.titles = append(f.titles, title)
	f.bodies = append(f.bodies, body)
}

func (f *fakeNotifier) sawTitle(title string) bool {
	for _, t := range f.titles {
		if t == title {
			return true
		}
	}
	return false
}

type fakeProc struct {
	stops int
	err   error
}

func (p *fakeProc) Stop() error {
	p.stops++
	return p.err
}

type harness struct {
	d      *dictation
	notif  *fakeNotifier
	out    *output.Fake
	engine *transcriber.Fake

	paths []string // temp paths handed to the recorder, in order
	procs []*fakeProc
}

func (h *harness) down() { h.d.HandleEdge(hotkey.Event{Edge: hotkey.Down, Time: time.Now()}) }
func (h *harness) up()   { h.d.HandleEdge(hotkey.Event{Edge: hotkey.Up, Time: time.Now()}) }

func (h *harness) lastPath(t *testing.T) string {
	t.Helper()
	if len(h.paths) == 0 {
		t.Fatal("no recording was started")
	}
	return h.paths[len(h.paths)-1]
}

func mustBeGone(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("temp file %s still exists", path)
	}
}

func newHarness(t *testing.T, loader *model.Loader, engine *transcriber.Fake, mutate func(*config.Config)) *harness {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	h := &harness{notif: &fakeNotifier{}, out: &output.Fake{}, engine: engine}
	record := func(path string) (recordProcess, error) {
		p := &fakeProc{}
		h.paths = append(h.paths, path)
		h.procs = append(h.procs, p)
		return p, nil
	}
	h.d = newDictation(context.Background(), cfg, loader, h.out, h.notif, record, cfg.Key)
	t.Cleanup(func() {
		for _, p := range h.paths {
			os.Remove(p)
		}
	})
	return h
}

func readyLoader(t *testing.T, engine transcriber.Engine) *model.Loader {
	t.Helper()
	l := model.NewLoader(func() (transcriber.Engine, error) { return engine, nil })
	l.Start()
	if _, err := l.Await(context.Background()); err != nil {
		t.Fatal(err)
	}
	return l
}

func failedLoader(t *testing.T) *model.Loader {
	t.Helper()
	l := model.NewLoader(func() (transcriber.Engine, error) {
		return nil, errors.New("model base.en not found")
	})
	l.Start()
	l.Await(context.Background())
	return l
}

func TestFullCycle(t *testing.T) {
	engine := &transcriber.Fake{Segments: []transcriber.Segment{
		{Text: "hello"}, {Text: " world "},
	}}
	h := newHarness(t, readyLoader(t, engine), engine, nil)

	h.down()
	path := h.lastPath(t)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("temp file should exist while recording: %v", err)
	}
	if h.d.state != stateRecording || h.d.session == nil {
		t.Fatal("controller should be recording after Down")
	}

	h.up()

	if calls := engine.Calls(); len(calls) != 1 || calls[0] != path {
		t.Errorf("engine calls = %v, want [%s]", calls, path)
	}
	if len(h.out.Clipboard) != 1 || h.out.Clipboard[0] != "hello world" {
		t.Errorf("clipboard = %v, want [hello world]", h.out.Clipboard)
	}
	if len(h.out.Typed) != 1 || h.out.Typed[0] != "hello world" {
		t.Errorf("typed = %v, want [hello world]", h.out.Typed)
	}
	if h.procs[0].stops != 1 {
		t.Errorf("capture stopped %d times, want 1", h.procs[0].stops)
	}
	for _, title := range []string{"Recording...", "Transcribing...", "Copied!"} {
		if !h.notif.sawTitle(title) {
			t.Errorf("missing %q notification; got %v", title, h.notif.titles)
		}
	}
	mustBeGone(t, path)
	if h.d.state != stateIdle || h.d.session != nil {
		t.Error("controller should be idle with no session after the cycle")
	}
}

func TestDownWhileRecordingIgnored(t *testing.T) {
	engine := &transcriber.Fake{}
	h := newHarness(t, readyLoader(t, engine), engine, nil)

	h.down()
	h.down()
	h.down()

	if len(h.paths) != 1 {
		t.Fatalf("%d recordings started, want 1 (at most one session)", len(h.paths))
	}
}

func TestUpWhileIdleIgnored(t *testing.T) {
	engine := &transcriber.Fake{}
	h := newHarness(t, readyLoader(t, engine), engine, nil)

	h.up()

	if len(h.notif.titles) != 0 {
		t.Errorf("unexpected notifications: %v", h.notif.titles)
	}
	if len(engine.Calls()) != 0 {
		t.Error("engine invoked without a recording")
	}
}

func TestFailedModelBlocksRecording(t *testing.T) {
	engine := &transcriber.Fake{}
	h := newHarness(t, failedLoader(t), engine, nil)

	h.down()

	if len(h.paths) != 0 {
		t.Fatal("recording started despite failed model")
	}
	if h.d.state != stateIdle {
		t.Error("controller left idle state")
	}
	if !h.notif.sawTitle("Error") {
		t.Error("expected an error notification")
	}
}

func TestUpBlocksUntilModelReady(t *testing.T) {
	engine := &transcriber.Fake{Segments: []transcriber.Segment{{Text: "late"}}}
	release := make(chan struct{})
	loader := model.NewLoader(func() (transcriber.Engine, error) {
		<-release
		return engine, nil
	})
	loader.Start()
	h := newHarness(t, loader, engine, nil)

	h.down()

	done := make(chan struct{})
	go func() {
		h.up()
		close(done)
	}()

	// The release edge must not transcribe before the model is ready.
	time.Sleep(50 * time.Millisecond)
	if len(engine.Calls()) != 0 {
		t.Fatal("transcription ran before the model finished loading")
	}

	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cycle did not complete after model became ready")
	}

	if len(engine.Calls()) != 1 {
		t.Fatalf("engine calls = %d, want 1", len(engine.Calls()))
	}
	if len(h.out.Clipboard) != 1 || h.out.Clipboard[0] != "late" {
		t.Errorf("clipboard = %v, want [late]", h.out.Clipboard)
	}
}

func TestNoSpeech(t *testing.T) {
	engine := &transcriber.Fake{Segments: []transcriber.Segment{{Text: "  "}, {Text: ""}}}
	h := newHarness(t, readyLoader(t, engine), engine, nil)

	h.down()
	path := h.lastPath(t)
	h.up()

	if len(h.out.Clipboard) != 0 || len(h.out.Typed) != 0 {
		t.Error("dispatcher must not run for an empty transcript")
	}
	if !h.notif.sawTitle("No speech detected") {
		t.Errorf("missing no-speech notification; got %v", h.notif.titles)
	}
	mustBeGone(t, path)
}

func TestTranscribeErrorRecovers(t *testing.T) {
	engine := &transcriber.Fake{Err: errors.New("decode blew up")}
	h := newHarness(t, readyLoader(t, engine), engine, nil)

	h.down()
	path := h.lastPath(t)
	h.up()

	if !h.notif.sawTitle("Error") {
		t.Error("expected an error notification")
	}
	mustBeGone(t, path)
	if h.d.state != stateIdle {
		t.Fatal("controller should return to idle after a transcription error")
	}

	// A new recording must start immediately.
	h.down()
	if len(h.paths) != 2 {
		t.Fatal("could not start a new recording after the error")
	}
}

func TestStopErrorSkipsTranscription(t *testing.T) {
	engine := &transcriber.Fake{Segments: []transcriber.Segment{{Text: "x"}}}
	h := newHarness(t, readyLoader(t, engine), engine, nil)

	h.down()
	path := h.lastPath(t)
	h.procs[0].err = errors.New("arecord did not exit after SIGKILL")
	h.up()

	if len(engine.Calls()) != 0 {
		t.Error("transcription ran on an incomplete recording")
	}
	if !h.notif.sawTitle("Error") {
		t.Error("expected an error notification")
	}
	mustBeGone(t, path)
}

func TestDispatchErrorNotified(t *testing.T) {
	engine := &transcriber.Fake{Segments: []transcriber.Segment{{Text: "hi"}}}
	h := newHarness(t, readyLoader(t, engine), engine, nil)
	h.out.ClipboardErr = errors.New("xclip: can't open display")

	h.down()
	h.up()

	if !h.notif.sawTitle("Error") {
		t.Error("clipboard failure should surface as an error notification")
	}
	if h.notif.sawTitle("Copied!") {
		t.Error("success notification fired despite dispatch failure")
	}
}

func TestAutoTypeDisabled(t *testing.T) {
	engine := &transcriber.Fake{Segments: []transcriber.Segment{{Text: "hi"}}}
	h := newHarness(t, readyLoader(t, engine), engine, func(c *config.Config) {
		c.AutoType = false
	})

	h.down()
	h.up()

	if len(h.out.Clipboard) != 1 {
		t.Error("clipboard should always be set")
	}
	if len(h.out.Typed) != 0 {
		t.Error("typing must not run with auto_type disabled")
	}
}

func TestShutdownReleasesSession(t *testing.T) {
	engine := &transcriber.Fake{}
	h := newHarness(t, readyLoader(t, engine), engine, nil)

	h.down()
	path := h.lastPath(t)
	h.d.Shutdown()

	if h.procs[0].stops != 1 {
		t.Errorf("capture stopped %d times, want 1", h.procs[0].stops)
	}
	mustBeGone(t, path)
	if h.d.state != stateIdle || h.d.session != nil {
		t.Error("controller should be idle after shutdown")
	}
}

func TestTruncate(t *testing.T) {
	for _, tt := range []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this one is too long", 7, "this on..."},
		{"héllo wörld", 5, "héllo..."},
	} {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}
