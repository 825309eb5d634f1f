//go:build linux

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Robonectics/soupawhisper/config"
	"github.com/Robonectics/soupawhisper/doctor"
	"github.com/Robonectics/soupawhisper/hotkey"
	"github.com/Robonectics/soupawhisper/log"
	"github.com/Robonectics/soupawhisper/model"
	"github.com/Robonectics/soupawhisper/notify"
	"github.com/Robonectics/soupawhisper/output"
	"github.com/Robonectics/soupawhisper/recorder"
	"github.com/Robonectics/soupawhisper/transcriber"
)

var version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	versionFlag := flag.Bool("version", false, "Print version and exit")
	configFlag := flag.String("config", "", "Config file path (default: ~/.config/soupawhisper/config.ini)")
	doctorFlag := flag.Bool("doctor", false, "Check external dependencies and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("SoupaWhisper %s\n", version)
		return 0
	}

	cfgPath := *configFlag
	if cfgPath == "" {
		cfgPath = config.Path()
	}
	cfg := config.Load(cfgPath)

	family := detectSession()
	dispatcher := output.ForSession(family)

	if *doctorFlag {
		return doctor.Run(family, dispatcher, cfg.AutoType)
	}

	fmt.Printf("SoupaWhisper v%s\n", version)
	fmt.Printf("Session: %s\n", family)
	fmt.Printf("Config: %s\n", cfgPath)

	if missing := doctor.Missing(dispatcher, cfg.AutoType); len(missing) > 0 {
		fmt.Fprintf(os.Stderr, "Missing dependencies (session: %s):\n", family)
		for _, dep := range missing {
			fmt.Fprintf(os.Stderr, "  %s - install with: sudo apt install %s\n", dep.Command, dep.Package)
		}
		return 1
	}

	code, keyName := hotkey.Resolve(cfg.Key)

	listener, err := hotkey.NewListener(code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Check /dev/input permissions (need 'input' group).")
		return 1
	}
	fmt.Printf("Listening on: %s\n", strings.Join(listener.DeviceNames(), ", "))

	var notif *notify.Notifier
	if cfg.Notify {
		notif = notify.New()
		defer notif.Close()
	}

	fmt.Printf("Loading Whisper model (%s)...\n", cfg.Model)
	loader := model.NewLoader(func() (transcriber.Engine, error) {
		engine, err := transcriber.NewWhisperCpp(transcriber.Options{
			Model:       cfg.Model,
			Device:      cfg.Device,
			ComputeType: cfg.ComputeType,
		})
		if err != nil {
			return nil, err
		}
		fmt.Println("Model loaded. Ready for dictation!")
		fmt.Printf("Hold [%s] to record, release to transcribe.\n", strings.ToUpper(keyName))
		fmt.Println("Press Ctrl+C to quit.")
		return engine, nil
	})
	loader.Start()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	record := func(path string) (recordProcess, error) {
		return recorder.Start(path)
	}
	ctrl := newDictation(ctx, cfg, loader, dispatcher, notif, record, keyName)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nExiting...")
		cancel()
		listener.Stop()
	}()

	if err := listener.Run(ctrl.HandleEdge); err != nil {
		log.Errorf("input loop: %v", err)
		ctrl.Shutdown()
		return 1
	}
	ctrl.Shutdown()
	return 0
}
