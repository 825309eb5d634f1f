//go:build !linux

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "soupawhisper requires Linux (evdev keyboard access)")
	os.Exit(1)
}
