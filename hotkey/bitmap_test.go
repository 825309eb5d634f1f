package hotkey

import (
	"fmt"
	"strings"
	"testing"
)

// bitmapFor builds a sysfs-style capability string with the given key
// codes set.
func bitmapFor(codes ...uint16) string {
	max := uint16(0)
	for _, c := range codes {
		if c > max {
			max = c
		}
	}
	words := make([]uint64, int(max)/64+1)
	for _, c := range codes {
		words[int(c)/64] |= 1 << (uint(c) % 64)
	}
	parts := make([]string, len(words))
	for i, w := range words {
		// most significant word first, as the kernel prints it
		parts[len(words)-1-i] = fmt.Sprintf("%x", w)
	}
	return strings.Join(parts, " ")
}

func TestHasKeyBit(t *testing.T) {
	bm := bitmapFor(KeyA, 88, 190)

	for _, code := range []uint16{KeyA, 88, 190} {
		if !hasKeyBit(bm, code) {
			t.Errorf("hasKeyBit(%d) = false, want true", code)
		}
	}
	for _, code := range []uint16{0, 1, 57, 87, 89, 191} {
		if hasKeyBit(bm, code) {
			t.Errorf("hasKeyBit(%d) = true, want false", code)
		}
	}
}

func TestHasKeyBitRealKeyboard(t *testing.T) {
	// Capability line captured from an AT keyboard: low words cover the
	// full main block, so both KEY_A (30) and KEY_F12 (88) are present.
	bm := "1000000000007 ff9f207ac14057ff febeffdfffefffff fffffffffffffffe"
	if !hasKeyBit(bm, KeyA) {
		t.Error("expected KEY_A on a real keyboard bitmap")
	}
	if !hasKeyBit(bm, 88) {
		t.Error("expected KEY_F12 on a real keyboard bitmap")
	}
}

func TestHasKeyBitPowerButton(t *testing.T) {
	// A power button exposes only KEY_POWER (116).
	bm := bitmapFor(116)
	if hasKeyBit(bm, KeyA) {
		t.Error("power button should not report KEY_A")
	}
	if !hasKeyBit(bm, 116) {
		t.Error("power button should report KEY_POWER")
	}
}

func TestHasKeyBitGarbage(t *testing.T) {
	for _, bm := range []string{"", "   ", "zzzz", "10 nothex"} {
		if hasKeyBit(bm, KeyA) {
			t.Errorf("hasKeyBit(%q, KEY_A) = true, want false", bm)
		}
	}
}

func TestHasKeyBitShortBitmap(t *testing.T) {
	// Bitmap with a single word cannot contain codes >= 64.
	bm := bitmapFor(KeyA)
	if hasKeyBit(bm, 88) {
		t.Error("code beyond bitmap width should be absent")
	}
}
