package hotkey

import (
	"strings"

	"github.com/Robonectics/soupawhisper/log"
)

// DefaultKey is used when the configured key name is not recognized.
const DefaultKey = "f12"

// Key codes from linux/input-event-codes.h. Names follow the KEY_*
// constants with the prefix dropped, lowercased.
var keymap = map[string]uint16{
	"esc":        1,
	"1":          2,
	"2":          3,
	"3":          4,
	"4":          5,
	"5":          6,
	"6":          7,
	"7":          8,
	"8":          9,
	"9":          10,
	"0":          11,
	"minus":      12,
	"equal":      13,
	"backspace":  14,
	"tab":        15,
	"q":          16,
	"w":          17,
	"e":          18,
	"r":          19,
	"t":          20,
	"y":          21,
	"u":          22,
	"i":          23,
	"o":          24,
	"p":          25,
	"enter":      28,
	"leftctrl":   29,
	"a":          30,
	"s":          31,
	"d":          32,
	"f":          33,
	"g":          34,
	"h":          35,
	"j":          36,
	"k":          37,
	"l":          38,
	"grave":      41,
	"leftshift":  42,
	"z":          44,
	"x":          45,
	"c":          46,
	"v":          47,
	"b":          48,
	"n":          49,
	"m":          50,
	"rightshift": 54,
	"leftalt":    56,
	"space":      57,
	"capslock":   58,
	"f1":         59,
	"f2":         60,
	"f3":         61,
	"f4":         62,
	"f5":         63,
	"f6":         64,
	"f7":         65,
	"f8":         66,
	"f9":         67,
	"f10":        68,
	"numlock":    69,
	"scrolllock": 70,
	"f11":        87,
	"f12":        88,
	"rightctrl":  97,
	"rightalt":   100,
	"home":       102,
	"up":         103,
	"pageup":     104,
	"left":       105,
	"right":      106,
	"end":        107,
	"down":       108,
	"pagedown":   109,
	"insert":     110,
	"delete":     111,
	"pause":      119,
	"leftmeta":   125,
	"rightmeta":  126,
	"menu":       127,
	"f13":        183,
	"f14":        184,
	"f15":        185,
	"f16":        186,
	"f17":        187,
	"f18":        188,
	"f19":        189,
	"f20":        190,
	"f21":        191,
	"f22":        192,
	"f23":        193,
	"f24":        194,
}

// KeyA is used by the keyboard heuristic: a device that cannot emit
// the letter A is not a keyboard.
const KeyA uint16 = 30

// Lookup maps a key name (case-insensitive) to its input event code.
func Lookup(name string) (uint16, bool) {
	code, ok := keymap[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// Resolve maps a configured key name to its code. An unknown name
// falls back to DefaultKey with a diagnostic; the returned name is
// the one actually in effect.
func Resolve(name string) (uint16, string) {
	if code, ok := Lookup(name); ok {
		return code, name
	}
	log.Warnf("unknown key %q, defaulting to %s", name, DefaultKey)
	code, _ := Lookup(DefaultKey)
	return code, DefaultKey
}
