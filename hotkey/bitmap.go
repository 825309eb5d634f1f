package hotkey

import (
	"strconv"
	"strings"
)

// hasKeyBit reports whether a key code is set in a capability bitmap
// as read from /sys/class/input/<event>/device/capabilities/key.
//
// The bitmap is a space-separated list of hex words, most significant
// first; each word holds 64 bits on 64-bit kernels.
func hasKeyBit(bitmap string, code uint16) bool {
	words := strings.Fields(strings.TrimSpace(bitmap))
	if len(words) == 0 {
		return false
	}
	// words[len-1] covers bits 0..63, words[len-2] bits 64..127, ...
	idx := len(words) - 1 - int(code)/64
	if idx < 0 {
		return false
	}
	w, err := strconv.ParseUint(words[idx], 16, 64)
	if err != nil {
		return false
	}
	return w&(1<<(uint(code)%64)) != 0
}
