package transcriber

import "strings"

// Join flattens segments into the final transcript: each text is
// trimmed of surrounding whitespace, empties are dropped, and the
// rest are joined with single spaces in emission order. No segments,
// or only-whitespace segments, yield "" — the caller treats that as
// "no speech".
func Join(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}
