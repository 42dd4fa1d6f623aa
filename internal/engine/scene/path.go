package scene

import "unicode/utf8"

// MaxPathBytes is the longest model path the panel accepts.
const MaxPathBytes = 127

// PathBuffer is the panel's editable model path, capped at MaxPathBytes.
type PathBuffer struct {
	s string
}

// NewPathBuffer returns a buffer holding s, truncated if needed.
func NewPathBuffer(s string) PathBuffer {
	var p PathBuffer
	p.Set(s)
	return p
}

// Set replaces the contents. Input longer than MaxPathBytes is cut at the
// last whole rune that fits. Reports whether truncation happened.
func (p *PathBuffer) Set(s string) bool {
	if len(s) <= MaxPathBytes {
		p.s = s
		return false
	}
	cut := MaxPathBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	p.s = s[:cut]
	return true
}

func (p PathBuffer) String() string { return p.s }

// Len returns the length in bytes.
func (p PathBuffer) Len() int { return len(p.s) }
