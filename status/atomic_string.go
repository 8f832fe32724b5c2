package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen is the byte limit of a stored string
const MaxStringLen = 48

// AtomicString holds a short string readable from any goroutine
// Zero value reads ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, cut to MaxStringLen bytes on a rune boundary
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		cut := MaxStringLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	s.ptr.Store(&val)
}

// Load returns the current value
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
