package mnd

import (
	"unicode/utf8"
	"unsafe"
)

// GoString copies the NUL-terminated string at p into Go memory.
// A null pointer or invalid UTF-8 yields ErrorInvalidValue.
func GoString(p *byte) (string, error) {
	if p == nil {
		return "", ErrorInvalidValue
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	s := string(unsafe.Slice(p, n))
	if !utf8.ValidString(s) {
		return "", ErrorInvalidValue
	}
	return s, nil
}
