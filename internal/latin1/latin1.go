// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package latin1 converts between Go strings and the Latin-1 (ISO-8859-1)
// byte encoding LysKOM traditionally uses for Hollerith payloads.
package latin1

import (
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

// Encode converts s to its Latin-1 byte encoding. It reports an error if s
// contains a rune outside the Latin-1 repertoire (U+0000 through U+00FF),
// since such a rune cannot be represented on the wire.
func Encode(s string) ([]byte, error) {
	src := mem.S(s)
	if isASCII(src) {
		return mem.Append(nil, src), nil
	}
	out := make([]byte, 0, src.Len())
	for i := 0; i < src.Len(); {
		r, n := mem.DecodeRune(src.SliceFrom(i))
		if n == 0 {
			return nil, fmt.Errorf("latin1: invalid UTF-8 at byte %d", i)
		}
		if r > 0xFF {
			return nil, fmt.Errorf("latin1: rune %U at byte %d is outside Latin-1", r, i)
		}
		out = append(out, byte(r))
		i += n
	}
	return out, nil
}

// Decode converts Latin-1 bytes to a Go string. The input is never mutated
// and the result shares no memory with it, since every non-ASCII byte must
// be expanded to a multi-byte UTF-8 sequence.
func Decode(b []byte) string {
	allASCII := true
	for _, c := range b {
		if c >= utf8.RuneSelf {
			allASCII = false
			break
		}
	}
	if allASCII {
		return string(b)
	}
	out := make([]byte, 0, len(b)+len(b)/4)
	for _, c := range b {
		if c < utf8.RuneSelf {
			out = append(out, c)
			continue
		}
		var buf [2]byte
		n := utf8.EncodeRune(buf[:], rune(c))
		out = append(out, buf[:n]...)
	}
	return string(out)
}

func isASCII(src mem.RO) bool {
	for i := 0; i < src.Len(); i++ {
		if src.At(i) >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
