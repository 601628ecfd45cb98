// Copyright (C) 2026 The jstream Authors. All Rights Reserved.

// Package escape implements the escape conventions of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes the JSON encoding of a string. The input must have the
// enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents, and
// paired "\u" surrogate escapes are combined. Invalid escapes and unpaired
// surrogates are replaced by the Unicode replacement rune. Unquote reports
// an error only for an escape sequence truncated by the end of input.
func Unquote(src mem.RO) ([]byte, error) {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(nil, src), nil
	}

	dec := make([]byte, 0, src.Len())
	putRune := func(r rune) { dec = utf8.AppendRune(dec, r) }
	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))

		// Decode the rune after the backslash to see what to substitute.
		// A decoding error here inserts a replacement rune rather than
		// failing, since the rest of the input may still be usable.
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n++
		}

		src = src.SliceFrom(n)
		switch r {
		case '"', '\\', '/':
			dec = append(dec, byte(r))
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			if src.Len() < 4 {
				return nil, errors.New("incomplete Unicode escape")
			}
			v, err := parseHex(src.SliceTo(4))
			src = src.SliceFrom(4)
			if err != nil {
				putRune(utf8.RuneError)
				break
			}
			if r := rune(v); !utf16.IsSurrogate(r) {
				putRune(r)
			} else if c, rest, ok := combineSurrogate(r, src); ok {
				putRune(c)
				src = rest
			} else {
				putRune(utf8.RuneError) // unpaired surrogate
			}
		default:
			putRune(utf8.RuneError)
		}

		// Find the next escape sequence; if there is none the rest of the
		// input can be blitted through unchanged.
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec, nil
}

// combineSurrogate reports whether src begins with a "\u" escape that forms
// a valid surrogate pair with r. If so, it returns the combined rune and the
// remainder of src after the escape. Otherwise src is returned unconsumed, so
// the escape (if any) is decoded on its own.
func combineSurrogate(r rune, src mem.RO) (rune, mem.RO, bool) {
	if src.Len() < 6 || src.At(0) != '\\' || src.At(1) != 'u' {
		return 0, src, false
	}
	v, err := parseHex(src.SliceFrom(2).SliceTo(4))
	if err != nil {
		return 0, src, false
	}
	c := utf16.DecodeRune(r, rune(v))
	if c == utf8.RuneError {
		return 0, src, false
	}
	return c, src.SliceFrom(6), true
}

func parseHex(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
