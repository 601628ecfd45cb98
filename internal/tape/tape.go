// Copyright (C) 2026 The jstream Authors. All Rights Reserved.

// Package tape implements a byte buffer that is written at the end and
// consumed from the front, the holding area between a caller pushing
// arbitrarily sized chunks and a parser draining them at its own
// granularity.
package tape

import "io"

// A Tape is a first-in, first-out byte buffer. The zero value is empty and
// ready to use. Reading consumes; writing appends. A Tape is not safe for
// concurrent use.
type Tape struct {
	buf []byte
	off int // read position within buf
}

// Write appends p to the tape. It implements io.Writer and never fails.
func (t *Tape) Write(p []byte) (int, error) {
	t.compact()
	t.buf = append(t.buf, p...)
	return len(p), nil
}

// WriteString appends s to the tape.
func (t *Tape) WriteString(s string) (int, error) {
	t.compact()
	t.buf = append(t.buf, s...)
	return len(s), nil
}

// Read consumes up to len(p) bytes from the front of the tape. It implements
// io.Reader and reports io.EOF when the tape is empty.
func (t *Tape) Read(p []byte) (int, error) {
	if t.off >= len(t.buf) {
		t.Reset()
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, t.buf[t.off:])
	t.off += n
	return n, nil
}

// Len reports the number of unread bytes on the tape.
func (t *Tape) Len() int { return len(t.buf) - t.off }

// String returns the unread bytes as a string without consuming them.
func (t *Tape) String() string { return string(t.buf[t.off:]) }

// Reset discards the tape's contents and releases its storage.
func (t *Tape) Reset() { t.buf, t.off = nil, 0 }

// compact drops consumed bytes once they dominate the backing array, so a
// long-lived tape does not grow without bound.
func (t *Tape) compact() {
	if t.off == 0 {
		return
	}
	if t.off >= len(t.buf) {
		t.buf = t.buf[:0]
		t.off = 0
		return
	}
	if t.off > len(t.buf)/2 {
		n := copy(t.buf, t.buf[t.off:])
		t.buf = t.buf[:n]
		t.off = 0
	}
}
