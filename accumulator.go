// Copyright (C) 2026 The jstream Authors. All Rights Reserved.

package jstream

import "bytes"

// A textAccumulator gathers the text of the string or bare literal the lexer
// is currently reading. Escape sequences are preserved verbatim: a backslash
// and whatever byte follows it are buffered as-is, never decoded. Decoding is
// a separate concern (see Unquote).
//
// The verbatim flag is owned by the lexer and is true while the machine is
// inside a quoted string, where commas, colons, braces, brackets and
// whitespace are ordinary text. Outside a string only Char bytes accumulate.
type textAccumulator struct {
	buf      bytes.Buffer
	escaping bool // a bare backslash is pending
	verbatim bool // inside a quoted string
}

// feed observes one classified byte.
func (a *textAccumulator) feed(tok Token, c byte) {
	switch {
	case tok == Backslash:
		if a.escaping {
			// A doubled backslash resolves immediately.
			a.buf.WriteString(`\\`)
			a.escaping = false
		} else {
			a.escaping = true
		}
	case a.escaping:
		a.buf.WriteByte('\\')
		a.buf.WriteByte(c)
		a.escaping = false
	case tok == Char || (a.verbatim && tok != DQuote):
		a.buf.WriteByte(c)
	}
}

// pop returns the accumulated text and resets the accumulator.
func (a *textAccumulator) pop() string {
	s := a.buf.String()
	a.buf.Reset()
	a.escaping = false
	return s
}

func (a *textAccumulator) release() { a.buf = bytes.Buffer{} }
