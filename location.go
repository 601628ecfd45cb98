// Copyright (C) 2026 The jstream Authors. All Rights Reserved.

package jstream

import "fmt"

// A LineCol describes the line number and column offset of a byte in the
// input text. Lines are separated by newlines; a carriage return does not
// begin a new line.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// advance moves the location past c.
func (lc LineCol) advance(c byte) LineCol {
	if c == '\n' {
		return LineCol{Line: lc.Line + 1}
	}
	lc.Column++
	return lc
}
