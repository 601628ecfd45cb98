// Copyright (C) 2026 The jstream Authors. All Rights Reserved.

package jstream

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by a Streamer. Limit violations are delivered
// wrapped with detail, so test with errors.Is.
var (
	// ErrTooDeep means opening one more container would exceed the depth
	// limit configured with WithMaxDepth.
	ErrTooDeep = errors.New("maximum nesting depth exceeded")

	// ErrStringTooLong means an object key or string value is longer than
	// the limit configured with WithMaxStringSize.
	ErrStringTooLong = errors.New("maximum string size exceeded")

	// ErrClosed is reported by Consume after Close.
	ErrClosed = errors.New("parser is closed")
)

// A SyntaxError reports input rejected by the JSON grammar: a byte that
// arrived in a machine state with no valid transition, an input that ended
// mid-document, or a closer that does not match the open container. The
// message names the machine state and the offending input.
type SyntaxError struct {
	Offset   int64   // byte offset of the offending input, 0-based
	Location LineCol // line and column of the offending input
	Message  string
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at offset %d: %s", e.Offset, e.Message)
}

// A LiteralError reports a bare literal that is not a valid number,
// boolean or null, for example "tru" or "12.5.7".
type LiteralError struct {
	Offset   int64   // byte offset of the input that terminated the literal
	Location LineCol // line and column of that input
	Text     string
}

// Error satisfies the error interface.
func (e *LiteralError) Error() string {
	return fmt.Sprintf("at offset %d: invalid literal %q", e.Offset, e.Text)
}
