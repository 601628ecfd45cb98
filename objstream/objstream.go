// Copyright (C) 2026 The jstream Authors. All Rights Reserved.

// Package objstream reconstructs the top-level members of a JSON document
// from parse events, delivering each completed member as a whole.
//
// Where the jstream package reports every boundary and literal as it is
// read, an objstream.Streamer assembles nested containers into Go values
// (map[string]any, []any) and reports only members of the root container:
// each key-value pair of a root object, or each element of a root array.
// Only one top-level member is held in memory at a time, so a large
// document can be processed without materializing all of it.
package objstream

import (
	"io"

	"github.com/pushparse/jstream"
)

// A Handler receives the top-level members of a document as they complete.
//
// If a method of the handler reports an error, parsing stops and that error
// is returned to the caller of Consume.
type Handler interface {
	// ObjectStreamStart is called when the root container is an object.
	ObjectStreamStart() error

	// ObjectStreamEnd is called when the root object closes.
	ObjectStreamEnd() error

	// ArrayStreamStart is called when the root container is an array.
	ArrayStreamStart() error

	// ArrayStreamEnd is called when the root array closes.
	ArrayStreamEnd() error

	// Pair is called with each completed key-value pair of the root
	// object. Composite values arrive fully built, as map[string]any or
	// []any.
	Pair(key string, value any) error

	// Element is called with each completed element of the root array.
	// Composite elements arrive fully built, as map[string]any or []any.
	Element(value any) error
}

// A Streamer decodes JSON pushed to it in arbitrary chunks and delivers the
// document's top-level members to a Handler. It wraps a jstream.Streamer
// and shares its chunking behavior and limit options.
type Streamer struct {
	h Handler
	s *jstream.Streamer

	hasRoot bool
	stack   []any    // containers under construction, innermost last
	keys    []string // keys awaiting a value, innermost last
}

// NewStreamer constructs a Streamer that delivers events to h. Options are
// those accepted by jstream.NewStreamer.
// It will panic if h == nil.
func NewStreamer(h Handler, opts ...jstream.Option) *Streamer {
	if h == nil {
		panic("handler is nil")
	}
	s := &Streamer{h: h}
	s.s = jstream.NewStreamer(sink{s}, opts...)
	return s
}

// Consume pushes the next chunk of input to the streamer. The chunk may
// begin or end anywhere, including inside a token.
func (s *Streamer) Consume(data []byte) error { return s.s.Consume(data) }

// ConsumeString pushes the next chunk of input as a string.
func (s *Streamer) ConsumeString(data string) error { return s.s.ConsumeString(data) }

// Write implements io.Writer, treating each write as a chunk of input.
func (s *Streamer) Write(data []byte) (int, error) { return s.s.Write(data) }

// ReadFrom implements io.ReaderFrom, consuming r to io.EOF.
func (s *Streamer) ReadFrom(r io.Reader) (int64, error) { return s.s.ReadFrom(r) }

// Close marks the end of input. A member still under construction when the
// streamer closes is discarded. Close is idempotent.
func (s *Streamer) Close() error { return s.s.Close() }

// Offset reports the number of input bytes successfully consumed so far.
func (s *Streamer) Offset() int64 { return s.s.Offset() }

// sink adapts a Streamer to the jstream.Handler interface, rebuilding
// containers below the root and forwarding completed members.
type sink struct{ s *Streamer }

func (k sink) DocStart() error {
	k.s.hasRoot = false
	k.s.stack, k.s.keys = nil, nil
	return nil
}

func (k sink) DocEnd() error {
	k.s.stack, k.s.keys = nil, nil
	return nil
}

func (k sink) ObjectStart() error {
	if !k.s.hasRoot {
		k.s.hasRoot = true
		return k.s.h.ObjectStreamStart()
	}
	k.s.stack = append(k.s.stack, map[string]any{})
	return nil
}

func (k sink) ObjectEnd() error {
	if len(k.s.stack) > 0 {
		return k.s.attach()
	}
	return k.s.h.ObjectStreamEnd()
}

func (k sink) ArrayStart() error {
	if !k.s.hasRoot {
		k.s.hasRoot = true
		return k.s.h.ArrayStreamStart()
	}
	k.s.stack = append(k.s.stack, []any{})
	return nil
}

func (k sink) ArrayEnd() error {
	if len(k.s.stack) > 0 {
		return k.s.attach()
	}
	return k.s.h.ArrayStreamEnd()
}

func (k sink) Key(key string) error {
	k.s.keys = append(k.s.keys, key)
	return nil
}

func (k sink) Value(kind jstream.LiteralKind, value any) error {
	key := k.s.popKey()
	if len(k.s.stack) == 0 {
		return k.s.h.Pair(key, value)
	}
	k.s.top().(map[string]any)[key] = value
	return nil
}

func (k sink) Element(kind jstream.LiteralKind, value any) error {
	if len(k.s.stack) == 0 {
		return k.s.h.Element(value)
	}
	k.s.appendTop(value)
	return nil
}

// attach pops the container that just closed and delivers it: to the
// handler if it completes a top-level member, otherwise into its parent.
// A pending key decides whether the parent takes it as a member value or
// an array element.
func (s *Streamer) attach() error {
	n := len(s.stack)
	v := s.stack[n-1]
	s.stack = s.stack[:n-1]

	if len(s.keys) == 0 {
		if len(s.stack) == 0 {
			return s.h.Element(v)
		}
		s.appendTop(v)
		return nil
	}
	if len(s.stack) == 0 {
		return s.h.Pair(s.popKey(), v)
	}
	if top, ok := s.top().([]any); ok {
		s.stack[len(s.stack)-1] = append(top, v)
	} else {
		s.top().(map[string]any)[s.popKey()] = v
	}
	return nil
}

func (s *Streamer) top() any { return s.stack[len(s.stack)-1] }

func (s *Streamer) appendTop(v any) {
	top := s.top().([]any)
	s.stack[len(s.stack)-1] = append(top, v)
}

func (s *Streamer) popKey() string {
	n := len(s.keys)
	key := s.keys[n-1]
	s.keys = s.keys[:n-1]
	return key
}
