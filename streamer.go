// Copyright (C) 2026 The jstream Authors. All Rights Reserved.

package jstream

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/pushparse/jstream/internal/tape"
)

// DefaultBufferSize is the chunk size a Streamer uses to drain buffered
// input through its lexer when the caller does not choose one.
const DefaultBufferSize = 65536

// A Composite identifies which kind of container an event refers to.
type Composite byte

// Constants defining the container kinds.
const (
	Object Composite = iota
	Array
)

var compositeStr = [...]string{
	Object: "object",
	Array:  "array",
}

func (c Composite) String() string {
	if int(c) < len(compositeStr) {
		return compositeStr[c]
	}
	return fmt.Sprintf("composite(%d)", byte(c))
}

// A Handler receives the context-aware events generated by a Streamer.
//
// If a method of the handler reports an error, parsing stops and that error
// is returned to the caller of Consume.
type Handler interface {
	// DocStart is called once, before any other event.
	DocStart() error

	// DocEnd is called exactly once, when the streamer is closed.
	DocEnd() error

	// ObjectStart is called when an object opens.
	ObjectStart() error

	// ObjectEnd is called when an object closes.
	ObjectEnd() error

	// ArrayStart is called when an array opens.
	ArrayStart() error

	// ArrayEnd is called when an array closes.
	ArrayEnd() error

	// Key is called with each object member key, before the event for the
	// member's value.
	Key(key string) error

	// Value is called with each object member value. Composite member
	// values are delivered as ObjectStart or ArrayStart instead.
	Value(kind LiteralKind, value any) error

	// Element is called with each non-composite array element.
	Element(kind LiteralKind, value any) error
}

// A Streamer decodes JSON pushed to it in arbitrary chunks and delivers
// context-aware events to a Handler: container boundaries, object keys and
// values, and array elements. It wraps a Lexer and adds enforcement of
// nesting depth and string size limits.
//
// Events and errors depend only on the concatenation of the input pushed, not
// on how it was divided into chunks. Input is buffered internally, so a chunk
// may end anywhere, including mid-token.
type Streamer struct {
	h   Handler
	lx  *Lexer
	buf tape.Tape

	stack        []Composite // open containers, innermost last
	pendingValue bool        // an object key was seen, its value has not

	maxDepth      int
	maxStringSize int
	bufSize       int
	rbuf          []byte

	started bool
	closed  bool
}

// lexerSink adapts a Streamer to the TokenHandler interface of its inner
// Lexer. The lexer's document lifecycle is absorbed here; the streamer
// announces its own.
type lexerSink struct{ s *Streamer }

func (k lexerSink) BeginDocument() error { return nil }
func (k lexerSink) EndDocument() error   { return nil }
func (k lexerSink) BeginObject() error   { return k.s.beginComposite(Object) }
func (k lexerSink) EndObject() error     { return k.s.endComposite(Object) }
func (k lexerSink) BeginArray() error    { return k.s.beginComposite(Array) }
func (k lexerSink) EndArray() error      { return k.s.endComposite(Array) }

func (k lexerSink) Literal(kind LiteralKind, value any) error {
	return k.s.literal(kind, value)
}

// An Option configures a Streamer.
type Option func(*Streamer)

// WithMaxDepth limits how deeply containers may nest. Opening a container
// below n already-open containers reports an error wrapping ErrTooDeep.
// n <= 0 means no limit, which is also the default.
func WithMaxDepth(n int) Option {
	return func(s *Streamer) { s.maxDepth = n }
}

// WithMaxStringSize limits the length in characters of object keys and
// string values. A longer string reports an error wrapping ErrStringTooLong.
// n <= 0 means no limit, which is also the default.
func WithMaxStringSize(n int) Option {
	return func(s *Streamer) { s.maxStringSize = n }
}

// WithBufferSize sets the chunk size used to drain buffered input through
// the lexer. n <= 0 selects DefaultBufferSize.
func WithBufferSize(n int) Option {
	return func(s *Streamer) { s.bufSize = n }
}

// NewStreamer constructs a Streamer that delivers events to h.
// It will panic if h == nil.
func NewStreamer(h Handler, opts ...Option) *Streamer {
	if h == nil {
		panic("handler is nil")
	}
	s := &Streamer{h: h, bufSize: DefaultBufferSize}
	s.lx = NewLexer(lexerSink{s})
	for _, opt := range opts {
		opt(s)
	}
	if s.bufSize <= 0 {
		s.bufSize = DefaultBufferSize
	}
	return s
}

// Depth reports the number of containers currently open.
func (s *Streamer) Depth() int { return len(s.stack) }

// Offset reports the number of input bytes successfully consumed so far.
func (s *Streamer) Offset() int64 { return s.lx.Offset() }

// Consume pushes the next chunk of input to the streamer. The chunk may
// begin or end anywhere, including inside a token. If a handler method or
// the parse itself reports an error, Consume returns it and the streamer
// must not be used further except to call Close.
func (s *Streamer) Consume(data []byte) error {
	if err := s.begin(); err != nil {
		return err
	}
	s.buf.Write(data)
	return s.drain()
}

// ConsumeString pushes the next chunk of input as a string.
func (s *Streamer) ConsumeString(data string) error {
	if err := s.begin(); err != nil {
		return err
	}
	s.buf.WriteString(data)
	return s.drain()
}

// Write implements io.Writer, treating each write as a chunk of input.
func (s *Streamer) Write(data []byte) (int, error) {
	if err := s.Consume(data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// ReadFrom implements io.ReaderFrom, consuming r to io.EOF in chunks of the
// streamer's buffer size.
func (s *Streamer) ReadFrom(r io.Reader) (int64, error) {
	if s.rbuf == nil {
		s.rbuf = make([]byte, s.bufSize)
	}
	var total int64
	for {
		n, err := r.Read(s.rbuf)
		if n > 0 {
			total += int64(n)
			if cerr := s.Consume(s.rbuf[:n]); cerr != nil {
				return total, cerr
			}
		}
		if err == io.EOF {
			return total, nil
		} else if err != nil {
			return total, err
		}
	}
}

// Close marks the end of input and delivers the DocEnd event. Closing a
// streamer that was never fed input still delivers DocStart and DocEnd.
// After Close, pushing more input reports an error wrapping ErrClosed.
// Close is idempotent: calls after the first report nil without effect.
func (s *Streamer) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var err error
	if !s.started {
		s.started = true
		err = s.h.DocStart()
	}
	if derr := s.h.DocEnd(); err == nil {
		err = derr
	}
	s.lx.Close() // release lexer state; errors there no longer matter
	s.buf.Reset()
	s.stack = nil
	s.rbuf = nil
	return err
}

// begin readies the streamer for a chunk, announcing DocStart ahead of the
// first one.
func (s *Streamer) begin() error {
	if s.closed {
		return fmt.Errorf("%w: input after Close", ErrClosed)
	}
	if !s.started {
		s.started = true
		return s.h.DocStart()
	}
	return nil
}

// drain runs buffered input through the lexer in bufSize chunks.
func (s *Streamer) drain() error {
	if s.rbuf == nil {
		s.rbuf = make([]byte, s.bufSize)
	}
	for s.buf.Len() > 0 {
		n, err := s.buf.Read(s.rbuf)
		if err != nil {
			break
		}
		if err := s.lx.Consume(s.rbuf[:n]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Streamer) beginComposite(c Composite) error {
	if s.maxDepth > 0 && len(s.stack) >= s.maxDepth {
		return fmt.Errorf("%w: %s at depth %d, limit %d",
			ErrTooDeep, c, len(s.stack)+1, s.maxDepth)
	}
	s.stack = append(s.stack, c)
	s.pendingValue = false
	if c == Object {
		return s.h.ObjectStart()
	}
	return s.h.ArrayStart()
}

func (s *Streamer) endComposite(c Composite) error {
	n := len(s.stack)
	if n == 0 || s.stack[n-1] != c {
		return s.closeMismatch(c)
	}
	s.stack = s.stack[:n-1]
	s.pendingValue = false
	if c == Object {
		return s.h.ObjectEnd()
	}
	return s.h.ArrayEnd()
}

func (s *Streamer) closeMismatch(c Composite) error {
	open := "no container"
	if n := len(s.stack); n > 0 {
		open = "an " + s.stack[n-1].String()
	}
	return &SyntaxError{
		Offset:   s.lx.Offset(),
		Location: s.lx.Location(),
		Message:  fmt.Sprintf("close of %s while %s is open", c, open),
	}
}

func (s *Streamer) literal(kind LiteralKind, value any) error {
	n := len(s.stack)
	if n > 0 && s.stack[n-1] == Object && !s.pendingValue {
		if kind != String {
			return &SyntaxError{
				Offset:   s.lx.Offset(),
				Location: s.lx.Location(),
				Message:  fmt.Sprintf("object key must be a string, got %s", kind),
			}
		}
		key := value.(string)
		if err := s.checkStringSize(key); err != nil {
			return err
		}
		s.pendingValue = true
		return s.h.Key(key)
	}
	if kind == String {
		if err := s.checkStringSize(value.(string)); err != nil {
			return err
		}
	}
	if s.pendingValue {
		s.pendingValue = false
		return s.h.Value(kind, value)
	}
	if n > 0 && s.stack[n-1] == Array {
		return s.h.Element(kind, value)
	}
	return &SyntaxError{
		Offset:   s.lx.Offset(),
		Location: s.lx.Location(),
		Message:  fmt.Sprintf("%s literal outside any container", kind),
	}
}

func (s *Streamer) checkStringSize(v string) error {
	if s.maxStringSize <= 0 {
		return nil
	}
	if n := utf8.RuneCountInString(v); n > s.maxStringSize {
		return fmt.Errorf("%w: %d characters, limit %d",
			ErrStringTooLong, n, s.maxStringSize)
	}
	return nil
}
