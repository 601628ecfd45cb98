// Copyright (C) 2026 The jstream Authors. All Rights Reserved.

package jstream

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// LiteralKind identifies the type of a complete literal value.
type LiteralKind uint8

const (
	String  LiteralKind = iota // a quoted string, escapes preserved verbatim
	Number                     // int64 or float64
	Boolean                    // true or false
	Null                       // null
)

var literalStr = [...]string{
	String:  "string",
	Number:  "number",
	Boolean: "boolean",
	Null:    "null",
}

func (k LiteralKind) String() string {
	if int(k) >= len(literalStr) {
		return fmt.Sprintf("literal(%d)", uint8(k))
	}
	return literalStr[k]
}

// A TokenHandler receives lexical events from a Lexer. If a method reports
// an error, lexing stops and that error is returned from Consume.
type TokenHandler interface {
	// BeginDocument reports the start of a document, before its first
	// structural event. A Lexer that consumes several whitespace-separated
	// documents from one stream reports it once per document.
	BeginDocument() error

	// EndDocument reports that the document's root container was closed.
	EndDocument() error

	// BeginObject reports an opening brace.
	BeginObject() error

	// EndObject reports a closing brace.
	EndObject() error

	// BeginArray reports an opening bracket.
	BeginArray() error

	// EndArray reports a closing bracket.
	EndArray() error

	// Literal reports one complete literal. String values keep their escape
	// sequences verbatim (see Unquote). Number values are int64 when the
	// text has no fraction or exponent, float64 otherwise. Boolean values
	// are bool, and Null delivers nil.
	Literal(kind LiteralKind, value any) error
}

// lexState enumerates the machine states. State names appear in error
// messages, so they keep their historical snake_case spellings.
type lexState uint8

const (
	stateNew lexState = iota
	stateDocStart
	stateDocEnd
	stateObjectStart
	stateObjectEnd
	stateArrayStart
	stateArrayEnd
	stateStringStart
	stateStringEnd
	stateStringEscaping
	stateLiteral
	stateMore

	numStates = int(iota)
)

var stateStr = [numStates]string{
	stateNew:            "new",
	stateDocStart:       "doc_start",
	stateDocEnd:         "doc_end",
	stateObjectStart:    "object_start",
	stateObjectEnd:      "object_end",
	stateArrayStart:     "array_start",
	stateArrayEnd:       "array_end",
	stateStringStart:    "string_start",
	stateStringEnd:      "string_end",
	stateStringEscaping: "string_escaping",
	stateLiteral:        "literal",
	stateMore:           "more",
}

func (s lexState) String() string { return stateStr[s] }

// A lexInput is either one of the byte token classes or a control signal.
type lexInput uint8

const (
	inStart   = lexInput(numTokens) // first byte of a document seen
	inEnd     = inStart + 1         // end of input forced by Close
	inReset   = inStart + 2         // finished document, rearm
	numInputs = int(inReset) + 1
)

// A rule is one cell of the transition table.
type rule struct {
	action action
	next   lexState
}

type action uint8

const (
	fault  action = iota // no transition: grammar error
	shift                // move to next and run entry effects
	loop                 // stay, re-running entry effects
	ignore               // consume the input silently
)

func to(s lexState) rule { return rule{shift, s} }

var (
	skip = rule{action: ignore}
	stay = rule{action: loop}
)

// transitions is the machine: state x input -> rule. Cells left unset are
// faults. The array type makes the table total by construction; see the
// init check below for the structural assertions.
//
// The machine states describe local brace and bracket moves only. True
// nesting is the Streamer's business: directly nested openers and closers
// self-loop here ("[[", "]]", "}}") and each loop re-emits its event.
var transitions = [numStates][numInputs]rule{
	stateNew: {
		inStart:              to(stateDocStart),
		inEnd:                to(stateDocEnd),
		lexInput(Whitespace): skip,
		lexInput(Newline):    skip,
	},
	stateDocStart: {
		lexInput(LBrace):     to(stateObjectStart),
		lexInput(LSquare):    to(stateArrayStart),
		lexInput(Whitespace): skip,
		lexInput(Newline):    skip,
	},
	stateDocEnd: {
		inReset: to(stateNew),
	},
	stateObjectStart: {
		lexInput(LBrace):     stay,
		lexInput(RBrace):     to(stateObjectEnd),
		lexInput(DQuote):     to(stateStringStart),
		lexInput(Whitespace): skip,
		lexInput(Newline):    skip,
	},
	stateObjectEnd: {
		inEnd:                to(stateDocEnd),
		lexInput(LBrace):     stay,
		lexInput(RBrace):     stay,
		lexInput(RSquare):    to(stateArrayEnd),
		lexInput(Comma):      to(stateMore),
		lexInput(Whitespace): skip,
		lexInput(Newline):    skip,
	},
	stateArrayStart: {
		lexInput(LBrace):     to(stateObjectStart),
		lexInput(LSquare):    stay,
		lexInput(RSquare):    to(stateArrayEnd),
		lexInput(Char):       to(stateLiteral),
		lexInput(DQuote):     to(stateStringStart),
		lexInput(Whitespace): skip,
		lexInput(Newline):    skip,
	},
	stateArrayEnd: {
		inEnd:                to(stateDocEnd),
		lexInput(Comma):      to(stateMore),
		lexInput(RBrace):     to(stateObjectEnd),
		lexInput(RSquare):    stay,
		lexInput(Whitespace): skip,
		lexInput(Newline):    skip,
	},
	// Inside a string every byte is text except an unescaped quote, which
	// closes it, and a backslash, which starts an escape.
	stateStringStart: {
		lexInput(Char):       stay,
		lexInput(LBrace):     stay,
		lexInput(RBrace):     stay,
		lexInput(LSquare):    stay,
		lexInput(RSquare):    stay,
		lexInput(Comma):      stay,
		lexInput(Colon):      stay,
		lexInput(Whitespace): stay,
		lexInput(Newline):    stay,
		lexInput(DQuote):     to(stateStringEnd),
		lexInput(Backslash):  to(stateStringEscaping),
	},
	// The escaped byte is consumed as string text no matter its class; it
	// is never reinterpreted as structure.
	stateStringEscaping: {
		lexInput(Char):       to(stateStringStart),
		lexInput(LBrace):     to(stateStringStart),
		lexInput(RBrace):     to(stateStringStart),
		lexInput(LSquare):    to(stateStringStart),
		lexInput(RSquare):    to(stateStringStart),
		lexInput(Comma):      to(stateStringStart),
		lexInput(Colon):      to(stateStringStart),
		lexInput(Whitespace): to(stateStringStart),
		lexInput(Newline):    to(stateStringStart),
		lexInput(DQuote):     to(stateStringStart),
		lexInput(Backslash):  to(stateStringStart),
	},
	stateStringEnd: {
		lexInput(RBrace):     to(stateObjectEnd),
		lexInput(RSquare):    to(stateArrayEnd),
		lexInput(Comma):      to(stateMore),
		lexInput(Colon):      to(stateMore),
		lexInput(Whitespace): skip,
		lexInput(Newline):    skip,
	},
	stateLiteral: {
		lexInput(Char):       stay,
		lexInput(RBrace):     to(stateObjectEnd),
		lexInput(RSquare):    to(stateArrayEnd),
		lexInput(Comma):      to(stateMore),
		lexInput(Whitespace): skip,
		lexInput(Newline):    skip,
	},
	stateMore: {
		lexInput(LBrace):     to(stateObjectStart),
		lexInput(LSquare):    to(stateArrayStart),
		lexInput(Char):       to(stateLiteral),
		lexInput(DQuote):     to(stateStringStart),
		lexInput(Whitespace): skip,
		lexInput(Newline):    skip,
	},
}

func init() {
	for st := range transitions {
		live := 0
		for in, r := range transitions[st] {
			switch r.action {
			case fault, ignore:
			case shift:
				live++
				if int(r.next) >= numStates {
					panic(fmt.Sprintf("transition %s[%d]: target out of range", lexState(st), in))
				}
			case loop:
				live++
			}
			if r.action != loop && r.action != shift && r.next != 0 {
				panic(fmt.Sprintf("transition %s[%d]: target without transition", lexState(st), in))
			}
		}
		if live == 0 {
			panic(fmt.Sprintf("state %s: no live transitions", lexState(st)))
		}
	}
}

// numberPat recognizes the bare numeric literals the machine accepts. The
// text is typed int64 only when it has no fraction and no exponent, so
// negative integers stay integers.
var numberPat = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

// A Lexer is a push-model lexical analyzer for JSON text. Callers feed it
// arbitrarily sized chunks with Consume; it classifies each byte, advances
// the machine, and delivers structural and literal events to its
// TokenHandler. The event sequence is invariant under re-chunking of the
// same input.
//
// When a document's root container closes, the Lexer emits EndDocument and
// rearms itself, so one instance lexes a whole stream of whitespace
// separated documents.
type Lexer struct {
	h       TokenHandler
	acc     textAccumulator
	state   lexState
	started bool
	closed  bool
	depth   int     // structural opens minus closes in this document
	offset  int64   // bytes consumed so far
	loc     LineCol // line and column of the next byte
}

// NewLexer constructs a Lexer that delivers events to h.
// It panics if h is nil.
func NewLexer(h TokenHandler) *Lexer {
	if h == nil {
		panic("handler is nil")
	}
	return &Lexer{h: h, loc: LineCol{Line: 1}}
}

// Offset reports the number of input bytes consumed so far.
func (l *Lexer) Offset() int64 { return l.offset }

// Location reports the line and column of the next input byte.
func (l *Lexer) Location() LineCol { return l.loc }

// Consume advances the machine over data. An error is fatal to the Lexer:
// the machine does not resynchronize, and callers should not feed further
// input after a failure.
func (l *Lexer) Consume(data []byte) error {
	if l.closed {
		return ErrClosed
	}
	for _, c := range data {
		if err := l.consumeByte(c); err != nil {
			return err
		}
	}
	return nil
}

// ConsumeString is Consume for a string chunk.
func (l *Lexer) ConsumeString(data string) error {
	if l.closed {
		return ErrClosed
	}
	for i := 0; i < len(data); i++ {
		if err := l.consumeByte(data[i]); err != nil {
			return err
		}
	}
	return nil
}

// Close marks the Lexer closed and releases its buffers. If a document is
// still open, Close forces the end-of-input transition through the machine:
// with the root container closed this emits the final EndDocument, anywhere
// else the document is incomplete and Close reports a SyntaxError. Close is
// idempotent; Consume after Close reports ErrClosed.
func (l *Lexer) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	defer l.acc.release()
	if !l.started {
		return nil
	}
	return l.apply(inEnd, 0)
}

func (l *Lexer) consumeByte(c byte) error {
	tok := classify(c)
	if !l.started && tok != Whitespace && tok != Newline {
		l.started = true
		if err := l.apply(inStart, 0); err != nil {
			return err
		}
	}
	if err := l.apply(lexInput(tok), c); err != nil {
		return err
	}
	l.offset++
	l.loc = l.loc.advance(c)
	return nil
}

func (l *Lexer) apply(in lexInput, c byte) error {
	r := transitions[l.state][in]
	switch r.action {
	case fault:
		return l.fail(in, c)
	case ignore:
		return nil
	case loop:
		r.next = l.state
	}
	prev := l.state
	l.state = r.next
	if err := l.afterTransition(prev); err != nil {
		return err
	}
	// The accumulator observes the byte only after the machine has moved, so
	// a closing quote never lands in the buffer it just popped.
	if in < lexInput(numTokens) {
		l.acc.verbatim = l.state == stateStringStart || l.state == stateStringEscaping
		l.acc.feed(Token(in), c)
	}
	return nil
}

// afterTransition runs the entry effects of the state just entered:
// finished literals pop the accumulator, structural states emit their
// events, and a closed root cascades into EndDocument and a reset.
func (l *Lexer) afterTransition(prev lexState) error {
	if l.state == stateStringEnd {
		if err := l.h.Literal(String, l.acc.pop()); err != nil {
			return err
		}
	}
	if prev == stateLiteral && l.state != stateLiteral {
		if err := l.emitBareLiteral(); err != nil {
			return err
		}
	}
	switch l.state {
	case stateDocStart:
		return l.h.BeginDocument()
	case stateObjectStart:
		l.depth++
		return l.h.BeginObject()
	case stateArrayStart:
		l.depth++
		return l.h.BeginArray()
	case stateObjectEnd:
		l.depth--
		if err := l.h.EndObject(); err != nil {
			return err
		}
		return l.checkRootClosed()
	case stateArrayEnd:
		l.depth--
		if err := l.h.EndArray(); err != nil {
			return err
		}
		return l.checkRootClosed()
	case stateDocEnd:
		err := l.h.EndDocument()
		// Rearm for the next document in the stream.
		l.state = transitions[stateDocEnd][inReset].next
		l.started = false
		l.depth = 0
		return err
	}
	return nil
}

// checkRootClosed forces the end-of-input transition once the closes have
// balanced the opens, which is what terminates a document without any
// out-of-band signal from the caller.
func (l *Lexer) checkRootClosed() error {
	if l.depth > 0 {
		return nil
	}
	return l.apply(inEnd, 0)
}

func (l *Lexer) emitBareLiteral() error {
	text := l.acc.pop()
	switch {
	case numberPat.MatchString(text):
		if !strings.ContainsAny(text, ".eE") {
			if v, err := strconv.ParseInt(text, 10, 64); err == nil {
				return l.h.Literal(Number, v)
			}
			// Out of int64 range: fall through to floating point.
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return &LiteralError{Offset: l.offset, Location: l.loc, Text: text}
		}
		return l.h.Literal(Number, v)
	case text == "true":
		return l.h.Literal(Boolean, true)
	case text == "false":
		return l.h.Literal(Boolean, false)
	case text == "null":
		return l.h.Literal(Null, nil)
	default:
		return &LiteralError{Offset: l.offset, Location: l.loc, Text: text}
	}
}

func (l *Lexer) fail(in lexInput, c byte) error {
	return &SyntaxError{
		Offset:   l.offset,
		Location: l.loc,
		Message:  fmt.Sprintf("unexpected %s in state %s", inputDesc(in, c), l.state),
	}
}

func inputDesc(in lexInput, c byte) string {
	switch in {
	case inStart:
		return "start of input"
	case inEnd:
		return "end of input"
	case inReset:
		return "reset"
	}
	if tok := Token(in); tok != Char {
		return tok.String()
	}
	return fmt.Sprintf("char %q", c)
}
