// Copyright (C) 2026 The jstream Authors. All Rights Reserved.

// Package jstream implements a push-model JSON parser.
//
// Input is handed to the parser in chunks as it becomes available, and the
// parser calls methods on a handler as soon as it has seen enough bytes to
// report something. A chunk may begin or end anywhere, including in the
// middle of a token. The events delivered depend only on the concatenated
// input, never on how it was divided into chunks.
//
// # Streaming
//
// The Streamer type is the usual entry point. Construct one with a Handler
// and push input with Consume, then call Close to mark the end of input:
//
//	s := jstream.NewStreamer(handler)
//	defer s.Close()
//	for _, chunk := range chunks {
//	   if err := s.Consume(chunk); err != nil {
//	      log.Fatalf("Parse failed: %v", err)
//	   }
//	}
//
// A Streamer also implements io.Writer and io.ReaderFrom, treating each
// write as one chunk.
//
// The methods of a Handler correspond to the structure of the input:
//
//	Method                   | Description
//	------------------------ | -----------------------------------
//	DocStart, DocEnd         | enclose all other events
//	ObjectStart, ObjectEnd   | { ... }
//	ArrayStart, ArrayEnd     | [ ... ]
//	Key                      | object member key
//	Value                    | non-composite object member value
//	Element                  | non-composite array element
//
// If a handler method reports an error, parsing stops and that error is
// returned to the caller pushing input. Errors found in the input itself
// are reported as *jstream.SyntaxError or *jstream.LiteralError.
//
// A Streamer can enforce limits on nesting depth and string length; see
// WithMaxDepth and WithMaxStringSize. Exceeding a limit stops the parse
// with an error that wraps ErrTooDeep or ErrStringTooLong.
//
// Instead of implementing all of Handler, a caller may register callbacks
// for the events it cares about on a Dispatcher:
//
//	d := jstream.NewDispatcher().
//	   On(jstream.KeyEvent, func(evt jstream.Event) error {
//	      log.Printf("key %q", evt.Key)
//	      return nil
//	   })
//	s := jstream.NewStreamer(d)
//
// # Lexing
//
// The Lexer type is the lower layer. It reports each structural boundary
// and each complete literal to a TokenHandler without tracking what
// contains what. When the root container of a document closes, the Lexer
// emits EndDocument and rearms itself, so a single Lexer consumes a whole
// stream of whitespace-separated documents.
//
// # Values
//
// String literals are delivered with their escape sequences preserved
// exactly as written; decode them with Unquote when the plain text is
// wanted. A number arrives as int64 when written without fraction or
// exponent, and as float64 otherwise. Booleans arrive as bool, and null
// arrives as nil.
//
// To receive completed top-level members of a document instead of
// individual parse events, see the objstream subpackage.
package jstream
