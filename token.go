// Copyright (C) 2026 The jstream Authors. All Rights Reserved.

package jstream

import "fmt"

// A Token is the lexical class of a single input byte. Classification is
// total: every byte belongs to exactly one class, and bytes with no
// structural meaning (including the continuation bytes of multibyte UTF-8
// sequences) classify as Char. All structurally significant characters are
// ASCII, so per-byte classification is safe for any ASCII-superset encoding;
// multibyte text passes through untouched and is reassembled by accumulation.
type Token byte

const (
	Char Token = iota // any byte without structural meaning

	LBrace     // {
	RBrace     // }
	LSquare    // [
	RSquare    // ]
	Comma      // ,
	Colon      // :
	DQuote     // "
	Whitespace // space, horizontal tab, carriage return
	Newline    // line feed
	Backslash  // \

	numTokens = iota
)

var tokenStr = [numTokens]string{
	Char:       "char",
	LBrace:     `"{"`,
	RBrace:     `"}"`,
	LSquare:    `"["`,
	RSquare:    `"]"`,
	Comma:      `","`,
	Colon:      `":"`,
	DQuote:     `'"'`,
	Whitespace: "whitespace",
	Newline:    "newline",
	Backslash:  `"\"`,
}

func (t Token) String() string {
	if int(t) >= len(tokenStr) {
		return fmt.Sprintf("token(%d)", byte(t))
	}
	return tokenStr[t]
}

// tokenClass maps each byte to its Token. Unset entries are Char.
var tokenClass = func() (tc [256]Token) {
	tc['{'] = LBrace
	tc['}'] = RBrace
	tc['['] = LSquare
	tc[']'] = RSquare
	tc[','] = Comma
	tc[':'] = Colon
	tc['"'] = DQuote
	tc[' '] = Whitespace
	tc['\t'] = Whitespace
	tc['\r'] = Whitespace
	tc['\n'] = Newline
	tc['\\'] = Backslash
	return
}()

// classify reports the lexical class of c.
func classify(c byte) Token { return tokenClass[c] }
