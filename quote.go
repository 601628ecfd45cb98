// Copyright (C) 2026 The jstream Authors. All Rights Reserved.

package jstream

import (
	"github.com/pushparse/jstream/internal/escape"

	"go4.org/mem"
)

// Quote encodes src with the escape conventions of a JSON string. The result
// does not include enclosing double quotation marks, matching the form in
// which string literals are delivered to handlers.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }

// Unquote decodes the text of a string literal as delivered to a handler.
// Escape sequences are replaced with their unescaped equivalents, and paired
// "\u" surrogate escapes are combined. Invalid escapes and unpaired
// surrogates are replaced by the Unicode replacement rune. Unquote reports
// an error for an escape sequence truncated by the end of the text.
func Unquote(text string) (string, error) {
	dec, err := escape.Unquote(mem.S(text))
	if err != nil {
		return "", err
	}
	return string(dec), nil
}
