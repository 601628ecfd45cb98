// Copyright (C) 2026 The jstream Authors. All Rights Reserved.

// Package testutil defines support code for unit tests.
package testutil

// Splits calls f for each way of dividing s into a head and a tail,
// including the empty head and the empty tail.
func Splits(s string, f func(head, tail string)) {
	for i := 0; i <= len(s); i++ {
		f(s[:i], s[i:])
	}
}

// Chunks divides s into consecutive pieces of at most n bytes.
func Chunks(s string, n int) []string {
	if n <= 0 {
		n = 1
	}
	var out []string
	for len(s) > n {
		out = append(out, s[:n])
		s = s[n:]
	}
	return append(out, s)
}
