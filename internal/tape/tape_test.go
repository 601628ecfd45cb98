// Copyright (C) 2026 The jstream Authors. All Rights Reserved.

package tape_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushparse/jstream/internal/tape"
)

func TestTape(t *testing.T) {
	var tp tape.Tape
	assert.Equal(t, 0, tp.Len())

	n, err := tp.Write([]byte("hello "))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = tp.WriteString("world")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	assert.Equal(t, 11, tp.Len())
	assert.Equal(t, "hello world", tp.String())

	buf := make([]byte, 4)
	n, err = tp.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hell", string(buf[:n]))
	assert.Equal(t, 7, tp.Len())

	rest, err := io.ReadAll(&tp)
	require.NoError(t, err)
	assert.Equal(t, "o world", string(rest))
	assert.Equal(t, 0, tp.Len())

	_, err = tp.Read(buf)
	assert.Equal(t, io.EOF, err)
}

func TestTapeInterleaved(t *testing.T) {
	var tp tape.Tape
	_, err := tp.WriteString("abcdef")
	require.NoError(t, err)

	buf := make([]byte, 4)
	n, err := tp.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(buf[:n]))

	// The consumed prefix is reclaimed on the next write.
	_, err = tp.WriteString("ghij")
	require.NoError(t, err)
	assert.Equal(t, "efghij", tp.String())

	out, err := io.ReadAll(&tp)
	require.NoError(t, err)
	assert.Equal(t, "efghij", string(out))
}

func TestTapeLargeStream(t *testing.T) {
	var tp tape.Tape
	var got strings.Builder
	chunk := strings.Repeat("0123456789", 100)

	buf := make([]byte, 256)
	for i := 0; i < 50; i++ {
		_, err := tp.WriteString(chunk)
		require.NoError(t, err)
		for tp.Len() > 0 {
			n, err := tp.Read(buf)
			require.NoError(t, err)
			got.Write(buf[:n])
		}
	}
	assert.Equal(t, 50*len(chunk), got.Len())
	assert.Equal(t, 0, tp.Len())
}

func TestTapeReset(t *testing.T) {
	var tp tape.Tape
	_, err := tp.WriteString("data")
	require.NoError(t, err)

	tp.Reset()
	assert.Equal(t, 0, tp.Len())
	assert.Equal(t, "", tp.String())

	_, err = tp.Read(make([]byte, 1))
	assert.Equal(t, io.EOF, err)
}
