// Copyright (C) 2026 The jstream Authors. All Rights Reserved.

// Program jstream reads JSON from a file or stdin and prints one line per
// parse event. With -object it prints completed top-level members instead.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/pushparse/jstream"
	"github.com/pushparse/jstream/objstream"
)

func main() {
	// Do not handle SIGPIPE, the write error is dealt with at the bottom.
	signal.Ignore(syscall.SIGPIPE)

	var (
		filename  string
		maxDepth  int
		maxString int
		bufSize   int
		topLevel  bool
	)
	colorize := isatty.IsTerminal(os.Stdout.Fd())

	flag.BoolFunc("colors", "force using colors", func(string) error {
		colorize = true
		return nil
	})
	flag.BoolFunc("nocolors", "disable colors", func(string) error {
		colorize = false
		return nil
	})
	flag.StringVar(&filename, "file", "", "json input filename (stdin if omitted)")
	flag.IntVar(&maxDepth, "depth", 0, "maximum nesting depth (0 means no limit)")
	flag.IntVar(&maxString, "maxstring", 0, "maximum string length in characters (0 means no limit)")
	flag.IntVar(&bufSize, "buffer", 0, "input buffer size in bytes")
	flag.BoolVar(&topLevel, "object", false, "print completed top-level members instead of parse events")
	flag.Parse()

	// Set up stdout for handling colors.
	var stdout io.Writer = os.Stdout
	if colorize {
		stdout = colorable.NewColorableStdout()
	}

	var input io.Reader = os.Stdin
	if filename != "" {
		f, err := os.Open(filename)
		if err != nil {
			fatalError("error opening %q: %s", filename, err)
		}
		defer f.Close()
		input = f
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	p := &printer{w: out, color: colorize}
	// When writing to a terminal, flush after each line so the user gets
	// feedback early.
	if isatty.IsTerminal(os.Stdout.Fd()) {
		p.flush = out
	}

	opts := []jstream.Option{
		jstream.WithMaxDepth(maxDepth),
		jstream.WithMaxStringSize(maxString),
		jstream.WithBufferSize(bufSize),
	}

	var err error
	if topLevel {
		err = printMembers(p, input, opts)
	} else {
		err = printEvents(p, input, opts)
	}
	if err != nil {
		if errors.Is(err, syscall.EPIPE) {
			// The read end of the pipe went away, e.g. 'head' or 'less'
			// exited. Not worth complaining about.
			return
		}
		var serr *jstream.SyntaxError
		if errors.As(err, &serr) {
			fatalError("parse error at %s: %s", serr.Location, serr.Message)
		}
		fatalError("error: %s", err)
	}
}

func printEvents(p *printer, input io.Reader, opts []jstream.Option) error {
	s := jstream.NewStreamer(jstream.NewDispatcher().OnAny(p.event), opts...)
	if _, err := s.ReadFrom(input); err != nil {
		s.Close()
		return err
	}
	return s.Close()
}

func printMembers(p *printer, input io.Reader, opts []jstream.Option) error {
	s := objstream.NewStreamer(objstream.NewDispatcher().OnAny(p.member), opts...)
	if _, err := s.ReadFrom(input); err != nil {
		s.Close()
		return err
	}
	return s.Close()
}

type printer struct {
	w     io.Writer
	flush *bufio.Writer // when set, flushed after every line
	color bool
}

func (p *printer) event(evt jstream.Event) error {
	var err error
	switch evt.Kind {
	case jstream.KeyEvent:
		_, err = fmt.Fprintf(p.w, "%s %s\n",
			p.paint(BrightBlue, pad(evt.Kind.String())),
			p.paint(BrightBlue, quoted(evt.Key)))
	case jstream.ValueEvent, jstream.ElementEvent:
		_, err = fmt.Fprintf(p.w, "%s %s\n",
			p.paint(DimWhite, pad(evt.Kind.String())), p.literal(evt.Value))
	default:
		_, err = fmt.Fprintln(p.w, p.paint(DimWhite, evt.Kind.String()))
	}
	if err != nil {
		return err
	}
	return p.endLine()
}

func (p *printer) member(evt objstream.Event) error {
	var err error
	switch evt.Kind {
	case objstream.PairEvent:
		_, err = fmt.Fprintf(p.w, "%s %s = %s\n",
			p.paint(BrightBlue, evt.Kind.String()),
			p.paint(BrightBlue, quoted(evt.Key)), p.value(evt.Value))
	case objstream.ElementEvent:
		_, err = fmt.Fprintf(p.w, "%s %s\n",
			p.paint(BrightBlue, evt.Kind.String()), p.value(evt.Value))
	default:
		_, err = fmt.Fprintln(p.w, p.paint(DimWhite, evt.Kind.String()))
	}
	if err != nil {
		return err
	}
	return p.endLine()
}

// literal renders a literal value with a color for its type.
func (p *printer) literal(v any) string {
	switch t := v.(type) {
	case string:
		return p.paint(Green, quoted(t))
	case int64:
		return p.paint(Yellow, strconv.FormatInt(t, 10))
	case float64:
		return p.paint(Yellow, strconv.FormatFloat(t, 'g', -1, 64))
	case bool:
		return p.paint(White, strconv.FormatBool(t))
	case nil:
		return p.paint(White, "null")
	default:
		return fmt.Sprint(t)
	}
}

// value renders a completed member value, which may be a whole container.
func (p *printer) value(v any) string {
	switch v.(type) {
	case map[string]any, []any:
		return fmt.Sprintf("%v", v)
	default:
		return p.literal(v)
	}
}

func (p *printer) paint(code []byte, s string) string {
	if !p.color {
		return s
	}
	return string(code) + s + string(Reset)
}

func (p *printer) endLine() error {
	if p.flush != nil {
		return p.flush.Flush()
	}
	return nil
}

// quoted shows string text in its decoded form.
func quoted(text string) string {
	dec, err := jstream.Unquote(text)
	if err != nil {
		dec = text
	}
	return strconv.Quote(dec)
}

func pad(name string) string { return fmt.Sprintf("%-12s", name) }

func fatalError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

// Some color ANSI codes.
var (
	Reset = []byte("\033[0m")

	Green  = []byte("\033[32m")
	Yellow = []byte("\033[33m")
	White  = []byte("\033[37m")

	DimWhite   = []byte("\033[37;2m")
	BrightBlue = []byte("\033[34;1m")
)
