// Copyright (C) 2026 The jstream Authors. All Rights Reserved.

package objstream_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"

	"github.com/pushparse/jstream"
	"github.com/pushparse/jstream/internal/testutil"
	"github.com/pushparse/jstream/objstream"
)

func TestObjectStream(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{}`, "ObjectStreamStart\nObjectStreamEnd"},
		{`[]`, "ArrayStreamStart\nArrayStreamEnd"},

		{`{"a":1, "b":"x", "c":null}`, `
ObjectStreamStart
Pair <a> = 1
Pair <b> = x
Pair <c> = null
ObjectStreamEnd`},

		{`[1, "a", true, 2.5]`, `
ArrayStreamStart
Element <1>
Element <a>
Element <true>
Element <2.5>
ArrayStreamEnd`},

		// Nested members arrive fully built.
		{`{"a":{"b":[1,{"c":2}]},"d":[[5]]}`, `
ObjectStreamStart
Pair <a> = map[b:[1 map[c:2]]]
Pair <d> = [[5]]
ObjectStreamEnd`},

		{`[[1,2],{"x":"y"},[]]`, `
ArrayStreamStart
Element <[1 2]>
Element <map[x:y]>
Element <[]>
ArrayStreamEnd`},
	}

	for _, test := range tests {
		mh := new(memberLog)
		s := objstream.NewStreamer(mh)
		if err := s.ConsumeString(test.input); err != nil {
			t.Errorf("Input: %#q\nConsume failed: %v", test.input, err)
			continue
		}
		if err := s.Close(); err != nil {
			t.Errorf("Input: %#q\nClose failed: %v", test.input, err)
		}
		if diff := diffStrings(test.want, mh.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestReassembly(t *testing.T) {
	const input = `{
		"s": "txt", "i": -42, "f": 2.5, "b": false, "n": null,
		"o": {"k": [true, {"z": []}]},
		"a": [1, [2, [3]]]
	}`
	want := []member{
		{"s", "txt"},
		{"i", int64(-42)},
		{"f", 2.5},
		{"b", false},
		{"n", nil},
		{"o", map[string]any{"k": []any{true, map[string]any{"z": []any{}}}}},
		{"a", []any{int64(1), []any{int64(2), []any{int64(3)}}}},
	}

	var rec memberRecorder
	s := objstream.NewStreamer(&rec)
	if err := s.ConsumeString(input); err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if diff := cmp.Diff(want, rec.members); diff != "" {
		t.Errorf("Members: (-want, +got)\n%s", diff)
	}
}

func TestObjectStreamChunked(t *testing.T) {
	const input = `{"a":{"b":[1,{"c":"x\ty"}]},"d":[[5],null]}`

	ref := new(memberLog)
	s := objstream.NewStreamer(ref)
	if err := s.ConsumeString(input); err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	testutil.Splits(input, func(head, tail string) {
		mh := new(memberLog)
		s := objstream.NewStreamer(mh)
		if err := s.ConsumeString(head); err != nil {
			t.Fatalf("Consume %#q failed: %v", head, err)
		}
		if err := s.ConsumeString(tail); err != nil {
			t.Fatalf("Consume %#q failed: %v", tail, err)
		}
		if err := s.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if got := mh.output(); got != ref.output() {
			t.Errorf("Split %d: got %q, want %q", len(head), got, ref.output())
		}
	})
}

func TestObjectStreamErrors(t *testing.T) {
	t.Run("Mismatch", func(t *testing.T) {
		s := objstream.NewStreamer(new(memberLog))
		err := s.ConsumeString(`{"a":1]`)
		var serr *jstream.SyntaxError
		if !errors.As(err, &serr) {
			t.Fatalf("Consume: got %v, want a *SyntaxError", err)
		}
	})
	t.Run("DepthLimit", func(t *testing.T) {
		s := objstream.NewStreamer(new(memberLog), jstream.WithMaxDepth(1))
		if err := s.ConsumeString(`{"a":{}}`); !errors.Is(err, jstream.ErrTooDeep) {
			t.Errorf("Consume: got %v, want ErrTooDeep", err)
		}
	})
	t.Run("HandlerAbort", func(t *testing.T) {
		errStop := errors.New("stop")
		d := objstream.NewDispatcher().On(objstream.PairEvent, func(objstream.Event) error {
			return errStop
		})
		s := objstream.NewStreamer(d)
		if err := s.ConsumeString(`{"a":1}`); !errors.Is(err, errStop) {
			t.Errorf("Consume: got %v, want %v", err, errStop)
		}
	})
}

func TestPartialMemberDiscarded(t *testing.T) {
	mh := new(memberLog)
	s := objstream.NewStreamer(mh)
	if err := s.ConsumeString(`{"done":1, "part": {"x": [1,`); err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	const want = "ObjectStreamStart\nPair <done> = 1"
	if diff := diffStrings(want, mh.output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}

func TestObjectDispatcher(t *testing.T) {
	var keys []string
	var events []string
	d := objstream.NewDispatcher().
		On(objstream.PairEvent, func(evt objstream.Event) error {
			keys = append(keys, evt.Key)
			return nil
		}).
		OnAny(func(evt objstream.Event) error {
			events = append(events, evt.Kind.String())
			return nil
		})

	s := objstream.NewStreamer(d)
	if err := s.ConsumeString(`{"a":1, "b":[2]}`); err != nil {
		t.Fatalf("Consume failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if diff := cmp.Diff([]string{"a", "b"}, keys); diff != "" {
		t.Errorf("Keys: (-want, +got)\n%s", diff)
	}
	wantEvents := []string{"object_stream_start", "pair", "pair", "object_stream_end"}
	if diff := cmp.Diff(wantEvents, events); diff != "" {
		t.Errorf("Events: (-want, +got)\n%s", diff)
	}
}

func TestNilObjectHandler(t *testing.T) {
	mtest.MustPanic(t, func() { objstream.NewStreamer(nil) })
}

func diffStrings(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

// lit renders a member value for event logs, with null spelled out.
func lit(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}

// A member is one recorded top-level pair or element. Elements record an
// empty key.
type member struct {
	Key   string
	Value any
}

type memberRecorder struct {
	members []member
}

func (r *memberRecorder) ObjectStreamStart() error { return nil }
func (r *memberRecorder) ObjectStreamEnd() error   { return nil }
func (r *memberRecorder) ArrayStreamStart() error  { return nil }
func (r *memberRecorder) ArrayStreamEnd() error    { return nil }

func (r *memberRecorder) Pair(key string, value any) error {
	r.members = append(r.members, member{key, value})
	return nil
}

func (r *memberRecorder) Element(value any) error {
	r.members = append(r.members, member{Value: value})
	return nil
}

type memberLog struct {
	buf bytes.Buffer
}

func (m *memberLog) pr(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(&m.buf, msg, args...)
}

func (m *memberLog) output() string { return m.buf.String() }

func (m *memberLog) ObjectStreamStart() error { m.pr("ObjectStreamStart"); return nil }
func (m *memberLog) ObjectStreamEnd() error   { m.pr("ObjectStreamEnd"); return nil }
func (m *memberLog) ArrayStreamStart() error  { m.pr("ArrayStreamStart"); return nil }
func (m *memberLog) ArrayStreamEnd() error    { m.pr("ArrayStreamEnd"); return nil }

func (m *memberLog) Pair(key string, value any) error {
	m.pr("Pair <%s> = %s", key, lit(value))
	return nil
}

func (m *memberLog) Element(value any) error {
	m.pr("Element <%s>", lit(value))
	return nil
}
