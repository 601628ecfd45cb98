// Copyright (C) 2026 The jstream Authors. All Rights Reserved.

package objstream

import "fmt"

// A Kind identifies which top-level event occurred.
type Kind uint8

// Constants defining the event kinds reported by a Streamer.
const (
	ObjectStreamStartEvent Kind = iota
	ObjectStreamEndEvent
	ArrayStreamStartEvent
	ArrayStreamEndEvent
	PairEvent
	ElementEvent

	numKinds = iota
)

var kindStr = [numKinds]string{
	ObjectStreamStartEvent: "object_stream_start",
	ObjectStreamEndEvent:   "object_stream_end",
	ArrayStreamStartEvent:  "array_stream_start",
	ArrayStreamEndEvent:    "array_stream_end",
	PairEvent:              "pair",
	ElementEvent:           "element",
}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// An Event is one top-level event as delivered to Dispatcher callbacks.
type Event struct {
	Kind Kind

	// Key is the member key for PairEvent, otherwise "".
	Key string

	// Value is the completed member value for PairEvent and ElementEvent:
	// a literal, map[string]any or []any. Otherwise it is nil.
	Value any
}

// A Dispatcher routes top-level events to registered callback functions. It
// implements Handler, so it can be passed directly to NewStreamer.
//
// Callbacks registered for a specific Kind fire in registration order,
// followed by callbacks registered with OnAny. A callback error stops the
// parse and is reported to the caller pushing input.
type Dispatcher struct {
	named    [numKinds][]func(Event) error
	catchAll []func(Event) error
}

// NewDispatcher constructs a Dispatcher with no callbacks registered.
func NewDispatcher() *Dispatcher { return new(Dispatcher) }

// On registers fn to be called for each event of kind k. It returns d to
// permit chaining. It will panic if k is not a valid Kind.
func (d *Dispatcher) On(k Kind, fn func(Event) error) *Dispatcher {
	d.named[k] = append(d.named[k], fn)
	return d
}

// OnAny registers fn to be called for every event, after any callbacks
// registered for the event's specific kind. It returns d to permit chaining.
func (d *Dispatcher) OnAny(fn func(Event) error) *Dispatcher {
	d.catchAll = append(d.catchAll, fn)
	return d
}

func (d *Dispatcher) fire(evt Event) error {
	for _, fn := range d.named[evt.Kind] {
		if err := fn(evt); err != nil {
			return err
		}
	}
	for _, fn := range d.catchAll {
		if err := fn(evt); err != nil {
			return err
		}
	}
	return nil
}

// ObjectStreamStart implements part of the Handler interface.
func (d *Dispatcher) ObjectStreamStart() error {
	return d.fire(Event{Kind: ObjectStreamStartEvent})
}

// ObjectStreamEnd implements part of the Handler interface.
func (d *Dispatcher) ObjectStreamEnd() error {
	return d.fire(Event{Kind: ObjectStreamEndEvent})
}

// ArrayStreamStart implements part of the Handler interface.
func (d *Dispatcher) ArrayStreamStart() error {
	return d.fire(Event{Kind: ArrayStreamStartEvent})
}

// ArrayStreamEnd implements part of the Handler interface.
func (d *Dispatcher) ArrayStreamEnd() error {
	return d.fire(Event{Kind: ArrayStreamEndEvent})
}

// Pair implements part of the Handler interface.
func (d *Dispatcher) Pair(key string, value any) error {
	return d.fire(Event{Kind: PairEvent, Key: key, Value: value})
}

// Element implements part of the Handler interface.
func (d *Dispatcher) Element(value any) error {
	return d.fire(Event{Kind: ElementEvent, Value: value})
}
