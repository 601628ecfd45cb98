// Copyright (C) 2026 The jstream Authors. All Rights Reserved.

package jstream

import "fmt"

// A Kind identifies which parse event occurred.
type Kind uint8

// Constants defining the event kinds reported by a Streamer.
const (
	DocStartEvent Kind = iota
	DocEndEvent
	ObjectStartEvent
	ObjectEndEvent
	ArrayStartEvent
	ArrayEndEvent
	KeyEvent
	ValueEvent
	ElementEvent

	numKinds = iota
)

var kindStr = [numKinds]string{
	DocStartEvent:    "doc_start",
	DocEndEvent:      "doc_end",
	ObjectStartEvent: "object_start",
	ObjectEndEvent:   "object_end",
	ArrayStartEvent:  "array_start",
	ArrayEndEvent:    "array_end",
	KeyEvent:         "key",
	ValueEvent:       "value",
	ElementEvent:     "element",
}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// An Event is one parse event as delivered to Dispatcher callbacks.
type Event struct {
	Kind Kind

	// Key is the object member key for KeyEvent, otherwise "".
	Key string

	// Value is the literal value for ValueEvent and ElementEvent: one of
	// string, int64, float64, bool or nil. Otherwise it is nil.
	Value any
}

// A Dispatcher routes parse events to registered callback functions. It
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

// DocStart implements part of the Handler interface.
func (d *Dispatcher) DocStart() error { return d.fire(Event{Kind: DocStartEvent}) }

// DocEnd implements part of the Handler interface.
func (d *Dispatcher) DocEnd() error { return d.fire(Event{Kind: DocEndEvent}) }

// ObjectStart implements part of the Handler interface.
func (d *Dispatcher) ObjectStart() error { return d.fire(Event{Kind: ObjectStartEvent}) }

// ObjectEnd implements part of the Handler interface.
func (d *Dispatcher) ObjectEnd() error { return d.fire(Event{Kind: ObjectEndEvent}) }

// ArrayStart implements part of the Handler interface.
func (d *Dispatcher) ArrayStart() error { return d.fire(Event{Kind: ArrayStartEvent}) }

// ArrayEnd implements part of the Handler interface.
func (d *Dispatcher) ArrayEnd() error { return d.fire(Event{Kind: ArrayEndEvent}) }

// Key implements part of the Handler interface.
func (d *Dispatcher) Key(key string) error {
	return d.fire(Event{Kind: KeyEvent, Key: key})
}

// Value implements part of the Handler interface.
func (d *Dispatcher) Value(kind LiteralKind, value any) error {
	return d.fire(Event{Kind: ValueEvent, Value: value})
}

// Element implements part of the Handler interface.
func (d *Dispatcher) Element(kind LiteralKind, value any) error {
	return d.fire(Event{Kind: ElementEvent, Value: value})
}
