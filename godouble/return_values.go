/*
 * Copyright 2020 grant@lastweekend.com.au
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package godouble

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"sync"
	"time"
)

// Errors from Receive. An invocation that gets an error instead of values fatally fails the test.
var (
	ErrChannelClosed  = errors.New("requested values from closed return channel")
	ErrChannelTimeout = errors.New("timed out waiting for return channel to provide values")
	ErrNoMoreValues   = errors.New("no available values")
)

// ReturnValues produces the values returned by Stub, Mock or Spy invocations
type ReturnValues interface {
	// Receive is called for each invocation, a non nil error fatally fails the test
	Receive() ([]any, error)
}

// ArgsReturnValues are ReturnValues computed from the arguments of each invocation
type ArgsReturnValues interface {
	ReturnValues

	// ReceiveArgs is called in preference to Receive
	ReceiveArgs(args []any) ([]any, error)
}

// ValidatingReturnValues are checked against the method signature when installed
type ValidatingReturnValues interface {
	ReturnValues
	ForMethod(t T, method reflect.Method)
}

// ReturnValues that may produce more than one set of values, eg for a Sequence to exhaust
type multiValues interface {
	ReturnValues
	multiValued() bool
}

// A Timewarp simulates a sleep, eg when testing with a fake clock. The real one is time.After.
type Timewarp func(d time.Duration) <-chan time.Time

// NewReturnsForMethod converts values to ReturnValues as per StubbedMethodCall.Returning()
// and validates the result against forMethod
func NewReturnsForMethod(t T, forMethod reflect.Method, values ...any) ReturnValues {
	rv, isa := ReturnValues(nil), false
	if len(values) == 1 {
		rv, isa = values[0].(ReturnValues)
	}
	if !isa {
		rv = Values(values...)
	}
	validate(t, forMethod, rv)
	return rv
}

func validate(t T, m reflect.Method, rv ReturnValues) {
	if v, isa := rv.(ValidatingReturnValues); isa {
		v.ForMethod(t, m)
	}
}

func receive(rv ReturnValues, args []any) ([]any, error) {
	if withArgs, isa := rv.(ArgsReturnValues); isa {
		return withArgs.ReceiveArgs(args)
	}
	return rv.Receive()
}

type zeroReturnValues []reflect.Type

// ZeroValues repeatedly returns the zero values of the results of methodType
func ZeroValues(methodType reflect.Type) ReturnValues {
	if methodType.NumOut() == 0 {
		return zeroReturnValues(nil)
	}
	return zeroReturnValues(outTypes(methodType))
}

func (zv zeroReturnValues) Receive() ([]any, error) {
	if len(zv) == 0 {
		return nil, nil
	}
	zeros := make([]any, len(zv))
	for i, rt := range zv {
		zeros[i] = reflect.Zero(rt).Interface()
	}
	return zeros, nil
}

type fixedReturnValues []any

// Values returns the same values for every invocation
func Values(values ...any) ReturnValues {
	return fixedReturnValues(values)
}

func (v fixedReturnValues) Receive() ([]any, error) {
	return v, nil
}

func (v fixedReturnValues) ForMethod(t T, m reflect.Method) {
	AssertMethodReturnValues(t, m, v)
}

// ReturnChannel returns values as they are sent, so a test can control what each invocation receives
type ReturnChannel interface {
	// Send one set of return values, blocking if unbuffered until an invocation receives them
	Send(...any)

	// Close the channel. Invocations that need values after that fatally fail the test.
	Close()

	// SetTimeout sets how long an invocation waits for values to be sent before fatally failing the test
	SetTimeout(timeout time.Duration, sleeper ...Timewarp)

	ReturnValues
}

type returnChannel struct {
	t       T
	method  reflect.Method
	values  chan []any
	timeout time.Duration
	sleeper Timewarp
}

// NewReturnChannel creates a ReturnChannel, buffered by the sum of bufferSize, with a 200ms timeout.
func NewReturnChannel(bufferSize ...int) ReturnChannel {
	size := 0
	for _, n := range bufferSize {
		size += n
	}
	return &returnChannel{
		values:  make(chan []any, size),
		timeout: 200 * time.Millisecond,
		sleeper: time.After,
	}
}

// ForMethod records the method so Send can validate values
func (rc *returnChannel) ForMethod(t T, method reflect.Method) {
	rc.t = t
	rc.method = method
}

func (rc *returnChannel) multiValued() bool { return true }

func (rc *returnChannel) Receive() ([]any, error) {
	select {
	case values, ok := <-rc.values:
		if !ok {
			return nil, ErrChannelClosed
		}
		return values, nil
	case <-rc.sleeper(rc.timeout):
		return nil, ErrChannelTimeout
	}
}

func (rc *returnChannel) Send(returnValues ...any) {
	if rc.t != nil {
		AssertMethodReturnValues(rc.t, rc.method, returnValues)
	}
	rc.values <- returnValues
}

func (rc *returnChannel) Close() {
	close(rc.values)
}

func (rc *returnChannel) SetTimeout(timeout time.Duration, sleeper ...Timewarp) {
	rc.timeout = timeout
	if len(sleeper) > 0 {
		rc.sleeper = sleeper[0]
	}
}

type delayedReturnValues struct {
	ReturnValues
	delay   func() time.Duration
	sleeper Timewarp
}

// Delayed returns the values of rv after a delay of by, eg to simulate a slow IO request
// and let other goroutines run meanwhile.
//
// The optional sleep defaults to time.After.
func Delayed(rv ReturnValues, by time.Duration, sleep ...Timewarp) ReturnValues {
	return newDelayedReturnValues(rv, func() time.Duration { return by }, sleep...)
}

// RandDelayed returns the values of rv after a random delay less than max
func RandDelayed(rv ReturnValues, max time.Duration, sleep ...Timewarp) ReturnValues {
	return newDelayedReturnValues(rv, func() time.Duration { return time.Duration(rand.Int63n(int64(max))) }, sleep...)
}

func newDelayedReturnValues(rv ReturnValues, delay func() time.Duration, sleep ...Timewarp) ReturnValues {
	sleeper := Timewarp(time.After)
	if len(sleep) > 0 {
		sleeper = sleep[0]
	}
	return &delayedReturnValues{ReturnValues: rv, delay: delay, sleeper: sleeper}
}

func (d *delayedReturnValues) Receive() ([]any, error) {
	<-d.sleeper(d.delay())
	return d.ReturnValues.Receive()
}

func (d *delayedReturnValues) ReceiveArgs(args []any) ([]any, error) {
	<-d.sleeper(d.delay())
	return receive(d.ReturnValues, args)
}

func (d *delayedReturnValues) ForMethod(t T, method reflect.Method) {
	validate(t, method, d.ReturnValues)
}

type sequentialReturnValues struct {
	mutex  sync.Mutex
	values []ReturnValues
}

// Sequence returns the values of each of values in turn.
//
// A ReturnChannel or nested Sequence supplies values until it fails, others supply one set of values.
// Once all are used up invocations fatally fail the test.
func Sequence(values ...ReturnValues) ReturnValues {
	return &sequentialReturnValues{values: values}
}

func (s *sequentialReturnValues) multiValued() bool { return true }

func (s *sequentialReturnValues) ForMethod(t T, m reflect.Method) {
	for _, rv := range s.values {
		validate(t, m, rv)
	}
}

func (s *sequentialReturnValues) Receive() ([]any, error) {
	return s.ReceiveArgs(nil)
}

func (s *sequentialReturnValues) ReceiveArgs(args []any) ([]any, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for len(s.values) > 0 {
		rv := s.values[0]
		mv, isa := rv.(multiValues)
		if !isa || !mv.multiValued() {
			s.values = s.values[1:]
			if values, err := receive(rv, args); err == nil {
				return values, nil
			}
			continue
		}
		if values, err := receive(rv, args); err == nil {
			return values, nil
		}
		s.values = s.values[1:]
	}
	return nil, ErrNoMoreValues
}

type computedReturnValues struct {
	impl     reflect.Value
	withArgs bool
}

/*
Computed returns the results of calling impl on each invocation, rather than values fixed during setup.

impl must return values compatible with the method and take either no arguments,
or arguments compatible with the method in which case it receives the invocation arguments.
*/
func Computed(impl any) ReturnValues {
	fn := reflect.ValueOf(impl)
	withArgs := impl != nil && fn.Kind() == reflect.Func && fn.Type().NumIn() > 0
	return &computedReturnValues{impl: fn, withArgs: withArgs}
}

func (c *computedReturnValues) ForMethod(t T, m reflect.Method) {
	t.Helper()
	if !c.impl.IsValid() || c.impl.Kind() != reflect.Func {
		t.Fatalf("Computed for %v expected a func, got %v", m.Type, c.impl)
		return
	}
	if c.withArgs {
		AssertMethodInputs(t, m, c.impl.Type())
	}
	AssertMethodOutputs(t, m, c.impl.Type())
}

func (c *computedReturnValues) Receive() ([]any, error) {
	if c.withArgs {
		return nil, fmt.Errorf("computed %v requires method arguments", c.impl.Type())
	}
	return interfaces(c.impl.Call(nil)), nil
}

func (c *computedReturnValues) ReceiveArgs(args []any) ([]any, error) {
	if !c.withArgs {
		return c.Receive()
	}
	return interfaces(callFunc(c.impl, args)), nil
}

type panickingReturnValues struct {
	value any
}

// Panics panics with v on every invocation, to check how code copes with a dependency that panics
func Panics(v any) ReturnValues {
	return panickingReturnValues{v}
}

func (p panickingReturnValues) Receive() ([]any, error) {
	panic(p.value)
}

func (p panickingReturnValues) String() string {
	return fmt.Sprintf("Panics(%v)", p.value)
}
