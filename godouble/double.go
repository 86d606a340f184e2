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
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// T is the subset of testing.T used to report failures and trace calls
type T interface {
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
	Helper()
}

// MatcherForMethod converts the arguments of Matching() into a MethodArgsMatcher for m.
// Replace it to integrate another matching library, see gomegadouble.
type MatcherForMethod func(t T, m reflect.Method, chained MethodArgsMatcher, matchers ...any) MethodArgsMatcher

// ReturnsForMethod converts the arguments of Returning() into ReturnValues for m.
type ReturnsForMethod func(t T, m reflect.Method, chained ReturnValues, returnValues ...any) ReturnValues

/*
A TestDouble substitutes for an implementation of an interface in a four phase test
(Setup, Exercise, Verify, Teardown). Generated doubles embed it and delegate every method to Invoke().

Setup phase

Each method is configured with any number of calls:

	Stub  - returns known values for invocations with matching arguments
	Mock  - a Stub that expects a number of invocations, optionally in order with other mocks
	Spy   - a Stub that records invocations for later verification
	Fake  - records invocations and delegates them to a substitute implementation

Exercise phase

An invocation is handled by the first registered call that matches its arguments, or the most recently
registered one with MostRecentFirst(). Invocations that match nothing go to the method's default call,
generated once per method. See Loose() and Strict().

Verify phase

Verify() asserts the expectations of every Mock. Spies and Fakes assert on subsets of their recorded calls.
*/
type TestDouble struct {
	t                   T
	methods             map[string]*method
	defaultCall         func(Method) MethodCall
	defaultReturnValues func(Method) ReturnValues
	forInterface        reflect.Type
	trace               bool
	mostRecentFirst     bool
	matcher             MatcherForMethod
	returns             ReturnsForMethod
}

// EnableTrace logs every invocation, and the call that handled it, via T.Logf
func (d *TestDouble) EnableTrace() {
	d.trace = true
}

// SetDefaultCall sets the function generating the call that handles invocations matching no registered call.
//
// The default is a Mock that expects Never() to be called.
func (d *TestDouble) SetDefaultCall(defaultCall func(Method) MethodCall) {
	d.defaultCall = defaultCall
}

// SetDefaultReturnValues sets the function generating ReturnValues for calls configured without Returning().
//
// The default is ZeroValues.
func (d *TestDouble) SetDefaultReturnValues(defaultReturns func(Method) ReturnValues) {
	d.defaultReturnValues = defaultReturns
}

func (d *TestDouble) SetMatcherIntegration(forMethod MatcherForMethod) {
	d.matcher = forMethod
}

func (d *TestDouble) SetReturnValuesIntegration(forMethod ReturnsForMethod) {
	d.returns = forMethod
}

func (d *TestDouble) String() string {
	return fmt.Sprintf("DoubleFor(%v)", d.forInterface)
}

func (d *TestDouble) T() T {
	return d.t
}

// MethodCall is implemented by each kind of call, Stub, Mock, Spy and Fake
type MethodCall interface {
	matches(args []any) bool
	spy(args []any) ([]any, error)
	verify(T)
}

/*
NewDouble creates the TestDouble embedded by a generated double.

forInterface must be a nil pointer to the interface, eg (*volume.Volume)(nil).

configurators are applied in order after the defaults: zero return values, the built in matchers
and a Never() mock for unregistered calls.
*/
func NewDouble(t T, forInterface any, configurators ...func(*TestDouble)) *TestDouble {
	t.Helper()
	doubleFor := reflect.TypeOf(forInterface)
	if doubleFor == nil || doubleFor.Kind() != reflect.Ptr || doubleFor.Elem().Kind() != reflect.Interface {
		t.Fatalf("Expecting '%v' to be a pointer to nil interface", forInterface)
		return nil
	}
	doubleFor = doubleFor.Elem()

	double := &TestDouble{
		t:            t,
		forInterface: doubleFor,
		methods:      make(map[string]*method, doubleFor.NumMethod()),
	}
	for i := 0; i < doubleFor.NumMethod(); i++ {
		m := doubleFor.Method(i)
		double.methods[m.Name] = newMethod(double, m)
	}

	defaults(double)
	for _, configure := range configurators {
		configure(double)
	}

	switch {
	case double.matcher == nil:
		t.Fatalf("%v need SetMatcherIntegration() configured", doubleFor)
	case double.returns == nil || double.defaultReturnValues == nil:
		t.Fatalf("%v needs both SetReturnValuesIntegration and SetDefaultReturnValues configured", doubleFor)
	case double.defaultCall == nil:
		t.Fatalf("%v needs SetDefaultCall configured", doubleFor)
	}
	return double
}

// lookup returns the named method, fatally failing the test if there is no such method
func (d *TestDouble) lookup(purpose string, methodName string) *method {
	d.t.Helper()
	m, found := d.methods[methodName]
	if !found {
		d.t.Fatalf("Cannot %s non existent method %s for %v", purpose, methodName, d)
	}
	return m
}

// register adds the call built by newCall to the named method
func register[C MethodCall](d *TestDouble, purpose string, methodName string, newCall func(m *method) C) (call C) {
	d.t.Helper()
	if m := d.lookup(purpose, methodName); m != nil {
		m.mutex.Lock()
		defer m.mutex.Unlock()
		call = newCall(m)
		m.addMethodCall(call)
	}
	return
}

/*
Stub registers a StubbedMethodCall for methodName.

A Stub matches any arguments and returns default (zero) values until configured with Matching() and Returning().
It has nothing to verify.
*/
func (d *TestDouble) Stub(methodName string) StubbedMethodCall {
	d.t.Helper()
	return register(d, "Stub", methodName, (*method).Stub)
}

/*
Mock registers a MockedMethodCall for methodName.

Like a Stub it matches any arguments and returns default values until configured. An Expectation
set with Expect() is asserted by Verify(), usually deferred straight after creating the double.

A Mock stops matching invocations once its Expectation is complete (eg after Once() has been called once),
or while any mocks it must run After() are incomplete.
*/
func (d *TestDouble) Mock(methodName string) MockedMethodCall {
	d.t.Helper()
	return register(d, "Mock", methodName, (*method).Mock)
}

/*
Spy returns the SpyMethodCall recording invocations of methodName.

There is only ever one spy (or fake) per method so calling Spy() again returns the same one. This includes a spy
generated as the default call, so Spy() can be used in the Verify phase to inspect unregistered calls.

A Spy records every invocation not matched by a Stub or Mock registered before it.
*/
func (d *TestDouble) Spy(methodName string) SpyMethodCall {
	d.t.Helper()
	m := d.lookup("Spy on", methodName)
	if m == nil {
		return nil
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, methodCall := range m.all() {
		if call, isa := methodCall.(SpyMethodCall); isa {
			return call
		}
	}
	spy := m.Spy()
	m.addMethodCall(spy)
	return spy
}

/*
Fake registers impl as the implementation of methodName, recording invocations as per Spy.

impl must have the same signature as the method. A method has at most one spy or fake, so Fake
fatally fails the test if one is already registered.
*/
func (d *TestDouble) Fake(methodName string, impl any) FakeMethodCall {
	d.t.Helper()
	m := d.lookup("Fake", methodName)
	if m == nil {
		return nil
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, methodCall := range m.all() {
		if call, isa := methodCall.(SpyMethodCall); isa {
			d.t.Fatalf("unreachable fake for %s.%s which has previously registered a spy (%v)", d, methodName, call)
		}
	}
	fake := m.Fake(impl)
	m.addMethodCall(fake)
	return fake
}

// Verify asserts the expectations of all calls, method by method in name order
func (d *TestDouble) Verify() {
	d.t.Helper()
	for _, name := range slices.Sorted(maps.Keys(d.methods)) {
		for _, methodCall := range d.methods[name].all() {
			methodCall.verify(d.t)
		}
	}
}

// Invoke passes an invocation of methodName with args to the matching call and returns its results.
//
// Generated doubles call this from every method. Fakes may call it to record an invocation.
func (d *TestDouble) Invoke(methodName string, args ...any) []any {
	d.t.Helper()
	m, found := d.methods[methodName]
	if !found {
		d.t.Fatalf("Unexpected call to unknown methodName %T.%s", d, methodName)
		return nil
	}
	return m.invoke(args)
}

// Verifiable is anything with expectations to Verify, eg a generated double
type Verifiable interface {
	Verify()
}

// Verify verifies each of testDoubles
func Verify(testDoubles ...Verifiable) {
	for _, td := range testDoubles {
		td.Verify()
	}
}
