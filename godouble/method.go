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
	"reflect"
	"sync"
)

// Method is a single method of the interface being doubled, passed to the TestDouble's configurators.
//
// Each of Stub, Mock, Spy and Fake builds a new MethodCall of that kind without registering it,
// which is how a configurator chooses the call used for otherwise unmatched invocations.
type Method interface {
	Stub() StubbedMethodCall
	Mock() MockedMethodCall
	Spy() SpyMethodCall
	Fake(impl any) FakeMethodCall
	// Reflect is the method's signature
	Reflect() reflect.Method
}

type method struct {
	receiver *TestDouble
	m        reflect.Method

	// guards calls and fallback, and is held for the whole of an invocation
	mutex *sync.Mutex
	calls []MethodCall
	// built by the double's default call the first time an invocation matches nothing in calls
	fallback MethodCall
}

func newMethod(d *TestDouble, m reflect.Method) *method {
	return &method{receiver: d, m: m, mutex: &sync.Mutex{}}
}

func (m *method) t() T { return m.receiver.t }

func (m *method) trace() bool { return m.receiver.trace }

func (m *method) Stub() StubbedMethodCall { return newStubbedMethodCall(m) }

func (m *method) Mock() MockedMethodCall { return newMockedMethodCall(m) }

func (m *method) Spy() SpyMethodCall { return newSpyMethodCall(m) }

func (m *method) Fake(impl any) FakeMethodCall { return newFakeMethodCall(m, impl) }

func (m *method) Reflect() reflect.Method { return m.m }

func (m *method) String() string {
	return fmt.Sprintf("%v.%s", m.receiver, m.m.Name)
}

func (m *method) addMethodCall(call MethodCall) {
	m.calls = append(m.calls, call)
}

// all is the registered calls in registration order, then the fallback if it has been built
func (m *method) all() []MethodCall {
	if m.fallback == nil {
		return m.calls
	}
	all := make([]MethodCall, 0, len(m.calls)+1)
	return append(append(all, m.calls...), m.fallback)
}

// registered returns the first registered call matching args, searching newest first if configured with MostRecentFirst
func (m *method) registered(args []any) MethodCall {
	last := len(m.calls) - 1
	for i := range m.calls {
		if m.receiver.mostRecentFirst {
			i = last - i
		}
		if m.calls[i].matches(args) {
			return m.calls[i]
		}
	}
	return nil
}

func (m *method) match(args []any) MethodCall {
	if call := m.registered(args); call != nil {
		return call
	}

	if m.fallback == nil {
		if m.fallback = m.receiver.defaultCall(m); m.fallback == nil {
			m.t().Fatalf("Nil DefaultMethodCall returned for %v", m)
		}
	}
	if !m.fallback.matches(args) {
		m.t().Fatalf("Method %v expects default call %v to match %v", m, m.fallback, args)
	}
	return m.fallback
}

func (m *method) invoke(args []any) []any {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	call := m.match(args)

	if m.trace() {
		m.t().Helper()
		defer func() {
			// still trace the call when the matched implementation panics
			if e := recover(); e != nil {
				m.t().Logf("Called %s(%v) => panic! %v", call, args, e)
				panic(e)
			}
		}()
	}

	returns, err := call.spy(args)
	if err != nil {
		m.t().Fatalf("No return values available for method %v(%v) %s", call, args, err.Error())
		return returns
	}
	if m.trace() {
		m.t().Logf("Called %s(%v) => %v", call, args, returns)
	}
	AssertMethodReturnValues(m.t(), m.m, returns)
	return returns
}
