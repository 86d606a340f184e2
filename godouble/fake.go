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
	"reflect"
)

// FakeMethodCall records invocations like a Spy but delegates them to an implementation func
type FakeMethodCall interface {
	// every call recorded so far
	RecordedCalls
	MethodCall
}

type fakeMethodCall struct {
	*spyMethodCall
	impl reflect.Value
}

func newFakeMethodCall(m *method, impl any) *fakeMethodCall {
	t := m.t()
	t.Helper()
	fn := reflect.ValueOf(impl)
	var ft reflect.Type
	if impl != nil {
		ft = fn.Type()
	}
	AssertMethodInputs(t, m.m, ft)
	AssertMethodOutputs(t, m.m, ft)
	return &fakeMethodCall{spyMethodCall: newSpyMethodCall(m), impl: fn}
}

func (c *fakeMethodCall) spy(args []any) ([]any, error) {
	// recorded before calling impl so a panicking fake is still verifiable
	c.recorded = append(c.recorded, newRecordedCall(args))
	return interfaces(callFunc(c.impl, args)), nil
}
