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
)

// defaults installs the built-in matcher and return value integrations, zeroed default return values
// and a default call that mocks the method to be called Never().
func defaults(d *TestDouble) {
	d.SetMatcherIntegration(func(t T, m reflect.Method, _ MethodArgsMatcher, matchers ...any) MethodArgsMatcher {
		t.Helper()
		return NewMatcherForMethod(t, m, matchers...)
	})
	d.SetReturnValuesIntegration(func(t T, m reflect.Method, _ ReturnValues, values ...any) ReturnValues {
		t.Helper()
		return NewReturnsForMethod(t, m, values...)
	})
	d.SetDefaultReturnValues(func(m Method) ReturnValues {
		return ZeroValues(m.Reflect().Type)
	})
	d.SetDefaultCall(func(m Method) MethodCall {
		return m.Mock().Expect(Never())
	})
}

/*
Loose configures a TestDouble so that calls not matching any registered call are stubbed.

They return the default return values (zero values unless SetDefaultReturnValues is used),
and are not considered by Verify()
*/
func Loose() func(*TestDouble) {
	return func(d *TestDouble) {
		d.SetDefaultCall(func(m Method) MethodCall {
			return m.Stub()
		})
	}
}

/*
Strict configures a TestDouble to fatally fail the test as soon as it receives a call that does not match
any registered call.

This includes calls to a Mock whose expectation is already complete.
*/
func Strict() func(*TestDouble) {
	return func(d *TestDouble) {
		d.SetDefaultCall(func(m Method) MethodCall {
			return &unexpectedMethodCall{m.(*method)}
		})
	}
}

// MostRecentFirst configures a TestDouble to match invocations against the most recently registered calls first.
//
// Useful to override a general Stub registered in a shared setup with a more specific one.
func MostRecentFirst() func(*TestDouble) {
	return func(d *TestDouble) {
		d.mostRecentFirst = true
	}
}

type unexpectedMethodCall struct {
	*method
}

func (c *unexpectedMethodCall) matches(_ []any) bool {
	return true
}

func (c *unexpectedMethodCall) spy(args []any) ([]any, error) {
	c.t().Helper()
	c.t().Fatalf("Strict %v received unexpected call with args %v", c.method, args)
	return nil, fmt.Errorf("unexpected call to strict %v", c.method)
}

func (c *unexpectedMethodCall) verify(T) {
	//Fails at call time, nothing to verify
}

func (c *unexpectedMethodCall) String() string {
	return fmt.Sprintf("%v (strict)", c.method)
}
