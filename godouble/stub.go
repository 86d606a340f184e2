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
)

// StubbedMethodCall is a MethodCall that matches a given set of arguments and returns pre-defined values.
type StubbedMethodCall interface {
	/*
		Matching restricts the arguments this call will match.

		With a single Matcher (or MethodArgsMatcher) that matcher is used as is. A func is converted via Func()
		with any remaining matchers as its description. Otherwise each matcher is one argument, converted via Func()
		for funcs, Eql() for plain values, and the list is sent to Args().

		No matchers at all matches any arguments, as does a call that never calls Matching().
		The TestDouble's MatcherForMethod can change these conversions.
	*/
	Matching(matchers ...any) StubbedMethodCall

	// Returning sets the values returned by this call. Plain values are converted via Values(),
	// a single ReturnValues (eg Computed, Sequence) is used as is.
	Returning(returnValues ...any) StubbedMethodCall

	/*
		Calling sets callbacks run on every invocation of this call, before return values are produced.

		Each callback is a func with no results taking either no arguments
		or arguments compatible with the method.
	*/
	Calling(callbacks ...any) StubbedMethodCall

	MethodCall
}

type stubbedMethodCall struct {
	*method
	matcher   MethodArgsMatcher
	returns   ReturnValues
	callbacks []callback
}

func newStubbedMethodCall(m *method) *stubbedMethodCall {
	return &stubbedMethodCall{method: m}
}

func (c *stubbedMethodCall) Matching(matchers ...any) StubbedMethodCall {
	t := c.t()
	t.Helper()
	c.matcher = c.receiver.matcher(t, c.m, c.matcher, matchers...)
	return c
}

func (c *stubbedMethodCall) Returning(returnValues ...any) StubbedMethodCall {
	c.returns = c.receiver.returns(c.t(), c.m, c.returns, returnValues...)
	return c
}

func (c *stubbedMethodCall) Calling(callbacks ...any) StubbedMethodCall {
	t := c.t()
	t.Helper()
	for _, fn := range callbacks {
		c.callbacks = append(c.callbacks, newCallback(t, c.m, fn))
	}
	return c
}

func (c *stubbedMethodCall) matches(args []any) bool {
	return c.matcher == nil || c.matcher.Matches(args...)
}

func (c *stubbedMethodCall) spy(args []any) ([]any, error) {
	for _, cb := range c.callbacks {
		cb.call(args)
	}
	if c.returns == nil {
		c.returns = c.receiver.defaultReturnValues(c.method)
	}
	return receive(c.returns, args)
}

// stubs have nothing to verify
func (c *stubbedMethodCall) verify(T) {}

func (c *stubbedMethodCall) String() string {
	if c.matcher == nil {
		return c.method.String()
	}
	return fmt.Sprintf("%v matching %v", c.method, c.matcher)
}
