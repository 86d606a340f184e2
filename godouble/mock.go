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

// MockedMethodCall is a MethodCall with an Expectation on how often, and in what order, it is invoked
type MockedMethodCall interface {
	// Matching restricts the arguments this call will match, see StubbedMethodCall.Matching()
	Matching(matchers ...any) MockedMethodCall

	// After restricts this call to match only once all of calls are complete
	After(calls ...MockedMethodCall) MockedMethodCall

	// Returning sets the values returned by this call, see StubbedMethodCall.Returning()
	Returning(values ...any) MockedMethodCall

	// Calling sets callbacks run on every invocation of this call, see StubbedMethodCall.Calling()
	Calling(callbacks ...any) MockedMethodCall

	// Expect sets the number of invocations asserted by Verify(). Without it the mock behaves as a Stub.
	Expect(expect Expectation) MockedMethodCall

	MethodCall

	complete() bool
}

type mockedMethodCall struct {
	*stubbedMethodCall
	expect Expectation
	after  []MockedMethodCall
	count  int
}

func newMockedMethodCall(m *method) MockedMethodCall {
	return &mockedMethodCall{stubbedMethodCall: newStubbedMethodCall(m)}
}

func (c *mockedMethodCall) Matching(matchers ...any) MockedMethodCall {
	c.t().Helper()
	c.stubbedMethodCall.Matching(matchers...)
	return c
}

func (c *mockedMethodCall) After(calls ...MockedMethodCall) MockedMethodCall {
	c.after = append(c.after, calls...)
	return c
}

func (c *mockedMethodCall) Returning(values ...any) MockedMethodCall {
	c.stubbedMethodCall.Returning(values...)
	return c
}

func (c *mockedMethodCall) Calling(callbacks ...any) MockedMethodCall {
	c.t().Helper()
	c.stubbedMethodCall.Calling(callbacks...)
	return c
}

func (c *mockedMethodCall) Expect(expect Expectation) MockedMethodCall {
	c.expect = expect
	return c
}

// complete is true once a Completion expectation will accept no more calls
func (c *mockedMethodCall) complete() bool {
	completion, isa := c.expect.(Completion)
	return isa && completion.Complete(c.count)
}

func (c *mockedMethodCall) ready() bool {
	for _, call := range c.after {
		if !call.complete() {
			return false
		}
	}
	return true
}

func (c *mockedMethodCall) matches(args []any) bool {
	return !c.complete() && c.ready() && c.stubbedMethodCall.matches(args)
}

func (c *mockedMethodCall) spy(args []any) ([]any, error) {
	c.count++
	if c.trace() && c.complete() {
		c.t().Logf("%v completed expectations after %d calls", c, c.count)
	}
	return c.stubbedMethodCall.spy(args)
}

func (c *mockedMethodCall) verify(t T) {
	t.Helper()
	if c.expect != nil && !c.expect.Met(c.count) {
		t.Errorf("%v expected %v, found %d calls", c.stubbedMethodCall, c.expect, c.count)
	}
}

// ExpectInOrder chains calls with After() so each only matches once the one before it is complete
func ExpectInOrder(calls ...MockedMethodCall) {
	for i := 1; i < len(calls); i++ {
		calls[i].After(calls[i-1])
	}
}
