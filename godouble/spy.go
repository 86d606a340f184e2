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
	"sort"
	"strings"
	"sync/atomic"
)

// orders every recorded call across all doubles
var tick uint64

// SpyMethodCall is a MethodCall that records method invocations for later verification
type SpyMethodCall interface {
	// Returning sets the values returned by recorded calls, see StubbedMethodCall.Returning()
	Returning(values ...any) SpyMethodCall

	// Calling sets callbacks run on every recorded invocation, see StubbedMethodCall.Calling()
	Calling(callbacks ...any) SpyMethodCall

	// every call recorded so far
	RecordedCalls

	MethodCall
}

// RecordedCalls is a set of recorded invocations to be verified.
//
// Subsets are narrowed with Matching, Slice and After, then asserted with Expect. Each subset
// describes how it was derived in failure messages.
type RecordedCalls interface {
	// Matching returns the subset of calls whose arguments match, with matchers as per StubbedMethodCall.Matching()
	Matching(matchers ...any) RecordedCalls

	/*
		Slice returns the calls from index from up to but excluding index to, like a go slice.

		Indexes past the end are allowed and give a short (or empty) subset.
		Use NumCalls() to slice from the end, eg the last 3 calls are r.Slice(r.NumCalls()-3, r.NumCalls())
	*/
	Slice(from int, to int) RecordedCalls

	// After returns the subset of these calls that were invoked after all of otherCalls
	After(otherCalls RecordedCalls) RecordedCalls

	// Expect asserts the number of calls in this set.
	// The optional explanation is formatted (via fmt.Sprint) into the error reported when the expectation is not met
	Expect(expect Expectation, explanation ...any)

	// NumCalls returns the number of calls in this set. Prefer Expect() for assertions.
	NumCalls() int

	calls() []*recordedCall
	describe(sb *strings.Builder, depth int)
}

type recordedCall struct {
	tick uint64
	args []any
}

func newRecordedCall(args []any) *recordedCall {
	return &recordedCall{args: args, tick: atomic.AddUint64(&tick, 1)}
}

type spyMethodCall struct {
	*stubbedMethodCall
	recorded []*recordedCall

	// how this subset was derived, within is nil for the spy itself
	label  string
	within *spyMethodCall
	after  RecordedCalls
}

func newSpyMethodCall(m *method) *spyMethodCall {
	return &spyMethodCall{
		stubbedMethodCall: newStubbedMethodCall(m),
		label:             fmt.Sprintf("all calls to %v", m),
	}
}

func (c *spyMethodCall) subset(calls []*recordedCall, label string) *spyMethodCall {
	return &spyMethodCall{
		stubbedMethodCall: c.stubbedMethodCall,
		recorded:          calls,
		label:             label,
		within:            c,
	}
}

func (c *spyMethodCall) calls() []*recordedCall {
	return c.recorded
}

func (c *spyMethodCall) describe(sb *strings.Builder, depth int) {
	line := func(depth int, s string) {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(s)
	}
	line(depth, c.label)
	if c.after != nil {
		c.after.describe(sb, depth+1)
		line(depth, "within")
	}
	if c.within != nil {
		c.within.describe(sb, depth+1)
	}
}

func (c *spyMethodCall) String() string {
	sb := &strings.Builder{}
	c.describe(sb, 0)
	return sb.String()
}

func (c *spyMethodCall) Returning(values ...any) SpyMethodCall {
	c.stubbedMethodCall.Returning(values...)
	return c
}

func (c *spyMethodCall) Calling(callbacks ...any) SpyMethodCall {
	c.t().Helper()
	c.stubbedMethodCall.Calling(callbacks...)
	return c
}

func (c *spyMethodCall) Expect(expect Expectation, explanation ...any) {
	c.t().Helper()
	count := c.NumCalls()
	if expect.Met(count) {
		return
	}
	msg := fmt.Sprintf("%v expected %v, found %d calls", c, expect, count)
	if len(explanation) > 0 {
		msg += ": " + fmt.Sprint(explanation...)
	}
	c.t().Errorf("%s", msg)
}

func (c *spyMethodCall) NumCalls() int {
	return len(c.recorded)
}

func (c *spyMethodCall) Matching(matchers ...any) RecordedCalls {
	c.t().Helper()
	matcher := c.receiver.matcher(c.t(), c.m, nil, matchers...)

	var matched []*recordedCall
	for _, call := range c.recorded {
		if matcher.Matches(call.args...) {
			matched = append(matched, call)
		}
	}
	return c.subset(matched, fmt.Sprintf("calls matching %s within", matcher))
}

func (c *spyMethodCall) Slice(from int, to int) RecordedCalls {
	if from < 0 || to < 0 || from > to {
		c.t().Fatalf("Invalid Slice of RecordedCalls %v[%d:%d]", c, from, to)
	}
	n := len(c.recorded)
	switch {
	case from > n:
		return c.subset(nil, fmt.Sprintf("calls[%d>=len():] of", from))
	case to > n:
		return c.subset(c.recorded[from:], fmt.Sprintf("calls[%d:] of", from))
	default:
		return c.subset(c.recorded[from:to], fmt.Sprintf("calls[%d:%d] of", from, to))
	}
}

func (c *spyMethodCall) After(otherCalls RecordedCalls) RecordedCalls {
	other := otherCalls.calls()

	// every call is after an empty set
	after := c.recorded
	if len(other) > 0 {
		lastTick := other[len(other)-1].tick
		first := sort.Search(len(c.recorded), func(i int) bool { return c.recorded[i].tick > lastTick })
		after = c.recorded[first:]
	}

	result := c.subset(after, "calls after")
	result.after = otherCalls
	return result
}

func (c *spyMethodCall) matches(_ []any) bool {
	return true
}

// spy runs with the method mutex held
func (c *spyMethodCall) spy(args []any) ([]any, error) {
	c.recorded = append(c.recorded, newRecordedCall(args))
	return c.stubbedMethodCall.spy(args)
}
