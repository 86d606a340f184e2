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

import "fmt"

// An Expectation verifies the number of times a call was invoked
type Expectation interface {
	Met(count int) bool
}

// A Completion is an Expectation that knows when further calls can no longer meet it.
//
// A Mock stops matching invocations once its Completion is complete, letting the next matching call take over.
type Completion interface {
	Expectation
	Complete(count int) bool
}

// Never expects no calls at all.
//
// It is deliberately not a Completion so a Mock expecting Never() keeps matching, and Verify reports every call.
func Never() Expectation {
	return never{}
}

// Exactly expects n calls and is complete after n
func Exactly(n int) Completion {
	return between{n, n}
}

// Once is Exactly(1)
func Once() Completion {
	return Exactly(1)
}

// Twice is Exactly(2)
func Twice() Completion {
	return Exactly(2)
}

// AtLeast expects n or more calls. It is never complete.
func AtLeast(n int) Expectation {
	return atLeast(n)
}

// AtLeastOnce is AtLeast(1)
func AtLeastOnce() Expectation {
	return AtLeast(1)
}

// AtMost expects no more than n calls and is complete after n
func AtMost(n int) Completion {
	return Between(0, n)
}

// AtMostOnce is AtMost(1)
func AtMostOnce() Completion {
	return AtMost(1)
}

// Between expects from min to max calls inclusive and is complete after max
func Between(min int, max int) Completion {
	return between{min, max}
}

type never struct{}

func (never) Met(count int) bool { return count == 0 }

func (never) String() string { return "never" }

type atLeast int

func (n atLeast) Met(count int) bool { return count >= int(n) }

func (n atLeast) String() string { return fmt.Sprintf("at least %d", int(n)) }

type between struct {
	min, max int
}

func (b between) Met(count int) bool {
	return count >= b.min && count <= b.max
}

func (b between) Complete(count int) bool {
	return count >= b.max
}

func (b between) String() string {
	switch {
	case b.min == b.max:
		return fmt.Sprintf("exactly %d", b.max)
	case b.min <= 0:
		return fmt.Sprintf("at most %d", b.max)
	default:
		return fmt.Sprintf("between %d and %d", b.min, b.max)
	}
}
