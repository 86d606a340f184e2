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
/*
Package godouble implements test doubles for Go interfaces.

A TestDouble stands in for an interface while the system under test is exercised. Each method of the
interface is configured by name as a Stub, Mock, Spy or Fake, following the vocabulary of

  - http://xunitpatterns.com/Test%20Double.html
  - https://martinfowler.com/articles/mocksArentStubs.html

The struct that implements the interface by delegating to TestDouble.Invoke is usually generated, see doublegen.

# Stub

A Stub returns given values for calls with matching arguments. Use it when the values returned to the system under
test are enough to show it works.

	import (
		"testing"

		. "github.com/lwoggardner/doublekoans/godouble" // dot import reads well in Setup code
	)

	func TestStub(t *testing.T) {
		d := NewVolumeDouble(t)
		d.Stub("Louder").Matching(10).Returning(60, nil)

		// exercise with d in place of a volume.Controller, then assert on the results
	}

# Mock

A Mock is a Stub that also expects to be called a given number of times. Verify, usually deferred, reports any
expectation that was not met.

	d := NewVolumeDouble(t)
	defer d.Verify()

	d.Mock("Louder").Matching(10).Returning(60, nil).Expect(Exactly(3))
	d.Mock("Quieter").Expect(Never())

# Spy

A Spy records every call so that arguments and counts are asserted after the exercise, rather than set up front.

	spy := d.Spy("Louder").Returning(0, nil)
	// exercise ...
	spy.Expect(Twice())
	spy.Matching(10).Expect(Once())

# Fake

A Fake is a Spy that delegates to a real implementation of the method.

	d := NewAdditionDouble(t)
	add := d.Fake("Add", func(left, right int) int { return left + right })
	// exercise ...
	add.Matching(10, AnyValue()).Expect(Once())

# Matchers

Arguments are matched with Eql, Func, Nil, Len, IsA, In, InRange, Regexp and AnyValue, and combined with
All, Any and Not. A plain value is compared with Eql and a plain func is wrapped with Func.

	d.Stub("Louder").Matching(InRange(0, 100)).Returning(50, nil)
	spy.Matching(Regexp("^J")).Expect(AtLeastOnce())

# Unconfigured calls

A call that matches nothing registered returns zero values and is reported by Verify as a Mock that expected
Never to be called. Loose() silently returns zero values instead, and Strict() fatally fails the test at the
moment of the call.

	d := NewVolumeDouble(t, Strict())
	d.Stub("CurrentVolume").Returning("100")

The first registered call that matches wins, unless the double is configured with MostRecentFirst().

# Computed values, callbacks and panics

Values are fixed during Setup. Computed calls a func on every invocation, optionally with the invocation
arguments. Calling runs callbacks before values are returned, and Panics makes the method panic.

	d.Stub("Louder").
		Matching(func(amount int) bool { return amount >= 0 }).
		Calling(func() { louderCalled = true }).
		Returning(Computed(func(amount int) (int, error) { return amount, nil }))
	d.Stub("CurrentVolume").Returning(Panics(errors.New("broken")))

# Properties

A getter Name() with setter SetName(string) is faked with a stored value by Property, or every such pair by
Properties. Reads and writes are recorded as per Spy.

	name := d.Property("Name", "John")
	// exercise ...
	name.Set().Matching("Jane").Expect(Once())
	name.Get().Expect(AtLeastOnce(), "name was never read")
*/
package godouble
