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

package koans

import (
	"testing"
	"time"

	. "github.com/lwoggardner/doublekoans/godouble" //Note the dot import which assists with readability
	"github.com/lwoggardner/doublekoans/volume"
	"github.com/stretchr/testify/assert"
)

func TestMockExpectsAnExactNumberOfCalls(t *testing.T) {
	d := NewVolumeDouble(t)
	defer d.Verify()

	//Setup
	d.Mock("CurrentVolume").Expect(Exactly(3)).Returning("50")

	//Exercise
	for i := 0; i < 3; i++ {
		d.CurrentVolume()
	}

	//Verify (deferred)
}

func TestMockReportsUnmetExpectations(t *testing.T) {
	kt := newKoanT(t)
	d := NewVolumeDouble(kt)
	d.Mock("Louder").Matching(10).Expect(Twice())

	_, _ = d.Louder(10)

	d.Verify()
	assert.Len(t, kt.errors, 1)
}

func TestMocksCanBeExpectedInOrder(t *testing.T) {
	kt := newKoanT(t)
	d := NewVolumeDouble(kt, Strict())
	ExpectInOrder(
		d.Mock("Louder").Expect(Once()),
		d.Mock("Quieter").Expect(Once()),
	)

	assert.True(t, kt.failsFatally(func() { _, _ = d.Quieter(1) }), "Quieter before Louder")
	_, _ = d.Louder(1)
	_, _ = d.Quieter(1)
	d.Verify()
	assert.Empty(t, kt.errors)
}

func TestStubMatchesArguments(t *testing.T) {
	//Setup
	d := NewVolumeDouble(t)

	d.Stub("Louder").Matching(Args(Eql(5))).Returning(55, nil)
	d.Stub("Louder").Matching(Args(Eql(10))).Returning(60, nil)

	//Exercise
	r, err := d.Louder(10)

	//Verify
	assert.NoError(t, err)
	assert.Equal(t, 60, r)
}

func TestSpyRecordsCalls(t *testing.T) {
	//Setup
	d := NewVolumeDouble(t)

	spy := d.Spy("Quieter").Returning(0, nil)

	//Exercise
	_, _ = d.Quieter(5)
	r, err := d.Quieter(10)

	//Verify
	spy.Expect(Twice())
	spy.Matching(Eql(10)).Expect(Once())
	spy.Slice(1, 2).After(spy.Slice(0, 1)).Expect(Once())
	assert.NoError(t, err)
	assert.Zero(t, r)
}

func TestFakeImplementsTheMethod(t *testing.T) {
	//Setup
	d := NewAdditionDouble(t)
	fake := d.Fake("Add", func(left, right int) int { return left + right })

	//Exercise
	d.Add(1, 1)
	r := d.Add(10, 5)

	//Verify
	//fake.Matching returns a subset of calls to the fake
	//which can then be validated in terms of the number.
	fake.Expect(Twice())
	fake.Matching(func(left, right int) bool { return left == 10 }).Expect(Once())
	assert.Equal(t, 15, r)
}

func TestRealControllerAsAFake(t *testing.T) {
	c := volume.New(20)
	d := NewVolumeDouble(t)
	d.Fake("Louder", c.Louder)
	d.Fake("CurrentVolume", c.CurrentVolume)

	_, _ = d.Louder(15)

	assert.Equal(t, "35", d.CurrentVolume())
	assert.Equal(t, 35, c.Value())
}

func TestReturnChannel(t *testing.T) {
	//Setup
	d := NewVolumeDouble(t)
	returns := NewReturnChannel()
	d.Stub("CurrentVolume").Returning(returns)
	go func() {
		returns.Send("One")
		returns.Send("Two")
		returns.Close()
	}()

	//Exercise
	r1 := d.CurrentVolume()
	r2 := d.CurrentVolume()

	//Verify
	assert.Equal(t, "One", r1)
	assert.Equal(t, "Two", r2)
}

func TestSequenceOfReturnValues(t *testing.T) {
	d := NewVolumeDouble(t)
	d.Stub("Louder").Returning(Sequence(
		Values(10, nil),
		Delayed(Values(20, nil), time.Millisecond),
	))

	first, _ := d.Louder(5)
	second, _ := d.Louder(5)

	assert.Equal(t, 10, first)
	assert.Equal(t, 20, second)
}
