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

package volume

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNew_ClampsInitialValue(t *testing.T) {
	tests := []struct {
		name     string
		initial  int
		expected int
	}{
		{"InRange", 50, 50},
		{"Min", 0, 0},
		{"Max", 100, 100},
		{"BelowMin", -20, 0},
		{"AboveMax", 250, 100},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, New(test.initial).Value())
		})
	}
}

func TestController_Sequence(t *testing.T) {
	c := NewDefault()
	require.Equal(t, "50", c.CurrentVolume())

	steps := []struct {
		op       func(int) (int, error)
		amount   int
		expected int
	}{
		{c.Quieter, 10, 40},
		{c.Louder, 20, 60},
		{c.Quieter, 1000, 0},
		{c.Louder, 1000, 100},
	}

	for i, step := range steps {
		v, err := step.op(step.amount)
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, step.expected, v, "step %d", i)
		assert.Equal(t, strconv.Itoa(step.expected), c.CurrentVolume(), "step %d", i)
	}
}

func TestController_ZeroIsNoOp(t *testing.T) {
	c := New(37)

	v, err := c.Louder(0)
	require.NoError(t, err)
	assert.Equal(t, 37, v)

	v, err = c.Quieter(0)
	require.NoError(t, err)
	assert.Equal(t, 37, v)
}

func TestController_NegativeAmountIsOutOfRange(t *testing.T) {
	c := NewDefault()

	_, err := c.Louder(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Contains(t, err.Error(), "louder(-1)")

	_, err = c.Quieter(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Contains(t, err.Error(), "quieter(-1)")

	assert.Equal(t, "50", c.CurrentVolume(), "failed calls must not change the volume")
}

func TestController_HugeAmountsDoNotOverflow(t *testing.T) {
	c := New(99)

	v, err := c.Louder(math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, Max, v)

	v, err = c.Quieter(math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, Min, v)
}

func TestController_StaysInRange_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := New(rapid.IntRange(Min, Max).Draw(rt, "initial"))
		steps := rapid.IntRange(0, 50).Draw(rt, "steps")

		for i := 0; i < steps; i++ {
			amount := rapid.IntRange(0, 250).Draw(rt, "amount")
			before := c.Value()

			var v int
			var err error
			if rapid.Bool().Draw(rt, "louder") {
				v, err = c.Louder(amount)
				if err == nil && v != min(before+amount, Max) {
					rt.Fatalf("Louder(%d) from %d returned %d", amount, before, v)
				}
			} else {
				v, err = c.Quieter(amount)
				if err == nil && v != max(before-amount, Min) {
					rt.Fatalf("Quieter(%d) from %d returned %d", amount, before, v)
				}
			}

			if err != nil {
				rt.Fatalf("unexpected error %v", err)
			}
			if v < Min || v > Max {
				rt.Fatalf("volume %d left the range [%d,%d]", v, Min, Max)
			}
			if c.CurrentVolume() != strconv.Itoa(v) {
				rt.Fatalf("CurrentVolume() = %q, want %q", c.CurrentVolume(), strconv.Itoa(v))
			}
		}
	})
}

func TestController_NegativeNeverChangesVolume_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := New(rapid.IntRange(Min, Max).Draw(rt, "initial"))
		before := c.Value()
		amount := rapid.IntRange(math.MinInt, -1).Draw(rt, "amount")

		if _, err := c.Louder(amount); err == nil {
			rt.Fatalf("Louder(%d) should fail", amount)
		}
		if _, err := c.Quieter(amount); err == nil {
			rt.Fatalf("Quieter(%d) should fail", amount)
		}
		if c.Value() != before {
			rt.Fatalf("volume changed from %d to %d", before, c.Value())
		}
	})
}
