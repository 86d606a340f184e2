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
	"testing"
)

func TestLoose_ReturnsZeroValuesAndVerifies(t *testing.T) {
	doubleT := NewTDouble(t)
	errorf := doubleT.Spy("Errorf")
	doubleT.Stub("Helper")

	d1 := newMixerDouble(doubleT, Loose())

	if i := d1.level("unregistered"); i != 0 {
		t.Errorf("Expected 0, Got %d", i)
	}
	if i, e := d1.fade(1, "x"); i != 0 || e != nil {
		t.Errorf("Expected 0, nil Got %d, %v", i, e)
	}
	d1.Verify()

	errorf.Expect(Never())
}

func TestLoose_UsesDefaultReturnValues(t *testing.T) {
	d1 := newMixerDouble(t, Loose(), func(c *TestDouble) {
		c.SetDefaultReturnValues(func(m Method) ReturnValues {
			return Values(42)
		})
	})

	if i := d1.master(); i != 42 {
		t.Errorf("Expected 42, Got %d", i)
	}
}

func TestStrict_FailsFatally(t *testing.T) {
	tests := []struct {
		name        string
		calls       func(d *mixerDouble)
		expectedMsg string
	}{
		{"OnUnexpectedCall", func(d *mixerDouble) { d.level("unregistered") }, `Strict.*call.*unexpected`},
		{"OnUnmatchedArgs", func(d *mixerDouble) {
			d.Stub("level").Matching("known").Returning(7)
			d.level("unknown")
		}, `Strict.*\[unknown\]`},
		{"OnceMockIsComplete", func(d *mixerDouble) {
			d.Mock("master").Returning(3).Expect(Once())
			d.master()
			d.master()
		}, `Strict.*master`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			expectFatal(t, test.expectedMsg, func(tDouble *TDouble) {
				test.calls(newMixerDouble(tDouble, Strict()))
			})
		})
	}
}

func TestStrict_AllowsRegisteredCalls(t *testing.T) {
	d1 := newMixerDouble(t, Strict())
	d1.Stub("level").Matching("known").Returning(7)

	if i := d1.level("known"); i != 7 {
		t.Errorf("Expected 7, Got %d", i)
	}
}

func TestMostRecentFirst(t *testing.T) {
	d1 := newMixerDouble(t, MostRecentFirst())

	d1.Stub("level").Returning(10)
	d1.Stub("level").Returning(50)
	d1.Stub("level").Matching("first").Returning(1)

	if i := d1.level("first"); i != 1 {
		t.Errorf("Expected 1, Got %d", i)
	}
	if i := d1.level("second"); i != 50 {
		t.Errorf("Expected the most recent stub to return 50, Got %d", i)
	}
}

func TestFirstRegisteredWinsByDefault(t *testing.T) {
	d1 := newMixerDouble(t)

	d1.Stub("level").Returning(10)
	d1.Stub("level").Returning(50)

	if i := d1.level("any"); i != 10 {
		t.Errorf("Expected the first stub to return 10, Got %d", i)
	}
}

func TestMostRecentFirst_DefaultCallNeverShadowsLaterRegistrations(t *testing.T) {
	d1 := newMixerDouble(t, Loose(), MostRecentFirst())

	if i := d1.level("before"); i != 0 {
		t.Errorf("Expected 0, Got %d", i)
	}
	d1.Stub("level").Returning(5)
	if i := d1.level("after"); i != 5 {
		t.Errorf("Expected 5 from the stub registered after the default call was generated, Got %d", i)
	}
}

func TestSpy_RetrievesDefaultSpy(t *testing.T) {
	d1 := newMixerDouble(t, func(c *TestDouble) {
		c.SetDefaultCall(func(m Method) MethodCall {
			return m.Spy()
		})
	})

	d1.level("a")
	d1.level("b")

	d1.Spy("level").Expect(Twice())
}
