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

package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type person struct {
	name  string
	age   int
	reads int
}

func (p *person) Name() string        { return p.name }
func (p *person) SetName(name string) { p.name = name }
func (p *person) Age() int            { p.reads++; return p.age }
func (p *person) SetAge(age int)      { p.age = age }

func TestBuyBeer(t *testing.T) {
	tests := []struct {
		name string
		age  int
		sold bool
	}{
		{"Child", 12, false},
		{"JustUnder", LegalDrinkingAge - 1, false},
		{"JustOfAge", LegalDrinkingAge, true},
		{"Adult", 45, true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			buyer := &person{name: "John", age: test.age}
			beer := BuyBeer(buyer)

			if test.sold {
				assert.NotNil(t, beer)
			} else {
				assert.Nil(t, beer)
			}
			assert.Equal(t, 1, buyer.reads, "age should be checked exactly once")
		})
	}
}
