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

// Package shop sells beer to people old enough to drink it.
package shop

// LegalDrinkingAge is the minimum Age of a buyer
const LegalDrinkingAge = 21

// Person is a buyer with a Name and an Age that can be read and changed
type Person interface {
	Name() string
	SetName(name string)
	Age() int
	SetAge(age int)
}

// Beer is what a buyer of legal age receives
type Beer struct{}

// BuyBeer returns a Beer for buyer, or nil if buyer is younger than LegalDrinkingAge.
//
// The buyer's age is read exactly once.
func BuyBeer(buyer Person) *Beer {
	if buyer.Age() >= LegalDrinkingAge {
		return &Beer{}
	}
	return nil
}
