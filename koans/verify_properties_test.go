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

	. "github.com/lwoggardner/doublekoans/godouble"
	"github.com/lwoggardner/doublekoans/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySetEnsuresAPropertyIsSetToASpecificValue(t *testing.T) {
	person := NewPersonDouble(t)
	properties := person.Properties()
	require.Contains(t, properties, "Name")

	person.SetName("John")

	properties["Name"].Set().Matching("John").Expect(Once())
	assert.Equal(t, "John", person.Name())
	assert.Equal(t, "John", properties["Name"].Value())
}

func TestVerifyGetReportsAPropertyThatWasNeverRead(t *testing.T) {
	kt := newKoanT(t)
	person := NewPersonDouble(kt)
	age := person.Property("Age", 24)

	age.Get().Expect(AtLeast(1), "The user's age was never checked.")

	require.Len(t, kt.errors, 1)
	assert.Contains(t, kt.errors[0], "The user's age was never checked.")
}

func TestBuyBeerChecksThePersonsAge(t *testing.T) {
	person := NewPersonDouble(t)
	age := person.Property("Age", 24)

	beer := shop.BuyBeer(person)

	age.Get().Expect(Once(), "verify the user's age was checked")
	assert.NotNil(t, beer)
}

func TestBuyBeerRefusesUnderageBuyers(t *testing.T) {
	person := NewPersonDouble(t)
	spy := person.Spy("Age").Returning(shop.LegalDrinkingAge - 1)

	assert.Nil(t, shop.BuyBeer(person))
	spy.Expect(Once())
}
