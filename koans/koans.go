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
Package koans is a set of lessons on test doubles, each one a test that passes by demonstrating a godouble feature.

The lessons double volume.Volume, shop.Person and Addition through the generated doubles in doubles_gen.go.
Regenerate them after changing any of those interfaces with

	go generate ./koans
*/
package koans

//go:generate go run -tags doublegen ./doublegen

// Addition has a method that takes more than one parameter.
type Addition interface {
	Add(left, right int) int
}
