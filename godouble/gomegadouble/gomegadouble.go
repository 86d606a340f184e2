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
Package gomegadouble integrates gomega matchers with godouble.

 d := koans.NewVolumeDouble(t, gomegadouble.Configure)
 d.Stub("Louder").Matching(BeNumerically(">=", 0)).Returning(10, nil)

Without Configure, wrap gomega matchers explicitly with Should

 d.Stub("Louder").Matching(Should(BeNumerically(">=", 0))).Returning(10, nil)
*/
package gomegadouble

import (
	"fmt"
	"reflect"

	"github.com/lwoggardner/doublekoans/godouble"
	"github.com/onsi/gomega/types"
)

type gomegaMatcher struct {
	types.GomegaMatcher
}

// Should adapts a gomega matcher to match a single method argument.
//
// A matcher that returns an error (eg for an argument of the wrong type) does not match.
func Should(matcher types.GomegaMatcher) godouble.SingleArgMatcher {
	return gomegaMatcher{matcher}
}

func (g gomegaMatcher) Matches(args ...any) bool {
	if len(args) != 1 {
		return false
	}
	success, err := g.Match(args[0])
	return err == nil && success
}

// ForType accepts any type, gomega matchers are checked at match time
func (g gomegaMatcher) ForType(_ godouble.T, _ reflect.Type) {
}

func (g gomegaMatcher) String() string {
	return fmt.Sprintf("Should(%T)", g.GomegaMatcher)
}

func convert(matchers []any) []any {
	converted := make([]any, len(matchers))
	for i, m := range matchers {
		if gm, isGomega := m.(types.GomegaMatcher); isGomega {
			converted[i] = Should(gm)
		} else {
			converted[i] = m
		}
	}
	return converted
}

// MatcherForMethod is a godouble.MatcherForMethod that accepts gomega matchers in any argument position.
func MatcherForMethod(t godouble.T, m reflect.Method, _ godouble.MethodArgsMatcher, matchers ...any) godouble.MethodArgsMatcher {
	t.Helper()
	return godouble.NewMatcherForMethod(t, m, convert(matchers)...)
}

// Configure a TestDouble to accept gomega matchers in Matching()
func Configure(d *godouble.TestDouble) {
	d.SetMatcherIntegration(MatcherForMethod)
}
