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
	"fmt"
	"testing"
)

type fatal string

// koanT records what a double reports so a lesson can show that a test would have failed.
//
// Fatalf panics, standing in for testing.T.FailNow, and failsFatally recovers it.
type koanT struct {
	*testing.T
	errors []string
	fatals []string
}

func newKoanT(t *testing.T) *koanT {
	return &koanT{T: t}
}

func (k *koanT) Errorf(format string, args ...any) {
	k.errors = append(k.errors, fmt.Sprintf(format, args...))
}

func (k *koanT) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	k.fatals = append(k.fatals, msg)
	panic(fatal(msg))
}

func (k *koanT) failsFatally(f func()) (failed bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isFatal := r.(fatal); !isFatal {
				panic(r)
			}
			failed = true
		}
	}()
	f()
	return false
}
