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
	"fmt"
	"regexp"
	"testing"
)

// TDouble doubles T itself, so tests can observe how the framework reports failures
type TDouble struct {
	T
	*TestDouble
}

func NewTDouble(t *testing.T, configs ...func(c *TestDouble)) *TDouble {
	return &TDouble{TestDouble: NewDouble(t, (*T)(nil), configs...)}
}

func (t *TDouble) Errorf(format string, args ...any) {
	t.TestDouble.T().Helper()
	t.Invoke("Errorf", format, args)
}

func (t *TDouble) Fatalf(format string, args ...any) {
	t.TestDouble.T().Helper()
	t.Invoke("Fatalf", format, args)
}

func (t *TDouble) Logf(format string, args ...any) {
	t.TestDouble.T().Helper()
	t.Invoke("Logf", format, args)
}

func (t *TDouble) Helper() {
	t.TestDouble.T().Helper()
	t.Invoke("Helper")
}

// fatal is the panic value used to stop a test that called Fatalf
type fatal struct {
	msg string
}

// FakeFatalf stops the caller like testing.T.Fatalf
func (t *TDouble) FakeFatalf(format string, args ...any) {
	panic(fatal{fmt.Sprintf(format, args...)})
}

// expectFatal runs fn with a TDouble and asserts it stops with a single Fatalf whose message matches re
func expectFatal(t *testing.T, re string, fn func(t *TDouble), configs ...func(*TestDouble)) {
	t.Helper()
	tDouble := NewTDouble(t, configs...)
	fatalf := tDouble.Fake("Fatalf", tDouble.FakeFatalf)

	stopped := func() (stopped bool) {
		defer func() {
			if r := recover(); r != nil {
				if _, isFatal := r.(fatal); !isFatal {
					panic(r)
				}
				stopped = true
			}
		}()
		fn(tDouble)
		return false
	}()

	if !stopped {
		t.Errorf("Expected Fatalf matching /%s/", re)
	}
	fatalf.Matching(printfMatcher(re)).Expect(Once())
}

// printfMatcher matches Printf style args when the formatted message matches re
func printfMatcher(re string) Matcher {
	exp := regexp.MustCompile(re)
	return Func(func(format string, args ...any) bool {
		return exp.MatchString(fmt.Sprintf(format, args...))
	}, "/", re, "/")
}
