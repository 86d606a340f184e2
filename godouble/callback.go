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
	"reflect"
)

// callFunc calls fn with args, substituting zero values for untyped nil args.
// If fn is variadic the last arg is expected to be the variadic slice.
func callFunc(fn reflect.Value, args []any) []reflect.Value {
	ft := fn.Type()
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil && i < ft.NumIn() {
			in[i] = reflect.Zero(ft.In(i))
		} else {
			in[i] = reflect.ValueOf(arg)
		}
	}
	if ft.IsVariadic() {
		return fn.CallSlice(in)
	}
	return fn.Call(in)
}

func interfaces(values []reflect.Value) []any {
	if len(values) == 0 {
		return nil
	}
	result := make([]any, len(values))
	for i, v := range values {
		result[i] = v.Interface()
	}
	return result
}

// A callback is a func with no results run when a Stub, Mock or Spy is invoked
type callback struct {
	fn       reflect.Value
	withArgs bool
}

func newCallback(t T, m reflect.Method, fn any) callback {
	t.Helper()
	fv := reflect.ValueOf(fn)
	if fn == nil || fv.Kind() != reflect.Func {
		t.Fatalf("Callback for %v expected to be a func, got %T", m.Type, fn)
	}
	ft := fv.Type()
	if ft.NumOut() != 0 {
		t.Fatalf("Callback %v for %v expects no return values, found %d", ft, m.Type, ft.NumOut())
	}
	if ft.NumIn() == 0 {
		return callback{fn: fv}
	}
	AssertMethodInputs(t, m, ft)
	return callback{fn: fv, withArgs: true}
}

func (c callback) call(args []any) {
	if c.withArgs {
		callFunc(c.fn, args)
	} else {
		c.fn.Call(nil)
	}
}

func (c callback) String() string {
	return fmt.Sprintf("%v", c.fn.Type())
}
