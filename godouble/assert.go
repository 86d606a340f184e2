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

func outTypes(ft reflect.Type) []reflect.Type {
	types := make([]reflect.Type, ft.NumOut())
	for i := range types {
		types[i] = ft.Out(i)
	}
	return types
}

func nilable(rt reflect.Type) bool {
	switch rt.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice, reflect.UnsafePointer:
		return true
	}
	return false
}

// AssertMethodReturnValues fatally fails test t unless returnValues can be returned by method.
// A nil value is accepted for any return type that can be nil.
func AssertMethodReturnValues(t T, method reflect.Method, returnValues []any) {
	t.Helper()
	returnTypes := make([]reflect.Type, len(returnValues))
	for i, v := range returnValues {
		returnTypes[i] = reflect.TypeOf(v)
	}
	AssertMethodReturnTypes(t, method, returnTypes, method.Type, " ")
}

// AssertMethodOutputs fatally fails test t unless the results of funcType can be returned by m
func AssertMethodOutputs(t T, m reflect.Method, funcType reflect.Type) {
	t.Helper()
	assertFunc(t, funcType)
	AssertMethodReturnTypes(t, m, outTypes(funcType), funcType, " ")
}

// AssertMethodReturnTypes fatally fails test t unless values of returnTypes can be returned by m.
// A nil entry in returnTypes stands for an untyped nil value.
//
// prefixes are formatted into failure messages to describe where returnTypes came from.
func AssertMethodReturnTypes(t T, m reflect.Method, returnTypes []reflect.Type, prefixes ...any) {
	t.Helper()
	source := fmt.Sprint(prefixes...)
	if want := m.Type.NumOut(); want != len(returnTypes) {
		t.Fatalf("%v for %sexpects to have %d return values, found %d", m.Type, source, want, len(returnTypes))
		return
	}

	for i, out := range returnTypes {
		mType := m.Type.Out(i)
		switch {
		case out == nil && !nilable(mType):
			t.Fatalf("%v for %sexpects to have return Value %d of type %v, got nil", m.Type, source, i, mType)
		case out != nil && !out.AssignableTo(mType):
			t.Fatalf("%v for %sexpects to have return Value %d to be assignable to %v, got %v", m.Type, source, i, mType, out)
		}
	}
}

// AssertMethodInputs fatally fails test t unless funcType can be called with the arguments of method m
func AssertMethodInputs(t T, m reflect.Method, funcType reflect.Type) {
	t.Helper()
	assertFunc(t, funcType)
	mt := m.Type
	switch {
	case funcType.IsVariadic() != mt.IsVariadic():
		t.Fatalf("%v expects %v to have variadic=%v, found %v", mt, funcType, mt.IsVariadic(), funcType.IsVariadic())
	case funcType.NumIn() != mt.NumIn():
		t.Fatalf("%v expects %v to have %d arguments, found %d", mt, funcType, mt.NumIn(), funcType.NumIn())
	default:
		for i := 0; i < funcType.NumIn(); i++ {
			if !mt.In(i).AssignableTo(funcType.In(i)) {
				t.Fatalf("%v requires %v arg %d to be assignable from %v", mt, funcType, i, mt.In(i))
			}
		}
	}
}

func assertFunc(t T, funcType reflect.Type) {
	t.Helper()
	if funcType == nil || funcType.Kind() != reflect.Func {
		t.Fatalf("expected func, got %v", funcType)
	}
}
