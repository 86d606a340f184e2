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
	"cmp"
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// Matcher matches either the full list of method arguments, or a single argument
type Matcher interface {
	Matches(args ...any) bool
}

// MethodArgsMatcher is a Matcher for the full list of arguments of a method
type MethodArgsMatcher interface {
	Matcher
	// ForMethod fatally fails t unless the matcher can match the arguments of m
	ForMethod(t T, m reflect.Method)
}

// SingleArgMatcher is a Matcher for one argument
type SingleArgMatcher interface {
	Matcher
	// ForType fatally fails t unless the matcher can match an argument of type ft
	ForType(t T, ft reflect.Type)
}

// CombinationMatcher can be used as either a MethodArgsMatcher or a SingleArgMatcher
type CombinationMatcher interface {
	Matcher
	ForMethod(t T, m reflect.Method)
	ForType(t T, ft reflect.Type)
}

/*
NewMatcherForMethod is the default MatcherForMethod, converting the matchers passed to Matching().

  - no matchers matches everything
  - a func, with the remaining matchers as its explanation, becomes Func()
  - a single MethodArgsMatcher is used as is
  - otherwise each matcher is converted for one argument and the list is passed to Args().
    A SingleArgMatcher is used as is, a reflect.Type becomes IsA(), a func becomes Func(), nil becomes Nil()
    and anything else becomes Eql().
*/
func NewMatcherForMethod(t T, forMethod reflect.Method, matchers ...any) MethodArgsMatcher {
	t.Helper()
	if forMethod.Type.NumIn() == 0 {
		t.Fatalf("Cannot build matcher for %v which takes no arguments", forMethod)
	}
	if len(matchers) == 0 {
		return All()
	}

	var result MethodArgsMatcher
	if isFunc(matchers[0]) {
		result = Func(matchers[0], matchers[1:]...)
	} else if m, isa := matchers[0].(MethodArgsMatcher); isa && len(matchers) == 1 {
		result = m
	} else {
		args := make([]Matcher, len(matchers))
		for i, m := range matchers {
			args[i] = argMatcher(m)
		}
		result = Args(args...)
	}
	result.ForMethod(t, forMethod)
	return result
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

func argMatcher(v any) SingleArgMatcher {
	switch m := v.(type) {
	case nil:
		return Nil()
	case SingleArgMatcher:
		return m
	case reflect.Type:
		return IsA(m)
	}
	if isFunc(v) {
		return Func(v)
	}
	return Eql(v)
}

func asMethodArgsMatcher(t T, m reflect.Method, matcher Matcher) {
	t.Helper()
	mam, isa := matcher.(MethodArgsMatcher)
	if !isa {
		t.Fatalf("Cannot use %v as MethodArgsMatcher", matcher)
		return
	}
	mam.ForMethod(t, m)
}

func asSingleArgMatcher(t T, ft reflect.Type, matcher Matcher) {
	t.Helper()
	sam, isa := matcher.(SingleArgMatcher)
	if !isa {
		t.Fatalf("Cannot use %v as SingleArgMatcher", matcher)
		return
	}
	sam.ForType(t, ft)
}

type matchers []Matcher

func (l matchers) describe(name, open, close string) string {
	if len(l) == 0 {
		return name
	}
	each := make([]string, len(l))
	for i, m := range l {
		each[i] = fmt.Sprint(m)
	}
	return name + open + strings.Join(each, ",") + close
}

func (l matchers) ForMethod(t T, m reflect.Method) {
	t.Helper()
	for _, matcher := range l {
		asMethodArgsMatcher(t, m, matcher)
	}
}

func (l matchers) ForType(t T, ft reflect.Type) {
	t.Helper()
	for _, matcher := range l {
		asSingleArgMatcher(t, ft, matcher)
	}
}

type funcMatcher struct {
	fn          reflect.Value
	explanation string
}

/*
Func matches with the func f, which returns bool. Custom matchers are generally a wrapper around Func.

As a MethodArgsMatcher f takes arguments compatible with the method.
As a SingleArgMatcher f takes one argument assignable from the argument type.

The explanation is formatted with fmt.Sprint to describe the matcher, defaulting to the type of f.
*/
func Func(f any, explanation ...any) CombinationMatcher {
	desc := fmt.Sprintf("%T", f)
	if len(explanation) > 0 {
		desc = fmt.Sprint(explanation...)
	}
	return funcMatcher{reflect.ValueOf(f), desc}
}

func (f funcMatcher) String() string {
	return f.explanation
}

func (f funcMatcher) signature() string {
	if !f.fn.IsValid() {
		return "nil"
	}
	return f.fn.Type().String()
}

func (f funcMatcher) predicate() bool {
	if !f.fn.IsValid() || f.fn.Kind() != reflect.Func {
		return false
	}
	ft := f.fn.Type()
	return ft.NumOut() == 1 && ft.Out(0).Kind() == reflect.Bool
}

func (f funcMatcher) ForMethod(t T, m reflect.Method) {
	t.Helper()
	if !f.predicate() {
		t.Fatalf("expected Func(...) bool, have %v", f.signature())
		return
	}
	AssertMethodInputs(t, m, f.fn.Type())
}

func (f funcMatcher) ForType(t T, in reflect.Type) {
	t.Helper()
	if !f.predicate() || f.fn.Type().NumIn() != 1 {
		t.Fatalf("%v expected to be a function that accepts 1 argument and returns bool, got %v", f, f.signature())
		return
	}
	if param := f.fn.Type().In(0); !in.AssignableTo(param) {
		t.Fatalf("Argument to %v expected to be assignable from %v, got %v", f, in, param)
	}
}

// Matches is false for args that cannot be passed to the func, eg a func combined with others via Any().
// Untyped nil args are passed as the zero value of the parameter.
func (f funcMatcher) Matches(args ...any) bool {
	ft := f.fn.Type()
	if len(args) != ft.NumIn() {
		return false
	}
	for i, arg := range args {
		if arg != nil && !reflect.TypeOf(arg).AssignableTo(ft.In(i)) {
			return false
		}
	}
	return callFunc(f.fn, args)[0].Bool()
}

type argumentsMatcher struct {
	list matchers
	// as given to Args, before any variadic arguments are collapsed into a Slice
	given matchers
}

// Args matches each method argument with the corresponding SingleArgMatcher.
//
// For a variadic method any matchers beyond the fixed arguments match elements of the variadic slice.
func Args(argMatchers ...Matcher) MethodArgsMatcher {
	return &argumentsMatcher{list: argMatchers, given: argMatchers}
}

func (a *argumentsMatcher) String() string {
	return a.list.describe("Args", "(", ")")
}

func (a *argumentsMatcher) Matches(args ...any) bool {
	for i := 0; i < len(a.list) && i < len(args); i++ {
		if !a.list[i].Matches(args[i]) {
			return false
		}
	}
	return true
}

func (a *argumentsMatcher) ForMethod(t T, m reflect.Method) {
	t.Helper()
	mt := m.Type
	fixed := mt.NumIn()
	a.list = a.given
	if mt.IsVariadic() {
		fixed--
		if len(a.given) > fixed {
			a.list = append(a.given[:fixed:fixed], Slice(a.given[fixed:]...))
		}
	} else if len(a.given) > fixed {
		t.Fatalf("%v requires not more than %d argument matchers, have %d", mt, fixed, len(a.given))
		return
	}

	for i, matcher := range a.list {
		if sam, isa := matcher.(SingleArgMatcher); isa {
			sam.ForType(t, mt.In(i))
		} else {
			t.Fatalf("Cannot validate %v as SingleArgMatcher for %v", matcher, mt.In(i))
		}
	}
}

type sliceMatcher struct {
	elements matchers
}

// Slice matches a slice or array argument whose leading elements match each of matchers in turn.
// Further elements are not checked.
func Slice(elements ...Matcher) SingleArgMatcher {
	return &sliceMatcher{elements}
}

func (s *sliceMatcher) String() string {
	return s.elements.describe("Slice", "[", "]")
}

func (s *sliceMatcher) Matches(args ...any) bool {
	if len(args) != 1 {
		return false
	}
	v := reflect.ValueOf(args[0])
	if k := v.Kind(); k != reflect.Slice && k != reflect.Array {
		return false
	}
	if v.Len() < len(s.elements) {
		return false
	}
	for i, m := range s.elements {
		if !m.Matches(v.Index(i).Interface()) {
			return false
		}
	}
	return true
}

func (s *sliceMatcher) ForType(t T, in reflect.Type) {
	t.Helper()
	if k := in.Kind(); k != reflect.Slice && k != reflect.Array {
		t.Fatalf("Slice() used to match non slice or array type %v", in)
		return
	}
	s.elements.ForType(t, in.Elem())
}

// Eql matches an argument reflect.DeepEqual to v
func Eql(v any) SingleArgMatcher {
	return Func(func(arg any) bool {
		return reflect.DeepEqual(arg, v)
	}, "Eql(", v, ")")
}

type nilMatcher struct{}

// Nil matches a nil argument of any type that can be nil
func Nil() SingleArgMatcher {
	return nilMatcher{}
}

func (nilMatcher) String() string {
	return "Nil"
}

func (nilMatcher) Matches(args ...any) bool {
	if len(args) != 1 {
		return false
	}
	if args[0] == nil {
		return true
	}
	v := reflect.ValueOf(args[0])
	return nilable(v.Type()) && v.IsNil()
}

func (nilMatcher) ForType(t T, ft reflect.Type) {
	t.Helper()
	if !nilable(ft) {
		t.Fatalf("type %v cannot be nil", ft)
	}
}

func sized(k reflect.Kind) bool {
	switch k {
	case reflect.Array, reflect.Chan, reflect.Map, reflect.Slice, reflect.String:
		return true
	}
	return false
}

type lenMatcher struct {
	length SingleArgMatcher
}

// Len matches an array, chan, map, slice or string argument whose length matches l.
//
// l is anything that can match an int, eg
//
//	Len(0)
//	Len(func(l int) bool { return l <= 10 })
func Len(l any) SingleArgMatcher {
	return lenMatcher{argMatcher(l)}
}

func (l lenMatcher) String() string {
	return fmt.Sprintf("Len(%v)", l.length)
}

func (l lenMatcher) Matches(args ...any) bool {
	if len(args) != 1 {
		return false
	}
	v := reflect.ValueOf(args[0])
	return sized(v.Kind()) && l.length.Matches(v.Len())
}

func (l lenMatcher) ForType(t T, ft reflect.Type) {
	t.Helper()
	if !sized(ft.Kind()) {
		t.Fatalf("cannot check length of type %v", ft)
		return
	}
	l.length.ForType(t, reflect.TypeOf(0))
}

// IsA matches an argument assignable to t, which is converted with reflect.TypeOf unless already a reflect.Type.
//
// For an interface type use
//
//	IsA(reflect.TypeOf((*io.Reader)(nil)).Elem())
func IsA(t any) SingleArgMatcher {
	rt, isType := t.(reflect.Type)
	if !isType {
		rt = reflect.TypeOf(t)
	}
	return Func(func(arg any) bool {
		return arg != nil && reflect.TypeOf(arg).AssignableTo(rt)
	}, "IsA(", rt, ")")
}

type combination struct {
	matchers
	name string
	all  bool
}

func (c combination) String() string {
	return c.describe(c.name, "{", "}")
}

func (c combination) Matches(args ...any) bool {
	for _, m := range c.matchers {
		if m.Matches(args...) != c.all {
			return !c.all
		}
	}
	return c.all
}

// All matches when every one of matchers does, including when there are none
func All(all ...Matcher) CombinationMatcher {
	return combination{all, "All", true}
}

// And is All
func And(all ...Matcher) CombinationMatcher {
	return All(all...)
}

// Any matches when at least one of matchers does, so never when there are none
func Any(some ...Matcher) CombinationMatcher {
	return combination{some, "Any", false}
}

// Or is Any
func Or(some ...Matcher) CombinationMatcher {
	return Any(some...)
}

type notMatcher struct {
	Matcher
}

// Not matches when matcher does not
func Not(matcher Matcher) CombinationMatcher {
	return notMatcher{matcher}
}

func (n notMatcher) String() string {
	return fmt.Sprintf("Not(%v)", n.Matcher)
}

func (n notMatcher) Matches(args ...any) bool {
	return !n.Matcher.Matches(args...)
}

func (n notMatcher) ForType(t T, ft reflect.Type) {
	t.Helper()
	asSingleArgMatcher(t, ft, n.Matcher)
}

func (n notMatcher) ForMethod(t T, m reflect.Method) {
	t.Helper()
	asMethodArgsMatcher(t, m, n.Matcher)
}

type anyValue struct{}

// AnyValue matches a single argument of any type, including nil
func AnyValue() SingleArgMatcher {
	return anyValue{}
}

func (anyValue) String() string { return "AnyValue" }

func (anyValue) Matches(...any) bool { return true }

func (anyValue) ForType(T, reflect.Type) {}

// In matches an argument reflect.DeepEqual to one of values
func In(values ...any) SingleArgMatcher {
	return Func(func(arg any) bool {
		for _, v := range values {
			if reflect.DeepEqual(arg, v) {
				return true
			}
		}
		return false
	}, "In", values)
}

// InRange matches an argument of an ordered type from min to max inclusive
//
//	d.Stub("Louder").Matching(InRange(0, 100))
func InRange[V cmp.Ordered](min, max V) SingleArgMatcher {
	return Func(func(arg V) bool {
		return cmp.Compare(arg, min) >= 0 && cmp.Compare(arg, max) <= 0
	}, "InRange(", min, ",", max, ")")
}

// Regexp matches a string argument containing a match for pattern, which must compile
func Regexp(pattern string) SingleArgMatcher {
	return Func(regexp.MustCompile(pattern).MatchString, "Regexp(/", pattern, "/)")
}
