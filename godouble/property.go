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
	"maps"
	"reflect"
	"slices"
	"sync"
)

// SetterPrefix is prepended to a property name to find its setter method. eg Name() and SetName(string)
const SetterPrefix = "Set"

/*
A Property fakes a getter method, and optionally its setter, with a stored value.

Setup Phase

Install via TestDouble.Property() or TestDouble.Properties()

Exercise Phase

The getter returns the stored value, the setter replaces it. Both record their calls.

Verify Phase

Verify reads via Get() and writes via Set() as per Spy. eg

  name.Set().Matching("John").Expect(Once())
  age.Get().Expect(AtLeast(1), "age was never checked")
*/
type Property interface {
	//Get returns the recorded calls to the getter
	Get() FakeMethodCall

	//Set returns the recorded calls to the setter, or nil if the interface has no setter for this property
	Set() FakeMethodCall

	//Value returns the current stored value
	Value() any
}

type property struct {
	name   string
	mutex  sync.Mutex
	value  reflect.Value
	getter FakeMethodCall
	setter FakeMethodCall
}

func (p *property) Get() FakeMethodCall {
	return p.getter
}

func (p *property) Set() FakeMethodCall {
	return p.setter
}

func (p *property) Value() any {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.value.Interface()
}

func (p *property) String() string {
	return fmt.Sprintf("Property(%s=%v)", p.name, p.Value())
}

func (p *property) get(_ []reflect.Value) []reflect.Value {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return []reflect.Value{p.value}
}

func (p *property) set(args []reflect.Value) []reflect.Value {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.value = args[0]
	return nil
}

// replace drops the registered calls, leaving a fake of impl as the only one
func (m *method) replace(impl any) FakeMethodCall {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	fake := m.Fake(impl)
	m.calls = []MethodCall{fake}
	return fake
}

func isGetter(m reflect.Method) bool {
	return m.Type.NumIn() == 0 && m.Type.NumOut() == 1
}

func isSetterFor(getter reflect.Method, setter reflect.Method) bool {
	return setter.Type.NumIn() == 1 && setter.Type.NumOut() == 0 && !setter.Type.IsVariadic() &&
		getter.Type.Out(0).AssignableTo(setter.Type.In(0)) && setter.Type.In(0).AssignableTo(getter.Type.Out(0))
}

/*
Property fakes the getter method called name, and its setter (SetterPrefix + name) if there is one,
with a value initialised from the optional initial value, otherwise the zero value.

The getter must take no arguments and return exactly one value. The setter must accept exactly one value
of the same type and return nothing. The property replaces every call previously registered for these methods,
including an earlier Property of the same name, so those calls are no longer matched or verified.
*/
func (d *TestDouble) Property(name string, initial ...any) Property {
	d.t.Helper()
	getter, found := d.methods[name]
	if !found {
		d.t.Fatalf("Cannot setup non existent property %s for %v", name, d)
	}
	if !isGetter(getter.m) {
		d.t.Fatalf("Property %v.%s expects a getter with no arguments and one return value, found %v", d, name, getter.m.Type)
	}
	valueType := getter.m.Type.Out(0)

	p := &property{name: name, value: reflect.Zero(valueType)}
	if len(initial) > 1 {
		d.t.Fatalf("Property %v.%s expects at most one initial value, found %d", d, name, len(initial))
	} else if len(initial) == 1 && initial[0] != nil {
		iv := reflect.ValueOf(initial[0])
		if !iv.Type().AssignableTo(valueType) {
			d.t.Fatalf("Property %v.%s expects initial value assignable to %v, got %v", d, name, valueType, iv.Type())
		}
		p.value = reflect.New(valueType).Elem()
		p.value.Set(iv)
	}

	p.getter = getter.replace(reflect.MakeFunc(getter.m.Type, p.get).Interface())

	if setter, hasSetter := d.methods[SetterPrefix+name]; hasSetter {
		if !isSetterFor(getter.m, setter.m) {
			d.t.Fatalf("Property %v.%s expects setter %s(%v), found %v", d, name, setter.m.Name, valueType, setter.m.Type)
		}
		p.setter = setter.replace(reflect.MakeFunc(setter.m.Type, p.set).Interface())
	}
	return p
}

// Properties installs a Property, with a zero value, for every getter on the double's interface that has a matching setter.
//
// The result is keyed by property (getter) name.
func (d *TestDouble) Properties() map[string]Property {
	d.t.Helper()
	properties := make(map[string]Property)
	for _, name := range slices.Sorted(maps.Keys(d.methods)) {
		getter := d.methods[name]
		if !isGetter(getter.m) {
			continue
		}
		if setter, hasSetter := d.methods[SetterPrefix+name]; hasSetter && isSetterFor(getter.m, setter.m) {
			properties[name] = d.Property(name)
		}
	}
	return properties
}
