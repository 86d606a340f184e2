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

package doublegen

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read by Command when --config is not given.
const DefaultConfigFile = "doublegen.yaml"

var ErrUnknownInterface = errors.New("unknown interface")

// Config describes a generated file.
//
//	package: koans
//	path: github.com/lwoggardner/doublekoans/koans
//	output: doubles_gen.go
//	doubles:
//	  - interface: volume.Volume
//	  - interface: koans.Addition
//	    name: AdditionDouble
type Config struct {
	Package string         `yaml:"package,omitempty"`
	Path    string         `yaml:"path,omitempty"`
	Output  string         `yaml:"output,omitempty"`
	Doubles []DoubleConfig `yaml:"doubles"`
}

// DoubleConfig names an interface from the Registry and optionally the generated type.
type DoubleConfig struct {
	Interface string `yaml:"interface"`
	Name      string `yaml:"name,omitempty"`
}

// LoadConfig reads a YAML Config from path.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseDouble parses the "interface[=Name]" form used on the command line.
func ParseDouble(arg string) (DoubleConfig, error) {
	iface, name, _ := strings.Cut(arg, "=")
	if iface == "" {
		return DoubleConfig{}, fmt.Errorf("invalid double %q, expected interface[=Name]", arg)
	}
	return DoubleConfig{Interface: iface, Name: name}, nil
}

// Registry maps qualified interface names, e.g. "volume.Volume", to nil interface pointers.
//
// Interfaces are only available to the generator through reflection, so a generating main registers them here.
type Registry map[string]any

// NewRegistry registers each of forInterfaces under its qualified name.
func NewRegistry(forInterfaces ...any) Registry {
	r := Registry{}
	for _, i := range forInterfaces {
		r.Add(i)
	}
	return r
}

// Add registers forInterface under its qualified name.
func (r Registry) Add(forInterface any) Registry {
	t := reflect.TypeOf(forInterface)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t != nil {
		r[t.String()] = forInterface
	}
	return r
}

// Names returns the registered names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for n := range r {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Generator creates a Generator for the doubles in cfg.
func (r Registry) Generator(cfg Config) (*Generator, error) {
	if len(cfg.Doubles) == 0 {
		return nil, errors.New("no doubles configured")
	}
	ifaces := make([]any, 0, len(cfg.Doubles))
	for _, d := range cfg.Doubles {
		iface, ok := r[d.Interface]
		if !ok {
			return nil, fmt.Errorf("%q: %w, registered %v", d.Interface, ErrUnknownInterface, r.Names())
		}
		ifaces = append(ifaces, iface)
	}

	g := NewGenerator(ifaces...)
	for i, d := range cfg.Doubles {
		if d.Name != "" {
			g.Named(ifaces[i], d.Name)
		}
	}
	if cfg.Package != "" || cfg.Path != "" {
		name, path := g.pkgName, g.pkgPath
		if cfg.Package != "" {
			name = cfg.Package
		}
		if cfg.Path != "" {
			path = cfg.Path
		}
		g.InPackage(name, path)
	}
	return g, nil
}
