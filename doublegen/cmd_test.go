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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := Command(NewRegistry((*Gadget)(nil), (*widget)(nil)))
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestParseDouble(t *testing.T) {
	d, err := ParseDouble("volume.Volume")
	require.NoError(t, err)
	assert.Equal(t, DoubleConfig{Interface: "volume.Volume"}, d)

	d, err = ParseDouble("volume.Volume=FakeVolume")
	require.NoError(t, err)
	assert.Equal(t, DoubleConfig{Interface: "volume.Volume", Name: "FakeVolume"}, d)

	_, err = ParseDouble("=FakeVolume")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doublegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
package: fakes
path: example.com/fakes
output: fakes_gen.go
doubles:
  - interface: doublegen.Gadget
    name: FakeGadget
  - interface: doublegen.widget
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Package: "fakes",
		Path:    "example.com/fakes",
		Output:  "fakes_gen.go",
		Doubles: []DoubleConfig{
			{Interface: "doublegen.Gadget", Name: "FakeGadget"},
			{Interface: "doublegen.widget"},
		},
	}, cfg)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry((*Gadget)(nil), (*widget)(nil))
	assert.Equal(t, []string{"doublegen.Gadget", "doublegen.widget"}, r.Names())

	_, err := r.Generator(Config{Doubles: []DoubleConfig{{Interface: "volume.Volume"}}})
	assert.ErrorIs(t, err, ErrUnknownInterface)

	_, err = r.Generator(Config{})
	assert.Error(t, err)

	g, err := r.Generator(Config{Package: "fakes", Doubles: []DoubleConfig{{Interface: "doublegen.widget", Name: "Spinner"}}})
	require.NoError(t, err)
	src := generate(t, g)
	assert.Contains(t, src, "package fakes")
	assert.Contains(t, src, "type Spinner struct {")
}

func TestCommand_Stdout(t *testing.T) {
	stdout, _, err := run(t, "--output", "-", "doublegen.Gadget=FakeGadget")
	require.NoError(t, err)
	assert.Contains(t, stdout, "type FakeGadget struct {")
}

func TestCommand_WriteAndCheck(t *testing.T) {
	output := filepath.Join(t.TempDir(), "doubles_gen.go")

	_, _, err := run(t, "--output", output, "doublegen.widget")
	require.NoError(t, err)
	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(written), "type widgetDouble struct {")

	_, _, err = run(t, "--check", "--output", output, "doublegen.widget")
	assert.NoError(t, err)

	require.NoError(t, os.WriteFile(output, append(written, []byte("// edited\n")...), 0o644))
	_, stderr, err := run(t, "--check", "--output", output, "doublegen.widget")
	assert.ErrorIs(t, err, ErrOutOfDate)
	assert.Contains(t, stderr, "-// edited")
}

func TestCommand_Config(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "gadget_gen.go")
	config := filepath.Join(dir, "gen.yaml")
	require.NoError(t, os.WriteFile(config, []byte("output: "+output+"\ndoubles:\n  - interface: doublegen.Gadget\n"), 0o644))

	_, _, err := run(t, "--config", config, "--debug")
	require.NoError(t, err)
	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(written), "type GadgetDouble struct {")
}

func TestCommand_Errors(t *testing.T) {
	_, _, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "doublegen.Gadget")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = run(t, "--output", "-", "volume.Volume")
	assert.ErrorIs(t, err, ErrUnknownInterface)

	_, _, err = run(t, "--output", "-")
	assert.Error(t, err)
}
