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
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/akedrou/textdiff"
	console "github.com/phsym/console-slog"
	"github.com/spf13/cobra"
)

var ErrOutOfDate = errors.New("generated file is out of date")

// Command returns the doublegen command generating doubles for interfaces in registry.
//
// Flags override the values read from --config.
func Command(registry Registry) *cobra.Command {
	var (
		configPath string
		override   Config
		check      bool
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "doublegen [interface[=Name]...]",
		Short: "Generate godouble test doubles",
		Long: `Generates a godouble.TestDouble implementation for each interface.

Examples:
  doublegen --output doubles_gen.go volume.Volume koans.Addition=AdditionDouble
  doublegen --config doublegen.yaml --check`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			}
			logger := slog.New(console.NewHandler(cmd.ErrOrStderr(), &console.HandlerOptions{Level: level}))

			cfg, err := loadCommandConfig(configPath, cmd.Flags().Changed("config"), logger)
			if err != nil {
				return err
			}
			if override.Package != "" {
				cfg.Package = override.Package
			}
			if override.Path != "" {
				cfg.Path = override.Path
			}
			if override.Output != "" {
				cfg.Output = override.Output
			}
			for _, arg := range args {
				d, err := ParseDouble(arg)
				if err != nil {
					return err
				}
				cfg.Doubles = append(cfg.Doubles, d)
			}

			g, err := registry.Generator(cfg)
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := g.GenerateDouble(&buf); err != nil {
				return err
			}
			logger.Debug("generated", "package", g.pkgPath, "doubles", len(cfg.Doubles), "bytes", buf.Len())

			if cfg.Output == "" || cfg.Output == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if check {
				return checkOutput(cmd, logger, cfg.Output, buf.String())
			}
			if err := os.WriteFile(cfg.Output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", cfg.Output, err)
			}
			logger.Info("wrote doubles", "output", cfg.Output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", DefaultConfigFile, "YAML configuration file")
	flags.StringVarP(&override.Output, "output", "o", "", "Output file, - for stdout")
	flags.StringVar(&override.Package, "package", "", "Package name of the generated file")
	flags.StringVar(&override.Path, "path", "", "Import path of the generated file's package")
	flags.BoolVar(&check, "check", false, "Fail with a diff if the output file is not up to date")
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")
	return cmd
}

// loadCommandConfig loads path, tolerating a missing default configuration.
func loadCommandConfig(path string, explicit bool, logger *slog.Logger) (Config, error) {
	cfg, err := LoadConfig(path)
	if err == nil {
		logger.Debug("loaded config", "path", path, "doubles", len(cfg.Doubles))
		return cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	return Config{}, err
}

func checkOutput(cmd *cobra.Command, logger *slog.Logger, output, generated string) error {
	existing, err := os.ReadFile(output)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("check %s: %w", output, err)
	}
	diff := textdiff.Unified(output, output+" (generated)", string(existing), generated)
	if diff == "" {
		logger.Info("up to date", "output", output)
		return nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), diff)
	return fmt.Errorf("%s: %w", output, ErrOutOfDate)
}
