//go:build doublegen

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

// Command doublegen regenerates the koans doubles from doublegen.yaml.
package main

import (
	"os"

	"github.com/lwoggardner/doublekoans/doublegen"
	"github.com/lwoggardner/doublekoans/koans"
	"github.com/lwoggardner/doublekoans/shop"
	"github.com/lwoggardner/doublekoans/volume"
)

func main() {
	registry := doublegen.NewRegistry(
		(*volume.Volume)(nil),
		(*koans.Addition)(nil),
		(*shop.Person)(nil),
	)
	if err := doublegen.Command(registry).Execute(); err != nil {
		os.Exit(1)
	}
}
