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

// Package volume provides a volume control clamped to the range 0 to 100.
package volume

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	Min     = 0
	Max     = 100
	Default = 50
)

// ErrOutOfRange is returned when a negative amount is passed to Louder or Quieter
var ErrOutOfRange = errors.New("amount out of range")

// Volume is the behaviour of a volume control
type Volume interface {
	//Louder raises the volume by amount, returning the new volume
	Louder(amount int) (int, error)
	//Quieter lowers the volume by amount, returning the new volume
	Quieter(amount int) (int, error)
	//CurrentVolume renders the current volume as a decimal string
	CurrentVolume() string
}

// Controller is a Volume whose value never leaves [Min,Max].
//
// A Controller is not safe for concurrent use.
type Controller struct {
	value int
}

var _ Volume = (*Controller)(nil)

// New returns a Controller starting at initial, clamped to [Min,Max]
func New(initial int) *Controller {
	return &Controller{value: clamp(initial)}
}

// NewDefault returns a Controller starting at Default
func NewDefault() *Controller {
	return New(Default)
}

func (c *Controller) Louder(amount int) (int, error) {
	if amount < 0 {
		return c.value, fmt.Errorf("louder(%d): %w", amount, ErrOutOfRange)
	}
	// amount is capped at Max first so the sum cannot overflow
	c.value = clamp(c.value + min(amount, Max))
	return c.value, nil
}

func (c *Controller) Quieter(amount int) (int, error) {
	if amount < 0 {
		return c.value, fmt.Errorf("quieter(%d): %w", amount, ErrOutOfRange)
	}
	c.value = clamp(c.value - min(amount, Max))
	return c.value, nil
}

func (c *Controller) CurrentVolume() string {
	return strconv.Itoa(c.value)
}

// Value is the current volume
func (c *Controller) Value() int {
	return c.value
}

func (c *Controller) String() string {
	return fmt.Sprintf("Volume(%d)", c.value)
}

func clamp(v int) int {
	return max(Min, min(v, Max))
}
