// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package math

import (
	"fmt"
)

// DIGITS is the interval of values which a single input digit may take.
var DIGITS = NewInterval(1, 9)

// Interval provides a discrete (and non-empty) range of integers, such as
// 0..1, 1..9, etc.  An interval can be used to approximate the possible values
// that a given expression could evaluate to.
type Interval struct {
	min int64
	max int64
}

// NewInterval creates an interval representing a given range.
func NewInterval(lower int64, upper int64) Interval {
	// sanity check
	if lower > upper {
		panic(fmt.Sprintf("invalid interval %d..%d", lower, upper))
	}
	//
	return Interval{lower, upper}
}

// MinValue returns the minimum value that this interval includes.
func (p Interval) MinValue() int64 {
	return p.min
}

// MaxValue returns the maximum value that this interval includes.
func (p Interval) MaxValue() int64 {
	return p.max
}

// Size returns the number of values contained in this interval.
func (p Interval) Size() int64 {
	return p.max - p.min + 1
}

// Contains checks whether a given value is contained with this interval
func (p Interval) Contains(val int64) bool {
	return p.min <= val && val <= p.max
}

// Within checks whether this interval is contained within the given bounds.
func (p Interval) Within(val Interval) bool {
	return p.min >= val.min && p.max <= val.max
}

// Ascending returns the values of this interval from smallest to largest.
func (p Interval) Ascending() []int64 {
	values := make([]int64, 0, p.Size())
	//
	for v := p.min; v <= p.max; v++ {
		values = append(values, v)
	}
	//
	return values
}

// Descending returns the values of this interval from largest to smallest.
func (p Interval) Descending() []int64 {
	values := make([]int64, 0, p.Size())
	//
	for v := p.max; v >= p.min; v-- {
		values = append(values, v)
	}
	//
	return values
}

func (p Interval) String() string {
	if p.min == p.max {
		return fmt.Sprintf("%d", p.min)
	}
	//
	return fmt.Sprintf("%d..%d", p.min, p.max)
}

// Overlap determines how many integers lie in both of two (possibly
// inverted) ranges lo1..hi1 and lo2..hi2.  A result of zero or less indicates
// the ranges are disjoint, whilst one indicates they touch at exactly one
// point.  Observe that no check is made that lo <= hi, since bounds computed by
// direct evaluation may well be inverted.
func Overlap(lo1, hi1, lo2, hi2 int64) int64 {
	return min(hi1, hi2) - max(lo1, lo2) + 1
}
