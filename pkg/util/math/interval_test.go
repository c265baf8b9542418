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
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Interval_Digits(t *testing.T) {
	assert.Equal(t, int64(1), DIGITS.MinValue())
	assert.Equal(t, int64(9), DIGITS.MaxValue())
	assert.Equal(t, int64(9), DIGITS.Size())
	assert.True(t, DIGITS.Contains(5))
	assert.False(t, DIGITS.Contains(0))
	assert.False(t, DIGITS.Contains(10))
	assert.Equal(t, "1..9", DIGITS.String())
}

func Test_Interval_Order(t *testing.T) {
	iv := NewInterval(-1, 2)
	assert.Equal(t, []int64{-1, 0, 1, 2}, iv.Ascending())
	assert.Equal(t, []int64{2, 1, 0, -1}, iv.Descending())
	assert.True(t, NewInterval(2, 3).Within(DIGITS))
	assert.False(t, iv.Within(DIGITS))
}

func Test_Interval_Invalid(t *testing.T) {
	assert.Panics(t, func() { NewInterval(3, 2) })
}

func Test_Interval_Overlap(t *testing.T) {
	// disjoint
	assert.Equal(t, int64(-1), Overlap(11, 11, 1, 9))
	// touching
	assert.Equal(t, int64(1), Overlap(9, 17, 1, 9))
	assert.Equal(t, int64(1), Overlap(-7, 1, 1, 9))
	// overlapping
	assert.Equal(t, int64(3), Overlap(7, 15, 1, 9))
	// inverted bounds are taken literally
	assert.Equal(t, int64(-9), Overlap(-1, -9, 1, 9))
}
