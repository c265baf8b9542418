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
package array

import (
	"math"
)

// Predicate abstracts the notion of a function which identifies something.
type Predicate[T any] func(T) bool

// BackPad pads an array upto a given length n with a given item.  Specifically,
// new items are appended at the end of the array.  Observe that, unlike the
// built-in append() function, this never modifies the given slice.
func BackPad[T any](slice []T, n uint, item T) []T {
	m := uint(len(slice))
	// Check whether any work required
	if m >= n {
		return slice
	}
	// Yes
	nslice := make([]T, n)
	copy(nslice, slice)
	//
	for i := m; i < n; i++ {
		nslice[i] = item
	}
	//
	return nslice
}

// Append creates a new slice containing the result of appending the given item
// onto the end of the given slice.  Observe that, unlike the built-in append()
// function, this will never modify the given slice.
//
//nolint:revive
func Append[T any](slice []T, item T) []T {
	n := len(slice)
	nslice := make([]T, n+1)
	copy(nslice, slice)
	nslice[n] = item
	//
	return nslice
}

// FindMatching determines the index of first matching item in a given array, or
// returns math.MaxUint otherwise.
func FindMatching[T any](items []T, predicate Predicate[T]) uint {
	for i, item := range items {
		if predicate(item) {
			return uint(i)
		}
	}
	//
	return math.MaxUint
}

// FindAllMatching determines the indices of all matching items in a given
// array, in ascending order.
func FindAllMatching[T any](items []T, predicate Predicate[T]) []uint {
	var indices []uint
	//
	for i, item := range items {
		if predicate(item) {
			indices = append(indices, uint(i))
		}
	}
	//
	return indices
}

// RemoveMatching removes all elements from an array matching the given item.
// The original array is not modified.
func RemoveMatching[T any](items []T, predicate Predicate[T]) []T {
	count := 0
	// Check how many matches we have
	for _, r := range items {
		if !predicate(r) {
			count++
		}
	}
	// Check for stuff to remove
	if count != len(items) {
		nitems := make([]T, 0, count)
		// Remove items
		for _, r := range items {
			if !predicate(r) {
				nitems = append(nitems, r)
			}
		}
		//
		items = nitems
	}
	//
	return items
}
