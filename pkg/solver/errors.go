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
package solver

import (
	"fmt"

	"github.com/consensys/go-alu/pkg/symbolic"
	"github.com/pkg/errors"
)

// ErrUnsatisfiable signals that no assignment of digits satisfies the given
// constraints.
var ErrUnsatisfiable = errors.New("constraints are unsatisfiable")

// StructuralError signals that a relation (or set of relations) lies outside
// the class which can be solved.  For example, a relation between three digits
// or two relations constraining the same digit.
type StructuralError struct {
	// Index of the instruction giving rise to the offending relation.
	Index uint
	// Explanation of what went wrong
	Message string
}

func (p *StructuralError) Error() string {
	return fmt.Sprintf("relation at instruction %d: %s", p.Index, p.Message)
}

func structuralError(r symbolic.Relation, msg string) error {
	return &StructuralError{r.Index, fmt.Sprintf("%s (%s)", msg, r.String())}
}
