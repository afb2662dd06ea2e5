// Copyright 2026 The diffkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package diffkit

import (
	"slices"

	"github.com/diffkit/diffkit/internal/config"
	"github.com/diffkit/diffkit/internal/myers"
)

// ArrayChange is one run of a slice comparison. Exactly one of Added and Removed is set for
// changed runs; unchanged runs have neither. Values holds the run's elements, taken from the
// new slice except for removed runs.
type ArrayChange[T any] struct {
	Values  []T
	Count   int
	Added   bool
	Removed bool
}

const arrayFlags = config.MaxEditLength | config.Timeout

// DiffArrays compares two slices element-wise and returns the runs of an edit script
// transforming oldValues into newValues.
//
// The following options are supported: [MaxEditLength], [Timeout]
func DiffArrays[T comparable](oldValues, newValues []T, opts ...Option) []ArrayChange[T] {
	return DiffArraysFunc(oldValues, newValues, func(a, b T) bool { return a == b }, opts...)
}

// DiffArraysFunc is like [DiffArrays] but compares elements with eq instead of ==.
//
// The following options are supported: [MaxEditLength], [Timeout]
func DiffArraysFunc[T any](oldValues, newValues []T, eq func(a, b T) bool, opts ...Option) []ArrayChange[T] {
	cfg := config.FromOptions(opts, arrayFlags)
	comps, ok := myers.Diff(oldValues, newValues, eq, cfg)
	if !ok {
		return nil
	}
	changes := make([]ArrayChange[T], 0, len(comps))
	oldPos, newPos := 0, 0
	for _, c := range comps {
		ch := ArrayChange[T]{Count: c.Count, Added: c.Added, Removed: c.Removed}
		switch {
		case c.Removed:
			ch.Values = slices.Clone(oldValues[oldPos : oldPos+c.Count])
			oldPos += c.Count
		case c.Added:
			ch.Values = slices.Clone(newValues[newPos : newPos+c.Count])
			newPos += c.Count
		default:
			ch.Values = slices.Clone(newValues[newPos : newPos+c.Count])
			oldPos += c.Count
			newPos += c.Count
		}
		changes = append(changes, ch)
	}
	return changes
}
