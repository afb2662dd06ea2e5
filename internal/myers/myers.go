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

// Package myers contains an implementation of Myers' algorithm.
//
// The implementation in this package is the greedy forward variant described in section 3 of the
// paper: for every edit distance d it extends the furthest reaching d-path on each diagonal by one
// insertion or deletion and then follows any run of matching tokens before recording the new
// endpoint. The search terminates as soon as a diagonal's frontier consumes both inputs, which
// makes the returned edit script minimal.
//
// # Myers Algorithm
//
// The algorithm is a graph search on the graph modelling all possible edits that transform x to y.
// Every vertex corresponds to a pair of positions (one in x, one in y); a horizontal edge deletes
// an element of x, a vertical edge inserts an element of y, and a free diagonal edge consumes one
// matching element of each. A shortest path from the top left to the bottom right corner of the
// grid is a minimal edit script.
//
// A D-path is a path with exactly D non-diagonal edges. The key observation is that the furthest
// reaching D-path on diagonal k extends either the furthest reaching (D-1)-path on diagonal k-1 by
// a deletion or the one on diagonal k+1 by an insertion, followed in both cases by the longest
// possible run of diagonal edges. Keeping only the endpoint per diagonal makes the search O(ND)
// time and O(D) working memory.
//
// The path itself is recorded as a chain of run-length encoded components (insert run, delete run,
// match run). Components live in an arena owned by the search; a path references its last
// component by arena index, so extending a path never aliases another path's chain and the whole
// history is reclaimed in one piece when the search ends.
//
// ## References:
//
// Myers, E.W. An O(ND) difference algorithm and its variations. Algorithmica 1, 251-266 (1986).
// https://doi.org/10.1007/BF01840446
package myers

import (
	"slices"
	"time"

	"github.com/diffkit/diffkit/internal/config"
)

// Component is one run of the edit script: Count consecutive tokens that were all inserted, all
// deleted, or all kept.
type Component struct {
	Count   int
	Added   bool
	Removed bool
}

// component is the arena representation of a path component. prev links to the preceding
// component of the same path, or -1 at the start of the chain.
type component struct {
	count          int
	added, removed bool
	prev           int32
}

// path is the furthest reaching endpoint on one diagonal. oldPos is the index of the last
// consumed token of x; tail indexes the arena, -1 for an empty chain.
type path struct {
	oldPos int
	tail   int32
	ok     bool
}

type search[T any] struct {
	x, y   []T
	eq     func(a, b T) bool
	arena  []component
	latest []path // furthest reaching path per diagonal, indexed by diagonal+offset
	offset int
}

// Diff compares the contents of x and y and returns the minimal edit script transforming x into y
// as a sequence of run-length components. ok is false when the search was abandoned because it
// exceeded cfg.MaxEditLength or cfg.Timeout; the partial result is discarded in that case.
func Diff[T any](x, y []T, eq func(a, b T) bool, cfg config.Config) (components []Component, ok bool) {
	oldLen, newLen := len(x), len(y)

	maxEditLength := oldLen + newLen
	if cfg.MaxEditLength > 0 {
		maxEditLength = min(maxEditLength, cfg.MaxEditLength)
	}
	var deadline time.Time
	if cfg.Timeout > 0 {
		deadline = time.Now().Add(cfg.Timeout)
	}

	m := &search[T]{
		x:      x,
		y:      y,
		eq:     eq,
		latest: make([]path, 2*maxEditLength+3),
		offset: maxEditLength + 1,
	}

	// Seed the k=0 diagonal and follow the common prefix. If that already consumes both inputs
	// the result is a single match run (or nothing at all for two empty inputs).
	base := path{oldPos: -1, tail: -1, ok: true}
	newPos := m.extractCommon(&base, 0)
	if base.oldPos+1 >= oldLen && newPos+1 >= newLen {
		return m.components(base.tail), true
	}
	m.latest[m.offset] = base

	// Diagonals outside this window can no longer contribute: once a diagonal's frontier has
	// consumed all of x, every diagonal right of it is stuck, and symmetrically for y.
	minDiagonal, maxDiagonal := -maxEditLength, maxEditLength

	for editLength := 1; editLength <= maxEditLength; editLength++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return nil, false
		}
		for diagonal := max(minDiagonal, -editLength); diagonal <= min(maxDiagonal, editLength); diagonal += 2 {
			k := m.offset + diagonal
			remove := m.latest[k-1]
			add := m.latest[k+1]
			if remove.ok {
				// No other diagonal reads this entry again in this round.
				m.latest[k-1] = path{}
			}

			canAdd := false
			if add.ok {
				addNewPos := add.oldPos - diagonal
				canAdd = addNewPos >= 0 && addNewPos < newLen
			}
			canRemove := remove.ok && remove.oldPos+1 < oldLen
			if !canAdd && !canRemove {
				m.latest[k] = path{}
				continue
			}

			// Select the diagonal to branch from: prefer the one that has consumed more of x,
			// which keeps deletions in front of insertions in the final script.
			var base path
			if !canRemove || (canAdd && remove.oldPos < add.oldPos) {
				base = m.addToPath(add, true, false, 0)
			} else {
				base = m.addToPath(remove, false, true, 1)
			}

			newPos := m.extractCommon(&base, diagonal)
			if base.oldPos+1 >= oldLen && newPos+1 >= newLen {
				return m.components(base.tail), true
			}
			m.latest[k] = base
			if base.oldPos+1 >= oldLen {
				maxDiagonal = min(maxDiagonal, diagonal-1)
			}
			if newPos+1 >= newLen {
				minDiagonal = max(minDiagonal, diagonal+1)
			}
		}
	}
	return nil, false
}

// push appends a component to the arena and returns its index.
func (m *search[T]) push(prev int32, count int, added, removed bool) int32 {
	m.arena = append(m.arena, component{count: count, added: added, removed: removed, prev: prev})
	return int32(len(m.arena) - 1)
}

// addToPath extends p by a single insertion or deletion. A run of the same kind at the tail of
// the chain is extended by a fresh node with count+1 that shares the run's predecessor, so chains
// of other paths referencing the old tail stay intact.
func (m *search[T]) addToPath(p path, added, removed bool, oldPosInc int) path {
	if p.tail >= 0 {
		last := m.arena[p.tail]
		if last.added == added && last.removed == removed {
			return path{
				oldPos: p.oldPos + oldPosInc,
				tail:   m.push(last.prev, last.count+1, added, removed),
				ok:     true,
			}
		}
	}
	return path{
		oldPos: p.oldPos + oldPosInc,
		tail:   m.push(p.tail, 1, added, removed),
		ok:     true,
	}
}

// extractCommon follows the free diagonal edges from p's endpoint as far as the inputs match,
// records the match run on p's chain, and returns the new position in y.
func (m *search[T]) extractCommon(p *path, diagonal int) int {
	oldLen, newLen := len(m.x), len(m.y)
	oldPos := p.oldPos
	newPos := oldPos - diagonal
	commonCount := 0
	for newPos+1 < newLen && oldPos+1 < oldLen && m.eq(m.x[oldPos+1], m.y[newPos+1]) {
		newPos++
		oldPos++
		commonCount++
	}
	if commonCount > 0 {
		p.tail = m.push(p.tail, commonCount, false, false)
	}
	p.oldPos = oldPos
	return newPos
}

// components materializes the backward chain ending at tail into forward order, merging adjacent
// runs of the same kind left behind by the extension step.
func (m *search[T]) components(tail int32) []Component {
	out := []Component{}
	for i := tail; i >= 0; i = m.arena[i].prev {
		c := m.arena[i]
		out = append(out, Component{Count: c.count, Added: c.added, Removed: c.removed})
	}
	slices.Reverse(out)

	merged := out[:0]
	for _, c := range out {
		if n := len(merged); n > 0 && merged[n-1].Added == c.Added && merged[n-1].Removed == c.Removed {
			merged[n-1].Count += c.Count
			continue
		}
		merged = append(merged, c)
	}
	return merged
}
