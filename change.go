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
	"github.com/diffkit/diffkit/internal/config"
	"github.com/diffkit/diffkit/internal/myers"
)

// Change is one group of a diff result.
//
//   - For an insertion, Added is set and Value holds text present only in the new input.
//   - For a deletion, Removed is set and Value holds text present only in the old input.
//   - Otherwise the group is common to both inputs.
//
// Count is the number of tokens the group spans in the granularity of the diff that produced it.
type Change struct {
	Value   string
	Count   int
	Added   bool
	Removed bool
}

// buildChanges turns the edit script components into Change groups by joining the token runs they
// span. For unchanged runs in longest-token mode the old token is preferred whenever it is longer
// than its new counterpart, which makes single-line replacements read as one replacement instead
// of a delete/insert pair of differing lengths.
func buildChanges(strat strategy, comps []myers.Component, oldTokens, newTokens []string, cfg config.Config) []Change {
	changes := make([]Change, 0, len(comps))
	oldPos, newPos := 0, 0
	for _, c := range comps {
		switch {
		case c.Removed:
			changes = append(changes, Change{
				Value:   strat.join(oldTokens[oldPos : oldPos+c.Count]),
				Count:   c.Count,
				Removed: true,
			})
			oldPos += c.Count
		case c.Added:
			changes = append(changes, Change{
				Value: strat.join(newTokens[newPos : newPos+c.Count]),
				Count: c.Count,
				Added: true,
			})
			newPos += c.Count
		default:
			value := newTokens[newPos : newPos+c.Count]
			if strat.useLongestToken {
				longest := make([]string, c.Count)
				for i := range longest {
					if old := oldTokens[oldPos+i]; len(old) > len(value[i]) {
						longest[i] = old
					} else {
						longest[i] = value[i]
					}
				}
				value = longest
			}
			changes = append(changes, Change{Value: strat.join(value), Count: c.Count})
			oldPos += c.Count
			newPos += c.Count
		}
	}

	// A trailing insertion or deletion that compares equal to the empty token (possible when
	// whitespace is ignored) is folded into the preceding group instead of standing alone.
	if n := len(changes); n > 1 {
		last := changes[n-1]
		if (last.Added || last.Removed) && strat.equals("", last.Value, cfg) {
			changes[n-2].Value += last.Value
			changes = changes[:n-1]
		}
	}
	return changes
}
