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
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDiffArrays(t *testing.T) {
	tests := []struct {
		name     string
		old, new []int
		want     []ArrayChange[int]
	}{
		{
			name: "empty",
			want: []ArrayChange[int]{},
		},
		{
			name: "identical",
			old:  []int{1, 2, 3},
			new:  []int{1, 2, 3},
			want: []ArrayChange[int]{{Values: []int{1, 2, 3}, Count: 3}},
		},
		{
			name: "replace_middle",
			old:  []int{1, 2, 3},
			new:  []int{1, 4, 3},
			want: []ArrayChange[int]{
				{Values: []int{1}, Count: 1},
				{Values: []int{2}, Count: 1, Removed: true},
				{Values: []int{4}, Count: 1, Added: true},
				{Values: []int{3}, Count: 1},
			},
		},
		{
			name: "append",
			old:  []int{1, 2},
			new:  []int{1, 2, 3, 4},
			want: []ArrayChange[int]{
				{Values: []int{1, 2}, Count: 2},
				{Values: []int{3, 4}, Count: 2, Added: true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiffArrays(tt.old, tt.new)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DiffArrays(%v, %v) is different [-want,+got]:\n%s", tt.old, tt.new, diff)
			}
		})
	}
}

func TestDiffArraysFunc(t *testing.T) {
	old := []string{"Foo", "bar"}
	new := []string{"foo", "baz"}
	got := DiffArraysFunc(old, new, func(a, b string) bool {
		return strings.EqualFold(a, b)
	})
	want := []ArrayChange[string]{
		{Values: []string{"foo"}, Count: 1},
		{Values: []string{"bar"}, Count: 1, Removed: true},
		{Values: []string{"baz"}, Count: 1, Added: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DiffArraysFunc(%v, %v, EqualFold) is different [-want,+got]:\n%s", old, new, diff)
	}
}

func TestDiffArraysMaxEditLength(t *testing.T) {
	if got := DiffArrays([]int{1, 2, 3}, []int{4, 5, 6}, MaxEditLength(1)); got != nil {
		t.Errorf("DiffArrays(...) = %v, want nil for an abandoned diff", got)
	}
}
