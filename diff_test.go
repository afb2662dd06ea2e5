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
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func TestDiffChars(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		opts     []Option
		want     []Change
	}{
		{
			name: "empty",
			old:  "",
			new:  "",
			want: []Change{},
		},
		{
			name: "identical",
			old:  "abc",
			new:  "abc",
			want: []Change{{Value: "abc", Count: 3}},
		},
		{
			name: "replace-middle",
			old:  "abc",
			new:  "axc",
			want: []Change{
				{Value: "a", Count: 1},
				{Value: "b", Count: 1, Removed: true},
				{Value: "x", Count: 1, Added: true},
				{Value: "c", Count: 1},
			},
		},
		{
			name: "append",
			old:  "ab",
			new:  "abc",
			want: []Change{
				{Value: "ab", Count: 2},
				{Value: "c", Count: 1, Added: true},
			},
		},
		{
			name: "ignore-case",
			old:  "ABC",
			new:  "abc",
			opts: []Option{IgnoreCase()},
			want: []Change{{Value: "abc", Count: 3}},
		},
		{
			name: "custom-equality",
			old:  "abc",
			new:  "ABC",
			opts: []Option{Equals(strings.EqualFold)},
			want: []Change{{Value: "ABC", Count: 3}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiffChars(tt.old, tt.new, tt.opts...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DiffChars(%q, %q) changes are different [-want,+got]:\n%s", tt.old, tt.new, diff)
			}
		})
	}
}

func TestDiffWords(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     []Change
	}{
		{
			name: "replace-word",
			old:  "the quick brown fox",
			new:  "the slow brown fox",
			want: []Change{
				{Value: "the ", Count: 2},
				{Value: "quick", Count: 1, Removed: true},
				{Value: "slow", Count: 1, Added: true},
				{Value: " brown fox", Count: 4},
			},
		},
		{
			name: "whitespace-only-change",
			old:  "beep boop",
			new:  "beep  boop",
			want: []Change{{Value: "beep  boop", Count: 3}},
		},
		{
			name: "trailing-whitespace-folds",
			old:  "beep boop",
			new:  "beep boop  ",
			want: []Change{{Value: "beep boop  ", Count: 3}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiffWords(tt.old, tt.new)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DiffWords(%q, %q) changes are different [-want,+got]:\n%s", tt.old, tt.new, diff)
			}
		})
	}
}

func TestDiffWordsWithSpace(t *testing.T) {
	got := DiffWordsWithSpace("beep boop", "beep  boop")
	want := []Change{
		{Value: "beep", Count: 1},
		{Value: " ", Count: 1, Removed: true},
		{Value: "  ", Count: 1, Added: true},
		{Value: "boop", Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DiffWordsWithSpace(...) changes are different [-want,+got]:\n%s", diff)
	}
}

func TestDiffLines(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		opts     []Option
		want     []Change
	}{
		{
			name: "replace-line",
			old:  "a\nb\nc\n",
			new:  "a\nx\nc\n",
			want: []Change{
				{Value: "a\n", Count: 1},
				{Value: "b\n", Count: 1, Removed: true},
				{Value: "x\n", Count: 1, Added: true},
				{Value: "c\n", Count: 1},
			},
		},
		{
			name: "newline-is-token",
			old:  "a\nb\n",
			new:  "a\nc\n",
			opts: []Option{NewlineIsToken()},
			want: []Change{
				{Value: "a\n", Count: 2},
				{Value: "b", Count: 1, Removed: true},
				{Value: "c", Count: 1, Added: true},
				{Value: "\n", Count: 1},
			},
		},
		{
			name: "strip-trailing-cr",
			old:  "a\r\nb\r\n",
			new:  "a\nb\n",
			opts: []Option{StripTrailingCr()},
			want: []Change{{Value: "a\nb\n", Count: 2}},
		},
		{
			name: "missing-final-newline",
			old:  "a\nb",
			new:  "a\nb\n",
			want: []Change{
				{Value: "a\n", Count: 1},
				{Value: "b", Count: 1, Removed: true},
				{Value: "b\n", Count: 1, Added: true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiffLines(tt.old, tt.new, tt.opts...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DiffLines(%q, %q) changes are different [-want,+got]:\n%s", tt.old, tt.new, diff)
			}
		})
	}
}

func TestDiffTrimmedLines(t *testing.T) {
	// Lines that differ only in surrounding whitespace compare equal; the longer variant is
	// kept in the change value.
	got := DiffTrimmedLines("beep \nboop\n", "beep\nboop\n")
	want := []Change{{Value: "beep \nboop\n", Count: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DiffTrimmedLines(...) changes are different [-want,+got]:\n%s", diff)
	}
}

func TestDiffSentences(t *testing.T) {
	got := DiffSentences(
		"This is a sentence. This is another one.",
		"This is a sentence. This is yet another one!",
	)
	want := []Change{
		{Value: "This is a sentence. ", Count: 2},
		{Value: "This is another one.", Count: 1, Removed: true},
		{Value: "This is yet another one!", Count: 1, Added: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DiffSentences(...) changes are different [-want,+got]:\n%s", diff)
	}
}

func TestDiffCSS(t *testing.T) {
	got := DiffCSS(".a { color: red; }", ".a { color: blue; }")
	want := []Change{
		{Value: ".a { color: ", Count: 7},
		{Value: "red", Count: 1, Removed: true},
		{Value: "blue", Count: 1, Added: true},
		{Value: "; }", Count: 3},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DiffCSS(...) changes are different [-want,+got]:\n%s", diff)
	}
}

func TestDiffAbandoned(t *testing.T) {
	if got := DiffChars("abc", "xyz", MaxEditLength(1)); got != nil {
		t.Errorf("DiffChars(..., MaxEditLength(1)) = %v, want nil", got)
	}
	// The exact edit distance is still within bounds.
	if got := DiffChars("abc", "xyz", MaxEditLength(6)); got == nil {
		t.Error("DiffChars(..., MaxEditLength(6)) = nil, want a result")
	}

	var ob, nb strings.Builder
	rng := rand.New(rand.NewPCG(1, 2))
	for range 5000 {
		ob.WriteByte(byte('a' + rng.IntN(26)))
		nb.WriteByte(byte('A' + rng.IntN(26)))
	}
	if got := DiffChars(ob.String(), nb.String(), Timeout(time.Nanosecond)); got != nil {
		t.Error("DiffChars(..., Timeout(1ns)) returned a result, want nil")
	}
}

func TestDiffCompletedNeverNil(t *testing.T) {
	if got := DiffChars("", ""); got == nil {
		t.Error("DiffChars(\"\", \"\") = nil, want empty non-nil result")
	}
	if got := DiffLines("", ""); got == nil {
		t.Error("DiffLines(\"\", \"\") = nil, want empty non-nil result")
	}
}

func TestDiffCharsUnsupportedOption(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("DiffChars(..., NewlineIsToken()) did not panic")
		}
	}()
	DiffChars("a", "b", NewlineIsToken())
}

// editChars sums the number of inserted and removed characters over a change list.
func editChars(changes []Change) int {
	n := 0
	for _, c := range changes {
		if c.Added || c.Removed {
			n += len(c.Value)
		}
	}
	return n
}

func TestDiffCharsCrossValidation(t *testing.T) {
	// Both implementations compute minimal edit scripts, so the total number of edited
	// characters must agree even where the scripts themselves differ.
	dmp := diffmatchpatch.New()
	rng := rand.New(rand.NewPCG(3, 14))
	randStr := func(n int) string {
		var sb strings.Builder
		for range n {
			sb.WriteByte(byte('a' + rng.IntN(4)))
		}
		return sb.String()
	}
	for range 100 {
		oldStr, newStr := randStr(rng.IntN(30)), randStr(rng.IntN(30))
		got := DiffChars(oldStr, newStr)
		if got == nil {
			t.Fatalf("DiffChars(%q, %q) = nil, want a result", oldStr, newStr)
		}

		ref := dmp.DiffMain(oldStr, newStr, false)
		refEdits := 0
		for _, d := range ref {
			if d.Type != diffmatchpatch.DiffEqual {
				refEdits += len(d.Text)
			}
		}
		if gotEdits := editChars(got); gotEdits != refEdits {
			t.Errorf("DiffChars(%q, %q) edits %d characters, reference edits %d", oldStr, newStr, gotEdits, refEdits)
		}

		// The script must reconstruct both inputs.
		var ob, nb strings.Builder
		for _, c := range got {
			if !c.Added {
				ob.WriteString(c.Value)
			}
			if !c.Removed {
				nb.WriteString(c.Value)
			}
		}
		if ob.String() != oldStr || nb.String() != newStr {
			t.Errorf("DiffChars(%q, %q) script reconstructs %q, %q", oldStr, newStr, ob.String(), nb.String())
		}
	}
}
