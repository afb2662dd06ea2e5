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

// Package patch builds, serializes, parses, applies, reverses and merges unified-diff
// patches on top of the line diffs produced by [github.com/diffkit/diffkit].
//
// A [Patch] is the structured form of one file's unified diff: file names, optional
// headers, and a list of [Hunk] values. [Structured] builds one from two versions of a
// text, [Format] renders it as patch text, [Parse] reads patch text back, [Apply] replays
// a patch onto (possibly drifted) source text, [Reverse] flips it, and [Merge] combines
// two patches against a common base into a three-way merge result.
package patch

import "errors"

//go:generate go tool stringer -type=LineKind

// LineKind classifies a single hunk line.
type LineKind int

const (
	// ContextLine is an unchanged line present in both file versions.
	ContextLine LineKind = iota
	// AddedLine is a line present only in the new file version.
	AddedLine
	// RemovedLine is a line present only in the old file version.
	RemovedLine
	// NoNewlineLine is the "\ No newline at end of file" marker following the last line
	// of a file that does not end in a newline.
	NoNewlineLine
	// ConflictLine is a merge conflict: Mine and Theirs hold the two sides' lines. Only
	// [Merge] produces conflict lines.
	ConflictLine
)

// Line is a single line of a hunk.
type Line struct {
	Kind LineKind

	// Text is the line content without the leading operation character and without its
	// line delimiter.
	Text string

	// Delim is the delimiter that followed the line in the patch text. Empty means
	// unknown; [Apply] substitutes "\n".
	Delim string

	// Mine and Theirs are set only when Kind is [ConflictLine].
	Mine   []Line
	Theirs []Line
}

// Hunk is one contiguous region of change, with up to the configured number of context
// lines on either side.
type Hunk struct {
	// OldStart and NewStart are 1-based line numbers of the hunk's first line in the old
	// and new file.
	OldStart, NewStart int

	// OldLines and NewLines count the hunk's lines in the old and new file. A count of
	// -1 marks a merged hunk whose conflict sides disagree, making the count undefined.
	OldLines, NewLines int

	Lines []Line

	// Conflict reports whether Lines contains at least one [ConflictLine].
	Conflict bool
}

// Patch is the structured form of a single file's unified diff.
type Patch struct {
	// Index is the file name from an "Index:" or "diff" metadata line, if any.
	Index string

	OldFileName, NewFileName string
	OldHeader, NewHeader     string

	Hunks []*Hunk
}

// FieldConflict records two irreconcilable values for a patch header field.
type FieldConflict struct {
	Mine, Theirs string
}

// MergeResult is the outcome of a three-way merge. When Conflict is false the embedded
// Patch is a clean combination of both inputs. Otherwise at least one hunk contains
// [ConflictLine] entries or one of the field conflict records is set, and the patch
// cannot be applied until the conflicts are resolved.
type MergeResult struct {
	Patch

	Conflict bool

	OldFileNameConflict *FieldConflict
	NewFileNameConflict *FieldConflict
	OldHeaderConflict   *FieldConflict
	NewHeaderConflict   *FieldConflict
}

var (
	// ErrPlacement is returned by [Apply] when a hunk cannot be placed on the source
	// text within the configured fuzz budget.
	ErrPlacement = errors.New("patch: hunk cannot be placed on source text")

	// ErrMissingBase is returned by [MergeText] when an input is plain file content
	// rather than a patch and no base text was supplied.
	ErrMissingBase = errors.New("patch: base text required to diff plain content")

	// ErrMultiplePatches is returned by [ApplyText] when the patch text contains more
	// than one file's patch.
	ErrMultiplePatches = errors.New("patch: text contains more than one patch")
)
