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

// Package diffkit compares two texts and reports their differences as an ordered list of change
// groups. A set of tokenization modes controls the unit of comparison: characters ([DiffChars]),
// words ([DiffWords], [DiffWordsWithSpace]), lines ([DiffLines], [DiffTrimmedLines]), sentences
// ([DiffSentences]), CSS tokens ([DiffCSS]), canonicalized JSON ([DiffJSON]) and arbitrary slices
// ([DiffArrays], [DiffArraysFunc]).
//
// All functions compute a minimal edit script using Myers' greedy O(ND) algorithm. The result is
// a sequence of [Change] values whose concatenation reconstructs the new text when entries marked
// Removed are skipped, and the old text when entries marked Added are skipped.
//
// Note: For unified-diff patches built on top of line diffs, please see
// [github.com/diffkit/diffkit/patch].
package diffkit
