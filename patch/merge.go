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

package patch

import (
	"errors"
	"math"
	"regexp"
	"slices"
)

// Merge performs a three-way merge of two patches made against the same base.
// Non-overlapping hunks pass through with their positions shifted by the other side's
// line-count deltas. Overlapping hunks are reconciled line by line; where the two sides
// made irreconcilable edits, the merged hunk carries [ConflictLine] entries and the
// result's Conflict flag is set.
func Merge(mine, theirs *Patch) *MergeResult {
	ret := &MergeResult{}

	// The index has no positional meaning, so any value passes through.
	if mine.Index != "" {
		ret.Index = mine.Index
	} else {
		ret.Index = theirs.Index
	}

	if mine.NewFileName != "" || theirs.NewFileName != "" {
		switch {
		case !fileNameChanged(mine):
			// No rename on our side, take theirs (falling back to ours).
			ret.OldFileName = coalesce(theirs.OldFileName, mine.OldFileName)
			ret.NewFileName = coalesce(theirs.NewFileName, mine.NewFileName)
			ret.OldHeader = coalesce(theirs.OldHeader, mine.OldHeader)
			ret.NewHeader = coalesce(theirs.NewHeader, mine.NewHeader)
		case !fileNameChanged(theirs):
			ret.OldFileName = mine.OldFileName
			ret.NewFileName = mine.NewFileName
			ret.OldHeader = mine.OldHeader
			ret.NewHeader = mine.NewHeader
		default:
			// Both sides renamed. Fields that agree pass through, the rest conflict.
			ret.OldFileName = selectField(ret, mine.OldFileName, theirs.OldFileName, &ret.OldFileNameConflict)
			ret.NewFileName = selectField(ret, mine.NewFileName, theirs.NewFileName, &ret.NewFileNameConflict)
			ret.OldHeader = selectField(ret, mine.OldHeader, theirs.OldHeader, &ret.OldHeaderConflict)
			ret.NewHeader = selectField(ret, mine.NewHeader, theirs.NewHeader, &ret.NewHeaderConflict)
		}
	}

	end := &Hunk{OldStart: math.MaxInt}
	mineIndex, theirsIndex := 0, 0
	mineOffset, theirsOffset := 0, 0
	for mineIndex < len(mine.Hunks) || theirsIndex < len(theirs.Hunks) {
		mineCurrent, theirsCurrent := end, end
		if mineIndex < len(mine.Hunks) {
			mineCurrent = mine.Hunks[mineIndex]
		}
		if theirsIndex < len(theirs.Hunks) {
			theirsCurrent = theirs.Hunks[theirsIndex]
		}

		switch {
		case hunkBefore(mineCurrent, theirsCurrent):
			ret.Hunks = append(ret.Hunks, cloneHunk(mineCurrent, mineOffset))
			mineIndex++
			theirsOffset += mineCurrent.NewLines - mineCurrent.OldLines
		case hunkBefore(theirsCurrent, mineCurrent):
			ret.Hunks = append(ret.Hunks, cloneHunk(theirsCurrent, theirsOffset))
			theirsIndex++
			mineOffset += theirsCurrent.NewLines - theirsCurrent.OldLines
		default:
			merged := &Hunk{
				OldStart: min(mineCurrent.OldStart, theirsCurrent.OldStart),
				NewStart: min(mineCurrent.NewStart+mineOffset, theirsCurrent.OldStart+theirsOffset),
			}
			mergeLines(merged, mineCurrent.OldStart, mineCurrent.Lines, theirsCurrent.OldStart, theirsCurrent.Lines)
			mineIndex++
			theirsIndex++
			if merged.Conflict {
				ret.Conflict = true
			}
			ret.Hunks = append(ret.Hunks, merged)
		}
	}

	return ret
}

var (
	hunkMarkRE  = regexp.MustCompile(`(?m)^@@`)
	indexMarkRE = regexp.MustCompile(`(?m)^Index:`)
)

// MergeText is like [Merge] for serialized inputs. Each input may be patch text or plain
// file content; plain content is diffed against base first, so base is required unless
// both inputs are patches.
func MergeText(mine, theirs string, base ...string) (*MergeResult, error) {
	var baseText *string
	if len(base) > 0 {
		baseText = &base[0]
	}
	m, err := loadPatch(mine, baseText)
	if err != nil {
		return nil, err
	}
	t, err := loadPatch(theirs, baseText)
	if err != nil {
		return nil, err
	}
	return Merge(m, t), nil
}

func loadPatch(text string, base *string) (*Patch, error) {
	if hunkMarkRE.MatchString(text) || indexMarkRE.MatchString(text) {
		patches, err := Parse(text)
		if err != nil {
			return nil, err
		}
		if len(patches) == 0 {
			return nil, errors.New("patch: no patch found in input")
		}
		return patches[0], nil
	}
	if base == nil {
		return nil, ErrMissingBase
	}
	return Structured("", "", *base, text, "", ""), nil
}

func fileNameChanged(p *Patch) bool {
	return p.NewFileName != "" && p.NewFileName != p.OldFileName
}

func coalesce(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func selectField(ret *MergeResult, mine, theirs string, conflict **FieldConflict) string {
	if mine == theirs {
		return mine
	}
	ret.Conflict = true
	*conflict = &FieldConflict{Mine: mine, Theirs: theirs}
	return ""
}

// hunkBefore reports whether test ends strictly before check starts.
func hunkBefore(test, check *Hunk) bool {
	return test.OldStart < check.OldStart &&
		test.OldStart+test.OldLines < check.OldStart
}

func cloneHunk(h *Hunk, offset int) *Hunk {
	return &Hunk{
		OldStart: h.OldStart,
		OldLines: h.OldLines,
		NewStart: h.NewStart + offset,
		NewLines: h.NewLines,
		Lines:    slices.Clone(h.Lines),
		Conflict: h.Conflict,
	}
}

// lineCursor walks one side's hunk lines during a merge. offset is the side's position
// in the base file, used to align leading context.
type lineCursor struct {
	offset int
	lines  []Line
	index  int
}

func (c *lineCursor) done() bool    { return c.index >= len(c.lines) }
func (c *lineCursor) current() Line { return c.lines[c.index] }

func mergeLines(hunk *Hunk, mineOffset int, mineLines []Line, theirOffset int, theirLines []Line) {
	mine := &lineCursor{offset: mineOffset, lines: mineLines}
	their := &lineCursor{offset: theirOffset, lines: theirLines}

	// The side that starts earlier in the base contributes its leading lines first.
	insertLeading(hunk, mine, their)
	insertLeading(hunk, their, mine)

	for !mine.done() && !their.done() {
		mineCurrent, theirCurrent := mine.current(), their.current()

		mineChanged := mineCurrent.Kind == AddedLine || mineCurrent.Kind == RemovedLine
		theirChanged := theirCurrent.Kind == AddedLine || theirCurrent.Kind == RemovedLine

		switch {
		case mineChanged && theirChanged:
			mutualChange(hunk, mine, their)
		case mineCurrent.Kind == AddedLine && theirCurrent.Kind == ContextLine:
			hunk.Lines = append(hunk.Lines, collectChange(mine)...)
		case theirCurrent.Kind == AddedLine && mineCurrent.Kind == ContextLine:
			hunk.Lines = append(hunk.Lines, collectChange(their)...)
		case mineCurrent.Kind == RemovedLine && theirCurrent.Kind == ContextLine:
			removal(hunk, mine, their, false)
		case theirCurrent.Kind == RemovedLine && mineCurrent.Kind == ContextLine:
			removal(hunk, their, mine, true)
		case sameLine(mineCurrent, theirCurrent):
			hunk.Lines = append(hunk.Lines, mineCurrent)
			mine.index++
			their.index++
		default:
			conflict(hunk, collectChange(mine), collectChange(their))
		}
	}

	insertTrailing(hunk, mine)
	insertTrailing(hunk, their)

	hunk.OldLines, hunk.NewLines = calcLineCounts(hunk.Lines)
}

// mutualChange reconciles a region both sides changed. Identical edits collapse to one
// copy; pure removals where one side removes a superset of the other resolve to the
// superset. Everything else is a conflict.
func mutualChange(hunk *Hunk, mine, their *lineCursor) {
	myChanges := collectChange(mine)
	theirChanges := collectChange(their)

	if allRemoves(myChanges) && allRemoves(theirChanges) {
		if linesStartWith(myChanges, theirChanges) &&
			skipRemoveSuperset(their, myChanges, len(myChanges)-len(theirChanges)) {
			hunk.Lines = append(hunk.Lines, myChanges...)
			return
		}
		if linesStartWith(theirChanges, myChanges) &&
			skipRemoveSuperset(mine, theirChanges, len(theirChanges)-len(myChanges)) {
			hunk.Lines = append(hunk.Lines, theirChanges...)
			return
		}
	} else if linesEqual(myChanges, theirChanges) {
		hunk.Lines = append(hunk.Lines, myChanges...)
		return
	}

	conflict(hunk, myChanges, theirChanges)
}

// removal reconciles one side's removal against the other side's context. When the other
// side's lines still match the removed content, the removal wins. swap keeps the
// conflict sides in mine/theirs order when called with the cursors reversed.
func removal(hunk *Hunk, mine, their *lineCursor, swap bool) {
	myChanges := collectChange(mine)
	merged, theirChanges, ok := collectContext(their, myChanges)
	if ok {
		hunk.Lines = append(hunk.Lines, merged...)
		return
	}
	if swap {
		conflict(hunk, theirChanges, myChanges)
	} else {
		conflict(hunk, myChanges, theirChanges)
	}
}

func conflict(hunk *Hunk, mine, theirs []Line) {
	hunk.Conflict = true
	hunk.Lines = append(hunk.Lines, Line{Kind: ConflictLine, Mine: mine, Theirs: theirs})
}

func insertLeading(hunk *Hunk, insert, their *lineCursor) {
	for insert.offset < their.offset && !insert.done() {
		hunk.Lines = append(hunk.Lines, insert.current())
		insert.index++
		insert.offset++
	}
}

func insertTrailing(hunk *Hunk, insert *lineCursor) {
	for !insert.done() {
		hunk.Lines = append(hunk.Lines, insert.current())
		insert.index++
	}
}

// collectChange consumes one atomic edit: a run of one operation, where additions
// directly following removals count as part of the same edit.
func collectChange(state *lineCursor) []Line {
	var ret []Line
	op := state.current().Kind
	for !state.done() {
		line := state.current()
		if op == RemovedLine && line.Kind == AddedLine {
			op = AddedLine
		}
		if op != line.Kind {
			break
		}
		ret = append(ret, line)
		state.index++
	}
	return ret
}

// collectContext walks state's lines alongside the other side's removal run
// matchChanges. ok reports that the context still matches the removed content, in which
// case merged holds the winning lines. Otherwise changes holds state's conflicting edits.
func collectContext(state *lineCursor, matchChanges []Line) (merged, changes []Line, ok bool) {
	matchIndex := 0
	contextChanges := false
	conflicted := false
	for matchIndex < len(matchChanges) && !state.done() {
		change := state.current()
		match := matchChanges[matchIndex]

		// Hitting the other side's additions ends the removal run.
		if match.Kind == AddedLine {
			break
		}

		contextChanges = contextChanges || change.Kind != ContextLine

		merged = append(merged, match)
		matchIndex++

		// Additions on this side conflict with the removal, but consume them to try to
		// line the remaining context back up.
		if change.Kind == AddedLine {
			conflicted = true
			for !state.done() && state.current().Kind == AddedLine {
				changes = append(changes, state.current())
				state.index++
			}
			if state.done() {
				break
			}
			change = state.current()
		}

		if match.Text == change.Text {
			changes = append(changes, change)
			state.index++
		} else {
			conflicted = true
		}
	}

	if matchIndex < len(matchChanges) && matchChanges[matchIndex].Kind == AddedLine && contextChanges {
		conflicted = true
	}

	if conflicted {
		return nil, changes, false
	}

	for matchIndex < len(matchChanges) {
		merged = append(merged, matchChanges[matchIndex])
		matchIndex++
	}
	return merged, changes, true
}

func allRemoves(lines []Line) bool {
	for _, l := range lines {
		if l.Kind != RemovedLine {
			return false
		}
	}
	return true
}

func sameLine(a, b Line) bool {
	return a.Kind == b.Kind && a.Text == b.Text
}

func linesEqual(a, b []Line) bool {
	return slices.EqualFunc(a, b, sameLine)
}

func linesStartWith(a, prefix []Line) bool {
	return len(a) >= len(prefix) && linesEqual(a[:len(prefix)], prefix)
}

// skipRemoveSuperset checks that the delta lines the superset removes beyond the
// subset's run are still present as context on the subset's side, and consumes them.
func skipRemoveSuperset(state *lineCursor, removeChanges []Line, delta int) bool {
	for i := 0; i < delta; i++ {
		if state.index+i >= len(state.lines) {
			return false
		}
		content := removeChanges[len(removeChanges)-delta+i].Text
		l := state.lines[state.index+i]
		if l.Kind != ContextLine || l.Text != content {
			return false
		}
	}
	state.index += delta
	return true
}

// calcLineCounts recomputes a merged hunk's line counts. Conflict lines contribute their
// sides' counts only when both sides agree; otherwise the count becomes -1.
func calcLineCounts(lines []Line) (oldLines, newLines int) {
	for _, l := range lines {
		switch l.Kind {
		case ConflictLine:
			mo, mn := calcLineCounts(l.Mine)
			to, tn := calcLineCounts(l.Theirs)
			if oldLines != -1 {
				if mo != -1 && mo == to {
					oldLines += mo
				} else {
					oldLines = -1
				}
			}
			if newLines != -1 {
				if mn != -1 && mn == tn {
					newLines += mn
				} else {
					newLines = -1
				}
			}
		case ContextLine:
			if oldLines != -1 {
				oldLines++
			}
			if newLines != -1 {
				newLines++
			}
		case AddedLine:
			if newLines != -1 {
				newLines++
			}
		case RemovedLine:
			if oldLines != -1 {
				oldLines++
			}
		}
	}
	return oldLines, newLines
}
