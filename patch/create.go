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
	"fmt"
	"strings"

	"github.com/diffkit/diffkit"
	"github.com/diffkit/diffkit/internal/config"
)

// NewlineIsToken is deliberately not in this set: patch hunks assume one token per line.
const structuredFlags = config.IgnoreCase | config.IgnoreWhitespace | config.StripTrailingCr |
	config.MaxEditLength | config.Timeout | config.Equals | config.Context

// Structured diffs two versions of a text line by line and groups the changes into hunks
// with surrounding context. It returns nil when the underlying diff was abandoned because
// of [diffkit.MaxEditLength] or [diffkit.Timeout]. Unchanged runs shorter than twice the
// context size are folded into a single hunk with their neighbors.
//
// The following options are supported: [Context], [diffkit.IgnoreCase],
// [diffkit.IgnoreWhitespace], [diffkit.StripTrailingCr], [diffkit.MaxEditLength],
// [diffkit.Timeout], [diffkit.Equals]
func Structured(oldFileName, newFileName, oldStr, newStr, oldHeader, newHeader string, opts ...Option) *Patch {
	cfg := config.FromOptions(opts, structuredFlags)
	changes := diffkit.DiffLines(oldStr, newStr, opts...)
	if changes == nil {
		return nil
	}

	type run struct {
		added, removed bool
		lines          []string
	}
	runs := make([]run, 0, len(changes)+1)
	for _, c := range changes {
		runs = append(runs, run{c.Added, c.Removed, splitLines(c.Value)})
	}
	// Sentinel run so the loop closes out a trailing hunk.
	runs = append(runs, run{})

	var hunks []*Hunk
	oldRangeStart, newRangeStart := 0, 0
	var curRange []string
	oldLine, newLine := 1, 1
	for i, cur := range runs {
		lines := cur.lines
		if cur.added || cur.removed {
			if oldRangeStart == 0 {
				oldRangeStart = oldLine
				newRangeStart = newLine
				if i > 0 && cfg.Context > 0 {
					prev := runs[i-1].lines
					ctx := contextLines(prev[max(0, len(prev)-cfg.Context):])
					curRange = append(curRange, ctx...)
					oldRangeStart -= len(ctx)
					newRangeStart -= len(ctx)
				}
			}
			prefix := "-"
			if cur.added {
				prefix = "+"
			}
			for _, l := range lines {
				curRange = append(curRange, prefix+l)
			}
			if cur.added {
				newLine += len(lines)
			} else {
				oldLine += len(lines)
			}
		} else {
			if oldRangeStart != 0 {
				if len(lines) <= cfg.Context*2 && i < len(runs)-2 {
					// The unchanged run is short enough that the next hunk's leading
					// context would overlap this one's trailing context. Fold it in.
					curRange = append(curRange, contextLines(lines)...)
				} else {
					contextSize := min(len(lines), cfg.Context)
					curRange = append(curRange, contextLines(lines[:contextSize])...)
					hunks = append(hunks, &Hunk{
						OldStart: oldRangeStart,
						OldLines: oldLine - oldRangeStart + contextSize,
						NewStart: newRangeStart,
						NewLines: newLine - newRangeStart + contextSize,
						Lines:    hunkLines(curRange),
					})
					oldRangeStart, newRangeStart, curRange = 0, 0, nil
				}
			}
			oldLine += len(lines)
			newLine += len(lines)
		}
	}

	return &Patch{
		OldFileName: oldFileName,
		NewFileName: newFileName,
		OldHeader:   oldHeader,
		NewHeader:   newHeader,
		Hunks:       hunks,
	}
}

// Create builds a serialized patch between two versions of the same file.
//
// The same options as [Structured] are supported.
func Create(fileName, oldStr, newStr, oldHeader, newHeader string, opts ...Option) string {
	return CreateTwoFiles(fileName, fileName, oldStr, newStr, oldHeader, newHeader, opts...)
}

// CreateTwoFiles builds a serialized patch between two files. It returns "" when the
// underlying diff was abandoned, just as [Structured] returns nil.
//
// The same options as [Structured] are supported.
func CreateTwoFiles(oldFileName, newFileName, oldStr, newStr, oldHeader, newHeader string, opts ...Option) string {
	p := Structured(oldFileName, newFileName, oldStr, newStr, oldHeader, newHeader, opts...)
	if p == nil {
		return ""
	}
	return Format(p)
}

// splitLines cuts text into lines that keep their trailing newline. A final line without
// a trailing newline is kept as is.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	hasTrailingNl := strings.HasSuffix(text, "\n")
	parts := strings.Split(text, "\n")
	if hasTrailingNl {
		parts = parts[:len(parts)-1]
	}
	lines := make([]string, len(parts))
	for i, p := range parts {
		lines[i] = p + "\n"
	}
	if !hasTrailingNl {
		lines[len(lines)-1] = parts[len(parts)-1]
	}
	return lines
}

func contextLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = " " + l
	}
	return out
}

// hunkLines converts raw prefixed lines (content still carrying its newline) into Line
// values, inserting a no-newline marker after any line that did not end in a newline.
func hunkLines(raw []string) []Line {
	lines := make([]Line, 0, len(raw))
	for _, l := range raw {
		kind := ContextLine
		switch l[0] {
		case '+':
			kind = AddedLine
		case '-':
			kind = RemovedLine
		}
		content, hadNl := strings.CutSuffix(l[1:], "\n")
		lines = append(lines, Line{Kind: kind, Text: content, Delim: "\n"})
		if !hadNl {
			lines = append(lines, Line{Kind: NoNewlineLine, Text: noNewlineText, Delim: "\n"})
		}
	}
	return lines
}

const noNewlineText = " No newline at end of file"

// Format serializes one or more patches as unified-diff text. Multiple patches are
// separated by a blank line. Hunks containing conflict lines are rendered with
// "<<<<<<<"/"======="/">>>>>>>" markers and are not valid unified-diff input.
func Format(patches ...*Patch) string {
	parts := make([]string, len(patches))
	for i, p := range patches {
		parts[i] = formatOne(p)
	}
	return strings.Join(parts, "\n")
}

func formatOne(p *Patch) string {
	var sb strings.Builder
	if p.OldFileName == p.NewFileName {
		sb.WriteString("Index: " + p.OldFileName + "\n")
	}
	sb.WriteString(strings.Repeat("=", 67) + "\n")
	sb.WriteString("--- " + p.OldFileName)
	if p.OldHeader != "" {
		sb.WriteString("\t" + p.OldHeader)
	}
	sb.WriteString("\n+++ " + p.NewFileName)
	if p.NewHeader != "" {
		sb.WriteString("\t" + p.NewHeader)
	}
	sb.WriteString("\n")

	for _, h := range p.Hunks {
		// Unified diff quirk: a zero-length side starts one line earlier than the
		// hunk's position.
		oldStart, newStart := h.OldStart, h.NewStart
		if h.OldLines == 0 {
			oldStart--
		}
		if h.NewLines == 0 {
			newStart--
		}
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", oldStart, h.OldLines, newStart, h.NewLines)
		writeLines(&sb, h.Lines)
	}
	return sb.String()
}

func writeLines(sb *strings.Builder, lines []Line) {
	for _, l := range lines {
		switch l.Kind {
		case AddedLine:
			sb.WriteString("+" + l.Text)
		case RemovedLine:
			sb.WriteString("-" + l.Text)
		case NoNewlineLine:
			text := l.Text
			if text == "" {
				text = noNewlineText
			}
			sb.WriteString("\\" + text)
		case ConflictLine:
			sb.WriteString("<<<<<<<\n")
			writeLines(sb, l.Mine)
			sb.WriteString("=======\n")
			writeLines(sb, l.Theirs)
			sb.WriteString(">>>>>>>")
		default:
			sb.WriteString(" " + l.Text)
		}
		sb.WriteString("\n")
	}
}
