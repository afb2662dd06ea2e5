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

// Reverse returns a new patch that undoes p: old and new sides are swapped and every
// added line becomes a removed one and vice versa. Reversing twice yields the original
// patch. p is left unmodified.
func Reverse(p *Patch) *Patch {
	out := &Patch{
		Index:       p.Index,
		OldFileName: p.NewFileName,
		OldHeader:   p.NewHeader,
		NewFileName: p.OldFileName,
		NewHeader:   p.OldHeader,
		Hunks:       make([]*Hunk, len(p.Hunks)),
	}
	for i, h := range p.Hunks {
		out.Hunks[i] = &Hunk{
			OldStart: h.NewStart,
			OldLines: h.NewLines,
			NewStart: h.OldStart,
			NewLines: h.OldLines,
			Lines:    reverseLines(h.Lines),
			Conflict: h.Conflict,
		}
	}
	return out
}

func reverseLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		switch l.Kind {
		case AddedLine:
			l.Kind = RemovedLine
		case RemovedLine:
			l.Kind = AddedLine
		case ConflictLine:
			l.Mine = reverseLines(l.Mine)
			l.Theirs = reverseLines(l.Theirs)
		}
		out[i] = l
	}
	return out
}
