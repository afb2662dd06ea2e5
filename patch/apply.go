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
	"fmt"
	"slices"
	"strings"

	"github.com/diffkit/diffkit/internal/config"
)

const applyFlags = config.FuzzFactor | config.CompareLine

// Apply replays p onto source and returns the patched text. Hunks are placed at their
// recorded positions first; when the surrounding lines do not match (the source has
// drifted since the patch was built), placement is retried at alternating offsets
// +1, -1, +2, -2, ... around the recorded position, never above the end of the previous
// hunk. [FuzzFactor] relaxes the match requirement. Application is all or nothing: if
// any hunk cannot be placed, [ErrPlacement] is returned and source is left unused.
//
// The following options are supported: [FuzzFactor], [CompareLine]
func Apply(source string, p *Patch, opts ...Option) (string, error) {
	cfg := config.FromOptions(opts, applyFlags)
	return apply(source, p, cfg)
}

func apply(source string, p *Patch, cfg config.Config) (string, error) {
	for _, h := range p.Hunks {
		if h.Conflict || h.OldLines < 0 || h.NewLines < 0 {
			return "", errors.New("patch: cannot apply a patch with unresolved conflicts")
		}
	}

	compareLine := cfg.CompareLine
	if compareLine == nil {
		compareLine = func(lineNo int, line string, op byte, content string) bool {
			return line == content
		}
	}

	lines := delimRE.Split(source, -1)
	delims := delimRE.FindAllString(source, -1)

	// hunkFits reports whether every context and removal line of h matches the source
	// at the given position, tolerating up to cfg.FuzzFactor mismatches.
	hunkFits := func(h *Hunk, toPos int) bool {
		errorCount := 0
		for _, l := range h.Lines {
			if l.Kind != ContextLine && l.Kind != RemovedLine {
				continue
			}
			op := byte(' ')
			if l.Kind == RemovedLine {
				op = '-'
			}
			if toPos < 0 || toPos >= len(lines) || !compareLine(toPos+1, lines[toPos], op, l.Text) {
				errorCount++
				if errorCount > cfg.FuzzFactor {
					return false
				}
			}
			toPos++
		}
		return true
	}

	// First pass: find a position for every hunk. Each hunk's search starts at its
	// recorded position shifted by the offset accumulated from earlier hunks and may
	// not climb above minLine, the end of the previous hunk.
	offsets := make([]int, len(p.Hunks))
	offset, minLine := 0, 0
	for i, h := range p.Hunks {
		maxLine := len(lines) - h.OldLines
		toPos := offset + h.OldStart - 1

		it := newDistanceIterator(toPos, minLine, maxLine)
		localOffset, ok := 0, true
		for ok {
			if hunkFits(h, toPos+localOffset) {
				offset += localOffset
				break
			}
			localOffset, ok = it.next()
		}
		if !ok {
			return "", fmt.Errorf("%w: hunk #%d", ErrPlacement, i+1)
		}
		offsets[i] = offset
		minLine = offset + h.OldStart + h.OldLines
	}

	// Second pass: splice every hunk in.
	removeEOFNL, addEOFNL := false, false
	diffOffset := 0
	for i, h := range p.Hunks {
		toPos := h.OldStart + offsets[i] + diffOffset - 1
		diffOffset += h.NewLines - h.OldLines

		prevKind := LineKind(-1)
		for _, l := range h.Lines {
			delim := l.Delim
			if delim == "" {
				delim = "\n"
			}
			switch l.Kind {
			case ContextLine:
				toPos++
			case RemovedLine:
				lines = slices.Delete(lines, toPos, toPos+1)
				if toPos < len(delims) {
					delims = slices.Delete(delims, toPos, toPos+1)
				}
			case AddedLine:
				lines = slices.Insert(lines, toPos, l.Text)
				delims = slices.Insert(delims, min(toPos, len(delims)), delim)
				toPos++
			case NoNewlineLine:
				if prevKind == AddedLine {
					removeEOFNL = true
				} else if prevKind == RemovedLine {
					addEOFNL = true
				}
			}
			prevKind = l.Kind
		}
	}

	// Reconcile the end-of-file newline state.
	if removeEOFNL {
		for len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
			if len(delims) > 0 {
				delims = delims[:len(delims)-1]
			}
		}
	} else if addEOFNL {
		lines = append(lines, "")
		delims = append(delims, "\n")
	}

	var sb strings.Builder
	for k, l := range lines {
		sb.WriteString(l)
		if k < len(lines)-1 && k < len(delims) {
			sb.WriteString(delims[k])
		}
	}
	return sb.String(), nil
}

// ApplyText parses patchText and applies it to source. The text must contain exactly one
// file's patch.
//
// The following options are supported: [FuzzFactor], [CompareLine], [Strict]
func ApplyText(source, patchText string, opts ...Option) (string, error) {
	cfg := config.FromOptions(opts, applyFlags|parseFlags)
	patches, err := Parse(patchText, filterOptions(opts, parseFlags)...)
	if err != nil {
		return "", err
	}
	switch len(patches) {
	case 0:
		return "", errors.New("patch: no patch found in input")
	case 1:
		return apply(source, patches[0], cfg)
	default:
		return "", ErrMultiplePatches
	}
}

// LoadFunc supplies the current content of the file a patch applies to.
type LoadFunc func(p *Patch) (string, error)

// PatchedFunc receives the patched content of a file.
type PatchedFunc func(p *Patch, content string) error

// ApplyFiles applies a sequence of patches, loading each file through load and handing
// the result to patched. It stops at the first error.
//
// The following options are supported: [FuzzFactor], [CompareLine]
func ApplyFiles(patches []*Patch, load LoadFunc, patched PatchedFunc, opts ...Option) error {
	config.FromOptions(opts, applyFlags) // validate up front
	for _, p := range patches {
		content, err := load(p)
		if err != nil {
			return err
		}
		result, err := Apply(content, p, opts...)
		if err != nil {
			return err
		}
		if err := patched(p, result); err != nil {
			return err
		}
	}
	return nil
}

// filterOptions keeps the options from opts that set only flags in allowed.
func filterOptions(opts []Option, allowed config.Flag) []Option {
	var out []Option
	for _, opt := range opts {
		var probe config.Config
		if opt(&probe)&^allowed == 0 {
			out = append(out, opt)
		}
	}
	return out
}

// distanceIterator yields offsets 1, -1, 2, -2, ... around a start position, clamped to
// [minLine, maxLine], skipping the side that ran out of room.
type distanceIterator struct {
	start, minLine, maxLine             int
	localOffset                         int
	wantForward                         bool
	forwardExhausted, backwardExhausted bool
}

func newDistanceIterator(start, minLine, maxLine int) *distanceIterator {
	return &distanceIterator{start: start, minLine: minLine, maxLine: maxLine, localOffset: 1, wantForward: true}
}

func (it *distanceIterator) next() (int, bool) {
	for {
		if it.wantForward && !it.forwardExhausted {
			if it.backwardExhausted {
				it.localOffset++
			} else {
				it.wantForward = false
			}
			if it.start+it.localOffset <= it.maxLine {
				return it.localOffset, true
			}
			it.forwardExhausted = true
		}
		if !it.backwardExhausted {
			if !it.forwardExhausted {
				it.wantForward = true
			}
			if it.minLine <= it.start-it.localOffset {
				off := -it.localOffset
				it.localOffset++
				return off, true
			}
			it.backwardExhausted = true
			continue
		}
		return 0, false
	}
}
