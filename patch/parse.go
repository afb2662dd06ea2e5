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
	"regexp"
	"strconv"
	"strings"

	"github.com/diffkit/diffkit/internal/config"
)

// ParseError reports a line [Parse] could not make sense of. It is only returned under
// [Strict]; the default mode skips unknown lines.
type ParseError struct {
	// Line is the 1-based line number in the patch text.
	Line int
	// Text is the offending line.
	Text string
	// Reason describes what was expected.
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("patch: line %d: %s: %q", e.Line, e.Reason, e.Text)
}

const parseFlags = config.Strict

var (
	delimRE      = regexp.MustCompile("\r\n|[\n\v\f\r]")
	indexRE      = regexp.MustCompile(`^(?:Index:|diff(?: -r \w+)+)\s+(.+?)\s*$`)
	fileHeaderRE = regexp.MustCompile(`^(---|\+\+\+)\s+(.*)$`)
	hunkHeaderRE = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)
	headerTailRE = regexp.MustCompile(`^(---|\+\+\+|@@)\s`)
	nextFileRE   = regexp.MustCompile(`^(Index:|diff|---|\+\+\+)\s`)
	quotedNameRE = regexp.MustCompile(`^".*"$`)
)

// Parse reads unified-diff text into structured patches, one per file section. Lines the
// parser does not recognize are skipped unless [Strict] is set, in which case they
// produce a [*ParseError]. Strict mode additionally verifies that each hunk's line
// counts match its header.
//
// The following options are supported: [Strict]
func Parse(text string, opts ...Option) ([]*Patch, error) {
	cfg := config.FromOptions(opts, parseFlags)
	p := &parser{
		lines:  delimRE.Split(text, -1),
		delims: delimRE.FindAllString(text, -1),
		strict: cfg.Strict,
	}

	var list []*Patch
	for p.i < len(p.lines) {
		patch, err := p.parseFile()
		if err != nil {
			return nil, err
		}
		list = append(list, patch)
	}
	return list, nil
}

type parser struct {
	lines  []string
	delims []string
	i      int
	strict bool
}

// delim returns the delimiter following line i, defaulting to "\n" for the last line.
func (p *parser) delim(i int) string {
	if i < len(p.delims) {
		return p.delims[i]
	}
	return "\n"
}

func (p *parser) parseFile() (*Patch, error) {
	patch := &Patch{}

	// Metadata lines before the file headers.
	for p.i < len(p.lines) {
		line := p.lines[p.i]
		if headerTailRE.MatchString(line) {
			break
		}
		if m := indexRE.FindStringSubmatch(line); m != nil {
			patch.Index = m[1]
		}
		p.i++
	}

	p.parseFileHeader(patch)
	p.parseFileHeader(patch)

	for p.i < len(p.lines) {
		line := p.lines[p.i]
		switch {
		case nextFileRE.MatchString(line):
			return patch, nil
		case strings.HasPrefix(line, "@@"):
			hunk, err := p.parseHunk()
			if err != nil {
				return nil, err
			}
			patch.Hunks = append(patch.Hunks, hunk)
		case line != "" && p.strict:
			return nil, &ParseError{Line: p.i + 1, Text: line, Reason: "unknown line"}
		default:
			p.i++
		}
	}
	return patch, nil
}

// parseFileHeader consumes a "---" or "+++" line if present. File names may be quoted;
// an optional header follows after a tab.
func (p *parser) parseFileHeader(patch *Patch) {
	if p.i >= len(p.lines) {
		return
	}
	m := fileHeaderRE.FindStringSubmatch(p.lines[p.i])
	if m == nil {
		return
	}
	fileName, header, _ := strings.Cut(m[2], "\t")
	fileName = strings.ReplaceAll(fileName, `\\`, `\`)
	if quotedNameRE.MatchString(fileName) {
		fileName = fileName[1 : len(fileName)-1]
	}
	header = strings.TrimSpace(header)
	if m[1] == "---" {
		patch.OldFileName = fileName
		patch.OldHeader = header
	} else {
		patch.NewFileName = fileName
		patch.NewHeader = header
	}
	p.i++
}

func (p *parser) parseHunk() (*Hunk, error) {
	headerIndex := p.i
	m := hunkHeaderRE.FindStringSubmatch(p.lines[p.i])
	if m == nil {
		return nil, &ParseError{Line: p.i + 1, Text: p.lines[p.i], Reason: "malformed hunk header"}
	}
	p.i++

	hunk := &Hunk{
		OldStart: atoi(m[1]),
		OldLines: atoiDefault(m[2], 1),
		NewStart: atoi(m[3]),
		NewLines: atoiDefault(m[4], 1),
	}

	// Undo the zero-length start quirk, see formatOne.
	if hunk.OldLines == 0 {
		hunk.OldStart++
	}
	if hunk.NewLines == 0 {
		hunk.NewStart++
	}

	addCount, removeCount := 0, 0
body:
	for ; p.i < len(p.lines); p.i++ {
		line := p.lines[p.i]

		// A "--- " line could be a removal or the next file's header. It is a header
		// when followed by "+++ " and a hunk.
		if strings.HasPrefix(line, "--- ") &&
			p.i+2 < len(p.lines) &&
			strings.HasPrefix(p.lines[p.i+1], "+++ ") &&
			strings.HasPrefix(p.lines[p.i+2], "@@") {
			break
		}

		// An empty line inside a hunk body stands for a context line with empty
		// content; a trailing empty line after the final delimiter does not.
		op := byte(' ')
		if line != "" {
			op = line[0]
		} else if p.i == len(p.lines)-1 {
			break
		}

		var kind LineKind
		switch op {
		case ' ':
			kind = ContextLine
			addCount++
			removeCount++
		case '+':
			kind = AddedLine
			addCount++
		case '-':
			kind = RemovedLine
			removeCount++
		case '\\':
			kind = NoNewlineLine
		default:
			break body
		}

		content := line
		if line != "" {
			content = line[1:]
		}
		hunk.Lines = append(hunk.Lines, Line{Kind: kind, Text: content, Delim: p.delim(p.i)})
	}

	// A hunk spanning a single line omits the count; detect the zero-count case from
	// the body.
	if addCount == 0 && hunk.NewLines == 1 {
		hunk.NewLines = 0
	}
	if removeCount == 0 && hunk.OldLines == 1 {
		hunk.OldLines = 0
	}

	if p.strict {
		if addCount != hunk.NewLines {
			return nil, &ParseError{Line: headerIndex + 1, Text: p.lines[headerIndex], Reason: "added line count does not match header"}
		}
		if removeCount != hunk.OldLines {
			return nil, &ParseError{Line: headerIndex + 1, Text: p.lines[headerIndex], Reason: "removed line count does not match header"}
		}
	}
	return hunk, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	return atoi(s)
}
