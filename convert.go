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

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ToDiffMatchPatch converts a change list into the diff representation of
// github.com/sergi/go-diff, for interoperability with code built on that package.
func ToDiffMatchPatch(changes []Change) []diffmatchpatch.Diff {
	diffs := make([]diffmatchpatch.Diff, 0, len(changes))
	for _, c := range changes {
		op := diffmatchpatch.DiffEqual
		switch {
		case c.Added:
			op = diffmatchpatch.DiffInsert
		case c.Removed:
			op = diffmatchpatch.DiffDelete
		}
		diffs = append(diffs, diffmatchpatch.Diff{Type: op, Text: c.Value})
	}
	return diffs
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// ToXML renders a change list as markup where insertions are wrapped in <ins> tags and
// removals in <del> tags. Change values are escaped.
func ToXML(changes []Change) string {
	var sb strings.Builder
	for _, c := range changes {
		switch {
		case c.Added:
			sb.WriteString("<ins>")
			xmlEscaper.WriteString(&sb, c.Value)
			sb.WriteString("</ins>")
		case c.Removed:
			sb.WriteString("<del>")
			xmlEscaper.WriteString(&sb, c.Value)
			sb.WriteString("</del>")
		default:
			xmlEscaper.WriteString(&sb, c.Value)
		}
	}
	return sb.String()
}
