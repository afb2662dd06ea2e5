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

package diffkit_test

import (
	"fmt"
	"strings"

	"github.com/diffkit/diffkit"
)

// Compare two phrases word by word and render the changes inline.
func ExampleDiffWords() {
	changes := diffkit.DiffWords("the quick brown fox", "the slow brown fox")
	for _, c := range changes {
		switch {
		case c.Added:
			fmt.Printf("{+%s+}", c.Value)
		case c.Removed:
			fmt.Printf("[-%s-]", c.Value)
		default:
			fmt.Print(c.Value)
		}
	}
	// Output:
	// the [-quick-]{+slow+} brown fox
}

// Compare two texts line by line and print a diff-style listing.
func ExampleDiffLines() {
	old := "one\ntwo\nthree\n"
	new := "one\n2\nthree\n"
	for _, c := range diffkit.DiffLines(old, new) {
		prefix := " "
		switch {
		case c.Added:
			prefix = "+"
		case c.Removed:
			prefix = "-"
		}
		for _, line := range strings.Split(strings.TrimSuffix(c.Value, "\n"), "\n") {
			fmt.Println(prefix + line)
		}
	}
	// Output:
	//  one
	// -two
	// +2
	//  three
}
