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
	"github.com/diffkit/diffkit"
	"github.com/diffkit/diffkit/internal/config"
)

// Option configures the functions in this package. Options from package diffkit that
// affect line diffing (for example [diffkit.IgnoreWhitespace]) remain valid for the
// patch-building functions, which diff internally.
type Option = diffkit.Option

// Context sets the number of unchanged lines included around each hunk when building a
// patch. The default is 4. Negative values are treated as 0.
func Context(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Context = max(0, n)
		return config.Context
	}
}

// Strict makes [Parse] reject unknown lines and hunks whose line counts do not match
// their header.
func Strict() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Strict = true
		return config.Strict
	}
}

// FuzzFactor sets the number of mismatching context and removal lines [Apply] tolerates
// when placing a hunk. The default is 0: every such line must match exactly.
func FuzzFactor(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.FuzzFactor = max(0, n)
		return config.FuzzFactor
	}
}

// CompareLine overrides the line comparison [Apply] uses to place hunks. lineNo is the
// 1-based line number in the source text, line the source line, kind either
// [ContextLine] or [RemovedLine], and content the patch line to match against.
func CompareLine(f func(lineNo int, line string, kind LineKind, content string) bool) Option {
	return func(cfg *config.Config) config.Flag {
		if f != nil {
			cfg.CompareLine = func(lineNo int, line string, op byte, content string) bool {
				kind := ContextLine
				if op == '-' {
					kind = RemovedLine
				}
				return f(lineNo, line, kind, content)
			}
		}
		return config.CompareLine
	}
}
