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
	"time"

	"github.com/diffkit/diffkit/internal/config"
)

// Option configures the behavior of diff and patch functions. Each function documents the
// options it supports; passing an unsupported option panics.
type Option = config.Option

// IgnoreCase compares tokens case-insensitively. Change values keep their original casing.
func IgnoreCase() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.IgnoreCase = true
		return config.IgnoreCase
	}
}

// IgnoreWhitespace treats whitespace differences as equal: in word mode any two all-whitespace
// tokens compare equal, in line mode lines are trimmed before comparison (but stored verbatim).
func IgnoreWhitespace() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.IgnoreWhitespace = true
		return config.IgnoreWhitespace
	}
}

// NewlineIsToken makes line tokenization emit each line delimiter as a token of its own instead
// of folding it into the preceding line. This lets patch building detect missing trailing
// newlines precisely.
func NewlineIsToken() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.NewlineIsToken = true
		return config.NewlineIsToken
	}
}

// StripTrailingCr normalizes "\r\n" to "\n" before line tokenization.
func StripTrailingCr() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.StripTrailingCr = true
		return config.StripTrailingCr
	}
}

// MaxEditLength caps the edit distance the diff search explores. When two inputs differ by more
// than n edits the search is abandoned and the diff function returns nil.
func MaxEditLength(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MaxEditLength = max(0, n)
		return config.MaxEditLength
	}
}

// Timeout bounds the wall-clock time of a single diff search. The deadline is checked once per
// edit-distance round; on expiry the partial result is discarded and the diff function returns
// nil.
func Timeout(d time.Duration) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Timeout = d
		return config.Timeout
	}
}

// Equals overrides token equality. When set, IgnoreCase and IgnoreWhitespace have no effect on
// comparison.
func Equals(eq func(a, b string) bool) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Equals = eq
		return config.Equals
	}
}

// Replacer rewrites values during JSON canonicalization, analogous to the replacer argument of
// JSON serializers. It is applied to every value before canonicalization, keyed by the object
// key (or "" at the top level).
func Replacer(f func(key string, value any) any) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Replacer = f
		return config.Replacer
	}
}

// UndefinedReplacement substitutes v for nil values during JSON canonicalization.
func UndefinedReplacement(v any) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.UndefinedReplacement = v
		cfg.HasUndefinedReplacement = true
		return config.UndefinedReplacement
	}
}
