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

// Package config provides shared configuration mechanisms for packages in this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// diffkit.Option.
package config

import "time"

// Config collects all configurable parameters for diff and patch functions in this module.
type Config struct {
	// Compare tokens case-insensitively. Token values keep their original casing.
	IgnoreCase bool

	// Treat any two all-whitespace tokens as equal (word mode) or trim tokens before
	// comparison (line mode).
	IgnoreWhitespace bool

	// Emit line delimiters as tokens of their own instead of folding them into the
	// preceding line.
	NewlineIsToken bool

	// Normalize "\r\n" to "\n" before line tokenization.
	StripTrailingCr bool

	// MaxEditLength caps the edit distance the diff search explores. 0 means unlimited.
	MaxEditLength int

	// Timeout bounds the wall-clock time of a single diff search. 0 means no limit.
	Timeout time.Duration

	// Equals overrides token equality. When set, all other comparison knobs are ignored.
	Equals func(a, b string) bool

	// Replacer rewrites values during JSON canonicalization.
	Replacer func(key string, value any) any

	// UndefinedReplacement is substituted for nil values during JSON canonicalization
	// when HasUndefinedReplacement is set.
	UndefinedReplacement    any
	HasUndefinedReplacement bool

	// Context is the number of unchanged lines to include around each patch hunk.
	Context int

	// Strict makes the patch parser reject unknown lines and header/body count mismatches.
	Strict bool

	// FuzzFactor is the number of mismatching context/deletion lines tolerated when
	// placing a hunk.
	FuzzFactor int

	// CompareLine overrides the line comparison used to place hunks. op is the line's
	// prefix byte (' ' or '-').
	CompareLine func(lineNo int, line string, op byte, content string) bool
}

// Default is the default configuration.
var Default = Config{
	Context: 4,
}

// Flag describes a single config entry. This is used to detect options being passed to
// functions that do not support them.
type Flag int

const (
	IgnoreCase Flag = 1 << iota
	IgnoreWhitespace
	NewlineIsToken
	StripTrailingCr
	MaxEditLength
	Timeout
	Equals
	Replacer
	UndefinedReplacement
	Context
	Strict
	FuzzFactor
	CompareLine
)

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case IgnoreCase:
		return "diffkit.IgnoreCase"
	case IgnoreWhitespace:
		return "diffkit.IgnoreWhitespace"
	case NewlineIsToken:
		return "diffkit.NewlineIsToken"
	case StripTrailingCr:
		return "diffkit.StripTrailingCr"
	case MaxEditLength:
		return "diffkit.MaxEditLength"
	case Timeout:
		return "diffkit.Timeout"
	case Equals:
		return "diffkit.Equals"
	case Replacer:
		return "diffkit.Replacer"
	case UndefinedReplacement:
		return "diffkit.UndefinedReplacement"
	case Context:
		return "patch.Context"
	case Strict:
		return "patch.Strict"
	case FuzzFactor:
		return "patch.FuzzFactor"
	case CompareLine:
		return "patch.CompareLine"
	default:
		panic("never reached")
	}
}
