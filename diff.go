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
	"github.com/diffkit/diffkit/internal/config"
	"github.com/diffkit/diffkit/internal/myers"
)

const (
	charFlags = config.IgnoreCase | config.MaxEditLength | config.Timeout | config.Equals
	wordFlags = charFlags | config.IgnoreWhitespace

	// Line-based diffs additionally accept patch.Context so that the patch builders can
	// forward their options unchanged; the flag has no effect on the diff itself.
	lineFlags = wordFlags | config.NewlineIsToken | config.StripTrailingCr | config.Context
	jsonFlags = lineFlags | config.Replacer | config.UndefinedReplacement
)

// runDiff tokenizes both inputs with the strategy and computes the minimal edit script between
// the token sequences. A nil result means the search was abandoned (MaxEditLength or Timeout).
func runDiff(strat strategy, oldStr, newStr string, cfg config.Config) []Change {
	oldTokens := removeEmpty(strat.tokenize(oldStr, cfg))
	newTokens := removeEmpty(strat.tokenize(newStr, cfg))
	comps, ok := myers.Diff(oldTokens, newTokens, func(a, b string) bool {
		return strat.equals(a, b, cfg)
	}, cfg)
	if !ok {
		return nil
	}
	return buildChanges(strat, comps, oldTokens, newTokens, cfg)
}

// DiffChars compares oldStr and newStr character by character.
//
// The following options are supported: [IgnoreCase], [MaxEditLength], [Timeout], [Equals]
func DiffChars(oldStr, newStr string, opts ...Option) []Change {
	cfg := config.FromOptions(opts, charFlags)
	return runDiff(charsStrategy, oldStr, newStr, cfg)
}

// DiffWords compares oldStr and newStr word by word, ignoring whitespace-only differences. Use
// [DiffWordsWithSpace] to compare whitespace too.
//
// The following options are supported: [IgnoreCase], [MaxEditLength], [Timeout], [Equals]
func DiffWords(oldStr, newStr string, opts ...Option) []Change {
	cfg := config.FromOptions(opts, wordFlags)
	cfg.IgnoreWhitespace = true
	return runDiff(wordsStrategy, oldStr, newStr, cfg)
}

// DiffWordsWithSpace compares oldStr and newStr word by word, treating interstitial whitespace
// as tokens in their own right.
//
// The following options are supported: [IgnoreCase], [IgnoreWhitespace], [MaxEditLength],
// [Timeout], [Equals]
func DiffWordsWithSpace(oldStr, newStr string, opts ...Option) []Change {
	cfg := config.FromOptions(opts, wordFlags)
	return runDiff(wordsStrategy, oldStr, newStr, cfg)
}

// DiffLines compares oldStr and newStr line by line. Each token is a full line including its
// trailing delimiter unless [NewlineIsToken] is set.
//
// The following options are supported: [IgnoreCase], [IgnoreWhitespace], [NewlineIsToken],
// [StripTrailingCr], [MaxEditLength], [Timeout], [Equals]
func DiffLines(oldStr, newStr string, opts ...Option) []Change {
	cfg := config.FromOptions(opts, lineFlags)
	return runDiff(linesStrategy, oldStr, newStr, cfg)
}

// DiffTrimmedLines compares oldStr and newStr line by line, ignoring leading and trailing
// whitespace on each line.
//
// The following options are supported: [IgnoreCase], [NewlineIsToken], [StripTrailingCr],
// [MaxEditLength], [Timeout], [Equals]
func DiffTrimmedLines(oldStr, newStr string, opts ...Option) []Change {
	cfg := config.FromOptions(opts, lineFlags)
	cfg.IgnoreWhitespace = true
	return runDiff(linesStrategy, oldStr, newStr, cfg)
}

// DiffSentences compares oldStr and newStr sentence by sentence. A sentence ends at '.', '!' or
// '?' followed by whitespace or end of input.
//
// The following options are supported: [IgnoreCase], [MaxEditLength], [Timeout], [Equals]
func DiffSentences(oldStr, newStr string, opts ...Option) []Change {
	cfg := config.FromOptions(opts, charFlags)
	return runDiff(sentencesStrategy, oldStr, newStr, cfg)
}

// DiffCSS compares two stylesheets token by token, treating '{', '}', ':', ';', ',' and runs of
// whitespace as separate tokens.
//
// The following options are supported: [IgnoreCase], [MaxEditLength], [Timeout], [Equals]
func DiffCSS(oldStr, newStr string, opts ...Option) []Change {
	cfg := config.FromOptions(opts, charFlags)
	return runDiff(cssStrategy, oldStr, newStr, cfg)
}
