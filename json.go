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
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"sort"

	"github.com/diffkit/diffkit/internal/config"
)

// ReplacerFunc rewrites a value during canonicalization, analogous to the replacer argument of
// JSON serializers. key is the object key of the value, or "" at the top level.
type ReplacerFunc func(key string, value any) any

// CyclePlaceholder is substituted for values that reference one of their own ancestors during
// canonicalization.
const CyclePlaceholder = "[Circular]"

// trailingCommaRE matches a comma directly before a line break: the only difference between a
// JSON line with and without a trailing element.
var trailingCommaRE = regexp.MustCompile(",([\r\n])")

func jsonEquals(a, b string, cfg config.Config) bool {
	return baseEquals(
		trailingCommaRE.ReplaceAllString(a, "$1"),
		trailingCommaRE.ReplaceAllString(b, "$1"),
		cfg,
	)
}

var jsonStrategy = strategy{
	tokenize:        lineTokenize,
	equals:          jsonEquals,
	join:            joinTokens,
	useLongestToken: true,
}

// DiffJSON compares two JSON-serializable values (or pre-rendered JSON strings) line by line
// after canonicalizing them: object keys are sorted, nil values optionally replaced, reference
// cycles cut, and the result pretty-printed with two-space indentation. Lines that differ only
// by a trailing comma compare equal.
//
// The following options are supported: [IgnoreCase], [IgnoreWhitespace], [NewlineIsToken],
// [StripTrailingCr], [MaxEditLength], [Timeout], [Equals], [Replacer], [UndefinedReplacement]
func DiffJSON(oldValue, newValue any, opts ...Option) ([]Change, error) {
	cfg := config.FromOptions(opts, jsonFlags)
	oldStr, err := castJSONInput(oldValue, cfg)
	if err != nil {
		return nil, err
	}
	newStr, err := castJSONInput(newValue, cfg)
	if err != nil {
		return nil, err
	}
	return runDiff(jsonStrategy, oldStr, newStr, cfg), nil
}

// castJSONInput normalizes a diff input: strings pass through untouched, everything else is
// canonicalized and rendered with two-space indentation.
func castJSONInput(v any, cfg config.Config) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	c, err := canonicalize(v, map[uintptr]bool{}, replacerFrom(cfg), "")
	if err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func replacerFrom(cfg config.Config) ReplacerFunc {
	if cfg.Replacer != nil {
		return cfg.Replacer
	}
	if cfg.HasUndefinedReplacement {
		return func(key string, value any) any {
			if value == nil {
				return cfg.UndefinedReplacement
			}
			return value
		}
	}
	return nil
}

// Canonicalize deep-copies value into plain maps, slices and primitives suitable for stable JSON
// rendering: object keys end up sorted, values referencing one of their ancestors are replaced
// by [CyclePlaceholder], and replacer (optional) rewrites every value before it is copied. Any
// panic raised by the replacer propagates to the caller unmodified.
func Canonicalize(value any, replacer ReplacerFunc) (any, error) {
	return canonicalize(value, map[uintptr]bool{}, replacer, "")
}

func canonicalize(v any, seen map[uintptr]bool, replacer ReplacerFunc, key string) (any, error) {
	if replacer != nil {
		v = replacer(key, v)
	}
	return canonicalizeValue(v, seen, replacer)
}

// canonicalizeValue copies v without re-applying the replacer to v itself. seen holds the
// identities (map, slice and pointer addresses) of the ancestors on the current path.
func canonicalizeValue(v any, seen map[uintptr]bool, replacer ReplacerFunc) (any, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		return nil, nil

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Kind() == reflect.Pointer {
			id := rv.Pointer()
			if seen[id] {
				return CyclePlaceholder, nil
			}
			seen[id] = true
			defer delete(seen, id)
		}
		return canonicalizeValue(rv.Elem().Interface(), seen, replacer)

	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Len() > 0 {
			id := rv.Pointer()
			if seen[id] {
				return CyclePlaceholder, nil
			}
			seen[id] = true
			defer delete(seen, id)
		}
		return canonicalizeElems(rv, seen, replacer)

	case reflect.Array:
		return canonicalizeElems(rv, seen, replacer)

	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		id := rv.Pointer()
		if seen[id] {
			return CyclePlaceholder, nil
		}
		seen[id] = true
		defer delete(seen, id)

		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]reflect.Value, rv.Len())
		for _, k := range rv.MapKeys() {
			ks := fmt.Sprint(k.Interface())
			keys = append(keys, ks)
			byKey[ks] = rv.MapIndex(k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(keys))
		for _, ks := range keys {
			c, err := canonicalize(byKey[ks].Interface(), seen, replacer, ks)
			if err != nil {
				return nil, err
			}
			out[ks] = c
		}
		return out, nil

	case reflect.Struct:
		// Structs take a trip through the JSON encoder, which honors their tags and custom
		// marshalers; the decoded form is then canonicalized like any other object.
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		var decoded any
		if err := json.Unmarshal(b, &decoded); err != nil {
			return nil, err
		}
		return canonicalizeValue(decoded, seen, replacer)

	default:
		return v, nil
	}
}

func canonicalizeElems(rv reflect.Value, seen map[uintptr]bool, replacer ReplacerFunc) (any, error) {
	out := make([]any, rv.Len())
	for i := range out {
		c, err := canonicalize(rv.Index(i).Interface(), seen, replacer, fmt.Sprint(i))
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
