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

package config

import (
	"testing"
	"time"
)

func TestFromOptions(t *testing.T) {
	opts := []Option{
		func(cfg *Config) Flag {
			cfg.IgnoreCase = true
			return IgnoreCase
		},
		func(cfg *Config) Flag {
			cfg.Timeout = time.Second
			return Timeout
		},
	}
	cfg := FromOptions(opts, IgnoreCase|Timeout)
	if !cfg.IgnoreCase {
		t.Error("IgnoreCase not set")
	}
	if cfg.Timeout != time.Second {
		t.Errorf("Timeout: got %v, want %v", cfg.Timeout, time.Second)
	}
	if cfg.Context != Default.Context {
		t.Errorf("Context: got %v, want default %v", cfg.Context, Default.Context)
	}
}

func TestFromOptionsDisallowed(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("FromOptions(...) did not panic for a disallowed option")
		}
		if want := "Option diffkit.NewlineIsToken not allowed here"; r != want {
			t.Errorf("panic message: got %q, want %q", r, want)
		}
	}()
	opt := func(cfg *Config) Flag {
		cfg.NewlineIsToken = true
		return NewlineIsToken
	}
	FromOptions([]Option{opt}, IgnoreCase)
}
