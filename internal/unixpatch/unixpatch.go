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

// Package unixpatch shells out to the unix patch tool to cross-check patch creation and
// application.
//
// This package is only for testing.
package unixpatch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Apply runs `patch -u` to apply patchText to orig and returns the patched content.
func Apply(orig, patchText string) (string, error) {
	return run(orig, patchText)
}

// ApplyFuzz is like [Apply] with the given fuzz factor (`patch -F`).
func ApplyFuzz(orig, patchText string, fuzz int) (string, error) {
	return run(orig, patchText, "-F", strconv.Itoa(fuzz))
}

func run(orig, patchText string, extraArgs ...string) (string, error) {
	// patch does not create an output file for an empty diff.
	if patchText == "" {
		return orig, nil
	}

	dir, err := os.MkdirTemp("", "unixpatch-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %v", err)
	}
	defer os.RemoveAll(dir)

	patchfile := filepath.Join(dir, "patch")
	origfile := filepath.Join(dir, "orig")
	outfile := filepath.Join(dir, "out")

	if err := os.WriteFile(patchfile, []byte(patchText), 0o644); err != nil {
		return "", fmt.Errorf("failed to write patch file: %v", err)
	}
	if err := os.WriteFile(origfile, []byte(orig), 0o644); err != nil {
		return "", fmt.Errorf("failed to write orig file: %v", err)
	}

	args := append([]string{"-u", "-i", patchfile, "-o", outfile}, extraArgs...)
	args = append(args, origfile)
	cmd := exec.Command("patch", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("failed to run patch command: patch %s: %v\n%s", strings.Join(cmd.Args, " "), err, out)
	}

	out, err := os.ReadFile(outfile)
	if err != nil {
		return "", fmt.Errorf("failed to read outfile: %v", err)
	}
	return string(out), nil
}
