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

// Command diffkit compares files, creates and applies unified-diff patches, and merges
// patches from the command line.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diffkit/diffkit"
	"github.com/diffkit/diffkit/patch"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "diffkit",
		Short:         "Compare texts and work with unified-diff patches",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDiffCmd(), newCreateCmd(), newApplyCmd(), newMergeCmd())
	return root
}

func newDiffCmd() *cobra.Command {
	var (
		mode             string
		ignoreCase       bool
		ignoreWhitespace bool
	)
	cmd := &cobra.Command{
		Use:   "diff <old-file> <new-file>",
		Short: "Show the differences between two files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldStr, newStr, err := readTwo(args[0], args[1])
			if err != nil {
				return err
			}

			var opts []diffkit.Option
			if ignoreCase {
				opts = append(opts, diffkit.IgnoreCase())
			}
			switch mode {
			case "words", "lines", "json":
				if ignoreWhitespace {
					opts = append(opts, diffkit.IgnoreWhitespace())
				}
			default:
				if ignoreWhitespace {
					return fmt.Errorf("--ignore-whitespace is not supported in %q mode", mode)
				}
			}

			var changes []diffkit.Change
			switch mode {
			case "chars":
				changes = diffkit.DiffChars(oldStr, newStr, opts...)
			case "words":
				changes = diffkit.DiffWords(oldStr, newStr, opts...)
			case "lines":
				changes = diffkit.DiffLines(oldStr, newStr, opts...)
			case "sentences":
				changes = diffkit.DiffSentences(oldStr, newStr, opts...)
			case "css":
				changes = diffkit.DiffCSS(oldStr, newStr, opts...)
			case "json":
				changes, err = diffkit.DiffJSON(oldStr, newStr, opts...)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown mode %q", mode)
			}

			printChanges(cmd, changes, mode == "lines" || mode == "json")
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "lines", "diff granularity: chars, words, lines, sentences, css or json")
	cmd.Flags().BoolVar(&ignoreCase, "ignore-case", false, "compare case-insensitively")
	cmd.Flags().BoolVar(&ignoreWhitespace, "ignore-whitespace", false, "ignore whitespace differences")
	return cmd
}

// printChanges renders line-shaped changes with -/+ prefixes and everything else inline
// with [-..-] and {+..+} markers.
func printChanges(cmd *cobra.Command, changes []diffkit.Change, byLine bool) {
	out := cmd.OutOrStdout()
	for _, c := range changes {
		switch {
		case byLine:
			prefix := " "
			if c.Added {
				prefix = "+"
			} else if c.Removed {
				prefix = "-"
			}
			value := strings.TrimSuffix(c.Value, "\n")
			for _, line := range strings.Split(value, "\n") {
				fmt.Fprintf(out, "%s%s\n", prefix, line)
			}
		case c.Added:
			fmt.Fprintf(out, "{+%s+}", c.Value)
		case c.Removed:
			fmt.Fprintf(out, "[-%s-]", c.Value)
		default:
			fmt.Fprint(out, c.Value)
		}
	}
	if !byLine {
		fmt.Fprintln(out)
	}
}

func newCreateCmd() *cobra.Command {
	var context int
	cmd := &cobra.Command{
		Use:   "create <old-file> <new-file>",
		Short: "Create a unified-diff patch from two files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldStr, newStr, err := readTwo(args[0], args[1])
			if err != nil {
				return err
			}
			text := patch.CreateTwoFiles(args[0], args[1], oldStr, newStr, "", "", patch.Context(context))
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().IntVar(&context, "context", 4, "number of context lines around each hunk")
	return cmd
}

func newApplyCmd() *cobra.Command {
	var (
		fuzz    int
		output  string
		reverse bool
	)
	cmd := &cobra.Command{
		Use:   "apply <file> <patch-file>",
		Short: "Apply a unified-diff patch to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, patchText, err := readTwo(args[0], args[1])
			if err != nil {
				return err
			}

			patches, err := patch.Parse(patchText)
			if err != nil {
				return err
			}
			if len(patches) != 1 {
				return fmt.Errorf("%s: expected exactly one patch, got %d", args[1], len(patches))
			}
			p := patches[0]
			if reverse {
				p = patch.Reverse(p)
			}

			result, err := patch.Apply(source, p, patch.FuzzFactor(fuzz))
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, args[0], result)
		},
	}
	cmd.Flags().IntVar(&fuzz, "fuzz", 0, "number of mismatching lines tolerated per hunk")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this file instead of in place")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "apply the patch in reverse")
	return cmd
}

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <mine> <theirs> [base]",
		Short: "Merge two patches (or two changed files against a base)",
		Long: `Merge combines two patches made against the same base into one. Arguments may be
patch files or plain content files; plain content requires the base argument. The merged
patch is printed to stdout; conflicting regions are marked and reported via exit code 1.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			mine, theirs, err := readTwo(args[0], args[1])
			if err != nil {
				return err
			}
			var base []string
			if len(args) == 3 {
				b, err := os.ReadFile(args[2])
				if err != nil {
					return err
				}
				base = append(base, string(b))
			}

			result, err := patch.MergeText(mine, theirs, base...)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), patch.Format(&result.Patch))
			if result.Conflict {
				return fmt.Errorf("merge completed with conflicts")
			}
			return nil
		},
	}
	return cmd
}

func readTwo(a, b string) (string, string, error) {
	ab, err := os.ReadFile(a)
	if err != nil {
		return "", "", err
	}
	bb, err := os.ReadFile(b)
	if err != nil {
		return "", "", err
	}
	return string(ab), string(bb), nil
}

func writeOutput(cmd *cobra.Command, output, fallback, content string) error {
	switch output {
	case "-":
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	case "":
		output = fallback
	}
	return os.WriteFile(output, []byte(content), 0o644)
}
