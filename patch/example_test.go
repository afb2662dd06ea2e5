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

package patch_test

import (
	"fmt"

	"github.com/diffkit/diffkit/patch"
)

func ExampleCreate() {
	fmt.Print(patch.Create("greeting.txt", "Hello, World\n", "Hello, Gophers\n", "", ""))
	// Output:
	// Index: greeting.txt
	// ===================================================================
	// --- greeting.txt
	// +++ greeting.txt
	// @@ -1,1 +1,1 @@
	// -Hello, World
	// +Hello, Gophers
}

func ExampleApplyText() {
	patchText := patch.Create("f", "a\nb\nc\n", "a\nb\nx\n", "", "")
	result, err := patch.ApplyText("a\nb\nc\n", patchText)
	if err != nil {
		panic(err)
	}
	fmt.Print(result)
	// Output:
	// a
	// b
	// x
}
