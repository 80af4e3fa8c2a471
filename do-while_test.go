/*
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package do_while

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpand(t *testing.T) {
	for _, tt := range expandTests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandString(tt.input, tt.indent)
			if err != nil {
				t.Fatalf("expand error: %v", err)
			}
			if diff := cmp.Diff(tt.output, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBadExpand(t *testing.T) {
	for _, tt := range badExpandTests {
		t.Run(tt.error, func(t *testing.T) {
			_, err := ExpandString(tt.input, "")
			if err == nil {
				t.Fatalf("expected error %q", tt.error)
			}
			if diff := cmp.Diff(tt.error, err.Error()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse(t *testing.T) {
	specs, err := Parse("do { x++ } while x < 3, do { y++ }; do { z-- } while z > 0;")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := []LoopSpec{
		{Body: " x++ ", Cond: "x < 3", Post: " y++ ", Pos: 0},
		{Body: " z-- ", Cond: "z > 0", Pos: 36},
	}
	if diff := cmp.Diff(want, specs); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandEmptySpecs(t *testing.T) {
	if _, err := Expand(nil, ""); err != ErrEmptyInvocation {
		t.Errorf("got %v; want %v", err, ErrEmptyInvocation)
	}
}

func lines(a ...string) string {
	return strings.Join(a, "\n") + "\n"
}

type expandTest struct {
	name   string
	input  string
	indent string
	output string
}

var expandTests = []expandTest{
	{
		"simple",
		"do { x += 1 } while x < 10;",
		"",
		lines(
			"for {",
			"\tx += 1",
			"\tif !(x < 10) {",
			"\t\tbreak",
			"\t}",
			"}",
		),
	},
	{
		"indented",
		"do { x += 1 } while x < 10;",
		"\t\t",
		lines(
			"\t\tfor {",
			"\t\t\tx += 1",
			"\t\t\tif !(x < 10) {",
			"\t\t\t\tbreak",
			"\t\t\t}",
			"\t\t}",
		),
	},
	{
		"multiline body",
		lines(
			"do {",
			"\tsum += x",
			"\tx++",
			"} while x < n;",
		),
		"",
		lines(
			"for {",
			"\tsum += x",
			"\tx++",
			"\tif !(x < n) {",
			"\t\tbreak",
			"\t}",
			"}",
		),
	},
	{
		"do while do",
		lines(
			"do {",
			"\tb.WriteString(items[i])",
			"\ti++",
			"} while i < len(items), do {",
			"\tb.WriteString(\", \")",
			"}",
		),
		"",
		lines(
			"for {",
			"\tb.WriteString(items[i])",
			"\ti++",
			"\tif !(i < len(items)) {",
			"\t\tbreak",
			"\t}",
			"\tb.WriteString(\", \")",
			"}",
		),
	},
	{
		"do while do with trailing semicolon",
		"do { x++ } while x < 3, do { y++ };",
		"",
		lines(
			"for {",
			"\tx++",
			"\tif !(x < 3) {",
			"\t\tbreak",
			"\t}",
			"\ty++",
			"}",
		),
	},
	{
		"multiple clauses",
		lines(
			"do { x += 1 } while x < 10;",
			"do { y -= 1 } while y > -20;",
		),
		"",
		lines(
			"for {",
			"\tx += 1",
			"\tif !(x < 10) {",
			"\t\tbreak",
			"\t}",
			"}",
			"for {",
			"\ty -= 1",
			"\tif !(y > -20) {",
			"\t\tbreak",
			"\t}",
			"}",
		),
	},
	{
		"comma inside condition call",
		"do { x++ } while max(x, y) < 10;",
		"",
		lines(
			"for {",
			"\tx++",
			"\tif !(max(x, y) < 10) {",
			"\t\tbreak",
			"\t}",
			"}",
		),
	},
	{
		"brace inside string literal",
		"do { s += \"}\" } while len(s) < 3;",
		"",
		lines(
			"for {",
			"\ts += \"}\"",
			"\tif !(len(s) < 3) {",
			"\t\tbreak",
			"\t}",
			"}",
		),
	},
	{
		"comment between clauses",
		lines(
			"// first counter",
			"do { x++ } while x < 2;",
		),
		"",
		lines(
			"for {",
			"\tx++",
			"\tif !(x < 2) {",
			"\t\tbreak",
			"\t}",
			"}",
		),
	},
}

type badExpandTest struct {
	input string
	error string
}

var badExpandTests = []badExpandTest{
	{
		"",
		"invocation contains no clauses",
	},
	{
		"  \n\t",
		"invocation contains no clauses",
	},
	{
		"while x < 10;",
		`clause 1: expected 'do' to begin clause, found "while"`,
	},
	{
		"do x++ while x < 10;",
		"clause 1: expected '{' after 'do'",
	},
	{
		"do { x++ while x < 10;",
		"clause 1: unbalanced '{' in loop body",
	},
	{
		"do { x++ } x < 10;",
		"clause 1: expected 'while' after loop body",
	},
	{
		"do { x++ } while ;",
		"clause 1: missing loop condition",
	},
	{
		"do { x++ } while x < 10",
		"clause 1: expected ';' after loop condition",
	},
	{
		"do { x++ } while x < 10, { y++ };",
		"clause 1: expected 'do' after ','",
	},
	{
		"do { x++ } while x < 10; od { y++ } while y > 0;",
		`clause 2: expected 'do' to begin clause, found "od"`,
	},
}
