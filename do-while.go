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

// Package do_while rewrites do-while loop specifications into plain Go
// control flow at generation time.
//
// A do-while loop runs its body once before the condition is first
// checked:
//
//	do_while! {
//		do {
//			x += 1
//		} while x < 10;
//	}
//
// expands to
//
//	for {
//		x += 1
//		if !(x < 10) {
//			break
//		}
//	}
//
// A do-while-do loop adds a second block that runs between iterations,
// after a true condition check and never after the final false one,
// which makes separator-style list formatting direct:
//
//	do_while! {
//		do {
//			b.WriteString(items[i])
//			i++
//		} while i < len(items), do {
//			b.WriteString(", ")
//		}
//	}
//
// yields "1, 2, 3, 4" for four items, with no leading or trailing
// separator.
//
// An invocation may hold several clauses; each expands to an
// independent loop in input order, sharing the enclosing scope exactly
// as if written by hand at the call site.
package do_while

import (
	"strings"
)

// LoopSpec is one do-while clause. Body and Post hold the statement
// blocks verbatim, without their outer braces; Cond holds the raw
// condition expression. An empty Post means a plain do-while clause.
// Pos is the byte offset of the clause's "do" keyword within the
// invocation, kept for error reporting.
type LoopSpec struct {
	Body string
	Cond string
	Post string
	Pos  int
}

// Expand rewrites each clause into an equivalent for loop and
// concatenates the fragments in input order. Every emitted line is
// prefixed with indent. The body always appears before the condition
// check, and the post block (when present) after it, so the body runs
// at least once, the condition is evaluated immediately after each
// body run, and the post block runs only between iterations.
func Expand(specs []LoopSpec, indent string) (string, error) {
	if len(specs) == 0 {
		return "", ErrEmptyInvocation
	}
	var b strings.Builder
	for i, s := range specs {
		cond := strings.TrimSpace(s.Cond)
		if cond == "" {
			return "", &SyntaxError{Clause: i, Offset: s.Pos, Msg: "missing loop condition"}
		}
		b.WriteString(indent)
		b.WriteString("for {\n")
		writeBlock(&b, s.Body, indent+"\t")
		b.WriteString(indent)
		b.WriteString("\tif !(")
		b.WriteString(cond)
		b.WriteString(") {\n")
		b.WriteString(indent)
		b.WriteString("\t\tbreak\n")
		b.WriteString(indent)
		b.WriteString("\t}\n")
		writeBlock(&b, s.Post, indent+"\t")
		b.WriteString(indent)
		b.WriteString("}\n")
	}
	return b.String(), nil
}

// ExpandString parses an invocation and expands it in one step.
func ExpandString(src, indent string) (string, error) {
	specs, err := Parse(src)
	if err != nil {
		return "", err
	}
	return Expand(specs, indent)
}

// writeBlock splices a statement block into the output, re-indented to
// indent. The block's own relative indentation is preserved; its
// contents are otherwise untouched.
func writeBlock(b *strings.Builder, block, indent string) {
	lines := strings.Split(block, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return
	}
	prefix := commonIndent(lines)
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(indent)
		b.WriteString(strings.TrimRight(strings.TrimPrefix(line, prefix), " \t"))
		b.WriteByte('\n')
	}
}

// commonIndent returns the longest whitespace prefix shared by all
// non-blank lines.
func commonIndent(lines []string) string {
	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		ws := line[:indentLen(line)]
		if first {
			prefix = ws
			first = false
			continue
		}
		for !strings.HasPrefix(ws, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

func indentLen(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return i
		}
	}
	return len(s)
}
