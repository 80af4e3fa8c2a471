// Package preprocessor splices do_while! invocations out of source
// files, replacing each with the equivalent primitive-loop fragment.
// Everything outside an invocation passes through byte for byte.
package preprocessor

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	do_while "github.com/arthomnix/do-while"
)

// Marker is the identifier that introduces an invocation. It must be
// followed by '!' and a brace-balanced block.
const Marker = "do_while"

type Preprocessor struct {
	// KeepLineComments records the original file:line above each
	// expansion.
	KeepLineComments bool
	Log              *zap.SugaredLogger
}

func New() *Preprocessor {
	return &Preprocessor{Log: zap.NewNop().Sugar()}
}

// Process reads source from r, expands every invocation, and writes
// the result to w. Errors carry file:line positions; output is
// written only when the whole file expands cleanly.
func (p *Preprocessor) Process(filename string, r io.Reader, w io.Writer) error {
	buf, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", shortPath(filename))
	}
	src := string(buf)

	var out bytes.Buffer
	i, last := 0, 0
	for i < len(src) {
		if n, ok := skipLexeme(src, i); ok {
			i = n
			continue
		}
		if !isIdentStart(src[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(src) && isIdentPart(src[j]) {
			j++
		}
		if src[i:j] != Marker {
			i = j
			continue
		}
		markerAt := i

		// The marker is an invocation only when '!' follows on the
		// same line; a bare do_while identifier passes through.
		k := j
		for k < len(src) && (src[k] == ' ' || src[k] == '\t') {
			k++
		}
		if k >= len(src) || src[k] != '!' {
			i = j
			continue
		}
		k++
		for k < len(src) && (src[k] == ' ' || src[k] == '\t' || src[k] == '\n' || src[k] == '\r') {
			k++
		}
		if k >= len(src) || src[k] != '{' {
			return fmt.Errorf("%s:%d: expected '{' after %s!", shortPath(filename), lineAt(src, markerAt), Marker)
		}
		end, ok := scanBraceEnd(src, k)
		if !ok {
			return fmt.Errorf("%s:%d: unterminated %s! invocation", shortPath(filename), lineAt(src, markerAt), Marker)
		}
		inner := src[k+1 : end-1]

		specs, err := do_while.Parse(inner)
		if err != nil {
			ln := lineAt(src, markerAt)
			if serr, ok := err.(*do_while.SyntaxError); ok {
				ln = lineAt(src, k+1) + strings.Count(inner[:serr.Offset], "\n")
			}
			return fmt.Errorf("%s:%d: %s", shortPath(filename), ln, err)
		}

		flushTo, indent := lineIndent(src, markerAt)
		expanded, err := do_while.Expand(specs, indent)
		if err != nil {
			return fmt.Errorf("%s:%d: %s", shortPath(filename), lineAt(src, markerAt), err)
		}
		out.WriteString(src[last:flushTo])
		if p.KeepLineComments {
			fmt.Fprintf(&out, "%s// %s:%d\n", indent, shortPath(filename), lineAt(src, markerAt))
		}
		out.WriteString(expanded)
		p.Log.Debugw("expanded invocation",
			"file", shortPath(filename),
			"line", lineAt(src, markerAt),
			"clauses", len(specs),
		)

		i = end
		if i < len(src) && src[i] == '\n' {
			// The expansion already ends with a newline.
			i++
		}
		last = i
	}
	out.WriteString(src[last:])
	_, err = w.Write(out.Bytes())
	return err
}

// lineIndent locates the start of the line holding the invocation.
// When the marker is the first thing on its line, the splice replaces
// the whole line and the line's leading whitespace becomes the
// expansion indent; otherwise the splice begins at the marker itself.
func lineIndent(src string, markerAt int) (flushTo int, indent string) {
	lineStart := strings.LastIndexByte(src[:markerAt], '\n') + 1
	prefix := src[lineStart:markerAt]
	if strings.TrimLeft(prefix, " \t") == "" {
		return lineStart, prefix
	}
	return markerAt, ""
}

// scanBraceEnd returns the index just past the brace matching
// src[open], skipping strings, runes, and comments.
func scanBraceEnd(src string, open int) (end int, ok bool) {
	depth := 0
	i := open
	for i < len(src) {
		if n, ok := skipLexeme(src, i); ok {
			i = n
			continue
		}
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
		i++
	}
	return 0, false
}

// skipLexeme advances past a string literal, rune literal, or comment
// starting at i, so markers and braces inside them are never
// interpreted.
func skipLexeme(src string, i int) (int, bool) {
	switch ch := src[i]; {
	case ch == '"' || ch == '\'':
		i++
		for i < len(src) {
			c := src[i]
			i++
			if c == '\\' && i < len(src) {
				i++
				continue
			}
			if c == ch {
				break
			}
		}
		return i, true
	case ch == '`':
		i++
		for i < len(src) && src[i] != '`' {
			i++
		}
		if i < len(src) {
			i++
		}
		return i, true
	case ch == '/' && i+1 < len(src) && src[i+1] == '/':
		for i < len(src) && src[i] != '\n' {
			i++
		}
		return i, true
	case ch == '/' && i+1 < len(src) && src[i+1] == '*':
		i += 2
		for i < len(src) {
			if src[i] == '*' && i+1 < len(src) && src[i+1] == '/' {
				return i + 2, true
			}
			i++
		}
		return i, true
	}
	return i, false
}

func lineAt(src string, off int) int {
	return 1 + strings.Count(src[:off], "\n")
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func shortPath(p string) string {
	// nicer errors
	if p == "" {
		return p
	}
	return filepath.Base(p)
}
