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
	"fmt"
	"strings"
)

// Parse reads the text of one invocation (the content between the
// braces of do_while! { ... }) and returns its clauses in order.
//
// The grammar is:
//
//	invocation := clause+
//	clause     := "do" block "while" condition ("," "do" block)? ";"
//	block      := "{" statement* "}"
//
// Blocks and conditions are opaque: they are scanned only for balanced
// delimiters, with string literals, rune literals, and comments left
// intact. The trailing ";" is required after a plain do-while clause
// and optional after a do-while-do clause. An invocation with no
// clauses is an error.
func Parse(src string) ([]LoopSpec, error) {
	p := &parser{src: src}
	var specs []LoopSpec
	for {
		p.skipSpace()
		if p.eof() {
			break
		}
		spec, err := p.clause(len(specs))
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return nil, ErrEmptyInvocation
	}
	return specs, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) clause(idx int) (LoopSpec, error) {
	start := p.pos
	spec := LoopSpec{Pos: start}
	if kw := p.readIdent(); kw != "do" {
		found := kw
		if found == "" {
			found = string(p.src[start])
		}
		return spec, p.errf(idx, start, "expected 'do' to begin clause, found %q", found)
	}
	p.skipSpace()
	body, err := p.block(idx)
	if err != nil {
		return spec, err
	}
	spec.Body = body

	p.skipSpace()
	at := p.pos
	if kw := p.readIdent(); kw != "while" {
		return spec, p.errf(idx, at, "expected 'while' after loop body")
	}
	p.skipSpace()
	condStart := p.pos
	cond, err := p.condition(idx)
	if err != nil {
		return spec, err
	}
	if strings.TrimSpace(cond) == "" {
		return spec, p.errf(idx, condStart, "missing loop condition")
	}
	spec.Cond = cond

	// The condition scan leaves the position on ',' or ';'.
	if p.src[p.pos] == ';' {
		p.pos++
		return spec, nil
	}
	p.pos++ // ','
	p.skipSpace()
	at = p.pos
	if kw := p.readIdent(); kw != "do" {
		return spec, p.errf(idx, at, "expected 'do' after ','")
	}
	p.skipSpace()
	post, err := p.block(idx)
	if err != nil {
		return spec, err
	}
	spec.Post = post
	p.skipSpace()
	if !p.eof() && p.src[p.pos] == ';' {
		p.pos++
	}
	return spec, nil
}

// block consumes a brace-balanced statement block and returns its
// content without the outer braces.
func (p *parser) block(idx int) (string, error) {
	if p.eof() || p.src[p.pos] != '{' {
		return "", p.errf(idx, p.pos, "expected '{' after 'do'")
	}
	open := p.pos
	p.pos++
	start := p.pos
	depth := 1
	for !p.eof() {
		if p.skipLexeme() {
			continue
		}
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				body := p.src[start:p.pos]
				p.pos++
				return body, nil
			}
		}
		p.pos++
	}
	return "", p.errf(idx, open, "unbalanced '{' in loop body")
}

// condition consumes the raw condition expression, stopping at the
// first ',' or ';' outside any nested delimiters.
func (p *parser) condition(idx int) (string, error) {
	start := p.pos
	depth := 0
	for !p.eof() {
		if p.skipLexeme() {
			continue
		}
		switch ch := p.src[p.pos]; ch {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',', ';':
			if depth == 0 {
				return p.src[start:p.pos], nil
			}
		}
		p.pos++
	}
	return "", p.errf(idx, start, "expected ';' after loop condition")
}

// skipLexeme advances past a string literal, rune literal, or comment
// starting at the current position, so their contents never count as
// delimiters. It reports whether anything was consumed.
func (p *parser) skipLexeme() bool {
	switch ch := p.src[p.pos]; {
	case ch == '"' || ch == '\'':
		p.pos++
		for !p.eof() {
			c := p.src[p.pos]
			p.pos++
			if c == '\\' && !p.eof() {
				p.pos++
				continue
			}
			if c == ch {
				break
			}
		}
		return true
	case ch == '`':
		p.pos++
		for !p.eof() && p.src[p.pos] != '`' {
			p.pos++
		}
		if !p.eof() {
			p.pos++
		}
		return true
	case ch == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '/':
		for !p.eof() && p.src[p.pos] != '\n' {
			p.pos++
		}
		return true
	case ch == '/' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '*':
		p.pos += 2
		for !p.eof() {
			if p.src[p.pos] == '*' && p.pos+1 < len(p.src) && p.src[p.pos+1] == '/' {
				p.pos += 2
				return true
			}
			p.pos++
		}
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch ch := p.src[p.pos]; {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			p.pos++
		case ch == '/':
			if !p.skipLexeme() {
				return
			}
		default:
			return
		}
	}
}

func (p *parser) readIdent() string {
	if p.eof() || !isIdentStart(p.src[p.pos]) {
		return ""
	}
	start := p.pos
	p.pos++
	for !p.eof() && isIdentPart(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) errf(idx, off int, format string, args ...interface{}) error {
	return &SyntaxError{Clause: idx, Offset: off, Msg: fmt.Sprintf(format, args...)}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}
