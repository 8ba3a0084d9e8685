// Copyright 2026 The oscadlang Authors
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

// Package parser implements the PEG-style parse engine and AST builder for
// OpenSCAD source: a hand-written, packrat-memoized recursive-descent parser
// that builds the typed ast tree directly as it recognizes each production
// (rather than building an intermediate parse tree and visiting it
// separately — see DESIGN.md, "Fused parse/build"). Positions are taken from
// the raw combined-buffer offset and converted to file/line/column through
// the sourcemap.Map passed to Parse.
package parser

import (
	"strconv"
	"strings"

	"github.com/oscadlang/go/ast"
	"github.com/oscadlang/go/oscaderrors"
	"github.com/oscadlang/go/scanner"
	"github.com/oscadlang/go/sourcemap"
	"github.com/oscadlang/go/token"
)

// Options controls parsing behavior. It corresponds to the ParseOptions
// described in spec §4.7; the file façade in the root package threads these
// through from its own Options type.
type Options struct {
	// IncludeComments makes the parser emit CommentNode siblings in the AST.
	IncludeComments bool
}

// parser holds the mutable state of a single parse. A new parser is created
// per call — see Parse — so packrat memoization never leaks between
// independent invocations.
type parser struct {
	sm   *sourcemap.Map
	src  []byte
	opts Options

	sc  scanner.Scanner
	tok token.Kind
	lit string
	off int

	pendingComments []*ast.CommentNode

	memo *memoTable

	err error // first hard error encountered; once set, parsing should unwind
}

// Parse parses the combined buffer held by sm (sm.GetCombinedString()) and
// returns the resulting File. sm is also used to translate raw offsets into
// file/line/column positions in the returned tree and in any SyntaxError.
func Parse(sm *sourcemap.Map, opts Options) (*ast.File, error) {
	src := []byte(sm.GetCombinedString())
	p := &parser{
		sm:   sm,
		src:  src,
		opts: opts,
		memo: newMemoTable(),
	}
	mode := scanner.Mode(0)
	if opts.IncludeComments {
		mode = scanner.ScanComments
	}
	p.sc.Init(src, func(offset int, msg string) {
		if p.err == nil {
			p.err = p.syntaxErrorAt(offset, msg)
		}
	}, mode)
	p.next()

	file := &ast.File{Position: p.position(0)}
	file.Decls = p.parseStmtList(token.EOF)
	if p.err != nil {
		return nil, p.err
	}
	if p.tok != token.EOF {
		return nil, p.syntaxError("unexpected trailing input")
	}
	return file, nil
}

// ParseExpr parses a single standalone expression from sm's combined buffer,
// used internally by tests and potentially by downstream tools that only
// need expression-level parsing.
func ParseExpr(sm *sourcemap.Map) (ast.Expr, error) {
	src := []byte(sm.GetCombinedString())
	p := &parser{sm: sm, src: src, memo: newMemoTable()}
	p.sc.Init(src, func(offset int, msg string) {
		if p.err == nil {
			p.err = p.syntaxErrorAt(offset, msg)
		}
	}, 0)
	p.next()
	x := p.parseExpr()
	if p.err != nil {
		return nil, p.err
	}
	if p.tok != token.EOF {
		return nil, p.syntaxError("unexpected trailing input")
	}
	return x, nil
}

func (p *parser) position(offset int) token.Position {
	pos, err := p.sm.GetLocation(offset)
	if err != nil {
		return token.Position{Offset: offset}
	}
	return pos
}

func (p *parser) curPosition() token.Position { return p.position(p.off) }

// next advances to the next non-comment token, recording any comments seen
// along the way into pendingComments so that statement-list parsers can
// interleave them as sibling nodes.
func (p *parser) next() {
	for {
		off, tok, lit := p.sc.Scan()
		if tok == token.COMMENT {
			if p.opts.IncludeComments {
				p.pendingComments = append(p.pendingComments, &ast.CommentNode{
					Text:     lit,
					Block:    strings.HasPrefix(lit, "/*"),
					Position: p.position(off),
				})
			}
			continue
		}
		p.off, p.tok, p.lit = off, tok, lit
		return
	}
}

// takeComments returns and clears the comments accumulated since the last
// call, in source order.
func (p *parser) takeComments() []*ast.CommentNode {
	if len(p.pendingComments) == 0 {
		return nil
	}
	out := p.pendingComments
	p.pendingComments = nil
	return out
}

func (p *parser) syntaxError(msg string) error {
	return p.syntaxErrorAt(p.off, msg)
}

func (p *parser) syntaxErrorAt(offset int, msg string) error {
	return &oscaderrors.SyntaxError{
		Position: p.position(offset),
		Message:  msg,
	}
}

func (p *parser) expectSyntaxError(expected string) error {
	return &oscaderrors.SyntaxError{
		Position: p.curPosition(),
		Expected: []string{expected},
		Message:  "unexpected " + describeTok(p.tok, p.lit),
	}
}

func describeTok(tok token.Kind, lit string) string {
	if tok == token.EOF {
		return "end of file"
	}
	if tok.IsLiteral() {
		return tok.String() + " " + strconv.Quote(lit)
	}
	return "token " + tok.String()
}

// expect consumes the current token if it matches k, or records a syntax
// error (the first one encountered aborts the parse; no recovery is
// attempted per spec's explicit non-goal).
func (p *parser) expect(k token.Kind) token.Position {
	pos := p.curPosition()
	if p.tok != k {
		if p.err == nil {
			p.err = p.expectSyntaxError(k.String())
		}
		return pos
	}
	p.next()
	return pos
}

func (p *parser) expectIdentName() string {
	if p.tok != token.IDENT {
		if p.err == nil {
			p.err = p.expectSyntaxError("identifier")
		}
		return ""
	}
	name := p.lit
	p.next()
	return name
}

func (p *parser) failed() bool { return p.err != nil }
