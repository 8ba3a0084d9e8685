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

package parser

import (
	"github.com/oscadlang/go/ast"
	"github.com/oscadlang/go/token"
)

// parseListCompChain parses one link of a list-comprehension fragment chain
// (for/C-style-for/if/if-else/let/each), called only when isListCompStart
// has already confirmed the lookahead token. Each fragment's tail — its
// "body" — recurses back into parseListCompBody, which continues the chain
// if another fragment keyword follows, or terminates it with a plain
// expression otherwise.
func (p *parser) parseListCompChain() ast.Node {
	switch p.tok {
	case token.FOR:
		return p.parseListCompFor()
	case token.LET:
		return p.parseListCompLet()
	case token.IF:
		return p.parseListCompIf()
	case token.EACH:
		return p.parseListCompEach()
	}
	return p.parseExpr()
}

func (p *parser) parseListCompBody() ast.Node {
	if isListCompStart(p.tok) {
		return p.parseListCompChain()
	}
	return p.parseExpr()
}

func (p *parser) parseListCompFor() ast.Node {
	pos := p.curPosition()
	p.next() // consume 'for'
	fc := p.parseForClause()
	body := p.parseListCompBody()
	if fc.cStyle {
		return &ast.ListCompCFor{Init: fc.init, Cond: fc.cond, Update: fc.update, Body: body, Position: pos}
	}
	return &ast.ListCompFor{Vars: fc.vars, Body: body, Position: pos}
}

func (p *parser) parseListCompLet() ast.Node {
	pos := p.curPosition()
	p.next() // consume 'let'
	clauses := p.parseLetClauseList()
	body := p.parseListCompBody()
	return &ast.ListCompLet{Clauses: clauses, Body: body, Position: pos}
}

func (p *parser) parseListCompIf() ast.Node {
	pos := p.curPosition()
	p.next() // consume 'if'
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	then := p.parseListCompBody()
	if p.tok == token.ELSE {
		p.next()
		els := p.parseListCompBody()
		return &ast.ListCompIfElse{Cond: cond, Then: then, Else: els, Position: pos}
	}
	return &ast.ListCompIf{Cond: cond, Body: then, Position: pos}
}

func (p *parser) parseListCompEach() ast.Node {
	pos := p.curPosition()
	p.next() // consume 'each'
	body := p.parseListCompBody()
	return &ast.ListCompEach{Body: body, Position: pos}
}
