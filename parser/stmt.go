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
	"github.com/oscadlang/go/oscaderrors"
	"github.com/oscadlang/go/token"
)

// parseStmtList parses the top-level statement sequence of a file: a mix of
// assignments, module/function declarations, use/include directives, and
// module instantiations, terminated by end (token.EOF for the file's outer
// call). Pending comments are flushed into the list as CommentNode siblings
// at every point the loop revisits, preserving their position relative to
// the surrounding statements (spec's "comment nodes are emitted as a
// sibling node... between the statements").
func (p *parser) parseStmtList(end token.Kind) []ast.Stmt {
	var stmts []ast.Stmt
	for p.tok != end && p.tok != token.EOF && !p.failed() {
		stmts = append(stmts, p.takeCommentStmts()...)
		if p.tok == token.SEMICOLON {
			p.next()
			continue
		}
		if p.tok == end {
			break
		}
		stmts = append(stmts, p.parseTopStmt())
	}
	stmts = append(stmts, p.takeCommentStmts()...)
	return stmts
}

// parseInstantiationList parses a module body or a `{ ... }` children block:
// a sequence of modular instantiations only (spec §3.2: "a module
// declaration body is an ordered sequence of instantiations"), with the same
// comment interleaving as parseStmtList.
func (p *parser) parseInstantiationList(end token.Kind) []ast.Instantiation {
	var insts []ast.Instantiation
	for p.tok != end && p.tok != token.EOF && !p.failed() {
		insts = append(insts, p.takeCommentInsts()...)
		if p.tok == token.SEMICOLON {
			p.next()
			continue
		}
		if p.tok == end {
			break
		}
		insts = append(insts, p.parseInstantiation())
	}
	insts = append(insts, p.takeCommentInsts()...)
	return insts
}

func (p *parser) takeCommentStmts() []ast.Stmt {
	cs := p.takeComments()
	if len(cs) == 0 {
		return nil
	}
	out := make([]ast.Stmt, len(cs))
	for i, c := range cs {
		out[i] = c
	}
	return out
}

func (p *parser) takeCommentInsts() []ast.Instantiation {
	cs := p.takeComments()
	if len(cs) == 0 {
		return nil
	}
	out := make([]ast.Instantiation, len(cs))
	for i, c := range cs {
		out[i] = c
	}
	return out
}

// parseTopStmt dispatches a single top-level statement. An identifier is an
// assignment only when immediately followed by '='; otherwise it starts a
// module instantiation (a call), so the two share one token of lookahead via
// peekIsAssign rather than two incompatible grammar paths.
func (p *parser) parseTopStmt() ast.Stmt {
	pos := p.curPosition()
	switch p.tok {
	case token.USE:
		return p.parseUseStatement(pos)
	case token.INCLUDE:
		return p.parseIncludeStatement(pos)
	case token.MODULE:
		return p.parseModuleDecl(pos)
	case token.FUNCTION:
		return p.parseFunctionDecl(pos)
	case token.IDENT:
		if p.peekIsAssign() {
			return p.parseAssignmentStmt(pos)
		}
	}
	return p.parseInstantiation()
}

func (p *parser) parseModuleDecl(pos token.Position) ast.Stmt {
	p.next() // consume 'module'
	name := p.expectIdentName()
	params := p.parseParamList()
	body := p.parseChildren()
	return &ast.ModuleDecl{Name: name, Params: params, Body: body, Position: pos}
}

func (p *parser) parseFunctionDecl(pos token.Position) ast.Stmt {
	p.next() // consume 'function'
	name := p.expectIdentName()
	params := p.parseParamList()
	p.expect(token.ASSIGN)
	body := p.parseExpr()
	p.expect(token.SEMICOLON)
	return &ast.FunctionDecl{Name: name, Params: params, Body: body, Position: pos}
}

func (p *parser) parseAssignmentStmt(pos token.Position) ast.Stmt {
	name := p.expectIdentName()
	p.expect(token.ASSIGN)
	val := p.parseExpr()
	p.expect(token.SEMICOLON)
	return &ast.Assignment{Name: name, Value: val, Position: pos}
}

func (p *parser) parseUseStatement(pos token.Position) ast.Stmt {
	p.next() // consume 'use'
	path, _ := p.expectAngledPath()
	return &ast.UseStatement{Path: path, Position: pos}
}

// parseIncludeStatement is only reached when the source did not go through
// the include pre-processor (ParseOptions.ProcessIncludes=false, ParseString,
// or a direct Parse call); otherwise the pre-processor has already spliced
// the file's contents in and blanked the directive before the parser ever
// sees this token (spec §4.4).
func (p *parser) parseIncludeStatement(pos token.Position) ast.Stmt {
	p.next() // consume 'include'
	path, _ := p.expectAngledPath()
	return &ast.IncludeStatement{Path: path, Position: pos}
}

// expectAngledPath consumes a '<path>' literal, reading the path text
// directly off the source buffer rather than through the ordinary token
// stream: it may contain characters (slashes, dots) the grammar gives no
// other meaning, and per spec is treated as wholly opaque.
func (p *parser) expectAngledPath() (string, bool) {
	if p.tok != token.LSS {
		if p.err == nil {
			p.err = p.expectSyntaxError("<path>")
		}
		return "", false
	}
	path, ok := p.sc.ScanAngledPath()
	if !ok {
		if p.err == nil {
			p.err = p.syntaxError("unterminated path literal")
		}
		return path, false
	}
	p.next()
	return path, true
}

// parseInstantiation parses one modular instantiation: a modifier-wrapped
// instantiation, one of the control-flow forms, or a plain module call
// (including the anonymous `{ ... }` grouping form).
func (p *parser) parseInstantiation() ast.Instantiation {
	pos := p.curPosition()
	switch p.tok {
	case token.NOT, token.HASH, token.REM, token.MUL:
		mod := p.tok
		p.next()
		body := p.parseInstantiation()
		return &ast.ModifierInstantiation{Modifier: mod, Body: body, Position: pos}
	case token.FOR:
		return p.parseForInstantiation(pos)
	case token.INTERSECTION_FOR:
		return p.parseIntersectionForInstantiation(pos)
	case token.LET:
		return p.parseLetInstantiation(pos)
	case token.ECHO:
		p.next()
		args := p.parseArgList()
		children := p.parseChildren()
		return &ast.EchoInstantiation{Args: args, Children: children, Position: pos}
	case token.ASSERT:
		p.next()
		args := p.parseArgList()
		children := p.parseChildren()
		return &ast.AssertInstantiation{Args: args, Children: children, Position: pos}
	case token.IF:
		return p.parseIfInstantiation(pos)
	case token.LBRACE:
		p.next()
		children := p.parseInstantiationList(token.RBRACE)
		p.expect(token.RBRACE)
		return &ast.CallInstantiation{Children: children, Position: pos}
	case token.IDENT:
		name := p.lit
		p.next()
		args := p.parseArgList()
		children := p.parseChildren()
		return &ast.CallInstantiation{Name: name, Args: args, Children: children, Position: pos}
	}
	if p.err == nil {
		p.err = p.expectSyntaxError("module instantiation")
	}
	p.next()
	return &ast.CallInstantiation{Position: pos}
}

// parseChildren parses the trailing children of an instantiation: a `{...}`
// block, a single nested instantiation, or none (a bare ';').
func (p *parser) parseChildren() []ast.Instantiation {
	switch p.tok {
	case token.LBRACE:
		p.next()
		list := p.parseInstantiationList(token.RBRACE)
		p.expect(token.RBRACE)
		return list
	case token.SEMICOLON:
		p.next()
		return nil
	default:
		return []ast.Instantiation{p.parseInstantiation()}
	}
}

func (p *parser) parseForInstantiation(pos token.Position) ast.Instantiation {
	p.next() // consume 'for'
	fc := p.parseForClause()
	children := p.parseChildren()
	if fc.cStyle {
		return &ast.CForInstantiation{Init: fc.init, Cond: fc.cond, Update: fc.update, Children: children, Position: pos}
	}
	return &ast.ForInstantiation{Vars: fc.vars, Children: children, Position: pos}
}

func (p *parser) parseIntersectionForInstantiation(pos token.Position) ast.Instantiation {
	p.next() // consume 'intersection_for'
	fc := p.parseForClause()
	if fc.cStyle {
		// Upstream OpenSCAD itself rejects a C-style clause here: unlike
		// plain for, intersection_for has no way to combine the per-
		// iteration solids short of the range form.
		if p.err == nil {
			p.err = &oscaderrors.SyntaxError{
				Position: pos,
				Message:  "intersection_for does not support a C-style for clause",
			}
		}
	}
	children := p.parseChildren()
	return &ast.IntersectionForInstantiation{Vars: fc.vars, Children: children, Position: pos}
}

func (p *parser) parseLetInstantiation(pos token.Position) ast.Instantiation {
	p.next() // consume 'let'
	clauses := p.parseLetClauseList()
	children := p.parseChildren()
	return &ast.LetInstantiation{Clauses: clauses, Children: children, Position: pos}
}

func (p *parser) parseIfInstantiation(pos token.Position) ast.Instantiation {
	p.next() // consume 'if'
	p.expect(token.LPAREN)
	cond := p.parseExpr()
	p.expect(token.RPAREN)
	then := p.parseChildren()
	if p.tok == token.ELSE {
		p.next()
		els := p.parseChildren()
		return &ast.IfElseInstantiation{Cond: cond, Then: then, Else: els, Position: pos}
	}
	return &ast.IfInstantiation{Cond: cond, Then: then, Position: pos}
}
