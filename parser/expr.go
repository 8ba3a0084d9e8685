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
	"strconv"
	"strings"

	"github.com/oscadlang/go/ast"
	"github.com/oscadlang/go/token"
)

// parseExpr is the entry point for the full precedence chain (ternary down
// to primaries). Expression parsing is re-entered from many call sites
// (argument values, vector elements, index expressions, comprehension
// sources), and each result is registered in the memo table by offset as it
// completes. This grammar resolves every ambiguity with the current token
// (vector/range/comprehension, modifier-vs-operator) or with peekIsAssign's
// scanner.Mark/Reset lookahead (argument shape), never by speculative
// re-parsing, so the table is never actually replayed — see memo.go and
// DESIGN.md for why a packrat cache is still the right shape for this
// component even though this particular grammar never needs to pay for a
// cache hit.
func (p *parser) parseExpr() ast.Expr {
	if p.failed() {
		return &ast.BadExpr{Position: p.curPosition()}
	}
	start := p.off
	x := p.parseTernary()
	p.memo.put(start, ruleExpr, memoEntry{expr: x, endPos: p.off, err: p.err})
	return x
}

func (p *parser) parseTernary() ast.Expr {
	cond := p.parseLogicalOr()
	if p.tok == token.QMARK {
		p.next()
		x := p.parseTernary()
		p.expect(token.COLON)
		y := p.parseTernary()
		return &ast.TernaryExpr{Cond: cond, X: x, Y: y, Position: cond.Pos()}
	}
	return cond
}

func (p *parser) parseLogicalOr() ast.Expr {
	return p.parseBinaryLevel(p.parseLogicalAnd, token.LOR)
}

func (p *parser) parseLogicalAnd() ast.Expr {
	return p.parseBinaryLevel(p.parseEquality, token.LAND)
}

func (p *parser) parseEquality() ast.Expr {
	return p.parseBinaryLevel(p.parseRelational, token.EQL, token.NEQ)
}

func (p *parser) parseRelational() ast.Expr {
	return p.parseBinaryLevel(p.parseBitOr, token.LSS, token.LEQ, token.GTR, token.GEQ)
}

func (p *parser) parseBitOr() ast.Expr {
	return p.parseBinaryLevel(p.parseBitAnd, token.OR)
}

func (p *parser) parseBitAnd() ast.Expr {
	return p.parseBinaryLevel(p.parseShift, token.AND)
}

func (p *parser) parseShift() ast.Expr {
	return p.parseBinaryLevel(p.parseAdditive, token.SHL, token.SHR)
}

func (p *parser) parseAdditive() ast.Expr {
	return p.parseBinaryLevel(p.parseMultiplicative, token.ADD, token.SUB)
}

func (p *parser) parseMultiplicative() ast.Expr {
	return p.parseBinaryLevel(p.parseExponent, token.MUL, token.QUO, token.REM)
}

// parseBinaryLevel folds a left-associative chain at one precedence level
// into a left-leaning tree, per spec §4.5 ("Operator folding").
func (p *parser) parseBinaryLevel(next func() ast.Expr, ops ...token.Kind) ast.Expr {
	x := next()
	for matches(p.tok, ops) {
		op := p.tok
		p.next()
		y := next()
		x = &ast.BinaryExpr{Op: op, X: x, Y: y, Position: x.Pos()}
	}
	return x
}

func matches(tok token.Kind, ops []token.Kind) bool {
	for _, o := range ops {
		if tok == o {
			return true
		}
	}
	return false
}

// parseExponent handles '^', right-associative: each right-hand side itself
// recurses into parseExponent rather than parseUnary, so `2^3^2` folds as
// `2^(3^2)`.
func (p *parser) parseExponent() ast.Expr {
	x := p.parseUnary()
	if p.tok == token.POW {
		p.next()
		y := p.parseExponent()
		return &ast.BinaryExpr{Op: token.POW, X: x, Y: y, Position: x.Pos()}
	}
	return x
}

func (p *parser) parseUnary() ast.Expr {
	switch p.tok {
	case token.SUB, token.NOT, token.BITNOT:
		op := p.tok
		pos := p.curPosition()
		p.next()
		x := p.parseUnary()
		return &ast.UnaryExpr{Op: op, X: x, Position: pos}
	}
	return p.parsePostfix()
}

// parsePostfix folds a primary followed by a run of (args)/[idx]/.name
// tails into left-nested Call/Index/Member nodes in source order.
func (p *parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch p.tok {
		case token.LPAREN:
			args := p.parseArgList()
			x = &ast.CallExpr{Fun: x, Args: args, Position: x.Pos()}
		case token.LBRACK:
			p.next()
			idx := p.parseExpr()
			p.expect(token.RBRACK)
			x = &ast.IndexExpr{X: x, Index: idx, Position: x.Pos()}
		case token.PERIOD:
			p.next()
			name := p.expectIdentName()
			x = &ast.MemberExpr{X: x, Name: name, Position: x.Pos()}
		default:
			return x
		}
		if p.failed() {
			return x
		}
	}
}

func (p *parser) parsePrimary() ast.Expr {
	pos := p.curPosition()
	switch p.tok {
	case token.NUMBER:
		lit := p.lit
		p.next()
		v, _ := strconv.ParseFloat(lit, 64)
		return &ast.NumberLit{Value: v, Literal: lit, Position: pos}
	case token.STRING:
		lit := p.lit
		p.next()
		return &ast.StringLit{Value: decodeStringLit(lit), Literal: lit, Position: pos}
	case token.TRUE:
		p.next()
		return &ast.BoolLit{Value: true, Position: pos}
	case token.FALSE:
		p.next()
		return &ast.BoolLit{Value: false, Position: pos}
	case token.UNDEF:
		p.next()
		return &ast.UndefLit{Position: pos}
	case token.IDENT:
		name := p.lit
		p.next()
		return &ast.Ident{Name: name, Position: pos}
	case token.LPAREN:
		p.next()
		x := p.parseExpr()
		p.expect(token.RPAREN)
		return x
	case token.LBRACK:
		return p.parseBracketExpr(pos)
	case token.LET:
		return p.parseLetExpr(pos)
	case token.ECHO:
		return p.parseEchoExpr(pos)
	case token.ASSERT:
		return p.parseAssertExpr(pos)
	case token.FUNCTION:
		return p.parseFunctionLit(pos)
	}
	if p.err == nil {
		p.err = p.expectSyntaxError("expression")
	}
	return &ast.BadExpr{Position: pos}
}

// parseBracketExpr parses the content of a '[' already peeked (not yet
// consumed) at pos, dispatching to a list comprehension, a range, or a
// plain vector literal.
func (p *parser) parseBracketExpr(pos token.Position) ast.Expr {
	p.next() // consume '['
	if isListCompStart(p.tok) {
		clause := p.parseListCompChain()
		p.expect(token.RBRACK)
		return &ast.ListComprehension{Clause: asFragment(clause), Position: pos}
	}
	if p.tok == token.RBRACK {
		p.next()
		return &ast.VectorLit{Position: pos}
	}
	first := p.parseExpr()
	if p.tok == token.COLON {
		p.next()
		second := p.parseExpr()
		var step, end ast.Expr
		if p.tok == token.COLON {
			p.next()
			step = second
			end = p.parseExpr()
		} else {
			end = second
		}
		p.expect(token.RBRACK)
		return &ast.RangeExpr{Start: first, Step: step, End: end, Position: pos}
	}
	elems := []ast.Expr{first}
	for p.tok == token.COMMA {
		p.next()
		if p.tok == token.RBRACK { // trailing comma
			break
		}
		elems = append(elems, p.parseExpr())
	}
	p.expect(token.RBRACK)
	return &ast.VectorLit{Elems: elems, Position: pos}
}

// asFragment adapts a parseListCompChain() result (ast.Node) into a
// ast.ListCompFragment; the chain's entry point is always a fragment
// because parseBracketExpr only calls parseListCompChain() when
// isListCompStart(p.tok) already confirmed a for/let/if/each keyword.
func asFragment(n ast.Node) ast.ListCompFragment {
	f, _ := n.(ast.ListCompFragment)
	return f
}

func isListCompStart(tok token.Kind) bool {
	switch tok {
	case token.FOR, token.LET, token.IF, token.EACH:
		return true
	}
	return false
}

func (p *parser) parseLetClauseList() []*ast.LetClause {
	p.expect(token.LPAREN)
	var clauses []*ast.LetClause
	for p.tok != token.RPAREN && !p.failed() {
		cpos := p.curPosition()
		name := p.expectIdentName()
		p.expect(token.ASSIGN)
		val := p.parseExpr()
		clauses = append(clauses, &ast.LetClause{Name: name, Value: val, Position: cpos})
		if p.tok == token.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return clauses
}

func (p *parser) parseLetExpr(pos token.Position) ast.Expr {
	p.next() // consume 'let'
	clauses := p.parseLetClauseList()
	body := p.parseExpr()
	return &ast.LetExpr{Clauses: clauses, Body: body, Position: pos}
}

func (p *parser) parseEchoExpr(pos token.Position) ast.Expr {
	p.next() // consume 'echo'
	args := p.parseArgList()
	body := p.parseExpr()
	return &ast.EchoExpr{Args: args, Body: body, Position: pos}
}

func (p *parser) parseAssertExpr(pos token.Position) ast.Expr {
	p.next() // consume 'assert'
	args := p.parseArgList()
	body := p.parseExpr()
	return &ast.AssertExpr{Args: args, Body: body, Position: pos}
}

func (p *parser) parseFunctionLit(pos token.Position) ast.Expr {
	p.next() // consume 'function'
	params := p.parseParamList()
	body := p.parseExpr()
	return &ast.FunctionLit{Params: params, Body: body, Position: pos}
}

// parseArgList parses a parenthesized, comma-separated argument list,
// classifying each argument as positional or named. A trailing comma
// before the closing paren is accepted.
func (p *parser) parseArgList() []ast.Argument {
	p.expect(token.LPAREN)
	var args []ast.Argument
	for p.tok != token.RPAREN && !p.failed() {
		pos := p.curPosition()
		if p.tok == token.IDENT {
			name := p.lit
			// One token of non-consuming lookahead (via scanner.Mark/Reset)
			// tells us whether this identifier is a named-argument label or
			// the start of a positional expression; no backtracking of
			// already-consumed tokens is required either way.
			if p.peekIsAssign() {
				p.next() // consume identifier
				p.next() // consume '='
				val := p.parseExpr()
				args = append(args, &ast.NamedArg{Name: name, Value: val, Position: pos})
				goto sep
			}
		}
		{
			val := p.parseExpr()
			args = append(args, &ast.PositionalArg{Value: val, Position: pos})
		}
	sep:
		if p.tok == token.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return args
}

// peekIsAssign reports whether the token following the current one is '='
// (i.e. p.tok is the label of a named argument), without disturbing p.tok or
// the scanner's committed position. It is the only lookahead this grammar
// needs beyond p.tok itself.
func (p *parser) peekIsAssign() bool {
	mark := p.sc.Mark()
	for {
		_, tok, _ := p.sc.Scan()
		if tok == token.COMMENT {
			continue
		}
		p.sc.Reset(mark)
		return tok == token.ASSIGN
	}
}

func (p *parser) parseParamList() []*ast.Parameter {
	p.expect(token.LPAREN)
	var params []*ast.Parameter
	for p.tok != token.RPAREN && !p.failed() {
		pos := p.curPosition()
		name := p.expectIdentName()
		var def ast.Expr
		if p.tok == token.ASSIGN {
			p.next()
			def = p.parseExpr()
		}
		params = append(params, &ast.Parameter{Name: name, Default: def, Position: pos})
		if p.tok == token.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return params
}

func decodeStringLit(lit string) string {
	if len(lit) < 2 {
		return ""
	}
	inner := lit[1 : len(lit)-1]
	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c != '\\' || i+1 >= len(inner) {
			b.WriteByte(c)
			continue
		}
		i++
		switch inner[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'u':
			if i+4 < len(inner) {
				if v, err := strconv.ParseUint(inner[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(v))
					i += 4
					break
				}
			}
			b.WriteString("\\u")
		default:
			b.WriteByte('\\')
			b.WriteByte(inner[i])
		}
	}
	return b.String()
}
