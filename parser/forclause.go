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

// forClause is the parse of a parenthesized for(...) clause, shared by the
// modular for/intersection_for instantiations (stmt.go) and the for/C-style
// list-comprehension fragments (listcomp.go): both accept either a
// comma-separated `name = expr` variable list or a C-style
// `init; cond; update` triple, distinguished only by whether a ';' turns up
// before the first ')'.
type forClause struct {
	vars   []*ast.ForVarBinding // set when !cStyle
	init   []*ast.Assignment    // set when cStyle
	cond   ast.Expr
	update []*ast.Assignment
	cStyle bool
}

func (p *parser) parseAssignList(stop token.Kind) []*ast.Assignment {
	var out []*ast.Assignment
	for p.tok != stop && p.tok != token.SEMICOLON && !p.failed() {
		pos := p.curPosition()
		name := p.expectIdentName()
		p.expect(token.ASSIGN)
		val := p.parseExpr()
		out = append(out, &ast.Assignment{Name: name, Value: val, Position: pos})
		if p.tok == token.COMMA {
			p.next()
			continue
		}
		break
	}
	return out
}

// parseForClause parses the '(' ... ')' following a for/intersection_for
// keyword, already positioned at the '('.
func (p *parser) parseForClause() forClause {
	p.expect(token.LPAREN)
	assigns := p.parseAssignList(token.RPAREN)
	if p.tok == token.SEMICOLON {
		p.next()
		cond := p.parseExpr()
		p.expect(token.SEMICOLON)
		update := p.parseAssignList(token.RPAREN)
		p.expect(token.RPAREN)
		return forClause{init: assigns, cond: cond, update: update, cStyle: true}
	}
	p.expect(token.RPAREN)
	vars := make([]*ast.ForVarBinding, len(assigns))
	for i, a := range assigns {
		vars[i] = &ast.ForVarBinding{Name: a.Name, Source: a.Value, Position: a.Position}
	}
	return forClause{vars: vars}
}
