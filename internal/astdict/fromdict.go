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

package astdict

import (
	"fmt"

	"github.com/oscadlang/go/ast"
	"github.com/oscadlang/go/oscaderrors"
	"github.com/oscadlang/go/token"
)

// FromDict rebuilds an AST node from its generic representation. d must
// carry a "type" field naming one of the concrete node types ToDict
// produces; any other shape is a DeserializationError.
func FromDict(d Dict) (ast.Node, error) {
	typ, _ := d["type"].(string)
	pos := readPosition(d)

	switch typ {
	case "File":
		decls, err := stmtSlice(d, "decls")
		if err != nil {
			return nil, err
		}
		return &ast.File{Decls: decls, Position: pos}, nil

	case "NumberLit":
		v, err := reqFloat(d, "value")
		if err != nil {
			return nil, err
		}
		lit, _ := d["literal"].(string)
		return &ast.NumberLit{Value: v, Literal: lit, Position: pos}, nil
	case "StringLit":
		v, _ := d["value"].(string)
		lit, _ := d["literal"].(string)
		return &ast.StringLit{Value: v, Literal: lit, Position: pos}, nil
	case "BoolLit":
		v, _ := d["value"].(bool)
		return &ast.BoolLit{Value: v, Position: pos}, nil
	case "UndefLit":
		return &ast.UndefLit{Position: pos}, nil
	case "BadExpr":
		return &ast.BadExpr{Position: pos}, nil
	case "Ident":
		name, err := reqString(d, "name")
		if err != nil {
			return nil, err
		}
		return &ast.Ident{Name: name, Position: pos}, nil
	case "RangeExpr":
		start, err := exprField(d, "start")
		if err != nil {
			return nil, err
		}
		step, err := optExprField(d, "step")
		if err != nil {
			return nil, err
		}
		end, err := exprField(d, "end")
		if err != nil {
			return nil, err
		}
		return &ast.RangeExpr{Start: start, Step: step, End: end, Position: pos}, nil

	case "UnaryExpr":
		op, err := reqOp(d, "op")
		if err != nil {
			return nil, err
		}
		x, err := exprField(d, "x")
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op, X: x, Position: pos}, nil
	case "BinaryExpr":
		op, err := reqOp(d, "op")
		if err != nil {
			return nil, err
		}
		x, err := exprField(d, "x")
		if err != nil {
			return nil, err
		}
		y, err := exprField(d, "y")
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: op, X: x, Y: y, Position: pos}, nil

	case "TernaryExpr":
		cond, err := exprField(d, "cond")
		if err != nil {
			return nil, err
		}
		x, err := exprField(d, "x")
		if err != nil {
			return nil, err
		}
		y, err := exprField(d, "y")
		if err != nil {
			return nil, err
		}
		return &ast.TernaryExpr{Cond: cond, X: x, Y: y, Position: pos}, nil
	case "LetClause":
		name, err := reqString(d, "name")
		if err != nil {
			return nil, err
		}
		val, err := exprField(d, "value")
		if err != nil {
			return nil, err
		}
		return &ast.LetClause{Name: name, Value: val, Position: pos}, nil
	case "LetExpr":
		clauses, err := letClauseSlice(d, "clauses")
		if err != nil {
			return nil, err
		}
		body, err := exprField(d, "body")
		if err != nil {
			return nil, err
		}
		return &ast.LetExpr{Clauses: clauses, Body: body, Position: pos}, nil
	case "EchoExpr":
		args, err := argSlice(d, "args")
		if err != nil {
			return nil, err
		}
		body, err := exprField(d, "body")
		if err != nil {
			return nil, err
		}
		return &ast.EchoExpr{Args: args, Body: body, Position: pos}, nil
	case "AssertExpr":
		args, err := argSlice(d, "args")
		if err != nil {
			return nil, err
		}
		body, err := exprField(d, "body")
		if err != nil {
			return nil, err
		}
		return &ast.AssertExpr{Args: args, Body: body, Position: pos}, nil
	case "FunctionLit":
		params, err := paramSlice(d, "params")
		if err != nil {
			return nil, err
		}
		body, err := exprField(d, "body")
		if err != nil {
			return nil, err
		}
		return &ast.FunctionLit{Params: params, Body: body, Position: pos}, nil
	case "CallExpr":
		fun, err := exprField(d, "fun")
		if err != nil {
			return nil, err
		}
		args, err := argSlice(d, "args")
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{Fun: fun, Args: args, Position: pos}, nil
	case "IndexExpr":
		x, err := exprField(d, "x")
		if err != nil {
			return nil, err
		}
		idx, err := exprField(d, "index")
		if err != nil {
			return nil, err
		}
		return &ast.IndexExpr{X: x, Index: idx, Position: pos}, nil
	case "MemberExpr":
		x, err := exprField(d, "x")
		if err != nil {
			return nil, err
		}
		name, err := reqString(d, "name")
		if err != nil {
			return nil, err
		}
		return &ast.MemberExpr{X: x, Name: name, Position: pos}, nil
	case "VectorLit":
		elems, err := exprSlice(d, "elems")
		if err != nil {
			return nil, err
		}
		return &ast.VectorLit{Elems: elems, Position: pos}, nil
	case "ListComprehension":
		clause, err := fragmentField(d, "clause")
		if err != nil {
			return nil, err
		}
		return &ast.ListComprehension{Clause: clause, Position: pos}, nil

	case "ForVarBinding":
		name, err := reqString(d, "name")
		if err != nil {
			return nil, err
		}
		src, err := exprField(d, "source")
		if err != nil {
			return nil, err
		}
		return &ast.ForVarBinding{Name: name, Source: src, Position: pos}, nil
	case "ListCompFor":
		vars, err := varSlice(d, "vars")
		if err != nil {
			return nil, err
		}
		body, err := bodyField(d, "body")
		if err != nil {
			return nil, err
		}
		return &ast.ListCompFor{Vars: vars, Body: body, Position: pos}, nil
	case "ListCompCFor":
		init, err := assignSlice(d, "init")
		if err != nil {
			return nil, err
		}
		cond, err := exprField(d, "cond")
		if err != nil {
			return nil, err
		}
		update, err := assignSlice(d, "update")
		if err != nil {
			return nil, err
		}
		body, err := bodyField(d, "body")
		if err != nil {
			return nil, err
		}
		return &ast.ListCompCFor{Init: init, Cond: cond, Update: update, Body: body, Position: pos}, nil
	case "ListCompIf":
		cond, err := exprField(d, "cond")
		if err != nil {
			return nil, err
		}
		body, err := bodyField(d, "body")
		if err != nil {
			return nil, err
		}
		return &ast.ListCompIf{Cond: cond, Body: body, Position: pos}, nil
	case "ListCompIfElse":
		cond, err := exprField(d, "cond")
		if err != nil {
			return nil, err
		}
		then, err := bodyField(d, "then")
		if err != nil {
			return nil, err
		}
		els, err := bodyField(d, "else")
		if err != nil {
			return nil, err
		}
		return &ast.ListCompIfElse{Cond: cond, Then: then, Else: els, Position: pos}, nil
	case "ListCompLet":
		clauses, err := letClauseSlice(d, "clauses")
		if err != nil {
			return nil, err
		}
		body, err := bodyField(d, "body")
		if err != nil {
			return nil, err
		}
		return &ast.ListCompLet{Clauses: clauses, Body: body, Position: pos}, nil
	case "ListCompEach":
		body, err := bodyField(d, "body")
		if err != nil {
			return nil, err
		}
		return &ast.ListCompEach{Body: body, Position: pos}, nil

	case "CallInstantiation":
		name, _ := d["name"].(string)
		args, err := argSlice(d, "args")
		if err != nil {
			return nil, err
		}
		children, err := instSlice(d, "children")
		if err != nil {
			return nil, err
		}
		return &ast.CallInstantiation{Name: name, Args: args, Children: children, Position: pos}, nil
	case "ForInstantiation":
		vars, err := varSlice(d, "vars")
		if err != nil {
			return nil, err
		}
		children, err := instSlice(d, "children")
		if err != nil {
			return nil, err
		}
		return &ast.ForInstantiation{Vars: vars, Children: children, Position: pos}, nil
	case "CForInstantiation":
		init, err := assignSlice(d, "init")
		if err != nil {
			return nil, err
		}
		cond, err := exprField(d, "cond")
		if err != nil {
			return nil, err
		}
		update, err := assignSlice(d, "update")
		if err != nil {
			return nil, err
		}
		children, err := instSlice(d, "children")
		if err != nil {
			return nil, err
		}
		return &ast.CForInstantiation{Init: init, Cond: cond, Update: update, Children: children, Position: pos}, nil
	case "IntersectionForInstantiation":
		vars, err := varSlice(d, "vars")
		if err != nil {
			return nil, err
		}
		children, err := instSlice(d, "children")
		if err != nil {
			return nil, err
		}
		return &ast.IntersectionForInstantiation{Vars: vars, Children: children, Position: pos}, nil
	case "LetInstantiation":
		clauses, err := letClauseSlice(d, "clauses")
		if err != nil {
			return nil, err
		}
		children, err := instSlice(d, "children")
		if err != nil {
			return nil, err
		}
		return &ast.LetInstantiation{Clauses: clauses, Children: children, Position: pos}, nil
	case "EchoInstantiation":
		args, err := argSlice(d, "args")
		if err != nil {
			return nil, err
		}
		children, err := instSlice(d, "children")
		if err != nil {
			return nil, err
		}
		return &ast.EchoInstantiation{Args: args, Children: children, Position: pos}, nil
	case "AssertInstantiation":
		args, err := argSlice(d, "args")
		if err != nil {
			return nil, err
		}
		children, err := instSlice(d, "children")
		if err != nil {
			return nil, err
		}
		return &ast.AssertInstantiation{Args: args, Children: children, Position: pos}, nil
	case "IfInstantiation":
		cond, err := exprField(d, "cond")
		if err != nil {
			return nil, err
		}
		then, err := instSlice(d, "then")
		if err != nil {
			return nil, err
		}
		return &ast.IfInstantiation{Cond: cond, Then: then, Position: pos}, nil
	case "IfElseInstantiation":
		cond, err := exprField(d, "cond")
		if err != nil {
			return nil, err
		}
		then, err := instSlice(d, "then")
		if err != nil {
			return nil, err
		}
		els, err := instSlice(d, "else")
		if err != nil {
			return nil, err
		}
		return &ast.IfElseInstantiation{Cond: cond, Then: then, Else: els, Position: pos}, nil
	case "ModifierInstantiation":
		mod, err := reqOp(d, "modifier")
		if err != nil {
			return nil, err
		}
		body, err := instField(d, "body")
		if err != nil {
			return nil, err
		}
		return &ast.ModifierInstantiation{Modifier: mod, Body: body, Position: pos}, nil

	case "Parameter":
		name, err := reqString(d, "name")
		if err != nil {
			return nil, err
		}
		def, err := optExprField(d, "default")
		if err != nil {
			return nil, err
		}
		return &ast.Parameter{Name: name, Default: def, Position: pos}, nil
	case "ModuleDecl":
		name, err := reqString(d, "name")
		if err != nil {
			return nil, err
		}
		params, err := paramSlice(d, "params")
		if err != nil {
			return nil, err
		}
		body, err := instSlice(d, "body")
		if err != nil {
			return nil, err
		}
		return &ast.ModuleDecl{Name: name, Params: params, Body: body, Position: pos}, nil
	case "FunctionDecl":
		name, err := reqString(d, "name")
		if err != nil {
			return nil, err
		}
		params, err := paramSlice(d, "params")
		if err != nil {
			return nil, err
		}
		body, err := exprField(d, "body")
		if err != nil {
			return nil, err
		}
		return &ast.FunctionDecl{Name: name, Params: params, Body: body, Position: pos}, nil
	case "Assignment":
		name, err := reqString(d, "name")
		if err != nil {
			return nil, err
		}
		val, err := exprField(d, "value")
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{Name: name, Value: val, Position: pos}, nil

	case "UseStatement":
		path, err := reqString(d, "path")
		if err != nil {
			return nil, err
		}
		return &ast.UseStatement{Path: path, Position: pos}, nil
	case "IncludeStatement":
		path, err := reqString(d, "path")
		if err != nil {
			return nil, err
		}
		return &ast.IncludeStatement{Path: path, Position: pos}, nil

	case "PositionalArg":
		val, err := exprField(d, "value")
		if err != nil {
			return nil, err
		}
		return &ast.PositionalArg{Value: val, Position: pos}, nil
	case "NamedArg":
		name, err := reqString(d, "name")
		if err != nil {
			return nil, err
		}
		val, err := exprField(d, "value")
		if err != nil {
			return nil, err
		}
		return &ast.NamedArg{Name: name, Value: val, Position: pos}, nil

	case "CommentNode":
		text, _ := d["text"].(string)
		block, _ := d["block"].(bool)
		return &ast.CommentNode{Text: text, Block: block, Position: pos}, nil
	}
	return nil, &oscaderrors.DeserializationError{Reason: fmt.Sprintf("unknown node type %q", typ)}
}

func readPosition(d Dict) token.Position {
	raw, ok := d["position"]
	if !ok {
		return token.Position{}
	}
	pd, ok := raw.(Dict)
	if !ok {
		return token.Position{}
	}
	file, _ := pd["file"].(string)
	return token.Position{
		File:   file,
		Offset: toInt(pd["offset"]),
		Line:   toInt(pd["line"]),
		Column: toInt(pd["column"]),
	}
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func reqString(d Dict, key string) (string, error) {
	v, ok := d[key].(string)
	if !ok {
		return "", &oscaderrors.DeserializationError{Reason: fmt.Sprintf("missing or non-string field %q", key)}
	}
	return v, nil
}

func reqFloat(d Dict, key string) (float64, error) {
	switch n := d[key].(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, &oscaderrors.DeserializationError{Reason: fmt.Sprintf("missing or non-numeric field %q", key)}
}

func reqOp(d Dict, key string) (token.Kind, error) {
	sym, err := reqString(d, key)
	if err != nil {
		return 0, err
	}
	k, ok := token.OperatorByString(sym)
	if !ok {
		return 0, &oscaderrors.DeserializationError{Reason: fmt.Sprintf("unknown operator %q in field %q", sym, key)}
	}
	return k, nil
}

func asDict(v any) (Dict, error) {
	d, ok := v.(Dict)
	if !ok {
		return nil, &oscaderrors.DeserializationError{Reason: "expected an object"}
	}
	return d, nil
}

func asSlice(v any) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	s, ok := v.([]any)
	if !ok {
		return nil, &oscaderrors.DeserializationError{Reason: "expected an array"}
	}
	return s, nil
}

func exprField(d Dict, key string) (ast.Expr, error) {
	sub, err := asDict(d[key])
	if err != nil {
		return nil, err
	}
	n, err := FromDict(sub)
	if err != nil {
		return nil, err
	}
	e, ok := n.(ast.Expr)
	if !ok {
		return nil, &oscaderrors.DeserializationError{Reason: fmt.Sprintf("field %q is not an expression", key)}
	}
	return e, nil
}

func optExprField(d Dict, key string) (ast.Expr, error) {
	if d[key] == nil {
		return nil, nil
	}
	return exprField(d, key)
}

func instField(d Dict, key string) (ast.Instantiation, error) {
	sub, err := asDict(d[key])
	if err != nil {
		return nil, err
	}
	n, err := FromDict(sub)
	if err != nil {
		return nil, err
	}
	i, ok := n.(ast.Instantiation)
	if !ok {
		return nil, &oscaderrors.DeserializationError{Reason: fmt.Sprintf("field %q is not a module instantiation", key)}
	}
	return i, nil
}

func fragmentField(d Dict, key string) (ast.ListCompFragment, error) {
	sub, err := asDict(d[key])
	if err != nil {
		return nil, err
	}
	n, err := FromDict(sub)
	if err != nil {
		return nil, err
	}
	f, ok := n.(ast.ListCompFragment)
	if !ok {
		return nil, &oscaderrors.DeserializationError{Reason: fmt.Sprintf("field %q is not a list-comprehension fragment", key)}
	}
	return f, nil
}

// bodyField decodes a comprehension-fragment "body", which may be either
// another fragment or a plain expression (see ast.ListCompFor.Body et al.).
func bodyField(d Dict, key string) (ast.Node, error) {
	sub, err := asDict(d[key])
	if err != nil {
		return nil, err
	}
	return FromDict(sub)
}

func exprSlice(d Dict, key string) ([]ast.Expr, error) {
	raw, err := asSlice(d[key])
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]ast.Expr, 0, len(raw))
	for _, item := range raw {
		sub, err := asDict(item)
		if err != nil {
			return nil, err
		}
		n, err := FromDict(sub)
		if err != nil {
			return nil, err
		}
		e, ok := n.(ast.Expr)
		if !ok {
			return nil, &oscaderrors.DeserializationError{Reason: fmt.Sprintf("element of %q is not an expression", key)}
		}
		out = append(out, e)
	}
	return out, nil
}

func argSlice(d Dict, key string) ([]ast.Argument, error) {
	raw, err := asSlice(d[key])
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]ast.Argument, 0, len(raw))
	for _, item := range raw {
		sub, err := asDict(item)
		if err != nil {
			return nil, err
		}
		n, err := FromDict(sub)
		if err != nil {
			return nil, err
		}
		a, ok := n.(ast.Argument)
		if !ok {
			return nil, &oscaderrors.DeserializationError{Reason: fmt.Sprintf("element of %q is not an argument", key)}
		}
		out = append(out, a)
	}
	return out, nil
}

func instSlice(d Dict, key string) ([]ast.Instantiation, error) {
	raw, err := asSlice(d[key])
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]ast.Instantiation, 0, len(raw))
	for _, item := range raw {
		sub, err := asDict(item)
		if err != nil {
			return nil, err
		}
		n, err := FromDict(sub)
		if err != nil {
			return nil, err
		}
		i, ok := n.(ast.Instantiation)
		if !ok {
			return nil, &oscaderrors.DeserializationError{Reason: fmt.Sprintf("element of %q is not a module instantiation", key)}
		}
		out = append(out, i)
	}
	return out, nil
}

func stmtSlice(d Dict, key string) ([]ast.Stmt, error) {
	raw, err := asSlice(d[key])
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]ast.Stmt, 0, len(raw))
	for _, item := range raw {
		sub, err := asDict(item)
		if err != nil {
			return nil, err
		}
		n, err := FromDict(sub)
		if err != nil {
			return nil, err
		}
		s, ok := n.(ast.Stmt)
		if !ok {
			return nil, &oscaderrors.DeserializationError{Reason: fmt.Sprintf("element of %q is not a statement", key)}
		}
		out = append(out, s)
	}
	return out, nil
}

func paramSlice(d Dict, key string) ([]*ast.Parameter, error) {
	raw, err := asSlice(d[key])
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]*ast.Parameter, 0, len(raw))
	for _, item := range raw {
		sub, err := asDict(item)
		if err != nil {
			return nil, err
		}
		n, err := FromDict(sub)
		if err != nil {
			return nil, err
		}
		p, ok := n.(*ast.Parameter)
		if !ok {
			return nil, &oscaderrors.DeserializationError{Reason: fmt.Sprintf("element of %q is not a Parameter", key)}
		}
		out = append(out, p)
	}
	return out, nil
}

func letClauseSlice(d Dict, key string) ([]*ast.LetClause, error) {
	raw, err := asSlice(d[key])
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]*ast.LetClause, 0, len(raw))
	for _, item := range raw {
		sub, err := asDict(item)
		if err != nil {
			return nil, err
		}
		n, err := FromDict(sub)
		if err != nil {
			return nil, err
		}
		c, ok := n.(*ast.LetClause)
		if !ok {
			return nil, &oscaderrors.DeserializationError{Reason: fmt.Sprintf("element of %q is not a LetClause", key)}
		}
		out = append(out, c)
	}
	return out, nil
}

func varSlice(d Dict, key string) ([]*ast.ForVarBinding, error) {
	raw, err := asSlice(d[key])
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]*ast.ForVarBinding, 0, len(raw))
	for _, item := range raw {
		sub, err := asDict(item)
		if err != nil {
			return nil, err
		}
		n, err := FromDict(sub)
		if err != nil {
			return nil, err
		}
		b, ok := n.(*ast.ForVarBinding)
		if !ok {
			return nil, &oscaderrors.DeserializationError{Reason: fmt.Sprintf("element of %q is not a ForVarBinding", key)}
		}
		out = append(out, b)
	}
	return out, nil
}

func assignSlice(d Dict, key string) ([]*ast.Assignment, error) {
	raw, err := asSlice(d[key])
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]*ast.Assignment, 0, len(raw))
	for _, item := range raw {
		sub, err := asDict(item)
		if err != nil {
			return nil, err
		}
		n, err := FromDict(sub)
		if err != nil {
			return nil, err
		}
		a, ok := n.(*ast.Assignment)
		if !ok {
			return nil, &oscaderrors.DeserializationError{Reason: fmt.Sprintf("element of %q is not an Assignment", key)}
		}
		out = append(out, a)
	}
	return out, nil
}
