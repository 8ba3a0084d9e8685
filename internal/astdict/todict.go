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

// Package astdict implements the generic to_dict/from_dict pair spec §6.1
// asks for: a lossless conversion between this module's closed AST and a
// plain map[string]any tree, so that JSON and YAML encoders (package
// encoding/astjson, encoding/astyaml) need nothing AST-specific of their
// own. Every dict carries a "type" tag naming the concrete node, used on the
// way back in fromdict.go to pick the right struct to rebuild.
package astdict

import (
	"github.com/oscadlang/go/ast"
	"github.com/oscadlang/go/token"
)

// Dict is one node's generic representation. It is a plain alias for
// map[string]any (not a distinct named type) so that values produced by
// encoding/json's and gopkg.in/yaml.v3's generic-interface unmarshaling
// (which always yield map[string]any, never a caller's named map type) can
// be used here without a conversion pass.
type Dict = map[string]any

func posFields(pos token.Position, includePosition bool) Dict {
	if !includePosition {
		return Dict{}
	}
	return Dict{"position": Dict{
		"file":   pos.File,
		"offset": pos.Offset,
		"line":   pos.Line,
		"column": pos.Column,
	}}
}

func withPos(d Dict, typ string, pos token.Position, includePosition bool) Dict {
	d["type"] = typ
	for k, v := range posFields(pos, includePosition) {
		d[k] = v
	}
	return d
}

func nodeSlice[T ast.Node](items []T, includePosition bool) []any {
	if items == nil {
		return nil
	}
	out := make([]any, len(items))
	for i, n := range items {
		out[i] = ToDict(n, includePosition)
	}
	return out
}

func exprOrNil(e ast.Expr, includePosition bool) any {
	if e == nil {
		return nil
	}
	return ToDict(e, includePosition)
}

func nodeOrNil(n ast.Node, includePosition bool) any {
	if n == nil {
		return nil
	}
	return ToDict(n, includePosition)
}

// ToDict converts any AST node (including the helper types Parameter,
// LetClause, ForVarBinding, and Assignment, which implement ast.Node but not
// Expr/Stmt/Instantiation) into its generic representation.
func ToDict(n ast.Node, includePosition bool) Dict {
	switch v := n.(type) {
	case *ast.File:
		return withPos(Dict{"decls": nodeSlice(v.Decls, includePosition)}, "File", v.Position, includePosition)

	case *ast.NumberLit:
		return withPos(Dict{"value": v.Value, "literal": v.Literal}, "NumberLit", v.Position, includePosition)
	case *ast.StringLit:
		return withPos(Dict{"value": v.Value, "literal": v.Literal}, "StringLit", v.Position, includePosition)
	case *ast.BoolLit:
		return withPos(Dict{"value": v.Value}, "BoolLit", v.Position, includePosition)
	case *ast.UndefLit:
		return withPos(Dict{}, "UndefLit", v.Position, includePosition)
	case *ast.BadExpr:
		return withPos(Dict{}, "BadExpr", v.Position, includePosition)
	case *ast.Ident:
		return withPos(Dict{"name": v.Name}, "Ident", v.Position, includePosition)
	case *ast.RangeExpr:
		return withPos(Dict{
			"start": exprOrNil(v.Start, includePosition),
			"step":  exprOrNil(v.Step, includePosition),
			"end":   exprOrNil(v.End, includePosition),
		}, "RangeExpr", v.Position, includePosition)

	case *ast.UnaryExpr:
		return withPos(Dict{"op": v.Op.String(), "x": ToDict(v.X, includePosition)}, "UnaryExpr", v.Position, includePosition)
	case *ast.BinaryExpr:
		return withPos(Dict{
			"op": v.Op.String(),
			"x":  ToDict(v.X, includePosition),
			"y":  ToDict(v.Y, includePosition),
		}, "BinaryExpr", v.Position, includePosition)

	case *ast.TernaryExpr:
		return withPos(Dict{
			"cond": ToDict(v.Cond, includePosition),
			"x":    ToDict(v.X, includePosition),
			"y":    ToDict(v.Y, includePosition),
		}, "TernaryExpr", v.Position, includePosition)
	case *ast.LetClause:
		return withPos(Dict{"name": v.Name, "value": ToDict(v.Value, includePosition)}, "LetClause", v.Position, includePosition)
	case *ast.LetExpr:
		return withPos(Dict{
			"clauses": nodeSlice(v.Clauses, includePosition),
			"body":    ToDict(v.Body, includePosition),
		}, "LetExpr", v.Position, includePosition)
	case *ast.EchoExpr:
		return withPos(Dict{
			"args": nodeSlice(v.Args, includePosition),
			"body": ToDict(v.Body, includePosition),
		}, "EchoExpr", v.Position, includePosition)
	case *ast.AssertExpr:
		return withPos(Dict{
			"args": nodeSlice(v.Args, includePosition),
			"body": ToDict(v.Body, includePosition),
		}, "AssertExpr", v.Position, includePosition)
	case *ast.FunctionLit:
		return withPos(Dict{
			"params": nodeSlice(v.Params, includePosition),
			"body":   ToDict(v.Body, includePosition),
		}, "FunctionLit", v.Position, includePosition)
	case *ast.CallExpr:
		return withPos(Dict{
			"fun":  ToDict(v.Fun, includePosition),
			"args": nodeSlice(v.Args, includePosition),
		}, "CallExpr", v.Position, includePosition)
	case *ast.IndexExpr:
		return withPos(Dict{
			"x":     ToDict(v.X, includePosition),
			"index": ToDict(v.Index, includePosition),
		}, "IndexExpr", v.Position, includePosition)
	case *ast.MemberExpr:
		return withPos(Dict{
			"x":    ToDict(v.X, includePosition),
			"name": v.Name,
		}, "MemberExpr", v.Position, includePosition)
	case *ast.VectorLit:
		return withPos(Dict{"elems": nodeSlice(v.Elems, includePosition)}, "VectorLit", v.Position, includePosition)
	case *ast.ListComprehension:
		return withPos(Dict{"clause": ToDict(v.Clause, includePosition)}, "ListComprehension", v.Position, includePosition)

	case *ast.ForVarBinding:
		return withPos(Dict{"name": v.Name, "source": ToDict(v.Source, includePosition)}, "ForVarBinding", v.Position, includePosition)
	case *ast.ListCompFor:
		return withPos(Dict{
			"vars": nodeSlice(v.Vars, includePosition),
			"body": nodeOrNil(v.Body, includePosition),
		}, "ListCompFor", v.Position, includePosition)
	case *ast.ListCompCFor:
		return withPos(Dict{
			"init":   nodeSlice(v.Init, includePosition),
			"cond":   ToDict(v.Cond, includePosition),
			"update": nodeSlice(v.Update, includePosition),
			"body":   nodeOrNil(v.Body, includePosition),
		}, "ListCompCFor", v.Position, includePosition)
	case *ast.ListCompIf:
		return withPos(Dict{
			"cond": ToDict(v.Cond, includePosition),
			"body": nodeOrNil(v.Body, includePosition),
		}, "ListCompIf", v.Position, includePosition)
	case *ast.ListCompIfElse:
		return withPos(Dict{
			"cond": ToDict(v.Cond, includePosition),
			"then": nodeOrNil(v.Then, includePosition),
			"else": nodeOrNil(v.Else, includePosition),
		}, "ListCompIfElse", v.Position, includePosition)
	case *ast.ListCompLet:
		return withPos(Dict{
			"clauses": nodeSlice(v.Clauses, includePosition),
			"body":    nodeOrNil(v.Body, includePosition),
		}, "ListCompLet", v.Position, includePosition)
	case *ast.ListCompEach:
		return withPos(Dict{"body": nodeOrNil(v.Body, includePosition)}, "ListCompEach", v.Position, includePosition)

	case *ast.CallInstantiation:
		return withPos(Dict{
			"name":     v.Name,
			"args":     nodeSlice(v.Args, includePosition),
			"children": nodeSlice(v.Children, includePosition),
		}, "CallInstantiation", v.Position, includePosition)
	case *ast.ForInstantiation:
		return withPos(Dict{
			"vars":     nodeSlice(v.Vars, includePosition),
			"children": nodeSlice(v.Children, includePosition),
		}, "ForInstantiation", v.Position, includePosition)
	case *ast.CForInstantiation:
		return withPos(Dict{
			"init":     nodeSlice(v.Init, includePosition),
			"cond":     ToDict(v.Cond, includePosition),
			"update":   nodeSlice(v.Update, includePosition),
			"children": nodeSlice(v.Children, includePosition),
		}, "CForInstantiation", v.Position, includePosition)
	case *ast.IntersectionForInstantiation:
		return withPos(Dict{
			"vars":     nodeSlice(v.Vars, includePosition),
			"children": nodeSlice(v.Children, includePosition),
		}, "IntersectionForInstantiation", v.Position, includePosition)
	case *ast.LetInstantiation:
		return withPos(Dict{
			"clauses":  nodeSlice(v.Clauses, includePosition),
			"children": nodeSlice(v.Children, includePosition),
		}, "LetInstantiation", v.Position, includePosition)
	case *ast.EchoInstantiation:
		return withPos(Dict{
			"args":     nodeSlice(v.Args, includePosition),
			"children": nodeSlice(v.Children, includePosition),
		}, "EchoInstantiation", v.Position, includePosition)
	case *ast.AssertInstantiation:
		return withPos(Dict{
			"args":     nodeSlice(v.Args, includePosition),
			"children": nodeSlice(v.Children, includePosition),
		}, "AssertInstantiation", v.Position, includePosition)
	case *ast.IfInstantiation:
		return withPos(Dict{
			"cond": ToDict(v.Cond, includePosition),
			"then": nodeSlice(v.Then, includePosition),
		}, "IfInstantiation", v.Position, includePosition)
	case *ast.IfElseInstantiation:
		return withPos(Dict{
			"cond": ToDict(v.Cond, includePosition),
			"then": nodeSlice(v.Then, includePosition),
			"else": nodeSlice(v.Else, includePosition),
		}, "IfElseInstantiation", v.Position, includePosition)
	case *ast.ModifierInstantiation:
		return withPos(Dict{
			"modifier": v.Modifier.String(),
			"body":     ToDict(v.Body, includePosition),
		}, "ModifierInstantiation", v.Position, includePosition)

	case *ast.Parameter:
		return withPos(Dict{"name": v.Name, "default": exprOrNil(v.Default, includePosition)}, "Parameter", v.Position, includePosition)
	case *ast.ModuleDecl:
		return withPos(Dict{
			"name":   v.Name,
			"params": nodeSlice(v.Params, includePosition),
			"body":   nodeSlice(v.Body, includePosition),
		}, "ModuleDecl", v.Position, includePosition)
	case *ast.FunctionDecl:
		return withPos(Dict{
			"name":   v.Name,
			"params": nodeSlice(v.Params, includePosition),
			"body":   ToDict(v.Body, includePosition),
		}, "FunctionDecl", v.Position, includePosition)
	case *ast.Assignment:
		return withPos(Dict{"name": v.Name, "value": ToDict(v.Value, includePosition)}, "Assignment", v.Position, includePosition)

	case *ast.UseStatement:
		return withPos(Dict{"path": v.Path}, "UseStatement", v.Position, includePosition)
	case *ast.IncludeStatement:
		return withPos(Dict{"path": v.Path}, "IncludeStatement", v.Position, includePosition)

	case *ast.PositionalArg:
		return withPos(Dict{"value": ToDict(v.Value, includePosition)}, "PositionalArg", v.Position, includePosition)
	case *ast.NamedArg:
		return withPos(Dict{"name": v.Name, "value": ToDict(v.Value, includePosition)}, "NamedArg", v.Position, includePosition)

	case *ast.CommentNode:
		return withPos(Dict{"text": v.Text, "block": v.Block}, "CommentNode", v.Position, includePosition)
	}
	panic("astdict: unhandled node type")
}
