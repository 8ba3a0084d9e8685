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

// Package ast declares the types used to represent the syntax tree of an
// OpenSCAD source file. The tree is a closed set of tagged variants: each
// family (expression, modular instantiation, list-comprehension fragment,
// top-level statement, argument) is represented as a small marker interface
// with a fixed list of implementing struct types, so that a type switch over
// any family is exhaustive by construction.
//
// Every node carries a single Position marking the start of its syntactic
// extent; there is no separate End position (spec explicitly drops
// byte-for-byte layout preservation, so only start offsets matter for
// diagnostics).
package ast

import "github.com/oscadlang/go/token"

// Node is implemented by every element of the tree.
type Node interface {
	Pos() token.Position
}

// Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Instantiation is implemented by all modular-instantiation nodes: the
// statement-level counterparts of expressions (calls with children, the
// control-flow forms, and the four modifier wrappers). Instantiations are
// also valid top-level and module-body statements, so every Instantiation
// also implements Stmt.
type Instantiation interface {
	Node
	Stmt
	instantiationNode()
}

// Stmt is implemented by every node that may appear directly in a File's or
// ModuleDecl's declaration list: assignments, declarations, instantiations,
// use/include directives, and (optionally) comments.
type Stmt interface {
	Node
	stmtNode()
}

// ListCompFragment is implemented by the non-terminal elements of a list
// comprehension (for, C-style for, if, if/else, let, each). The terminal
// element of a chain is a plain Expr (including, trivially, a vector
// literal) rather than a ListCompFragment — see ListComprehension.Clause.
type ListCompFragment interface {
	Node
	listCompFragmentNode()
}

// Argument is implemented by PositionalArg and NamedArg.
type Argument interface {
	Node
	argumentNode()
}

// Decl is implemented by the declaration forms: modules, functions, and
// plain assignments. (All three also implement Stmt.)
type Decl interface {
	Node
	Stmt
	declNode()
}

// File is the root of a parsed OpenSCAD source file (or string): an ordered
// sequence of top-level statements.
type File struct {
	Decls    []Stmt
	Position token.Position
}

func (f *File) Pos() token.Position { return f.Position }

// ---------------------------------------------------------------------------
// Literals

type NumberLit struct {
	Value    float64
	Literal  string
	Position token.Position
}

func (n *NumberLit) Pos() token.Position { return n.Position }
func (*NumberLit) exprNode()             {}

type StringLit struct {
	Value    string // decoded value, escapes resolved
	Literal  string // raw source text including quotes
	Position token.Position
}

func (n *StringLit) Pos() token.Position { return n.Position }
func (*StringLit) exprNode()             {}

type BoolLit struct {
	Value    bool
	Position token.Position
}

func (n *BoolLit) Pos() token.Position { return n.Position }
func (*BoolLit) exprNode()             {}

type UndefLit struct {
	Position token.Position
}

func (n *UndefLit) Pos() token.Position { return n.Position }
func (*UndefLit) exprNode()             {}

// BadExpr is a placeholder produced in place of an expression the parser
// could not recognize, so that callers building further tree structure
// around a failed parse always have a non-nil Expr to hang a Position off
// of. A BadExpr never appears in a File returned without error — Parse
// aborts and returns the SyntaxError instead of a partial tree (spec §7).
type BadExpr struct {
	Position token.Position
}

func (n *BadExpr) Pos() token.Position { return n.Position }
func (*BadExpr) exprNode()             {}

type Ident struct {
	Name     string
	Position token.Position
}

func (n *Ident) Pos() token.Position { return n.Position }
func (*Ident) exprNode()             {}

// RangeExpr is `[start:end]` or `[start:step:end]`. Step is nil when absent
// (the grammar distinguishes "absent" from a step of zero; [10:-1:0] and
// [0:0] are both accepted without normalization, per spec §9).
type RangeExpr struct {
	Start    Expr
	Step     Expr
	End      Expr
	Position token.Position
}

func (n *RangeExpr) Pos() token.Position { return n.Position }
func (*RangeExpr) exprNode()             {}

// ---------------------------------------------------------------------------
// Operators

type UnaryExpr struct {
	Op       token.Kind // SUB, NOT, or BITNOT
	X        Expr
	Position token.Position
}

func (n *UnaryExpr) Pos() token.Position { return n.Position }
func (*UnaryExpr) exprNode()             {}

// BinaryExpr folds a chain of same-precedence operators into a left-leaning
// tree (right-leaning only for POW, per the precedence table); see
// parseBinaryLevel and parseExponent in parser/expr.go.
type BinaryExpr struct {
	Op       token.Kind
	X, Y     Expr
	Position token.Position
}

func (n *BinaryExpr) Pos() token.Position { return n.Position }
func (*BinaryExpr) exprNode()             {}

// ---------------------------------------------------------------------------
// Compound expressions

type TernaryExpr struct {
	Cond     Expr
	X, Y     Expr
	Position token.Position
}

func (n *TernaryExpr) Pos() token.Position { return n.Position }
func (*TernaryExpr) exprNode()             {}

// LetClause is one `name = expr` binding inside a let(...) clause list,
// shared by LetExpr, ListCompLet, and LetInstantiation.
type LetClause struct {
	Name     string
	Value    Expr
	Position token.Position
}

func (n *LetClause) Pos() token.Position { return n.Position }

// LetExpr is the expression form `let(a=1, b=2) body`.
type LetExpr struct {
	Clauses  []*LetClause
	Body     Expr
	Position token.Position
}

func (n *LetExpr) Pos() token.Position { return n.Position }
func (*LetExpr) exprNode()             {}

// EchoExpr is the expression form `echo(...) body`, distinct from the
// modular-instantiation `echo(...);` statement (spec §9, open question).
type EchoExpr struct {
	Args     []Argument
	Body     Expr
	Position token.Position
}

func (n *EchoExpr) Pos() token.Position { return n.Position }
func (*EchoExpr) exprNode()             {}

// AssertExpr is the expression form `assert(...) body`.
type AssertExpr struct {
	Args     []Argument
	Body     Expr
	Position token.Position
}

func (n *AssertExpr) Pos() token.Position { return n.Position }
func (*AssertExpr) exprNode()             {}

// FunctionLit is an anonymous `function(params) expr`, distinct from a named
// FunctionDecl.
type FunctionLit struct {
	Params   []*Parameter
	Body     Expr
	Position token.Position
}

func (n *FunctionLit) Pos() token.Position { return n.Position }
func (*FunctionLit) exprNode()             {}

type CallExpr struct {
	Fun      Expr
	Args     []Argument
	Position token.Position
}

func (n *CallExpr) Pos() token.Position { return n.Position }
func (*CallExpr) exprNode()             {}

type IndexExpr struct {
	X        Expr
	Index    Expr
	Position token.Position
}

func (n *IndexExpr) Pos() token.Position { return n.Position }
func (*IndexExpr) exprNode()             {}

type MemberExpr struct {
	X        Expr
	Name     string
	Position token.Position
}

func (n *MemberExpr) Pos() token.Position { return n.Position }
func (*MemberExpr) exprNode()             {}

// VectorLit is a plain vector literal `[e1, e2, ...]` with no comprehension
// clauses at the top level.
type VectorLit struct {
	Elems    []Expr
	Position token.Position
}

func (n *VectorLit) Pos() token.Position { return n.Position }
func (*VectorLit) exprNode()             {}

// ListComprehension is a bracketed expression whose top-level content is a
// chain of comprehension fragments (for/let/if/each) terminated by a plain
// expression body.
type ListComprehension struct {
	Clause   ListCompFragment
	Position token.Position
}

func (n *ListComprehension) Pos() token.Position { return n.Position }
func (*ListComprehension) exprNode()              {}

// ---------------------------------------------------------------------------
// List-comprehension fragments
//
// Body is either another ListCompFragment (the chain continues) or a plain
// Expr (the chain terminates, including trivially in a vector literal).
// This mirrors the grammar: each fragment's tail position is itself a
// "vector element", which may recursively be another fragment or a bare
// expression.

// ForVarBinding is one `name = source` pair inside a for(...)/intersection_
// for(...) clause; a clause may bind several variables for cross iteration,
// e.g. `for (i = a, j = b)`.
type ForVarBinding struct {
	Name     string
	Source   Expr
	Position token.Position
}

func (n *ForVarBinding) Pos() token.Position { return n.Position }

type ListCompFor struct {
	Vars     []*ForVarBinding
	Body     Node
	Position token.Position
}

func (n *ListCompFor) Pos() token.Position { return n.Position }
func (*ListCompFor) listCompFragmentNode() {}

// ListCompCFor is the C-style `for (init; cond; update)` comprehension form.
type ListCompCFor struct {
	Init     []*Assignment
	Cond     Expr
	Update   []*Assignment
	Body     Node
	Position token.Position
}

func (n *ListCompCFor) Pos() token.Position { return n.Position }
func (*ListCompCFor) listCompFragmentNode() {}

type ListCompIf struct {
	Cond     Expr
	Body     Node
	Position token.Position
}

func (n *ListCompIf) Pos() token.Position { return n.Position }
func (*ListCompIf) listCompFragmentNode() {}

type ListCompIfElse struct {
	Cond     Expr
	Then     Node
	Else     Node
	Position token.Position
}

func (n *ListCompIfElse) Pos() token.Position { return n.Position }
func (*ListCompIfElse) listCompFragmentNode() {}

type ListCompLet struct {
	Clauses  []*LetClause
	Body     Node
	Position token.Position
}

func (n *ListCompLet) Pos() token.Position { return n.Position }
func (*ListCompLet) listCompFragmentNode() {}

// ListCompEach flattens the elements produced by Body (which may itself be
// another comprehension fragment, a nested list comprehension, a vector, or
// any other expression) into the enclosing vector.
type ListCompEach struct {
	Body     Node
	Position token.Position
}

func (n *ListCompEach) Pos() token.Position { return n.Position }
func (*ListCompEach) listCompFragmentNode() {}

// ---------------------------------------------------------------------------
// Modular instantiations

// CallInstantiation is a statement-level call to a module, with an optional
// block of children (`{ ... }`), a single child instantiation, or none
// (terminated by `;`).
type CallInstantiation struct {
	Name     string
	Args     []Argument
	Children []Instantiation
	Position token.Position
}

func (n *CallInstantiation) Pos() token.Position { return n.Position }
func (*CallInstantiation) instantiationNode()    {}
func (*CallInstantiation) stmtNode()             {}

type ForInstantiation struct {
	Vars     []*ForVarBinding
	Children []Instantiation
	Position token.Position
}

func (n *ForInstantiation) Pos() token.Position { return n.Position }
func (*ForInstantiation) instantiationNode()    {}
func (*ForInstantiation) stmtNode()             {}

type CForInstantiation struct {
	Init     []*Assignment
	Cond     Expr
	Update   []*Assignment
	Children []Instantiation
	Position token.Position
}

func (n *CForInstantiation) Pos() token.Position { return n.Position }
func (*CForInstantiation) instantiationNode()    {}
func (*CForInstantiation) stmtNode()             {}

type IntersectionForInstantiation struct {
	Vars     []*ForVarBinding
	Children []Instantiation
	Position token.Position
}

func (n *IntersectionForInstantiation) Pos() token.Position { return n.Position }
func (*IntersectionForInstantiation) instantiationNode()    {}
func (*IntersectionForInstantiation) stmtNode()             {}

type LetInstantiation struct {
	Clauses  []*LetClause
	Children []Instantiation
	Position token.Position
}

func (n *LetInstantiation) Pos() token.Position { return n.Position }
func (*LetInstantiation) instantiationNode()    {}
func (*LetInstantiation) stmtNode()             {}

// EchoInstantiation is the statement form `echo(...);`, distinct from
// EchoExpr (spec §9, open question).
type EchoInstantiation struct {
	Args     []Argument
	Children []Instantiation
	Position token.Position
}

func (n *EchoInstantiation) Pos() token.Position { return n.Position }
func (*EchoInstantiation) instantiationNode()    {}
func (*EchoInstantiation) stmtNode()             {}

type AssertInstantiation struct {
	Args     []Argument
	Children []Instantiation
	Position token.Position
}

func (n *AssertInstantiation) Pos() token.Position { return n.Position }
func (*AssertInstantiation) instantiationNode()    {}
func (*AssertInstantiation) stmtNode()             {}

type IfInstantiation struct {
	Cond     Expr
	Then     []Instantiation
	Position token.Position
}

func (n *IfInstantiation) Pos() token.Position { return n.Position }
func (*IfInstantiation) instantiationNode()    {}
func (*IfInstantiation) stmtNode()             {}

type IfElseInstantiation struct {
	Cond     Expr
	Then     []Instantiation
	Else     []Instantiation
	Position token.Position
}

func (n *IfElseInstantiation) Pos() token.Position { return n.Position }
func (*IfElseInstantiation) instantiationNode()    {}
func (*IfElseInstantiation) stmtNode()             {}

// ModifierInstantiation wraps exactly one modular instantiation in one of
// the four prefix modifiers. Modifier is one of token.NOT ('!'),
// token.HASH ('#'), token.REM ('%'), or token.MUL ('*'). Sibling modifiers
// nest outer-over-inner in textual order (`!!x` is a modifier wrapping a
// modifier).
type ModifierInstantiation struct {
	Modifier token.Kind
	Body     Instantiation
	Position token.Position
}

func (n *ModifierInstantiation) Pos() token.Position { return n.Position }
func (*ModifierInstantiation) instantiationNode()    {}
func (*ModifierInstantiation) stmtNode()             {}

// ---------------------------------------------------------------------------
// Declarations

type Parameter struct {
	Name     string
	Default  Expr // nil when absent
	Position token.Position
}

func (n *Parameter) Pos() token.Position { return n.Position }

// ModuleDecl's body is an ordered sequence of instantiations.
type ModuleDecl struct {
	Name     string
	Params   []*Parameter
	Body     []Instantiation
	Position token.Position
}

func (n *ModuleDecl) Pos() token.Position { return n.Position }
func (*ModuleDecl) declNode()             {}
func (*ModuleDecl) stmtNode()             {}

// FunctionDecl's body is a single expression.
type FunctionDecl struct {
	Name     string
	Params   []*Parameter
	Body     Expr
	Position token.Position
}

func (n *FunctionDecl) Pos() token.Position { return n.Position }
func (*FunctionDecl) declNode()             {}
func (*FunctionDecl) stmtNode()             {}

type Assignment struct {
	Name     string
	Value    Expr
	Position token.Position
}

func (n *Assignment) Pos() token.Position { return n.Position }
func (*Assignment) declNode()             {}
func (*Assignment) stmtNode()             {}

// ---------------------------------------------------------------------------
// Statements

// UseStatement survives include-expansion unconditionally: `use` never
// pulls in the referenced file's contents, only its (unevaluated here)
// module/function bindings.
type UseStatement struct {
	Path     string
	Position token.Position
}

func (n *UseStatement) Pos() token.Position { return n.Position }
func (*UseStatement) stmtNode()             {}

// IncludeStatement is only present in the AST when the source did not go
// through the include pre-processor (ParseOptions.ProcessIncludes is false,
// or the input is a bare string); otherwise the included file's contents are
// spliced in before parsing and no IncludeStatement node appears.
type IncludeStatement struct {
	Path     string
	Position token.Position
}

func (n *IncludeStatement) Pos() token.Position { return n.Position }
func (*IncludeStatement) stmtNode()             {}

// ---------------------------------------------------------------------------
// Arguments

type PositionalArg struct {
	Value    Expr
	Position token.Position
}

func (n *PositionalArg) Pos() token.Position { return n.Position }
func (*PositionalArg) argumentNode()         {}

type NamedArg struct {
	Name     string
	Value    Expr
	Position token.Position
}

func (n *NamedArg) Pos() token.Position { return n.Position }
func (*NamedArg) argumentNode()         {}

// ---------------------------------------------------------------------------
// Comments

// CommentNode is emitted as a sibling statement when ParseOptions.IncludeComments
// is set; it is never emitted otherwise.
type CommentNode struct {
	Text     string // comment text including delimiters
	Block    bool   // true for /* */, false for //
	Position token.Position
}

func (n *CommentNode) Pos() token.Position { return n.Position }
func (*CommentNode) stmtNode()             {}
func (*CommentNode) instantiationNode()    {} // a comment may appear wherever an instantiation may, e.g. inside a module body
