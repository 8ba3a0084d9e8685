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

import "github.com/oscadlang/go/ast"

// rule identifies a memoizable grammar rule. Only rules that are legitimately
// re-entered at the same input offset from more than one call site benefit
// from memoization in this grammar — most of OpenSCAD's grammar resolves
// with one token of lookahead and never needs it. Expression parsing is the
// one rule re-entered from many places (argument values, vector elements,
// index expressions, call arguments, comprehension sources) at arbitrary
// nesting, so it is the rule we memoize; see DESIGN.md for why the rest of
// the grammar does not need a memo table despite the packrat contract in
// spec §4.2.
type rule int

const (
	ruleExpr rule = iota
)

type memoKey struct {
	offset int
	rule   rule
}

type memoEntry struct {
	expr   ast.Expr
	endPos int
	err    error
}

// memoTable is owned by a single parser for a single parse; a fresh parser
// (and thus a fresh memoTable) is constructed per call, so there is never
// stale memoization carried between independent parses (spec §9).
type memoTable struct {
	entries map[memoKey]memoEntry
}

func newMemoTable() *memoTable {
	return &memoTable{entries: make(map[memoKey]memoEntry)}
}

func (m *memoTable) get(offset int, r rule) (memoEntry, bool) {
	e, ok := m.entries[memoKey{offset, r}]
	return e, ok
}

func (m *memoTable) put(offset int, r rule, e memoEntry) {
	m.entries[memoKey{offset, r}] = e
}
