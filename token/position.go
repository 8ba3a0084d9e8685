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

// Package token defines the lexical tokens of the OpenSCAD grammar and the
// Position type used to annotate every parse tree and AST node.
package token

import "fmt"

// Position describes a printable source location: an origin (usually a file
// path, but possibly a synthetic tag like "<string>"), a byte offset into
// the combined buffer the parser read, and the derived 1-based line and
// column within that origin.
//
// Line and column are computed against the segment of a sourcemap.Map that
// contains Offset; for single-origin input (parsing a bare string) Offset is
// simply the offset into that string.
type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

// IsValid reports whether pos carries real line information.
func (pos Position) IsValid() bool { return pos.Line > 0 }

// String renders pos the way compiler diagnostics usually do: file:line:col.
func (pos Position) String() string {
	s := pos.File
	if pos.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", pos.Line, pos.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// NoPos is the zero Position; it carries no location information.
var NoPos = Position{}
