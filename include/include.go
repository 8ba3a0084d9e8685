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

// Package include implements the include pre-processor (IPP): it scans raw
// OpenSCAD source for `include <path>` directives, resolves and reads each
// referenced file, and splices its content into a sourcemap.Map so that the
// parser sees one combined buffer with `include` directives replaced by
// whitespace. `use` directives are left untouched; they survive as
// UseStatement nodes produced later by the parser itself.
package include

import (
	"os"

	"github.com/oscadlang/go/oscaderrors"
	"github.com/oscadlang/go/resolve"
	"github.com/oscadlang/go/sourcemap"
)

// Expand takes mainContent, the already-read content of mainPath, and
// recursively splices every include directive it (transitively) contains into a single
// sourcemap.Map, which it returns. Cycles (a file including an ancestor of
// itself) are broken by treating the re-entrant include as already expanded
// (spec §4.4), not as an error.
func Expand(mainPath, mainContent string) (*sourcemap.Map, error) {
	sm := &sourcemap.Map{}
	e := &expander{sm: sm, inflight: map[string]bool{}}
	if err := e.expandInto(mainPath, mainContent, nil); err != nil {
		return nil, err
	}
	return sm, nil
}

type expander struct {
	sm       *sourcemap.Map
	inflight map[string]bool
}

// expandInto adds content as a new segment of e.sm — appended if insertAt
// is nil, spliced at *insertAt otherwise — then recursively expands every
// include directive content contains, in source order, updating the
// directives' own shifted positions as each splice pushes later text to the
// right.
func (e *expander) expandInto(originPath, content string, insertAt *int) error {
	if e.inflight[originPath] {
		return nil
	}
	e.inflight[originPath] = true
	defer delete(e.inflight, originPath)

	start := e.sm.AddOrigin(originPath, content, insertAt)
	dirs := scanDirectives(content)
	shift := 0
	for _, d := range dirs {
		directivePos, _ := e.sm.GetLocation(start + d.outerStart + shift)
		childPath, err := resolve.Find(originPath, d.path)
		if err != nil {
			return &oscaderrors.IncludeError{Position: directivePos, Path: d.path, Err: err}
		}
		raw, err := os.ReadFile(childPath)
		if err != nil {
			return &oscaderrors.IncludeError{Position: directivePos, Path: d.path, Err: &oscaderrors.IOError{Path: childPath, Err: err}}
		}

		insertPoint := start + d.outerStart + shift
		before := e.sm.Len()
		if err := e.expandInto(childPath, string(raw), &insertPoint); err != nil {
			return err
		}
		delta := e.sm.Len() - before

		blankStart := start + d.outerStart + shift + delta
		blankEnd := start + d.outerEnd + shift + delta
		if err := e.sm.Blank(blankStart, blankEnd); err != nil {
			return &oscaderrors.IncludeError{Position: directivePos, Path: d.path, Err: err}
		}
		shift += delta
	}
	return nil
}

// directive is one `include <path>` occurrence found by the lightweight
// pre-parse, with its raw byte range in the scanned content (not yet
// adjusted for any sibling directive's splice).
type directive struct {
	path       string
	outerStart int
	outerEnd   int
}

// scanDirectives finds every top-level `include <path>` occurrence in
// content, skipping over string and comment spans so that the word
// "include" appearing inside either is never mistaken for the directive.
// This is deliberately a restricted pattern match, not a full lex of the
// grammar (spec §4.4: "a lightweight pre-parse").
func scanDirectives(content string) []directive {
	var out []directive
	i, n := 0, len(content)
	for i < n {
		switch {
		case content[i] == '/' && i+1 < n && content[i+1] == '/':
			i += 2
			for i < n && content[i] != '\n' {
				i++
			}
		case content[i] == '/' && i+1 < n && content[i+1] == '*':
			i += 2
			for i+1 < n && !(content[i] == '*' && content[i+1] == '/') {
				i++
			}
			i += 2
		case content[i] == '"':
			i++
			for i < n && content[i] != '"' {
				if content[i] == '\\' && i+1 < n {
					i++
				}
				i++
			}
			i++
		case isWordStart(content, i, "include"):
			wordEnd := i + len("include")
			j := wordEnd
			for j < n && isSpace(content[j]) {
				j++
			}
			if j < n && content[j] == '<' {
				j++
				pathStart := j
				for j < n && content[j] != '>' && content[j] != '\n' {
					j++
				}
				if j < n && content[j] == '>' {
					out = append(out, directive{
						path:       content[pathStart:j],
						outerStart: i,
						outerEnd:   j + 1,
					})
					i = j + 1
					continue
				}
			}
			i = wordEnd
		default:
			i++
		}
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' ||
		'0' <= b && b <= '9'
}

// isWordStart reports whether content[i:] begins with word as a standalone
// token: not preceded or followed by another identifier character.
func isWordStart(content string, i int, word string) bool {
	if i+len(word) > len(content) || content[i:i+len(word)] != word {
		return false
	}
	if i > 0 && isIdentByte(content[i-1]) {
		return false
	}
	if i+len(word) < len(content) && isIdentByte(content[i+len(word)]) {
		return false
	}
	return true
}
