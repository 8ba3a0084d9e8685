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

// Package oscaderrors defines the error taxonomy surfaced by this module:
// syntax errors carrying a position and the set of productions that could
// have matched there, plus the path-resolution and (de)serialization errors
// from spec §7.
package oscaderrors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oscadlang/go/token"
)

// SyntaxError reports a grammar violation at the furthest position the
// parser reached. Expected lists the production names that could have
// matched there; it is not guaranteed to be exhaustive, and it is empty for
// errors not tied to one expected production (lexical errors, trailing
// input, a C-style intersection_for clause).
type SyntaxError struct {
	Position token.Position
	Expected []string
	Message  string
}

func (e *SyntaxError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("%s: %s", e.Position, e.Message)
	}
	exp := append([]string(nil), e.Expected...)
	sort.Strings(exp)
	return fmt.Sprintf("%s: %s (expected %s)", e.Position, e.Message, strings.Join(exp, ", "))
}

// FileNotFoundError reports that a file path given to ParseFile does not
// exist or could not be stat'd.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// LibraryNotFoundError reports that the library resolver exhausted its
// search order without finding libfile.
type LibraryNotFoundError struct {
	Libfile string
}

func (e *LibraryNotFoundError) Error() string {
	return fmt.Sprintf("library not found: %s", e.Libfile)
}

// IOError wraps an underlying filesystem read failure.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error reading %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// DeserializationError reports that a dict tree could not be rebuilt into an
// AST: an unknown node tag, a missing required field, or a type mismatch.
type DeserializationError struct {
	Reason string
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("deserialization error: %s", e.Reason)
}

// IncludeError reports that expanding an `include <path>` directive failed,
// reported at the position of the including directive as required by
// spec §7 ("Include expansion failures ... are reported with the including
// file's position").
type IncludeError struct {
	Position token.Position
	Path     string
	Err      error
}

func (e *IncludeError) Error() string {
	return fmt.Sprintf("%s: cannot include %q: %v", e.Position, e.Path, e.Err)
}

func (e *IncludeError) Unwrap() error { return e.Err }
