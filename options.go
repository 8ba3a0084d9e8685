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

// Package oscad is the file-level façade over this module's parser: it
// wires together the include pre-processor, the library resolver, and an
// mtime-keyed AST cache around the grammar in package parser. Downstream
// tools (linters, formatters, language servers) should generally depend on
// this package rather than parser directly.
package oscad

// Options controls how source is turned into an AST, mirroring spec §4.7's
// options table.
type Options struct {
	// IncludeComments makes the parser emit CommentNode siblings.
	IncludeComments bool
	// ProcessIncludes splices `include <path>` files into the source before
	// parsing (the default). When false, `include <path>` directives are
	// left as literal IncludeStatement nodes instead of being expanded.
	ProcessIncludes bool
}

// DefaultOptions matches OpenSCAD's own default behavior: comments dropped,
// includes expanded.
func DefaultOptions() Options {
	return Options{ProcessIncludes: true}
}

func (o Options) cacheKey() optionsSignature {
	return optionsSignature{includeComments: o.IncludeComments, processIncludes: o.ProcessIncludes}
}

type optionsSignature struct {
	includeComments bool
	processIncludes bool
}
