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

// Package astjson is the JSON half of the to_dict/from_dict serialization
// pair from spec §6.1: it composes internal/astdict's generic conversion
// with encoding/json, so it carries no AST-specific logic of its own.
package astjson

import (
	"encoding/json"

	"github.com/oscadlang/go/ast"
	"github.com/oscadlang/go/internal/astdict"
	"github.com/oscadlang/go/oscaderrors"
)

// Marshal renders n as JSON. Positions are included only when
// includePosition is set, matching to_dict's own flag.
func Marshal(n ast.Node, includePosition bool) ([]byte, error) {
	return json.Marshal(astdict.ToDict(n, includePosition))
}

// MarshalIndent is Marshal with indentation, for human-readable output.
func MarshalIndent(n ast.Node, includePosition bool, prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(astdict.ToDict(n, includePosition), prefix, indent)
}

// Unmarshal decodes JSON produced by Marshal (or any conforming dict tree)
// back into an AST node.
func Unmarshal(data []byte) (ast.Node, error) {
	var d astdict.Dict
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return astdict.FromDict(d)
}

// UnmarshalFile is Unmarshal narrowed to *ast.File, for the common case of
// round-tripping a whole parsed source.
func UnmarshalFile(data []byte) (*ast.File, error) {
	n, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	f, ok := n.(*ast.File)
	if !ok {
		return nil, &oscaderrors.DeserializationError{Reason: "root node is not a File"}
	}
	return f, nil
}
