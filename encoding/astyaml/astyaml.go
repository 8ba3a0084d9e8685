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

// Package astyaml is the YAML half of the to_dict/from_dict serialization
// pair from spec §6.1, composing internal/astdict with gopkg.in/yaml.v3.
package astyaml

import (
	"gopkg.in/yaml.v3"

	"github.com/oscadlang/go/ast"
	"github.com/oscadlang/go/internal/astdict"
	"github.com/oscadlang/go/oscaderrors"
)

// Marshal renders n as YAML.
func Marshal(n ast.Node, includePosition bool) ([]byte, error) {
	return yaml.Marshal(astdict.ToDict(n, includePosition))
}

// Unmarshal decodes YAML produced by Marshal back into an AST node.
//
// yaml.v3 decodes a generic mapping node into map[string]interface{}, the
// same representation encoding/json uses, so no yaml-specific conversion is
// needed before handing the result to astdict.FromDict.
func Unmarshal(data []byte) (ast.Node, error) {
	var d astdict.Dict
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return astdict.FromDict(d)
}

// UnmarshalFile is Unmarshal narrowed to *ast.File.
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
