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

package astyaml

import (
	"strings"
	"testing"

	"github.com/oscadlang/go/ast"
	"github.com/oscadlang/go/oscaderrors"
	"github.com/oscadlang/go/parser"
	"github.com/oscadlang/go/sourcemap"
)

func parseTestFile(t *testing.T, src string) *ast.File {
	t.Helper()
	sm := sourcemap.NewSingleOrigin("test.scad", src)
	f, err := parser.Parse(sm, parser.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	f := parseTestFile(t, "function sq(x) = x * x;")
	data, err := Marshal(f, false)
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalFile(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(got.Decls))
	}
	fn, ok := got.Decls[0].(*ast.FunctionDecl)
	if !ok || fn.Name != "sq" {
		t.Fatalf("decl 0 = %#v, want function sq", got.Decls[0])
	}
}

func TestMarshalWithWholeNumberLiteral(t *testing.T) {
	// yaml.v3 decodes a whole-number scalar back as int, not float64;
	// FromDict must accept either.
	f := parseTestFile(t, "x = 10;")
	data, err := Marshal(f, false)
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalFile(data)
	if err != nil {
		t.Fatal(err)
	}
	a := got.Decls[0].(*ast.Assignment)
	n, ok := a.Value.(*ast.NumberLit)
	if !ok || n.Value != 10 {
		t.Fatalf("got %#v, want NumberLit{Value: 10}", a.Value)
	}
}

func TestMarshalIncludesPositionWhenRequested(t *testing.T) {
	f := parseTestFile(t, "x = 1;")
	data, err := Marshal(f, true)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "position:") {
		t.Errorf("expected a position field in %s", data)
	}
}

func TestUnmarshalFileRootTypeMismatch(t *testing.T) {
	data, err := Marshal(&ast.Ident{Name: "x"}, false)
	if err != nil {
		t.Fatal(err)
	}
	_, err = UnmarshalFile(data)
	if err == nil {
		t.Fatal("expected an error when the root node is not a File")
	}
	if _, ok := err.(*oscaderrors.DeserializationError); !ok {
		t.Errorf("got %T, want *oscaderrors.DeserializationError", err)
	}
}

func TestUnmarshalMalformedYAML(t *testing.T) {
	_, err := Unmarshal([]byte(": :\n\tbad"))
	if err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
