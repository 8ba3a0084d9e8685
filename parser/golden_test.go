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

import (
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/txtar"

	"github.com/oscadlang/go/encoding/astjson"
	"github.com/oscadlang/go/sourcemap"
)

// goldenArchive pairs OpenSCAD snippets with their serialized AST, one txtar
// file holding several named cases the way cue/context_test.go's own inline
// txtar archives do.
const goldenArchive = `
-- assignment.scad --
x = 1;
-- assignment.json --
{
  "decls": [
    {
      "name": "x",
      "type": "Assignment",
      "value": {
        "literal": "1",
        "type": "NumberLit",
        "value": 1
      }
    }
  ],
  "type": "File"
}
-- call.scad --
cube(1);
-- call.json --
{
  "decls": [
    {
      "args": [
        {
          "type": "PositionalArg",
          "value": {
            "literal": "1",
            "type": "NumberLit",
            "value": 1
          }
        }
      ],
      "children": null,
      "name": "cube",
      "type": "CallInstantiation"
    }
  ],
  "type": "File"
}
`

func TestGoldenParseTree(t *testing.T) {
	ar := txtar.Parse([]byte(goldenArchive))
	files := make(map[string]string, len(ar.Files))
	for _, f := range ar.Files {
		files[f.Name] = string(f.Data)
	}

	for _, name := range []string{"assignment", "call"} {
		t.Run(name, func(t *testing.T) {
			src, ok := files[name+".scad"]
			if !ok {
				t.Fatalf("golden archive missing %s.scad", name)
			}
			want, ok := files[name+".json"]
			if !ok {
				t.Fatalf("golden archive missing %s.json", name)
			}

			sm := sourcemap.NewSingleOrigin(name+".scad", src)
			f, err := Parse(sm, Options{})
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			got, err := astjson.MarshalIndent(f, false, "", "  ")
			if err != nil {
				t.Fatalf("MarshalIndent: %v", err)
			}
			if string(got) != strings.TrimSuffix(want, "\n") {
				t.Errorf("golden mismatch for %s:\n got: %s\nwant: %s", name, got, strings.TrimSuffix(want, "\n"))
			}
		})
	}
}
