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

package oscad

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/oscadlang/go/ast"
)

func TestParseStringBasic(t *testing.T) {
	f, err := ParseString("x = 1;", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(f.Decls))
	}
	if f.Position.File == "" || !strings.HasPrefix(f.Position.File, "string:") {
		t.Errorf("origin = %q, want a string: prefix", f.Position.File)
	}
}

func TestParseStringSyntheticOriginsAreUnique(t *testing.T) {
	a, err := ParseString("x = 1;", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseString("x = 1;", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if a.Position.File == b.Position.File {
		t.Errorf("two ParseString calls should not share a synthetic origin: %q", a.Position.File)
	}
}

func TestParseFileAndCache(t *testing.T) {
	ClearCache()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.scad")
	if err := os.WriteFile(path, []byte("cube(1);"), 0o644); err != nil {
		t.Fatal(err)
	}

	f1, err := ParseFile(path, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	f2, err := ParseFile(path, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if f1 != f2 {
		t.Error("a second ParseFile with an unchanged mtime should return the cached *ast.File")
	}
}

func TestParseFileCacheInvalidatedByMtime(t *testing.T) {
	ClearCache()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.scad")
	if err := os.WriteFile(path, []byte("cube(1);"), 0o644); err != nil {
		t.Fatal(err)
	}

	f1, err := ParseFile(path, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	later := time.Now().Add(2 * time.Second)
	if err := os.WriteFile(path, []byte("sphere(1);"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}

	f2, err := ParseFile(path, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if f1 == f2 {
		t.Fatal("a changed mtime must invalidate the cache entry")
	}
	call, ok := f2.Decls[0].(*ast.CallInstantiation)
	if !ok || call.Name != "sphere" {
		t.Fatalf("got %#v, want a refreshed sphere() parse", f2.Decls[0])
	}
}

func TestParseFileMissing(t *testing.T) {
	ClearCache()
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.scad"), DefaultOptions())
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestParseFileDifferentOptionsDoNotShareCacheEntry(t *testing.T) {
	ClearCache()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.scad")
	if err := os.WriteFile(path, []byte("// a comment\ncube(1);"), 0o644); err != nil {
		t.Fatal(err)
	}

	plain, err := ParseFile(path, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	withComments := DefaultOptions()
	withComments.IncludeComments = true
	commented, err := ParseFile(path, withComments)
	if err != nil {
		t.Fatal(err)
	}
	if len(plain.Decls) == len(commented.Decls) {
		t.Fatalf("expected different decl counts for different options, got %d and %d", len(plain.Decls), len(commented.Decls))
	}
}

func TestParseFileProcessIncludesOff(t *testing.T) {
	ClearCache()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "child.scad"), []byte("sphere(1);"), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "main.scad")
	if err := os.WriteFile(path, []byte("include <child.scad>\ncube(1);"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := ParseFile(path, Options{ProcessIncludes: false})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.Decls[0].(*ast.IncludeStatement); !ok {
		t.Fatalf("decl 0 is %T, want *ast.IncludeStatement when ProcessIncludes is off", f.Decls[0])
	}
}

func TestParseLibraryFile(t *testing.T) {
	ClearCache()
	dir := t.TempDir()
	libPath := filepath.Join(dir, "shapes.scad")
	if err := os.WriteFile(libPath, []byte("module box() cube(1);"), 0o644); err != nil {
		t.Fatal(err)
	}
	current := filepath.Join(dir, "main.scad")

	f, resolved, err := ParseLibraryFile(current, "shapes.scad", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if resolved != libPath {
		t.Errorf("resolved = %q, want %q", resolved, libPath)
	}
	if len(f.Decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(f.Decls))
	}
}

func TestFindLibraryFile(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "shapes.scad")
	if err := os.WriteFile(libPath, []byte("x=1;"), 0o644); err != nil {
		t.Fatal(err)
	}
	current := filepath.Join(dir, "main.scad")

	got, err := FindLibraryFile(current, "shapes.scad")
	if err != nil {
		t.Fatal(err)
	}
	if got != libPath {
		t.Errorf("got %q, want %q", got, libPath)
	}
}

func TestReadUTF8FileStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bom.scad")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("x = 1;")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := readUTF8File(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "x = 1;" {
		t.Fatalf("got %q, want BOM stripped", got)
	}
}
