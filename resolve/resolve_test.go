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

package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oscadlang/go/oscaderrors"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("// lib\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindAbsolute(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "lib.scad")
	touch(t, abs)

	got, err := Find("", abs)
	if err != nil {
		t.Fatal(err)
	}
	if got != abs {
		t.Errorf("got %q, want %q", got, abs)
	}
}

func TestFindRelativeToCurrentFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "helpers.scad"))
	current := filepath.Join(dir, "main.scad")

	got, err := Find(current, "helpers.scad")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "helpers.scad")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFindViaOpenscadPath(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	touch(t, filepath.Join(dir2, "shapes.scad"))

	t.Setenv("OPENSCADPATH", dir1+string(os.PathListSeparator)+dir2)

	got, err := Find("", "shapes.scad")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir2, "shapes.scad")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFindPrefersCurrentFileOverOpenscadPath(t *testing.T) {
	dir := t.TempDir()
	envDir := t.TempDir()
	touch(t, filepath.Join(dir, "shapes.scad"))
	touch(t, filepath.Join(envDir, "shapes.scad"))
	t.Setenv("OPENSCADPATH", envDir)

	current := filepath.Join(dir, "main.scad")
	got, err := Find(current, "shapes.scad")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "shapes.scad")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFindNotFound(t *testing.T) {
	t.Setenv("OPENSCADPATH", "")
	t.Setenv("HOME", t.TempDir())
	_, err := Find("", "doesnotexist.scad")
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*oscaderrors.LibraryNotFoundError); !ok {
		t.Errorf("got %T, want *oscaderrors.LibraryNotFoundError", err)
	}
}

func TestFindIgnoresEmptyOpenscadPathEntries(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.scad"))
	t.Setenv("OPENSCADPATH", string(os.PathListSeparator)+dir+string(os.PathListSeparator))

	got, err := Find("", "a.scad")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "a.scad")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
