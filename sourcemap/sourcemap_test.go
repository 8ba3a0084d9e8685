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

package sourcemap

import "testing"

func TestNewSingleOrigin(t *testing.T) {
	m := NewSingleOrigin("main.scad", "cube(1);")
	if got := m.GetCombinedString(); got != "cube(1);" {
		t.Fatalf("GetCombinedString() = %q", got)
	}
	pos, err := m.GetLocation(0)
	if err != nil {
		t.Fatal(err)
	}
	if pos.File != "main.scad" || pos.Line != 1 || pos.Column != 1 {
		t.Fatalf("GetLocation(0) = %+v", pos)
	}
}

func TestGetLocationLineCol(t *testing.T) {
	m := NewSingleOrigin("main.scad", "a\nbb\nccc")
	cases := []struct {
		offset int
		line   int
		col    int
	}{
		{0, 1, 1}, // 'a'
		{2, 2, 1}, // first 'b'
		{5, 3, 1}, // first 'c'
		{7, 3, 3}, // last 'c'
	}
	for _, c := range cases {
		pos, err := m.GetLocation(c.offset)
		if err != nil {
			t.Fatalf("GetLocation(%d): %v", c.offset, err)
		}
		if pos.Line != c.line || pos.Column != c.col {
			t.Errorf("GetLocation(%d) = line %d col %d, want line %d col %d", c.offset, pos.Line, pos.Column, c.line, c.col)
		}
	}
}

func TestGetLocationOutOfRange(t *testing.T) {
	m := NewSingleOrigin("main.scad", "abc")
	if _, err := m.GetLocation(100); err == nil {
		t.Fatal("expected an out-of-range error")
	}
}

func TestAddOriginAppend(t *testing.T) {
	m := &Map{}
	m.AddOrigin("a.scad", "AAA", nil)
	start := m.AddOrigin("b.scad", "BBB", nil)
	if start != 3 {
		t.Fatalf("second segment start = %d, want 3", start)
	}
	if got := m.GetCombinedString(); got != "AAABBB" {
		t.Fatalf("GetCombinedString() = %q", got)
	}
}

func TestAddOriginSplice(t *testing.T) {
	m := &Map{}
	m.AddOrigin("main.scad", "before-after", nil)
	at := 6 // splice right at the '-' boundary ("before" is 6 bytes)
	m.AddOrigin("child.scad", "MIDDLE", &at)
	if got := m.GetCombinedString(); got != "beforeMIDDLE-after" {
		t.Fatalf("GetCombinedString() = %q", got)
	}
}

func TestGetLocationAcrossSplice(t *testing.T) {
	m := &Map{}
	m.AddOrigin("main.scad", "one\ntwo-rest", nil)
	at := 8 // right after "one\ntwo-" (the tail "rest" is left unspliced)
	m.AddOrigin("child.scad", "X\nY", &at)

	// The byte right after the splice belongs to child.scad, line 1.
	pos, err := m.GetLocation(8)
	if err != nil {
		t.Fatal(err)
	}
	if pos.File != "child.scad" || pos.Line != 1 || pos.Column != 1 {
		t.Fatalf("GetLocation(8) = %+v, want child.scad:1:1", pos)
	}

	// The byte right after the splice, back in main.scad's "rest" tail,
	// must still report main.scad's own line 2 (not line 1, as it would if
	// the split segment's line count reset at the split point).
	afterSplice := 8 + len("X\nY")
	pos, err = m.GetLocation(afterSplice)
	if err != nil {
		t.Fatal(err)
	}
	if pos.File != "main.scad" || pos.Line != 2 {
		t.Fatalf("GetLocation(%d) = %+v, want main.scad line 2", afterSplice, pos)
	}
}

func TestBlank(t *testing.T) {
	m := NewSingleOrigin("main.scad", "include <x>\ncube(1);")
	if err := m.Blank(0, 11); err != nil {
		t.Fatal(err)
	}
	got := m.GetCombinedString()
	want := "           \ncube(1);"
	if got != want {
		t.Fatalf("GetCombinedString() = %q, want %q", got, want)
	}
}

func TestBlankPreservesNewlines(t *testing.T) {
	m := NewSingleOrigin("main.scad", "aa\r\nbb")
	if err := m.Blank(0, 6); err != nil {
		t.Fatal(err)
	}
	got := m.GetCombinedString()
	if got != "  \r\n  " {
		t.Fatalf("GetCombinedString() = %q, want %q", got, "  \r\n  ")
	}
}

func TestBlankOutOfRange(t *testing.T) {
	m := NewSingleOrigin("main.scad", "abc")
	if err := m.Blank(0, 100); err == nil {
		t.Fatal("expected an out-of-range error")
	}
}

func TestLen(t *testing.T) {
	m := NewSingleOrigin("main.scad", "12345")
	if m.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", m.Len())
	}
	at := 5
	m.AddOrigin("more.scad", "678", &at)
	if m.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", m.Len())
	}
}

func TestGetSegmentsIsACopy(t *testing.T) {
	m := NewSingleOrigin("main.scad", "abc")
	segs := m.GetSegments()
	segs[0].Content = "xyz"
	if m.GetCombinedString() != "abc" {
		t.Fatal("mutating the returned segment slice must not affect the Map")
	}
}
