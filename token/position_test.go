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

package token

import "testing"

func TestPositionString(t *testing.T) {
	cases := []struct {
		pos  Position
		want string
	}{
		{Position{}, "-"},
		{Position{File: "a.scad"}, "a.scad"},
		{Position{File: "a.scad", Line: 3, Column: 5}, "a.scad:3:5"},
		{Position{Line: 3, Column: 5}, "3:5"},
	}
	for _, c := range cases {
		if got := c.pos.String(); got != c.want {
			t.Errorf("%+v.String() = %q, want %q", c.pos, got, c.want)
		}
	}
}

func TestPositionIsValid(t *testing.T) {
	if NoPos.IsValid() {
		t.Error("NoPos should not be valid")
	}
	if !(Position{Line: 1}).IsValid() {
		t.Error("a position with Line set should be valid")
	}
}
