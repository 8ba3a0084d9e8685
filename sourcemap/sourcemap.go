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

// Package sourcemap stitches multiple source origins (a main file plus any
// number of spliced-in include files) into a single combined buffer while
// preserving the ability to map any offset in that buffer back to the
// (origin, line, column) it came from. This is what lets include expansion
// happen textually without losing diagnostic positions.
package sourcemap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oscadlang/go/token"
)

// Segment is a single contributor to the combined buffer: the byte range
// [CombinedStart, CombinedEnd) of the combined string that Content occupies.
// originLine/originCol are the 1-based line and column, within Origin's own
// (unsplit) content, of Content's first byte: a single include splice splits
// the parent segment in two, so a segment's Content is not always the whole
// of its Origin's text, and line/column still have to read as if Origin had
// never been split.
type Segment struct {
	Origin        string
	Content       string
	CombinedStart int
	CombinedEnd   int

	originLine int
	originCol  int
}

// Map is an ordered, non-overlapping sequence of Segments plus the derived
// combined string. The zero Map is empty and ready to use.
//
// Map is not safe for concurrent use; each parse builds and owns its own
// Map for the duration of that parse (see spec §5: source maps are strictly
// ordered by construction, not meant to be shared across parses).
type Map struct {
	segments []Segment
	text     string // cached combined string; invalidated by dirty
	dirty    bool
}

// NewSingleOrigin builds a Map containing exactly one segment, used for the
// common "parse a bare string" case where no includes are expanded.
func NewSingleOrigin(origin, content string) *Map {
	m := &Map{}
	m.AddOrigin(origin, content, nil)
	return m
}

// AddOrigin appends content as a new segment (insertAt == nil) or splices it
// at the given combined-buffer offset. When splicing, the gap between the
// end of the previous content and insertAt (if any) is padded with spaces so
// that combined offsets remain meaningful and every character still belongs
// to exactly one segment's CombinedStart..CombinedEnd range mapped through
// fixed-width padding segments.
//
// AddOrigin returns the CombinedStart at which origin was placed.
func (m *Map) AddOrigin(origin, content string, insertAt *int) int {
	at := m.combinedLen()
	if insertAt != nil {
		at = *insertAt
	}
	if at < m.combinedLen() {
		return m.spliceAt(origin, content, at)
	}
	if gap := at - m.combinedLen(); gap > 0 {
		m.appendPadding(gap)
	}
	start := m.combinedLen()
	m.segments = append(m.segments, Segment{
		Origin:        origin,
		Content:       content,
		CombinedStart: start,
		CombinedEnd:   start + len(content),
		originLine:    1,
		originCol:     1,
	})
	m.dirty = true
	return start
}

// spliceAt inserts a new segment at combined offset at, splitting whichever
// existing segment currently spans that offset into its before/after halves
// if at falls strictly inside one, and shifting every later segment's
// CombinedStart/CombinedEnd by len(content), per the SourceMap invariant in
// spec §3.1.
func (m *Map) spliceAt(origin, content string, at int) int {
	idx := sort.Search(len(m.segments), func(i int) bool {
		return m.segments[i].CombinedEnd > at
	})
	shift := len(content)
	newSeg := Segment{Origin: origin, Content: content, CombinedStart: at, CombinedEnd: at + shift}

	seg := m.segments[idx]
	localOff := at - seg.CombinedStart

	newSeg.originLine, newSeg.originCol = 1, 1

	replacement := make([]Segment, 0, 3)
	if localOff > 0 {
		replacement = append(replacement, Segment{
			Origin:        seg.Origin,
			Content:       seg.Content[:localOff],
			CombinedStart: seg.CombinedStart,
			CombinedEnd:   at,
			originLine:    seg.originLine,
			originCol:     seg.originCol,
		})
	}
	replacement = append(replacement, newSeg)
	if localOff < len(seg.Content) {
		afterLine, afterCol := advancePos(seg.originLine, seg.originCol, seg.Content[:localOff])
		replacement = append(replacement, Segment{
			Origin:        seg.Origin,
			Content:       seg.Content[localOff:],
			CombinedStart: at + shift,
			CombinedEnd:   seg.CombinedEnd + shift,
			originLine:    afterLine,
			originCol:     afterCol,
		})
	}

	merged := make([]Segment, 0, len(m.segments)+len(replacement))
	merged = append(merged, m.segments[:idx]...)
	merged = append(merged, replacement...)
	merged = append(merged, m.segments[idx+1:]...)
	for i := idx + len(replacement); i < len(merged); i++ {
		merged[i].CombinedStart += shift
		merged[i].CombinedEnd += shift
	}
	m.segments = merged
	m.dirty = true
	return at
}

func (m *Map) appendPadding(n int) {
	start := m.combinedLen()
	m.segments = append(m.segments, Segment{
		Origin:        "",
		Content:       strings.Repeat(" ", n),
		CombinedStart: start,
		CombinedEnd:   start + n,
	})
	m.dirty = true
}

func (m *Map) combinedLen() int {
	if len(m.segments) == 0 {
		return 0
	}
	return m.segments[len(m.segments)-1].CombinedEnd
}

// GetCombinedString returns the stitched buffer.
func (m *Map) GetCombinedString() string {
	if m.dirty || m.text == "" && m.combinedLen() > 0 {
		var b strings.Builder
		b.Grow(m.combinedLen())
		for _, s := range m.segments {
			b.WriteString(s.Content)
		}
		m.text = b.String()
		m.dirty = false
	}
	return m.text
}

// Len returns the current length of the combined buffer.
func (m *Map) Len() int { return m.combinedLen() }

// Blank overwrites the combined-offset range [start, end) with spaces. The
// range must fall entirely within one already-added segment (the include
// pre-processor uses this to erase a directive's own text after splicing
// the included file's content in next to it, so the directive parses away
// as whitespace — spec §4.4 step 3).
func (m *Map) Blank(start, end int) error {
	idx := sort.Search(len(m.segments), func(i int) bool {
		return m.segments[i].CombinedEnd > start
	})
	if idx >= len(m.segments) {
		return &ErrOutOfRange{Offset: start}
	}
	seg := &m.segments[idx]
	if start < seg.CombinedStart || end > seg.CombinedEnd {
		return &ErrOutOfRange{Offset: start}
	}
	lo, hi := start-seg.CombinedStart, end-seg.CombinedStart
	b := []byte(seg.Content)
	for i := lo; i < hi; i++ {
		if b[i] != '\n' && b[i] != '\r' {
			b[i] = ' '
		}
	}
	seg.Content = string(b)
	m.dirty = true
	return nil
}

// GetSegments returns a stable-ordered snapshot of the segments for
// debugging. Callers must not mutate the result.
func (m *Map) GetSegments() []Segment {
	out := make([]Segment, len(m.segments))
	copy(out, m.segments)
	return out
}

// ErrOutOfRange is returned by GetLocation when offset does not fall within
// any segment (e.g. it lands in a padding gap, or is beyond the combined
// length).
type ErrOutOfRange struct {
	Offset int
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("sourcemap: offset %d is out of range", e.Offset)
}

// GetLocation maps an offset in the combined string back to its origin, line
// and column within that origin's own content.
func (m *Map) GetLocation(offset int) (token.Position, error) {
	idx := sort.Search(len(m.segments), func(i int) bool {
		return m.segments[i].CombinedEnd > offset
	})
	if idx >= len(m.segments) || offset < m.segments[idx].CombinedStart {
		return token.Position{}, &ErrOutOfRange{Offset: offset}
	}
	seg := m.segments[idx]
	if seg.Origin == "" {
		return token.Position{}, &ErrOutOfRange{Offset: offset}
	}
	local := offset - seg.CombinedStart
	line, col := advancePos(seg.originLine, seg.originCol, seg.Content[:local])
	return token.Position{
		File:   seg.Origin,
		Offset: offset,
		Line:   line,
		Column: col,
	}, nil
}

// advancePos returns the 1-based line and column reached after consuming s,
// starting from (line, col). "\r\n" is treated the same as "\n": the '\r'
// simply advances the column, and the following '\n' resets to column 1 on
// the next line.
func advancePos(line, col int, s string) (int, int) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
