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
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/oscadlang/go/ast"
	"github.com/oscadlang/go/include"
	"github.com/oscadlang/go/oscaderrors"
	"github.com/oscadlang/go/parser"
	"github.com/oscadlang/go/resolve"
	"github.com/oscadlang/go/sourcemap"
)

// ParseString parses code as a standalone unit: no include expansion, no
// cache entry, and a synthetic origin name (so diagnostics still have a
// stable, unique File value to report against even though there is no real
// path on disk).
func ParseString(code string, opts Options) (*ast.File, error) {
	origin := "string:" + uuid.NewString()
	sm := sourcemap.NewSingleOrigin(origin, code)
	return parser.Parse(sm, parser.Options{IncludeComments: opts.IncludeComments})
}

// ParseFile parses the file at path, honoring opts.ProcessIncludes, and
// caches the result keyed by (canonical absolute path, opts). A cache hit
// requires the file's mtime to be unchanged since the cached parse.
func ParseFile(path string, opts Options) (*ast.File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &oscaderrors.FileNotFoundError{Path: path}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &oscaderrors.FileNotFoundError{Path: path}
	}
	key := cacheKey{path: abs, sig: opts.cacheKey()}
	mtime := info.ModTime()

	if file, ok := defaultCache.lookup(key, mtime); ok {
		return file, nil
	}

	content, err := readUTF8File(abs)
	if err != nil {
		return nil, &oscaderrors.IOError{Path: abs, Err: err}
	}
	file, err := parseContent(abs, content, opts)
	if err != nil {
		return nil, err
	}
	defaultCache.store(key, mtime, file)
	return file, nil
}

// ParseLibraryFile resolves libfile relative to currentFile using the same
// search order `use`/`include` themselves follow, then parses it (also
// going through the file cache), returning both the AST and the resolved
// absolute path.
func ParseLibraryFile(currentFile, libfile string, opts Options) (*ast.File, string, error) {
	resolved, err := resolve.Find(currentFile, libfile)
	if err != nil {
		return nil, "", err
	}
	file, err := ParseFile(resolved, opts)
	if err != nil {
		return nil, "", err
	}
	return file, resolved, nil
}

// FindLibraryFile resolves libfile without parsing it.
func FindLibraryFile(currentFile, libfile string) (string, error) {
	return resolve.Find(currentFile, libfile)
}

// ClearCache empties the file AST cache.
func ClearCache() {
	defaultCache.clear()
}

func parseContent(absPath, content string, opts Options) (*ast.File, error) {
	if !opts.ProcessIncludes {
		sm := sourcemap.NewSingleOrigin(absPath, content)
		return parser.Parse(sm, parser.Options{IncludeComments: opts.IncludeComments})
	}
	sm, err := include.Expand(absPath, content)
	if err != nil {
		return nil, err
	}
	return parser.Parse(sm, parser.Options{IncludeComments: opts.IncludeComments})
}

// readUTF8File reads path and strips a leading UTF-8/UTF-16 byte-order mark
// if present (spec §6.3), matching the teacher's own handling of
// input encodings for its own source files.
func readUTF8File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	t := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	r := transform.NewReader(f, t)
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// cacheKey identifies one (file, options) parse result in the AST cache.
type cacheKey struct {
	path string
	sig  optionsSignature
}

type cacheEntry struct {
	mtime time.Time
	file  *ast.File
}

// astCache is a mutex-protected mtime-keyed AST cache, grounded in the
// teacher's own modFileCache (cue/load/modfilecache.go): a single mutex
// guarding a plain map, checked and populated inline around the expensive
// operation. AST values are immutable after construction (ast package docs),
// so callers may use a returned *ast.File after the lock is released.
type astCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
}

var defaultCache = &astCache{entries: make(map[cacheKey]cacheEntry)}

func (c *astCache) lookup(key cacheKey, mtime time.Time) (*ast.File, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !e.mtime.Equal(mtime) {
		return nil, false
	}
	return e.file, true
}

func (c *astCache) store(key cacheKey, mtime time.Time, file *ast.File) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{mtime: mtime, file: file}
}

func (c *astCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}
