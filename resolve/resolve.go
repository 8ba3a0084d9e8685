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

// Package resolve implements the library search order OpenSCAD itself uses
// for `use`/`include` paths: an absolute path as given, then relative to the
// including file, then the OPENSCADPATH environment variable, then a
// platform-specific default install directory.
//
// This package has no third-party dependency to ground: the work is two
// stdlib calls (filepath.SplitList for OPENSCADPATH, runtime.GOOS to select
// the default directory) and an os.Stat loop, and no library in the
// retrieval pack does either more idiomatically than the standard library
// already does — see DESIGN.md.
package resolve

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/oscadlang/go/oscaderrors"
)

// Find searches for libfile using OpenSCAD's own lookup order:
//
//  1. If libfile is absolute and exists, return it.
//  2. If currentFile is non-empty, look next to it.
//  3. Each directory in OPENSCADPATH, in list order.
//  4. The platform default library directory.
//
// The first regular file that exists wins.
func Find(currentFile, libfile string) (string, error) {
	if filepath.IsAbs(libfile) {
		if fileExists(libfile) {
			return libfile, nil
		}
	}
	if currentFile != "" {
		candidate := filepath.Join(filepath.Dir(currentFile), libfile)
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	for _, dir := range searchPath() {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, libfile)
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	if dir := defaultLibraryDir(); dir != "" {
		candidate := filepath.Join(dir, libfile)
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", &oscaderrors.LibraryNotFoundError{Libfile: libfile}
}

// searchPath splits OPENSCADPATH on the platform's list separator, dropping
// empty entries.
func searchPath() []string {
	raw := os.Getenv("OPENSCADPATH")
	if raw == "" {
		return nil
	}
	var dirs []string
	for _, d := range filepath.SplitList(raw) {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// defaultLibraryDir returns OpenSCAD's own per-platform default library
// install location (spec §4.6): Windows and macOS share one layout, Linux
// (and everything else) uses the XDG-adjacent one OpenSCAD ships on Unix.
func defaultLibraryDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	switch runtime.GOOS {
	case "windows", "darwin":
		return filepath.Join(home, "Documents", "OpenSCAD", "libraries")
	default:
		return filepath.Join(home, ".local", "share", "OpenSCAD", "libraries")
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
