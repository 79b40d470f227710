// Package tzdata holds the vendor timezone name tables used to translate
// non-standard calendar TZIDs into IANA zone names.
//
// The tables are JSON objects embedded in the binary. They are merged in a
// fixed order, and a later table overrides an earlier one when both define
// the same vendor name.
package tzdata

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sync"
	"sync/atomic"
)

//go:embed data/*.json
var embedded embed.FS

// Files lists the table files in merge order: Windows names, Lotus Notes
// names, Exchange gateway names, runtime workaround aliases and
// third-party integration aliases.
var Files = []string{
	"windows.json",
	"lotus.json",
	"exchange.json",
	"runtime.json",
	"extended.json",
}

// TableLoadError reports a table file that could not be read or decoded.
type TableLoadError struct {
	Err  error
	File string
}

func (e *TableLoadError) Error() string {
	return fmt.Sprintf("loading timezone table %s: %v", e.File, e.Err)
}

func (e *TableLoadError) Unwrap() error {
	return e.Err
}

// Table is the merged, read-only vendor name table.
type Table struct {
	names map[string]string
}

// Lookup returns the canonical zone name for a vendor name.
func (t *Table) Lookup(name string) (string, bool) {
	if t == nil {
		return "", false
	}
	zone, ok := t.names[name]
	return zone, ok
}

// Len returns the number of vendor names in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.names)
}

// Keys returns the vendor names in sorted order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	keys := make([]string, 0, len(t.names))
	for k := range t.names {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Loader loads and merges the table files exactly once.
//
// A failed load is remembered: every later call returns the same error
// and no partially merged table is ever published.
type Loader struct {
	fsys  fs.FS
	load  func() (*Table, error)
	dir   string
	files []string
	loads atomic.Int64
}

// NewLoader returns a loader reading files from dir inside fsys.
func NewLoader(fsys fs.FS, dir string, files []string) *Loader {
	l := &Loader{
		fsys:  fsys,
		dir:   dir,
		files: slices.Clone(files),
	}
	l.load = sync.OnceValues(l.merge)
	return l
}

// Load returns the merged table, loading it on first use.
func (l *Loader) Load() (*Table, error) {
	return l.load()
}

// Loads reports how many times the files were actually read.
func (l *Loader) Loads() int64 {
	return l.loads.Load()
}

func (l *Loader) merge() (*Table, error) {
	l.loads.Add(1)

	merged := make(map[string]string)
	for _, name := range l.files {
		data, err := fs.ReadFile(l.fsys, path.Join(l.dir, name))
		if err != nil {
			return nil, &TableLoadError{File: name, Err: err}
		}
		var entries map[string]string
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, &TableLoadError{File: name, Err: err}
		}
		for vendor, zone := range entries {
			merged[vendor] = zone
		}
	}
	return &Table{names: merged}, nil
}

var defaultLoader = sync.OnceValue(func() *Loader {
	return NewLoader(embedded, "data", Files)
})

// Default returns the process-wide loader over the embedded tables.
func Default() *Loader {
	return defaultLoader()
}
