package tzdata

import (
	"errors"
	"io/fs"
	"sync"
	"testing"
	"testing/fstest"
	"time"
	_ "time/tzdata"
)

func TestDefaultLoad(t *testing.T) {
	table, err := Default().Load()
	if err != nil {
		t.Fatalf("Default().Load() error = %v", err)
	}
	if table.Len() < 300 {
		t.Errorf("merged table has %d entries, expected at least 300", table.Len())
	}

	tests := []struct {
		name string
		want string
	}{
		{"W. Europe Standard Time", "Europe/Berlin"},
		{"Eastern", "America/New_York"},
		{"Sarajevo/Warsaw/Zagreb", "Europe/Sarajevo"},
		{"Casablanca, Monrovia", "Africa/Casablanca"},
		{"W-SU", "Europe/Moscow"},
		{"tzone://Microsoft/Utc", "UTC"},
		// exchange.json overrides windows.json
		{"Buenos Aires", "America/Argentina/Buenos_Aires"},
		// extended.json overrides windows.json
		{"Coordinated Universal Time", "UTC"},
		// runtime.json overrides lotus.json
		{"Greenwich", "UTC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Lookup(tt.name)
			if !ok || got != tt.want {
				t.Errorf("Lookup(%q) = %q, %v, want %q", tt.name, got, ok, tt.want)
			}
		})
	}
}

func TestDefaultTableZonesLoad(t *testing.T) {
	table, err := Default().Load()
	if err != nil {
		t.Fatalf("Default().Load() error = %v", err)
	}
	for _, key := range table.Keys() {
		zone, _ := table.Lookup(key)
		if _, err := time.LoadLocation(zone); err != nil {
			t.Errorf("table entry %q maps to %q which does not load: %v", key, zone, err)
		}
	}
}

func TestMicrosoftCDOZonesLoad(t *testing.T) {
	for id, zone := range MicrosoftCDO {
		if _, err := time.LoadLocation(zone); err != nil {
			t.Errorf("CDO id %d maps to %q which does not load: %v", id, zone, err)
		}
	}
	if _, err := time.LoadLocation(MicrosoftCDOSarajevo); err != nil {
		t.Errorf("LoadLocation(%q) error = %v", MicrosoftCDOSarajevo, err)
	}
}

func TestMergeOrderLastWriteWins(t *testing.T) {
	fsys := fstest.MapFS{
		"t/a.json": {Data: []byte(`{"Shared": "Europe/Paris", "OnlyA": "Asia/Tokyo"}`)},
		"t/b.json": {Data: []byte(`{"Shared": "Europe/Berlin"}`)},
		"t/c.json": {Data: []byte(`{"Shared": "Europe/Rome", "OnlyC": "UTC"}`)},
	}

	table, err := NewLoader(fsys, "t", []string{"a.json", "b.json", "c.json"}).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, _ := table.Lookup("Shared"); got != "Europe/Rome" {
		t.Errorf("Lookup(Shared) = %q, want Europe/Rome", got)
	}
	if got, _ := table.Lookup("OnlyA"); got != "Asia/Tokyo" {
		t.Errorf("Lookup(OnlyA) = %q, want Asia/Tokyo", got)
	}
	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}

	reversed, err := NewLoader(fsys, "t", []string{"c.json", "b.json", "a.json"}).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got, _ := reversed.Lookup("Shared"); got != "Europe/Paris" {
		t.Errorf("reversed Lookup(Shared) = %q, want Europe/Paris", got)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		fsys := fstest.MapFS{
			"t/a.json": {Data: []byte(`{"A": "UTC"}`)},
		}
		_, err := NewLoader(fsys, "t", []string{"a.json", "missing.json"}).Load()
		var loadErr *TableLoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("Load() error = %v, want *TableLoadError", err)
		}
		if loadErr.File != "missing.json" {
			t.Errorf("TableLoadError.File = %q, want missing.json", loadErr.File)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Load() error = %v, want it to wrap fs.ErrNotExist", err)
		}
	})

	t.Run("bad json", func(t *testing.T) {
		fsys := fstest.MapFS{
			"t/a.json": {Data: []byte(`{"A": `)},
		}
		table, err := NewLoader(fsys, "t", []string{"a.json"}).Load()
		var loadErr *TableLoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("Load() error = %v, want *TableLoadError", err)
		}
		if table != nil {
			t.Errorf("Load() returned a partial table with %d entries", table.Len())
		}
	})

	t.Run("failure is not retried", func(t *testing.T) {
		fsys := fstest.MapFS{}
		loader := NewLoader(fsys, "t", []string{"a.json"})
		_, first := loader.Load()
		fsys["t/a.json"] = &fstest.MapFile{Data: []byte(`{"A": "UTC"}`)}
		_, second := loader.Load()
		if first == nil || second == nil {
			t.Fatalf("Load() errors = %v, %v, want both non-nil", first, second)
		}
		if loader.Loads() != 1 {
			t.Errorf("Loads() = %d, want 1", loader.Loads())
		}
	})
}

func TestLoadOnceConcurrently(t *testing.T) {
	loader := NewLoader(embedded, "data", Files)

	var wg sync.WaitGroup
	tables := make([]*Table, 32)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			table, err := loader.Load()
			if err != nil {
				t.Errorf("Load() error = %v", err)
				return
			}
			tables[i] = table
		}(i)
	}
	wg.Wait()

	if loader.Loads() != 1 {
		t.Errorf("Loads() = %d after concurrent first use, want 1", loader.Loads())
	}
	for i := range tables {
		if tables[i] != tables[0] {
			t.Errorf("caller %d observed a different table instance", i)
		}
	}
}

func TestNilTable(t *testing.T) {
	var table *Table
	if _, ok := table.Lookup("x"); ok {
		t.Error("nil table Lookup returned ok")
	}
	if table.Len() != 0 || table.Keys() != nil {
		t.Error("nil table should be empty")
	}
}

func TestBackwardCompatible(t *testing.T) {
	for _, name := range []string{"US/Eastern", "Asia/Calcutta", "GB", "W-SU"} {
		if !IsBackwardCompatible(name) {
			t.Errorf("IsBackwardCompatible(%q) = false, want true", name)
		}
	}
	if IsBackwardCompatible("Europe/Berlin") {
		t.Error("IsBackwardCompatible(Europe/Berlin) = true, want false")
	}
	names := BackwardCompatibleNames()
	names[0] = "mutated"
	if BackwardCompatibleNames()[0] == "mutated" {
		t.Error("BackwardCompatibleNames returned the shared slice")
	}
}
