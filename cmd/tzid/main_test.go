package main

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "d", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "e", want: slog.LevelError},
		{in: "", wantErr: true},
		{in: "verbose", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(map[string]string{})
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.DefaultZone != "UTC" || cfg.CacheSize != 1024 || cfg.FetchAttempts != 3 || cfg.Strict {
		t.Errorf("loadConfig() defaults = %+v", cfg)
	}

	cfg, err = loadConfig(map[string]string{
		"TZID_DEFAULT_ZONE": "Europe/Paris",
		"TZID_STRICT":       "true",
		"TZID_CACHE_SIZE":   "0",
	})
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.DefaultZone != "Europe/Paris" || !cfg.Strict || cfg.CacheSize != 0 {
		t.Errorf("loadConfig() = %+v", cfg)
	}

	if _, err := loadConfig(map[string]string{"TZID_CACHE_SIZE": "-1"}); err == nil {
		t.Error("loadConfig() should reject a negative cache size")
	}
	if _, err := loadConfig(map[string]string{"TZID_LOG_LEVEL": "loud"}); !errors.Is(err, errBadLevel) {
		t.Errorf("loadConfig() with a bad TZID_LOG_LEVEL error = %v, want errBadLevel", err)
	}
	if _, err := loadConfig(map[string]string{"TZID_STRICT": "maybe"}); err == nil {
		t.Error("loadConfig() should reject a non-boolean TZID_STRICT")
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		environ  map[string]string
		wantCode int
		wantOut  []string
	}{
		{
			name:    "windows name",
			args:    []string{"W. Europe Standard Time"},
			wantOut: []string{"Europe/Berlin", "finder/tzmap"},
		},
		{
			name:    "fixed offset",
			args:    []string{"GMT+0500"},
			wantOut: []string{"Etc/GMT+5", "UTC+05:00"},
		},
		{
			name:    "unknown falls back to flag default",
			args:    []string{"--default-zone", "Asia/Tokyo", "Not A Zone"},
			wantOut: []string{"Asia/Tokyo", "default"},
		},
		{
			name:     "strict failure",
			args:     []string{"--strict", "Not A Zone"},
			wantCode: 1,
			wantOut:  []string{"FAIL", "no strategy matched"},
		},
		{
			name:     "strict from environment",
			args:     []string{"Not A Zone", "Europe/London"},
			environ:  map[string]string{"TZID_STRICT": "true"},
			wantCode: 1,
			wantOut:  []string{"FAIL", "Europe/London", "2 identifiers"},
		},
		{
			name:     "calendar audit",
			args:     []string{"--calendar", "../../pkg/icalzone/testdata/outlook.ics", "--strict"},
			wantCode: 1,
			wantOut:  []string{"Europe/Berlin", "America/New_York", "guesser/lic", "Customized Time Zone", "3 identifiers"},
		},
		{
			name:     "no identifiers",
			wantCode: 2,
		},
		{
			name:     "bad log level",
			args:     []string{"--log-level", "loud", "UTC"},
			wantCode: 2,
		},
		{
			name:     "bad log level from environment",
			args:     []string{"UTC"},
			environ:  map[string]string{"TZID_LOG_LEVEL": "loud"},
			wantCode: 2,
		},
		{
			name:     "bad default zone",
			args:     []string{"--default-zone", "Mars/Olympus", "UTC"},
			wantCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			environ := tt.environ
			if environ == nil {
				environ = map[string]string{}
			}
			var stdout, stderr bytes.Buffer
			code := run(tt.args, environ, &stdout, &stderr)
			if code != tt.wantCode {
				t.Fatalf("run(%v) = %d, want %d; stdout=%q stderr=%q", tt.args, code, tt.wantCode, stdout.String(), stderr.String())
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("run(%v) output missing %q:\n%s", tt.args, want, stdout.String())
				}
			}
		})
	}
}
