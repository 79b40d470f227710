package tzconvert

import (
	"testing"
	"time"
)

func TestParseGMTOffset(t *testing.T) {
	tests := []struct {
		input       string
		want        GMTOffset
		wantOK      bool
		wantEtc     string
		wantSeconds int
	}{
		{"GMT+0100", GMTOffset{Sign: 1, Hours: 1}, true, "Etc/GMT+1", 3600},
		{"GMT-0800", GMTOffset{Sign: -1, Hours: 8}, true, "Etc/GMT-8", -8 * 3600},
		{"GMT+0530", GMTOffset{Sign: 1, Hours: 5, Minutes: 30}, true, "Etc/GMT+5", 5 * 3600},
		{"GMT-0930", GMTOffset{Sign: -1, Hours: 9, Minutes: 30}, true, "Etc/GMT-9", -9 * 3600},
		{"GMT+0000", GMTOffset{Sign: 1}, true, "Etc/GMT+0", 0},
		{"GMT+1400", GMTOffset{Sign: 1, Hours: 14}, true, "Etc/GMT+14", 14 * 3600},
		{"GMT+0030", GMTOffset{Sign: 1, Minutes: 30}, true, "Etc/GMT+0", 0},

		{"GMT+5", GMTOffset{}, false, "", 0},
		{"GMT0100", GMTOffset{}, false, "", 0},
		{"UTC+0100", GMTOffset{}, false, "", 0},
		{"gmt+0100", GMTOffset{}, false, "", 0},
		{"GMT+01:00", GMTOffset{}, false, "", 0},
		{" GMT+0100", GMTOffset{}, false, "", 0},
		{"GMT+0100 Berlin", GMTOffset{}, false, "", 0},
		{"", GMTOffset{}, false, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseGMTOffset(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("ParseGMTOffset(%q) = %+v, %v, want %+v, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
			if !ok {
				return
			}
			if name := got.EtcName(); name != tt.wantEtc {
				t.Errorf("EtcName() = %q, want %q", name, tt.wantEtc)
			}
			if secs := got.WholeHourSeconds(); secs != tt.wantSeconds {
				t.Errorf("WholeHourSeconds() = %d, want %d", secs, tt.wantSeconds)
			}
		})
	}
}

func TestGMTOffsetDropsMinutesDeterministically(t *testing.T) {
	// Repeated parses of the same input always drop the same minutes.
	for range 3 {
		o, ok := ParseGMTOffset("GMT+0545")
		if !ok {
			t.Fatal("ParseGMTOffset(GMT+0545) failed")
		}
		if o.WholeHourSeconds() != 5*3600 {
			t.Errorf("WholeHourSeconds() = %d, want %d", o.WholeHourSeconds(), 5*3600)
		}
		if o.Seconds() != 5*3600+45*60 {
			t.Errorf("Seconds() = %d, want %d", o.Seconds(), 5*3600+45*60)
		}
	}
}

func TestGMTOffsetValid(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"GMT+1400", true},
		{"GMT-1200", true},
		{"GMT+1500", false},
		{"GMT+9900", false},
		{"GMT+0160", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			o, ok := ParseGMTOffset(tt.input)
			if !ok {
				t.Fatalf("ParseGMTOffset(%q) failed", tt.input)
			}
			if o.Valid() != tt.want {
				t.Errorf("Valid() = %v, want %v", o.Valid(), tt.want)
			}
		})
	}
}

func TestFormatUTCOffset(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "UTC+00:00"},
		{3600, "UTC+01:00"},
		{-8 * 3600, "UTC-08:00"},
		{5*3600 + 30*60, "UTC+05:30"},
		{-(9*3600 + 30*60), "UTC-09:30"},
		{5*3600 + 45*60, "UTC+05:45"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatUTCOffset(tt.seconds); got != tt.want {
				t.Errorf("FormatUTCOffset(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestCurrentOffset(t *testing.T) {
	at := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)

	if got := CurrentOffset(nil, at); got != 0 {
		t.Errorf("CurrentOffset(nil) = %d, want 0", got)
	}
	fixed := time.FixedZone("Etc/GMT+5", 5*3600)
	if got := CurrentOffset(fixed, at); got != 5*3600 {
		t.Errorf("CurrentOffset(fixed) = %d, want %d", got, 5*3600)
	}
}
