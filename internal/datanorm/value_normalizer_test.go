package datanorm

import (
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"iso passes", "2024-03-15", "2024-03-15"},
		{"day first", "15/03/2024", "2024-03-15"},
		{"slash iso", "2024/03/15", "2024-03-15"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"trimmed", " 2024-03-15 ", "2024-03-15"},
		{"unrecognised passes through", "March 15, 2024", "March 15, 2024"},
		{"single digit day is not matched", "5/3/2024", "5/3/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.in); got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeDate_Idempotent(t *testing.T) {
	for _, in := range []string{"2024-03-15", "15/03/2024", "2024/03/15", "", "garbage"} {
		once := NormalizeDate(in)
		if twice := NormalizeDate(once); twice != once {
			t.Errorf("NormalizeDate not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeBoolean(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{" True ", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"Yes", true},
		{"0", false},
		{"", false},
		{"false", false},
		{"y", false},
		{"si", false},
	}

	for _, tt := range tests {
		if got := NormalizeBoolean(tt.in); got != tt.want {
			t.Errorf("NormalizeBoolean(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeNumber(t *testing.T) {
	absent := []string{
		"", "   ", "n/a", "N/A", "abc", "12,5",
		"NaN", "nan", "Inf", "+inf", "-infinity", "0x1p4", "0X10", "1_000", "1e400",
	}
	for _, in := range absent {
		if got := NormalizeNumber(in); got != nil {
			t.Errorf("NormalizeNumber(%q) = %v, want absent", in, *got)
		}
	}

	present := map[string]float64{
		"12.5":   12.5,
		" 3 ":    3,
		"-4.25":  -4.25,
		"0":      0,
		"1e3":    1000,
		"100000": 100000,
		"+7":     7,
		".5":     0.5,
		"2.":     2,
	}
	for in, want := range present {
		got := NormalizeNumber(in)
		if got == nil {
			t.Errorf("NormalizeNumber(%q) = absent, want %v", in, want)
			continue
		}
		if *got != want {
			t.Errorf("NormalizeNumber(%q) = %v, want %v", in, *got, want)
		}
	}
}

func TestParseClock(t *testing.T) {
	d, ok := ParseClock("09:30")
	if !ok || d != 9*time.Hour+30*time.Minute {
		t.Errorf("ParseClock(09:30) = %v, %v", d, ok)
	}
	d, ok = ParseClock("17:00:30")
	if !ok || d != 17*time.Hour+30*time.Second {
		t.Errorf("ParseClock(17:00:30) = %v, %v", d, ok)
	}
	if _, ok := ParseClock("noon"); ok {
		t.Error("ParseClock(noon) should fail")
	}
}

func TestHoursBetween(t *testing.T) {
	h := hoursBetween("09:00", "12:30")
	if h == nil || *h != 3.5 {
		t.Fatalf("hoursBetween = %v, want 3.5", h)
	}
	if hoursBetween("12:00", "09:00") != nil {
		t.Error("reversed range should be absent")
	}
	if hoursBetween("", "09:00") != nil {
		t.Error("missing start should be absent")
	}
}
