package config

import (
	"testing"
	"time"
)

func TestParsePerceptionConfig_Empty(t *testing.T) {
	for _, raw := range []string{"", "  ", "null", "{}"} {
		cfg, err := ParsePerceptionConfig(raw)
		if err != nil {
			t.Fatalf("raw=%q: unexpected error: %v", raw, err)
		}
		if cfg != (PerceptionConfig{}) {
			t.Fatalf("raw=%q: expected zero config, got %+v", raw, cfg)
		}
	}
}

func TestParsePerceptionConfig_Invalid(t *testing.T) {
	if _, err := ParsePerceptionConfig("{not json"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParsePerceptionConfig_Toggles(t *testing.T) {
	cfg, err := ParsePerceptionConfig(`{"enable_holiday_perception":false,"timezone":"UTC","holiday_country":"cn"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if BoolOrDefault(cfg.EnableHoliday, true) {
		t.Fatalf("explicit false toggle ignored")
	}
	if !BoolOrDefault(cfg.EnableLunar, true) {
		t.Fatalf("absent toggle should use default")
	}
	if cfg.Country() != "CN" {
		t.Fatalf("country not normalized: %q", cfg.Country())
	}
}

func TestResolveTimezoneLocation_IANA(t *testing.T) {
	loc, err := ResolveTimezoneLocation("Asia/Shanghai")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.String() != "Asia/Shanghai" {
		t.Fatalf("unexpected location: %s", loc)
	}
}

func TestResolveTimezoneLocation_Default(t *testing.T) {
	loc, err := ResolveTimezoneLocation("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.String() != DefaultTimezone {
		t.Fatalf("unexpected default location: %s", loc)
	}
}

func TestResolveTimezoneLocation_FixedOffsets(t *testing.T) {
	cases := []struct {
		in     string
		offset int // seconds east of UTC
	}{
		{"+08:00", 8 * 3600},
		{"+8", 8 * 3600},
		{"+0800", 8 * 3600},
		{"-07:00", -7 * 3600},
		{"UTC+8", 8 * 3600},
		{"GMT+08:00", 8 * 3600},
		{"UTC", 0},
	}
	for _, tc := range cases {
		loc, err := ResolveTimezoneLocation(tc.in)
		if err != nil {
			t.Fatalf("in=%q: unexpected error: %v", tc.in, err)
		}
		_, off := time.Date(2024, 6, 1, 0, 0, 0, 0, loc).Zone()
		if off != tc.offset {
			t.Fatalf("in=%q: offset=%d want=%d", tc.in, off, tc.offset)
		}
	}
}

func TestResolveTimezoneLocation_Invalid(t *testing.T) {
	for _, in := range []string{"Not/AZone", "+15:00", "+08:99", "+123456"} {
		if _, err := ResolveTimezoneLocation(in); err == nil {
			t.Fatalf("in=%q: expected error", in)
		}
	}
}
