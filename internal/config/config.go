package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PerceptionConfig is the per-bot config delivered by the host as raw JSON.
// LLM fields drive the outgoing chat-completion call; the rest controls which
// perception phrases are attached to each request.
type PerceptionConfig struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
	Model   string `json:"model"`

	// Timezone accepts an IANA name ("Asia/Shanghai") or a fixed offset
	// ("+08:00", "UTC+8"). Empty means DefaultTimezone.
	Timezone string `json:"timezone"`

	// HolidayCountry selects the statutory-holiday calendar. Only "CN" has
	// special handling; anything else falls back to a weekend/weekday split.
	HolidayCountry string `json:"holiday_country"`

	EnableHoliday   *bool `json:"enable_holiday_perception"`
	EnablePlatform  *bool `json:"enable_platform_perception"`
	EnableLunar     *bool `json:"enable_lunar_perception"`
	EnableSolarTerm *bool `json:"enable_solar_term_perception"`
	EnableAlmanac   *bool `json:"enable_almanac_perception"`
}

const DefaultTimezone = "Asia/Shanghai"

const DefaultHolidayCountry = "CN"

func ParsePerceptionConfig(raw string) (PerceptionConfig, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" || raw == "{}" {
		return PerceptionConfig{}, nil
	}
	var cfg PerceptionConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return PerceptionConfig{}, fmt.Errorf("invalid config JSON: %w", err)
	}
	return cfg, nil
}

func (c PerceptionConfig) Country() string {
	country := strings.ToUpper(strings.TrimSpace(c.HolidayCountry))
	if country == "" {
		return DefaultHolidayCountry
	}
	return country
}

// BoolOrDefault resolves an optional toggle; absent means def.
func BoolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// TimeLocation resolves the configured timezone.
func (c PerceptionConfig) TimeLocation() (*time.Location, error) {
	return ResolveTimezoneLocation(c.Timezone)
}

// ResolveTimezoneLocation accepts IANA zone names and fixed offsets.
// Fixed offset forms: "+08:00", "-0700", "+8", "UTC+8", "GMT+08:00".
func ResolveTimezoneLocation(tz string) (*time.Location, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		tz = DefaultTimezone
	}

	if loc, ok, err := fixedOffsetLocation(tz); err != nil {
		return nil, err
	} else if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q (try \"Asia/Shanghai\" or \"+08:00\"): %w", tz, err)
	}
	return loc, nil
}

func fixedOffsetLocation(raw string) (*time.Location, bool, error) {
	s := strings.TrimSpace(raw)
	u := strings.ToUpper(s)
	if strings.HasPrefix(u, "UTC") || strings.HasPrefix(u, "GMT") {
		s = strings.TrimSpace(s[3:])
		if s == "" {
			return time.UTC, true, nil
		}
	}
	if s == "" || (s[0] != '+' && s[0] != '-') {
		return nil, false, nil
	}

	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	body := strings.TrimSpace(s[1:])

	hours, mins, err := parseOffsetBody(body)
	if err != nil {
		return nil, false, fmt.Errorf("invalid timezone offset %q", raw)
	}
	if hours > 14 || mins > 59 {
		return nil, false, fmt.Errorf("invalid timezone offset %q", raw)
	}

	name := fmt.Sprintf("UTC%+03d:%02d", sign*hours, mins)
	return time.FixedZone(name, sign*(hours*3600+mins*60)), true, nil
}

// parseOffsetBody accepts "H", "HH", "HHMM", "HMM" and "HH:MM".
func parseOffsetBody(s string) (hours, mins int, err error) {
	if s == "" {
		return 0, 0, fmt.Errorf("empty offset")
	}
	if h, m, ok := strings.Cut(s, ":"); ok {
		hours, err = parseDigits(h)
		if err != nil {
			return 0, 0, err
		}
		mins, err = parseDigits(m)
		return hours, mins, err
	}
	switch len(s) {
	case 1, 2:
		hours, err = parseDigits(s)
		return hours, 0, err
	case 3, 4:
		if len(s) == 3 {
			s = "0" + s
		}
		hours, err = parseDigits(s[:2])
		if err != nil {
			return 0, 0, err
		}
		mins, err = parseDigits(s[2:])
		return hours, mins, err
	default:
		return 0, 0, fmt.Errorf("bad offset length")
	}
}

func parseDigits(s string) (int, error) {
	if s == "" || len(s) > 2 {
		return 0, fmt.Errorf("invalid number")
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid number")
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}
