package perception

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"mew/plugins/perception-agent/internal/config"
	"mew/plugins/perception-agent/internal/event"
	"mew/plugins/perception-agent/internal/holiday"
	"mew/plugins/perception-agent/internal/lunisolar"
	"mew/plugins/perception-agent/internal/provider"
)

func boolPtr(v bool) *bool { return &v }

func allDisabledConfig() config.PerceptionConfig {
	return config.PerceptionConfig{
		Timezone:        "UTC",
		EnableHoliday:   boolPtr(false),
		EnablePlatform:  boolPtr(false),
		EnableLunar:     boolPtr(false),
		EnableSolarTerm: boolPtr(false),
		EnableAlmanac:   boolPtr(false),
	}
}

var timestampRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

func TestBuildAnnotation_TimestampFormat(t *testing.T) {
	for _, tz := range []string{"UTC", "Asia/Shanghai", "America/New_York", "+08:00"} {
		cfg := allDisabledConfig()
		cfg.Timezone = tz
		a := New(cfg, Options{})
		text := a.BuildAnnotation(context.Background(), nil)
		ts := strings.TrimPrefix(text, "发送时间: ")
		if ts == text || !timestampRE.MatchString(ts) {
			t.Fatalf("tz=%s annotation=%q: bad timestamp", tz, text)
		}
	}
}

func TestOnLLMRequest_AllOptionalDisabled(t *testing.T) {
	at := time.Date(2024, time.October, 1, 8, 30, 0, 0, time.UTC)
	a := annotatorAt(t, allDisabledConfig(), Options{}, at)

	req := &provider.Request{Prompt: "hello"}
	a.OnLLMRequest(context.Background(), nil, req)

	want := "[发送时间: 2024-10-01 08:30:00]\nhello"
	if req.Prompt != want {
		t.Fatalf("prompt=%q want=%q", req.Prompt, want)
	}
}

func TestOnLLMRequest_PhraseOrderAndDelimiter(t *testing.T) {
	at := time.Date(2024, time.October, 1, 8, 30, 0, 0, time.UTC)
	cfg := config.PerceptionConfig{Timezone: "UTC", HolidayCountry: "CN"}
	a := annotatorAt(t, cfg, Options{
		HolidayCalendar: stubCalendar{class: holiday.ClassHoliday, name: "国庆节"},
		LunarConverter:  stubConverter{date: lunisolar.Date{Year: 2024, Month: 8, Day: 29}},
	}, at)

	msg := &fakeMessage{platform: "mew", kind: event.KindDirect}
	req := &provider.Request{Prompt: "hi"}
	a.OnLLMRequest(context.Background(), msg, req)

	if !strings.HasPrefix(req.Prompt, "[发送时间: 2024-10-01 08:30:00 | ") {
		t.Fatalf("prompt=%q", req.Prompt)
	}
	if !strings.HasSuffix(req.Prompt, "]\nhi") {
		t.Fatalf("prompt=%q", req.Prompt)
	}

	head := req.Prompt[:strings.Index(req.Prompt, "]\n")]
	idx := func(sub string) int { return strings.Index(head, sub) }
	order := []string{"发送时间", "法定节假日", "农历甲辰龙年八月廿九", "时值秋分", "宜: ", "平台: Mew"}
	last := -1
	for _, sub := range order {
		i := idx(sub)
		if i < 0 {
			t.Fatalf("prompt=%q missing %q", req.Prompt, sub)
		}
		if i < last {
			t.Fatalf("prompt=%q: %q out of order", req.Prompt, sub)
		}
		last = i
	}
}

func TestNew_InvalidTimezoneFallsBack(t *testing.T) {
	cfg := allDisabledConfig()
	cfg.Timezone = "Not/AZone"
	a := New(cfg, Options{})
	if a.Location().String() != config.DefaultTimezone {
		t.Fatalf("location=%s want default", a.Location())
	}
}
