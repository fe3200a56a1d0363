// Package perception builds the contextual annotation that is prepended to
// every outgoing LLM request: wall-clock time, weekday/holiday status, the
// lunisolar date, the active solar term, a novelty almanac line and
// platform/chat metadata.
package perception

import (
	"context"
	"log"
	"strings"
	"time"

	"mew/plugins/perception-agent/internal/config"
	"mew/plugins/perception-agent/internal/event"
	"mew/plugins/perception-agent/internal/holiday"
	"mew/plugins/perception-agent/internal/lunisolar"
	"mew/plugins/perception-agent/internal/provider"
)

const timestampLayout = "2006-01-02 15:04:05"

// HolidayCalendar classifies a date against a statutory holiday arrangement.
type HolidayCalendar interface {
	Classify(t time.Time) (holiday.Class, string, error)
}

// Options carries the pluggable data sources. Nil fields disable the matching
// phrase regardless of the config toggle.
type Options struct {
	// HolidayCalendar backs the CN statutory classification; nil keeps the
	// plain weekend/weekday fallback.
	HolidayCalendar HolidayCalendar
	// LunarConverter backs the lunisolar phrase; nil disables it.
	LunarConverter lunisolar.Converter
	// Now overrides the clock, for tests.
	Now func() time.Time
	// LogPrefix follows the runner's logging convention.
	LogPrefix string
}

// Annotator computes the perception annotation. Immutable after New.
type Annotator struct {
	loc       *time.Location
	now       func() time.Time
	logPrefix string

	country    string
	holidayCal HolidayCalendar
	lunar      lunisolar.Converter

	enableHoliday   bool
	enablePlatform  bool
	enableLunar     bool
	enableSolarTerm bool
	enableAlmanac   bool
}

// New builds an Annotator from the per-bot config. An invalid timezone is
// logged and replaced with the default zone rather than failing the load.
func New(cfg config.PerceptionConfig, opts Options) *Annotator {
	logPrefix := opts.LogPrefix
	if logPrefix == "" {
		logPrefix = "[perception]"
	}

	loc, err := cfg.TimeLocation()
	if err != nil {
		log.Printf("%s invalid timezone %q: %v (falling back to %s)", logPrefix, cfg.Timezone, err, config.DefaultTimezone)
		loc, err = config.ResolveTimezoneLocation(config.DefaultTimezone)
		if err != nil {
			loc = time.FixedZone("UTC+08:00", 8*3600)
		}
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Annotator{
		loc:             loc,
		now:             now,
		logPrefix:       logPrefix,
		country:         cfg.Country(),
		holidayCal:      opts.HolidayCalendar,
		lunar:           opts.LunarConverter,
		enableHoliday:   config.BoolOrDefault(cfg.EnableHoliday, true),
		enablePlatform:  config.BoolOrDefault(cfg.EnablePlatform, true),
		enableLunar:     config.BoolOrDefault(cfg.EnableLunar, true),
		enableSolarTerm: config.BoolOrDefault(cfg.EnableSolarTerm, true),
		enableAlmanac:   config.BoolOrDefault(cfg.EnableAlmanac, true),
	}
}

// Location returns the resolved time zone.
func (a *Annotator) Location() *time.Location {
	return a.loc
}

// BuildAnnotation computes the joined annotation text, without brackets.
// Phrase order is fixed: time, holiday, lunar, solar term, almanac, platform.
func (a *Annotator) BuildAnnotation(ctx context.Context, msg event.Message) string {
	now := a.now().In(a.loc)

	parts := []string{"发送时间: " + now.Format(timestampLayout)}
	if a.enableHoliday {
		if p := a.holidayPhrase(now); p != "" {
			parts = append(parts, p)
		}
	}
	if a.enableLunar {
		if p := a.lunarPhrase(now); p != "" {
			parts = append(parts, p)
		}
	}
	if a.enableSolarTerm {
		if p := solarTermPhrase(now); p != "" {
			parts = append(parts, p)
		}
	}
	if a.enableAlmanac {
		if p := almanacPhrase(now); p != "" {
			parts = append(parts, p)
		}
	}
	if a.enablePlatform {
		if p := a.platformPhrase(ctx, msg); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}

// OnLLMRequest is the pre-request hook: it rewrites req.Prompt in place as
// "[<annotation>]\n<original prompt>". It never fails the request.
func (a *Annotator) OnLLMRequest(ctx context.Context, msg event.Message, req *provider.Request) {
	if req == nil {
		return
	}
	text := a.BuildAnnotation(ctx, msg)
	req.Prompt = "[" + text + "]\n" + req.Prompt
	log.Printf("%s perception attached: %s", a.logPrefix, text)
}
