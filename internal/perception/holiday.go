package perception

import (
	"time"

	"mew/plugins/perception-agent/internal/holiday"
)

// holidayPhrase reports weekday, holiday classification and the time-of-day
// bucket, e.g. "周二, 法定节假日, 国庆节, 上午". Any calendar error degrades to
// the plain weekend/weekday split.
func (a *Annotator) holidayPhrase(now time.Time) string {
	parts := []string{weekdayNames[now.Weekday()]}

	classified := false
	if a.country == "CN" && a.holidayCal != nil {
		if class, name, err := a.holidayCal.Classify(now); err == nil {
			classified = true
			switch class {
			case holiday.ClassHoliday:
				parts = append(parts, "法定节假日")
				if name != "" {
					parts = append(parts, name)
				}
			case holiday.ClassMakeupWorkday:
				parts = append(parts, "调休工作日")
			case holiday.ClassWeekend:
				parts = append(parts, "周末")
			default:
				parts = append(parts, "工作日")
			}
		}
	}
	if !classified {
		if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
			parts = append(parts, "周末")
		} else {
			parts = append(parts, "工作日")
		}
	}

	parts = append(parts, timePeriod(now.Hour()))
	return joinPhrase(parts)
}

// timePeriod buckets the hour into five fixed periods.
func timePeriod(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "上午"
	case hour >= 12 && hour < 14:
		return "中午"
	case hour >= 14 && hour < 18:
		return "下午"
	case hour >= 18 && hour < 22:
		return "晚上"
	default:
		return "深夜"
	}
}
