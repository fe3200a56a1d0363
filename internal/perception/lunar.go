package perception

import (
	"strings"
	"time"
)

// lunarPhrase renders the lunisolar date with the sexagenary year label and
// zodiac animal, e.g. "农历甲辰龙年八月廿九" or "农历癸卯兔年闰二月十五".
// Conversion failures yield "".
func (a *Annotator) lunarPhrase(now time.Time) string {
	if a.lunar == nil {
		return ""
	}
	d, err := a.lunar.Convert(now.Year(), now.Month(), now.Day())
	if err != nil {
		return ""
	}
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 30 {
		return ""
	}

	stem := heavenlyStems[mod(d.Year-4, 10)]
	branch := earthlyBranches[mod(d.Year-4, 12)]
	zodiac := zodiacAnimals[mod(d.Year-4, 12)]

	var b strings.Builder
	b.WriteString("农历")
	b.WriteString(stem)
	b.WriteString(branch)
	b.WriteString(zodiac)
	b.WriteString("年")
	if d.Leap {
		b.WriteString("闰")
	}
	b.WriteString(lunarMonthNames[d.Month])
	b.WriteString(lunarDayNames[d.Day])
	return b.String()
}

func mod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}
