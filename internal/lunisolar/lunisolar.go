// Package lunisolar converts Gregorian civil dates to Chinese lunisolar dates.
// The conversion itself is delegated to the lunar-go library; this package only
// defines the strategy interface the annotator consumes, so other sources (or a
// no-op) can be plugged in.
package lunisolar

import (
	"fmt"
	"time"

	"github.com/6tail/lunar-go/calendar"
)

// Date is a lunisolar calendar date. Month is 1..12 regardless of leap status.
type Date struct {
	Year  int
	Month int
	Day   int
	Leap  bool
}

// Converter turns a Gregorian date into a lunisolar one.
type Converter interface {
	Convert(year int, month time.Month, day int) (Date, error)
}

type lunarGoConverter struct{}

// NewConverter returns the lunar-go backed converter.
func NewConverter() Converter {
	return lunarGoConverter{}
}

func (lunarGoConverter) Convert(year int, month time.Month, day int) (d Date, err error) {
	// lunar-go panics on dates outside its supported range.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lunisolar: convert %04d-%02d-%02d: %v", year, month, day, r)
		}
	}()

	lunar := calendar.NewSolarFromYmd(year, int(month), day).GetLunar()
	m := lunar.GetMonth()
	leap := false
	if m < 0 {
		m = -m
		leap = true
	}
	if m < 1 || m > 12 || lunar.GetDay() < 1 || lunar.GetDay() > 30 {
		return Date{}, fmt.Errorf("lunisolar: implausible result for %04d-%02d-%02d", year, month, day)
	}
	return Date{
		Year:  lunar.GetYear(),
		Month: m,
		Day:   lunar.GetDay(),
		Leap:  leap,
	}, nil
}
