package perception

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"mew/plugins/perception-agent/internal/config"
	"mew/plugins/perception-agent/internal/holiday"
)

type stubCalendar struct {
	class holiday.Class
	name  string
	err   error
}

func (s stubCalendar) Classify(time.Time) (holiday.Class, string, error) {
	return s.class, s.name, s.err
}

func annotatorAt(t *testing.T, cfg config.PerceptionConfig, opts Options, at time.Time) *Annotator {
	t.Helper()
	opts.Now = func() time.Time { return at }
	return New(cfg, opts)
}

func TestTimePeriod_Buckets(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{5, "上午"}, {11, "上午"},
		{12, "中午"}, {13, "中午"},
		{14, "下午"}, {17, "下午"},
		{18, "晚上"}, {21, "晚上"},
		{22, "深夜"}, {23, "深夜"}, {0, "深夜"}, {4, "深夜"},
	}
	for _, tc := range cases {
		if got := timePeriod(tc.hour); got != tc.want {
			t.Fatalf("timePeriod(%d)=%q want=%q", tc.hour, got, tc.want)
		}
	}
}

func TestHolidayPhrase_WeekdayLabels(t *testing.T) {
	a := New(config.PerceptionConfig{Timezone: "UTC"}, Options{})
	// 2024-03-04 is a Monday; walk the whole week.
	for i := 0; i < 7; i++ {
		day := time.Date(2024, time.March, 4+i, 10, 0, 0, 0, time.UTC)
		phrase := a.holidayPhrase(day)
		want := weekdayNames[day.Weekday()]
		if !strings.HasPrefix(phrase, want) {
			t.Fatalf("day=%s phrase=%q want prefix %q", day.Format("2006-01-02"), phrase, want)
		}
	}
}

func TestHolidayPhrase_StatutoryHoliday(t *testing.T) {
	a := New(config.PerceptionConfig{Timezone: "UTC", HolidayCountry: "CN"}, Options{
		HolidayCalendar: stubCalendar{class: holiday.ClassHoliday, name: "国庆节"},
	})
	phrase := a.holidayPhrase(time.Date(2024, time.October, 1, 9, 0, 0, 0, time.UTC))
	if !strings.Contains(phrase, "法定节假日") || !strings.Contains(phrase, "国庆节") {
		t.Fatalf("phrase=%q want statutory marker and holiday name", phrase)
	}
}

func TestHolidayPhrase_MakeupWorkday(t *testing.T) {
	a := New(config.PerceptionConfig{Timezone: "UTC", HolidayCountry: "CN"}, Options{
		HolidayCalendar: stubCalendar{class: holiday.ClassMakeupWorkday, name: "春节"},
	})
	phrase := a.holidayPhrase(time.Date(2024, time.February, 4, 9, 0, 0, 0, time.UTC))
	if !strings.Contains(phrase, "调休工作日") {
		t.Fatalf("phrase=%q want 调休工作日", phrase)
	}
}

func TestHolidayPhrase_CalendarErrorFallsBack(t *testing.T) {
	a := New(config.PerceptionConfig{Timezone: "UTC", HolidayCountry: "CN"}, Options{
		HolidayCalendar: stubCalendar{err: fmt.Errorf("year not covered")},
	})

	sat := time.Date(2024, time.March, 9, 9, 0, 0, 0, time.UTC)
	if phrase := a.holidayPhrase(sat); !strings.Contains(phrase, "周末") {
		t.Fatalf("phrase=%q want weekend fallback", phrase)
	}

	wed := time.Date(2024, time.March, 6, 9, 0, 0, 0, time.UTC)
	if phrase := a.holidayPhrase(wed); !strings.Contains(phrase, "工作日") {
		t.Fatalf("phrase=%q want workday fallback", phrase)
	}
}

func TestHolidayPhrase_NonCNCountryUsesFallback(t *testing.T) {
	a := New(config.PerceptionConfig{Timezone: "UTC", HolidayCountry: "US"}, Options{
		HolidayCalendar: stubCalendar{class: holiday.ClassHoliday, name: "国庆节"},
	})
	sun := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	phrase := a.holidayPhrase(sun)
	if strings.Contains(phrase, "法定节假日") {
		t.Fatalf("phrase=%q: CN calendar must not apply for country US", phrase)
	}
	if !strings.Contains(phrase, "周末") {
		t.Fatalf("phrase=%q want weekend", phrase)
	}
}
