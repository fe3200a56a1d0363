package holiday

import (
	"errors"
	"testing"
	"time"
)

func mustCalendar(t *testing.T) *Calendar {
	t.Helper()
	cal, err := NewCNCalendar()
	if err != nil {
		t.Fatalf("NewCNCalendar: %v", err)
	}
	return cal
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestClassify_NationalDay(t *testing.T) {
	cal := mustCalendar(t)
	class, name, err := cal.Classify(day(2024, time.October, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if class != ClassHoliday {
		t.Fatalf("class=%v want ClassHoliday", class)
	}
	if name != "国庆节" {
		t.Fatalf("name=%q want 国庆节", name)
	}
}

func TestClassify_MakeupWorkday(t *testing.T) {
	cal := mustCalendar(t)
	// 2024-02-04 is a Sunday worked to extend the Spring Festival break.
	class, name, err := cal.Classify(day(2024, time.February, 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if class != ClassMakeupWorkday {
		t.Fatalf("class=%v want ClassMakeupWorkday", class)
	}
	if name == "" {
		t.Fatalf("expected holiday name on makeup workday")
	}
}

func TestClassify_OrdinaryDays(t *testing.T) {
	cal := mustCalendar(t)

	class, _, err := cal.Classify(day(2024, time.March, 6)) // Wednesday
	if err != nil || class != ClassWorkday {
		t.Fatalf("class=%v err=%v want ClassWorkday", class, err)
	}

	class, _, err = cal.Classify(day(2024, time.March, 9)) // Saturday
	if err != nil || class != ClassWeekend {
		t.Fatalf("class=%v err=%v want ClassWeekend", class, err)
	}
}

func TestClassify_CurrentYearCovered(t *testing.T) {
	cal := mustCalendar(t)

	// National Day week must classify as a statutory holiday, not fall back
	// to the plain weekday split.
	class, name, err := cal.Classify(day(2026, time.October, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if class != ClassHoliday || name != "国庆节" {
		t.Fatalf("class=%v name=%q want ClassHoliday 国庆节", class, name)
	}

	// Spring Festival day one.
	class, name, err = cal.Classify(day(2026, time.February, 17))
	if err != nil || class != ClassHoliday || name != "春节" {
		t.Fatalf("class=%v name=%q err=%v want ClassHoliday 春节", class, name, err)
	}

	// The Sunday worked to extend the New Year break.
	class, _, err = cal.Classify(day(2026, time.January, 4))
	if err != nil || class != ClassMakeupWorkday {
		t.Fatalf("class=%v err=%v want ClassMakeupWorkday", class, err)
	}
}

func TestClassify_UncoveredYear(t *testing.T) {
	cal := mustCalendar(t)
	if _, _, err := cal.Classify(day(1999, time.January, 1)); !errors.Is(err, ErrYearNotCovered) {
		t.Fatalf("err=%v want ErrYearNotCovered", err)
	}
}
