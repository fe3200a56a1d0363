package perception

import "time"

// solarTermPhrase reports the solar term for the date: "今天是X" on the listed
// day, "X将至" / "X刚过" within two days of it, otherwise "时值X" for the term
// currently in effect. The scan is circular so the December→January boundary
// resolves to 冬至.
func solarTermPhrase(now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Near-term window first. Terms are at least two weeks apart, so at most
	// one can match; check the surrounding years to cover the wraparound.
	for _, term := range solarTerms {
		for _, year := range [3]int{now.Year() - 1, now.Year(), now.Year() + 1} {
			d := time.Date(year, time.Month(term.Month), term.Day, 0, 0, 0, 0, now.Location())
			diff := daysBetween(d, today)
			switch {
			case diff == 0:
				return "今天是" + term.Name
			case diff >= -2 && diff < 0:
				return term.Name + "将至"
			case diff > 0 && diff <= 2:
				return term.Name + "刚过"
			}
		}
	}

	// Otherwise find the latest term on or before today. Before the first
	// term of the year the active one is last year's 冬至.
	active := solarTerms[len(solarTerms)-1].Name
	for _, term := range solarTerms {
		d := time.Date(now.Year(), time.Month(term.Month), term.Day, 0, 0, 0, 0, now.Location())
		if d.After(today) {
			break
		}
		active = term.Name
	}
	return "时值" + active
}

// daysBetween returns the calendar days from a to b (positive when b is
// later). Both dates are re-anchored in UTC so DST transitions cannot shorten
// a day below 24 hours.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
