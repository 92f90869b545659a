package domain

import "time"

const isoDate = "2006-01-02"

// DateRange is the reporting window: today through the Sunday after next.
type DateRange struct {
	Start time.Time
	End   time.Time
	Label string
}

func (r DateRange) StartISO() string { return r.Start.Format(isoDate) }
func (r DateRange) EndISO() string   { return r.End.Format(isoDate) }

// ResolveWindow computes the reporting window for the given clock reading.
// Start is today's date; End is the second upcoming Sunday, which is never
// today: a run on a Sunday looks 14 days ahead. The window therefore always
// covers the rest of the current week plus the entire following week.
func ResolveWindow(now time.Time) DateRange {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 14-int(start.Weekday()))
	return DateRange{
		Start: start,
		End:   end,
		Label: start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006"),
	}
}

// Days returns every ISO date in the window, inclusive, ascending.
func (r DateRange) Days() []string {
	var days []string
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(isoDate))
	}
	return days
}
