package domain

import (
	"sort"
	"strings"
	"time"
)

const (
	UnknownUser = "Unknown User"
	UnknownType = "Unknown Type"
)

// NormalizeDate reduces an upstream date to its YYYY-MM-DD prefix. The API
// sometimes returns full timestamps ("2025-06-10T00:00:00") for what are
// calendar dates.
func NormalizeDate(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// ParseDate parses an upstream date, tolerating a trailing time component.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(isoDate, NormalizeDate(s))
}

// AbsenceLabel describes how much of the booked span an absence covers.
// Half-day markers only matter for single-day absences; anything spanning
// more than one day reads "Multiple days" regardless of its boundaries.
func AbsenceLabel(a Absence) string {
	if NormalizeDate(a.StartDate) == NormalizeDate(a.EndDate) {
		if a.StartType == "Morning" && a.EndType == "Morning" {
			return "Morning only"
		}
		if a.StartType == "Afternoon" && a.EndType == "Afternoon" {
			return "Afternoon only"
		}
		return "Full day"
	}
	return "Multiple days"
}

// FormatDayLabel renders an ISO date as "Tue, Jun 3" for summaries.
func FormatDayLabel(iso string) string {
	d, err := time.Parse(isoDate, iso)
	if err != nil {
		return iso
	}
	return d.Format("Mon, Jan 2")
}

// Aggregate joins absences against the user and absence-type lookups and
// expands them into the day grid for the window, then rolls the grid up
// into per-person weekly summaries sorted by total days descending.
//
// Unknown user or type ids resolve to sentinel names rather than failing;
// overlapping absences for the same person on the same day each produce
// their own entry.
func Aggregate(absences []Absence, users []User, absenceTypes []AbsenceType, rng DateRange) (CalendarMap, []PersonSummary) {
	userNames := make(map[int64]string, len(users))
	for _, u := range users {
		userNames[u.ID] = u.DisplayName()
	}
	typeNames := make(map[int64]string, len(absenceTypes))
	for _, t := range absenceTypes {
		typeNames[t.ID] = t.Name
	}

	cal := CalendarMap{
		Dates:   rng.Days(),
		Entries: make(map[string][]DayEntry),
	}
	for _, date := range cal.Dates {
		cal.Entries[date] = []DayEntry{}
	}

	for _, a := range absences {
		start, err := ParseDate(a.StartDate)
		if err != nil {
			continue
		}
		end, err := ParseDate(a.EndDate)
		if err != nil {
			continue
		}

		userName, ok := userNames[a.UserID]
		if !ok {
			userName = UnknownUser
		}
		typeName, ok := typeNames[a.AbsenceTypeID]
		if !ok {
			typeName = UnknownType
		}
		reason := a.Reason
		if reason == "" {
			reason = "No reason provided"
		}

		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			date := d.Format(isoDate)
			if _, inWindow := cal.Entries[date]; !inWindow {
				continue
			}
			cal.Entries[date] = append(cal.Entries[date], DayEntry{
				UserName:    userName,
				AbsenceType: typeName,
				Reason:      reason,
				Approved:    a.Approved,
				Duration:    a.Duration,
				Deduction:   a.Deduction,
			})
		}
	}

	return cal, summarize(cal)
}

// summarize walks the grid in date order so each person's day labels come
// out chronologically and type names keep first-seen order.
func summarize(cal CalendarMap) []PersonSummary {
	type rollup struct {
		days      []string
		types     []string
		seenTypes map[string]bool
	}
	byUser := make(map[string]*rollup)
	var order []string

	for _, date := range cal.Dates {
		label := FormatDayLabel(date)
		for _, entry := range cal.Entries[date] {
			r, ok := byUser[entry.UserName]
			if !ok {
				r = &rollup{seenTypes: make(map[string]bool)}
				byUser[entry.UserName] = r
				order = append(order, entry.UserName)
			}
			r.days = append(r.days, label)
			if !r.seenTypes[entry.AbsenceType] {
				r.seenTypes[entry.AbsenceType] = true
				r.types = append(r.types, entry.AbsenceType)
			}
		}
	}

	summaries := make([]PersonSummary, 0, len(order))
	for _, name := range order {
		r := byUser[name]
		summaries = append(summaries, PersonSummary{
			UserName:  name,
			Days:      r.days,
			Types:     strings.Join(r.types, ", "),
			TotalDays: len(r.days),
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalDays > summaries[j].TotalDays
	})
	return summaries
}
