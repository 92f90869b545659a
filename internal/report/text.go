package report

import (
	"fmt"
	"strings"

	"absencebot/internal/domain"
)

// RenderText is the plain-text alternative to RenderHTML for email clients
// that do not render HTML. Same sections, same ordering.
func RenderText(cal domain.CalendarMap, summary []domain.PersonSummary, rng domain.DateRange) string {
	var b strings.Builder

	b.WriteString("Weekly Team Absence Report\n")
	fmt.Fprintf(&b, "Week of %s\n\n", rng.Label)

	b.WriteString("WEEK OVERVIEW\n")
	b.WriteString("=============\n\n")
	if len(summary) == 0 {
		b.WriteString("No team members are scheduled to be absent this week!\n\n")
	} else {
		for _, s := range summary {
			fmt.Fprintf(&b, "%s: %d days (%s)\n", s.UserName, s.TotalDays, strings.Join(s.Days, ", "))
			fmt.Fprintf(&b, "Type: %s\n\n", s.Types)
		}
	}

	b.WriteString("DAILY BREAKDOWN\n")
	b.WriteString("===============\n\n")
	for _, date := range cal.Dates {
		heading := dayHeading(date)
		b.WriteString(heading + "\n")
		b.WriteString(strings.Repeat("-", len(heading)) + "\n\n")

		entries := cal.Entries[date]
		if len(entries) == 0 {
			b.WriteString("No absences scheduled.\n\n")
			continue
		}
		for _, e := range entries {
			status := "Approved"
			if !e.Approved {
				status = "Pending"
			}
			fmt.Fprintf(&b, "%s - %s\n", e.UserName, e.AbsenceType)
			fmt.Fprintf(&b, "Reason: %s\n", e.Reason)
			fmt.Fprintf(&b, "Status: %s\n\n", status)
		}
	}

	b.WriteString("This report was automatically generated from Timetastic.")
	return b.String()
}
