package report

import (
	"fmt"
	"html"
	"strings"

	"absencebot/internal/domain"
)

const reportCSS = `body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; }
h1, h2, h3 { color: #2c3e50; }
table { border-collapse: collapse; width: 100%; margin-bottom: 20px; }
th, td { padding: 8px; text-align: left; border-bottom: 1px solid #ddd; }
th { background-color: #f2f2f2; }
.week-summary { background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
.day-section { margin-bottom: 25px; }
.no-absences { color: #27ae60; font-style: italic; }
.warning { color: #e74c3c; }`

// RenderHTML produces the HTML body of the email report: a week-overview
// summary table followed by a day-by-day breakdown of the calendar grid.
// It walks the same data in the same order as RenderText; the two outputs
// must stay structurally parallel since they ship as alternatives in one
// message. Upstream-sourced strings are escaped.
func RenderHTML(cal domain.CalendarMap, summary []domain.PersonSummary, rng domain.DateRange) string {
	var b strings.Builder

	b.WriteString("<html>\n<head>\n<style>\n")
	b.WriteString(reportCSS)
	b.WriteString("\n</style>\n</head>\n<body>\n")
	b.WriteString("<h1>Weekly Team Absence Report</h1>\n")
	fmt.Fprintf(&b, "<p>Week of %s</p>\n", html.EscapeString(rng.Label))

	b.WriteString(`<div class="week-summary">` + "\n<h2>Week Overview</h2>\n")
	if len(summary) == 0 {
		b.WriteString(`<p class="no-absences">No team members are scheduled to be absent this week!</p>` + "\n")
	} else {
		b.WriteString("<table>\n<tr><th>Team Member</th><th>Days Absent</th><th>Absence Type</th></tr>\n")
		for _, s := range summary {
			fmt.Fprintf(&b, "<tr><td>%s</td><td>%d (%s)</td><td>%s</td></tr>\n",
				html.EscapeString(s.UserName),
				s.TotalDays,
				html.EscapeString(strings.Join(s.Days, ", ")),
				html.EscapeString(s.Types))
		}
		b.WriteString("</table>\n")
	}
	b.WriteString("</div>\n")

	b.WriteString("<h2>Daily Breakdown</h2>\n")
	for _, date := range cal.Dates {
		fmt.Fprintf(&b, `<div class="day-section">`+"\n<h3>%s</h3>\n", dayHeading(date))

		entries := cal.Entries[date]
		if len(entries) == 0 {
			b.WriteString(`<p class="no-absences">No absences scheduled.</p>` + "\n")
		} else {
			b.WriteString("<table>\n<tr><th>Team Member</th><th>Absence Type</th><th>Reason</th><th>Status</th></tr>\n")
			for _, e := range entries {
				status := "Approved"
				if !e.Approved {
					status = `<span class="warning">Pending</span>`
				}
				fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
					html.EscapeString(e.UserName),
					html.EscapeString(e.AbsenceType),
					html.EscapeString(e.Reason),
					status)
			}
			b.WriteString("</table>\n")
		}
		b.WriteString("</div>\n")
	}

	b.WriteString("<p>This report was automatically generated from Timetastic.</p>\n")
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// dayHeading renders "Tuesday, June 3, 2025" for the breakdown sections.
func dayHeading(iso string) string {
	d, err := domain.ParseDate(iso)
	if err != nil {
		return iso
	}
	return d.Format("Monday, January 2, 2006")
}
