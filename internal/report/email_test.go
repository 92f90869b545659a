package report

import (
	"strings"
	"testing"
	"time"

	"absencebot/internal/domain"
)

func emailFixtures(t *testing.T) (domain.CalendarMap, []domain.PersonSummary, domain.DateRange) {
	t.Helper()
	rng := domain.ResolveWindow(time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC))
	users := []domain.User{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace"},
		{ID: 2, FirstName: "Grace", LastName: "Hopper"},
	}
	types := []domain.AbsenceType{{ID: 10, Name: "Holiday"}, {ID: 11, Name: "Sick"}}
	absences := []domain.Absence{
		{UserID: 1, AbsenceTypeID: 10, StartDate: "2025-06-10", EndDate: "2025-06-10", Approved: true, Reason: "Trip"},
		{UserID: 2, AbsenceTypeID: 11, StartDate: "2025-06-09", EndDate: "2025-06-11", Approved: false},
	}
	cal, summary := domain.Aggregate(absences, users, types, rng)
	return cal, summary, rng
}

func TestRenderHTMLReport(t *testing.T) {
	cal, summary, rng := emailFixtures(t)
	out := RenderHTML(cal, summary, rng)

	if !strings.Contains(out, "<h1>Weekly Team Absence Report</h1>") {
		t.Fatalf("missing report heading")
	}
	if !strings.Contains(out, "Week of Jun 3 - Jun 15, 2025") {
		t.Fatalf("missing window label")
	}
	// Grace has 3 days to Ada's 1, so her summary row comes first.
	graceRow := strings.Index(out, "<td>Grace Hopper</td>")
	adaRow := strings.Index(out, "<td>Ada Lovelace</td>")
	if graceRow == -1 || adaRow == -1 || graceRow > adaRow {
		t.Fatalf("summary rows out of order")
	}
	if !strings.Contains(out, "<td>3 (Mon, Jun 9, Tue, Jun 10, Wed, Jun 11)</td>") {
		t.Fatalf("missing day list in summary row")
	}
	if !strings.Contains(out, `<span class="warning">Pending</span>`) {
		t.Fatalf("unapproved entries should be flagged Pending")
	}
	if !strings.Contains(out, "<h3>Tuesday, June 10, 2025</h3>") {
		t.Fatalf("missing daily breakdown heading")
	}
	// Quiet days still get a section.
	if strings.Count(out, "No absences scheduled.") != len(cal.Dates)-3 {
		t.Fatalf("expected a no-absences notice for every quiet day")
	}
}

func TestRenderHTMLEscapesUpstreamText(t *testing.T) {
	rng := domain.ResolveWindow(time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC))
	absences := []domain.Absence{
		{UserID: 1, AbsenceTypeID: 1, StartDate: "2025-06-10", EndDate: "2025-06-10", Reason: "<script>alert(1)</script>"},
	}
	cal, summary := domain.Aggregate(absences, nil, nil, rng)
	out := RenderHTML(cal, summary, rng)

	if strings.Contains(out, "<script>") {
		t.Fatalf("upstream reason was not escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatalf("expected escaped reason in output")
	}
}

func TestRenderTextReport(t *testing.T) {
	cal, summary, rng := emailFixtures(t)
	out := RenderText(cal, summary, rng)

	if !strings.HasPrefix(out, "Weekly Team Absence Report\nWeek of Jun 3 - Jun 15, 2025") {
		t.Fatalf("unexpected report header:\n%s", out[:80])
	}
	if !strings.Contains(out, "WEEK OVERVIEW") || !strings.Contains(out, "DAILY BREAKDOWN") {
		t.Fatalf("missing section headers")
	}
	if !strings.Contains(out, "Grace Hopper: 3 days (Mon, Jun 9, Tue, Jun 10, Wed, Jun 11)") {
		t.Fatalf("missing summary line")
	}
	if !strings.Contains(out, "Status: Pending") {
		t.Fatalf("unapproved entries should read Pending")
	}
	if !strings.Contains(out, "Reason: Trip") {
		t.Fatalf("missing entry reason")
	}
}

func TestRenderersEmptyInput(t *testing.T) {
	rng := domain.ResolveWindow(time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC))
	cal, summary := domain.Aggregate(nil, nil, nil, rng)

	htmlOut := RenderHTML(cal, summary, rng)
	textOut := RenderText(cal, summary, rng)

	for _, out := range []string{htmlOut, textOut} {
		if !strings.Contains(out, "No team members are scheduled to be absent this week!") {
			t.Fatalf("missing empty summary notice")
		}
		if strings.Count(out, "No absences scheduled.") != len(cal.Dates) {
			t.Fatalf("expected a no-absences notice for every day")
		}
	}
}

// The two bodies ship as alternatives of one message, so they must walk the
// days in the same order.
func TestRenderersAreStructurallyParallel(t *testing.T) {
	cal, summary, rng := emailFixtures(t)
	htmlOut := RenderHTML(cal, summary, rng)
	textOut := RenderText(cal, summary, rng)

	lastHTML, lastText := -1, -1
	for _, date := range cal.Dates {
		heading := dayHeading(date)
		h := strings.Index(htmlOut, heading)
		x := strings.Index(textOut, heading)
		if h == -1 || x == -1 {
			t.Fatalf("day heading %q missing from a renderer", heading)
		}
		if h < lastHTML || x < lastText {
			t.Fatalf("day heading %q out of order", heading)
		}
		lastHTML, lastText = h, x
	}
}
