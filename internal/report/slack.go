package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/slack-go/slack"

	"absencebot/internal/domain"
)

// BuildSlackMessage renders the chat summary for the window as a block-kit
// webhook message. It works from the raw absence list rather than the
// calendar grid: the channel message shows each booking as one line, not a
// day-by-day expansion.
//
// Only approved bookings are shown; a missing status is treated as approved
// since some accounts auto-approve and omit the field. People appear in
// order of their earliest upcoming absence.
func BuildSlackMessage(absences []domain.Absence, rng domain.DateRange) *slack.WebhookMessage {
	blocks := []slack.Block{
		markdownSection(fmt.Sprintf(
			"<!channel> *:bell: Team Absence Report*\nFrom today through next week (%s):", rng.Label)),
	}

	approved := filterApproved(absences)
	if len(approved) == 0 {
		blocks = append(blocks, markdownSection(
			"No team members are scheduled to be absent during this period! :tada:"))
		return &slack.WebhookMessage{Blocks: &slack.Blocks{BlockSet: blocks}}
	}

	blocks = append(blocks, markdownSection("*Team members with scheduled absences:*"))

	groups := groupByUser(approved)
	for i, g := range groups {
		blocks = append(blocks, markdownSection(fmt.Sprintf("*%s*", g.userName)))

		lines := make([]string, 0, len(g.absences))
		for _, a := range g.absences {
			lines = append(lines, absenceLine(a))
		}
		blocks = append(blocks, markdownSection(strings.Join(lines, "\n")))

		if i < len(groups)-1 {
			blocks = append(blocks, slack.NewDividerBlock())
		}
	}

	return &slack.WebhookMessage{Blocks: &slack.Blocks{BlockSet: blocks}}
}

func markdownSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil)
}

func filterApproved(absences []domain.Absence) []domain.Absence {
	var approved []domain.Absence
	for _, a := range absences {
		if a.Status == "Approved" || a.Status == "" {
			approved = append(approved, a)
		}
	}
	sort.SliceStable(approved, func(i, j int) bool {
		return domain.NormalizeDate(approved[i].StartDate) < domain.NormalizeDate(approved[j].StartDate)
	})
	return approved
}

type userAbsences struct {
	userName string
	absences []domain.Absence
}

// groupByUser buckets the (already date-sorted) absences per person. The
// order of groups follows each person's earliest start date, which with a
// sorted input is simply first appearance.
func groupByUser(sorted []domain.Absence) []userAbsences {
	index := make(map[string]int)
	var groups []userAbsences
	for _, a := range sorted {
		name := a.UserName
		if name == "" {
			name = domain.UnknownUser
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, userAbsences{userName: name})
		}
		groups[i].absences = append(groups[i].absences, a)
	}
	return groups
}

func absenceLine(a domain.Absence) string {
	label := domain.AbsenceLabel(a)
	if domain.NormalizeDate(a.StartDate) == domain.NormalizeDate(a.EndDate) {
		return fmt.Sprintf(":calendar: %s - %s", slackDate(a.StartDate), label)
	}
	return fmt.Sprintf(":calendar: %s to %s - %s", slackDate(a.StartDate), slackDate(a.EndDate), label)
}

// slackDate renders "*Tuesday*, Jun 3" with the weekday bolded so skimming
// the channel message reads by day of week.
func slackDate(upstream string) string {
	d, err := domain.ParseDate(upstream)
	if err != nil {
		return domain.NormalizeDate(upstream)
	}
	return fmt.Sprintf("*%s*, %s", d.Format("Monday"), d.Format("Jan 2"))
}
