package app

import (
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// StartReportScheduler runs the report on a standard 5-field cron
// expression (minute hour day-of-month month day-of-week).
// Examples: "0 8 * * 1" (Mondays 8am), "0 8 * * 1-5" (weekdays 8am).
// An empty schedule disables the scheduler; the HTTP trigger still works.
func StartReportScheduler(reporter *Reporter, schedule string) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		log.Println("Scheduled reports disabled (report_schedule not set)")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Printf("Invalid report_schedule '%s': %v — scheduled reports disabled", schedule, err)
		return
	}

	log.Printf("Weekly report scheduled (cron: %s)", schedule)

	go func() {
		for {
			now := time.Now()
			next := sched.Next(now)
			wait := next.Sub(now)
			log.Printf("Next scheduled report at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

			time.Sleep(wait)

			log.Printf("Running scheduled report at %s", time.Now().Format(time.RFC1123))
			result := reporter.Run()
			if !result.Success {
				log.Printf("Scheduled report failed: %s", result.Error)
			}
		}
	}()
}
