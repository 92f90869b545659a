package app

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/slack-go/slack"

	"absencebot/internal/config"
	"absencebot/internal/domain"
	"absencebot/internal/report"
)

// Fetcher is the upstream API surface the pipeline needs. The Timetastic
// client satisfies it; tests substitute canned data.
type Fetcher interface {
	FetchDepartments() ([]domain.Department, error)
	FetchUsers() ([]domain.User, error)
	FetchAbsenceTypes() ([]domain.AbsenceType, error)
	FetchAbsences(start, end string) ([]domain.Absence, error)
}

type ChatSender interface {
	Send(msg *slack.WebhookMessage) error
}

type EmailSender interface {
	Send(subject, textBody, htmlBody string) error
}

// Result is the definite outcome of one report run. Run never panics or
// returns an error to its caller; trigger surfaces only ever see this.
type Result struct {
	Success bool
	Error   string
}

type Reporter struct {
	cfg   config.Config
	fetch Fetcher
	chat  ChatSender
	mail  EmailSender
	now   func() time.Time
}

func NewReporter(cfg config.Config, fetch Fetcher, chat ChatSender, mail EmailSender) *Reporter {
	return &Reporter{cfg: cfg, fetch: fetch, chat: chat, mail: mail, now: time.Now}
}

// Run executes one full report cycle: resolve the window, fetch the four
// collections concurrently, then render and deliver each enabled channel.
// The Slack and email paths are independent; a disabled channel is skipped
// with a log line. Send failures fail the run only when fail_on_send_error
// is configured.
func (r *Reporter) Run() (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Report run panicked: %v", rec)
			result = Result{Success: false, Error: fmt.Sprintf("report run panicked: %v", rec)}
		}
	}()

	log.Println("Generating weekly team absence report...")
	rng := domain.ResolveWindow(r.now())
	log.Printf("Date range: %s to %s", rng.StartISO(), rng.EndISO())

	data, err := r.fetchAll(rng)
	if err != nil {
		log.Printf("Error fetching report data: %v", err)
		return Result{Success: false, Error: err.Error()}
	}
	log.Printf("Working with %d departments, %d users, %d absence types, and %d absences",
		len(data.departments), len(data.users), len(data.absenceTypes), len(data.absences))

	var sendErrs []error

	if r.cfg.SlackEnabled && r.cfg.SlackWebhookURL != "" {
		msg := report.BuildSlackMessage(data.absences, rng)
		if err := r.chat.Send(msg); err != nil {
			log.Printf("Error sending Slack notification: %v", err)
			sendErrs = append(sendErrs, err)
		}
	} else {
		log.Println("Slack notifications are disabled")
	}

	if r.cfg.EmailEnabled {
		cal, summary := domain.Aggregate(data.absences, data.users, data.absenceTypes, rng)
		htmlBody := report.RenderHTML(cal, summary, rng)
		textBody := report.RenderText(cal, summary, rng)
		subject := fmt.Sprintf("%s (%s)", r.cfg.EmailSubject, rng.Label)
		if err := r.mail.Send(subject, textBody, htmlBody); err != nil {
			log.Printf("Error sending email report: %v", err)
			sendErrs = append(sendErrs, err)
		}
	} else {
		log.Println("Email notifications are disabled")
	}

	if len(sendErrs) > 0 && r.cfg.FailOnSendError {
		err := errors.Join(sendErrs...)
		return Result{Success: false, Error: err.Error()}
	}

	log.Println("Weekly report generation completed successfully")
	return Result{Success: true}
}

type reportData struct {
	departments  []domain.Department
	users        []domain.User
	absenceTypes []domain.AbsenceType
	absences     []domain.Absence
}

// fetchAll issues the four upstream reads concurrently and waits for all of
// them. The reads are independent; a failure in one never cuts the others
// short, and all failures are reported together.
func (r *Reporter) fetchAll(rng domain.DateRange) (reportData, error) {
	var (
		data reportData
		errs [4]error
		wg   sync.WaitGroup
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		defer capturePanic(&errs[0])
		data.departments, errs[0] = r.fetch.FetchDepartments()
	}()
	go func() {
		defer wg.Done()
		defer capturePanic(&errs[1])
		data.users, errs[1] = r.fetch.FetchUsers()
	}()
	go func() {
		defer wg.Done()
		defer capturePanic(&errs[2])
		data.absenceTypes, errs[2] = r.fetch.FetchAbsenceTypes()
	}()
	go func() {
		defer wg.Done()
		defer capturePanic(&errs[3])
		data.absences, errs[3] = r.fetch.FetchAbsences(rng.StartISO(), rng.EndISO())
	}()
	wg.Wait()

	if err := errors.Join(errs[:]...); err != nil {
		return reportData{}, err
	}
	return data, nil
}

// capturePanic keeps a panicking fetch from escaping its goroutine, where
// the orchestrator's own recover could not reach it.
func capturePanic(err *error) {
	if rec := recover(); rec != nil {
		*err = fmt.Errorf("fetch panicked: %v", rec)
	}
}
