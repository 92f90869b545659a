package app

import (
	"log"
	"net/http"

	"absencebot/internal/config"
	"absencebot/internal/integrations/email"
	"absencebot/internal/integrations/slackhook"
	"absencebot/internal/integrations/timetastic"
)

func Main() {
	cfg := config.LoadConfig()
	log.Printf("Config loaded. SlackEnabled=%t EmailEnabled=%t Recipients=%d Schedule=%q FailOnSendError=%t",
		cfg.SlackEnabled, cfg.EmailEnabled, len(cfg.EmailRecipients), cfg.ReportSchedule, cfg.FailOnSendError)

	client := timetastic.NewClient(cfg.TimetasticBaseURL, cfg.TimetasticAPIKey)
	chat := slackhook.NewSender(cfg.SlackWebhookURL)
	mail := email.NewSender(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPass,
		cfg.EmailFrom, cfg.EmailRecipients)

	reporter := NewReporter(cfg, client, chat, mail)

	StartReportScheduler(reporter, cfg.ReportSchedule)

	log.Printf("Starting absence report bot on %s...", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, NewRouter(reporter)); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}
