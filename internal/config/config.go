package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	TimetasticAPIKey  string `yaml:"timetastic_api_key"`
	TimetasticBaseURL string `yaml:"timetastic_base_url"`

	SlackEnabled    bool   `yaml:"slack_enabled"`
	SlackWebhookURL string `yaml:"slack_webhook_url"`

	EmailEnabled    bool     `yaml:"email_enabled"`
	EmailHost       string   `yaml:"email_host"`
	EmailPort       int      `yaml:"email_port"`
	EmailUser       string   `yaml:"email_user"`
	EmailPass       string   `yaml:"email_pass"`
	EmailFrom       string   `yaml:"email_from"`
	EmailRecipients []string `yaml:"email_recipients"`
	EmailSubject    string   `yaml:"email_subject"`

	// FailOnSendError promotes a failed Slack/email send to an overall run
	// failure. Off by default: a missed notification is logged but does not
	// fail the report run.
	FailOnSendError bool `yaml:"fail_on_send_error"`

	ReportSchedule string `yaml:"report_schedule"`
	ListenAddr     string `yaml:"listen_addr"`
}

// LoadConfig reads config.yaml (or $CONFIG_PATH) if present, applies env
// var overrides on top, fills defaults, and validates. Invalid or missing
// required settings are fatal. The returned value is passed by argument
// everywhere; nothing reads configuration ambiently after startup.
func LoadConfig() Config {
	var cfg Config

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	envOverride(&cfg.TimetasticAPIKey, "TIMETASTIC_API_KEY")
	envOverride(&cfg.TimetasticBaseURL, "TIMETASTIC_BASE_URL")
	envOverrideBool(&cfg.SlackEnabled, "SLACK_ENABLED")
	envOverride(&cfg.SlackWebhookURL, "SLACK_WEBHOOK_URL")
	envOverrideBool(&cfg.EmailEnabled, "EMAIL_ENABLED")
	envOverride(&cfg.EmailHost, "EMAIL_HOST")
	envOverrideInt(&cfg.EmailPort, "EMAIL_PORT")
	envOverride(&cfg.EmailUser, "EMAIL_USER")
	envOverride(&cfg.EmailPass, "EMAIL_PASS")
	envOverride(&cfg.EmailFrom, "EMAIL_FROM")
	envOverride(&cfg.EmailSubject, "EMAIL_SUBJECT")
	envOverride(&cfg.ReportSchedule, "REPORT_SCHEDULE")
	envOverride(&cfg.ListenAddr, "LISTEN_ADDR")
	envOverrideBool(&cfg.FailOnSendError, "FAIL_ON_SEND_ERROR")

	if recipients := os.Getenv("EMAIL_RECIPIENTS"); recipients != "" {
		cfg.EmailRecipients = nil
		for _, addr := range strings.Split(recipients, ",") {
			addr = strings.TrimSpace(addr)
			if addr != "" {
				cfg.EmailRecipients = append(cfg.EmailRecipients, addr)
			}
		}
	}

	// Defaults
	if cfg.TimetasticBaseURL == "" {
		cfg.TimetasticBaseURL = "https://app.timetastic.co.uk/api"
	}
	if cfg.EmailPort == 0 {
		cfg.EmailPort = 587
	}
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = "Team Calendar <team-calendar@example.com>"
	}
	if cfg.EmailSubject == "" {
		cfg.EmailSubject = "Weekly Team Absence Report"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}

	// Validate required fields
	if cfg.TimetasticAPIKey == "" {
		log.Fatalf("Required config 'timetastic_api_key' is not set (via config.yaml or env var)")
	}
	if cfg.SlackEnabled && cfg.SlackWebhookURL == "" {
		log.Printf("slack_enabled is set but slack_webhook_url is empty; Slack sends will be skipped")
	}
	if cfg.EmailEnabled {
		if cfg.EmailHost == "" {
			log.Fatalf("email_host is required when email_enabled is set")
		}
		if len(cfg.EmailRecipients) == 0 {
			log.Fatalf("email_recipients is required when email_enabled is set")
		}
	}
	if cfg.ReportSchedule != "" {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
		if _, err := parser.Parse(cfg.ReportSchedule); err != nil {
			log.Fatalf("invalid report_schedule '%s': %v", cfg.ReportSchedule, err)
		}
	}

	return cfg
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}

func envOverrideBool(field *bool, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.ParseBool(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}
