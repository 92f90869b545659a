// Package slackhook delivers a finished block-kit message to an incoming
// webhook URL. It is write-only: no bot token, no socket mode.
package slackhook

import (
	"fmt"
	"log"

	"github.com/slack-go/slack"
)

type Sender struct {
	webhookURL string
}

func NewSender(webhookURL string) *Sender {
	return &Sender{webhookURL: webhookURL}
}

func (s *Sender) Send(msg *slack.WebhookMessage) error {
	log.Println("Sending notification to Slack webhook...")
	if err := slack.PostWebhook(s.webhookURL, msg); err != nil {
		// The slack library folds the response body into the error, which
		// is the useful detail when a webhook has been revoked.
		return fmt.Errorf("posting Slack webhook: %w", err)
	}
	log.Println("Slack notification sent successfully")
	return nil
}
