// Package notifications sends schedule-event notifications (pre_publish,
// published, failed, cancelled, edited) across email, Slack, and Discord,
// with per-channel partial-success semantics.
package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"
	"time"

	"github.com/socialpulse/engine/internal/socialmodel"
	"github.com/socialpulse/engine/pkg/logger"
)

// Channel is a delivery channel for a schedule notification.
type Channel string

const (
	ChannelEmail   Channel = "email"
	ChannelSlack   Channel = "slack"
	ChannelDiscord Channel = "discord"
)

// EmailConfig holds SMTP configuration.
type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// SlackConfig holds Slack webhook configuration.
type SlackConfig struct {
	WebhookURL string
}

// DiscordConfig holds Discord webhook configuration.
type DiscordConfig struct {
	WebhookURL string
}

// ScheduleNotification is the envelope delivered for one schedule event
// (spec §4.9 step 5, §5 ordering: pre_publish before published/failed/
// cancelled for the same schedule).
type ScheduleNotification struct {
	ScheduleID string
	BrandID    string
	Event      socialmodel.NotificationEvent
	Title      string
	Message    string
	Recipient  string // email address, when ChannelEmail is requested
	Channels   []Channel
}

// Service dispatches ScheduleNotifications across configured channels.
type Service struct {
	emailConfig   *EmailConfig
	slackConfig   *SlackConfig
	discordConfig *DiscordConfig
	httpClient    *http.Client
	log           *logger.Logger
}

func NewService(emailConfig *EmailConfig, slackConfig *SlackConfig, discordConfig *DiscordConfig, log *logger.Logger) *Service {
	return &Service{
		emailConfig:   emailConfig,
		slackConfig:   slackConfig,
		discordConfig: discordConfig,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		log:           log,
	}
}

// Send dispatches a notification to every requested channel and returns the
// channels that failed, so callers can decide whether a partial failure is
// fatal. It never returns early: every channel is attempted.
func (s *Service) Send(ctx context.Context, n ScheduleNotification) []Channel {
	s.log.Infow("sending schedule notification",
		"schedule_id", n.ScheduleID,
		"event", n.Event,
		"channels", n.Channels,
	)

	var failed []Channel
	for _, channel := range n.Channels {
		var err error
		switch channel {
		case ChannelEmail:
			err = s.sendEmail(ctx, n)
		case ChannelSlack:
			err = s.sendSlack(ctx, n)
		case ChannelDiscord:
			err = s.sendDiscord(ctx, n)
		}
		if err != nil {
			s.log.Warnw("failed to send schedule notification", "channel", channel, "schedule_id", n.ScheduleID, "error", err)
			failed = append(failed, channel)
		}
	}
	return failed
}

func (s *Service) sendEmail(ctx context.Context, n ScheduleNotification) error {
	if s.emailConfig == nil || s.emailConfig.Host == "" {
		return fmt.Errorf("email not configured")
	}
	if n.Recipient == "" {
		return fmt.Errorf("no email recipient specified")
	}

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: monospace; background-color: #0a0a0f; color: #e8e8ec; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto;">
    <div style="color: #4a9eff; font-size: 20px; margin-bottom: 16px;">SocialPulse</div>
    <div style="background-color: #12121a; border: 1px solid #2a2a3a; border-radius: 8px; padding: 20px;">
      <h2>%s</h2>
      <p>%s</p>
    </div>
  </div>
</body>
</html>`, n.Title, n.Message)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.emailConfig.From, n.Recipient, n.Title, htmlBody)

	auth := smtp.PlainAuth("", s.emailConfig.User, s.emailConfig.Password, s.emailConfig.Host)
	addr := fmt.Sprintf("%s:%d", s.emailConfig.Host, s.emailConfig.Port)

	if err := smtp.SendMail(addr, auth, s.emailConfig.From, []string{n.Recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.log.Infow("schedule email sent", "to", n.Recipient, "schedule_id", n.ScheduleID)
	return nil
}

type slackMessage struct {
	Attachments []slackAttachment `json:"attachments,omitempty"`
}

type slackAttachment struct {
	Color  string `json:"color"`
	Title  string `json:"title"`
	Text   string `json:"text"`
	Footer string `json:"footer"`
}

func eventColor(event socialmodel.NotificationEvent) (slack string, discord int) {
	switch event {
	case socialmodel.NotifyPublished:
		return "#00d68f", 54927
	case socialmodel.NotifyFailed:
		return "#ff4757", 16729943
	case socialmodel.NotifyCancelled:
		return "#606070", 6316670
	case socialmodel.NotifyPrePublish:
		return "#ffaa00", 16755200
	default:
		return "#4a9eff", 4889855
	}
}

func (s *Service) sendSlack(ctx context.Context, n ScheduleNotification) error {
	if s.slackConfig == nil || s.slackConfig.WebhookURL == "" {
		return fmt.Errorf("slack not configured")
	}
	color, _ := eventColor(n.Event)
	msg := slackMessage{Attachments: []slackAttachment{{Color: color, Title: n.Title, Text: n.Message, Footer: "SocialPulse Engine"}}}
	return s.postWebhook(ctx, s.slackConfig.WebhookURL, msg)
}

type discordMessage struct {
	Embeds []discordEmbed `json:"embeds,omitempty"`
}

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Color       int            `json:"color"`
	Footer      *discordFooter `json:"footer,omitempty"`
	Timestamp   string         `json:"timestamp,omitempty"`
}

type discordFooter struct {
	Text string `json:"text"`
}

func (s *Service) sendDiscord(ctx context.Context, n ScheduleNotification) error {
	if s.discordConfig == nil || s.discordConfig.WebhookURL == "" {
		return fmt.Errorf("discord not configured")
	}
	_, color := eventColor(n.Event)
	msg := discordMessage{Embeds: []discordEmbed{{
		Title:       n.Title,
		Description: n.Message,
		Color:       color,
		Footer:      &discordFooter{Text: "SocialPulse Engine"},
		Timestamp:   time.Now().Format(time.RFC3339),
	}}}
	return s.postWebhook(ctx, s.discordConfig.WebhookURL, msg)
}

func (s *Service) postWebhook(ctx context.Context, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("webhook %s returned %d", url, resp.StatusCode)
	}
	return nil
}
