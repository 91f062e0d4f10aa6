package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/socialpulse/engine/internal/socialmodel"
	"github.com/socialpulse/engine/pkg/logger"
)

// webhookPublisher is the publishing.Publisher implementation used in
// production: each platform is configured with a webhook endpoint (the
// teacher's main.go wires its AI providers the same inline way, one struct
// per external integration). Posting writes the scheduled content as JSON
// and treats any non-2xx response as a failed publish.
type webhookPublisher struct {
	endpoints  map[socialmodel.Platform]string
	httpClient *http.Client
	log        *logger.Logger
}

func newWebhookPublisher(endpoints map[socialmodel.Platform]string, log *logger.Logger) *webhookPublisher {
	return &webhookPublisher{
		endpoints:  endpoints,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

func (p *webhookPublisher) ValidateContent(ctx context.Context, content socialmodel.ScheduledContent, platform socialmodel.Platform) error {
	if _, ok := p.endpoints[platform]; !ok {
		return socialmodel.NewError(socialmodel.KindValidation, "no publish endpoint configured for platform %s", platform)
	}
	if content.Content == "" {
		return socialmodel.NewError(socialmodel.KindValidation, "content body is empty")
	}
	return nil
}

func (p *webhookPublisher) Publish(ctx context.Context, content socialmodel.ScheduledContent, platform socialmodel.Platform) (socialmodel.PlatformOutcome, error) {
	endpoint, ok := p.endpoints[platform]
	if !ok {
		return socialmodel.PlatformOutcome{}, socialmodel.NewError(socialmodel.KindValidation, "no publish endpoint configured for platform %s", platform)
	}

	body, err := json.Marshal(map[string]interface{}{
		"title":   content.Title,
		"content": content.Content,
		"tags":    content.Tags,
	})
	if err != nil {
		return socialmodel.PlatformOutcome{}, socialmodel.Wrap(socialmodel.KindTerminalUpstream, err, "failed to marshal publish payload for %s", platform)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return socialmodel.PlatformOutcome{}, socialmodel.Wrap(socialmodel.KindTerminalUpstream, err, "failed to build publish request for %s", platform)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return socialmodel.PlatformOutcome{}, socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "publish request to %s failed", platform)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return socialmodel.PlatformOutcome{
			Platform:     platform,
			Status:       socialmodel.ScheduleFailed,
			ErrorCode:    fmt.Sprintf("http_%d", resp.StatusCode),
			ErrorMessage: string(respBody),
		}, socialmodel.Wrap(socialmodel.KindTransientUpstream, fmt.Errorf("status %d", resp.StatusCode), "publish to %s rejected", platform)
	}

	var decoded struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(respBody, &decoded)

	return socialmodel.PlatformOutcome{
		Platform:       platform,
		Status:         socialmodel.SchedulePublished,
		PlatformPostID: decoded.ID,
	}, nil
}

// webhookResponder is the action.PlatformResponder implementation: posts a
// reply payload to the platform's configured webhook, same integration
// style as webhookPublisher but keyed off the inbound event rather than a
// scheduled post.
type webhookResponder struct {
	endpoints  map[socialmodel.Platform]string
	httpClient *http.Client
	log        *logger.Logger
}

func newWebhookResponder(endpoints map[socialmodel.Platform]string, log *logger.Logger) *webhookResponder {
	return &webhookResponder{
		endpoints:  endpoints,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

func (r *webhookResponder) Respond(ctx context.Context, event socialmodel.SocialEvent, action socialmodel.RoutedAction) error {
	endpoint, ok := r.endpoints[event.Platform]
	if !ok {
		r.log.WithPlatform(string(event.Platform)).WithEventID(event.ID).Warn("no respond endpoint configured")
		return nil
	}

	body, err := json.Marshal(map[string]interface{}{
		"in_reply_to": event.ID,
		"action_type": action.Type,
		"parameters":  action.Parameters,
	})
	if err != nil {
		return socialmodel.Wrap(socialmodel.KindTerminalUpstream, err, "failed to marshal response payload for event %s", event.ID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return socialmodel.Wrap(socialmodel.KindTerminalUpstream, err, "failed to build response request for event %s", event.ID)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return socialmodel.Wrap(socialmodel.KindTransientUpstream, err, "respond request for event %s failed", event.ID)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return socialmodel.NewError(socialmodel.KindTransientUpstream, "respond to event %s rejected with status %d", event.ID, resp.StatusCode)
	}
	return nil
}
