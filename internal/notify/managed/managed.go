package notify_managed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/reelmatch/core/internal/config"
	"github.com/reelmatch/core/internal/model"
)

var (
	ErrChannelDisabled = errors.New("managed channel is disabled")
	ErrPublishRejected = errors.New("managed channel rejected the publish")
)

// publishMutation pushes one envelope into the hosted pub/sub service.
// Subscribers listen on the room id; the service fans out on its own.
const publishMutation = `mutation PublishEvent($roomId: String!, $kind: String!, $payload: AWSJSON!, $timestamp: AWSDateTime!) {
  publishEvent(roomId: $roomId, kind: $kind, payload: $payload, timestamp: $timestamp) {
    roomId
  }
}`

const probeQuery = `query { __typename }`

// Publisher delivers envelopes through the managed pub/sub-over-GraphQL
// service. It owns no connection state; health is its only other observable
// property.
type Publisher struct {
	endpoint string
	apiKey   string
	client   *http.Client

	// Set when the endpoint is malformed at startup. A disabled publisher
	// fails every call immediately instead of retrying a hopeless URL.
	disabled bool

	logger *slog.Logger
}

type PublisherOption func(*Publisher)

func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func New(cfg config.Realtime, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		endpoint: cfg.ManagedEndpoint,
		apiKey:   cfg.ManagedAPIKey,
		client: &http.Client{
			Timeout: cfg.PublishTimeout,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	parsed, err := url.Parse(cfg.ManagedEndpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		p.disabled = true
		p.logger.Error("managed channel endpoint is unusable, publisher disabled",
			slog.String("endpoint", cfg.ManagedEndpoint))
	}

	return p
}

func (p *Publisher) Disabled() bool {
	return p.disabled
}

// Probe checks reachability with a minimal query. Used by the health
// monitor; the caller supplies the timeout through ctx.
func (p *Publisher) Probe(ctx context.Context) error {
	if p.disabled {
		return ErrChannelDisabled
	}
	return p.post(ctx, graphqlRequest{Query: probeQuery})
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (p *Publisher) publish(ctx context.Context, env model.EventEnvelope) error {
	if p.disabled {
		return ErrChannelDisabled
	}

	return p.post(ctx, graphqlRequest{
		Query: publishMutation,
		Variables: map[string]any{
			"roomId":    env.RoomID,
			"kind":      env.Kind,
			"payload":   string(env.Payload),
			"timestamp": env.Timestamp.Format(time.RFC3339),
		},
	})
}

func (p *Publisher) post(ctx context.Context, gql graphqlRequest) error {
	body, err := json.Marshal(gql)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("x-api-key", p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w : status %d", ErrPublishRejected, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var gqlResp graphqlResponse
	if err := json.Unmarshal(data, &gqlResp); err != nil {
		return err
	}
	if len(gqlResp.Errors) > 0 {
		return fmt.Errorf("%w : %s", ErrPublishRejected, gqlResp.Errors[0].Message)
	}

	return nil
}

func (p *Publisher) PublishVote(ctx context.Context, env model.EventEnvelope) error {
	return p.publish(ctx, env)
}

func (p *Publisher) PublishMatch(ctx context.Context, env model.EventEnvelope) error {
	return p.publish(ctx, env)
}

func (p *Publisher) PublishMemberStatus(ctx context.Context, env model.EventEnvelope) error {
	return p.publish(ctx, env)
}

func (p *Publisher) PublishRoleAssignment(ctx context.Context, env model.EventEnvelope) error {
	return p.publish(ctx, env)
}

func (p *Publisher) PublishModerationAction(ctx context.Context, env model.EventEnvelope) error {
	return p.publish(ctx, env)
}

func (p *Publisher) PublishScheduleEvent(ctx context.Context, env model.EventEnvelope) error {
	return p.publish(ctx, env)
}

func (p *Publisher) PublishThemeChange(ctx context.Context, env model.EventEnvelope) error {
	return p.publish(ctx, env)
}

func (p *Publisher) PublishSettingsChange(ctx context.Context, env model.EventEnvelope) error {
	return p.publish(ctx, env)
}

func (p *Publisher) PublishChatMessage(ctx context.Context, env model.EventEnvelope) error {
	return p.publish(ctx, env)
}

func (p *Publisher) PublishContentSuggestion(ctx context.Context, env model.EventEnvelope) error {
	return p.publish(ctx, env)
}
