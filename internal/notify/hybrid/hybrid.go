package notify_hybrid

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/reelmatch/core/internal/model"
)

// ChannelPublisher is the capability set both channels implement: one
// operation per event kind, so the distributor can dispatch without
// per-kind branching at the call site.
type ChannelPublisher interface {
	PublishVote(ctx context.Context, env model.EventEnvelope) error
	PublishMatch(ctx context.Context, env model.EventEnvelope) error
	PublishMemberStatus(ctx context.Context, env model.EventEnvelope) error
	PublishRoleAssignment(ctx context.Context, env model.EventEnvelope) error
	PublishModerationAction(ctx context.Context, env model.EventEnvelope) error
	PublishScheduleEvent(ctx context.Context, env model.EventEnvelope) error
	PublishThemeChange(ctx context.Context, env model.EventEnvelope) error
	PublishSettingsChange(ctx context.Context, env model.EventEnvelope) error
	PublishChatMessage(ctx context.Context, env model.EventEnvelope) error
	PublishContentSuggestion(ctx context.Context, env model.EventEnvelope) error
}

// HealthMonitor gates the managed channel.
type HealthMonitor interface {
	EnsureFreshProbe(ctx context.Context)
	Healthy() bool
	MarkUnhealthy()
	Snapshot() (healthy bool, lastProbe time.Time)
}

// PresenceSource answers connection queries. Only the direct channel has
// one; the managed service never exposes connection state to us.
type PresenceSource interface {
	ConnectedUsers(roomID string) []string
	IsOnline(userID string) bool
	ConnectionStats() (total int, perRoom map[string]int)
}

// dispatch routes an envelope to the matching capability without
// reflection or name lookup.
var dispatch = map[model.EventKind]func(ChannelPublisher, context.Context, model.EventEnvelope) error{
	model.EventVote:              ChannelPublisher.PublishVote,
	model.EventMatch:             ChannelPublisher.PublishMatch,
	model.EventMemberStatus:      ChannelPublisher.PublishMemberStatus,
	model.EventRoleAssignment:    ChannelPublisher.PublishRoleAssignment,
	model.EventModerationAction:  ChannelPublisher.PublishModerationAction,
	model.EventScheduleEvent:     ChannelPublisher.PublishScheduleEvent,
	model.EventThemeChange:       ChannelPublisher.PublishThemeChange,
	model.EventSettingsChange:    ChannelPublisher.PublishSettingsChange,
	model.EventChatMessage:       ChannelPublisher.PublishChatMessage,
	model.EventContentSuggestion: ChannelPublisher.PublishContentSuggestion,
}

// Distributor fans every envelope out to the direct channel
// unconditionally and to the managed channel while it is healthy.
// Delivery is best effort; a failure in one channel never blocks or
// corrupts the other.
type Distributor struct {
	direct   ChannelPublisher
	managed  ChannelPublisher
	health   HealthMonitor
	presence PresenceSource

	logger *slog.Logger
}

type DistributorOption func(*Distributor)

func WithLogger(logger *slog.Logger) DistributorOption {
	return func(d *Distributor) {
		d.logger = logger
	}
}

func New(
	direct ChannelPublisher,
	managed ChannelPublisher,
	health HealthMonitor,
	presence PresenceSource,
	opts ...DistributorOption,
) *Distributor {
	d := &Distributor{
		direct:   direct,
		managed:  managed,
		health:   health,
		presence: presence,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Publish delivers env through both channels and returns once both
// attempts settle. It never fails: notification is advisory and must not
// roll back the state change that produced the envelope.
func (d *Distributor) Publish(ctx context.Context, env model.EventEnvelope) {
	fn, ok := dispatch[env.Kind]
	if !ok {
		d.logger.Error("unknown event kind, dropping envelope",
			slog.String("kind", env.Kind),
			slog.String("room", env.RoomID))
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := fn(d.direct, ctx, env); err != nil {
			d.logger.Warn("direct channel delivery failed",
				slog.String("kind", env.Kind),
				slog.String("room", env.RoomID),
				slog.String("error", err.Error()))
		}
	}()

	go func() {
		defer wg.Done()
		d.health.EnsureFreshProbe(ctx)
		if !d.health.Healthy() {
			return
		}
		if err := fn(d.managed, ctx, env); err != nil {
			d.logger.Warn("managed channel delivery failed",
				slog.String("kind", env.Kind),
				slog.String("room", env.RoomID),
				slog.String("error", err.Error()))
			if isSystemic(err) {
				d.health.MarkUnhealthy()
			}
		}
	}()

	wg.Wait()
}

// isSystemic picks out failures that mean the whole channel is gone, not
// just one message.
func isSystemic(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// Status is the operator surface.
type Status struct {
	PrimaryHealthy   bool      `json:"primary_healthy"`
	LastProbe        time.Time `json:"last_probe"`
	EffectivePrimary string    `json:"effective_primary"` // managed | direct
}

func (d *Distributor) Status() Status {
	healthy, lastProbe := d.health.Snapshot()
	primary := "direct"
	if healthy {
		primary = "managed"
	}
	return Status{
		PrimaryHealthy:   healthy,
		LastProbe:        lastProbe,
		EffectivePrimary: primary,
	}
}

// Presence queries always come from the direct channel. When clients sit
// on the managed channel instead, the answers degrade to empty/false
// rather than failing.
func (d *Distributor) ConnectedUsers(roomID string) []string {
	return d.presence.ConnectedUsers(roomID)
}

func (d *Distributor) IsOnline(userID string) bool {
	return d.presence.IsOnline(userID)
}

func (d *Distributor) ConnectionStats() (int, map[string]int) {
	return d.presence.ConnectionStats()
}
