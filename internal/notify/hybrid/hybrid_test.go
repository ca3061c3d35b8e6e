package notify_hybrid

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/reelmatch/core/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type recordingChannel struct {
	mu       sync.Mutex
	received []model.EventEnvelope
	err      error
}

func (c *recordingChannel) record(env model.EventEnvelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.received = append(c.received, env)
	return nil
}

func (c *recordingChannel) Received() []model.EventEnvelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.EventEnvelope, len(c.received))
	copy(out, c.received)
	return out
}

func (c *recordingChannel) PublishVote(_ context.Context, env model.EventEnvelope) error {
	return c.record(env)
}
func (c *recordingChannel) PublishMatch(_ context.Context, env model.EventEnvelope) error {
	return c.record(env)
}
func (c *recordingChannel) PublishMemberStatus(_ context.Context, env model.EventEnvelope) error {
	return c.record(env)
}
func (c *recordingChannel) PublishRoleAssignment(_ context.Context, env model.EventEnvelope) error {
	return c.record(env)
}
func (c *recordingChannel) PublishModerationAction(_ context.Context, env model.EventEnvelope) error {
	return c.record(env)
}
func (c *recordingChannel) PublishScheduleEvent(_ context.Context, env model.EventEnvelope) error {
	return c.record(env)
}
func (c *recordingChannel) PublishThemeChange(_ context.Context, env model.EventEnvelope) error {
	return c.record(env)
}
func (c *recordingChannel) PublishSettingsChange(_ context.Context, env model.EventEnvelope) error {
	return c.record(env)
}
func (c *recordingChannel) PublishChatMessage(_ context.Context, env model.EventEnvelope) error {
	return c.record(env)
}
func (c *recordingChannel) PublishContentSuggestion(_ context.Context, env model.EventEnvelope) error {
	return c.record(env)
}

type stubHealth struct {
	mu        sync.Mutex
	healthy   bool
	probed    int
	unhealthy int
}

func (h *stubHealth) EnsureFreshProbe(_ context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.probed++
}

func (h *stubHealth) Healthy() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.healthy
}

func (h *stubHealth) MarkUnhealthy() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.healthy = false
	h.unhealthy++
}

func (h *stubHealth) Snapshot() (bool, time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.healthy, time.Time{}
}

type stubPresence struct {
	users map[string][]string
}

func (p *stubPresence) ConnectedUsers(roomID string) []string {
	return p.users[roomID]
}

func (p *stubPresence) IsOnline(userID string) bool {
	for _, users := range p.users {
		for _, u := range users {
			if u == userID {
				return true
			}
		}
	}
	return false
}

func (p *stubPresence) ConnectionStats() (int, map[string]int) {
	perRoom := make(map[string]int, len(p.users))
	total := 0
	for room, users := range p.users {
		perRoom[room] = len(users)
		total += len(users)
	}
	return total, perRoom
}

type DistributorUnitSuite struct {
	suite.Suite
}

func voteEnvelope(t provider.T) model.EventEnvelope {
	env, err := model.NewEnvelope(model.EventVote, "123456", model.VotePayload{
		UserID: "user-1",
		ItemID: "item-1",
	})
	assert.NoError(t, err)
	return env
}

func (s *DistributorUnitSuite) TestPublish(t provider.T) {
	t.Parallel()

	t.Run("Should deliver to both channels when healthy", func(t provider.T) {
		direct := &recordingChannel{}
		managed := &recordingChannel{}
		health := &stubHealth{healthy: true}
		d := New(direct, managed, health, &stubPresence{})

		d.Publish(context.Background(), voteEnvelope(t))

		assert.Len(t, direct.Received(), 1)
		assert.Len(t, managed.Received(), 1)
		assert.Equal(t, 1, health.probed)
	})

	t.Run("Should skip the managed channel while unhealthy", func(t provider.T) {
		direct := &recordingChannel{}
		managed := &recordingChannel{}
		health := &stubHealth{healthy: false}
		d := New(direct, managed, health, &stubPresence{})

		d.Publish(context.Background(), voteEnvelope(t))

		assert.Len(t, direct.Received(), 1)
		assert.Empty(t, managed.Received())
	})

	t.Run("Should keep the direct channel alive when managed fails", func(t provider.T) {
		direct := &recordingChannel{}
		managed := &recordingChannel{err: errors.New("rejected")}
		health := &stubHealth{healthy: true}
		d := New(direct, managed, health, &stubPresence{})

		d.Publish(context.Background(), voteEnvelope(t))

		assert.Len(t, direct.Received(), 1)
		assert.Empty(t, managed.Received())
		assert.Equal(t, 0, health.unhealthy)
	})

	t.Run("Should trip the health flag on a systemic managed failure", func(t provider.T) {
		direct := &recordingChannel{}
		managed := &recordingChannel{err: &url.Error{Op: "Post", URL: "https://x", Err: errors.New("refused")}}
		health := &stubHealth{healthy: true}
		d := New(direct, managed, health, &stubPresence{})

		d.Publish(context.Background(), voteEnvelope(t))

		assert.Len(t, direct.Received(), 1)
		assert.Equal(t, 1, health.unhealthy)
	})

	t.Run("Should keep accepting publishes when direct fails", func(t provider.T) {
		direct := &recordingChannel{err: errors.New("no sockets")}
		managed := &recordingChannel{}
		health := &stubHealth{healthy: true}
		d := New(direct, managed, health, &stubPresence{})

		d.Publish(context.Background(), voteEnvelope(t))

		assert.Len(t, managed.Received(), 1)
	})

	t.Run("Should drop an unknown event kind", func(t provider.T) {
		direct := &recordingChannel{}
		managed := &recordingChannel{}
		health := &stubHealth{healthy: true}
		d := New(direct, managed, health, &stubPresence{})

		d.Publish(context.Background(), model.EventEnvelope{Kind: "unknown", RoomID: "123456"})

		assert.Empty(t, direct.Received())
		assert.Empty(t, managed.Received())
		assert.Equal(t, 0, health.probed)
	})
}

func (s *DistributorUnitSuite) TestStatus(t provider.T) {
	t.Parallel()

	t.Run("Should report managed as effective primary while healthy", func(t provider.T) {
		d := New(&recordingChannel{}, &recordingChannel{}, &stubHealth{healthy: true}, &stubPresence{})

		st := d.Status()

		assert.True(t, st.PrimaryHealthy)
		assert.Equal(t, "managed", st.EffectivePrimary)
	})

	t.Run("Should fall back to direct in the report when unhealthy", func(t provider.T) {
		d := New(&recordingChannel{}, &recordingChannel{}, &stubHealth{healthy: false}, &stubPresence{})

		st := d.Status()

		assert.False(t, st.PrimaryHealthy)
		assert.Equal(t, "direct", st.EffectivePrimary)
	})
}

func (s *DistributorUnitSuite) TestPresence(t provider.T) {
	t.Parallel()

	t.Run("Should answer presence from the direct channel", func(t provider.T) {
		presence := &stubPresence{users: map[string][]string{
			"123456": {"a", "b"},
		}}
		d := New(&recordingChannel{}, &recordingChannel{}, &stubHealth{healthy: true}, presence)

		assert.ElementsMatch(t, []string{"a", "b"}, d.ConnectedUsers("123456"))
		assert.True(t, d.IsOnline("a"))
		assert.False(t, d.IsOnline("z"))

		total, perRoom := d.ConnectionStats()
		assert.Equal(t, 2, total)
		assert.Equal(t, 2, perRoom["123456"])
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(DistributorUnitSuite))
}
