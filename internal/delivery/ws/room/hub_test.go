package ws_room

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/reelmatch/core/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type HubUnitSuite struct {
	suite.Suite
}

func newTestClient(roomCode, userID string, buffer int) *Client {
	return &Client{
		send:     make(chan []byte, buffer),
		userID:   userID,
		roomCode: roomCode,
	}
}

func (s *HubUnitSuite) TestBroadcast(t provider.T) {
	t.Parallel()

	t.Run("Should deliver an envelope to every client in the room", func(t provider.T) {
		hub := NewHub()
		a := newTestClient("123456", "user-a", 1)
		b := newTestClient("123456", "user-b", 1)
		outsider := newTestClient("999999", "user-c", 1)
		hub.RegisterClient(a)
		hub.RegisterClient(b)
		hub.RegisterClient(outsider)

		env, err := model.NewEnvelope(model.EventVote, "123456", model.VotePayload{UserID: "user-a"})
		assert.NoError(t, err)

		assert.NoError(t, hub.PublishVote(context.Background(), env))

		for _, c := range []*Client{a, b} {
			data := <-c.send
			var got model.EventEnvelope
			assert.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, model.EventVote, got.Kind)
			assert.Equal(t, "123456", got.RoomID)
		}
		assert.Empty(t, outsider.send)
	})

	t.Run("Should drop a slow consumer instead of stalling the room", func(t provider.T) {
		hub := NewHub()
		slow := newTestClient("123456", "user-slow", 1)
		hub.RegisterClient(slow)

		env, err := model.NewEnvelope(model.EventChatMessage, "123456", model.ChatMessagePayload{Text: "hi"})
		assert.NoError(t, err)

		// First publish fills the buffer, second overflows it.
		assert.NoError(t, hub.PublishChatMessage(context.Background(), env))
		assert.NoError(t, hub.PublishChatMessage(context.Background(), env))

		assert.Empty(t, hub.ConnectedUsers("123456"))
	})
}

func (s *HubUnitSuite) TestRegistry(t provider.T) {
	t.Parallel()

	t.Run("Should forget a removed client and empty rooms", func(t provider.T) {
		hub := NewHub()
		client := newTestClient("123456", "user-a", 1)
		hub.RegisterClient(client)

		hub.RemoveClient(client)

		assert.Empty(t, hub.ConnectedUsers("123456"))
		total, perRoom := hub.ConnectionStats()
		assert.Zero(t, total)
		assert.Empty(t, perRoom)
	})

	t.Run("Should survive removing the same client twice", func(t provider.T) {
		hub := NewHub()
		client := newTestClient("123456", "user-a", 1)
		hub.RegisterClient(client)

		hub.RemoveClient(client)
		hub.RemoveClient(client)
	})
}

func (s *HubUnitSuite) TestPresence(t provider.T) {
	t.Parallel()

	t.Run("Should answer presence queries across rooms", func(t provider.T) {
		hub := NewHub()
		hub.RegisterClient(newTestClient("111111", "user-a", 1))
		hub.RegisterClient(newTestClient("111111", "user-b", 1))
		hub.RegisterClient(newTestClient("222222", "user-c", 1))

		assert.ElementsMatch(t, []string{"user-a", "user-b"}, hub.ConnectedUsers("111111"))
		assert.True(t, hub.IsOnline("user-c"))
		assert.False(t, hub.IsOnline("user-z"))

		total, perRoom := hub.ConnectionStats()
		assert.Equal(t, 3, total)
		assert.Equal(t, 2, perRoom["111111"])
		assert.Equal(t, 1, perRoom["222222"])
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(HubUnitSuite))
}
