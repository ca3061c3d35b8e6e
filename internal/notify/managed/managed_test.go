package notify_managed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reelmatch/core/internal/config"
	"github.com/reelmatch/core/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type ManagedPublisherUnitSuite struct {
	suite.Suite
}

func testConfig(endpoint string) config.Realtime {
	return config.Realtime{
		ManagedEndpoint: endpoint,
		ManagedAPIKey:   "test-key",
		ProbeInterval:   30 * time.Second,
		ProbeTimeout:    time.Second,
		PublishTimeout:  time.Second,
	}
}

func voteEnvelope(t provider.T) model.EventEnvelope {
	env, err := model.NewEnvelope(model.EventVote, "123456", model.VotePayload{
		UserID: "user-1",
		ItemID: "item-1",
	})
	assert.NoError(t, err)
	return env
}

func (s *ManagedPublisherUnitSuite) TestPublish(t provider.T) {
	t.Parallel()

	t.Run("Should post the mutation with the api key", func(t provider.T) {
		var gotRequest struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		var gotAPIKey string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAPIKey = r.Header.Get("x-api-key")
			_ = json.NewDecoder(r.Body).Decode(&gotRequest)
			_, _ = w.Write([]byte(`{"data":{"publishEvent":{"roomId":"123456"}}}`))
		}))
		defer server.Close()

		p := New(testConfig(server.URL))
		env := voteEnvelope(t)

		err := p.PublishVote(context.Background(), env)

		assert.NoError(t, err)
		assert.Equal(t, "test-key", gotAPIKey)
		assert.Contains(t, gotRequest.Query, "publishEvent")
		assert.Equal(t, "123456", gotRequest.Variables["roomId"])
		assert.Equal(t, model.EventVote, gotRequest.Variables["kind"])
	})

	t.Run("Should reject on a non-2xx response", func(t provider.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		p := New(testConfig(server.URL))

		err := p.PublishVote(context.Background(), voteEnvelope(t))

		assert.ErrorIs(t, err, ErrPublishRejected)
	})

	t.Run("Should reject when the response carries GraphQL errors", func(t provider.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"errors":[{"message":"unauthorized"}]}`))
		}))
		defer server.Close()

		p := New(testConfig(server.URL))

		err := p.PublishVote(context.Background(), voteEnvelope(t))

		assert.ErrorIs(t, err, ErrPublishRejected)
		assert.ErrorContains(t, err, "unauthorized")
	})

	t.Run("Should fail immediately when disabled", func(t provider.T) {
		p := New(testConfig("not a url"))

		assert.True(t, p.Disabled())

		err := p.PublishVote(context.Background(), voteEnvelope(t))
		assert.ErrorIs(t, err, ErrChannelDisabled)
	})
}

func (s *ManagedPublisherUnitSuite) TestProbe(t provider.T) {
	t.Parallel()

	t.Run("Should succeed against a healthy endpoint", func(t provider.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"__typename":"Query"}}`))
		}))
		defer server.Close()

		p := New(testConfig(server.URL))

		assert.NoError(t, p.Probe(context.Background()))
	})

	t.Run("Should fail against an unreachable endpoint", func(t provider.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		p := New(testConfig(server.URL))

		assert.Error(t, p.Probe(context.Background()))
	})

	t.Run("Should fail when disabled", func(t provider.T) {
		p := New(testConfig(""))

		assert.ErrorIs(t, p.Probe(context.Background()), ErrChannelDisabled)
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(ManagedPublisherUnitSuite))
}
