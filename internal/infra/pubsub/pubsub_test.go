package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"authsvc/config"
	"authsvc/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newEvent() *service.AccountRegisteredEvent {
	return &service.AccountRegisteredEvent{
		RequestID:    "req-1",
		SubjectID:    "6f1c2b9e-3f0a-4d6e-9a52-1f3c7d2b8e40",
		Email:        "a@x.io",
		RegisteredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestLocalHTTPPublisher_PublishAccountRegistered(t *testing.T) {
	var (
		received  PushMessage
		requestID string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())
	defer publisher.Close()

	require.NoError(t, publisher.PublishAccountRegistered(context.Background(), newEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, localSubscription, received.Subscription)
	assert.NotEmpty(t, received.Message.MessageID)
	assert.Equal(t, eventTypeAccountRegistered, received.Message.Attributes["event_type"])
	assert.Equal(t, "req-1", received.Message.Attributes["request_id"])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var event service.AccountRegisteredEvent
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, *newEvent(), event)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())

	err := publisher.PublishAccountRegistered(context.Background(), newEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestLocalHTTPPublisher_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := publisher.PublishAccountRegistered(ctx, newEvent())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewEventPublisher(t *testing.T) {
	tests := []struct {
		name    string
		pubsub  *config.PubSubConfig
		wantErr bool
		want    any
	}{
		{name: "not configured", pubsub: nil, want: &noopPublisher{}},
		{name: "empty provider", pubsub: &config.PubSubConfig{}, want: &noopPublisher{}},
		{name: "local", pubsub: &config.PubSubConfig{Provider: ProviderLocal, LocalEndpoint: "http://127.0.0.1:9/push"}, want: &localHTTPPublisher{}},
		{name: "local without endpoint", pubsub: &config.PubSubConfig{Provider: ProviderLocal}, wantErr: true},
		{name: "google without project", pubsub: &config.PubSubConfig{Provider: ProviderGoogle, TopicID: "t"}, wantErr: true},
		{name: "google without topic", pubsub: &config.PubSubConfig{Provider: ProviderGoogle, ProjectID: "p"}, wantErr: true},
		{name: "unknown provider", pubsub: &config.PubSubConfig{Provider: "kafka"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)
			publisher, err := NewEventPublisher(PublisherParams{
				Lc:     lc,
				Ctx:    context.Background(),
				Config: &config.Config{PubSub: tt.pubsub},
				Logger: discardLogger(),
			})
			if tt.wantErr {
				assert.ErrorIs(t, err, config.ErrInvalidConfig)
				assert.Nil(t, publisher)
				return
			}

			require.NoError(t, err)
			assert.IsType(t, tt.want, publisher)
			lc.RequireStart().RequireStop()
		})
	}
}

func TestNoopPublisher(t *testing.T) {
	publisher := &noopPublisher{logger: discardLogger()}
	assert.NoError(t, publisher.PublishAccountRegistered(context.Background(), newEvent()))
	assert.NoError(t, publisher.Close())
}
