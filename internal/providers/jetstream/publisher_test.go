package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fhd3v0p/fsr-backend/internal/domain"
	"github.com/fhd3v0p/fsr-backend/internal/mocks"
	"github.com/fhd3v0p/fsr-backend/internal/providers/jetstream"
)

var testConfig = jetstream.Config{
	URL:            "nats://localhost:4222",
	StreamName:     "FSR_LEDGER_EVENTS",
	SubjectPrefix:  "fsr.ledger",
	MaxReconnects:  3,
	ReconnectWait:  time.Second,
	ConnectionName: "fsr-api",
}

type testPublisherMocks struct {
	natsJS *mocks.MockNatsJetStream
	conn   *mocks.MockNatsConn
	js     *mocks.MockJetStream
}

func setupTestPublisherMocks(t *testing.T) *testPublisherMocks {
	ctrl := gomock.NewController(t)
	return &testPublisherMocks{
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		conn:   mocks.NewMockNatsConn(ctrl),
		js:     mocks.NewMockJetStream(ctrl),
	}
}

func TestNewPublisher(t *testing.T) {
	t.Run("ensures the event stream", func(t *testing.T) {
		tm := setupTestPublisherMocks(t)
		tm.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(tm.conn, tm.js, nil)
		tm.js.EXPECT().EnsureStream(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cfg natsjs.StreamConfig) error {
				assert.Equal(t, "FSR_LEDGER_EVENTS", cfg.Name)
				assert.Equal(t, []string{"fsr.ledger.>"}, cfg.Subjects)
				assert.Equal(t, 2*time.Minute, cfg.Duplicates)
				return nil
			})

		pub, err := jetstream.NewPublisher(context.Background(), testConfig, tm.natsJS, zap.NewNop())
		require.NoError(t, err)
		assert.NotNil(t, pub)
	})

	t.Run("connection failure", func(t *testing.T) {
		tm := setupTestPublisherMocks(t)
		tm.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(nil, nil, errors.New("no servers available"))

		_, err := jetstream.NewPublisher(context.Background(), testConfig, tm.natsJS, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("stream failure closes the connection", func(t *testing.T) {
		tm := setupTestPublisherMocks(t)
		tm.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(tm.conn, tm.js, nil)
		tm.js.EXPECT().EnsureStream(gomock.Any(), gomock.Any()).Return(errors.New("insufficient resources"))
		tm.conn.EXPECT().Close()

		_, err := jetstream.NewPublisher(context.Background(), testConfig, tm.natsJS, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestPublishEvent(t *testing.T) {
	tm := setupTestPublisherMocks(t)
	tm.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(tm.conn, tm.js, nil)
	tm.js.EXPECT().EnsureStream(gomock.Any(), gomock.Any()).Return(nil)

	pub, err := jetstream.NewPublisher(context.Background(), testConfig, tm.natsJS, zap.NewNop())
	require.NoError(t, err)

	event := &domain.Event{
		ID:         "01J1Q5Z6M0000000000000000A",
		Type:       domain.EventTypeReferralCredited,
		UserID:     2001,
		OccurredAt: time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC),
	}

	tm.js.EXPECT().Publish(gomock.Any(), "fsr.ledger.referral_credited", gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, data []byte, opts ...natsjs.PublishOpt) (*natsjs.PubAck, error) {
			var decoded domain.Event
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, event.ID, decoded.ID)
			assert.Equal(t, int64(2001), decoded.UserID)
			assert.Len(t, opts, 1)
			return &natsjs.PubAck{Stream: "FSR_LEDGER_EVENTS", Sequence: 1}, nil
		})
	require.NoError(t, pub.PublishEvent(context.Background(), event))

	tm.js.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
	assert.Error(t, pub.PublishEvent(context.Background(), event))

	tm.conn.EXPECT().Drain().Return(nil)
	pub.Close()
}
