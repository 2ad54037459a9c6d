package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/layer-3/tokenasset/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscribe(t *testing.T, pubSub *gochannel.GoChannel, topic string) <-chan *message.Message {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	messages, err := pubSub.Subscribe(ctx, topic)
	require.NoError(t, err)
	return messages
}

func receive(t *testing.T, messages <-chan *message.Message) *message.Message {
	t.Helper()
	select {
	case msg := <-messages:
		msg.Ack()
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return nil
	}
}

func TestWatermillPublisher_PublishLogout(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()
	messages := subscribe(t, pubSub, TopicLogout)

	pub := NewWatermillPublisher(pubSub)
	err := pub.PublishLogout(context.Background(), &core.Session{ID: "sess-1", UserID: 3, Username: "alice"})
	require.NoError(t, err)

	var event LogoutEvent
	require.NoError(t, json.Unmarshal(receive(t, messages).Payload, &event))
	assert.Equal(t, LogoutEvent{SessionID: "sess-1", UserID: 3, Username: "alice"}, event)
}

func TestWatermillPublisher_PublishActivity(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()
	messages := subscribe(t, pubSub, TopicActivity)

	pub := NewWatermillPublisher(pubSub)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err := pub.PublishActivity(context.Background(), &core.Activity{
		UserID: 3, Username: "alice", Kind: core.ActivityAcceptOffer, Reference: "IDX", CreatedAt: at,
	})
	require.NoError(t, err)

	msg := receive(t, messages)
	assert.NotEmpty(t, msg.UUID)

	var event ActivityEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &event))
	assert.Equal(t, core.ActivityAcceptOffer, event.Kind)
	assert.Equal(t, "IDX", event.Reference)
	assert.True(t, at.Equal(event.At))
}
