package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/layer-3/tokenasset/core"
	"github.com/layer-3/tokenasset/ports"
)

const (
	TopicLogout   = "tokenasset.logout"
	TopicActivity = "tokenasset.activity"
)

// LogoutEvent represents a logout event
type LogoutEvent struct {
	SessionID string `json:"session_id"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
}

// ActivityEvent announces a marketplace intent accepted by the backend
type ActivityEvent struct {
	UserID    int64             `json:"user_id"`
	Username  string            `json:"username"`
	Kind      core.ActivityKind `json:"kind"`
	Reference string            `json:"reference,omitempty"`
	At        time.Time         `json:"at"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{publisher: publisher}
}

// PublishLogout publishes a logout event
func (p *WatermillPublisher) PublishLogout(ctx context.Context, session *core.Session) error {
	return p.publish(ctx, TopicLogout, LogoutEvent{
		SessionID: session.ID,
		UserID:    session.UserID,
		Username:  session.Username,
	})
}

// PublishActivity publishes a marketplace activity event
func (p *WatermillPublisher) PublishActivity(ctx context.Context, activity *core.Activity) error {
	return p.publish(ctx, TopicActivity, ActivityEvent{
		UserID:    activity.UserID,
		Username:  activity.Username,
		Kind:      activity.Kind,
		Reference: activity.Reference,
		At:        activity.CreatedAt,
	})
}

func (p *WatermillPublisher) publish(ctx context.Context, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
