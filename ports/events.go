package ports

import (
	"context"

	"github.com/layer-3/tokenasset/core"
)

// EventPublisher announces session and marketplace events to other services
type EventPublisher interface {
	PublishLogout(ctx context.Context, session *core.Session) error
	PublishActivity(ctx context.Context, activity *core.Activity) error
}
