package ports

import (
	"context"

	"github.com/layer-3/tokenasset/core"
)

// ActivityStore journals successful marketplace intents per user
type ActivityStore interface {
	Record(ctx context.Context, activity *core.Activity) error
	Recent(ctx context.Context, userID int64, limit int) ([]core.Activity, error)
	CountExchanged(ctx context.Context, userID int64) (int, error)
	Close() error
}
