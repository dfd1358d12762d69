package db

import (
	"context"
	"fmt"

	"github.com/sidhant-sriv/roomshare-api/realtime"
	"gorm.io/gorm"
)

// Notifier publishes change events through Postgres NOTIFY so that every API
// instance running a realtime.Listener receives them.
type Notifier struct {
	DB      *gorm.DB
	Channel string
}

func (n *Notifier) Publish(ctx context.Context, ev realtime.Event) error {
	channel := n.Channel
	if channel == "" {
		channel = realtime.NotifyChannel
	}
	payload, err := realtime.EncodeEvent(ev)
	if err != nil {
		return err
	}
	if err := n.DB.WithContext(ctx).Exec("SELECT pg_notify(?, ?)", channel, string(payload)).Error; err != nil {
		return fmt.Errorf("pg_notify %s: %w", channel, err)
	}
	return nil
}
