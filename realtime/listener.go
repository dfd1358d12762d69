package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// NotifyChannel is the Postgres NOTIFY channel events travel on when
// several API instances share one feed.
const NotifyChannel = "roomshare_changes"

// Listener relays Postgres notifications on a channel into a Publisher,
// usually the local Hub.
type Listener struct {
	URL     string
	Channel string
	Target  Publisher
	Logger  *slog.Logger
}

// Run blocks until ctx is done or the connection fails. There is no
// reconnect: a failure is returned to the caller.
func (l *Listener) Run(ctx context.Context) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	channel := l.Channel
	if channel == "" {
		channel = NotifyChannel
	}

	conn, err := pgx.Connect(ctx, l.URL)
	if err != nil {
		return fmt.Errorf("realtime listener connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
		return fmt.Errorf("realtime listener LISTEN %s: %w", channel, err)
	}
	logger.Info("realtime listener started", "channel", channel)

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("realtime listener wait: %w", err)
		}

		ev, err := DecodeEvent([]byte(n.Payload))
		if err != nil {
			logger.Warn("realtime listener dropped malformed payload", "error", err)
			continue
		}
		if err := l.Target.Publish(ctx, ev); err != nil {
			logger.Warn("realtime listener publish failed", "error", err)
		}
	}
}

// EncodeEvent is the NOTIFY payload format.
func EncodeEvent(ev Event) ([]byte, error) {
	return json.Marshal(ev)
}

func DecodeEvent(payload []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	if ev.Table == "" || ev.Type == "" {
		return Event{}, errors.New("decode event: missing type or table")
	}
	return ev, nil
}
