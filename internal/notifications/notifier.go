// Package notifications provides real-time delivery of stored notifications.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"strings"

	"mural/internal/models"

	"github.com/redis/go-redis/v9"
)

const userChannelPrefix = "notifications:user:"

// Notifier publishes notification events into per-user Redis channels so
// every running instance can fan them out to its own websocket clients.
// All methods are safe to call with a nil Redis client.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishNotification sends a stored notification to its owner's channel.
func (n *Notifier) PublishNotification(ctx context.Context, notification *models.Notification) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	channel := userChannelPrefix + notification.UserID
	return n.rdb.Publish(ctx, channel, string(payload)).Err()
}

// StartPatternSubscriber subscribes to all per-user channels and calls
// onMessage with the target userID and raw payload for each event.
// It returns once the subscription is established; delivery runs until ctx
// is cancelled.
func (n *Notifier) StartPatternSubscriber(ctx context.Context, onMessage func(userID, payload string)) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, userChannelPrefix+"*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in notification subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					userID := strings.TrimPrefix(msg.Channel, userChannelPrefix)
					onMessage(userID, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
