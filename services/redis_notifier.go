package services

import (
	"ClassFeed/models"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisChannelPrefix = "classfeed:"

// RedisNotifier fans events out to every instance of the service through
// Redis pub/sub. Each instance relays what it receives into its local hub.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func redisChannel(course, class string) string {
	return redisChannelPrefix + models.ChannelKey(course, class)
}

func (n *RedisNotifier) Publish(ctx context.Context, event models.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := n.client.Publish(ctx, redisChannel(event.Course, event.Class), payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Relay forwards events published by any instance to sink until ctx is done.
func (n *RedisNotifier) Relay(ctx context.Context, sink Notifier) error {
	sub := n.client.PSubscribe(ctx, redisChannelPrefix+"*")
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe: %w", err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			event, err := decodeRelayedEvent(msg.Channel, msg.Payload)
			if err != nil {
				zap.L().Warn("dropping relayed event", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			if err := sink.Publish(ctx, event); err != nil {
				zap.L().Warn("relay delivery failed", zap.String("channel", msg.Channel), zap.Error(err))
			}
		}
	}
}

func decodeRelayedEvent(channel, payload string) (models.Event, error) {
	var event models.Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return models.Event{}, err
	}
	if want := strings.TrimPrefix(channel, redisChannelPrefix); event.ChannelKey() != want {
		return models.Event{}, fmt.Errorf("event for %q received on %q", event.ChannelKey(), want)
	}
	return event, nil
}
