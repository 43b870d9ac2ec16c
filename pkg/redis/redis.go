package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ikkim/realty-review-backend/config"
	"github.com/ikkim/realty-review-backend/internal/app/model"
	"github.com/ikkim/realty-review-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"addr": cfg.Addr(),
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"addr": cfg.Addr(),
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully")
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection")
		return client.Close()
	}
	return nil
}

// NotificationPublisher fans stored notifications out to other server
// instances over a Redis pub/sub channel
type NotificationPublisher struct {
	client  *redis.Client
	channel string
}

func NewNotificationPublisher(client *redis.Client, channel string) *NotificationPublisher {
	return &NotificationPublisher{client: client, channel: channel}
}

// Push publishes the notification event; subscribers deliver it to connected clients
func (p *NotificationPublisher) Push(ctx context.Context, n *model.Notification, unreadCount int64) error {
	payload, err := EncodeNotificationEvent(n, unreadCount)
	if err != nil {
		return err
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification %d: %w", n.ID, err)
	}

	logger.Debug("Notification published", map[string]interface{}{
		"channel":         p.channel,
		"notification_id": n.ID,
		"recipient_id":    n.RecipientID,
	})
	return nil
}

// Subscribe delivers every event received on the channel to handle until ctx is done
func (p *NotificationPublisher) Subscribe(ctx context.Context, handle func(model.NotificationEvent)) error {
	sub := p.client.Subscribe(ctx, p.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", p.channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			event, err := DecodeNotificationEvent([]byte(msg.Payload))
			if err != nil {
				logger.Warn("Dropping malformed notification event", map[string]interface{}{
					"channel": p.channel,
					"error":   err.Error(),
				})
				continue
			}
			handle(event)
		}
	}
}

// EncodeNotificationEvent serializes the realtime payload
func EncodeNotificationEvent(n *model.Notification, unreadCount int64) ([]byte, error) {
	if n == nil {
		return nil, fmt.Errorf("notification is nil")
	}
	return json.Marshal(model.NewNotificationEvent(n, unreadCount))
}

// DecodeNotificationEvent parses a payload produced by EncodeNotificationEvent
func DecodeNotificationEvent(payload []byte) (model.NotificationEvent, error) {
	var event model.NotificationEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return event, fmt.Errorf("invalid notification event: %w", err)
	}
	if event.Notification == nil || event.Notification.RecipientID == 0 {
		return event, fmt.Errorf("invalid notification event: missing recipient")
	}
	if _, err := model.ParseNotificationType(string(event.Notification.Type)); err != nil {
		return event, fmt.Errorf("invalid notification event: %w", err)
	}
	return event, nil
}
