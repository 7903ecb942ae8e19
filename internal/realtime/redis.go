package realtime

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"swasthsetu/internal/models/db_models"
)

const AlertChannel = "alerts"

// RedisHub relays alerts through Redis pub/sub so every API instance sees
// alerts created by any other.
type RedisHub struct {
	client *redis.Client
	log    logrus.FieldLogger
}

func NewRedisHub(client *redis.Client, log logrus.FieldLogger) *RedisHub {
	return &RedisHub{client: client, log: log}
}

func (h *RedisHub) Publish(ctx context.Context, alert db_models.Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	return h.client.Publish(ctx, AlertChannel, payload).Err()
}

func (h *RedisHub) Subscribe(ctx context.Context, filter func(db_models.Alert) bool) (*Subscription, error) {
	pubsub := h.client.Subscribe(ctx, AlertChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	sub := newSubscription(filter, func() {
		if err := pubsub.Close(); err != nil {
			h.log.WithError(err).Warn("closing alert subscription")
		}
	})

	go func() {
		messages := pubsub.Channel()
		for {
			select {
			case <-sub.done:
				return
			case msg, ok := <-messages:
				if !ok {
					sub.Close()
					return
				}
				var alert db_models.Alert
				if err := json.Unmarshal([]byte(msg.Payload), &alert); err != nil {
					h.log.WithError(err).Warn("dropping malformed alert payload")
					continue
				}
				sub.offer(alert)
			}
		}
	}()

	closeOnDone(ctx, sub)
	return sub, nil
}
