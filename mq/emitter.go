package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const channel = "storefront-events"

// Event is a storefront notification: order placed, user registered, user
// logged out.
type Event struct {
	Name      string    `json:"name"`
	UserID    string    `json:"userId"`
	EntityID  string    `json:"entityId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Emitter publishes events to a Redis channel. With no client configured it
// logs and drops, so handlers never need to care whether a broker exists.
type Emitter struct {
	conn *redis.Client
}

func NewEmitter(conn *redis.Client) *Emitter {
	return &Emitter{conn: conn}
}

func (e *Emitter) Emit(ctx context.Context, name, userID, entityID string) {
	event := Event{
		Name:      name,
		UserID:    userID,
		EntityID:  entityID,
		CreatedAt: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event: %v", err)
		return
	}

	if e == nil || e.conn == nil {
		log.Printf("[Emit] %s user=%s entity=%s (no broker configured)", name, userID, entityID)
		return
	}

	if err := e.conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish event: %v", err)
	}
}

// StartWorker subscribes to the event channel and logs what arrives. It runs
// until the context is cancelled.
func (e *Emitter) StartWorker(ctx context.Context) {
	if e == nil || e.conn == nil {
		return
	}

	sub := e.conn.Subscribe(ctx, channel)
	defer sub.Close()
	ch := sub.Channel()

	log.Println("[EventWorker] Listening for storefront events...")
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[EventWorker] Failed to parse event: %v", err)
				continue
			}
			log.Printf("[EventWorker] Processing event=%+v", event)
		}
	}
}
