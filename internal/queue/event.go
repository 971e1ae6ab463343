// Package queue defines message payloads exchanged over the message
// broker. Activity events are published by the HTTP layer after a core
// operation succeeds, never from inside the core itself.
package queue

// ActivityQueueName is the durable queue carrying marketplace activity.
const ActivityQueueName = "class.activity"

// Activity kinds carried on the queue.
const (
	KindClassCreated = "class.created"
	KindEventJoined  = "event.joined"
)

// ClassCreatedEvent is published when a new class listing is accepted.
// It carries enough information for downstream consumers to log or
// notify without querying the primary database.
type ClassCreatedEvent struct {
	Kind       string  `json:"kind"`
	ClassID    uint64  `json:"class_id"`
	Name       string  `json:"name"`
	Location   string  `json:"location"`
	Price      float64 `json:"price"`
	CategoryID uint64  `json:"category_id"`
	OwnerID    uint64  `json:"owner_id"`
	CreatedAt  string  `json:"created_at"`
}

// EventJoinedEvent is published when a user newly joins an event.
// Idempotent re-joins do not publish.
type EventJoinedEvent struct {
	Kind       string `json:"kind"`
	EventID    uint64 `json:"event_id"`
	EventTitle string `json:"event_title"`
	ClassID    uint64 `json:"class_id"`
	UserID     uint64 `json:"user_id"`
	UserName   string `json:"user_name"`
	JoinedAt   string `json:"joined_at"`
}
