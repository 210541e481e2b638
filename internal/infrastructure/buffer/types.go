package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// Item is a habit write that could not reach Postgres and waits for replay.
// Completions are never enqueued; replaying one could violate the
// once-per-day invariant it depends on.
type Item struct {
	ID        string          `json:"id"`
	HabitID   string          `json:"habit_id"`
	Operation string          `json:"operation"`
	Data      json.RawMessage `json:"data,omitempty"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
