package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Operation is what happened to a record.
type Operation string

const (
	OpInsert Operation = "insert"
	OpDelete Operation = "delete"
)

// ChangeMessage announces a persisted change so other consumers can refresh.
type ChangeMessage struct {
	Operation  Operation       `json:"operation"`
	Kind       string          `json:"kind"`
	ID         string          `json:"id"`
	ParentID   string          `json:"parent_id,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	Record     json.RawMessage `json:"record,omitempty"`
}

// NewChangeMessage builds a message, serializing record when non-nil.
func NewChangeMessage(op Operation, kind, id string, record any) (*ChangeMessage, error) {
	msg := &ChangeMessage{Operation: op, Kind: kind, ID: id, OccurredAt: time.Now().UTC()}
	if record != nil {
		raw, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("marshal %s record: %w", kind, err)
		}
		msg.Record = raw
	}
	return msg, nil
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
