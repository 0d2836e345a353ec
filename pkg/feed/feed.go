package feed

import "context"

// MessageType defines the type of a feed message.
type MessageType string

const (
	// MessageTypeTip is for messages announcing a recorded tip.
	MessageTypeTip MessageType = "tip"

	// MessageTypeConfession is for messages announcing a new confession.
	MessageTypeConfession MessageType = "confession"
)

// Message represents a generic feed message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// TipPayload is the payload for a tip message. Totals are the subject's
// counters after the tip landed.
type TipPayload struct {
	SubjectID      string `json:"subject_id"`
	Amount         string `json:"amount"`
	AmountMicro    int64  `json:"amount_micro"`
	TotalTipsMicro int64  `json:"total_tips_micro"`
	TipCount       int64  `json:"tip_count"`
}

// ConfessionPayload is the payload for a confession message.
type ConfessionPayload struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// Publisher defines the interface for pushing messages to feed subscribers.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}

// NoOpPublisher is a publisher that does nothing.
type NoOpPublisher struct{}

// Publish does nothing.
func (p *NoOpPublisher) Publish(ctx context.Context, message Message) error {
	return nil
}
