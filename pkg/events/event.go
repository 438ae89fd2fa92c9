package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "QUESTION_ANSWERED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation used by the constructors below.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewQuestionAnswered is emitted after the answer pipeline completes a turn.
func NewQuestionAnswered(tableID, question string, documentsUsed int) Event {
	return BaseEvent{
		Type: "QUESTION_ANSWERED",
		Data: map[string]interface{}{
			"table_id":       tableID,
			"question":       question,
			"documents_used": documentsUsed,
		},
		OccurredAt: time.Now(),
	}
}

// NewKnowledgeIndexed is emitted when a question/answer pair lands in the
// search index.
func NewKnowledgeIndexed(docID, question string) Event {
	return BaseEvent{
		Type: "KNOWLEDGE_INDEXED",
		Data: map[string]interface{}{
			"doc_id":   docID,
			"question": question,
		},
		OccurredAt: time.Now(),
	}
}

// NewUserRegistered is emitted after a successful registration.
func NewUserRegistered(userID, username string) Event {
	return BaseEvent{
		Type: "USER_REGISTERED",
		Data: map[string]interface{}{
			"user_id":  userID,
			"username": username,
		},
		OccurredAt: time.Now(),
	}
}
