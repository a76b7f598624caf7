package domain

import (
	"time"

	"github.com/google/uuid"
)

// Answer is a user's answer to a question. A user answers a given question
// at most once; the store enforces uniqueness on (QuestionID, AuthorID).
//
// At most one answer per question has IsBestAnswer set.
type Answer struct {
	ID           uuid.UUID
	QuestionID   uuid.UUID
	AuthorID     uuid.UUID
	Text         string
	Status       ModerationStatus
	IsBestAnswer bool
	Moderation   ModerationResult
	CreatedAt    time.Time
}
