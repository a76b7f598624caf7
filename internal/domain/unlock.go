package domain

import (
	"time"

	"github.com/google/uuid"
)

// QuestionUnlock records a paid question unlock. At most one unlock exists
// per (question, user) pair; a duplicate attempt is a conflict and must not
// grow the pool a second time.
type QuestionUnlock struct {
	ID         uuid.UUID
	QuestionID uuid.UUID
	UnlockedBy uuid.UUID
	Amount     int64
	CreatedAt  time.Time
}

// AnswerUnlock records a paid answer unlock, at most one per (answer, user).
type AnswerUnlock struct {
	ID         uuid.UUID
	AnswerID   uuid.UUID
	QuestionID uuid.UUID
	UnlockedBy uuid.UUID
	Amount     int64
	CreatedAt  time.Time
}
