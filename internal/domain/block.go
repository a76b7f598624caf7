package domain

import (
	"time"

	"github.com/google/uuid"
)

// BlockRelation records that one user blocked another. At most one relation
// exists per (blocker, blocked) pair. When the block originated from a
// question (block-by-question), the question id and its text at block time
// are kept so the blocked-questions view can be served without a join.
type BlockRelation struct {
	BlockerID        uuid.UUID
	BlockedUserID    uuid.UUID
	OriginQuestionID *uuid.UUID
	QuestionText     string
	Reason           string
	CreatedAt        time.Time
}
