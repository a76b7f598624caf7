package moderation

import (
	"strings"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

// classifyVerdict maps the judge's free-text response to a status.
//
// The judge is prompted to answer with a single word, but models pad their
// answers, so this is a substring match, case-insensitive. NG takes priority
// over REVIEW when both appear; anything else counts as approval.
func classifyVerdict(verdict string) domain.ModerationStatus {
	upper := strings.ToUpper(verdict)
	switch {
	case strings.Contains(upper, "NG"):
		return domain.StatusRejected
	case strings.Contains(upper, "REVIEW"):
		return domain.StatusPendingReview
	default:
		return domain.StatusApproved
	}
}
