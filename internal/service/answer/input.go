package answer

import (
	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

const maxAnswerLength = 2000

// SubmitInput holds the parameters for submitting an answer.
type SubmitInput struct {
	QuestionID uuid.UUID
	Text       string
}

// Validate checks all fields and collects all errors.
func (i *SubmitInput) Validate() error {
	var errs []domain.FieldError

	if i.QuestionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "question_id", Message: "required"})
	}
	if i.Text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	} else if len(i.Text) > maxAnswerLength {
		errs = append(errs, domain.FieldError{Field: "text", Message: "too long (max 2000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
