package question

import (
	"github.com/google/uuid"

	"github.com/kotaeba/kotaeba-backend/internal/domain"
)

const maxQuestionLength = 1000

// SubmitInput holds the parameters for submitting a question.
type SubmitInput struct {
	Text string
}

// Validate checks all fields and collects all errors.
func (i *SubmitInput) Validate() error {
	var errs []domain.FieldError

	if i.Text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	} else if len(i.Text) > maxQuestionLength {
		errs = append(errs, domain.FieldError{Field: "text", Message: "too long (max 1000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ReportInput holds the parameters for reporting a question.
type ReportInput struct {
	QuestionID uuid.UUID
	Reason     string
}

// Validate checks all fields and collects all errors.
func (i *ReportInput) Validate() error {
	var errs []domain.FieldError

	if i.QuestionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "question_id", Message: "required"})
	}
	if i.Reason == "" {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "required"})
	} else if len(i.Reason) > 2000 {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "too long (max 2000)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
