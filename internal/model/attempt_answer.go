package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttemptAnswer is the per-question slot of an attempt. Created blank at attempt
// creation, filled exactly once in bulk by grading. SelectedOptionID and
// IsCorrect stay null until then; IsCorrect is always derived server-side.
type AttemptAnswer struct {
	ID               uuid.UUID  `gorm:"type:uuid;primarykey" json:"id"`
	AttemptID        uuid.UUID  `json:"attempt_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_attempt_question"`
	QuestionID       uuid.UUID  `json:"question_id" gorm:"type:uuid;not null;uniqueIndex:idx_attempt_question"`
	Question         Question   `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedOptionID *uuid.UUID `json:"selected_option_id,omitempty" gorm:"type:uuid"`
	IsCorrect        *bool      `json:"is_correct,omitempty"`
	AnsweredAt       *time.Time `json:"answered_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (a *AttemptAnswer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
