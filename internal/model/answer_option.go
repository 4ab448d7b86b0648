package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnswerOption is one choice of a multiple-choice question. Exactly one option
// per question carries IsCorrect = true.
type AnswerOption struct {
	ID         uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	QuestionID uuid.UUID `json:"question_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_option_question_label"`
	Label      string    `json:"label" gorm:"size:5;not null;uniqueIndex:idx_option_question_label"` // "A", "B", "C", "D"
	Text       string    `json:"text" gorm:"type:text;not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
}

func (o *AnswerOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
