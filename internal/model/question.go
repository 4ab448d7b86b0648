package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Question struct {
	ID             uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	PaperID        uint           `json:"paper_id" gorm:"not null;index;uniqueIndex:idx_question_paper_number"`
	Paper          Paper          `json:"paper,omitempty" gorm:"foreignKey:PaperID"`
	QuestionNumber int            `json:"question_number" gorm:"not null;uniqueIndex:idx_question_paper_number"`
	Stem           string         `json:"stem" gorm:"type:text;not null"`
	Explanation    string         `json:"explanation,omitempty" gorm:"type:text"` // optional, shown at review time
	Topic          string         `json:"topic,omitempty" gorm:"size:255"`
	Difficulty     string         `json:"difficulty,omitempty" gorm:"size:20"` // "easy", "medium", "hard"
	Options        []AnswerOption `json:"options,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
