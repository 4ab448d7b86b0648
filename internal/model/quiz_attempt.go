package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuizAttempt is one user's timed quiz session. It is open while CompletedAt is
// null and closed forever once grading sets it; that transition happens at most
// once per attempt.
type QuizAttempt struct {
	ID             uuid.UUID       `gorm:"type:uuid;primarykey" json:"id"`
	UserID         uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	ExamLevelID    uint            `json:"exam_level_id"`
	ExamLevel      ExamLevel       `json:"exam_level,omitempty" gorm:"foreignKey:ExamLevelID"`
	SubjectID      uint            `json:"subject_id"`
	Subject        Subject         `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	PaperID        *uint           `json:"paper_id,omitempty"` // nil means subject-wide sampling
	Paper          *Paper          `json:"paper,omitempty" gorm:"foreignKey:PaperID"`
	StartedAt      time.Time       `json:"started_at" gorm:"autoCreateTime"`
	ExpiresAt      *time.Time      `json:"expires_at,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	TotalQuestions int             `json:"total_questions" gorm:"not null"`
	Score          *int            `json:"score,omitempty"`
	Percent        *float64        `json:"percent,omitempty" gorm:"type:numeric(5,2)"`
	Answers        []AttemptAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (a *QuizAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
