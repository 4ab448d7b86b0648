package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuestionTopic links a question to a curated topic of its subject.
type QuestionTopic struct {
	ID         uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	QuestionID uuid.UUID `json:"question_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_question_topic_pair"`
	TopicID    uint      `json:"topic_id" gorm:"not null;uniqueIndex:idx_question_topic_pair"`
	Topic      Topic     `json:"topic,omitempty" gorm:"foreignKey:TopicID"`
	CreatedAt  time.Time `json:"created_at"`
}

func (qt *QuestionTopic) BeforeCreate(tx *gorm.DB) error {
	if qt.ID == uuid.Nil {
		qt.ID = uuid.New()
	}
	return nil
}
