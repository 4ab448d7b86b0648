package model

import "time"

type Subject struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ExamLevelID uint      `json:"exam_level_id" gorm:"not null;index;uniqueIndex:idx_subject_level_code"`
	ExamLevel   ExamLevel `json:"exam_level,omitempty" gorm:"foreignKey:ExamLevelID"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Code        string    `json:"code" gorm:"size:20;not null;uniqueIndex:idx_subject_level_code"` // "MATH", "ENG", ...
	Papers      []Paper   `json:"papers,omitempty" gorm:"foreignKey:SubjectID"`
	CreatedAt   time.Time `json:"created_at"`
}
