package model

import "time"

type Topic struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	SubjectID   uint      `json:"subject_id" gorm:"not null;index;uniqueIndex:idx_topic_subject_name"`
	Subject     Subject   `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Name        string    `json:"name" gorm:"size:150;not null;uniqueIndex:idx_topic_subject_name"`
	Code        string    `json:"code,omitempty" gorm:"size:50"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}
