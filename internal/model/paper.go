package model

import "time"

// Paper is one past exam paper of a subject, identified by year and paper number.
type Paper struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	SubjectID   uint       `json:"subject_id" gorm:"not null;index;uniqueIndex:idx_paper_subject_year_number"`
	Subject     Subject    `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Year        int        `json:"year" gorm:"not null;uniqueIndex:idx_paper_subject_year_number"`
	PaperNumber int        `json:"paper_number" gorm:"not null;uniqueIndex:idx_paper_subject_year_number"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	Questions   []Question `json:"questions,omitempty" gorm:"foreignKey:PaperID"`
	CreatedAt   time.Time  `json:"created_at"`
}
