package model

import "time"

// ExamLevel is the top of the catalog hierarchy, e.g. "BECE" or "WASSCE".
type ExamLevel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Code      string    `json:"code" gorm:"size:20;not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Subjects  []Subject `json:"subjects,omitempty" gorm:"foreignKey:ExamLevelID"`
	CreatedAt time.Time `json:"created_at"`
}
