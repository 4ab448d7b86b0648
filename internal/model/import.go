package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ImportStatusProcessing          = "processing"
	ImportStatusCompleted           = "completed"
	ImportStatusCompletedWithErrors = "completed_with_errors"
)

// Import records one CSV bulk upload of questions.
type Import struct {
	ID               uuid.UUID     `gorm:"type:uuid;primarykey" json:"id"`
	UserID           *uuid.UUID    `json:"user_id,omitempty" gorm:"type:uuid;index"`
	Source           string        `json:"source" gorm:"size:20;not null;default:'csv'"`
	OriginalFilename string        `json:"original_filename" gorm:"size:255"`
	Status           string        `json:"status" gorm:"size:30;not null"`
	TotalRows        int           `json:"total_rows"`
	ProcessedRows    int           `json:"processed_rows"`
	SuccessfulRows   int           `json:"successful_rows"`
	CompletedAt      *time.Time    `json:"completed_at,omitempty"`
	Errors           []ImportError `json:"errors,omitempty" gorm:"foreignKey:ImportID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time     `json:"created_at"`
}

func (i *Import) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ImportError is one failed row of an import; failures never abort the rest of
// the file.
type ImportError struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	ImportID  uuid.UUID `json:"import_id" gorm:"type:uuid;not null;index"`
	RowNumber int       `json:"row_number"`
	Message   string    `json:"message" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *ImportError) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
