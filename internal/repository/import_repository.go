package repository

import (
	"github.com/google/uuid"
	"github.com/kofiasare/pasco/internal/model"
	"gorm.io/gorm"
)

type ImportRepository interface {
	Create(imp *model.Import) error
	Update(imp *model.Import) error
	AddError(importID uuid.UUID, rowNumber int, message string) error
	FindByID(id uuid.UUID) (*model.Import, error)
}

type importRepository struct {
	db *gorm.DB
}

func NewImportRepository(db *gorm.DB) ImportRepository {
	return &importRepository{db: db}
}

func (r *importRepository) Create(imp *model.Import) error {
	return r.db.Create(imp).Error
}

func (r *importRepository) Update(imp *model.Import) error {
	return r.db.Save(imp).Error
}

func (r *importRepository) AddError(importID uuid.UUID, rowNumber int, message string) error {
	return r.db.Create(&model.ImportError{
		ImportID:  importID,
		RowNumber: rowNumber,
		Message:   message,
	}).Error
}

func (r *importRepository) FindByID(id uuid.UUID) (*model.Import, error) {
	var imp model.Import
	err := r.db.
		Preload("Errors", func(db *gorm.DB) *gorm.DB { return db.Order("row_number ASC") }).
		First(&imp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &imp, nil
}
