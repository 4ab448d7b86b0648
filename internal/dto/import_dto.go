package dto

import "github.com/google/uuid"

type ImportRowErrorDTO struct {
	RowNumber int    `json:"rowNumber"`
	Message   string `json:"message"`
}

// ImportReportDTO summarizes one CSV import run (or preview).
type ImportReportDTO struct {
	ImportID     *uuid.UUID          `json:"importId,omitempty"` // nil for previews
	Filename     string              `json:"filename"`
	TotalRows    int                 `json:"totalRows"`
	SuccessCount int                 `json:"successCount"`
	ErrorCount   int                 `json:"errorCount"`
	Errors       []ImportRowErrorDTO `json:"errors"`
}
