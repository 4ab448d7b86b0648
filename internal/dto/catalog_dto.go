package dto

// Admin catalog payloads. Responses reuse the model types directly; the catalog
// carries nothing that needs hiding.

type ExamLevelCreateDTO struct {
	Code string `json:"code" binding:"required,max=20"`
	Name string `json:"name" binding:"required,max=100"`
}

type SubjectCreateDTO struct {
	ExamLevelID uint   `json:"exam_level_id" binding:"required"`
	Name        string `json:"name" binding:"required,max=100"`
	Code        string `json:"code" binding:"required,max=20"`
}

type TopicCreateDTO struct {
	SubjectID   uint   `json:"subject_id" binding:"required"`
	Name        string `json:"name" binding:"required,max=150"`
	Code        string `json:"code" binding:"omitempty,max=50"`
	Description string `json:"description"`
}

type PaperCreateDTO struct {
	SubjectID   uint   `json:"subject_id" binding:"required"`
	Year        int    `json:"year" binding:"required,min=1900,max=2100"`
	PaperNumber int    `json:"paper_number" binding:"required,min=1"`
	Description string `json:"description"`
}
