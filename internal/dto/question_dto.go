package dto

import (
	"time"

	"github.com/google/uuid"
)

// OptionCreateDTO is one answer option in an admin question payload.
type OptionCreateDTO struct {
	Label     string `json:"label" binding:"required,max=5"`
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionCreateDTO struct {
	PaperID        uint              `json:"paper_id" binding:"required"`
	QuestionNumber int               `json:"question_number" binding:"required,min=1"`
	Stem           string            `json:"stem" binding:"required"`
	Explanation    string            `json:"explanation"`
	Topic          string            `json:"topic"`
	Difficulty     string            `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Options        []OptionCreateDTO `json:"options" binding:"required,min=2,dive"`
	TopicIDs       []uint            `json:"topic_ids"`
}

type QuestionUpdateDTO struct {
	PaperID        uint              `json:"paper_id" binding:"required"`
	QuestionNumber int               `json:"question_number" binding:"required,min=1"`
	Stem           string            `json:"stem" binding:"required"`
	Explanation    string            `json:"explanation"`
	Topic          string            `json:"topic"`
	Difficulty     string            `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Options        []OptionCreateDTO `json:"options" binding:"omitempty,min=2,dive"`
	TopicIDs       []uint            `json:"topic_ids"`
}

// AdminOptionDTO is the trusted projection of an option, correctness included.
// Only admin endpoints may serve it.
type AdminOptionDTO struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	Text      string    `json:"text"`
	IsCorrect bool      `json:"is_correct"`
}

type TopicRefDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type AdminQuestionDTO struct {
	ID             uuid.UUID        `json:"id"`
	PaperID        uint             `json:"paper_id"`
	QuestionNumber int              `json:"question_number"`
	Stem           string           `json:"stem"`
	Explanation    string           `json:"explanation,omitempty"`
	Topic          string           `json:"topic,omitempty"`
	Difficulty     string           `json:"difficulty,omitempty"`
	Options        []AdminOptionDTO `json:"options"`
	Topics         []TopicRefDTO    `json:"topics"`
	CreatedAt      time.Time        `json:"created_at"`
}
