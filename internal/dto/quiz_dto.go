package dto

import (
	"time"

	"github.com/google/uuid"
)

// AttemptCreateDTO starts a new quiz attempt. Exactly one of SubjectID/PaperID
// is needed; when PaperID is given the subject is derived from the paper.
type AttemptCreateDTO struct {
	SubjectID       *uint `json:"subjectId"`
	PaperID         *uint `json:"paperId"`
	NumQuestions    int   `json:"numQuestions"`
	DurationMinutes int   `json:"durationMinutes"`
}

// PublicOptionDTO is the pre-submission projection of an option: the correct
// flag is deliberately absent. Never reuse GradedOptionDTO for this.
type PublicOptionDTO struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
	Text  string    `json:"text"`
}

// GradedOptionDTO is the review-time projection, correctness and selection
// included.
type GradedOptionDTO struct {
	ID         uuid.UUID `json:"id"`
	Label      string    `json:"label"`
	Text       string    `json:"text"`
	IsCorrect  bool      `json:"is_correct"`
	IsSelected bool      `json:"isSelected"`
}

type PaperRefDTO struct {
	ID          uint `json:"id"`
	Year        int  `json:"year"`
	PaperNumber int  `json:"paper_number"`
}

// AttemptQuestionDTO is one question as handed to the client at attempt
// creation: options shuffled, correctness hidden.
type AttemptQuestionDTO struct {
	ID             uuid.UUID         `json:"id"`
	QuestionNumber int               `json:"question_number"`
	Stem           string            `json:"stem"`
	Explanation    string            `json:"explanation,omitempty"`
	Topic          string            `json:"topic,omitempty"`
	Difficulty     string            `json:"difficulty,omitempty"`
	Paper          PaperRefDTO       `json:"paper"`
	Options        []PublicOptionDTO `json:"options"`
	Topics         []TopicRefDTO     `json:"topics"`
}

type AttemptCreateResponseDTO struct {
	AttemptID       uuid.UUID            `json:"attemptId"`
	StartedAt       time.Time            `json:"startedAt"`
	ExpiresAt       *time.Time           `json:"expiresAt,omitempty"`
	DurationMinutes int                  `json:"durationMinutes"`
	TotalQuestions  int                  `json:"totalQuestions"`
	SubjectID       uint                 `json:"subjectId"`
	PaperID         *uint                `json:"paperId,omitempty"`
	Questions       []AttemptQuestionDTO `json:"questions"`
}

// AnswerSubmissionDTO is one submitted answer. Entries with a missing question
// or option id are ignored rather than rejected.
type AnswerSubmissionDTO struct {
	QuestionID uuid.UUID `json:"questionId"`
	OptionID   uuid.UUID `json:"optionId"`
}

type AttemptSubmitDTO struct {
	Answers []AnswerSubmissionDTO `json:"answers" binding:"required"`
}

type AttemptSubmitResponseDTO struct {
	AttemptID      uuid.UUID `json:"attemptId"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percent        float64   `json:"percent"`
}

// AttemptSummaryDTO is one row of the attempt history list, with display
// labels joined in.
type AttemptSummaryDTO struct {
	ID             uuid.UUID  `json:"id"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	Score          *int       `json:"score,omitempty"`
	Percent        *float64   `json:"percent,omitempty"`
	TotalQuestions int        `json:"total_questions"`
	SubjectName    string     `json:"subject_name,omitempty"`
	ExamLevelName  string     `json:"exam_level_name,omitempty"`
	PaperYear      *int       `json:"year,omitempty"`
	PaperNumber    *int       `json:"paper_number,omitempty"`
}

// ReviewQuestionDTO is one fully assembled graded question in a review.
type ReviewQuestionDTO struct {
	ID               uuid.UUID         `json:"id"`
	QuestionNumber   int               `json:"question_number"`
	Stem             string            `json:"stem"`
	Explanation      string            `json:"explanation,omitempty"`
	Topic            string            `json:"topic,omitempty"`
	Difficulty       string            `json:"difficulty,omitempty"`
	SelectedOptionID *uuid.UUID        `json:"selected_option_id"`
	IsCorrect        *bool             `json:"is_correct"`
	Paper            PaperRefDTO       `json:"paper"`
	Options          []GradedOptionDTO `json:"options"`
	Topics           []TopicRefDTO     `json:"topics"`
}

type AttemptReviewDTO struct {
	Attempt   AttemptSummaryDTO   `json:"attempt"`
	Questions []ReviewQuestionDTO `json:"questions"`
}
