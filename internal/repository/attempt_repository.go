package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/kofiasare/pasco/internal/model"
	"gorm.io/gorm"
)

// AttemptSummaryRow is an attempt joined with its subject, exam level and
// paper display labels.
type AttemptSummaryRow struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	StartedAt      time.Time
	CompletedAt    *time.Time
	ExpiresAt      *time.Time
	Score          *int
	Percent        *float64
	TotalQuestions int
	SubjectName    string
	ExamLevelName  string
	PaperYear      *int
	PaperNumber    *int
}

// AttemptRepository reads attempts and their answer slots. The multi-row
// writes (creation, grading) live in the services inside explicit
// transactions.
type AttemptRepository interface {
	FindByID(id uuid.UUID) (*model.QuizAttempt, error)
	SummaryByID(id uuid.UUID) (*AttemptSummaryRow, error)
	ListByUser(userID uuid.UUID) ([]AttemptSummaryRow, error)
	AnswerQuestionIDs(attemptID uuid.UUID) ([]uuid.UUID, error)
	AnswersWithQuestions(attemptID uuid.UUID) ([]model.AttemptAnswer, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) FindByID(id uuid.UUID) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	if err := r.db.First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

const attemptSummarySelect = `quiz_attempts.id, quiz_attempts.user_id, quiz_attempts.started_at,
quiz_attempts.completed_at, quiz_attempts.expires_at, quiz_attempts.score, quiz_attempts.percent,
quiz_attempts.total_questions, subjects.name AS subject_name, exam_levels.name AS exam_level_name,
papers.year AS paper_year, papers.paper_number AS paper_number`

func (r *attemptRepository) SummaryByID(id uuid.UUID) (*AttemptSummaryRow, error) {
	var row AttemptSummaryRow
	err := r.db.Model(&model.QuizAttempt{}).
		Select(attemptSummarySelect).
		Joins("LEFT JOIN subjects ON subjects.id = quiz_attempts.subject_id").
		Joins("LEFT JOIN exam_levels ON exam_levels.id = quiz_attempts.exam_level_id").
		Joins("LEFT JOIN papers ON papers.id = quiz_attempts.paper_id").
		Where("quiz_attempts.id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *attemptRepository) ListByUser(userID uuid.UUID) ([]AttemptSummaryRow, error) {
	var rows []AttemptSummaryRow
	err := r.db.Model(&model.QuizAttempt{}).
		Select(attemptSummarySelect).
		Joins("LEFT JOIN subjects ON subjects.id = quiz_attempts.subject_id").
		Joins("LEFT JOIN exam_levels ON exam_levels.id = quiz_attempts.exam_level_id").
		Joins("LEFT JOIN papers ON papers.id = quiz_attempts.paper_id").
		Where("quiz_attempts.user_id = ?", userID).
		Order("quiz_attempts.started_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *attemptRepository) AnswerQuestionIDs(attemptID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&model.AttemptAnswer{}).
		Where("attempt_id = ?", attemptID).
		Pluck("question_id", &ids).Error
	return ids, err
}

func (r *attemptRepository) AnswersWithQuestions(attemptID uuid.UUID) ([]model.AttemptAnswer, error) {
	var answers []model.AttemptAnswer
	err := r.db.
		Joins("JOIN questions ON questions.id = attempt_answers.question_id").
		Where("attempt_answers.attempt_id = ?", attemptID).
		Order("questions.question_number ASC").
		Preload("Question").
		Preload("Question.Paper").
		Find(&answers).Error
	return answers, err
}
