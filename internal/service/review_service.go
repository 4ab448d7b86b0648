package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kofiasare/pasco/internal/apperr"
	"github.com/kofiasare/pasco/internal/dto"
	"github.com/kofiasare/pasco/internal/repository"
	"gorm.io/gorm"
)

// ReviewService assembles graded breakdowns of attempts. It only reads what
// grading stored; an open attempt reviews fine, with null selections and
// correctness.
type ReviewService interface {
	ListAttempts(userID uuid.UUID) ([]dto.AttemptSummaryDTO, error)
	ReviewAttempt(attemptID, userID uuid.UUID) (*dto.AttemptReviewDTO, error)
}

type reviewService struct {
	attemptRepo  repository.AttemptRepository
	questionRepo repository.QuestionRepository
}

func NewReviewService(attemptRepo repository.AttemptRepository, questionRepo repository.QuestionRepository) ReviewService {
	return &reviewService{attemptRepo: attemptRepo, questionRepo: questionRepo}
}

func (s *reviewService) ListAttempts(userID uuid.UUID) ([]dto.AttemptSummaryDTO, error) {
	rows, err := s.attemptRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("listing attempts: %w", err)
	}
	summaries := make([]dto.AttemptSummaryDTO, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, summaryFromRow(&rows[i]))
	}
	return summaries, nil
}

func (s *reviewService) ReviewAttempt(attemptID, userID uuid.UUID) (*dto.AttemptReviewDTO, error) {
	summary, err := s.attemptRepo.SummaryByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attempt %s", apperr.ErrNotFound, attemptID)
		}
		return nil, fmt.Errorf("loading attempt %s: %w", attemptID, err)
	}
	if summary.UserID != userID {
		return nil, fmt.Errorf("%w: attempt belongs to another user", apperr.ErrForbidden)
	}

	answers, err := s.attemptRepo.AnswersWithQuestions(attemptID)
	if err != nil {
		return nil, fmt.Errorf("loading answer slots: %w", err)
	}

	questionIDs := make([]uuid.UUID, len(answers))
	for i, answer := range answers {
		questionIDs[i] = answer.QuestionID
	}

	options, err := s.questionRepo.OptionsForQuestions(questionIDs)
	if err != nil {
		return nil, fmt.Errorf("loading options: %w", err)
	}
	topicRows, err := s.questionRepo.TopicsForQuestions(questionIDs)
	if err != nil {
		return nil, fmt.Errorf("loading topics: %w", err)
	}

	optionsByQuestion := make(map[uuid.UUID][]dto.GradedOptionDTO)
	topicsByQuestion := make(map[uuid.UUID][]dto.TopicRefDTO)
	for _, row := range topicRows {
		topicsByQuestion[row.QuestionID] = append(topicsByQuestion[row.QuestionID], dto.TopicRefDTO{
			ID:   row.TopicID,
			Name: row.Name,
		})
	}

	selectedByQuestion := make(map[uuid.UUID]uuid.UUID, len(answers))
	for _, answer := range answers {
		if answer.SelectedOptionID != nil {
			selectedByQuestion[answer.QuestionID] = *answer.SelectedOptionID
		}
	}
	for _, opt := range options {
		optionsByQuestion[opt.QuestionID] = append(optionsByQuestion[opt.QuestionID], dto.GradedOptionDTO{
			ID:         opt.ID,
			Label:      opt.Label,
			Text:       opt.Text,
			IsCorrect:  opt.IsCorrect,
			IsSelected: selectedByQuestion[opt.QuestionID] == opt.ID,
		})
	}

	questions := make([]dto.ReviewQuestionDTO, 0, len(answers))
	for _, answer := range answers {
		question := answer.Question
		questions = append(questions, dto.ReviewQuestionDTO{
			ID:               question.ID,
			QuestionNumber:   question.QuestionNumber,
			Stem:             question.Stem,
			Explanation:      question.Explanation,
			Topic:            question.Topic,
			Difficulty:       question.Difficulty,
			SelectedOptionID: answer.SelectedOptionID,
			IsCorrect:        answer.IsCorrect,
			Paper: dto.PaperRefDTO{
				ID:          question.Paper.ID,
				Year:        question.Paper.Year,
				PaperNumber: question.Paper.PaperNumber,
			},
			Options: optionsByQuestion[question.ID],
			Topics:  topicsByQuestion[question.ID],
		})
	}

	return &dto.AttemptReviewDTO{
		Attempt:   summaryFromRow(summary),
		Questions: questions,
	}, nil
}
