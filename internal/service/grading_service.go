package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/kofiasare/pasco/internal/apperr"
	"github.com/kofiasare/pasco/internal/dto"
	"github.com/kofiasare/pasco/internal/metrics"
	"github.com/kofiasare/pasco/internal/model"
	"github.com/kofiasare/pasco/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// GradingService validates a submission and finalizes the attempt. Submit is
// the only open-to-closed transition an attempt ever makes; a second call
// fails with ErrAlreadySubmitted rather than replaying the first result.
type GradingService interface {
	Submit(attemptID, userID uuid.UUID, answers []dto.AnswerSubmissionDTO) (*dto.AttemptSubmitResponseDTO, error)
}

type gradingService struct {
	attemptRepo  repository.AttemptRepository
	questionRepo repository.QuestionRepository
	db           *gorm.DB
}

func NewGradingService(attemptRepo repository.AttemptRepository, questionRepo repository.QuestionRepository, db *gorm.DB) GradingService {
	return &gradingService{attemptRepo: attemptRepo, questionRepo: questionRepo, db: db}
}

func (s *gradingService) Submit(attemptID, userID uuid.UUID, answers []dto.AnswerSubmissionDTO) (*dto.AttemptSubmitResponseDTO, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attempt %s", apperr.ErrNotFound, attemptID)
		}
		return nil, fmt.Errorf("loading attempt %s: %w", attemptID, err)
	}
	if attempt.UserID != userID {
		return nil, fmt.Errorf("%w: attempt belongs to another user", apperr.ErrForbidden)
	}
	if attempt.CompletedAt != nil {
		return nil, apperr.ErrAlreadySubmitted
	}
	if attempt.ExpiresAt != nil && attempt.ExpiresAt.Before(time.Now()) {
		metrics.AttemptsSubmitted.WithLabelValues("rejected").Inc()
		return nil, apperr.ErrExpired
	}

	questionIDs, err := s.attemptRepo.AnswerQuestionIDs(attemptID)
	if err != nil {
		return nil, fmt.Errorf("loading answer slots: %w", err)
	}
	if len(questionIDs) == 0 {
		// Creation guarantees slots exist; checked anyway.
		return nil, apperr.ErrNoQuestions
	}

	// Malformed entries (missing ids) are dropped silently; a later duplicate
	// for the same question wins, as with a map rebuilt from the raw list.
	answerMap := make(map[uuid.UUID]uuid.UUID, len(answers))
	for _, entry := range answers {
		if entry.QuestionID == uuid.Nil || entry.OptionID == uuid.Nil {
			continue
		}
		answerMap[entry.QuestionID] = entry.OptionID
	}

	options, err := s.questionRepo.OptionsForQuestions(questionIDs)
	if err != nil {
		return nil, fmt.Errorf("loading option sets: %w", err)
	}
	allowed := make(map[uuid.UUID]map[uuid.UUID]bool, len(questionIDs))
	correct := make(map[uuid.UUID]uuid.UUID, len(questionIDs))
	for _, opt := range options {
		if allowed[opt.QuestionID] == nil {
			allowed[opt.QuestionID] = make(map[uuid.UUID]bool)
		}
		allowed[opt.QuestionID][opt.ID] = true
		if opt.IsCorrect {
			correct[opt.QuestionID] = opt.ID
		}
	}

	// All validation happens before any write.
	for questionID, optionID := range answerMap {
		if !allowed[questionID][optionID] {
			return nil, apperr.ErrInvalidOption
		}
	}

	var score int
	var percent float64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		score = 0
		// Every slot is graded, answered or not: an omitted answer is wrong.
		for _, questionID := range questionIDs {
			var selected *uuid.UUID
			if optionID, ok := answerMap[questionID]; ok {
				id := optionID
				selected = &id
			}
			isCorrect := selected != nil && *selected == correct[questionID]
			if isCorrect {
				score++
			}
			res := tx.Model(&model.AttemptAnswer{}).
				Where("attempt_id = ? AND question_id = ?", attemptID, questionID).
				Updates(map[string]interface{}{
					"selected_option_id": selected,
					"is_correct":         isCorrect,
					"answered_at":        now,
				})
			if res.Error != nil {
				return res.Error
			}
		}

		percent = 0
		if attempt.TotalQuestions > 0 {
			percent = math.Round(float64(score)/float64(attempt.TotalQuestions)*100*100) / 100
		}

		// Conditional close: two racing submissions both reach here, but only
		// the one whose update matches the still-open row wins.
		res := tx.Model(&model.QuizAttempt{}).
			Where("id = ? AND completed_at IS NULL", attemptID).
			Updates(map[string]interface{}{
				"completed_at": now,
				"score":        score,
				"percent":      percent,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrAlreadySubmitted
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrAlreadySubmitted) {
			metrics.AttemptsSubmitted.WithLabelValues("rejected").Inc()
			return nil, err
		}
		log.Error().Err(err).Str("attemptID", attemptID.String()).Msg("Submit: grading transaction failed")
		return nil, fmt.Errorf("grading attempt %s: %w", attemptID, err)
	}

	metrics.AttemptsSubmitted.WithLabelValues("ok").Inc()
	log.Info().Str("attemptID", attemptID.String()).Int("score", score).
		Float64("percent", percent).Msg("Quiz attempt graded")

	return &dto.AttemptSubmitResponseDTO{
		AttemptID:      attemptID,
		Score:          score,
		TotalQuestions: attempt.TotalQuestions,
		Percent:        percent,
	}, nil
}
