package service

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/kofiasare/pasco/config"
	"github.com/kofiasare/pasco/internal/apperr"
	"github.com/kofiasare/pasco/internal/dto"
	"github.com/kofiasare/pasco/internal/metrics"
	"github.com/kofiasare/pasco/internal/model"
	"github.com/kofiasare/pasco/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptService creates attempts and serves their stored state. Creation is
// one transaction: the attempt row and one blank answer slot per sampled
// question become visible together or not at all.
type AttemptService interface {
	CreateAttempt(userID uuid.UUID, req dto.AttemptCreateDTO) (*dto.AttemptCreateResponseDTO, error)
	GetAttempt(attemptID uuid.UUID) (*model.QuizAttempt, error)
	GetAttemptSummary(attemptID uuid.UUID) (*dto.AttemptSummaryDTO, error)
}

type attemptService struct {
	sampler     SamplerService
	attemptRepo repository.AttemptRepository
	cfg         *config.Config
	db          *gorm.DB
}

func NewAttemptService(sampler SamplerService, attemptRepo repository.AttemptRepository, cfg *config.Config, db *gorm.DB) AttemptService {
	return &attemptService{sampler: sampler, attemptRepo: attemptRepo, cfg: cfg, db: db}
}

func (s *attemptService) CreateAttempt(userID uuid.UUID, req dto.AttemptCreateDTO) (*dto.AttemptCreateResponseDTO, error) {
	totalQuestions := req.NumQuestions
	if totalQuestions == 0 {
		totalQuestions = s.cfg.Quiz.DefaultQuestionCount
	}
	duration := req.DurationMinutes
	if duration == 0 {
		duration = s.cfg.Quiz.DefaultDurationMinutes
	}
	if totalQuestions <= 0 {
		return nil, fmt.Errorf("%w: numQuestions must be greater than zero", apperr.ErrInvalidArgument)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: durationMinutes must be greater than zero", apperr.ErrInvalidArgument)
	}

	sample, err := s.sampler.Sample(req.SubjectID, req.PaperID, totalQuestions)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(time.Duration(duration) * time.Minute)
	attempt := model.QuizAttempt{
		UserID:         userID,
		ExamLevelID:    sample.Subject.ExamLevelID,
		SubjectID:      sample.Subject.ID,
		ExpiresAt:      &expiresAt,
		TotalQuestions: totalQuestions,
	}
	if sample.Paper != nil {
		attempt.PaperID = &sample.Paper.ID
	}
	for _, question := range sample.Questions {
		attempt.Answers = append(attempt.Answers, model.AttemptAnswer{QuestionID: question.ID})
	}

	// One transaction for the attempt row plus its blank slots; a failure
	// anywhere rolls the whole creation back.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&attempt).Error
	})
	if err != nil {
		log.Error().Err(err).Uint("subjectID", sample.Subject.ID).Msg("CreateAttempt: transaction failed")
		return nil, fmt.Errorf("creating attempt: %w", err)
	}

	scope := "subject"
	if sample.Paper != nil {
		scope = "paper"
	}
	metrics.AttemptsCreated.WithLabelValues(scope).Inc()
	log.Info().Str("attemptID", attempt.ID.String()).Str("userID", userID.String()).
		Int("questions", totalQuestions).Int("durationMin", duration).Msg("Quiz attempt created")

	resp := &dto.AttemptCreateResponseDTO{
		AttemptID:       attempt.ID,
		StartedAt:       attempt.StartedAt,
		ExpiresAt:       attempt.ExpiresAt,
		DurationMinutes: duration,
		TotalQuestions:  totalQuestions,
		SubjectID:       sample.Subject.ID,
		PaperID:         attempt.PaperID,
		Questions:       buildAttemptQuestions(sample),
	}
	return resp, nil
}

// buildAttemptQuestions projects sampled questions into the public payload:
// options shuffled out of storage order and stripped of their correct flag.
func buildAttemptQuestions(sample *SampleResult) []dto.AttemptQuestionDTO {
	out := make([]dto.AttemptQuestionDTO, 0, len(sample.Questions))
	for _, question := range sample.Questions {
		options := make([]dto.PublicOptionDTO, 0, len(sample.OptionsByQuestion[question.ID]))
		for _, opt := range sample.OptionsByQuestion[question.ID] {
			options = append(options, dto.PublicOptionDTO{ID: opt.ID, Label: opt.Label, Text: opt.Text})
		}
		rand.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		out = append(out, dto.AttemptQuestionDTO{
			ID:             question.ID,
			QuestionNumber: question.QuestionNumber,
			Stem:           question.Stem,
			Explanation:    question.Explanation,
			Topic:          question.Topic,
			Difficulty:     question.Difficulty,
			Paper: dto.PaperRefDTO{
				ID:          question.Paper.ID,
				Year:        question.Paper.Year,
				PaperNumber: question.Paper.PaperNumber,
			},
			Options: options,
			Topics:  sample.TopicsByQuestion[question.ID],
		})
	}
	return out
}

func (s *attemptService) GetAttempt(attemptID uuid.UUID) (*model.QuizAttempt, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attempt %s", apperr.ErrNotFound, attemptID)
		}
		return nil, fmt.Errorf("loading attempt %s: %w", attemptID, err)
	}
	return attempt, nil
}

func (s *attemptService) GetAttemptSummary(attemptID uuid.UUID) (*dto.AttemptSummaryDTO, error) {
	row, err := s.attemptRepo.SummaryByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attempt %s", apperr.ErrNotFound, attemptID)
		}
		return nil, fmt.Errorf("loading attempt summary %s: %w", attemptID, err)
	}
	summary := summaryFromRow(row)
	return &summary, nil
}

func summaryFromRow(row *repository.AttemptSummaryRow) dto.AttemptSummaryDTO {
	return dto.AttemptSummaryDTO{
		ID:             row.ID,
		StartedAt:      row.StartedAt,
		CompletedAt:    row.CompletedAt,
		ExpiresAt:      row.ExpiresAt,
		Score:          row.Score,
		Percent:        row.Percent,
		TotalQuestions: row.TotalQuestions,
		SubjectName:    row.SubjectName,
		ExamLevelName:  row.ExamLevelName,
		PaperYear:      row.PaperYear,
		PaperNumber:    row.PaperNumber,
	}
}
