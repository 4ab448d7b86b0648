package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kofiasare/pasco/internal/apperr"
	"github.com/kofiasare/pasco/internal/dto"
	"github.com/kofiasare/pasco/internal/model"
	"github.com/kofiasare/pasco/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SampleResult carries the sampled questions plus everything attempt creation
// needs to build its payload: the resolved scope and the per-question options
// and topic tags.
type SampleResult struct {
	Subject           *model.Subject
	Paper             *model.Paper // nil for subject-wide samples
	Questions         []model.Question
	OptionsByQuestion map[uuid.UUID][]model.AnswerOption
	TopicsByQuestion  map[uuid.UUID][]dto.TopicRefDTO
}

// SamplerService selects a duplicate-free random set of questions scoped to a
// paper or to a whole subject. Pure read, no side effects.
type SamplerService interface {
	Sample(subjectID, paperID *uint, count int) (*SampleResult, error)
}

type samplerService struct {
	catalogRepo  repository.CatalogRepository
	questionRepo repository.QuestionRepository
}

func NewSamplerService(catalogRepo repository.CatalogRepository, questionRepo repository.QuestionRepository) SamplerService {
	return &samplerService{catalogRepo: catalogRepo, questionRepo: questionRepo}
}

func (s *samplerService) Sample(subjectID, paperID *uint, count int) (*SampleResult, error) {
	if subjectID == nil && paperID == nil {
		return nil, fmt.Errorf("%w: subjectId or paperId is required", apperr.ErrInvalidArgument)
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: question count must be greater than zero", apperr.ErrInvalidArgument)
	}

	var paper *model.Paper
	if paperID != nil {
		found, err := s.catalogRepo.FindPaper(*paperID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: paper %d", apperr.ErrNotFound, *paperID)
			}
			return nil, fmt.Errorf("loading paper %d: %w", *paperID, err)
		}
		paper = found
		// Paper scope wins; the subject is derived from it.
		subjectID = &paper.SubjectID
	}

	subject, err := s.catalogRepo.FindSubject(*subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: subject %d", apperr.ErrNotFound, *subjectID)
		}
		return nil, fmt.Errorf("loading subject %d: %w", *subjectID, err)
	}

	var questions []model.Question
	if paper != nil {
		questions, err = s.questionRepo.SampleByPaper(paper.ID, count)
	} else {
		questions, err = s.questionRepo.SampleBySubject(subject.ID, count)
	}
	if err != nil {
		return nil, fmt.Errorf("sampling questions: %w", err)
	}
	if len(questions) < count {
		log.Warn().Int("requested", count).Int("eligible", len(questions)).
			Uint("subjectID", subject.ID).Msg("Sampler: not enough eligible questions")
		return nil, apperr.ErrInsufficientQuestions
	}

	ids := make([]uuid.UUID, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}

	options, err := s.questionRepo.OptionsForQuestions(ids)
	if err != nil {
		return nil, fmt.Errorf("loading options: %w", err)
	}
	topicRows, err := s.questionRepo.TopicsForQuestions(ids)
	if err != nil {
		return nil, fmt.Errorf("loading topics: %w", err)
	}

	result := &SampleResult{
		Subject:           subject,
		Paper:             paper,
		Questions:         questions,
		OptionsByQuestion: make(map[uuid.UUID][]model.AnswerOption, len(questions)),
		TopicsByQuestion:  make(map[uuid.UUID][]dto.TopicRefDTO),
	}
	for _, opt := range options {
		result.OptionsByQuestion[opt.QuestionID] = append(result.OptionsByQuestion[opt.QuestionID], opt)
	}
	for _, row := range topicRows {
		result.TopicsByQuestion[row.QuestionID] = append(result.TopicsByQuestion[row.QuestionID], dto.TopicRefDTO{
			ID:   row.TopicID,
			Name: row.Name,
		})
	}
	return result, nil
}
