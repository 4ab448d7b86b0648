package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kofiasare/pasco/internal/apperr"
	"github.com/kofiasare/pasco/internal/dto"
	"github.com/kofiasare/pasco/internal/model"
	"github.com/kofiasare/pasco/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuestionService is the admin-side question bank: create, update, list and
// delete questions with their options and topic links. Every question must end
// up with exactly one correct option.
type QuestionService interface {
	CreateQuestion(req dto.QuestionCreateDTO) (*dto.AdminQuestionDTO, error)
	UpdateQuestion(id uuid.UUID, req dto.QuestionUpdateDTO) (*dto.AdminQuestionDTO, error)
	GetQuestion(id uuid.UUID) (*dto.AdminQuestionDTO, error)
	ListQuestions() ([]dto.AdminQuestionDTO, error)
	DeleteQuestion(id uuid.UUID) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
	catalogRepo  repository.CatalogRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository, catalogRepo repository.CatalogRepository) QuestionService {
	return &questionService{questionRepo: questionRepo, catalogRepo: catalogRepo}
}

func validateOptions(options []dto.OptionCreateDTO) error {
	if len(options) == 0 {
		return fmt.Errorf("%w: at least one answer option is required", apperr.ErrInvalidArgument)
	}
	correctCount := 0
	for _, opt := range options {
		if opt.IsCorrect {
			correctCount++
		}
	}
	if correctCount != 1 {
		return fmt.Errorf("%w: exactly one option must be marked correct, got %d", apperr.ErrInvalidArgument, correctCount)
	}
	return nil
}

func (s *questionService) validateTopics(subjectID uint, topicIDs []uint) error {
	for _, topicID := range topicIDs {
		topic, err := s.catalogRepo.FindTopic(topicID)
		if err != nil {
			return notFoundOr(err, fmt.Sprintf("topic %d", topicID))
		}
		if topic.SubjectID != subjectID {
			return fmt.Errorf("%w: topic %d belongs to another subject", apperr.ErrInvalidArgument, topicID)
		}
	}
	return nil
}

func (s *questionService) CreateQuestion(req dto.QuestionCreateDTO) (*dto.AdminQuestionDTO, error) {
	if err := validateOptions(req.Options); err != nil {
		return nil, err
	}
	paper, err := s.catalogRepo.FindPaper(req.PaperID)
	if err != nil {
		return nil, notFoundOr(err, "paper")
	}
	if err := s.validateTopics(paper.SubjectID, req.TopicIDs); err != nil {
		return nil, err
	}

	question := model.Question{
		PaperID:        req.PaperID,
		QuestionNumber: req.QuestionNumber,
		Stem:           req.Stem,
		Explanation:    req.Explanation,
		Topic:          req.Topic,
		Difficulty:     req.Difficulty,
	}
	for _, opt := range req.Options {
		question.Options = append(question.Options, model.AnswerOption{
			Label:     opt.Label,
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
		})
	}

	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("paperID", req.PaperID).Int("number", req.QuestionNumber).Msg("Failed to create question")
		return nil, fmt.Errorf("creating question: %w", err)
	}
	if len(req.TopicIDs) > 0 {
		if err := s.questionRepo.ReplaceTopics(question.ID, req.TopicIDs); err != nil {
			return nil, fmt.Errorf("linking topics: %w", err)
		}
	}
	return s.GetQuestion(question.ID)
}

func (s *questionService) UpdateQuestion(id uuid.UUID, req dto.QuestionUpdateDTO) (*dto.AdminQuestionDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, "question")
	}
	paper, err := s.catalogRepo.FindPaper(req.PaperID)
	if err != nil {
		return nil, notFoundOr(err, "paper")
	}
	if err := s.validateTopics(paper.SubjectID, req.TopicIDs); err != nil {
		return nil, err
	}

	question.PaperID = req.PaperID
	question.QuestionNumber = req.QuestionNumber
	question.Stem = req.Stem
	question.Explanation = req.Explanation
	question.Topic = req.Topic
	question.Difficulty = req.Difficulty

	if req.Options != nil {
		if err := validateOptions(req.Options); err != nil {
			return nil, err
		}
	}

	question.Options = nil
	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("updating question: %w", err)
	}
	if req.Options != nil {
		replacement := make([]model.AnswerOption, 0, len(req.Options))
		for _, opt := range req.Options {
			replacement = append(replacement, model.AnswerOption{
				Label:     opt.Label,
				Text:      opt.Text,
				IsCorrect: opt.IsCorrect,
			})
		}
		if err := s.questionRepo.ReplaceOptions(question.ID, replacement); err != nil {
			return nil, fmt.Errorf("replacing options: %w", err)
		}
	}
	if req.TopicIDs != nil {
		if err := s.questionRepo.ReplaceTopics(question.ID, req.TopicIDs); err != nil {
			return nil, fmt.Errorf("relinking topics: %w", err)
		}
	}
	return s.GetQuestion(question.ID)
}

func (s *questionService) GetQuestion(id uuid.UUID) (*dto.AdminQuestionDTO, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, "question")
	}
	topicRows, err := s.questionRepo.TopicsForQuestions([]uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("loading topics: %w", err)
	}
	result := adminQuestionDTO(question, topicRows)
	return &result, nil
}

func (s *questionService) ListQuestions() ([]dto.AdminQuestionDTO, error) {
	questions, err := s.questionRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	ids := make([]uuid.UUID, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	topicRows, err := s.questionRepo.TopicsForQuestions(ids)
	if err != nil {
		return nil, fmt.Errorf("loading topics: %w", err)
	}
	out := make([]dto.AdminQuestionDTO, 0, len(questions))
	for i := range questions {
		out = append(out, adminQuestionDTO(&questions[i], topicRows))
	}
	return out, nil
}

func (s *questionService) DeleteQuestion(id uuid.UUID) error {
	if _, err := s.questionRepo.FindByID(id); err != nil {
		return notFoundOr(err, "question")
	}
	return s.questionRepo.Delete(id)
}

func adminQuestionDTO(question *model.Question, topicRows []repository.QuestionTopicRow) dto.AdminQuestionDTO {
	out := dto.AdminQuestionDTO{
		ID:             question.ID,
		PaperID:        question.PaperID,
		QuestionNumber: question.QuestionNumber,
		Stem:           question.Stem,
		Explanation:    question.Explanation,
		Topic:          question.Topic,
		Difficulty:     question.Difficulty,
		CreatedAt:      question.CreatedAt,
	}
	for _, opt := range question.Options {
		out.Options = append(out.Options, dto.AdminOptionDTO{
			ID:        opt.ID,
			Label:     opt.Label,
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
		})
	}
	for _, row := range topicRows {
		if row.QuestionID == question.ID {
			out.Topics = append(out.Topics, dto.TopicRefDTO{ID: row.TopicID, Name: row.Name})
		}
	}
	return out
}
