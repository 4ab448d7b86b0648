package service

import (
	"errors"
	"fmt"

	"github.com/kofiasare/pasco/internal/apperr"
	"github.com/kofiasare/pasco/internal/dto"
	"github.com/kofiasare/pasco/internal/model"
	"github.com/kofiasare/pasco/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CatalogService is plain CRUD over the exam level / subject / topic / paper
// hierarchy. Referential validity is checked here; everything else is the
// repository's problem.
type CatalogService interface {
	ListExamLevels() ([]model.ExamLevel, error)
	GetExamLevel(id uint) (*model.ExamLevel, error)
	CreateExamLevel(req dto.ExamLevelCreateDTO) (*model.ExamLevel, error)
	UpdateExamLevel(id uint, req dto.ExamLevelCreateDTO) (*model.ExamLevel, error)
	DeleteExamLevel(id uint) error

	ListSubjects() ([]model.Subject, error)
	GetSubject(id uint) (*model.Subject, error)
	CreateSubject(req dto.SubjectCreateDTO) (*model.Subject, error)
	UpdateSubject(id uint, req dto.SubjectCreateDTO) (*model.Subject, error)
	DeleteSubject(id uint) error

	ListTopics() ([]model.Topic, error)
	CreateTopic(req dto.TopicCreateDTO) (*model.Topic, error)
	UpdateTopic(id uint, req dto.TopicCreateDTO) (*model.Topic, error)
	DeleteTopic(id uint) error

	ListPapers() ([]model.Paper, error)
	GetPaper(id uint) (*model.Paper, error)
	CreatePaper(req dto.PaperCreateDTO) (*model.Paper, error)
	UpdatePaper(id uint, req dto.PaperCreateDTO) (*model.Paper, error)
	DeletePaper(id uint) error
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func notFoundOr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", apperr.ErrNotFound, resource)
	}
	return err
}

func (s *catalogService) ListExamLevels() ([]model.ExamLevel, error) {
	return s.catalogRepo.ListExamLevels()
}

func (s *catalogService) GetExamLevel(id uint) (*model.ExamLevel, error) {
	level, err := s.catalogRepo.FindExamLevel(id)
	if err != nil {
		return nil, notFoundOr(err, "exam level")
	}
	return level, nil
}

func (s *catalogService) CreateExamLevel(req dto.ExamLevelCreateDTO) (*model.ExamLevel, error) {
	level := model.ExamLevel{Code: req.Code, Name: req.Name}
	if err := s.catalogRepo.CreateExamLevel(&level); err != nil {
		log.Error().Err(err).Str("code", req.Code).Msg("Failed to create exam level")
		return nil, fmt.Errorf("creating exam level: %w", err)
	}
	return &level, nil
}

func (s *catalogService) UpdateExamLevel(id uint, req dto.ExamLevelCreateDTO) (*model.ExamLevel, error) {
	level, err := s.catalogRepo.FindExamLevel(id)
	if err != nil {
		return nil, notFoundOr(err, "exam level")
	}
	level.Code = req.Code
	level.Name = req.Name
	if err := s.catalogRepo.UpdateExamLevel(level); err != nil {
		return nil, fmt.Errorf("updating exam level: %w", err)
	}
	return level, nil
}

func (s *catalogService) DeleteExamLevel(id uint) error {
	if _, err := s.catalogRepo.FindExamLevel(id); err != nil {
		return notFoundOr(err, "exam level")
	}
	return s.catalogRepo.DeleteExamLevel(id)
}

func (s *catalogService) ListSubjects() ([]model.Subject, error) {
	return s.catalogRepo.ListSubjects()
}

func (s *catalogService) GetSubject(id uint) (*model.Subject, error) {
	subject, err := s.catalogRepo.FindSubject(id)
	if err != nil {
		return nil, notFoundOr(err, "subject")
	}
	return subject, nil
}

func (s *catalogService) CreateSubject(req dto.SubjectCreateDTO) (*model.Subject, error) {
	if _, err := s.catalogRepo.FindExamLevel(req.ExamLevelID); err != nil {
		return nil, notFoundOr(err, "exam level")
	}
	subject := model.Subject{ExamLevelID: req.ExamLevelID, Name: req.Name, Code: req.Code}
	if err := s.catalogRepo.CreateSubject(&subject); err != nil {
		log.Error().Err(err).Str("code", req.Code).Msg("Failed to create subject")
		return nil, fmt.Errorf("creating subject: %w", err)
	}
	return &subject, nil
}

func (s *catalogService) UpdateSubject(id uint, req dto.SubjectCreateDTO) (*model.Subject, error) {
	subject, err := s.catalogRepo.FindSubject(id)
	if err != nil {
		return nil, notFoundOr(err, "subject")
	}
	subject.ExamLevelID = req.ExamLevelID
	subject.Name = req.Name
	subject.Code = req.Code
	if err := s.catalogRepo.UpdateSubject(subject); err != nil {
		return nil, fmt.Errorf("updating subject: %w", err)
	}
	return subject, nil
}

func (s *catalogService) DeleteSubject(id uint) error {
	if _, err := s.catalogRepo.FindSubject(id); err != nil {
		return notFoundOr(err, "subject")
	}
	return s.catalogRepo.DeleteSubject(id)
}

func (s *catalogService) ListTopics() ([]model.Topic, error) {
	return s.catalogRepo.ListTopics()
}

func (s *catalogService) CreateTopic(req dto.TopicCreateDTO) (*model.Topic, error) {
	if _, err := s.catalogRepo.FindSubject(req.SubjectID); err != nil {
		return nil, notFoundOr(err, "subject")
	}
	topic := model.Topic{SubjectID: req.SubjectID, Name: req.Name, Code: req.Code, Description: req.Description}
	if err := s.catalogRepo.CreateTopic(&topic); err != nil {
		return nil, fmt.Errorf("creating topic: %w", err)
	}
	return &topic, nil
}

func (s *catalogService) UpdateTopic(id uint, req dto.TopicCreateDTO) (*model.Topic, error) {
	topic, err := s.catalogRepo.FindTopic(id)
	if err != nil {
		return nil, notFoundOr(err, "topic")
	}
	topic.SubjectID = req.SubjectID
	topic.Name = req.Name
	topic.Code = req.Code
	topic.Description = req.Description
	if err := s.catalogRepo.UpdateTopic(topic); err != nil {
		return nil, fmt.Errorf("updating topic: %w", err)
	}
	return topic, nil
}

func (s *catalogService) DeleteTopic(id uint) error {
	if _, err := s.catalogRepo.FindTopic(id); err != nil {
		return notFoundOr(err, "topic")
	}
	return s.catalogRepo.DeleteTopic(id)
}

func (s *catalogService) ListPapers() ([]model.Paper, error) {
	return s.catalogRepo.ListPapers()
}

func (s *catalogService) GetPaper(id uint) (*model.Paper, error) {
	paper, err := s.catalogRepo.FindPaper(id)
	if err != nil {
		return nil, notFoundOr(err, "paper")
	}
	return paper, nil
}

func (s *catalogService) CreatePaper(req dto.PaperCreateDTO) (*model.Paper, error) {
	if _, err := s.catalogRepo.FindSubject(req.SubjectID); err != nil {
		return nil, notFoundOr(err, "subject")
	}
	paper := model.Paper{
		SubjectID:   req.SubjectID,
		Year:        req.Year,
		PaperNumber: req.PaperNumber,
		Description: req.Description,
	}
	if err := s.catalogRepo.CreatePaper(&paper); err != nil {
		return nil, fmt.Errorf("creating paper: %w", err)
	}
	return &paper, nil
}

func (s *catalogService) UpdatePaper(id uint, req dto.PaperCreateDTO) (*model.Paper, error) {
	paper, err := s.catalogRepo.FindPaper(id)
	if err != nil {
		return nil, notFoundOr(err, "paper")
	}
	paper.SubjectID = req.SubjectID
	paper.Year = req.Year
	paper.PaperNumber = req.PaperNumber
	paper.Description = req.Description
	if err := s.catalogRepo.UpdatePaper(paper); err != nil {
		return nil, fmt.Errorf("updating paper: %w", err)
	}
	return paper, nil
}

func (s *catalogService) DeletePaper(id uint) error {
	if _, err := s.catalogRepo.FindPaper(id); err != nil {
		return notFoundOr(err, "paper")
	}
	return s.catalogRepo.DeletePaper(id)
}
