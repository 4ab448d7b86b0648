package repository

import (
	"github.com/kofiasare/pasco/internal/model"
	"gorm.io/gorm"
)

// CatalogRepository persists the exam level / subject / topic / paper
// hierarchy. Pure CRUD plus the lookups the sampler and importer need.
type CatalogRepository interface {
	ListExamLevels() ([]model.ExamLevel, error)
	FindExamLevel(id uint) (*model.ExamLevel, error)
	FindExamLevelByCode(code string) (*model.ExamLevel, error)
	CreateExamLevel(level *model.ExamLevel) error
	UpdateExamLevel(level *model.ExamLevel) error
	DeleteExamLevel(id uint) error

	ListSubjects() ([]model.Subject, error)
	FindSubject(id uint) (*model.Subject, error)
	FindSubjectByCode(examLevelID uint, code string) (*model.Subject, error)
	CreateSubject(subject *model.Subject) error
	UpdateSubject(subject *model.Subject) error
	DeleteSubject(id uint) error

	ListTopics() ([]model.Topic, error)
	FindTopic(id uint) (*model.Topic, error)
	TopicsBySubject(subjectID uint) ([]model.Topic, error)
	CreateTopic(topic *model.Topic) error
	UpdateTopic(topic *model.Topic) error
	DeleteTopic(id uint) error

	ListPapers() ([]model.Paper, error)
	FindPaper(id uint) (*model.Paper, error)
	FindPaperByNumber(subjectID uint, year, paperNumber int) (*model.Paper, error)
	CreatePaper(paper *model.Paper) error
	UpdatePaper(paper *model.Paper) error
	DeletePaper(id uint) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListExamLevels() ([]model.ExamLevel, error) {
	var levels []model.ExamLevel
	err := r.db.Order("code ASC").Find(&levels).Error
	return levels, err
}

func (r *catalogRepository) FindExamLevel(id uint) (*model.ExamLevel, error) {
	var level model.ExamLevel
	if err := r.db.First(&level, id).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *catalogRepository) FindExamLevelByCode(code string) (*model.ExamLevel, error) {
	var level model.ExamLevel
	if err := r.db.Where("UPPER(code) = UPPER(?)", code).First(&level).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *catalogRepository) CreateExamLevel(level *model.ExamLevel) error {
	return r.db.Create(level).Error
}

func (r *catalogRepository) UpdateExamLevel(level *model.ExamLevel) error {
	return r.db.Save(level).Error
}

func (r *catalogRepository) DeleteExamLevel(id uint) error {
	return r.db.Delete(&model.ExamLevel{}, id).Error
}

func (r *catalogRepository) ListSubjects() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.Preload("ExamLevel").Order("name ASC").Find(&subjects).Error
	return subjects, err
}

func (r *catalogRepository) FindSubject(id uint) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.Preload("ExamLevel").First(&subject, id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *catalogRepository) FindSubjectByCode(examLevelID uint, code string) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.Where("exam_level_id = ? AND UPPER(code) = UPPER(?)", examLevelID, code).First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *catalogRepository) CreateSubject(subject *model.Subject) error {
	return r.db.Create(subject).Error
}

func (r *catalogRepository) UpdateSubject(subject *model.Subject) error {
	return r.db.Save(subject).Error
}

func (r *catalogRepository) DeleteSubject(id uint) error {
	return r.db.Delete(&model.Subject{}, id).Error
}

func (r *catalogRepository) ListTopics() ([]model.Topic, error) {
	var topics []model.Topic
	err := r.db.Order("name ASC").Find(&topics).Error
	return topics, err
}

func (r *catalogRepository) FindTopic(id uint) (*model.Topic, error) {
	var topic model.Topic
	if err := r.db.First(&topic, id).Error; err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *catalogRepository) TopicsBySubject(subjectID uint) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.db.Where("subject_id = ?", subjectID).Order("name ASC").Find(&topics).Error
	return topics, err
}

func (r *catalogRepository) CreateTopic(topic *model.Topic) error {
	return r.db.Create(topic).Error
}

func (r *catalogRepository) UpdateTopic(topic *model.Topic) error {
	return r.db.Save(topic).Error
}

func (r *catalogRepository) DeleteTopic(id uint) error {
	return r.db.Delete(&model.Topic{}, id).Error
}

func (r *catalogRepository) ListPapers() ([]model.Paper, error) {
	var papers []model.Paper
	err := r.db.Preload("Subject").Order("year DESC, paper_number ASC").Find(&papers).Error
	return papers, err
}

func (r *catalogRepository) FindPaper(id uint) (*model.Paper, error) {
	var paper model.Paper
	if err := r.db.Preload("Subject").First(&paper, id).Error; err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *catalogRepository) FindPaperByNumber(subjectID uint, year, paperNumber int) (*model.Paper, error) {
	var paper model.Paper
	err := r.db.
		Where("subject_id = ? AND year = ? AND paper_number = ?", subjectID, year, paperNumber).
		First(&paper).Error
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *catalogRepository) CreatePaper(paper *model.Paper) error {
	return r.db.Create(paper).Error
}

func (r *catalogRepository) UpdatePaper(paper *model.Paper) error {
	return r.db.Save(paper).Error
}

func (r *catalogRepository) DeletePaper(id uint) error {
	return r.db.Delete(&model.Paper{}, id).Error
}
