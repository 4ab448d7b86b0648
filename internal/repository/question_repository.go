package repository

import (
	"github.com/google/uuid"
	"github.com/kofiasare/pasco/internal/model"
	"gorm.io/gorm"
)

// QuestionTopicRow is one (question, topic) pairing with the topic's display
// name, as returned by TopicsForQuestions.
type QuestionTopicRow struct {
	QuestionID uuid.UUID
	TopicID    uint
	Name       string
}

type QuestionRepository interface {
	Create(question *model.Question) error
	Update(question *model.Question) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.Question, error)
	FindAll() ([]model.Question, error)
	ExistsByPaperAndNumber(paperID uint, questionNumber int) (bool, error)

	// SampleByPaper and SampleBySubject draw up to limit questions uniformly
	// at random, papers preloaded. Distinctness comes for free from row
	// selection.
	SampleByPaper(paperID uint, limit int) ([]model.Question, error)
	SampleBySubject(subjectID uint, limit int) ([]model.Question, error)

	// OptionsForQuestions returns every option of the given questions ordered
	// by label, correctness flags included; callers are trusted to strip them
	// before handing options to untrusted clients.
	OptionsForQuestions(ids []uuid.UUID) ([]model.AnswerOption, error)
	TopicsForQuestions(ids []uuid.UUID) ([]QuestionTopicRow, error)
	ReplaceTopics(questionID uuid.UUID, topicIDs []uint) error
	ReplaceOptions(questionID uuid.UUID, options []model.AnswerOption) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	// Creates associated options in the same insert.
	return r.db.Create(question).Error
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.AnswerOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&model.QuestionTopic{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, "id = ?", id).Error
	})
}

func (r *questionRepository) FindByID(id uuid.UUID) (*model.Question, error) {
	var question model.Question
	err := r.db.
		Preload("Paper").
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("label ASC") }).
		First(&question, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindAll() ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Preload("Paper").
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("label ASC") }).
		Order("created_at DESC").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) ExistsByPaperAndNumber(paperID uint, questionNumber int) (bool, error) {
	var count int64
	err := r.db.Model(&model.Question{}).
		Where("paper_id = ? AND question_number = ?", paperID, questionNumber).
		Count(&count).Error
	return count > 0, err
}

func (r *questionRepository) SampleByPaper(paperID uint, limit int) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Where("paper_id = ?", paperID).
		Order("RANDOM()").
		Limit(limit).
		Preload("Paper").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) SampleBySubject(subjectID uint, limit int) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.
		Joins("JOIN papers ON papers.id = questions.paper_id").
		Where("papers.subject_id = ?", subjectID).
		Order("RANDOM()").
		Limit(limit).
		Preload("Paper").
		Find(&questions).Error
	return questions, err
}

func (r *questionRepository) OptionsForQuestions(ids []uuid.UUID) ([]model.AnswerOption, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var options []model.AnswerOption
	err := r.db.
		Where("question_id IN ?", ids).
		Order("label ASC").
		Find(&options).Error
	return options, err
}

func (r *questionRepository) TopicsForQuestions(ids []uuid.UUID) ([]QuestionTopicRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []QuestionTopicRow
	err := r.db.
		Table("question_topics").
		Select("question_topics.question_id, topics.id AS topic_id, topics.name").
		Joins("JOIN topics ON topics.id = question_topics.topic_id").
		Where("question_topics.question_id IN ?", ids).
		Order("topics.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *questionRepository) ReplaceOptions(questionID uuid.UUID, options []model.AnswerOption) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&model.AnswerOption{}).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].QuestionID = questionID
			if err := tx.Create(&options[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *questionRepository) ReplaceTopics(questionID uuid.UUID, topicIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&model.QuestionTopic{}).Error; err != nil {
			return err
		}
		for _, topicID := range topicIDs {
			link := model.QuestionTopic{QuestionID: questionID, TopicID: topicID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
