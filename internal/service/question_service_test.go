package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kofiasare/pasco/internal/apperr"
	"github.com/kofiasare/pasco/internal/dto"
	"github.com/kofiasare/pasco/internal/model"
)

func sampleQuestionCreate(paperID uint, number int) dto.QuestionCreateDTO {
	return dto.QuestionCreateDTO{
		PaperID:        paperID,
		QuestionNumber: number,
		Stem:           "Which planet is closest to the sun?",
		Difficulty:     "easy",
		Options: []dto.OptionCreateDTO{
			{Label: "A", Text: "Mercury", IsCorrect: true},
			{Label: "B", Text: "Venus"},
			{Label: "C", Text: "Mars"},
		},
	}
}

func TestCreateQuestionWithTopics(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)

	req := sampleQuestionCreate(cat.Paper.ID, 1)
	req.TopicIDs = []uint{cat.Topic.ID}
	created, err := env.question.CreateQuestion(req)
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	if len(created.Options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(created.Options))
	}
	if len(created.Topics) != 1 || created.Topics[0].Name != cat.Topic.Name {
		t.Fatalf("expected topic link to %q, got %v", cat.Topic.Name, created.Topics)
	}
}

func TestCreateQuestionRequiresExactlyOneCorrect(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)

	req := sampleQuestionCreate(cat.Paper.ID, 1)
	req.Options[1].IsCorrect = true
	if _, err := env.question.CreateQuestion(req); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for two correct options, got %v", err)
	}

	req = sampleQuestionCreate(cat.Paper.ID, 1)
	req.Options[0].IsCorrect = false
	if _, err := env.question.CreateQuestion(req); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for zero correct options, got %v", err)
	}
}

func TestCreateQuestionRejectsForeignTopic(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)

	other := model.Subject{ExamLevelID: cat.Level.ID, Code: "ENG", Name: "English Language"}
	if err := env.db.Create(&other).Error; err != nil {
		t.Fatalf("seed subject: %v", err)
	}
	foreignTopic := model.Topic{SubjectID: other.ID, Name: "Grammar"}
	if err := env.db.Create(&foreignTopic).Error; err != nil {
		t.Fatalf("seed topic: %v", err)
	}

	req := sampleQuestionCreate(cat.Paper.ID, 1)
	req.TopicIDs = []uint{foreignTopic.ID}
	if _, err := env.question.CreateQuestion(req); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for cross-subject topic, got %v", err)
	}
}

func TestUpdateQuestionReplacesOptions(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)

	created, err := env.question.CreateQuestion(sampleQuestionCreate(cat.Paper.ID, 1))
	if err != nil {
		t.Fatalf("create question: %v", err)
	}

	update := dto.QuestionUpdateDTO{
		PaperID:        cat.Paper.ID,
		QuestionNumber: 1,
		Stem:           "Which planet is second from the sun?",
		Options: []dto.OptionCreateDTO{
			{Label: "A", Text: "Mercury"},
			{Label: "B", Text: "Venus", IsCorrect: true},
		},
	}
	updated, err := env.question.UpdateQuestion(created.ID, update)
	if err != nil {
		t.Fatalf("update question: %v", err)
	}
	if updated.Stem != update.Stem {
		t.Errorf("stem not updated")
	}
	if len(updated.Options) != 2 {
		t.Fatalf("old options should be replaced, got %d", len(updated.Options))
	}
	for _, opt := range updated.Options {
		if opt.Label == "B" && !opt.IsCorrect {
			t.Fatalf("replacement correct flag lost")
		}
	}

	// No stale option rows left behind.
	var count int64
	env.db.Model(&model.AnswerOption{}).Where("question_id = ?", created.ID).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 option rows after replacement, got %d", count)
	}
}

func TestUpdateQuestionValidatesBeforeWriting(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)

	created, err := env.question.CreateQuestion(sampleQuestionCreate(cat.Paper.ID, 1))
	if err != nil {
		t.Fatalf("create question: %v", err)
	}

	update := dto.QuestionUpdateDTO{
		PaperID:        cat.Paper.ID,
		QuestionNumber: 1,
		Stem:           "Should never persist",
		Options: []dto.OptionCreateDTO{
			{Label: "A", Text: "One", IsCorrect: true},
			{Label: "B", Text: "Two", IsCorrect: true},
		},
	}
	if _, err := env.question.UpdateQuestion(created.ID, update); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}

	reloaded, err := env.question.GetQuestion(created.ID)
	if err != nil {
		t.Fatalf("reload question: %v", err)
	}
	if reloaded.Stem == update.Stem {
		t.Fatalf("rejected update must not persist field changes")
	}
}

func TestDeleteQuestionRemovesOptionsAndLinks(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)

	req := sampleQuestionCreate(cat.Paper.ID, 1)
	req.TopicIDs = []uint{cat.Topic.ID}
	created, err := env.question.CreateQuestion(req)
	if err != nil {
		t.Fatalf("create question: %v", err)
	}

	if err := env.question.DeleteQuestion(created.ID); err != nil {
		t.Fatalf("delete question: %v", err)
	}

	var options, links int64
	env.db.Model(&model.AnswerOption{}).Where("question_id = ?", created.ID).Count(&options)
	env.db.Model(&model.QuestionTopic{}).Where("question_id = ?", created.ID).Count(&links)
	if options != 0 || links != 0 {
		t.Fatalf("delete left orphans: options=%d links=%d", options, links)
	}

	if _, err := env.question.GetQuestion(created.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := env.question.DeleteQuestion(uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}
