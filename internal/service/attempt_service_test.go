package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kofiasare/pasco/internal/apperr"
	"github.com/kofiasare/pasco/internal/dto"
	"github.com/kofiasare/pasco/internal/model"
)

func TestCreateAttemptCreatesBlankSlots(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 6)
	user := env.seedUser(t, "slots@example.com")

	resp, err := env.attempts.CreateAttempt(user.ID, dto.AttemptCreateDTO{
		SubjectID:       &cat.Subject.ID,
		NumQuestions:    5,
		DurationMinutes: 10,
	})
	if err != nil {
		t.Fatalf("create attempt: %v", err)
	}
	if resp.TotalQuestions != 5 || len(resp.Questions) != 5 {
		t.Fatalf("expected 5 questions, got total=%d payload=%d", resp.TotalQuestions, len(resp.Questions))
	}
	if resp.ExpiresAt == nil || !resp.ExpiresAt.After(resp.StartedAt) {
		t.Fatalf("expected expiry after start, got %v", resp.ExpiresAt)
	}

	var slots []model.AttemptAnswer
	if err := env.db.Where("attempt_id = ?", resp.AttemptID).Find(&slots).Error; err != nil {
		t.Fatalf("load slots: %v", err)
	}
	if len(slots) != 5 {
		t.Fatalf("expected 5 blank slots, got %d", len(slots))
	}
	for _, slot := range slots {
		if slot.SelectedOptionID != nil || slot.IsCorrect != nil || slot.AnsweredAt != nil {
			t.Fatalf("slot for question %s is not blank", slot.QuestionID)
		}
	}
}

func TestCreateAttemptHidesCorrectness(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	seeded := env.seedQuestions(t, cat.Paper.ID, 4)

	user := env.seedUser(t, "hidden@example.com")
	resp, err := env.attempts.CreateAttempt(user.ID, dto.AttemptCreateDTO{
		PaperID:         &cat.Paper.ID,
		NumQuestions:    4,
		DurationMinutes: 10,
	})
	if err != nil {
		t.Fatalf("create attempt: %v", err)
	}

	// PublicOptionDTO cannot carry correctness at all; what remains to check
	// is that shuffling loses no options.
	optionCount := 0
	labels := make(map[string]bool)
	for _, q := range resp.Questions {
		for _, opt := range q.Options {
			optionCount++
			labels[opt.Label] = true
			if opt.ID == uuid.Nil {
				t.Fatalf("option without id in public payload")
			}
		}
	}
	if optionCount != len(seeded)*4 {
		t.Fatalf("expected %d options across payload, got %d", len(seeded)*4, optionCount)
	}
	for _, want := range []string{"A", "B", "C", "D"} {
		if !labels[want] {
			t.Fatalf("label %s missing from payload", want)
		}
	}
}

func TestCreateAttemptDefaultsFromConfig(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 12)
	user := env.seedUser(t, "defaults@example.com")

	resp, err := env.attempts.CreateAttempt(user.ID, dto.AttemptCreateDTO{SubjectID: &cat.Subject.ID})
	if err != nil {
		t.Fatalf("create attempt: %v", err)
	}
	if resp.TotalQuestions != 10 {
		t.Fatalf("expected default question count 10, got %d", resp.TotalQuestions)
	}
	if resp.DurationMinutes != 15 {
		t.Fatalf("expected default duration 15, got %d", resp.DurationMinutes)
	}
}

func TestCreateAttemptRejectsNegativeValues(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 3)
	user := env.seedUser(t, "invalid@example.com")

	_, err := env.attempts.CreateAttempt(user.ID, dto.AttemptCreateDTO{
		SubjectID:    &cat.Subject.ID,
		NumQuestions: -1,
	})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for negative count, got %v", err)
	}

	_, err = env.attempts.CreateAttempt(user.ID, dto.AttemptCreateDTO{
		SubjectID:       &cat.Subject.ID,
		NumQuestions:    3,
		DurationMinutes: -5,
	})
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for negative duration, got %v", err)
	}
}

func TestCreateAttemptSamplerFailureWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 2)
	user := env.seedUser(t, "rollback@example.com")

	_, err := env.attempts.CreateAttempt(user.ID, dto.AttemptCreateDTO{
		SubjectID:       &cat.Subject.ID,
		NumQuestions:    10,
		DurationMinutes: 10,
	})
	if !errors.Is(err, apperr.ErrInsufficientQuestions) {
		t.Fatalf("expected ErrInsufficientQuestions, got %v", err)
	}

	var attempts int64
	env.db.Model(&model.QuizAttempt{}).Count(&attempts)
	var slots int64
	env.db.Model(&model.AttemptAnswer{}).Count(&slots)
	if attempts != 0 || slots != 0 {
		t.Fatalf("failed creation left rows behind: attempts=%d slots=%d", attempts, slots)
	}
}

func TestGetAttemptSummaryLabels(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 3)
	user := env.seedUser(t, "summary@example.com")

	resp, err := env.attempts.CreateAttempt(user.ID, dto.AttemptCreateDTO{
		PaperID:         &cat.Paper.ID,
		NumQuestions:    3,
		DurationMinutes: 10,
	})
	if err != nil {
		t.Fatalf("create attempt: %v", err)
	}

	summary, err := env.attempts.GetAttemptSummary(resp.AttemptID)
	if err != nil {
		t.Fatalf("get summary: %v", err)
	}
	if summary.SubjectName != cat.Subject.Name {
		t.Errorf("subject name: got %q want %q", summary.SubjectName, cat.Subject.Name)
	}
	if summary.ExamLevelName != cat.Level.Name {
		t.Errorf("exam level name: got %q want %q", summary.ExamLevelName, cat.Level.Name)
	}
	if summary.PaperYear == nil || *summary.PaperYear != cat.Paper.Year {
		t.Errorf("paper year missing from summary")
	}
	if summary.CompletedAt != nil || summary.Score != nil {
		t.Errorf("open attempt should have no completion or score")
	}

	if _, err := env.attempts.GetAttemptSummary(uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown attempt, got %v", err)
	}
}
