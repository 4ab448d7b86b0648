package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kofiasare/pasco/internal/apperr"
	"github.com/kofiasare/pasco/internal/dto"
	"github.com/kofiasare/pasco/internal/model"
)

// startAttempt creates a paper-scoped attempt covering every seeded question.
func startAttempt(t *testing.T, env *testEnv, userID uuid.UUID, paperID uint, count int) *dto.AttemptCreateResponseDTO {
	t.Helper()

	resp, err := env.attempts.CreateAttempt(userID, dto.AttemptCreateDTO{
		PaperID:         &paperID,
		NumQuestions:    count,
		DurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("create attempt: %v", err)
	}
	return resp
}

func TestSubmitGradesDeterministically(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 5)
	user := env.seedUser(t, "grade@example.com")
	attempt := startAttempt(t, env, user.ID, cat.Paper.ID, 5)

	// Three right, one wrong, one omitted.
	answers := []dto.AnswerSubmissionDTO{
		{QuestionID: attempt.Questions[0].ID, OptionID: env.correctOption(t, attempt.Questions[0].ID).ID},
		{QuestionID: attempt.Questions[1].ID, OptionID: env.correctOption(t, attempt.Questions[1].ID).ID},
		{QuestionID: attempt.Questions[2].ID, OptionID: env.correctOption(t, attempt.Questions[2].ID).ID},
		{QuestionID: attempt.Questions[3].ID, OptionID: env.wrongOption(t, attempt.Questions[3].ID).ID},
	}

	result, err := env.grading.Submit(attempt.AttemptID, user.ID, answers)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 3 {
		t.Fatalf("score: got %d want 3", result.Score)
	}
	if result.TotalQuestions != 5 {
		t.Fatalf("total: got %d want 5", result.TotalQuestions)
	}
	if result.Percent != 60 {
		t.Fatalf("percent: got %v want 60", result.Percent)
	}

	// Every slot was graded, including the omitted one.
	var slots []model.AttemptAnswer
	if err := env.db.Where("attempt_id = ?", attempt.AttemptID).Find(&slots).Error; err != nil {
		t.Fatalf("load slots: %v", err)
	}
	for _, slot := range slots {
		if slot.IsCorrect == nil || slot.AnsweredAt == nil {
			t.Fatalf("slot for question %s left ungraded", slot.QuestionID)
		}
	}

	var omitted model.AttemptAnswer
	err = env.db.Where("attempt_id = ? AND question_id = ?", attempt.AttemptID, attempt.Questions[4].ID).
		First(&omitted).Error
	if err != nil {
		t.Fatalf("load omitted slot: %v", err)
	}
	if omitted.SelectedOptionID != nil {
		t.Fatalf("omitted slot should have no selection")
	}
	if omitted.IsCorrect == nil || *omitted.IsCorrect {
		t.Fatalf("omitted answer must grade as wrong")
	}
}

func TestSubmitPercentRounding(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 3)
	user := env.seedUser(t, "round@example.com")
	attempt := startAttempt(t, env, user.ID, cat.Paper.ID, 3)

	answers := []dto.AnswerSubmissionDTO{
		{QuestionID: attempt.Questions[0].ID, OptionID: env.correctOption(t, attempt.Questions[0].ID).ID},
	}
	result, err := env.grading.Submit(attempt.AttemptID, user.ID, answers)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	// 1/3 of 100, rounded to two decimals.
	if result.Percent != 33.33 {
		t.Fatalf("percent: got %v want 33.33", result.Percent)
	}
}

func TestSubmitInvalidOptionLeavesSlotsUntouched(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 3)
	user := env.seedUser(t, "invalidopt@example.com")
	attempt := startAttempt(t, env, user.ID, cat.Paper.ID, 3)

	// An option that exists but belongs to a different question.
	foreign := env.correctOption(t, attempt.Questions[1].ID)
	answers := []dto.AnswerSubmissionDTO{
		{QuestionID: attempt.Questions[0].ID, OptionID: foreign.ID},
	}
	_, err := env.grading.Submit(attempt.AttemptID, user.ID, answers)
	if !errors.Is(err, apperr.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}

	// Validation precedes every write: the attempt stays open, slots blank.
	var slots []model.AttemptAnswer
	if err := env.db.Where("attempt_id = ?", attempt.AttemptID).Find(&slots).Error; err != nil {
		t.Fatalf("load slots: %v", err)
	}
	for _, slot := range slots {
		if slot.SelectedOptionID != nil || slot.IsCorrect != nil {
			t.Fatalf("rejected submission mutated slot %s", slot.QuestionID)
		}
	}
	var persisted model.QuizAttempt
	if err := env.db.First(&persisted, "id = ?", attempt.AttemptID).Error; err != nil {
		t.Fatalf("load attempt: %v", err)
	}
	if persisted.CompletedAt != nil {
		t.Fatalf("rejected submission closed the attempt")
	}
}

func TestSubmitTwiceFails(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 2)
	user := env.seedUser(t, "double@example.com")
	attempt := startAttempt(t, env, user.ID, cat.Paper.ID, 2)

	answers := []dto.AnswerSubmissionDTO{
		{QuestionID: attempt.Questions[0].ID, OptionID: env.correctOption(t, attempt.Questions[0].ID).ID},
	}
	first, err := env.grading.Submit(attempt.AttemptID, user.ID, answers)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}

	// The second submission must not replay or alter the first result.
	_, err = env.grading.Submit(attempt.AttemptID, user.ID, answers)
	if !errors.Is(err, apperr.ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}

	var persisted model.QuizAttempt
	if err := env.db.First(&persisted, "id = ?", attempt.AttemptID).Error; err != nil {
		t.Fatalf("load attempt: %v", err)
	}
	if persisted.Score == nil || *persisted.Score != first.Score {
		t.Fatalf("second submit altered stored score")
	}
}

func TestSubmitExpiredLeavesAttemptOpen(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 2)
	user := env.seedUser(t, "expired@example.com")
	attempt := startAttempt(t, env, user.ID, cat.Paper.ID, 2)

	past := time.Now().Add(-time.Minute)
	if err := env.db.Model(&model.QuizAttempt{}).Where("id = ?", attempt.AttemptID).
		Update("expires_at", past).Error; err != nil {
		t.Fatalf("backdate expiry: %v", err)
	}

	_, err := env.grading.Submit(attempt.AttemptID, user.ID, nil)
	if !errors.Is(err, apperr.ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}

	var persisted model.QuizAttempt
	if err := env.db.First(&persisted, "id = ?", attempt.AttemptID).Error; err != nil {
		t.Fatalf("load attempt: %v", err)
	}
	if persisted.CompletedAt != nil || persisted.Score != nil {
		t.Fatalf("expired rejection must not close or score the attempt")
	}
}

func TestSubmitOwnership(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 2)
	owner := env.seedUser(t, "owner@example.com")
	intruder := env.seedUser(t, "intruder@example.com")
	attempt := startAttempt(t, env, owner.ID, cat.Paper.ID, 2)

	_, err := env.grading.Submit(attempt.AttemptID, intruder.ID, nil)
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSubmitUnknownAttempt(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "ghost@example.com")

	_, err := env.grading.Submit(uuid.New(), user.ID, nil)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmitIgnoresMalformedAndDuplicateEntries(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 2)
	user := env.seedUser(t, "dupes@example.com")
	attempt := startAttempt(t, env, user.ID, cat.Paper.ID, 2)

	q0 := attempt.Questions[0].ID
	answers := []dto.AnswerSubmissionDTO{
		{QuestionID: uuid.Nil, OptionID: env.correctOption(t, q0).ID}, // dropped
		{QuestionID: q0, OptionID: env.wrongOption(t, q0).ID},
		{QuestionID: q0, OptionID: env.correctOption(t, q0).ID}, // later entry wins
	}

	result, err := env.grading.Submit(attempt.AttemptID, user.ID, answers)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 1 {
		t.Fatalf("score: got %d want 1 (last duplicate should win)", result.Score)
	}
}
