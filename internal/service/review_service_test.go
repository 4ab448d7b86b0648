package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kofiasare/pasco/internal/apperr"
	"github.com/kofiasare/pasco/internal/dto"
)

func TestReviewAttemptAnnotatesSelections(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 3)
	user := env.seedUser(t, "review@example.com")
	attempt := startAttempt(t, env, user.ID, cat.Paper.ID, 3)

	answered := attempt.Questions[0].ID
	wrongPick := env.wrongOption(t, answered)
	if _, err := env.grading.Submit(attempt.AttemptID, user.ID, []dto.AnswerSubmissionDTO{
		{QuestionID: answered, OptionID: wrongPick.ID},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	review, err := env.review.ReviewAttempt(attempt.AttemptID, user.ID)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if len(review.Questions) != 3 {
		t.Fatalf("expected 3 questions in review, got %d", len(review.Questions))
	}
	if review.Attempt.CompletedAt == nil || review.Attempt.Score == nil {
		t.Fatalf("review summary should reflect the graded attempt")
	}

	// Questions come back ordered by question number.
	for i := 1; i < len(review.Questions); i++ {
		if review.Questions[i-1].QuestionNumber > review.Questions[i].QuestionNumber {
			t.Fatalf("review questions out of order at index %d", i)
		}
	}

	for _, q := range review.Questions {
		correctSeen := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correctSeen++
			}
			if q.ID == answered {
				if opt.ID == wrongPick.ID && !opt.IsSelected {
					t.Fatalf("picked option not flagged as selected")
				}
				if opt.ID != wrongPick.ID && opt.IsSelected {
					t.Fatalf("unpicked option flagged as selected")
				}
			} else if opt.IsSelected {
				t.Fatalf("omitted question has a selected option")
			}
		}
		if correctSeen != 1 {
			t.Fatalf("question %s: expected exactly one correct option in review, got %d", q.ID, correctSeen)
		}

		if q.ID == answered {
			if q.SelectedOptionID == nil || *q.SelectedOptionID != wrongPick.ID {
				t.Fatalf("answered question missing stored selection")
			}
			if q.IsCorrect == nil || *q.IsCorrect {
				t.Fatalf("wrong pick should grade false")
			}
		} else {
			if q.SelectedOptionID != nil {
				t.Fatalf("omitted question has a stored selection")
			}
			if q.IsCorrect == nil || *q.IsCorrect {
				t.Fatalf("omitted question should grade false")
			}
		}
	}
}

func TestReviewOpenAttempt(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 2)
	user := env.seedUser(t, "openreview@example.com")
	attempt := startAttempt(t, env, user.ID, cat.Paper.ID, 2)

	review, err := env.review.ReviewAttempt(attempt.AttemptID, user.ID)
	if err != nil {
		t.Fatalf("review of open attempt: %v", err)
	}
	if review.Attempt.CompletedAt != nil {
		t.Fatalf("open attempt review shows a completion time")
	}
	for _, q := range review.Questions {
		if q.SelectedOptionID != nil || q.IsCorrect != nil {
			t.Fatalf("ungraded slot should review with null selection and correctness")
		}
	}
}

func TestReviewOwnership(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 2)
	owner := env.seedUser(t, "rowner@example.com")
	intruder := env.seedUser(t, "rintruder@example.com")
	attempt := startAttempt(t, env, owner.ID, cat.Paper.ID, 2)

	if _, err := env.review.ReviewAttempt(attempt.AttemptID, intruder.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := env.review.ReviewAttempt(uuid.New(), owner.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAttemptsNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 2)
	user := env.seedUser(t, "list@example.com")
	other := env.seedUser(t, "otherlist@example.com")

	first := startAttempt(t, env, user.ID, cat.Paper.ID, 2)
	second := startAttempt(t, env, user.ID, cat.Paper.ID, 2)
	startAttempt(t, env, other.ID, cat.Paper.ID, 2)

	attempts, err := env.review.ListAttempts(user.ID)
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected only the caller's 2 attempts, got %d", len(attempts))
	}
	ids := map[uuid.UUID]bool{attempts[0].ID: true, attempts[1].ID: true}
	if !ids[first.AttemptID] || !ids[second.AttemptID] {
		t.Fatalf("listing misses one of the caller's attempts")
	}
	if attempts[0].StartedAt.Before(attempts[1].StartedAt) {
		t.Fatalf("attempts should list newest first")
	}
}
