package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kofiasare/pasco/internal/apperr"
)

func TestSampleBySubjectSizeAndUniqueness(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 8)

	result, err := env.sampler.Sample(&cat.Subject.ID, nil, 5)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(result.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(result.Questions))
	}

	seen := make(map[uuid.UUID]bool)
	for _, q := range result.Questions {
		if seen[q.ID] {
			t.Fatalf("question %s sampled twice", q.ID)
		}
		seen[q.ID] = true
		if len(result.OptionsByQuestion[q.ID]) != 4 {
			t.Errorf("question %s: expected 4 options, got %d", q.ID, len(result.OptionsByQuestion[q.ID]))
		}
	}
	if result.Subject == nil || result.Subject.ID != cat.Subject.ID {
		t.Fatalf("expected subject %d in result", cat.Subject.ID)
	}
	if result.Paper != nil {
		t.Fatalf("subject-wide sample should not resolve a paper")
	}
}

func TestSampleByPaperScopesAndDerivesSubject(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 4)

	// A second paper in the same subject whose questions must never appear.
	other := cat.Paper
	other.ID = 0
	other.PaperNumber = 2
	if err := env.db.Create(&other).Error; err != nil {
		t.Fatalf("seed second paper: %v", err)
	}
	env.seedQuestions(t, other.ID, 4)

	result, err := env.sampler.Sample(nil, &cat.Paper.ID, 4)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if result.Subject == nil || result.Subject.ID != cat.Subject.ID {
		t.Fatalf("paper sample should derive the subject")
	}
	for _, q := range result.Questions {
		if q.PaperID != cat.Paper.ID {
			t.Fatalf("question %s belongs to paper %d, expected %d", q.ID, q.PaperID, cat.Paper.ID)
		}
	}
}

func TestSamplePaperWinsOverSubject(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 3)

	// A bogus subject id alongside a valid paper id: the paper decides.
	bogus := uint(9999)
	result, err := env.sampler.Sample(&bogus, &cat.Paper.ID, 3)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if result.Subject.ID != cat.Subject.ID {
		t.Fatalf("expected subject derived from paper, got %d", result.Subject.ID)
	}
}

func TestSampleInsufficientQuestions(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)
	env.seedQuestions(t, cat.Paper.ID, 3)

	_, err := env.sampler.Sample(&cat.Subject.ID, nil, 10)
	if !errors.Is(err, apperr.ErrInsufficientQuestions) {
		t.Fatalf("expected ErrInsufficientQuestions, got %v", err)
	}
}

func TestSampleUnknownScope(t *testing.T) {
	env := newTestEnv(t)
	env.seedCatalog(t)

	missing := uint(4242)
	if _, err := env.sampler.Sample(&missing, nil, 1); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown subject, got %v", err)
	}
	if _, err := env.sampler.Sample(nil, &missing, 1); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown paper, got %v", err)
	}
}

func TestSampleInvalidArguments(t *testing.T) {
	env := newTestEnv(t)
	cat := env.seedCatalog(t)

	if _, err := env.sampler.Sample(nil, nil, 5); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument without a scope, got %v", err)
	}
	if _, err := env.sampler.Sample(&cat.Subject.ID, nil, 0); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for zero count, got %v", err)
	}
}
