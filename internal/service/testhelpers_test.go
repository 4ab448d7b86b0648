package service

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/kofiasare/pasco/config"
	"github.com/kofiasare/pasco/internal/model"
	"github.com/kofiasare/pasco/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full service stack over a throwaway sqlite database so the
// transactional paths (attempt creation, grading) run against a real store.
type testEnv struct {
	db *gorm.DB

	catalogRepo  repository.CatalogRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	userRepo     repository.UserRepository
	importRepo   repository.ImportRepository

	sampler  SamplerService
	attempts AttemptService
	grading  GradingService
	review   ReviewService
	catalog  CatalogService
	question QuestionService
	importer ImportService
	auth     AuthService
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.AccessSecret = "test-access-secret"
	cfg.Auth.RefreshSecret = "test-refresh-secret"
	cfg.Auth.AccessTTLMin = 15
	cfg.Auth.RefreshTTLMin = 60
	cfg.Auth.BcryptCost = 4 // keep hashing fast in tests
	cfg.Quiz.DefaultQuestionCount = 10
	cfg.Quiz.DefaultDurationMinutes = 15
	return cfg
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pasco_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&model.ExamLevel{},
		&model.Subject{},
		&model.Topic{},
		&model.Paper{},
		&model.Question{},
		&model.AnswerOption{},
		&model.QuestionTopic{},
		&model.User{},
		&model.QuizAttempt{},
		&model.AttemptAnswer{},
		&model.Import{},
		&model.ImportError{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	cfg := testConfig()
	env := &testEnv{db: db}
	env.catalogRepo = repository.NewCatalogRepository(db)
	env.questionRepo = repository.NewQuestionRepository(db)
	env.attemptRepo = repository.NewAttemptRepository(db)
	env.userRepo = repository.NewUserRepository(db)
	env.importRepo = repository.NewImportRepository(db)

	env.sampler = NewSamplerService(env.catalogRepo, env.questionRepo)
	env.attempts = NewAttemptService(env.sampler, env.attemptRepo, cfg, db)
	env.grading = NewGradingService(env.attemptRepo, env.questionRepo, db)
	env.review = NewReviewService(env.attemptRepo, env.questionRepo)
	env.catalog = NewCatalogService(env.catalogRepo)
	env.question = NewQuestionService(env.questionRepo, env.catalogRepo)
	env.importer = NewImportService(env.catalogRepo, env.questionRepo, env.importRepo)
	env.auth = NewAuthService(env.userRepo, cfg)
	return env
}

// seededCatalog holds the fixture hierarchy most tests start from.
type seededCatalog struct {
	Level   model.ExamLevel
	Subject model.Subject
	Topic   model.Topic
	Paper   model.Paper
}

func (e *testEnv) seedCatalog(t *testing.T) *seededCatalog {
	t.Helper()

	level := model.ExamLevel{Code: "BECE", Name: "Basic Education Certificate Examination"}
	if err := e.db.Create(&level).Error; err != nil {
		t.Fatalf("seed exam level: %v", err)
	}
	subject := model.Subject{ExamLevelID: level.ID, Code: "MATH", Name: "Mathematics"}
	if err := e.db.Create(&subject).Error; err != nil {
		t.Fatalf("seed subject: %v", err)
	}
	topic := model.Topic{SubjectID: subject.ID, Name: "Algebra", Code: "ALG"}
	if err := e.db.Create(&topic).Error; err != nil {
		t.Fatalf("seed topic: %v", err)
	}
	paper := model.Paper{SubjectID: subject.ID, Year: 2023, PaperNumber: 1}
	if err := e.db.Create(&paper).Error; err != nil {
		t.Fatalf("seed paper: %v", err)
	}
	return &seededCatalog{Level: level, Subject: subject, Topic: topic, Paper: paper}
}

// seedQuestions creates count four-option questions on the paper; option A is
// always the correct one.
func (e *testEnv) seedQuestions(t *testing.T, paperID uint, count int) []model.Question {
	t.Helper()

	questions := make([]model.Question, 0, count)
	for i := 1; i <= count; i++ {
		q := model.Question{
			PaperID:        paperID,
			QuestionNumber: i,
			Stem:           fmt.Sprintf("What is %d + %d?", i, i),
			Explanation:    fmt.Sprintf("%d + %d = %d", i, i, i+i),
			Difficulty:     "easy",
			Options: []model.AnswerOption{
				{Label: "A", Text: fmt.Sprintf("%d", i+i), IsCorrect: true},
				{Label: "B", Text: fmt.Sprintf("%d", i+i+1)},
				{Label: "C", Text: fmt.Sprintf("%d", i+i+2)},
				{Label: "D", Text: fmt.Sprintf("%d", i+i+3)},
			},
		}
		if err := e.db.Create(&q).Error; err != nil {
			t.Fatalf("seed question %d: %v", i, err)
		}
		questions = append(questions, q)
	}
	return questions
}

func (e *testEnv) seedUser(t *testing.T, email string) *model.User {
	t.Helper()

	user := model.User{FullName: "Test User", Email: email, PasswordHash: "x", Role: model.RoleStudent}
	if err := e.db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &user
}

// correctOption returns the option marked correct for the question.
func (e *testEnv) correctOption(t *testing.T, questionID uuid.UUID) model.AnswerOption {
	t.Helper()

	var opt model.AnswerOption
	if err := e.db.Where("question_id = ? AND is_correct = ?", questionID, true).First(&opt).Error; err != nil {
		t.Fatalf("load correct option: %v", err)
	}
	return opt
}

// wrongOption returns any incorrect option for the question.
func (e *testEnv) wrongOption(t *testing.T, questionID uuid.UUID) model.AnswerOption {
	t.Helper()

	var opt model.AnswerOption
	if err := e.db.Where("question_id = ? AND is_correct = ?", questionID, false).First(&opt).Error; err != nil {
		t.Fatalf("load wrong option: %v", err)
	}
	return opt
}
