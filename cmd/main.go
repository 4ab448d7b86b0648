package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kofiasare/pasco/config"
	"github.com/kofiasare/pasco/database"
	_ "github.com/kofiasare/pasco/docs" // Swagger docs - auto-generated
	adminctrl "github.com/kofiasare/pasco/internal/controller/admin"
	userctrl "github.com/kofiasare/pasco/internal/controller/user"
	"github.com/kofiasare/pasco/internal/logger"
	"github.com/kofiasare/pasco/internal/middleware"
	"github.com/kofiasare/pasco/internal/model"
	"github.com/kofiasare/pasco/internal/repository"
	"github.com/kofiasare/pasco/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Pasco API
// @version 1.0
// @description Past-questions quiz practice API: randomized quiz attempts over a catalog of past exam papers, with deterministic grading and full answer review.
// @contact.name API Support
// @contact.email support@pasco.app
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewCatalogRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewUserRepository,
			repository.NewImportRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewSamplerService,
			func(sampler service.SamplerService, attemptRepo repository.AttemptRepository, cfg *config.Config, db *gorm.DB) service.AttemptService {
				return service.NewAttemptService(sampler, attemptRepo, cfg, db)
			},
			func(attemptRepo repository.AttemptRepository, questionRepo repository.QuestionRepository, db *gorm.DB) service.GradingService {
				return service.NewGradingService(attemptRepo, questionRepo, db)
			},
			service.NewReviewService,
			service.NewCatalogService,
			service.NewQuestionService,
			service.NewImportService,
			service.NewAuthService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewCatalogController,
			userctrl.NewQuizController,
			adminctrl.NewCatalogController,
			adminctrl.NewQuestionController,
			adminctrl.NewImportController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *userctrl.AuthController,
	catalogCtrl *userctrl.CatalogController,
	quizCtrl *userctrl.QuizController,
	adminCatalogCtrl *adminctrl.CatalogController,
	adminQuestionCtrl *adminctrl.QuestionController,
	adminImportCtrl *adminctrl.ImportController,
) {
	api := router.Group("/api/v1")
	{
		api.POST("/auth/signup", authCtrl.Signup)
		api.POST("/auth/login", authCtrl.Login)

		// Public catalog reads for building the quiz pickers
		catalog := api.Group("/catalog")
		{
			catalog.GET("/exam-levels", catalogCtrl.ListExamLevels)
			catalog.GET("/exam-levels/:id", catalogCtrl.GetExamLevel)
			catalog.GET("/subjects", catalogCtrl.ListSubjects)
			catalog.GET("/subjects/:id", catalogCtrl.GetSubject)
			catalog.GET("/papers", catalogCtrl.ListPapers)
			catalog.GET("/papers/:id", catalogCtrl.GetPaper)
		}

		// Quiz attempts, all owned by the authenticated user
		authed := api.Group("")
		authed.Use(middleware.RequireAuth(cfg))
		{
			authed.POST("/quiz/attempts", quizCtrl.CreateAttempt)
			authed.GET("/attempts/mine", quizCtrl.ListMyAttempts)
			authed.GET("/attempts/:id", quizCtrl.GetAttempt)
			authed.POST("/attempts/:id/submit", quizCtrl.SubmitAttempt)
			authed.GET("/attempts/:id/review", quizCtrl.ReviewAttempt)
		}
	}

	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.RequireAuth(cfg), middleware.RequireAdmin())
	{
		admin.POST("/exam-levels", adminCatalogCtrl.CreateExamLevel)
		admin.PUT("/exam-levels/:id", adminCatalogCtrl.UpdateExamLevel)
		admin.DELETE("/exam-levels/:id", adminCatalogCtrl.DeleteExamLevel)

		admin.POST("/subjects", adminCatalogCtrl.CreateSubject)
		admin.PUT("/subjects/:id", adminCatalogCtrl.UpdateSubject)
		admin.DELETE("/subjects/:id", adminCatalogCtrl.DeleteSubject)

		admin.POST("/topics", adminCatalogCtrl.CreateTopic)
		admin.PUT("/topics/:id", adminCatalogCtrl.UpdateTopic)
		admin.DELETE("/topics/:id", adminCatalogCtrl.DeleteTopic)

		admin.POST("/papers", adminCatalogCtrl.CreatePaper)
		admin.PUT("/papers/:id", adminCatalogCtrl.UpdatePaper)
		admin.DELETE("/papers/:id", adminCatalogCtrl.DeletePaper)

		admin.POST("/questions", adminQuestionCtrl.CreateQuestion)
		admin.GET("/questions", adminQuestionCtrl.ListQuestions)
		admin.GET("/questions/:id", adminQuestionCtrl.GetQuestion)
		admin.PUT("/questions/:id", adminQuestionCtrl.UpdateQuestion)
		admin.DELETE("/questions/:id", adminQuestionCtrl.DeleteQuestion)

		admin.POST("/imports/questions", adminImportCtrl.ImportQuestions)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Pasco API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
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
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
