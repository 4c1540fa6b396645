package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizforge/config"
	_ "github.com/lshigami/quizforge/docs" // Swagger docs
	"github.com/lshigami/quizforge/internal/auth"
	adminctrl "github.com/lshigami/quizforge/internal/controller/admin"
	userctrl "github.com/lshigami/quizforge/internal/controller/user"
	"github.com/lshigami/quizforge/internal/database"
	"github.com/lshigami/quizforge/internal/logger"
	"github.com/lshigami/quizforge/internal/model"
	"github.com/lshigami/quizforge/internal/repository"
	"github.com/lshigami/quizforge/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title QuizForge API
// @version 1.0
// @description Quiz authoring, scheduled availability, attempt grading and result analytics.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			auth.NewTokenManager,
			auth.NewMiddleware,
		),

		// Repositories
		fx.Provide(
			repository.NewUserRepository,
			repository.NewSubjectRepository,
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewChoiceRepository,
			repository.NewAttemptRepository,
			repository.NewAnswerRepository,
		),

		// Services
		fx.Provide(
			service.NewAuthService,
			service.NewUserAdminService,
			service.NewSubjectService,
			service.NewQuizService,
			service.NewQuestionService,
			service.NewSubmissionService,
			service.NewAttemptService,
			service.NewAnalyticsService,
		),

		// Controllers
		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewQuizController,
			adminctrl.NewQuizController,
			adminctrl.NewSubjectController,
			adminctrl.NewUserController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	logger.SetLevel(cfg.LogLevel)
	gin.SetMode(cfg.Server.GinMode)

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

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutes mounts every API route on router.
func RegisterRoutes(
	router *gin.Engine,
	mw *auth.Middleware,
	authCtrl *userctrl.AuthController,
	quizCtrl *userctrl.QuizController,
	manageCtrl *adminctrl.QuizController,
	subjectCtrl *adminctrl.SubjectController,
	userAdminCtrl *adminctrl.UserController,
) {
	api := router.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", authCtrl.Signup)
		authGroup.POST("/login", authCtrl.Login)
	}

	protected := api.Group("", mw.Authenticate())
	{
		protected.GET("/me", authCtrl.Profile)
		protected.PUT("/me", authCtrl.UpdateProfile)
		protected.PUT("/me/password", authCtrl.ChangePassword)

		protected.GET("/subjects", quizCtrl.ListSubjects)
		protected.GET("/quizzes", quizCtrl.ListQuizzes)
		protected.GET("/quizzes/available", quizCtrl.AvailableQuizzes)
		protected.GET("/quizzes/:quiz_id", quizCtrl.GetQuiz)
		protected.POST("/quizzes/:quiz_id/submit", quizCtrl.SubmitQuiz)
		protected.GET("/results/me", quizCtrl.MyResults)
		protected.GET("/attempts/:attempt_id", quizCtrl.GetAttempt)
	}

	manage := api.Group("/manage", mw.Authenticate(), auth.RequireRoles(model.RoleTeacher, model.RoleAdmin))
	{
		manage.GET("/quizzes", manageCtrl.MyQuizzes)
		manage.POST("/quizzes", manageCtrl.CreateQuiz)
		manage.PUT("/quizzes/:quiz_id", manageCtrl.UpdateQuiz)
		manage.DELETE("/quizzes/:quiz_id", manageCtrl.DeleteQuiz)
		manage.POST("/quizzes/:quiz_id/questions", manageCtrl.CreateQuestion)
		manage.GET("/quizzes/:quiz_id/attempts", manageCtrl.QuizAttempts)
		manage.GET("/quizzes/:quiz_id/analytics", manageCtrl.QuizAnalytics)
		manage.GET("/quizzes/:quiz_id/students/:student_id", manageCtrl.StudentPerformance)
		manage.PUT("/questions/:question_id", manageCtrl.UpdateQuestion)
		manage.DELETE("/questions/:question_id", manageCtrl.DeleteQuestion)

		manage.POST("/subjects", subjectCtrl.CreateSubject)
		manage.PUT("/subjects/:subject_id", subjectCtrl.UpdateSubject)
		manage.DELETE("/subjects/:subject_id", subjectCtrl.DeleteSubject)
	}

	admin := api.Group("/admin", mw.Authenticate(), auth.RequireRoles(model.RoleAdmin))
	{
		admin.GET("/users", userAdminCtrl.ListUsers)
		admin.PUT("/users/:user_id/role", userAdminCtrl.UpdateRole)
		admin.POST("/users/:user_id/approve", userAdminCtrl.ApproveUser)
		admin.PUT("/users/:user_id/active", userAdminCtrl.SetActive)
		admin.DELETE("/users/:user_id", userAdminCtrl.DeleteUser)
	}
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	mw *auth.Middleware,
	authCtrl *userctrl.AuthController,
	quizCtrl *userctrl.QuizController,
	manageCtrl *adminctrl.QuizController,
	subjectCtrl *adminctrl.SubjectController,
	userAdminCtrl *adminctrl.UserController,
) {
	RegisterRoutes(router, mw, authCtrl, quizCtrl, manageCtrl, subjectCtrl, userAdminCtrl)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QuizForge API server starting on port %s", cfg.Server.Port)
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
		&model.User{},
		&model.Subject{},
		&model.Quiz{},
		&model.Question{},
		&model.Choice{},
		&model.QuizAttempt{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
