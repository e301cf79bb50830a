// @title Quizent API
// @version 1.0
// @description Adaptive quiz platform API: sessions that adjust question difficulty per answer, performance analytics and study recommendations.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quizent/internal/adapter"
	"quizent/internal/adapter/recommender"
	"quizent/internal/cache"
	"quizent/internal/config"
	"quizent/internal/database"
	"quizent/internal/domain"
	"quizent/internal/handler"
	"quizent/internal/logger"
	"quizent/internal/middleware"
	"quizent/internal/repository"
	"quizent/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

// newLLMClient builds the recommendation model client for the configured
// source. A failure here is not fatal: the recommender degrades to its local
// generator when the client is nil.
func newLLMClient(cfg *config.Config, appLogger *zap.Logger) llms.Model {
	switch cfg.LLM.Source {
	case "ollama":
		appLogger.Info("Initializing Ollama LLM client",
			zap.String("server_url", cfg.LLM.Ollama.ServerURL),
			zap.String("model", cfg.LLM.Ollama.Model))
		httpClient := &http.Client{Timeout: cfg.LLM.Timeout}
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.LLM.Ollama.ServerURL),
			ollama.WithModel(cfg.LLM.Ollama.Model),
			ollama.WithHTTPClient(httpClient),
		)
		if err != nil {
			appLogger.Warn("Failed to create Ollama LLM client, recommendations will use local generator", zap.Error(err))
			return nil
		}
		return llm
	case "openai":
		appLogger.Info("Initializing OpenAI LLM client", zap.String("model", cfg.LLM.OpenAI.Model))
		llm, err := openai.New(
			openai.WithToken(cfg.LLM.OpenAI.APIKey),
			openai.WithModel(cfg.LLM.OpenAI.Model),
		)
		if err != nil {
			appLogger.Warn("Failed to create OpenAI LLM client, recommendations will use local generator", zap.Error(err))
			return nil
		}
		return llm
	default:
		appLogger.Warn("Unsupported LLM source, recommendations will use local generator", zap.String("source", cfg.LLM.Source))
		return nil
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	llmClient := newLLMClient(cfg, appLogger)

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize repositories
	questionBank := repository.NewSQLXQuestionBank(db)
	attemptRepository := repository.NewSQLXAttemptRepository(db)

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	var cacheAdapter domain.Cache = adapter.NewRedisCacheAdapter(redisClient)

	// Initialize services
	sessionStore := service.NewSessionStore(cacheAdapter, cfg.Session.TTL)
	quizService := service.NewQuizService(questionBank, cacheAdapter, 10*time.Minute)
	sessionService := service.NewSessionService(questionBank, attemptRepository, sessionStore, cfg.Session.QuestionCount)
	performanceService := service.NewPerformanceService(attemptRepository)
	rec := recommender.NewLLMRecommender(llmClient, cfg.LLM.Timeout)
	recommendationService := service.NewRecommendationService(performanceService, rec, cacheAdapter, cfg.Recommendation.CacheTTL)

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(quizService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	performanceHandler := handler.NewPerformanceHandler(performanceService, recommendationService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	// Swagger handler
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	apiGroup := app.Group("/api")

	apiGroup.Get("/quizzes", quizHandler.GetQuizzes)
	apiGroup.Get("/quizzes/:id/questions", quizHandler.GetQuizQuestions)

	apiGroup.Post("/sessions", sessionHandler.StartSession)
	apiGroup.Post("/sessions/:id/answers", sessionHandler.SubmitAnswer)

	apiGroup.Get("/users/:id/performance", performanceHandler.GetPerformance)
	apiGroup.Get("/users/:id/recommendations", performanceHandler.GetRecommendation)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
