package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"noukie-quiz-service/internal/app"
	"noukie-quiz-service/internal/config"
	"noukie-quiz-service/internal/domain"
	"noukie-quiz-service/internal/infra/memory"
	pginfra "noukie-quiz-service/internal/infra/postgres"
	redisinfra "noukie-quiz-service/internal/infra/redis"
	transport "noukie-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz play server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	sessionTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	static := memory.NewStaticQuizLoader(sampleQuizzes())
	var quizLoader memory.QuizLoader = static
	var questionLoader memory.QuestionLoader = static
	if pool != nil {
		loader := pginfra.NewLoader(pool)
		quizLoader = loader
		questionLoader = loader
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	quizRepo := memory.NewQuizRepository(quizLoader, quizTTL)

	var questionRepo app.QuestionRepository
	if redisClient != nil {
		questionRepo = redisinfra.NewQuestionRepository(redisClient, questionLoader, quizTTL)
	} else {
		questionRepo = memory.NewQuestionRepository(questionLoader, quizTTL)
	}

	var store app.PlayStore = memory.NewPlayStore()
	if pool != nil {
		store = pginfra.NewPlayStore(pool)
	}
	if redisClient != nil {
		store = redisinfra.NewTrackedPlayStore(store, redisClient, sessionTTL)
	}

	hub := app.NewProgressHub()
	service := app.NewPlayService(store, questionRepo, hub)
	handler := transport.NewHandler(service, quizRepo, cfg.Game)
	wsHandler := transport.NewWSHandler(hub)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler.Register(mux)
	mux.HandleFunc("GET /ws/play", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz play service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuizzes provides demo content for running without Postgres.
func sampleQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		"aardrijkskunde-h1": {
			ID:        "aardrijkskunde-h1",
			Subject:   "aardrijkskunde",
			Chapter:   "1",
			Title:     "Nederland en water",
			Published: true,
			OwnerID:   "demo-coach",
			Questions: []domain.Question{
				{
					ID:             "q1",
					QuizID:         "aardrijkskunde-h1",
					Type:           domain.QuestionMultipleChoice,
					Prompt:         "Wat is de hoofdstad van Nederland?",
					Choices:        []string{"Amsterdam", "Rotterdam", "Den Haag"},
					ExpectedAnswer: "Amsterdam",
					Explanation:    "Den Haag is de regeringszetel, Amsterdam de hoofdstad.",
					Position:       1,
				},
				{
					ID:       "q2",
					QuizID:   "aardrijkskunde-h1",
					Type:     domain.QuestionOpenEnded,
					Prompt:   "Beschrijf in je eigen woorden waarom dijken belangrijk zijn.",
					Position: 2,
				},
			},
		},
	}
}
