package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"quizent/internal/config"
	"quizent/internal/database"
	"quizent/internal/domain"
	"quizent/internal/logger"
	"quizent/internal/repository/models"
	"quizent/internal/util"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const seedFilePath = "configs/seed_data/catalog.json"

type seedTopic struct {
	Name     string `json:"name"`
	Language string `json:"language"`
}

type seedQuestion struct {
	Difficulty    string   `json:"difficulty"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type seedQuiz struct {
	Title     string         `json:"title"`
	TopicName string         `json:"topic_name"`
	Language  string         `json:"language"`
	Questions []seedQuestion `json:"questions"`
}

type seedCatalog struct {
	Topics  []seedTopic `json:"topics"`
	Quizzes []seedQuiz  `json:"quizzes"`
}

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting catalog seeding process...")
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to Oracle database", zap.Error(err))
	}
	defer db.Close()

	log.Info("Loading seed data from file", zap.String("path", seedFilePath))
	byteValue, err := os.ReadFile(seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", seedFilePath), zap.Error(err))
	}

	var catalog seedCatalog
	if err := json.Unmarshal(byteValue, &catalog); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Seed data loaded",
		zap.Int("topics", len(catalog.Topics)),
		zap.Int("quizzes", len(catalog.Quizzes)))

	topicIDs, err := seedTopics(ctx, db, log, catalog.Topics)
	if err != nil {
		log.Fatal("Failed to seed topics", zap.Error(err))
	}

	for _, quiz := range catalog.Quizzes {
		if err := seedQuizData(ctx, db, log, quiz, topicIDs); err != nil {
			log.Error("Error seeding quiz, transaction rolled back", zap.String("quiz", quiz.Title), zap.Error(err))
		}
	}
	log.Info("Catalog seeding process completed.")
}

func topicKey(name, language string) string {
	return name + "|" + language
}

// seedTopics inserts topics that do not exist yet and returns name -> ID for
// quiz wiring.
func seedTopics(ctx context.Context, db *sqlx.DB, log *zap.Logger, topics []seedTopic) (map[string]string, error) {
	ids := make(map[string]string, len(topics))
	for _, t := range topics {
		var existing models.Topic
		err := db.GetContext(ctx, &existing,
			`SELECT ID, NAME, LANGUAGE, CREATED_AT, UPDATED_AT, DELETED_AT
			 FROM topics WHERE NAME = :1 AND LANGUAGE = :2 AND DELETED_AT IS NULL`, t.Name, t.Language)
		if err == nil {
			ids[topicKey(t.Name, t.Language)] = existing.ID
			log.Info("Topic already present, skipping", zap.String("name", t.Name), zap.String("language", t.Language))
			continue
		}

		id := util.NewULID()
		now := time.Now()
		_, err = db.ExecContext(ctx,
			`INSERT INTO topics (ID, NAME, LANGUAGE, CREATED_AT, UPDATED_AT) VALUES (:1, :2, :3, :4, :5)`,
			id, t.Name, t.Language, now, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert topic %s (%s): %w", t.Name, t.Language, err)
		}
		ids[topicKey(t.Name, t.Language)] = id
		log.Info("Inserted topic", zap.String("name", t.Name), zap.String("language", t.Language))
	}
	return ids, nil
}

// seedQuizData inserts one quiz and its questions inside a transaction.
func seedQuizData(ctx context.Context, db *sqlx.DB, log *zap.Logger, quiz seedQuiz, topicIDs map[string]string) (err error) {
	topicID, ok := topicIDs[topicKey(quiz.TopicName, quiz.Language)]
	if !ok {
		return fmt.Errorf("no topic seeded for quiz %s (%s / %s)", quiz.Title, quiz.TopicName, quiz.Language)
	}

	var count int
	if err := db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM quizzes WHERE TITLE = :1 AND DELETED_AT IS NULL`, quiz.Title); err != nil {
		return fmt.Errorf("failed to check existing quiz %s: %w", quiz.Title, err)
	}
	if count > 0 {
		log.Info("Quiz already present, skipping", zap.String("title", quiz.Title))
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for quiz %s: %w", quiz.Title, err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("Failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	quizID := util.NewULID()
	now := time.Now()
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO quizzes (ID, TITLE, TOPIC_ID, LANGUAGE, CREATED_AT, UPDATED_AT) VALUES (:1, :2, :3, :4, :5, :6)`,
		quizID, quiz.Title, topicID, quiz.Language, now, now); err != nil {
		return fmt.Errorf("failed to insert quiz %s: %w", quiz.Title, err)
	}

	for _, q := range quiz.Questions {
		options, err2 := models.StringSlice(q.Options).Value()
		if err2 != nil {
			err = fmt.Errorf("failed to encode options for quiz %s: %w", quiz.Title, err2)
			return err
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO questions (ID, QUIZ_ID, DIFFICULTY, QUESTION_TEXT, OPTIONS, CORRECT_ANSWER, EXPLANATION, CREATED_AT, UPDATED_AT)
			 VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9)`,
			util.NewULID(), quizID, int(domain.ParseDifficulty(q.Difficulty)), q.Text, options, q.CorrectAnswer, q.Explanation, now, now); err != nil {
			return fmt.Errorf("failed to insert question for quiz %s: %w", quiz.Title, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quiz %s: %w", quiz.Title, err)
	}
	log.Info("Inserted quiz", zap.String("title", quiz.Title), zap.Int("questions", len(quiz.Questions)))
	return nil
}
