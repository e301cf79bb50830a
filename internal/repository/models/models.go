package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a []string as a JSON document in a CLOB column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// Topic maps the topics table.
type Topic struct {
	ID        string       `db:"ID"`
	Name      string       `db:"NAME"`
	Language  string       `db:"LANGUAGE"`
	CreatedAt time.Time    `db:"CREATED_AT"`
	UpdatedAt time.Time    `db:"UPDATED_AT"`
	DeletedAt sql.NullTime `db:"DELETED_AT"`
}

// Quiz maps the quizzes table, joined with its topic for reads.
type Quiz struct {
	ID            string         `db:"ID"`
	Title         string         `db:"TITLE"`
	TopicID       string         `db:"TOPIC_ID"`
	TopicName     sql.NullString `db:"TOPIC_NAME"`
	Language      string         `db:"LANGUAGE"`
	QuestionCount int            `db:"QUESTION_COUNT"`
	CreatedAt     time.Time      `db:"CREATED_AT"`
	UpdatedAt     time.Time      `db:"UPDATED_AT"`
	DeletedAt     sql.NullTime   `db:"DELETED_AT"`
}

// Question maps the questions table.
type Question struct {
	ID            string         `db:"ID"`
	QuizID        string         `db:"QUIZ_ID"`
	Difficulty    int            `db:"DIFFICULTY"`
	QuestionText  string         `db:"QUESTION_TEXT"`
	Options       StringSlice    `db:"OPTIONS"`
	CorrectAnswer int            `db:"CORRECT_ANSWER"`
	Explanation   sql.NullString `db:"EXPLANATION"`
	CreatedAt     time.Time      `db:"CREATED_AT"`
	UpdatedAt     time.Time      `db:"UPDATED_AT"`
	DeletedAt     sql.NullTime   `db:"DELETED_AT"`
}

// Attempt maps the attempts table.
type Attempt struct {
	ID             string         `db:"ID"`
	UserID         string         `db:"USER_ID"`
	QuizID         string         `db:"QUIZ_ID"`
	QuizTitle      sql.NullString `db:"QUIZ_TITLE"`
	TopicName      sql.NullString `db:"TOPIC_NAME"`
	Language       sql.NullString `db:"LANGUAGE"`
	Score          int            `db:"SCORE"`
	TotalQuestions int            `db:"TOTAL_QUESTIONS"`
	Accuracy       float64        `db:"ACCURACY"`
	StartedAt      time.Time      `db:"STARTED_AT"`
	CompletedAt    sql.NullTime   `db:"COMPLETED_AT"`
	CreatedAt      time.Time      `db:"CREATED_AT"`
	UpdatedAt      time.Time      `db:"UPDATED_AT"`
	DeletedAt      sql.NullTime   `db:"DELETED_AT"`
}

// Answer maps the answers table.
type Answer struct {
	ID             string    `db:"ID"`
	AttemptID      string    `db:"ATTEMPT_ID"`
	QuestionID     string    `db:"QUESTION_ID"`
	SelectedOption int       `db:"SELECTED_OPTION"`
	IsCorrect      int       `db:"IS_CORRECT"`
	Difficulty     int       `db:"DIFFICULTY"`
	TimeSpent      int       `db:"TIME_SPENT"`
	AnsweredAt     time.Time `db:"ANSWERED_AT"`
	CreatedAt      time.Time `db:"CREATED_AT"`
}
