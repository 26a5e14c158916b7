// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultBatchSize is the number of messages submitted to the LLM per request.
const DefaultBatchSize = 100

// Config holds the application configuration.
type Config struct {
	TelegramBotToken string
	OperatorID       int64
	DatabasePath     string
	LogLevel         string
	LLMAPIKey        string
	LLMBaseURL       string
	LLMModel         string
	SummaryBatchSize int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	rawOperator := os.Getenv("OPERATOR_ID")
	if rawOperator == "" {
		return nil, fmt.Errorf("OPERATOR_ID is required")
	}
	operatorID, err := strconv.ParseInt(rawOperator, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OPERATOR_ID %q: %w", rawOperator, err)
	}

	llmKey := os.Getenv("LLM_API_KEY")
	if llmKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./data/bot.db"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	llmModel := os.Getenv("LLM_MODEL")
	if llmModel == "" {
		llmModel = "gpt-4o-mini"
	}

	batchSize := DefaultBatchSize
	if raw := os.Getenv("SUMMARY_BATCH_SIZE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 1000 {
			return nil, fmt.Errorf("SUMMARY_BATCH_SIZE must be between 1 and 1000")
		}
		batchSize = n
	}

	return &Config{
		TelegramBotToken: token,
		OperatorID:       operatorID,
		DatabasePath:     dbPath,
		LogLevel:         logLevel,
		LLMAPIKey:        llmKey,
		LLMBaseURL:       os.Getenv("LLM_BASE_URL"),
		LLMModel:         llmModel,
		SummaryBatchSize: batchSize,
	}, nil
}
