// cmd/main.go
package main

import (
	"log/slog"

	"github.com/joho/godotenv"

	"go_vocab_quiz/internal/cli"
)

func main() {
	// NOTION_API_KEY, NOTION_DATABASE_ID and GEMINI_API_KEY usually live in .env
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded, using process environment", slog.Any("error", err))
	}
	cli.Execute()
}
