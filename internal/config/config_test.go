package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_LoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultNotionBaseURL, cfg.Notion.BaseURL)
	assert.Equal(t, DefaultNotionPageSize, cfg.Notion.PageSize)
	assert.Equal(t, "Multiplicity", cfg.Notion.MultiplicityField)
	assert.Equal(t, DefaultGeminiModel, cfg.Gemini.Model)
	assert.Equal(t, DefaultGeminiTimeout, cfg.Gemini.Timeout)
	assert.Equal(t, DefaultQuizWords, cfg.Quiz.Words)
	assert.Equal(t, "generated", cfg.Quiz.Mode)
	assert.False(t, cfg.Quiz.DecreaseOnCorrect)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultDatabaseURL, cfg.Database.URL)
}

func Test_LoadConfig_FileAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	yaml := `
notion:
  api_key: file-key
  database_id: db-123
  page_size: 500
gemini:
  timeout: 5s
quiz:
  words: 8
  recent_words: 2
  recent_days: 7
  decrease_on_correct: true
server:
  port: ":9090"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	t.Setenv("NOTION_API_KEY", "env-key")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Notion.APIKey)
	assert.Equal(t, "db-123", cfg.Notion.DatabaseID)
	assert.Equal(t, DefaultNotionPageSize, cfg.Notion.PageSize, "page size above the API maximum is reset")
	assert.Equal(t, "gemini-key", cfg.Gemini.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, 8, cfg.Quiz.Words)
	assert.Equal(t, 2, cfg.Quiz.RecentWords)
	assert.Equal(t, 7, cfg.Quiz.RecentDays)
	assert.True(t, cfg.Quiz.DecreaseOnCorrect)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func Test_LoadConfig_JSON(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	json := `{"notion": {"api_key": "k", "database_id": "d"}, "gemini": {"api_key": "g"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(json), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "k", cfg.Notion.APIKey)
	assert.Equal(t, "d", cfg.Notion.DatabaseID)
	assert.Equal(t, "g", cfg.Gemini.APIKey)
}

func Test_LoadConfig_BrokenFile(t *testing.T) {
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("notion: [unclosed"), 0o600))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}
