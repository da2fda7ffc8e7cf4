// internal/config/constants.go
package config

import "time"

const (
	AppName    = "vocabquiz"
	AppVersion = "0.3.0"
)

const (
	DefaultServerPort  = ":8080"
	DefaultLogLevel    = "info"
	DefaultLogDir      = "logs"
	DefaultDatabaseURL = "vocabquiz.db"
	DefaultQuizWords   = 5
	DefaultQuizMode    = "generated"
)

const (
	DefaultNotionBaseURL  = "https://api.notion.com"
	DefaultNotionVersion  = "2022-06-28"
	DefaultNotionPageSize = 100
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel   = "gemini-2.0-flash"
	DefaultGeminiTimeout = 60 * time.Second
)
