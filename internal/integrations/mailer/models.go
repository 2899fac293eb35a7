package mailer

import "time"

const (
	LangEnglish = "en"
	LangHebrew  = "he"
)

// Notification содержимое письма с кодом подтверждения
type Notification struct {
	Code         string
	ExpiresAt    time.Time
	Date         time.Time
	StartTime    string
	ServiceNames []string
	CustomerName string
	Lang         string
}

// Config параметры SMTP
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}
