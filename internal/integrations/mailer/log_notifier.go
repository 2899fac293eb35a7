package mailer

import (
	"context"
	"strings"
)

// LogNotifier пишет код в лог вместо отправки (режим разработки без SMTP)
type LogNotifier struct {
	log Logger
}

// NewLogNotifier создает заглушку
func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Deliver логирует письмо и всегда успешен
func (n *LogNotifier) Deliver(ctx context.Context, contact string, notification Notification) error {
	if _, err := render(notification); err != nil {
		return err
	}

	n.log.Info("Mailer (mock): code=%s to=%s date=%s time=%s services=%s",
		notification.Code, contact, notification.Date.Format("2006-01-02"),
		notification.StartTime, strings.Join(notification.ServiceNames, ","))
	return nil
}
