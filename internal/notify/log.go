package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Log writes notifications to the application log instead of delivering them.
type Log struct {
	logger *logrus.Logger
}

func NewLog(logger *logrus.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Send(ctx context.Context, msg Message) error {
	l.logger.WithFields(logrus.Fields{
		"module":  "notify",
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info(msg.Body)
	return nil
}

func (l *Log) Close() error { return nil }
