// Package notify delivers report summaries to their recipient over the configured
// transport. Delivery is attempted once; callers decide what a failure means.
package notify

import (
	"context"
	"fmt"

	"inventory-backend/internal/config"

	"github.com/sirupsen/logrus"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Notifier interface {
	Send(ctx context.Context, msg Message) error
	Close() error
}

// New builds the notifier named by cfg.NotifyTransport.
func New(cfg *config.Config, logger *logrus.Logger) (Notifier, error) {
	switch cfg.NotifyTransport {
	case "smtp", "":
		return NewSMTP(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
	case "kafka":
		return NewKafka(cfg.KafkaBrokers, cfg.KafkaNotifyTopic), nil
	case "log":
		return NewLog(logger), nil
	default:
		return nil, fmt.Errorf("unknown notify transport %q", cfg.NotifyTransport)
	}
}
