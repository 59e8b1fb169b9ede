package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// envelope is the JSON payload published for downstream mailers.
type envelope struct {
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

type Kafka struct {
	writer messageWriter
	now    func() time.Time
}

// NewKafka publishes synchronously and waits for all in-sync replicas, so Send
// only returns nil once the message is durable.
func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
			WriteTimeout:           10 * time.Second,
		},
		now: time.Now,
	}
}

func (k *Kafka) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(envelope{
		To:      msg.To,
		Subject: msg.Subject,
		Body:    msg.Body,
		SentAt:  k.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	err = k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.To),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}
