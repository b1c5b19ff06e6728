package iac

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher forwards indexed contract events to other services.
type Publisher interface {
	Publish(ctx context.Context, messages ...Msg) error
	Close() error
}

type kafkaPublisher struct {
	writer *kafka.Writer
}

type Msg struct {
	PartitionKey string
	Message      string
}

// NewPublisher writes to topic on brokers. When the broker creates topics on
// demand, the first write to a new topic fails and is retried by the writer.
func NewPublisher(brokers []string, topic string) (Publisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           1 * time.Second,
		RequiredAcks:           kafka.RequireOne,
		MaxAttempts:            3,
		AllowAutoTopicCreation: true,
	}
	return &kafkaPublisher{writer: writer}, nil
}

func (k *kafkaPublisher) Publish(ctx context.Context, messages ...Msg) error {
	if len(messages) == 0 {
		return nil
	}
	return k.writer.WriteMessages(ctx, toKafkaMessages(time.Now(), messages)...)
}

func (k *kafkaPublisher) Close() error {
	return k.writer.Close()
}

func toKafkaMessages(now time.Time, messages []Msg) []kafka.Message {
	msgs := make([]kafka.Message, 0, len(messages))
	for _, msg := range messages {
		msgs = append(msgs, kafka.Message{
			Key:   []byte(msg.PartitionKey),
			Value: []byte(msg.Message),
			Time:  now,
		})
	}
	return msgs
}
