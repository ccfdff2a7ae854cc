package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
	"github.com/severnmarket/go-backend/internal/cfg"
	"github.com/severnmarket/go-backend/pkg/e"
	"github.com/severnmarket/go-backend/pkg/logger"
)

// Notifier передаёт письма сброса пароля внешнему почтовому сервису
// через отдельный топик. Ключ — email получателя.
type Notifier struct {
	writer *kafka.Writer
	logger logger.Logger
}

func NewNotifier(logger logger.Logger, cfg *cfg.KafkaCfg) *Notifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.EmailsTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka notifier error: %s", err.Error())
			}
		},
	}

	return &Notifier{
		writer: writer,
		logger: logger,
	}
}

type passwordResetMessage struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (n *Notifier) SendPasswordReset(ctx context.Context, email, token string, expiresAt time.Time) error {
	payload, err := json.Marshal(passwordResetMessage{
		Email:     email,
		Token:     token,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(email),
		Value: payload,
	})
}

func (n *Notifier) Close() error {
	return n.writer.Close()
}
