package alert

import (
	"context"
	"encoding/json"
	"log/slog"

	"voucher-issuer/internal/domain/voucher"
	"voucher-issuer/internal/pkg/clock"
	"voucher-issuer/internal/pkg/config"
	"voucher-issuer/internal/pkg/errs"

	"github.com/IBM/sarama"
)

func NewKafkaProducer(cfg config.AlertConfig) (sarama.SyncProducer, error) {
	scfg := sarama.NewConfig()
	scfg.Producer.Return.Successes = true
	scfg.Producer.Idempotent = true
	scfg.Net.MaxOpenRequests = 1
	scfg.Producer.RequiredAcks = sarama.WaitForAll
	scfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(cfg.KafkaBrokers, scfg)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create kafka producer")
	}
	return producer, nil
}

// KafkaAlerter publishes alerts keyed by order id so one order's alerts stay ordered.
type KafkaAlerter struct {
	producer sarama.SyncProducer
	topic    string
	clock    clock.Clock
	logger   *slog.Logger
}

func NewKafkaAlerter(producer sarama.SyncProducer, topic string, clock clock.Clock, logger *slog.Logger) *KafkaAlerter {
	return &KafkaAlerter{
		producer: producer,
		topic:    topic,
		clock:    clock,
		logger:   logger,
	}
}

func (a *KafkaAlerter) IssuanceFailed(_ context.Context, orderID string, outcome voucher.Outcome) error {
	body, err := json.Marshal(NewPayload(orderID, outcome, a.clock.Now()))
	if err != nil {
		return errs.Wrap(err, "failed to encode alert payload")
	}

	partition, offset, err := a.producer.SendMessage(&sarama.ProducerMessage{
		Topic: a.topic,
		Key:   sarama.StringEncoder(orderID),
		Value: sarama.ByteEncoder(body),
	})
	if err != nil {
		return errs.Wrap(err, "failed to publish issuance alert")
	}

	a.logger.Warn("issuance alert published",
		"order_id", orderID,
		"suffix_label", outcome.Variant.SuffixLabel,
		"topic", a.topic,
		"partition", partition,
		"offset", offset)
	return nil
}

func (a *KafkaAlerter) Close() error {
	return a.producer.Close()
}
