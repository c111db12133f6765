package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"spatialdataapi/src/domain"
	"spatialdataapi/src/infra/kafka"

	"github.com/google/uuid"
)

type FeatureAction string

const (
	FeatureCreated FeatureAction = "feature.created"
	FeatureUpdated FeatureAction = "feature.updated"
	FeatureDeleted FeatureAction = "feature.deleted"
)

// FeatureEvent is the payload published for every committed mutation.
type FeatureEvent struct {
	EventID    string    `json:"event_id"`
	Action     string    `json:"action"`
	Kind       string    `json:"kind"`
	FeatureID  int64     `json:"feature_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// FeatureEventPublisher emits feature lifecycle events to Kafka. Publishing
// is best effort and happens only after the storage commit: a broker failure
// is logged and never fails the request.
type FeatureEventPublisher struct {
	logger      *slog.Logger
	kafkaClient *kafka.KafkaClient
	topic       string
}

func NewFeatureEventPublisher(
	logger *slog.Logger,
	kafkaClient *kafka.KafkaClient,
	topic string,
) *FeatureEventPublisher {
	return &FeatureEventPublisher{
		logger:      logger,
		kafkaClient: kafkaClient,
		topic:       topic,
	}
}

func (p *FeatureEventPublisher) PublishFeatureEvents(ctx context.Context, kind domain.FeatureKind, action FeatureAction, featureIDs []int64) {
	if len(featureIDs) == 0 {
		return
	}

	now := time.Now().UTC()
	kafkaMessages := make([]kafka.Message, 0, len(featureIDs))

	for _, featureID := range featureIDs {
		event := FeatureEvent{
			EventID:    uuid.NewString(),
			Action:     string(action),
			Kind:       string(kind),
			FeatureID:  featureID,
			OccurredAt: now,
		}

		eventBytes, err := json.Marshal(event)
		if err != nil {
			p.logger.Error("Failed to marshal feature event",
				"error", err,
				"event_id", event.EventID,
				"feature_id", featureID)
			continue
		}

		kafkaMessages = append(kafkaMessages, kafka.Message{
			// Partition by feature id so events for one feature stay ordered.
			Key:   strconv.FormatInt(featureID, 10),
			Value: eventBytes,
			Headers: map[string]string{
				"event_type":     string(action),
				"feature_kind":   string(kind),
				"source_service": "spatial-data-api",
				"schema_version": "v1",
				"event_id":       event.EventID,
			},
		})
	}

	if err := p.kafkaClient.Producer(kafkaMessages, p.topic); err != nil {
		p.logger.Error("Failed to publish feature events",
			"error", err,
			"topic", p.topic,
			"events_count", len(kafkaMessages))
		return
	}

	p.logger.Debug("Published feature events",
		"topic", p.topic,
		"action", string(action),
		"events_count", len(kafkaMessages))
}
