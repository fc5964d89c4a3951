// Package broker publishes artifact admission events to Kafka.
package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/antiquarium-museum/artifact-register/pkg/registry/domain"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/models"
	"github.com/segmentio/kafka-go"
	"github.com/teris-io/shortid"
)

// EventPublisher emits the admission notification for a newly registered
// artifact. The payload omits era and material.
type EventPublisher interface {
	PublishNewArtifact(ctx context.Context, artifact *domain.Artifact) error
}

// NewAdmissionNotification builds the broker projection for an artifact.
func NewAdmissionNotification(artifact *domain.Artifact) models.AdmissionNotification {
	eventID, err := shortid.Generate()
	if err != nil {
		eventID = artifact.InventoryID
	}
	return models.AdmissionNotification{
		EventID:         eventID,
		InventoryID:     artifact.InventoryID,
		Name:            artifact.Name,
		AcquisitionDate: artifact.AcquisitionDate,
		Department:      artifact.Department,
	}
}

// KafkaWriter is the subset of kafka.Writer the publisher needs.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	writer KafkaWriter
}

func NewKafkaPublisher(writer KafkaWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// NewWriter builds the long-lived Kafka writer the service shares across
// requests. The caller owns its lifecycle.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

// PublishNewArtifact writes one message keyed by inventory id, so all events
// for the same artifact land on the same partition.
func (p *KafkaPublisher) PublishNewArtifact(ctx context.Context, artifact *domain.Artifact) error {
	notification := NewAdmissionNotification(artifact)
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("encode admission notification: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(artifact.InventoryID),
		Value: payload,
	})
}
