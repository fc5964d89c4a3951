package broker_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/antiquarium-museum/artifact-register/pkg/registry/broker"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/domain"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureWriter struct {
	messages []kafka.Message
	err      error
}

func (w *captureWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func notifiedArtifact(t *testing.T) *domain.Artifact {
	t.Helper()
	a, err := domain.NewArtifact(domain.NewArtifactParams{
		InventoryID:     "inv-b-1",
		AcquisitionDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Name:            "Ancient Vase",
		Department:      "Archaeology",
		Era:             "antiquity",
		Material:        "ceramic",
	})
	require.NoError(t, err)
	return a
}

func TestPublishNewArtifact_MessageShape(t *testing.T) {
	w := &captureWriter{}
	p := broker.NewKafkaPublisher(w)

	require.NoError(t, p.PublishNewArtifact(context.Background(), notifiedArtifact(t)))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "inv-b-1", string(msg.Key), "messages are keyed by inventory id")

	var notification models.AdmissionNotification
	require.NoError(t, json.Unmarshal(msg.Value, &notification))
	assert.NotEmpty(t, notification.EventID)
	assert.Equal(t, "inv-b-1", notification.InventoryID)
	assert.Equal(t, "Ancient Vase", notification.Name)
	assert.Equal(t, "Archaeology", notification.Department)

	// the admission projection omits era and material
	var raw map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &raw))
	assert.NotContains(t, raw, "era")
	assert.NotContains(t, raw, "material")
}

func TestPublishNewArtifact_WriterFailurePropagates(t *testing.T) {
	w := &captureWriter{err: errors.New("broker unreachable")}
	p := broker.NewKafkaPublisher(w)

	err := p.PublishNewArtifact(context.Background(), notifiedArtifact(t))
	assert.Error(t, err)
}
