// Package cache holds the artifact cache contract and its Redis adapter.
// Cache trouble must never fail a request: reads degrade to a miss and
// writes report false, both logged at error severity.
package cache

import (
	"context"
	"time"

	"github.com/antiquarium-museum/artifact-register/pkg/registry/domain"
)

// ArtifactCache is the fast-path lookup the artifact flow consults first.
// ttl <= 0 means "use the configured default".
type ArtifactCache interface {
	GetArtifact(ctx context.Context, inventoryID string) (*domain.Artifact, bool)
	SetArtifact(ctx context.Context, inventoryID string, artifact *domain.Artifact, ttl time.Duration) bool
}
