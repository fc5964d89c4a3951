package util

import (
	"github.com/antiquarium-museum/artifact-register/pkg/registry/domain"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/models"
)

// ToArtifactResponse builds the external (and cache) view of an artifact.
func ToArtifactResponse(a *domain.Artifact) models.ArtifactResponse {
	return models.ArtifactResponse{
		InventoryID:     a.InventoryID,
		CreatedAt:       a.CreatedAt,
		AcquisitionDate: a.AcquisitionDate,
		Name:            a.Name,
		Department:      a.Department,
		Era:             a.Era.String(),
		Material:        a.Material.String(),
		Description:     a.Description,
	}
}

// FromArtifactResponse rebuilds the entity from a previously serialized view.
// Cached payloads were valid when written, so no invariants are re-run.
func FromArtifactResponse(r models.ArtifactResponse) *domain.Artifact {
	return domain.Rehydrate(
		r.InventoryID,
		r.CreatedAt,
		r.AcquisitionDate,
		r.Name,
		r.Department,
		r.Era,
		r.Material,
		r.Description,
	)
}

// ToRecord converts an entity to its persistence model.
func ToRecord(a *domain.Artifact) models.ArtifactRecord {
	return models.ArtifactRecord{
		InventoryID:     a.InventoryID,
		CreatedAt:       a.CreatedAt,
		AcquisitionDate: a.AcquisitionDate,
		Name:            a.Name,
		Department:      a.Department,
		Era:             a.Era.String(),
		Material:        a.Material.String(),
		Description:     a.Description,
	}
}

// FromRecord rebuilds the entity from a stored row.
func FromRecord(rec models.ArtifactRecord) *domain.Artifact {
	return domain.Rehydrate(
		rec.InventoryID,
		rec.CreatedAt,
		rec.AcquisitionDate,
		rec.Name,
		rec.Department,
		rec.Era,
		rec.Material,
		rec.Description,
	)
}
