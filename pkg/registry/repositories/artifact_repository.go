package repositories

import (
	"context"
	"errors"
	"math"

	"github.com/antiquarium-museum/artifact-register/pkg/registry/apperrors"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/domain"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/helpers/util"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/models"
	"gorm.io/gorm"
)

// ArtifactRepository is the durable-storage contract the artifact flow
// depends on. Lookups never mutate storage; Save is an upsert.
type ArtifactRepository interface {
	FindByInventoryID(ctx context.Context, inventoryID string) (*domain.Artifact, error)
	Save(ctx context.Context, artifact *domain.Artifact) error
	List(ctx context.Context, page, perPage int, era *string) ([]domain.Artifact, models.Pagination, error)
	All(ctx context.Context) ([]domain.Artifact, error)
}

type artifactRepository struct {
	db *gorm.DB
}

func NewArtifactRepository(db *gorm.DB) ArtifactRepository {
	return &artifactRepository{db: db}
}

func (r *artifactRepository) FindByInventoryID(ctx context.Context, inventoryID string) (*domain.Artifact, error) {
	var rec models.ArtifactRecord
	err := r.db.WithContext(ctx).First(&rec, "inventory_id = ?", inventoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.WrapWithID(apperrors.ErrPersistence, inventoryID, err)
	}
	return util.FromRecord(rec), nil
}

// Save upserts: an existing row gets every mutable field updated (everything
// except the identifier and the creation timestamp), a missing row is
// inserted. A uniqueness violation on insert surfaces as ErrConflict so the
// caller can decide between "already exists, fine" and "real error".
func (r *artifactRepository) Save(ctx context.Context, artifact *domain.Artifact) error {
	db := r.db.WithContext(ctx)

	var existing models.ArtifactRecord
	err := db.First(&existing, "inventory_id = ?", artifact.InventoryID).Error
	switch {
	case err == nil:
		updates := map[string]any{
			"acquisition_date": artifact.AcquisitionDate,
			"name":             artifact.Name,
			"department":       artifact.Department,
			"era":              artifact.Era.String(),
			"material":         artifact.Material.String(),
			"description":      artifact.Description,
		}
		if err := db.Model(&models.ArtifactRecord{}).
			Where("inventory_id = ?", artifact.InventoryID).
			Updates(updates).Error; err != nil {
			return apperrors.WrapWithID(apperrors.ErrPersistence, artifact.InventoryID, err)
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		rec := util.ToRecord(artifact)
		if err := db.Create(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.WrapWithID(apperrors.ErrConflict, artifact.InventoryID, err)
			}
			return apperrors.WrapWithID(apperrors.ErrPersistence, artifact.InventoryID, err)
		}
		return nil
	default:
		return apperrors.WrapWithID(apperrors.ErrPersistence, artifact.InventoryID, err)
	}
}

func (r *artifactRepository) List(ctx context.Context, page, perPage int, era *string) ([]domain.Artifact, models.Pagination, error) {
	db := r.db.WithContext(ctx).Model(&models.ArtifactRecord{})
	if era != nil && *era != "" {
		db = db.Where("era = ?", *era)
	}

	var totalRecords int64
	if err := db.Count(&totalRecords).Error; err != nil {
		return nil, models.Pagination{}, err
	}

	offset := (page - 1) * perPage
	var recs []models.ArtifactRecord
	if err := db.Order("inventory_id").Limit(perPage).Offset(offset).Find(&recs).Error; err != nil {
		return nil, models.Pagination{}, err
	}

	artifacts := make([]domain.Artifact, len(recs))
	for i, rec := range recs {
		artifacts[i] = *util.FromRecord(rec)
	}

	totalPages := int(math.Ceil(float64(totalRecords) / float64(perPage)))
	pagination := models.Pagination{
		CurrentPage:    page,
		RecordsPerPage: perPage,
		TotalPages:     totalPages,
		TotalRecords:   int(totalRecords),
	}
	if page < totalPages {
		next := page + 1
		pagination.Next = &next
	}
	if page > 1 {
		prev := page - 1
		pagination.Previous = &prev
	}

	return artifacts, pagination, nil
}

func (r *artifactRepository) All(ctx context.Context) ([]domain.Artifact, error) {
	var recs []models.ArtifactRecord
	if err := r.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, err
	}
	artifacts := make([]domain.Artifact, len(recs))
	for i, rec := range recs {
		artifacts[i] = *util.FromRecord(rec)
	}
	return artifacts, nil
}
