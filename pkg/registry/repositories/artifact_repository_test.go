package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/antiquarium-museum/artifact-register/pkg/registry/domain"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/models"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	// one named in-memory database per test, shared across pooled connections
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ArtifactRecord{}))
	return db
}

func sampleArtifact(t *testing.T, id string) *domain.Artifact {
	t.Helper()
	a, err := domain.NewArtifact(domain.NewArtifactParams{
		InventoryID:     id,
		AcquisitionDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Name:            "Ancient Vase",
		Department:      "Archaeology",
		Era:             "antiquity",
		Material:        "ceramic",
	})
	require.NoError(t, err)
	return a
}

func TestFindByInventoryID_Missing(t *testing.T) {
	repo := repositories.NewArtifactRepository(setupDB(t))
	got, err := repo.FindByInventoryID(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSave_InsertAndFind(t *testing.T) {
	repo := repositories.NewArtifactRepository(setupDB(t))
	a := sampleArtifact(t, "inv-ins-1")

	require.NoError(t, repo.Save(context.Background(), a))

	got, err := repo.FindByInventoryID(context.Background(), "inv-ins-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.Name, got.Name)
	assert.Equal(t, a.Era, got.Era)
	assert.Equal(t, a.Material, got.Material)
	assert.WithinDuration(t, a.CreatedAt, got.CreatedAt, time.Second)
}

func TestSave_UpsertUpdatesMutableFields(t *testing.T) {
	repo := repositories.NewArtifactRepository(setupDB(t))
	a := sampleArtifact(t, "inv-ups-1")
	require.NoError(t, repo.Save(context.Background(), a))

	desc := "restored in 1998"
	updated, err := domain.NewArtifact(domain.NewArtifactParams{
		InventoryID:     a.InventoryID,
		CreatedAt:       a.CreatedAt,
		AcquisitionDate: a.AcquisitionDate,
		Name:            "Restored Vase",
		Department:      "Conservation",
		Era:             "antiquity",
		Material:        "ceramic",
		Description:     &desc,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), updated))

	got, err := repo.FindByInventoryID(context.Background(), a.InventoryID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Restored Vase", got.Name)
	assert.Equal(t, "Conservation", got.Department)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
	// creation timestamp is immutable across upserts
	assert.WithinDuration(t, a.CreatedAt, got.CreatedAt, time.Second)
}

func TestList_PaginatesAndFilters(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewArtifactRepository(db)
	ctx := context.Background()

	for _, id := range []string{"inv-l-1", "inv-l-2", "inv-l-3"} {
		require.NoError(t, repo.Save(ctx, sampleArtifact(t, id)))
	}
	bronze, err := domain.NewArtifact(domain.NewArtifactParams{
		InventoryID:     "inv-l-4",
		AcquisitionDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Name:            "Bronze Axe",
		Department:      "Archaeology",
		Era:             "bronze_age",
		Material:        "metal",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, bronze))

	page1, pagination, err := repo.List(ctx, 1, 2, nil)
	require.NoError(t, err)
	assert.Len(t, page1, 2)
	assert.Equal(t, 4, pagination.TotalRecords)
	assert.Equal(t, 2, pagination.TotalPages)
	require.NotNil(t, pagination.Next)
	assert.Equal(t, 2, *pagination.Next)
	assert.Nil(t, pagination.Previous)

	era := "bronze_age"
	filtered, pagination, err := repo.List(ctx, 1, 10, &era)
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
	assert.Equal(t, "inv-l-4", filtered[0].InventoryID)
	assert.Equal(t, 1, pagination.TotalRecords)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	db := setupDB(t)
	uow := repositories.NewUnitOfWork(db)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(repo repositories.ArtifactRepository) error {
		if err := repo.Save(ctx, sampleArtifact(t, "inv-tx-1")); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	got, err := repositories.NewArtifactRepository(db).FindByInventoryID(ctx, "inv-tx-1")
	require.NoError(t, err)
	assert.Nil(t, got, "rolled-back write must not be visible")
}

func TestUnitOfWork_CommitsOnSuccess(t *testing.T) {
	db := setupDB(t)
	uow := repositories.NewUnitOfWork(db)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(repo repositories.ArtifactRepository) error {
		return repo.Save(ctx, sampleArtifact(t, "inv-tx-2"))
	})
	require.NoError(t, err)

	got, err := repositories.NewArtifactRepository(db).FindByInventoryID(ctx, "inv-tx-2")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestAll_ReturnsEveryRow(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewArtifactRepository(db)
	ctx := context.Background()

	for _, id := range []string{"inv-a-1", "inv-a-2"} {
		require.NoError(t, repo.Save(ctx, sampleArtifact(t, id)))
	}

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
