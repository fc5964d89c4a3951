package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/antiquarium-museum/artifact-register/pkg/registry/apperrors"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/broker"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/cache"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/domain"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/helpers/httpclient"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/helpers/util"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/models"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/repositories"
)

// PublishPolicy decides what a failed post-commit publish does to the
// request. The artifact is already durable at that point, so the default is
// to log and continue; PublishFatal aborts instead and surfaces the failure
// as its own error kind. A deployment picks one policy and sticks with it.
type PublishPolicy string

const (
	PublishContinue PublishPolicy = "continue"
	PublishFatal    PublishPolicy = "fatal"
)

// ArtifactsAPIService orchestrates the artifact retrieval pipeline:
// cache, then repository, then the external museum API, then the
// post-commit notifications.
type ArtifactsAPIService struct {
	uow      repositories.UnitOfWork
	cache    cache.ArtifactCache
	museum   httpclient.MuseumClient
	catalog  httpclient.CatalogClient
	events   broker.EventPublisher
	policy   PublishPolicy
	cacheTTL time.Duration
}

func NewArtifactsAPIService(
	uow repositories.UnitOfWork,
	artifactCache cache.ArtifactCache,
	museum httpclient.MuseumClient,
	catalog httpclient.CatalogClient,
	events broker.EventPublisher,
	policy PublishPolicy,
	cacheTTL time.Duration,
) *ArtifactsAPIService {
	if policy == "" {
		policy = PublishContinue
	}
	return &ArtifactsAPIService{
		uow:      uow,
		cache:    artifactCache,
		museum:   museum,
		catalog:  catalog,
		events:   events,
		policy:   policy,
		cacheTTL: cacheTTL,
	}
}

// ProcessArtifact resolves an artifact by inventory id.
//
// Fast path: a cache hit returns immediately. Medium path: a repository hit
// fills the cache (best effort) and returns. Cold path: the artifact is
// fetched from the museum API, persisted transactionally, cached, and then
// announced to the broker and the public catalog. The two publishes run
// after the commit and never roll it back.
func (s *ArtifactsAPIService) ProcessArtifact(ctx context.Context, inventoryID string) (*domain.Artifact, error) {
	if artifact, ok := s.cache.GetArtifact(ctx, inventoryID); ok {
		return artifact, nil
	}

	var stored *domain.Artifact
	err := s.uow.WithinTx(ctx, func(repo repositories.ArtifactRepository) error {
		var err error
		stored, err = repo.FindByInventoryID(ctx, inventoryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if stored != nil {
		s.cache.SetArtifact(ctx, inventoryID, stored, s.cacheTTL)
		return stored, nil
	}

	log.Printf("[process] artifact not found locally, fetching from museum api inventoryId=%s", inventoryID)
	fetched, err := s.museum.FetchArtifact(ctx, inventoryID)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(repo repositories.ArtifactRepository) error {
		if err := repo.Save(ctx, fetched); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				// A concurrent cold path won the insert race. The row is
				// equivalent, so take the stored copy and move on.
				existing, findErr := repo.FindByInventoryID(ctx, inventoryID)
				if findErr != nil {
					return findErr
				}
				if existing != nil {
					fetched = existing
					return nil
				}
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.SetArtifact(ctx, inventoryID, fetched, s.cacheTTL)

	if err := s.events.PublishNewArtifact(ctx, fetched); err != nil {
		log.Printf("[process] broker publish failed (artifact already committed) inventoryId=%s: %v", inventoryID, err)
		if s.policy == PublishFatal {
			return nil, apperrors.WrapWithID(apperrors.ErrBrokerPublish, inventoryID, err)
		}
	}

	if publicID, err := s.catalog.PublishArtifact(ctx, fetched); err != nil {
		log.Printf("[process] catalog publish failed (artifact already committed) inventoryId=%s: %v", inventoryID, err)
		if s.policy == PublishFatal {
			return nil, apperrors.WrapWithID(apperrors.ErrCatalogPublish, inventoryID, err)
		}
	} else {
		log.Printf("[process] artifact published to catalog inventoryId=%s publicId=%s", inventoryID, publicID)
	}

	log.Printf("[process] artifact registered inventoryId=%s", inventoryID)
	return fetched, nil
}

// ListArtifacts pages through the registered artifacts.
func (s *ArtifactsAPIService) ListArtifacts(ctx context.Context, p *models.ListArtifactsParams) ([]models.ArtifactResponse, models.Pagination, error) {
	var (
		artifacts  []domain.Artifact
		pagination models.Pagination
	)
	err := s.uow.WithinTx(ctx, func(repo repositories.ArtifactRepository) error {
		var err error
		artifacts, pagination, err = repo.List(ctx, p.Page, p.PerPage, p.Era)
		return err
	})
	if err != nil {
		return nil, models.Pagination{}, err
	}

	out := make([]models.ArtifactResponse, len(artifacts))
	for i := range artifacts {
		out[i] = util.ToArtifactResponse(&artifacts[i])
	}
	return out, pagination, nil
}

// WarmCache re-primes the cache for every stored artifact. Used by the
// scheduled warmup job; individual cache failures are already absorbed by
// the cache adapter.
func (s *ArtifactsAPIService) WarmCache(ctx context.Context, artifact *domain.Artifact) {
	s.cache.SetArtifact(ctx, artifact.InventoryID, artifact, s.cacheTTL)
}

// AllArtifacts returns every stored artifact, for the warmup job.
func (s *ArtifactsAPIService) AllArtifacts(ctx context.Context) ([]domain.Artifact, error) {
	var artifacts []domain.Artifact
	err := s.uow.WithinTx(ctx, func(repo repositories.ArtifactRepository) error {
		var err error
		artifacts, err = repo.All(ctx)
		return err
	})
	return artifacts, err
}
