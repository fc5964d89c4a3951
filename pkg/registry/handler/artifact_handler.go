package handler

import (
	"errors"
	"fmt"

	"github.com/antiquarium-museum/artifact-register/pkg/registry/apperrors"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/domain"
	problem "github.com/antiquarium-museum/artifact-register/pkg/registry/helpers/problem"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/helpers/util"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/models"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/services"
	"github.com/gin-gonic/gin"
)

// ArtifactsAPIController binds HTTP requests to the ArtifactsAPIService
type ArtifactsAPIController struct {
	Service *services.ArtifactsAPIService
}

// NewArtifactsAPIController creates a new controller
func NewArtifactsAPIController(s *services.ArtifactsAPIService) *ArtifactsAPIController {
	return &ArtifactsAPIController{Service: s}
}

// RetrieveArtifact handles GET /artifacts/:inventoryId. Error kinds map to
// stable status codes; internal error text never reaches the caller.
func (c *ArtifactsAPIController) RetrieveArtifact(ctx *gin.Context, params *models.ArtifactParams) (*models.ArtifactResponse, error) {
	artifact, err := c.Service.ProcessArtifact(ctx.Request.Context(), params.InventoryID)
	if err != nil {
		return nil, mapProcessError(params.InventoryID, err)
	}
	resp := util.ToArtifactResponse(artifact)
	return &resp, nil
}

// ListArtifacts handles GET /artifacts
func (c *ArtifactsAPIController) ListArtifacts(ctx *gin.Context, p *models.ListArtifactsParams) ([]models.ArtifactResponse, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 10
	}
	artifacts, pagination, err := c.Service.ListArtifacts(ctx.Request.Context(), p)
	if err != nil {
		return nil, problem.NewInternalServerError("could not list artifacts")
	}
	ctx.Header("X-Total-Count", fmt.Sprintf("%d", pagination.TotalRecords))
	return artifacts, nil
}

// Health handles GET /health
func (c *ArtifactsAPIController) Health(ctx *gin.Context) (map[string]string, error) {
	return map[string]string{"status": "ok"}, nil
}

func mapProcessError(inventoryID string, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return problem.NewNotFound(inventoryID, "Artifact not found")
	case errors.Is(err, domain.ErrValidation):
		return problem.NewBadRequest(inventoryID, "External source returned an invalid artifact")
	case errors.Is(err, apperrors.ErrExternalFetch):
		return problem.NewBadRequest(inventoryID, "Could not fetch artifact from external service")
	case errors.Is(err, apperrors.ErrCatalogPublish):
		return problem.NewBadRequest(inventoryID, "Artifact registered but catalog publication failed")
	case errors.Is(err, apperrors.ErrBrokerPublish):
		return problem.NewBadGateway(inventoryID, "Artifact registered but event notification failed")
	case errors.Is(err, apperrors.ErrConflict):
		return problem.NewConflict(inventoryID, "Artifact already registered")
	default:
		return problem.NewInternalServerError("Could not process artifact")
	}
}
