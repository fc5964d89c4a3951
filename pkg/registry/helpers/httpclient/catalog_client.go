package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/antiquarium-museum/artifact-register/pkg/registry/domain"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/models"
	"github.com/cenkalti/backoff/v4"
)

// CatalogClient pushes the public projection of an artifact to the catalog
// service and returns the public id the catalog assigned.
type CatalogClient interface {
	PublishArtifact(ctx context.Context, artifact *domain.Artifact) (string, error)
}

type catalogClient struct {
	baseURL     string
	client      *http.Client
	initialWait time.Duration
}

// NewCatalogClient builds the catalog API client. initialWait seeds the retry
// backoff; pass 0 for the production default of 1s.
func NewCatalogClient(baseURL string, client *http.Client, initialWait time.Duration) CatalogClient {
	if client == nil {
		client = HTTPClient
	}
	if initialWait <= 0 {
		initialWait = time.Second
	}
	return &catalogClient{baseURL: baseURL, client: client, initialWait: initialWait}
}

// PublishArtifact POSTs the catalog projection (no acquisition date, no
// department) and retries transient failures up to 3 attempts.
func (c *catalogClient) PublishArtifact(ctx context.Context, artifact *domain.Artifact) (string, error) {
	pu, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid catalog api base url: %w", err)
	}
	pu.Path = path.Join(pu.Path, "items")

	publication := models.CatalogPublication{
		InventoryID: artifact.InventoryID,
		Name:        artifact.Name,
		Era:         artifact.Era.String(),
		Material:    artifact.Material.String(),
		Description: artifact.Description,
	}
	body, err := json.Marshal(publication)
	if err != nil {
		return "", fmt.Errorf("encode catalog publication: %w", err)
	}

	var publicID string
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, pu.String(), bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// deterministic client error, retrying won't change the answer
			return backoff.Permanent(fmt.Errorf("catalog api returned %s", resp.Status))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("catalog api returned %s", resp.Status)
		}

		var out struct {
			PublicID string `json:"public_id"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode catalog response: %w", err))
		}
		if out.PublicID == "" {
			return backoff.Permanent(fmt.Errorf("catalog response missing public_id"))
		}
		publicID = out.PublicID
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialWait
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, 2), ctx)); err != nil {
		log.Printf("[catalog] publish failed inventoryId=%s: %v", artifact.InventoryID, err)
		return "", err
	}
	return publicID, nil
}
