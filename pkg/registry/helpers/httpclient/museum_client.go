package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/antiquarium-museum/artifact-register/pkg/registry/apperrors"
	"github.com/antiquarium-museum/artifact-register/pkg/registry/domain"
	"github.com/cenkalti/backoff/v4"
)

// MuseumClient fetches artifact data from the external museum API.
type MuseumClient interface {
	FetchArtifact(ctx context.Context, inventoryID string) (*domain.Artifact, error)
}

type museumClient struct {
	baseURL     string
	client      *http.Client
	initialWait time.Duration
}

// NewMuseumClient builds the museum API client. initialWait seeds the retry
// backoff; pass 0 for the production default of 500ms.
func NewMuseumClient(baseURL string, client *http.Client, initialWait time.Duration) MuseumClient {
	if client == nil {
		client = HTTPClient
	}
	if initialWait <= 0 {
		initialWait = 500 * time.Millisecond
	}
	return &museumClient{baseURL: baseURL, client: client, initialWait: initialWait}
}

// museumArtifactPayload is the upstream wire shape. acquisitionDate arrives
// as either a date or a full timestamp.
type museumArtifactPayload struct {
	InventoryID     string  `json:"inventoryId"`
	Name            string  `json:"name"`
	Department      string  `json:"department"`
	Era             string  `json:"era"`
	Material        string  `json:"material"`
	AcquisitionDate string  `json:"acquisitionDate"`
	Description     *string `json:"description"`
}

// FetchArtifact retrieves and validates one artifact. Transient transport
// errors are retried up to 3 attempts with jittered exponential backoff;
// client errors and invalid payloads are terminal and never retried.
func (c *museumClient) FetchArtifact(ctx context.Context, inventoryID string) (*domain.Artifact, error) {
	pu, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid museum api base url: %w", err)
	}
	pu.Path = path.Join(pu.Path, "artifacts", inventoryID)

	var artifact *domain.Artifact
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pu.String(), nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return backoff.Permanent(apperrors.WrapWithID(apperrors.ErrNotFound, inventoryID, nil))
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// deterministic client error, retrying won't change the answer
			return backoff.Permanent(fmt.Errorf("museum api returned %s", resp.Status))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("museum api returned %s", resp.Status)
		}

		var payload museumArtifactPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return backoff.Permanent(fmt.Errorf("%w: decode museum payload: %v", domain.ErrValidation, err))
		}
		if payload.InventoryID == "" {
			payload.InventoryID = inventoryID
		}

		acquired, err := parseAcquisitionDate(payload.AcquisitionDate)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("%w: %v", domain.ErrValidation, err))
		}

		artifact, err = domain.NewArtifact(domain.NewArtifactParams{
			InventoryID:     payload.InventoryID,
			AcquisitionDate: acquired,
			Name:            payload.Name,
			Department:      payload.Department,
			Era:             payload.Era,
			Material:        payload.Material,
			Description:     payload.Description,
		})
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialWait
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(b, 2), ctx)); err != nil {
		// Retry unwraps permanent errors, so the not-found and validation
		// kinds come back as-is; everything else is a transport failure.
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		log.Printf("[museum] fetch failed inventoryId=%s: %v", inventoryID, err)
		return nil, apperrors.WrapWithID(apperrors.ErrExternalFetch, inventoryID, err)
	}
	return artifact, nil
}

func parseAcquisitionDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable acquisition date %q", raw)
}
