package domain

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// ErrValidation marks any violation of the artifact invariants. Callers match
// it with errors.Is.
var ErrValidation = errors.New("artifact validation failed")

// Artifact is the catalogued museum item. Instances are only created through
// NewArtifact (which enforces the invariants) or Rehydrate (for payloads that
// were validated before they were stored). Treat a constructed Artifact as
// immutable.
type Artifact struct {
	InventoryID     string
	CreatedAt       time.Time
	AcquisitionDate time.Time
	Name            string
	Department      string
	Era             Era
	Material        Material
	Description     *string
}

// NewArtifactParams carries the raw values for constructing an Artifact. Era
// and Material arrive as strings so that upstream payloads fail construction,
// not some later step.
type NewArtifactParams struct {
	InventoryID     string
	CreatedAt       time.Time // zero means "now"
	AcquisitionDate time.Time
	Name            string
	Department      string
	Era             string
	Material        string
	Description     *string
}

// NewArtifact validates all business invariants and returns an always-valid
// entity. Every failure wraps ErrValidation.
func NewArtifact(p NewArtifactParams) (*Artifact, error) {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	if p.InventoryID == "" {
		return nil, fmt.Errorf("%w: inventory id is required", ErrValidation)
	}
	if p.AcquisitionDate.After(time.Now().UTC()) {
		return nil, fmt.Errorf("%w: acquisition date cannot be in the future", ErrValidation)
	}
	if p.AcquisitionDate.After(createdAt) {
		return nil, fmt.Errorf("%w: acquisition date cannot be later than creation timestamp", ErrValidation)
	}
	// length limits count characters, not bytes
	if l := utf8.RuneCountInString(p.Name); l < 2 || l > 100 {
		return nil, fmt.Errorf("%w: name must be between 2 and 100 characters", ErrValidation)
	}
	if l := utf8.RuneCountInString(p.Department); l < 2 || l > 100 {
		return nil, fmt.Errorf("%w: department must be between 2 and 100 characters", ErrValidation)
	}
	if p.Description != nil && utf8.RuneCountInString(*p.Description) > 1000 {
		return nil, fmt.Errorf("%w: description must be at most 1000 characters", ErrValidation)
	}

	era, err := ParseEra(p.Era)
	if err != nil {
		return nil, err
	}
	material, err := ParseMaterial(p.Material)
	if err != nil {
		return nil, err
	}

	return &Artifact{
		InventoryID:     p.InventoryID,
		CreatedAt:       createdAt,
		AcquisitionDate: p.AcquisitionDate,
		Name:            p.Name,
		Department:      p.Department,
		Era:             era,
		Material:        material,
		Description:     p.Description,
	}, nil
}

// Rehydrate rebuilds an Artifact from a trusted source (database row, cache
// payload) without re-running the invariants. Stored payloads were validated
// when they were first materialized.
func Rehydrate(inventoryID string, createdAt, acquisitionDate time.Time, name, department, era, material string, description *string) *Artifact {
	return &Artifact{
		InventoryID:     inventoryID,
		CreatedAt:       createdAt,
		AcquisitionDate: acquisitionDate,
		Name:            name,
		Department:      department,
		Era:             Era(era),
		Material:        Material(material),
		Description:     description,
	}
}
