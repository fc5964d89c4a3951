package models

import "time"

// ArtifactRecord is the persistence model for an artifact row.
type ArtifactRecord struct {
	InventoryID     string    `gorm:"column:inventory_id;primaryKey"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	AcquisitionDate time.Time `gorm:"column:acquisition_date"`
	Name            string    `gorm:"column:name;size:100"`
	Department      string    `gorm:"column:department;size:100"`
	Era             string    `gorm:"column:era;size:32;index"`
	Material        string    `gorm:"column:material;size:32"`
	Description     *string   `gorm:"column:description;size:1000"`
}

func (ArtifactRecord) TableName() string { return "artifacts" }

// ArtifactResponse is the external view of an artifact. The same shape is
// used as the cache payload, so a cache hit deserializes straight into it.
type ArtifactResponse struct {
	InventoryID     string    `json:"inventoryId"`
	CreatedAt       time.Time `json:"createdAt"`
	AcquisitionDate time.Time `json:"acquisitionDate"`
	Name            string    `json:"name"`
	Department      string    `json:"department"`
	Era             string    `json:"era"`
	Material        string    `json:"material"`
	Description     *string   `json:"description,omitempty"`
}

// AdmissionNotification is the broker projection of an artifact. It
// deliberately omits era and material.
type AdmissionNotification struct {
	EventID         string    `json:"eventId"`
	InventoryID     string    `json:"inventoryId"`
	Name            string    `json:"name"`
	AcquisitionDate time.Time `json:"acquisitionDate"`
	Department      string    `json:"department"`
}

// CatalogPublication is the public catalog projection of an artifact. It
// deliberately omits acquisition date and department.
type CatalogPublication struct {
	InventoryID string  `json:"inventoryId"`
	Name        string  `json:"name"`
	Era         string  `json:"era"`
	Material    string  `json:"material"`
	Description *string `json:"description,omitempty"`
}

type ListArtifactsParams struct {
	Page    int     `query:"page"`
	PerPage int     `query:"perPage"`
	Era     *string `query:"era"`
}

type ArtifactParams struct {
	InventoryID string `path:"inventoryId" validate:"required"`
}

type Pagination struct {
	Next           *int `json:"next,omitempty"`
	Previous       *int `json:"previous,omitempty"`
	CurrentPage    int  `json:"currentPage"`
	RecordsPerPage int  `json:"recordsPerPage"`
	TotalPages     int  `json:"totalPages"`
	TotalRecords   int  `json:"totalRecords"`
}
