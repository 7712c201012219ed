package services

import (
	"context"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
)

// OwnerReaderSvc defines read operations for the owner directory
type OwnerReaderSvc interface {
	// GetOwnerByName retrieves an owner by its unique name.
	GetOwnerByName(ctx context.Context, name string) (*domain.TruckOwner, error)

	// ListOwners retrieves a page of owners ordered by name.
	ListOwners(ctx context.Context, params dto.ListOwnersParams) ([]domain.TruckOwner, error)
}

// OwnerWriterSvc defines write operations for the owner directory
type OwnerWriterSvc interface {
	// CreateOwner registers an owner explicitly (e.g. to mark a partner).
	CreateOwner(ctx context.Context, req dto.CreateOwnerRequest, userID string) (*domain.TruckOwner, error)

	// UpdateOwner updates the descriptive fields of an owner.
	UpdateOwner(ctx context.Context, name string, req dto.UpdateOwnerRequest, userID string) (*domain.TruckOwner, error)

	// DeactivateOwner marks an owner as inactive.
	DeactivateOwner(ctx context.Context, name string, userID string) error
}

// OwnerSvcFacade combines all owner-related service interfaces
type OwnerSvcFacade interface {
	OwnerReaderSvc
	OwnerWriterSvc
}
