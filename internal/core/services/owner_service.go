package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/quarry_billing_app/internal/apperrors"
	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	portsrepo "github.com/SscSPs/quarry_billing_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/quarry_billing_app/internal/core/ports/services"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
	"github.com/SscSPs/quarry_billing_app/internal/utils/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ownerService manages the truck owner directory.
type ownerService struct {
	BaseService
	ownerRepo portsrepo.OwnerRepositoryFacade
}

// NewOwnerService creates a new owner directory service.
func NewOwnerService(repo portsrepo.OwnerRepositoryFacade, options ...ServiceOption) portssvc.OwnerSvcFacade {
	return &ownerService{
		BaseService: newBaseService(options...),
		ownerRepo:   repo,
	}
}

var _ portssvc.OwnerSvcFacade = (*ownerService)(nil)

// normalizeOwnerName trims the natural key; names are compared verbatim otherwise.
func normalizeOwnerName(name string) string {
	return strings.TrimSpace(name)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (s *ownerService) CreateOwner(ctx context.Context, req dto.CreateOwnerRequest, userID string) (*domain.TruckOwner, error) {
	name := normalizeOwnerName(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: owner name is required", apperrors.ErrValidation)
	}
	if req.PartnerRate != nil && !req.PartnerRate.IsPositive() {
		return nil, fmt.Errorf("%w: partner rate must be positive", apperrors.ErrValidation)
	}
	if err := checkOwnerAmounts(req.PartnerRate, req.CreditLimit); err != nil {
		return nil, err
	}
	creditLimit := decimal.Zero
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return nil, fmt.Errorf("%w: credit limit must not be negative", apperrors.ErrValidation)
		}
		creditLimit = *req.CreditLimit
	}

	now := s.Now()
	owner := domain.TruckOwner{
		OwnerID:        uuid.NewString(),
		Name:           name,
		IsPartner:      req.IsPartner,
		PartnerRate:    req.PartnerRate,
		DepositBalance: decimal.Zero,
		CreditLimit:    creditLimit,
		VehicleNumber:  trimmedOrNil(req.VehicleNumber),
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.ownerRepo.SaveOwner(ctx, owner); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, "Owner already exists", slog.String("owner", name))
			return nil, fmt.Errorf("truck owner %q: %w", name, err)
		}
		s.LogError(ctx, err, "Failed to save owner", slog.String("owner", name))
		return nil, err
	}

	s.LogInfo(ctx, "Owner created", slog.String("owner_id", owner.OwnerID), slog.Bool("is_partner", owner.IsPartner))
	return &owner, nil
}

func (s *ownerService) GetOwnerByName(ctx context.Context, name string) (*domain.TruckOwner, error) {
	name = normalizeOwnerName(name)
	if name == "" {
		return nil, fmt.Errorf("%w: owner name is required", apperrors.ErrValidation)
	}
	owner, err := s.ownerRepo.FindOwnerByName(ctx, name)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find owner", slog.String("owner", name))
		}
		return nil, err
	}
	return owner, nil
}

func (s *ownerService) ListOwners(ctx context.Context, params dto.ListOwnersParams) ([]domain.TruckOwner, error) {
	owners, err := s.ownerRepo.ListOwners(ctx, params.IncludeInactive, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list owners", slog.Int("limit", params.Limit), slog.Int("offset", params.Offset))
		return nil, err
	}
	if owners == nil {
		return []domain.TruckOwner{}, nil
	}
	return owners, nil
}

func (s *ownerService) UpdateOwner(ctx context.Context, name string, req dto.UpdateOwnerRequest, userID string) (*domain.TruckOwner, error) {
	owner, err := s.GetOwnerByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := checkOwnerAmounts(req.PartnerRate, req.CreditLimit); err != nil {
		return nil, err
	}
	updated := false
	if req.IsPartner != nil {
		owner.IsPartner = *req.IsPartner
		updated = true
	}
	if req.PartnerRate != nil {
		if !req.PartnerRate.IsPositive() {
			return nil, fmt.Errorf("%w: partner rate must be positive", apperrors.ErrValidation)
		}
		owner.PartnerRate = req.PartnerRate
		updated = true
	}
	if req.CreditLimit != nil {
		if req.CreditLimit.IsNegative() {
			return nil, fmt.Errorf("%w: credit limit must not be negative", apperrors.ErrValidation)
		}
		owner.CreditLimit = *req.CreditLimit
		updated = true
	}
	if req.VehicleNumber != nil {
		owner.VehicleNumber = trimmedOrNil(req.VehicleNumber)
		updated = true
	}
	if req.IsActive != nil {
		owner.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for owner update", slog.String("owner_id", owner.OwnerID))
		return owner, nil
	}

	owner.LastUpdatedAt = s.Now()
	owner.LastUpdatedBy = userID

	if err := s.ownerRepo.UpdateOwner(ctx, *owner); err != nil {
		s.LogError(ctx, err, "Failed to update owner", slog.String("owner_id", owner.OwnerID))
		return nil, err
	}

	s.LogInfo(ctx, "Owner updated", slog.String("owner_id", owner.OwnerID))
	return owner, nil
}

func (s *ownerService) DeactivateOwner(ctx context.Context, name string, userID string) error {
	owner, err := s.GetOwnerByName(ctx, name)
	if err != nil {
		return err
	}
	if !owner.IsActive {
		return nil
	}
	if err := s.ownerRepo.DeactivateOwner(ctx, owner.OwnerID, userID, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate owner", slog.String("owner_id", owner.OwnerID))
		return err
	}
	s.LogInfo(ctx, "Owner deactivated", slog.String("owner_id", owner.OwnerID))
	return nil
}

func checkOwnerAmounts(partnerRate, creditLimit *decimal.Decimal) error {
	if partnerRate != nil {
		if err := billing.CheckMoney("partner rate", *partnerRate); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}
	if creditLimit != nil {
		if err := billing.CheckMoney("credit limit", *creditLimit); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}
	return nil
}
