package billing

import (
	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateInput carries everything the caller knows about the rate for one receipt.
// Owner is nil when the name is not in the directory yet.
type RateInput struct {
	Owner        *domain.TruckOwner
	Rate         decimal.Decimal
	OwnerType    *domain.OwnerType // explicit client decision, trusted verbatim
	AppliedRate  *decimal.Decimal  // rate the client resolved before overriding
	RateOverride bool              // client typed the rate by hand
}

// RateResult is the rate actually billed plus what it was resolved from.
type RateResult struct {
	OwnerType   domain.OwnerType
	Rate        decimal.Decimal
	AppliedRate decimal.Decimal
}

// overridden reports whether the caller asked to keep its own rate.
func (in RateInput) overridden() bool {
	return in.RateOverride || in.AppliedRate != nil
}

// ResolveRate picks the unit rate for a receipt. An explicit owner type wins
// outright; otherwise partners get their partner rate (falling back to the
// partner default setting, then the passed rate) unless the caller overrode
// it. Everyone else is billed the passed rate.
func ResolveRate(in RateInput, settings domain.BillingSettings) RateResult {
	if in.OwnerType != nil {
		applied := in.Rate
		if in.AppliedRate != nil {
			applied = *in.AppliedRate
		}
		return RateResult{OwnerType: *in.OwnerType, Rate: in.Rate, AppliedRate: applied}
	}

	if in.Owner != nil && in.Owner.IsPartner {
		partnerRate := in.Rate
		switch {
		case in.Owner.PartnerRate != nil && in.Owner.PartnerRate.IsPositive():
			partnerRate = *in.Owner.PartnerRate
		case settings.DefaultPartnerRate != nil && settings.DefaultPartnerRate.IsPositive():
			partnerRate = *settings.DefaultPartnerRate
		}
		if in.overridden() {
			return RateResult{OwnerType: domain.OwnerTypePartner, Rate: in.Rate, AppliedRate: partnerRate}
		}
		return RateResult{OwnerType: domain.OwnerTypePartner, Rate: partnerRate, AppliedRate: partnerRate}
	}

	applied := in.Rate
	if in.AppliedRate != nil {
		applied = *in.AppliedRate
	}
	return RateResult{OwnerType: domain.OwnerTypeRegular, Rate: in.Rate, AppliedRate: applied}
}
