package dto

import (
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReceiptRequest is the gate-pass form. Amounts are parsed permissively;
// business validation happens in the receipt service.
type CreateReceiptRequest struct {
	ReceiptNo       *string               `json:"receiptNo"` // optional, generated when empty or taken
	TruckOwner      string                `json:"truckOwner" binding:"required"`
	VehicleNumber   string                `json:"vehicleNumber" binding:"required"`
	BrassQty        Amount                `json:"brassQty"`
	Rate            Amount                `json:"rate"`
	LoadingCharge   Amount                `json:"loadingCharge"`
	CashPaid        Amount                `json:"cashPaid"`
	DepositDeducted Amount                `json:"depositDeducted"` // requested, may be capped
	PaymentMethod   *domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=cash credit deposit"`
	OwnerType       *domain.OwnerType     `json:"ownerType" binding:"omitempty,oneof=regular partner"`
	AppliedRate     *Amount               `json:"appliedRate"`
	RateOverride    bool                  `json:"rateOverride"`
	DateTime        *time.Time            `json:"dateTime"`
	Notes           string                `json:"notes"`
}

// UpdateReceiptPaymentRequest changes how an existing receipt is settled.
// CashPaid recomputes credit and status; a status on its own is stored as given.
type UpdateReceiptPaymentRequest struct {
	CashPaid      *Amount               `json:"cashPaid"`
	PaymentStatus *domain.PaymentStatus `json:"paymentStatus" binding:"omitempty,oneof=paid partial unpaid"`
	Notes         *string               `json:"notes"`
}

// ReceiptResponse defines the data returned for a receipt.
type ReceiptResponse struct {
	ReceiptID       string               `json:"receiptID"`
	ReceiptNo       string               `json:"receiptNo"`
	TruckOwner      string               `json:"truckOwner"`
	VehicleNumber   string               `json:"vehicleNumber"`
	BrassQty        decimal.Decimal      `json:"brassQty"`
	Rate            decimal.Decimal      `json:"rate"`
	AppliedRate     decimal.Decimal      `json:"appliedRate"`
	LoadingCharge   decimal.Decimal      `json:"loadingCharge"`
	TotalAmount     decimal.Decimal      `json:"totalAmount"`
	CashPaid        decimal.Decimal      `json:"cashPaid"`
	DepositDeducted decimal.Decimal      `json:"depositDeducted"`
	CreditAmount    decimal.Decimal      `json:"creditAmount"`
	PaymentStatus   domain.PaymentStatus `json:"paymentStatus"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod"`
	OwnerType       domain.OwnerType     `json:"ownerType"`
	DateTime        time.Time            `json:"dateTime"`
	Notes           string               `json:"notes"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy   string               `json:"lastUpdatedBy"`
}

// ToReceiptResponse converts a domain.Receipt to ReceiptResponse DTO
func ToReceiptResponse(r *domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:       r.ReceiptID,
		ReceiptNo:       r.ReceiptNo,
		TruckOwner:      r.TruckOwner,
		VehicleNumber:   r.VehicleNumber,
		BrassQty:        r.BrassQty,
		Rate:            r.Rate,
		AppliedRate:     r.AppliedRate,
		LoadingCharge:   r.LoadingCharge,
		TotalAmount:     r.TotalAmount,
		CashPaid:        r.CashPaid,
		DepositDeducted: r.DepositDeducted,
		CreditAmount:    r.CreditAmount,
		PaymentStatus:   r.PaymentStatus,
		PaymentMethod:   r.PaymentMethod,
		OwnerType:       r.OwnerType,
		DateTime:        r.DateTime,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		CreatedBy:       r.CreatedBy,
		LastUpdatedAt:   r.LastUpdatedAt,
		LastUpdatedBy:   r.LastUpdatedBy,
	}
}

// ListReceiptsParams defines query parameters for listing receipts.
type ListReceiptsParams struct {
	Owner     string  `form:"owner"`
	From      string  `form:"from"` // YYYY-MM-DD, inclusive
	To        string  `form:"to"`   // YYYY-MM-DD, inclusive
	Status    string  `form:"status" binding:"omitempty,oneof=paid partial unpaid"`
	Limit     int     `form:"limit,default=20" binding:"min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// ListReceiptsResponse wraps a page of receipts.
type ListReceiptsResponse struct {
	Receipts  []ReceiptResponse `json:"receipts"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToListReceiptsResponse converts a page of domain receipts.
func ToListReceiptsResponse(receipts []domain.Receipt, nextToken *string) ListReceiptsResponse {
	res := make([]ReceiptResponse, len(receipts))
	for i := range receipts {
		res[i] = ToReceiptResponse(&receipts[i])
	}
	return ListReceiptsResponse{Receipts: res, NextToken: nextToken}
}
