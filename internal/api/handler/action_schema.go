package handler

import (
	"time"

	"github.com/ecosphere/ecosphere-api/internal/core/ports"
)

type actionRequest struct {
	Category           string         `json:"category"             validate:"required,oneof=food travel energy waste"`
	ActionType         string         `json:"action_type"          validate:"required"`
	CarbonKg           float64        `json:"carbon_kg"            validate:"gte=0"`
	PackagingType      string         `json:"packaging_type"`
	Origin             string         `json:"origin"`
	DistanceKm         float64        `json:"distance_km"          validate:"gte=0"`
	ExpiryDate         *time.Time     `json:"expiry_date"`
	DisposalMethod     string         `json:"disposal_method"      validate:"omitempty,oneof=recycled reused composted landfill n/a"`
	Severity           string         `json:"severity"             validate:"omitempty,oneof=low medium high"`
	EstimatedSavingsKg float64        `json:"estimated_savings_kg" validate:"gte=0"`
	ReceiptURL         string         `json:"receipt_url"`
	Data               map[string]any `json:"data"`
}

func (r actionRequest) toInput() ports.ActionInput {
	return ports.ActionInput{
		Category:           r.Category,
		ActionType:         r.ActionType,
		CarbonKg:           r.CarbonKg,
		PackagingType:      r.PackagingType,
		Origin:             r.Origin,
		DistanceKm:         r.DistanceKm,
		ExpiryDate:         r.ExpiryDate,
		DisposalMethod:     r.DisposalMethod,
		Severity:           r.Severity,
		EstimatedSavingsKg: r.EstimatedSavingsKg,
		ReceiptURL:         r.ReceiptURL,
		Data:               r.Data,
	}
}
