package domain

import "time"

// ActionCategory classifies what kind of sustainability event was logged.
type ActionCategory string

const (
	CategoryFood   ActionCategory = "food"
	CategoryTravel ActionCategory = "travel"
	CategoryEnergy ActionCategory = "energy"
	CategoryWaste  ActionCategory = "waste"
)

// ValidCategory reports whether c is a recognised action category.
func ValidCategory(c ActionCategory) bool {
	switch c {
	case CategoryFood, CategoryTravel, CategoryEnergy, CategoryWaste:
		return true
	}
	return false
}

// DisposalMethod records how a waste item was disposed of.
type DisposalMethod string

const (
	DisposalRecycled  DisposalMethod = "recycled"
	DisposalReused    DisposalMethod = "reused"
	DisposalComposted DisposalMethod = "composted"
	DisposalLandfill  DisposalMethod = "landfill"
	DisposalNA        DisposalMethod = "n/a"
)

// ValidDisposalMethod reports whether d is a recognised disposal method.
func ValidDisposalMethod(d DisposalMethod) bool {
	switch d {
	case DisposalRecycled, DisposalReused, DisposalComposted, DisposalLandfill, DisposalNA:
		return true
	}
	return false
}

// Severity is the coarse impact tier attached to actions and reminders.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ValidSeverity reports whether s is a recognised severity tier.
func ValidSeverity(s Severity) bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// EcoAction is a single logged sustainability event. The owner is set at
// creation time and never changes; carbon and savings values drive the
// owner's score delta when the action is created.
type EcoAction struct {
	ID                 string         `json:"id"`
	UserID             string         `json:"user_id"`
	Category           ActionCategory `json:"category"`
	ActionType         string         `json:"action_type"`
	CarbonKg           float64        `json:"carbon_kg"`
	PackagingType      string         `json:"packaging_type,omitempty"`
	Origin             string         `json:"origin,omitempty"`
	DistanceKm         float64        `json:"distance_km"`
	ExpiryDate         *time.Time     `json:"expiry_date,omitempty"`
	DisposalMethod     DisposalMethod `json:"disposal_method"`
	Severity           Severity       `json:"severity"`
	EstimatedSavingsKg float64        `json:"estimated_savings_kg"`
	ReceiptURL         string         `json:"receipt_url,omitempty"`
	Data               map[string]any `json:"data,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// ImpactLabel buckets an action's carbon cost into a display tier:
// under 1 kg is Low, under 5 kg is Medium, anything above is High.
func (a EcoAction) ImpactLabel() string {
	switch {
	case a.CarbonKg < 1:
		return "Low"
	case a.CarbonKg < 5:
		return "Medium"
	default:
		return "High"
	}
}
