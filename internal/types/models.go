package types

// RawRecord is one spreadsheet row as delivered by the ingestion boundary:
// column label -> cell text, label spelling unconstrained.
type RawRecord map[string]string

// Priority buckets, first match wins (see normalizer.classifyPriority).
const (
	PriorityPremium      = "Premium-controlled"
	PriorityEssential    = "Essential"
	PriorityNonEssential = "Non-essential"

	// PriorityAll is the filter selection meaning "no filter".
	PriorityAll = "all"
)

// CanonicalRecord is the normalized, classified form of one inventory asset.
// Records are immutable after normalization; re-filtering produces a new
// slice, never a mutation.
type CanonicalRecord struct {
	Name          string `json:"name"`
	Status        string `json:"status"`
	Group         string `json:"group"`
	Owner         string `json:"owner,omitempty"`
	InventoryCode string `json:"inventory_code"`
	ItemType      string `json:"item_type"`
	Category      string `json:"category,omitempty"`

	UnitValue              float64 `json:"unit_value"`
	AnnualDepreciationRate float64 `json:"annual_depreciation_rate,omitempty"`
	UsefulLifeYears        float64 `json:"useful_life_years,omitempty"`
	UnitDepreciation       float64 `json:"unit_depreciation"`
	ReferenceDepreciation  float64 `json:"reference_depreciation"`

	IsMac            bool `json:"is_mac"`
	IsLicense        bool `json:"is_license"`
	IsLowCost        bool `json:"is_low_cost"`
	HasOwner         bool `json:"has_owner"`
	HasInventoryCode bool `json:"has_inventory_code"`
	IsTracked        bool `json:"is_tracked"`

	Priority string `json:"priority"`
}
