package config

import (
	"os"
	"strconv"
	"strings"
)

// Defaults mirror the source inventory policy.
const (
	DefaultLowCostThreshold             = 800
	DefaultMacReferenceDepreciation     = 2145
	DefaultLicenseReferenceDepreciation = 1200
	DefaultNoInventorySentinel          = "No inventory"
	DefaultIdleStatus                   = "Sem Uso"
)

// The source spreadsheets carry Portuguese item types; the English names are
// accepted as well so the set works for translated exports.
var defaultEssentialItemTypes = []string{
	"computador", "telefone", "monitor", "impressora",
	"computer", "phone", "printer",
}

// Options holds the engine constants. All are overridable through env vars so
// policy changes never require a code change.
type Options struct {
	LowCostThreshold             float64
	MacReferenceDepreciation     float64
	LicenseReferenceDepreciation float64
	EssentialItemTypes           []string
	NoInventorySentinel          string
	IdleStatus                   string
}

func Default() Options {
	return Options{
		LowCostThreshold:             DefaultLowCostThreshold,
		MacReferenceDepreciation:     DefaultMacReferenceDepreciation,
		LicenseReferenceDepreciation: DefaultLicenseReferenceDepreciation,
		EssentialItemTypes:           append([]string(nil), defaultEssentialItemTypes...),
		NoInventorySentinel:          DefaultNoInventorySentinel,
		IdleStatus:                   DefaultIdleStatus,
	}
}

// FromEnv returns Default overridden by any env vars that are set.
// cmd/api loads .env via godotenv before calling this.
func FromEnv() Options {
	o := Default()
	o.LowCostThreshold = envFloat("LOW_COST_THRESHOLD", o.LowCostThreshold)
	o.MacReferenceDepreciation = envFloat("MAC_REFERENCE_DEPRECIATION", o.MacReferenceDepreciation)
	o.LicenseReferenceDepreciation = envFloat("LICENSE_REFERENCE_DEPRECIATION", o.LicenseReferenceDepreciation)
	if v := os.Getenv("ESSENTIAL_ITEM_TYPES"); v != "" {
		var set []string
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				set = append(set, t)
			}
		}
		if len(set) > 0 {
			o.EssentialItemTypes = set
		}
	}
	if v := os.Getenv("NO_INVENTORY_SENTINEL"); v != "" {
		o.NoInventorySentinel = v
	}
	if v := os.Getenv("IDLE_STATUS"); v != "" {
		o.IdleStatus = v
	}
	return o
}

// IsEssentialType reports whether itemType is in the essential set,
// case-insensitively.
func (o Options) IsEssentialType(itemType string) bool {
	t := strings.ToLower(strings.TrimSpace(itemType))
	for _, e := range o.EssentialItemTypes {
		if strings.ToLower(e) == t {
			return true
		}
	}
	return false
}

func envFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}
