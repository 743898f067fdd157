package normalizer

import (
	"sort"
	"strconv"
	"strings"

	"github.com/joaomarcelooneua/CaliaDash/internal/config"
	"github.com/joaomarcelooneua/CaliaDash/internal/types"
)

// Normalizer turns raw spreadsheet rows into canonical records. It holds only
// the policy constants, so a single instance is safe for concurrent use.
type Normalizer struct {
	opts config.Options
}

func New(opts config.Options) *Normalizer {
	return &Normalizer{opts: opts}
}

// Normalize converts raw rows into canonical records. It fails with a
// SchemaError when a required column is missing from the source header and
// with a TypeConversionError when a money cell is not a non-negative number.
// An empty input yields an empty output, not an error.
func (n *Normalizer) Normalize(raw []types.RawRecord) ([]types.CanonicalRecord, error) {
	if len(raw) == 0 {
		return []types.CanonicalRecord{}, nil
	}
	if err := checkSchema(raw[0]); err != nil {
		return nil, err
	}

	out := make([]types.CanonicalRecord, 0, len(raw))
	for i, rr := range raw {
		rec, err := n.normalizeOne(i, rr)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// checkSchema resolves the header of the first row against the alias table
// and names the first required field that has no source column.
func checkSchema(header types.RawRecord) error {
	resolved := map[string]bool{}
	for label := range header {
		if field, ok := labelAliases[NormalizeLabel(label)]; ok {
			resolved[field] = true
		}
	}
	for _, field := range requiredFields {
		if !resolved[field] {
			return &SchemaError{Field: field}
		}
	}
	return nil
}

func (n *Normalizer) normalizeOne(row int, rr types.RawRecord) (types.CanonicalRecord, error) {
	vals := resolveFields(rr)

	unitValue, err := coerceMoney(row, fieldUnitValue, vals[fieldUnitValue])
	if err != nil {
		return types.CanonicalRecord{}, err
	}
	unitDep, err := coerceMoney(row, fieldUnitDepreciation, vals[fieldUnitDepreciation])
	if err != nil {
		return types.CanonicalRecord{}, err
	}

	rec := types.CanonicalRecord{
		Name:                   strings.TrimSpace(vals[fieldName]),
		Status:                 strings.TrimSpace(vals[fieldStatus]),
		Group:                  strings.TrimSpace(vals[fieldGroup]),
		Owner:                  strings.TrimSpace(vals[fieldOwner]),
		ItemType:               strings.TrimSpace(vals[fieldItemType]),
		Category:               strings.TrimSpace(vals[fieldCategory]),
		UnitValue:              unitValue,
		AnnualDepreciationRate: coerceLenient(vals[fieldDepreciationRate]),
		UsefulLifeYears:        coerceLenient(vals[fieldUsefulLife]),
		UnitDepreciation:       unitDep,
	}

	rec.InventoryCode = strings.TrimSpace(vals[fieldInventoryCode])
	if rec.InventoryCode == "" {
		rec.InventoryCode = n.opts.NoInventorySentinel
	}

	rec.IsMac = strings.Contains(strings.ToLower(rec.Name), "mac")
	rec.IsLicense = strings.Contains(strings.ToLower(rec.ItemType), "licen")
	rec.IsLowCost = rec.UnitValue <= n.opts.LowCostThreshold
	rec.HasOwner = rec.Owner != ""
	rec.HasInventoryCode = !n.isAbsentCode(rec.InventoryCode)
	rec.IsTracked = rec.HasOwner && rec.HasInventoryCode

	// Overrides apply in this order on purpose: when a record is somehow
	// both a mac and a license, the license figure is the one reported.
	rec.ReferenceDepreciation = rec.UnitDepreciation
	if rec.IsMac {
		rec.ReferenceDepreciation = n.opts.MacReferenceDepreciation
	}
	if rec.IsLicense {
		rec.ReferenceDepreciation = n.opts.LicenseReferenceDepreciation
	}

	rec.Priority = n.classifyPriority(rec)
	return rec, nil
}

// resolveFields maps a raw row through the alias table. Keys are visited in
// sorted order so duplicate aliases resolve deterministically (first label
// wins).
func resolveFields(rr types.RawRecord) map[string]string {
	labels := make([]string, 0, len(rr))
	for l := range rr {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	vals := map[string]string{}
	for _, label := range labels {
		field, ok := labelAliases[NormalizeLabel(label)]
		if !ok {
			continue
		}
		if _, seen := vals[field]; !seen {
			vals[field] = rr[label]
		}
	}
	return vals
}

// isAbsentCode accepts both the configured sentinel and the "sem"-style
// marker that source spreadsheets already carry in the cell itself.
func (n *Normalizer) isAbsentCode(code string) bool {
	l := strings.ToLower(code)
	return strings.Contains(l, "sem") ||
		strings.Contains(l, strings.ToLower(n.opts.NoInventorySentinel))
}

func (n *Normalizer) classifyPriority(rec types.CanonicalRecord) string {
	switch {
	case rec.IsMac || rec.IsLicense:
		return types.PriorityPremium
	case n.opts.IsEssentialType(rec.ItemType):
		return types.PriorityEssential
	default:
		return types.PriorityNonEssential
	}
}

// coerceMoney parses a money cell. Decimal commas are accepted; empty,
// non-numeric, and negative values are conversion errors.
func coerceMoney(row int, field, value string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0, &TypeConversionError{Row: row, Field: field, Value: value}
	}
	return f, nil
}

// coerceLenient is for optional numeric columns: unparsable cells become 0.
func coerceLenient(value string) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	s = strings.TrimSuffix(s, "%")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
