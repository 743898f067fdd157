package normalizer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Internal field names the alias table resolves to.
const (
	fieldName             = "name"
	fieldStatus           = "status"
	fieldGroup            = "group"
	fieldOwner            = "owner"
	fieldInventoryCode    = "inventory_code"
	fieldItemType         = "item_type"
	fieldCategory         = "category"
	fieldUnitValue        = "unit_value"
	fieldDepreciationRate = "annual_depreciation_rate"
	fieldUsefulLife       = "useful_life_years"
	fieldUnitDepreciation = "unit_depreciation"
)

// requiredFields must all be resolvable from the source header or
// normalization fails with a SchemaError.
var requiredFields = []string{
	fieldName, fieldStatus, fieldGroup, fieldItemType,
	fieldUnitValue, fieldUnitDepreciation,
}

var nonAlnumRe = regexp.MustCompile(`[^0-9a-z ]+`)

// NormalizeLabel canonicalizes a source column label: decompose accents to
// base letters and drop anything non-ASCII, lower-case, fold newlines into
// spaces, map every remaining non-[0-9a-z ] run to a space, then join the
// words with underscores. "Depreciação Anual Unitária (R$)" becomes
// "depreciacao_anual_unitaria_r".
func NormalizeLabel(label string) string {
	s := stripToASCII(label)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnumRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), "_")
}

// stripToASCII applies NFKD decomposition and keeps only ASCII runes, so
// accented letters reduce to their base letter and unmapped symbols vanish.
func stripToASCII(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// labelAliases maps normalized source labels to internal field names. One
// entry per supported source label; unmapped labels are ignored unless a
// required field ends up unresolved.
var labelAliases = map[string]string{
	// Portuguese source exports
	"nome":                         fieldName,
	"status":                       fieldStatus,
	"grupo":                        fieldGroup,
	"usuario":                      fieldOwner,
	"numero_de_inventario":         fieldInventoryCode,
	"numero_inventario":            fieldInventoryCode,
	"tipo_do_item":                 fieldItemType,
	"tipo_item":                    fieldItemType,
	"categoria":                    fieldCategory,
	"valor_medio_unitario":         fieldUnitValue,
	"valor_unitario":               fieldUnitValue,
	"depreciacao_anual_mercado":    fieldDepreciationRate,
	"perc_depreciacao":             fieldDepreciationRate,
	"vida_util_anos_mercado":       fieldUsefulLife,
	"vida_util_anos":               fieldUsefulLife,
	"depreciacao_anual_unitaria":   fieldUnitDepreciation,
	"depreciacao_anual_unitaria_r": fieldUnitDepreciation,
	"depreciacao_unitaria":         fieldUnitDepreciation,

	// English exports
	"name":                     fieldName,
	"group":                    fieldGroup,
	"cost_center":              fieldGroup,
	"owner":                    fieldOwner,
	"user":                     fieldOwner,
	"inventory_number":         fieldInventoryCode,
	"inventory_code":           fieldInventoryCode,
	"item_type":                fieldItemType,
	"category":                 fieldCategory,
	"unit_value":               fieldUnitValue,
	"average_unit_value":       fieldUnitValue,
	"annual_depreciation_rate": fieldDepreciationRate,
	"useful_life_years":        fieldUsefulLife,
	"annual_unit_depreciation": fieldUnitDepreciation,
	"unit_depreciation":        fieldUnitDepreciation,
}

func init() {
	// The alias table is fixed, so a bad target is a programming error:
	// catch it at startup instead of at query time.
	known := map[string]bool{
		fieldName: true, fieldStatus: true, fieldGroup: true, fieldOwner: true,
		fieldInventoryCode: true, fieldItemType: true, fieldCategory: true,
		fieldUnitValue: true, fieldDepreciationRate: true,
		fieldUsefulLife: true, fieldUnitDepreciation: true,
	}
	for alias, target := range labelAliases {
		if !known[target] {
			panic(fmt.Sprintf("labelAliases: alias %q points at unknown field %q", alias, target))
		}
		if NormalizeLabel(alias) != alias {
			panic(fmt.Sprintf("labelAliases: alias %q is not in normalized form", alias))
		}
	}
}
