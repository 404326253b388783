// Package normalization shapes arbitrary caller payloads into the canonical
// storage schema for client rows. Payloads arrive as loose maps with mixed
// naming conventions (camelCase from the app, lowercase from older callers)
// and loosely typed values; everything here is a pure transformation.
package normalization

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/brokermate/brokermate-backend/internal/types"
)

// NormalizeClientRecord maps a partial, arbitrarily-shaped payload into a
// canonical monthly row. camelCase keys win over their lowercase duplicates.
// Missing numeric fields default to 0 (count) and the current calendar year.
func NormalizeClientRecord(input map[string]any) types.MonthlyClient {
	rec := types.MonthlyClient{
		Name:            asString(pick(input, "name")),
		Location:        asString(pick(input, "location")),
		DeductionDate:   asString(pick(input, "deductionDate", "deductiondate")),
		IssueDate:       asString(pick(input, "issueDate", "issuedate")),
		PoliciesCount:   asInt(pick(input, "policiesCount", "policiescount"), 0),
		PolicyPremium:   asString(pick(input, "policyPremium", "policypremium")),
		ScheduleDocsURL: asStringSlice(pick(input, "scheduleDocsUrl", "scheduledocsurl")),
		LoaDocURL:       asStringSlice(pick(input, "loaDocUrl", "loadocurl")),
		PdfDocsURL:      asStringSlice(pick(input, "pdfDocsUrl", "pdfdocsurl")),
		PolicyNumbers:   asStringSlice(pick(input, "policyNumbers", "policynumbers")),
		Products:        asProducts(pick(input, "products")),
		Year:            asInt(pick(input, "year"), time.Now().Year()),
	}
	if id, ok := pick(input, "id").(string); ok && id != "" {
		rec.ID = id
	}
	return rec
}

// UpdateColumns maps only the fields present in the payload to their storage
// columns, for a field-level merge against the existing row. A premium value
// explicitly supplied by the caller always lands verbatim, so a mapper
// default can never clobber it.
func UpdateColumns(input map[string]any) map[string]any {
	cols := map[string]any{}
	if v, ok := pickOk(input, "name"); ok {
		cols["name"] = asString(v)
	}
	if v, ok := pickOk(input, "location"); ok {
		cols["location"] = asString(v)
	}
	if v, ok := pickOk(input, "deductionDate", "deductiondate"); ok {
		cols["deduction_date"] = asString(v)
	}
	if v, ok := pickOk(input, "issueDate", "issuedate"); ok {
		cols["issue_date"] = asString(v)
	}
	if v, ok := pickOk(input, "policiesCount", "policiescount"); ok {
		cols["policies_count"] = asInt(v, 0)
	}
	if v, ok := pickOk(input, "policyPremium", "policypremium"); ok {
		cols["policy_premium"] = asString(v)
	}
	if v, ok := pickOk(input, "scheduleDocsUrl", "scheduledocsurl"); ok {
		cols["schedule_docs_url"] = asStringSlice(v)
	}
	if v, ok := pickOk(input, "loaDocUrl", "loadocurl"); ok {
		cols["loa_doc_url"] = asStringSlice(v)
	}
	if v, ok := pickOk(input, "pdfDocsUrl", "pdfdocsurl"); ok {
		cols["pdf_docs_url"] = asStringSlice(v)
	}
	if v, ok := pickOk(input, "policyNumbers", "policynumbers"); ok {
		cols["policy_numbers"] = asStringSlice(v)
	}
	if v, ok := pickOk(input, "products"); ok {
		cols["products"] = asProducts(v)
	}
	if v, ok := pickOk(input, "year"); ok {
		cols["year"] = asInt(v, time.Now().Year())
	}
	return cols
}

func pick(input map[string]any, keys ...string) any {
	v, _ := pickOk(input, keys...)
	return v
}

func pickOk(input map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := input[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

// asStringSlice passes sequences through, wraps a single non-empty scalar
// into a one-element sequence, and yields an empty sequence otherwise.
func asStringSlice(v any) datatypes.JSONSlice[string] {
	switch t := v.(type) {
	case nil:
		return datatypes.JSONSlice[string]{}
	case []string:
		return datatypes.JSONSlice[string](t)
	case datatypes.JSONSlice[string]:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			out = append(out, asString(e))
		}
		return datatypes.JSONSlice[string](out)
	default:
		if s := asString(v); strings.TrimSpace(s) != "" {
			return datatypes.JSONSlice[string]{s}
		}
		return datatypes.JSONSlice[string]{}
	}
}

func asProducts(v any) datatypes.JSONSlice[string] {
	raw := asStringSlice(v)
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		out = append(out, string(types.ValidateProduct(p)))
	}
	return datatypes.JSONSlice[string](out)
}

func asInt(v any, defaultVal int) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return int(f)
		}
		return defaultVal
	default:
		return defaultVal
	}
}
