package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DebugOrder echoes an arbitrary payload back with a structural report:
// which sections are present, their shapes, and any gaps a real submission
// would trip over. Diagnostic only; nothing is persisted or enforced.
func (h *Handler) DebugOrder(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Body must be a JSON object"})
		return
	}

	structure := make(map[string]string, 5)
	var issues []string

	for _, section := range []string{"customer", "delivery", "payment", "totals"} {
		v, present := raw[section]
		if !present {
			structure[section] = "missing"
			issues = append(issues, fmt.Sprintf("missing section %q", section))
			continue
		}
		if _, ok := v.(map[string]any); !ok {
			structure[section] = describeShape(v)
			issues = append(issues, fmt.Sprintf("section %q should be an object", section))
			continue
		}
		structure[section] = "object"
	}

	items, present := raw["items"]
	switch arr := items.(type) {
	case nil:
		structure["items"] = "missing"
		if present {
			structure["items"] = "null"
		}
		issues = append(issues, "missing section \"items\"")
	case []any:
		structure["items"] = fmt.Sprintf("array(%d)", len(arr))
		if len(arr) == 0 {
			issues = append(issues, "items array is empty")
		}
	default:
		structure["items"] = describeShape(items)
		issues = append(issues, "section \"items\" should be an array")
	}

	issues = append(issues, totalsIssues(raw)...)

	c.JSON(http.StatusOK, gin.H{
		"received":      raw,
		"dataStructure": structure,
		"issues":        issues,
		"valid":         len(issues) == 0,
	})
}

// totalsIssues recomputes the expected total from the line items with exact
// decimal arithmetic and reports a mismatch as a diagnostic. Order intake
// itself trusts the client total; this is the only place the gap is visible.
func totalsIssues(raw map[string]any) []string {
	totals, ok := raw["totals"].(map[string]any)
	if !ok {
		return nil
	}
	items, ok := raw["items"].([]any)
	if !ok || len(items) == 0 {
		return nil
	}
	total, ok := totals["total"].(float64)
	if !ok {
		return []string{"totals.total is missing or not a number"}
	}

	expected := decimal.Zero
	for _, it := range items {
		item, ok := it.(map[string]any)
		if !ok {
			return nil
		}
		price, okP := item["price"].(float64)
		qty, okQ := item["quantity"].(float64)
		if !okP || !okQ {
			// Item-level gaps are reported by the structural pass above.
			return nil
		}
		expected = expected.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromFloat(qty)))
	}
	if charge, ok := totals["deliveryCharge"].(float64); ok {
		expected = expected.Add(decimal.NewFromFloat(charge))
	}

	if !expected.Equal(decimal.NewFromFloat(total)) {
		return []string{fmt.Sprintf(
			"totals.total (%v) does not match items plus delivery charge (%s)",
			total, expected)}
	}
	return nil
}

func describeShape(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
