package billing

import "strings"

// PlanUnknown is resolved when a webhook carries a price id we have no
// mapping for. Unknown plans keep the tenant on the safe side of feature
// gating until someone reconciles the price table.
const PlanUnknown = "Unknown"

// planByPriceID is the static mapping from provider price ids to internal
// plan names. Monthly and yearly prices resolve to the same plan.
var planByPriceID = map[string]string{
	"price_starter_monthly": "Starter",
	"price_starter_yearly":  "Starter",
	"price_growth_monthly":  "Growth",
	"price_growth_yearly":   "Growth",
	"price_scale_monthly":   "Scale",
	"price_scale_yearly":    "Scale",
}

// ResolvePlan maps a provider price id to an internal plan name.
func ResolvePlan(priceID string) string {
	if plan, ok := planByPriceID[strings.TrimSpace(priceID)]; ok {
		return plan
	}
	return PlanUnknown
}
