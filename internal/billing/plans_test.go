package billing

import "testing"

func TestResolvePlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		priceID string
		want    string
	}{
		{"price_starter_monthly", "Starter"},
		{"price_starter_yearly", "Starter"},
		{"price_growth_monthly", "Growth"},
		{"price_scale_yearly", "Scale"},
		{"price_discontinued", PlanUnknown},
		{"", PlanUnknown},
	}
	for _, tc := range tests {
		if got := ResolvePlan(tc.priceID); got != tc.want {
			t.Fatalf("ResolvePlan(%q) = %q, want %q", tc.priceID, got, tc.want)
		}
	}
}
