package ledger

import "testing"

func TestBudgetThresholds(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		spent     string
		threshold string
		over      bool
		near      bool
	}{
		{"well under", "1000", "100", "80", false, false},
		{"at threshold", "1000", "800", "80", false, true},
		{"between threshold and limit", "1000", "950", "80", false, true},
		{"exactly at limit", "1000", "1000", "80", false, true},
		{"over limit", "1000", "1000.01", "80", true, false},
		{"zero budget never near", "0", "50", "80", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Budget{
				Amount:         d(tt.amount),
				Spent:          d(tt.spent),
				AlertThreshold: d(tt.threshold),
			}
			if got := b.IsOverBudget(); got != tt.over {
				t.Errorf("IsOverBudget() = %v, expected %v", got, tt.over)
			}
			if got := b.IsNearLimit(); got != tt.near {
				t.Errorf("IsNearLimit() = %v, expected %v", got, tt.near)
			}
		})
	}
}
