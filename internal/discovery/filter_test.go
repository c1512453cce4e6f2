package discovery

import (
	"testing"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		ids      []string
		pattern  string
		expected int // Expected number of matches
	}{
		{
			name:     "empty pattern returns all",
			ids:      []string{"mod/user-test", "mod/payment-test", "mod/order-test"},
			pattern:  "",
			expected: 3,
		},
		{
			name:     "wildcard pattern matches suffix",
			ids:      []string{"mod/user-test", "mod/payment-test", "mod/order-test"},
			pattern:  "*user-test",
			expected: 1,
		},
		{
			name:     "wildcard pattern matches substring",
			ids:      []string{"mod/user-test", "mod/payment-test", "mod/order-test", "mod/payment-service-test"},
			pattern:  "*payment*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			ids:      []string{"mod/user-test", "mod/payment-test", "mod/order-test"},
			pattern:  "payment",
			expected: 1,
		},
		{
			name:     "no matches",
			ids:      []string{"mod/user-test", "mod/payment-test"},
			pattern:  "*nonexistent*",
			expected: 0,
		},
		{
			name:     "directory part is not matched",
			ids:      []string{"payment/user-test", "mod/payment-test"},
			pattern:  "payment",
			expected: 1,
		},
		{
			name:     "question mark wildcard",
			ids:      []string{"mod/a1-test", "mod/a22-test"},
			pattern:  "a?-test",
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(tt.ids, tt.pattern)
			if len(result) != tt.expected {
				t.Errorf("expected %d matches, got %d (%v)", tt.expected, len(result), result)
			}
		})
	}
}

func TestFilter_FilterByName_EdgeCases(t *testing.T) {
	filter := NewFilter()

	t.Run("empty identifier list", func(t *testing.T) {
		result := filter.FilterByName([]string{}, "*-test")
		if len(result) != 0 {
			t.Errorf("expected empty result, got %d items", len(result))
		}
	})

	t.Run("pattern with multiple wildcards", func(t *testing.T) {
		ids := []string{"user-service-test", "user-controller-test", "payment-test"}
		result := filter.FilterByName(ids, "*user*test")
		if len(result) != 2 {
			t.Errorf("expected 2 matches, got %d", len(result))
		}
	})

	t.Run("order is preserved", func(t *testing.T) {
		ids := []string{"z-test", "a-test", "m-test"}
		result := filter.FilterByName(ids, "*-test")
		for i := range ids {
			if result[i] != ids[i] {
				t.Fatalf("expected %v, got %v", ids, result)
			}
		}
	})
}
