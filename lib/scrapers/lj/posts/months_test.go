package posts

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMonthRange(t *testing.T) {
	testCases := []struct {
		name     string
		start    Month
		end      Month
		expected []Month
	}{
		{
			name:     "single month",
			start:    Month{2023, 1},
			end:      Month{2023, 1},
			expected: []Month{{2023, 1}},
		},
		{
			name:     "same year",
			start:    Month{2023, 1},
			end:      Month{2023, 3},
			expected: []Month{{2023, 1}, {2023, 2}, {2023, 3}},
		},
		{
			name:     "across year boundary",
			start:    Month{2022, 11},
			end:      Month{2023, 2},
			expected: []Month{{2022, 11}, {2022, 12}, {2023, 1}, {2023, 2}},
		},
		{
			name:     "end before start",
			start:    Month{2023, 5},
			end:      Month{2023, 4},
			expected: nil,
		},
	}

	for _, c := range testCases {
		t.Run(c.name, func(t *testing.T) {
			got := MonthRange(c.start.Year, c.start.Month, c.end.Year, c.end.Month)
			diff := cmp.Diff(c.expected, got)
			if diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestMonthRangeFullYear(t *testing.T) {
	got := MonthRange(2023, 1, 2023, 12)
	if len(got) != 12 {
		t.Fatalf("expected 12 months, got %d", len(got))
	}
}
