package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utreport/internal/config"
	"utreport/pkg/contracts/domain"
)

func TestDaySegmenterSegment(t *testing.T) {
	rules := config.DefaultRuleSet()

	tests := []struct {
		name     string
		build    func(g *fakeGrid)
		yearHint int
		want     []domain.DaySegment
	}{
		{
			name: "two markers split the sheet",
			build: func(g *fakeGrid) {
				g.set(5, 6, "3.31")
				g.set(9, 6, "4/4")
			},
			yearHint: 2025,
			want: []domain.DaySegment{
				{
					Date:   domain.Date{Year: 2025, Month: 3, Day: 31},
					Ranges: []domain.RowRange{{First: 2, Last: 5}},
				},
				{
					Date:   domain.Date{Year: 2025, Month: 4, Day: 4},
					Ranges: []domain.RowRange{{First: 6, Last: 9}},
				},
			},
		},
		{
			name: "cjk marker form",
			build: func(g *fakeGrid) {
				g.set(4, 6, "4月4日")
			},
			yearHint: 2025,
			want: []domain.DaySegment{
				{
					Date:   domain.Date{Year: 2025, Month: 4, Day: 4},
					Ranges: []domain.RowRange{{First: 2, Last: 4}},
				},
			},
		},
		{
			name: "repeated day groups its ranges",
			build: func(g *fakeGrid) {
				g.set(4, 6, "3.31")
				g.set(7, 6, "4.1")
				g.set(10, 6, "3.31")
			},
			yearHint: 2025,
			want: []domain.DaySegment{
				{
					Date:   domain.Date{Year: 2025, Month: 3, Day: 31},
					Ranges: []domain.RowRange{{First: 2, Last: 4}, {First: 8, Last: 10}},
				},
				{
					Date:   domain.Date{Year: 2025, Month: 4, Day: 1},
					Ranges: []domain.RowRange{{First: 5, Last: 7}},
				},
			},
		},
		{
			name: "invalid marker dropped, segmentation continues",
			build: func(g *fakeGrid) {
				g.set(4, 6, "2.30")
				g.set(8, 6, "3.1")
			},
			yearHint: 2025,
			want: []domain.DaySegment{
				{
					Date:   domain.Date{Year: 2025, Month: 3, Day: 1},
					Ranges: []domain.RowRange{{First: 5, Last: 8}},
				},
			},
		},
		{
			name: "non-marker cells ignored",
			build: func(g *fakeGrid) {
				g.set(3, 6, "合计")
				g.set(5, 6, "3.31")
			},
			yearHint: 2025,
			want: []domain.DaySegment{
				{
					Date:   domain.Date{Year: 2025, Month: 3, Day: 31},
					Ranges: []domain.RowRange{{First: 2, Last: 5}},
				},
			},
		},
		{
			name:     "no markers yields empty result",
			build:    func(g *fakeGrid) { g.set(5, 2, "W-005") },
			yearHint: 2025,
			want:     nil,
		},
		{
			name:     "empty sheet",
			build:    func(g *fakeGrid) {},
			yearHint: 2025,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newFakeGrid()
			tt.build(g)
			got := NewDaySegmenter(nil, rules).Segment(g, tt.yearHint)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDaySegmenterOrdering(t *testing.T) {
	// Markers out of calendar order still come back ascending by date.
	g := newFakeGrid()
	g.set(4, 6, "4.4")
	g.set(8, 6, "3.31")

	got := NewDaySegmenter(nil, config.DefaultRuleSet()).Segment(g, 2025)

	require.Len(t, got, 2)
	assert.Equal(t, domain.Date{Year: 2025, Month: 3, Day: 31}, got[0].Date)
	assert.Equal(t, domain.Date{Year: 2025, Month: 4, Day: 4}, got[1].Date)
	// Row attribution follows marker order, not date order.
	assert.Equal(t, []domain.RowRange{{First: 5, Last: 8}}, got[0].Ranges)
	assert.Equal(t, []domain.RowRange{{First: 2, Last: 4}}, got[1].Ranges)
}
