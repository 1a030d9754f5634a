package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"utreport/internal/config"
	"utreport/pkg/contracts/domain"
)

// fakeGrid is an in-memory Grid for engine tests.
type fakeGrid struct {
	cells map[[2]int]string // {row, col} -> text
}

func newFakeGrid() *fakeGrid {
	return &fakeGrid{cells: make(map[[2]int]string)}
}

func (g *fakeGrid) set(row, col int, text string) *fakeGrid {
	g.cells[[2]int{row, col}] = text
	return g
}

func (g *fakeGrid) Cell(row, col int) string {
	return g.cells[[2]int{row, col}]
}

func (g *fakeGrid) LastPopulatedRow(col int) int {
	last := 0
	for key, text := range g.cells {
		if key[1] == col && text != "" && key[0] > last {
			last = key[0]
		}
	}
	return last
}

// dataRow populates one measurement row: anchor, weld tag, thickness.
func dataRow(g *fakeGrid, row int, weld, thickness string) {
	g.set(row, 2, fmt.Sprintf("W-%03d", row))
	g.set(row, 3, weld)
	g.set(row, 4, thickness)
}

func TestProbeSelectorSelect(t *testing.T) {
	rules := config.DefaultRuleSet()

	tests := []struct {
		name   string
		build  func(g *fakeGrid)
		ranges []domain.RowRange
		want   []string
	}{
		{
			name: "butt weld mid band",
			build: func(g *fakeGrid) {
				dataRow(g, 2, "D", "30")
			},
			want: []string{"A2.5P9×9A70°", "A2.5P9×9A45°"},
		},
		{
			name: "thickness at lower bound matches that interval",
			build: func(g *fakeGrid) {
				dataRow(g, 2, "D", "40")
			},
			want: []string{"A2.5P9×9A60°", "A2.5P9×9A45°"},
		},
		{
			name: "thickness at upper bound matches the next interval",
			build: func(g *fakeGrid) {
				dataRow(g, 2, "D", "25")
			},
			want: []string{"A2.5P9×9A70°", "A2.5P9×9A45°"},
		},
		{
			name: "final interval is unbounded above",
			build: func(g *fakeGrid) {
				dataRow(g, 2, "JD", "250")
			},
			want: []string{"A2.5P9×9A70°", "A2.5P13×13A70°", "A2.5P13×13A60°", "A2.5P13×13A45°"},
		},
		{
			name: "corner-butt tag wins over butt substring",
			build: func(g *fakeGrid) {
				dataRow(g, 2, "jd-12", "30")
			},
			want: []string{"A2.5P9×9A60°", "A2.5P9×9A45°"},
		},
		{
			name: "thickness parsed out of noisy cell",
			build: func(g *fakeGrid) {
				dataRow(g, 2, "D", "δ=30mm")
			},
			want: []string{"A2.5P9×9A70°", "A2.5P9×9A45°"},
		},
		{
			name: "secondary thickness cell fallback",
			build: func(g *fakeGrid) {
				g.set(2, 2, "W-002")
				g.set(2, 3, "D")
				g.set(2, 4, "见备注")
				g.set(2, 5, "55")
			},
			want: []string{"A2.5P13×13A70°", "A2.5P13×13A45°"},
		},
		{
			name: "unclassifiable rows skipped",
			build: func(g *fakeGrid) {
				dataRow(g, 2, "未知", "30")
				dataRow(g, 3, "D", "无")
				dataRow(g, 4, "D", "-12")
				dataRow(g, 5, "D", "60")
			},
			want: []string{"A2.5P13×13A70°", "A2.5P13×13A45°"},
		},
		{
			name: "below first band contributes nothing",
			build: func(g *fakeGrid) {
				dataRow(g, 2, "D", "5")
			},
			want: nil,
		},
		{
			name: "deduplicated across rows in first-seen order",
			build: func(g *fakeGrid) {
				dataRow(g, 2, "D", "10")
				dataRow(g, 3, "D", "20")
				dataRow(g, 4, "D", "45")
			},
			want: []string{"A2.5P9×9A70°", "A2.5P9×9A60°", "A2.5P9×9A45°"},
		},
		{
			name: "only rows inside the given ranges scanned",
			build: func(g *fakeGrid) {
				dataRow(g, 2, "D", "45")
				dataRow(g, 3, "JD", "45")
				dataRow(g, 4, "D", "10")
			},
			ranges: []domain.RowRange{{First: 4, Last: 4}},
			want:   []string{"A2.5P9×9A70°"},
		},
		{
			name:  "empty sheet",
			build: func(g *fakeGrid) {},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newFakeGrid()
			tt.build(g)
			selector := NewProbeSelector(nil, rules)
			got := selector.Select(g, tt.ranges)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProbeSelectorCapAndUniqueness(t *testing.T) {
	rules := config.DefaultRuleSet()
	g := newFakeGrid()
	// Rows spanning every band of both tables to exceed eight distinct
	// model mentions.
	thicknesses := []string{"10", "30", "45", "60", "80", "120"}
	row := 2
	for _, th := range thicknesses {
		dataRow(g, row, "D", th)
		row++
		dataRow(g, row, "JD", th)
		row++
	}

	got := NewProbeSelector(nil, rules).Select(g, nil)

	assert.LessOrEqual(t, len(got), rules.MaxProbes)
	seen := make(map[string]bool)
	for _, model := range got {
		assert.False(t, seen[model], "duplicate model %s", model)
		seen[model] = true
	}
}
