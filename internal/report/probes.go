package report

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"utreport/internal/config"
	"utreport/pkg/contracts/domain"
)

// Grid is the read side of the spreadsheet collaborator.
type Grid interface {
	// Cell returns the cell text at 1-based row and column, "" if empty.
	Cell(row, col int) string
	// LastPopulatedRow returns the last 1-based row with content in the
	// column, or 0 for an empty column.
	LastPopulatedRow(col int) int
}

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// ProbeSelector picks probe models from dataset rows by weld geometry
// and material thickness, using the ordered interval tables from
// configuration.
type ProbeSelector struct {
	rules   domain.ProbeRuleSet
	tags    config.WeldTags
	dataset config.Dataset
	max     int
	logger  *slog.Logger
}

// NewProbeSelector builds a selector over the given rule set.
func NewProbeSelector(logger *slog.Logger, rules config.RuleSet) *ProbeSelector {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProbeSelector{
		rules:   rules.ProbeRules,
		tags:    rules.WeldTags,
		dataset: rules.Dataset,
		max:     rules.MaxProbes,
		logger:  logger,
	}
}

// Select scans the given row ranges (or the sheet's full populated extent
// when ranges is nil) and returns the matched probe models in first-seen
// order, deduplicated and capped. Rows without a recognizable weld tag or
// a parsable positive thickness contribute nothing.
func (s *ProbeSelector) Select(g Grid, ranges []domain.RowRange) []string {
	lastRow := g.LastPopulatedRow(s.dataset.AnchorColumn)
	if lastRow < 2 {
		return nil
	}
	if ranges == nil {
		ranges = []domain.RowRange{{First: 2, Last: lastRow}}
	}

	var picked []string
	seen := make(map[string]bool)
	for _, rr := range ranges {
		first := max(rr.First, 2)
		last := min(rr.Last, lastRow)
		for row := first; row <= last; row++ {
			weld, ok := s.classifyWeld(g.Cell(row, s.dataset.WeldTypeColumn))
			if !ok {
				continue
			}
			thickness, ok := firstNumber(g.Cell(row, s.dataset.ThicknessColumn))
			if !ok {
				thickness, ok = firstNumber(g.Cell(row, s.dataset.ThicknessAltColumn))
			}
			if !ok {
				continue
			}
			if thickness <= 0 {
				// Almost certainly a data-entry error; surface it for
				// operator review instead of classifying the row.
				s.logger.Warn("anomalous thickness, row skipped",
					slog.Int("row", row),
					slog.Float64("thickness", thickness))
				continue
			}
			for _, model := range matchInterval(s.rules[weld], thickness) {
				if !seen[model] {
					picked = append(picked, model)
					seen[model] = true
				}
			}
		}
	}

	if len(picked) > s.max {
		picked = picked[:s.max]
	}
	return picked
}

// classifyWeld maps a weld-type cell to its geometry. The corner-butt tag
// is checked first: the butt tag is a substring of it.
func (s *ProbeSelector) classifyWeld(text string) (domain.WeldType, bool) {
	t := strings.ToUpper(text)
	if strings.Contains(t, strings.ToUpper(s.tags.CornerButt)) {
		return domain.WeldTypeCornerButt, true
	}
	if strings.Contains(t, strings.ToUpper(s.tags.Butt)) {
		return domain.WeldTypeButt, true
	}
	return "", false
}

// matchInterval finds the first interval with thickness in [Min, Max);
// the final interval is unbounded above. No match returns nil.
func matchInterval(intervals []domain.ProbeInterval, thickness float64) []string {
	for i, iv := range intervals {
		if thickness < iv.Min {
			continue
		}
		if i == len(intervals)-1 || thickness < iv.Max {
			return iv.Models
		}
	}
	return nil
}

// firstNumber parses the first numeric substring (integer or decimal,
// optional leading minus) out of a cell text.
func firstNumber(text string) (float64, bool) {
	m := numberPattern.FindString(text)
	if m == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
