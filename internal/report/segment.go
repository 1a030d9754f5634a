package report

import (
	"log/slog"
	"sort"

	"utreport/internal/cndate"
	"utreport/internal/config"
	"utreport/pkg/contracts/domain"
)

// DaySegmenter partitions the dataset into per-day row ranges using the
// inline date markers of the marker column.
type DaySegmenter struct {
	dataset config.Dataset
	logger  *slog.Logger
}

// NewDaySegmenter builds a segmenter over the dataset geometry.
func NewDaySegmenter(logger *slog.Logger, rules config.RuleSet) *DaySegmenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DaySegmenter{dataset: rules.Dataset, logger: logger}
}

// Segment scans the marker column from row 2 to the last populated row
// and folds marker rows into day segments: each marker closes the range
// (previous marker row + 1 .. marker row), the first range starting at
// row 2. Markers sharing a month/day pair group under one segment.
// Marker pairs that do not form a valid date under yearHint are dropped
// with a warning; a sheet without markers yields nil, meaning "treat the
// whole sheet as a single unspecified-date block".
func (s *DaySegmenter) Segment(g Grid, yearHint int) []domain.DaySegment {
	lastRow := g.LastPopulatedRow(s.dataset.MarkerColumn)
	if lastRow < 2 {
		return nil
	}

	type monthDay struct{ month, day int }
	var order []monthDay
	rangesByDay := make(map[monthDay][]domain.RowRange)

	prevRow := 1
	for row := 2; row <= lastRow; row++ {
		month, day, ok := cndate.ParseMonthDay(g.Cell(row, s.dataset.MarkerColumn))
		if !ok {
			continue
		}
		key := monthDay{month, day}
		if _, known := rangesByDay[key]; !known {
			order = append(order, key)
		}
		rangesByDay[key] = append(rangesByDay[key], domain.RowRange{First: prevRow + 1, Last: row})
		prevRow = row
	}
	if len(order) == 0 {
		return nil
	}

	segments := make([]domain.DaySegment, 0, len(order))
	for _, key := range order {
		date, ok := domain.NewDate(yearHint, key.month, key.day)
		if !ok {
			// One bad marker must not abort the run.
			s.logger.Warn("invalid date marker dropped",
				slog.Int("month", key.month),
				slog.Int("day", key.day),
				slog.Int("year_hint", yearHint))
			continue
		}
		segments = append(segments, domain.DaySegment{Date: date, Ranges: rangesByDay[key]})
	}

	sort.Slice(segments, func(i, j int) bool {
		return segments[i].Date.Before(segments[j].Date)
	})
	return segments
}
