// Package grid wraps excelize workbooks behind the small cell-oriented
// surface the report engine needs: indexed reads, bottom-up extent
// detection, and merge-aware writes.
package grid

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is an open .xlsx file.
type Workbook struct {
	file *excelize.File
	path string
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	return &Workbook{file: f, path: path}, nil
}

// Save writes the workbook back to its original path.
func (w *Workbook) Save() error {
	if err := w.file.Save(); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", w.path, err)
	}
	return nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Sheet resolves a worksheet by candidate names, falling back to the
// given zero-based sheet index when none of the names exist. The name
// list tolerates template revisions that renamed (or typo'd) the sheet.
func (w *Workbook) Sheet(candidates []string, fallbackIndex int) (*Sheet, error) {
	existing := w.file.GetSheetList()
	for _, want := range candidates {
		for _, name := range existing {
			if name == want {
				return &Sheet{file: w.file, name: name}, nil
			}
		}
	}
	if fallbackIndex < 0 || fallbackIndex >= len(existing) {
		return nil, fmt.Errorf("no sheet matching %v and no sheet at index %d", candidates, fallbackIndex)
	}
	return &Sheet{file: w.file, name: existing[fallbackIndex]}, nil
}

// Sheet is one worksheet of an open workbook.
type Sheet struct {
	file *excelize.File
	name string
}

// Name returns the resolved worksheet name.
func (s *Sheet) Name() string {
	return s.name
}

// Cell returns the formatted text of the cell at 1-based row and column,
// or "" for anything unreadable. Reads are total: the engine treats a
// bad cell the same as an empty one.
func (s *Sheet) Cell(row, col int) string {
	addr, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	value, err := s.file.GetCellValue(s.name, addr)
	if err != nil {
		return ""
	}
	return value
}

// LastPopulatedRow returns the highest 1-based row with non-blank text in
// the given column, or 0 when the column is empty.
func (s *Sheet) LastPopulatedRow(col int) int {
	rows, err := s.file.GetRows(s.name)
	if err != nil {
		return 0
	}
	for r := len(rows) - 1; r >= 0; r-- {
		if col-1 < len(rows[r]) && strings.TrimSpace(rows[r][col-1]) != "" {
			return r + 1
		}
	}
	return 0
}

// WriteCell writes value at addr, which may be a single cell ("B11") or a
// range ("B2:D2"); ranges collapse to their anchor cell. When the anchor
// sits inside a merged region the write lands on the region's top-left
// cell so the merged area shows the value as a unit.
func (s *Sheet) WriteCell(addr, value string) error {
	anchor := addr
	if i := strings.IndexByte(addr, ':'); i >= 0 {
		anchor = addr[:i]
	}

	target := anchor
	if merged, err := s.file.GetMergeCells(s.name); err == nil {
		for _, region := range merged {
			if cellInRange(anchor, region.GetStartAxis(), region.GetEndAxis()) {
				target = region.GetStartAxis()
				break
			}
		}
	}

	if err := s.file.SetCellStr(s.name, target, value); err != nil {
		// Merge resolution can hand back an axis the sheet no longer
		// has; the plain anchor write is the fallback.
		if target != anchor {
			return s.file.SetCellStr(s.name, anchor, value)
		}
		return err
	}
	return nil
}

// WriteAt writes value at 1-based row and column.
func (s *Sheet) WriteAt(row, col int, value string) error {
	addr, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("invalid cell coordinates (%d, %d): %w", row, col, err)
	}
	return s.file.SetCellStr(s.name, addr, value)
}

// WriteColumn writes values downward in one batched operation starting at
// (startRow, col).
func (s *Sheet) WriteColumn(startRow, col int, values []string) error {
	if len(values) == 0 {
		return nil
	}
	anchor, err := excelize.CoordinatesToCellName(col, startRow)
	if err != nil {
		return fmt.Errorf("invalid cell coordinates (%d, %d): %w", startRow, col, err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := s.file.SetSheetCol(s.name, anchor, &cells); err != nil {
		return fmt.Errorf("failed to write column %s: %w", anchor, err)
	}
	return nil
}

// ClearRect blanks every cell in the inclusive rectangle.
func (s *Sheet) ClearRect(firstRow, firstCol, lastRow, lastCol int) error {
	for r := firstRow; r <= lastRow; r++ {
		for c := firstCol; c <= lastCol; c++ {
			addr, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return err
			}
			if err := s.file.SetCellStr(s.name, addr, ""); err != nil {
				return err
			}
		}
	}
	return nil
}

// cellInRange reports whether cell lies inside the rectangle spanned by
// start and end axes.
func cellInRange(cell, start, end string) bool {
	cc, cr, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return false
	}
	sc, sr, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return false
	}
	ec, er, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return false
	}
	return cc >= sc && cc <= ec && cr >= sr && cr <= er
}
