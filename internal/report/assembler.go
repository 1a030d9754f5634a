package report

import (
	"fmt"
	"log/slog"
	"strings"

	"utreport/internal/cndate"
	"utreport/internal/config"
	"utreport/pkg/contracts/domain"
)

// SheetWriter is the write side of the spreadsheet collaborator.
type SheetWriter interface {
	// WriteCell writes at a template address ("B11" or "B2:D2"),
	// honoring merged regions.
	WriteCell(addr, value string) error
	// WriteAt writes at 1-based row and column.
	WriteAt(row, col int, value string) error
	// WriteColumn writes values downward from (startRow, col) as one
	// batched operation.
	WriteColumn(startRow, col int, values []string) error
	// ClearRect blanks the inclusive rectangle.
	ClearRect(firstRow, firstCol, lastRow, lastCol int) error
}

// Assembler combines extracted fields, probe selections, basis-code
// dispatch and the temperature estimate into template writes, one pass
// per day segment. Cell addresses come from the configured layout.
type Assembler struct {
	cfg         config.ReportConfig
	basis       *BasisCodeDispatcher
	temperature *TemperatureEstimator
	logger      *slog.Logger
}

// NewAssembler builds an assembler over the report configuration.
func NewAssembler(logger *slog.Logger, cfg config.ReportConfig) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		cfg:         cfg,
		basis:       NewBasisCodeDispatcher(cfg.Rules.BasisCodes),
		temperature: NewTemperatureEstimator(cfg.Rules.MonthlyMeans),
		logger:      logger,
	}
}

// InstrumentID returns the instrument identifier for the inspection
// date: the in-window ID inside the configured calendar bounds, the
// out-of-window ID everywhere else (absent date included).
func (a *Assembler) InstrumentID(date domain.Date) string {
	w := a.cfg.Rules.Instrument
	if !date.IsZero() && !date.Before(w.Start) && !w.End.Before(date) {
		return w.InsideID
	}
	return w.OutsideID
}

// FillBasicSheet writes the basic-information sheet for one day: field
// values, instrument, temperature, boilerplate, scan method, basis-code
// slots and the probe model list.
func (a *Assembler) FillBasicSheet(sheet SheetWriter, fields domain.FieldMap, date domain.Date, probes []string) error {
	layout := a.cfg.Layout
	values := a.cfg.Values
	w := &cellWriter{sheet: sheet}

	w.put(layout.InstrumentCell, a.InstrumentID(date))
	if t := a.temperature.Estimate(date); t != "" {
		w.put(layout.TemperatureCell, t)
	}

	w.put(values.TesterCell, values.Tester)
	w.put(values.KValueCell, values.KValue)
	w.put(values.CompensationCell, values.SurfaceCompensation)
	w.put(values.SensitivityCell, values.Sensitivity)
	w.put(values.ConditionCell, values.SurfaceCondition)
	w.put(values.WeldingCell, values.WeldingMethod)
	w.put(values.TimingCell, values.Timing)
	w.put(values.GrooveCell, values.GrooveForm)
	for _, sc := range layout.StaticCells {
		w.put(sc.Cell, sc.Value)
	}

	for _, field := range []domain.Field{
		domain.FieldProjectName,
		domain.FieldEngagementNumber,
		domain.FieldMaterial,
		domain.FieldQualityGrade,
	} {
		if v := fields.Get(field); v != "" {
			w.put(layout.FieldCells[field], v)
		}
	}
	if !date.IsZero() {
		w.put(layout.FieldCells[domain.FieldInspectionDate], cndate.Format(date))
	}

	a.fillScanMethod(w, fields.Get(domain.FieldInspectionLocation))

	slots := a.basis.Dispatch(fields.Get(domain.FieldAppliedStandards))
	for _, slot := range domain.BasisSlots {
		if addr, ok := layout.BasisCells[slot]; ok {
			w.put(addr, slots[slot])
		}
	}

	a.fillProbes(w, fields, probes)

	if w.err != nil {
		return fmt.Errorf("failed to fill basic sheet: %w", w.err)
	}
	return nil
}

// fillScanMethod derives the scan-method cells and the remark legend from
// the inspection location keywords. The corner-butt keyword contains the
// butt keyword, so a corner-butt location normally drives both branches.
func (a *Assembler) fillScanMethod(w *cellWriter, location string) {
	layout := a.cfg.Layout
	values := a.cfg.Values
	hasCorner := strings.Contains(location, a.cfg.Rules.Location.CornerButt)
	hasButt := strings.Contains(location, a.cfg.Rules.Location.Butt)

	switch {
	case hasCorner && hasButt:
		w.put(layout.ScanPrimaryCell, values.ScanSingleSided)
		w.put(layout.ScanSecondCell, values.ScanDoubleSided)
		w.put(layout.RemarkCell, values.RemarkBoth)
	case hasCorner:
		w.put(layout.ScanPrimaryCell, values.ScanSingleSided)
		w.put(layout.RemarkCell, values.RemarkCorner)
	default:
		w.put(layout.ScanPrimaryCell, values.ScanDoubleSided)
		w.put(layout.RemarkCell, values.RemarkButt)
	}
}

// fillProbes writes the probe model column: the dataset selection when
// present, else the models split out of the extracted probe-model field.
// Rows beyond the models stay cleared.
func (a *Assembler) fillProbes(w *cellWriter, fields domain.FieldMap, probes []string) {
	layout := a.cfg.Layout
	models := probes
	if len(models) == 0 {
		models = SplitProbeField(fields.Get(domain.FieldProbeModel))
	}
	if len(models) > a.cfg.Rules.MaxProbes {
		models = models[:a.cfg.Rules.MaxProbes]
	}
	for i, row := 0, layout.ProbeFirstRow; row <= layout.ProbeLastRow; row++ {
		value := ""
		if i < len(models) {
			value = models[i]
		}
		w.put(fmt.Sprintf("%s%d", layout.ProbeColumn, row), value)
		i++
	}
}

// FillDataSheet copies the measurement rows of the given ranges (or the
// whole populated sheet when ranges is nil) into the data sheet, clearing
// stale rows first and marking populated rows with the level mark.
func (a *Assembler) FillDataSheet(dst SheetWriter, src Grid, ranges []domain.RowRange) error {
	ds := a.cfg.Rules.Dataset
	layout := a.cfg.Layout

	lastRow := src.LastPopulatedRow(ds.AnchorColumn)
	if ranges == nil {
		if lastRow < 2 {
			a.logger.Warn("dataset has no measurement rows, data sheet left as-is")
			return nil
		}
		ranges = []domain.RowRange{{First: 2, Last: lastRow}}
	}

	remarkCol := a.findRemarkColumn(src)

	var rows [][]string
	var remarks []string
	for _, rr := range ranges {
		for r := rr.First; r <= rr.Last; r++ {
			vals := make([]string, len(ds.CopyColumns))
			for i, col := range ds.CopyColumns {
				vals[i] = src.Cell(r, col)
			}
			rows = append(rows, vals)
			if remarkCol > 0 {
				remarks = append(remarks, src.Cell(r, remarkCol))
			}
		}
	}
	if len(rows) == 0 {
		a.logger.Warn("no rows to copy for the given ranges")
		return nil
	}

	startRow := layout.DataStartRow
	endRow := startRow + len(rows) - 1
	clearThrough := max(endRow, layout.DataClearThrough)
	if err := dst.ClearRect(startRow, 1, clearThrough, layout.DataRemarkColumn); err != nil {
		return fmt.Errorf("failed to clear data area: %w", err)
	}

	for i, destCol := range layout.DataColumns {
		column := make([]string, len(rows))
		for r := range rows {
			column[r] = rows[r][i]
		}
		if err := dst.WriteColumn(startRow, destCol, column); err != nil {
			return fmt.Errorf("failed to write data column %d: %w", destCol, err)
		}
	}
	if remarkCol > 0 {
		if err := dst.WriteColumn(startRow, layout.DataRemarkColumn, remarks); err != nil {
			return fmt.Errorf("failed to write remark column: %w", err)
		}
	}

	for i, vals := range rows {
		if !anyNonBlank(vals) {
			continue
		}
		if err := dst.WriteAt(startRow+i, layout.DataLevelColumn, layout.DataLevelMark); err != nil {
			return fmt.Errorf("failed to write level mark: %w", err)
		}
	}

	a.logger.Info("data sheet filled",
		slog.Int("rows", len(rows)),
		slog.Bool("remarks_copied", remarkCol > 0))
	return nil
}

// findRemarkColumn scans the first two header rows for the remark header
// and returns its 1-based column, or 0 when absent.
func (a *Assembler) findRemarkColumn(src Grid) int {
	header := a.cfg.Rules.Dataset.RemarkHeader
	if header == "" {
		return 0
	}
	for _, row := range []int{1, 2} {
		for col := 1; col <= 30; col++ {
			if strings.TrimSpace(src.Cell(row, col)) == header {
				return col
			}
		}
	}
	return 0
}

// SplitProbeField splits the extracted probe-model field on CJK/ASCII
// separators, dropping empty tokens.
func SplitProbeField(text string) []string {
	var models []string
	for _, token := range tokenSeparators.Split(strings.TrimSpace(text), -1) {
		if token != "" {
			models = append(models, token)
		}
	}
	return models
}

// InferYearHint derives the dataset year from the raw date context (range
// start), else from the extracted inspection date, else fallback.
func InferYearHint(fields domain.FieldMap, fallback int) int {
	if start, _ := cndate.ParseDateRange(fields.Get(domain.FieldRawDateContext)); start != nil {
		return start.Year
	}
	if d, ok := cndate.ParseDate(fields.Get(domain.FieldInspectionDate)); ok {
		return d.Year
	}
	return fallback
}

// cellWriter sticks to the first write error so fill passes read as
// straight-line address/value pairs.
type cellWriter struct {
	sheet SheetWriter
	err   error
}

func (w *cellWriter) put(addr, value string) {
	if w.err != nil || addr == "" {
		return
	}
	w.err = w.sheet.WriteCell(addr, value)
}

func anyNonBlank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
