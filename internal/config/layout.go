package config

import "utreport/pkg/contracts/domain"

// TemplateLayout maps the report engine's named outputs to physical cell
// addresses on the template workbook. The layout ships as configuration so
// a revised template only needs a new layout, not new code.
type TemplateLayout struct {
	// Sheet name candidates, tried in order before falling back to the
	// sheet index. The first entry keeps a known typo from the live
	// template in circulation.
	BasicSheetNames []string `yaml:"basic_sheet_names" validate:"min=1"`
	DataSheetNames  []string `yaml:"data_sheet_names" validate:"min=1"`

	// FieldCells maps extracted fields to their template address.
	FieldCells map[domain.Field]string `yaml:"field_cells" validate:"min=1"`

	// Named single-purpose cells on the basic sheet.
	InstrumentCell  string `yaml:"instrument_cell" validate:"required"`
	TemperatureCell string `yaml:"temperature_cell" validate:"required"`
	RemarkCell      string `yaml:"remark_cell" validate:"required"`
	ScanPrimaryCell string `yaml:"scan_primary_cell" validate:"required"`
	ScanSecondCell  string `yaml:"scan_second_cell" validate:"required"`

	// BasisCells maps every basis slot, catch-all included, to a cell.
	BasisCells map[domain.BasisSlot]string `yaml:"basis_cells" validate:"min=1"`

	// Probe model list column: one model per row, FirstRow..LastRow.
	ProbeColumn   string `yaml:"probe_column" validate:"required"`
	ProbeFirstRow int    `yaml:"probe_first_row" validate:"min=1"`
	ProbeLastRow  int    `yaml:"probe_last_row" validate:"min=1"`

	// StaticCells receive fixed boilerplate values on every fill.
	StaticCells []StaticCell `yaml:"static_cells"`

	// Data sheet geometry.
	DataStartRow     int   `yaml:"data_start_row" validate:"min=1"`
	DataClearThrough int   `yaml:"data_clear_through" validate:"min=1"`
	DataColumns      []int `yaml:"data_columns" validate:"min=1"`
	DataRemarkColumn int   `yaml:"data_remark_column" validate:"min=1"`
	DataLevelColumn  int   `yaml:"data_level_column" validate:"min=1"`
	DataLevelMark    string `yaml:"data_level_mark" validate:"required"`
}

// StaticCell is one boilerplate write applied on every fill.
type StaticCell struct {
	Cell  string `yaml:"cell"`
	Value string `yaml:"value"`
}

// FillValues are the operator-editable boilerplate values written to the
// basic sheet. The original template hardcoded these; here they are data.
type FillValues struct {
	Tester              string `yaml:"tester"`
	KValue              string `yaml:"k_value"`
	SurfaceCompensation string `yaml:"surface_compensation"`
	Sensitivity         string `yaml:"sensitivity"`
	SurfaceCondition    string `yaml:"surface_condition"`
	WeldingMethod       string `yaml:"welding_method"`
	Timing              string `yaml:"timing"`
	GrooveForm          string `yaml:"groove_form"`

	ScanSingleSided string `yaml:"scan_single_sided"`
	ScanDoubleSided string `yaml:"scan_double_sided"`
	RemarkBoth      string `yaml:"remark_both"`
	RemarkCorner    string `yaml:"remark_corner"`
	RemarkButt      string `yaml:"remark_butt"`

	TesterCell       string `yaml:"tester_cell"`
	KValueCell       string `yaml:"k_value_cell"`
	CompensationCell string `yaml:"compensation_cell"`
	SensitivityCell  string `yaml:"sensitivity_cell"`
	ConditionCell    string `yaml:"condition_cell"`
	WeldingCell      string `yaml:"welding_cell"`
	TimingCell       string `yaml:"timing_cell"`
	GrooveCell       string `yaml:"groove_cell"`
}

// DefaultTemplateLayout returns the layout of the current report template.
func DefaultTemplateLayout() TemplateLayout {
	return TemplateLayout{
		BasicSheetNames: []string{"基础性息", "基础信息"},
		DataSheetNames:  []string{"数据信息"},
		FieldCells: map[domain.Field]string{
			domain.FieldProjectName:      "B2:D2",
			domain.FieldEngagementNumber: "F2:J2",
			domain.FieldInspectionDate:   "F3:J3",
			domain.FieldMaterial:         "B6:D6",
			domain.FieldQualityGrade:     "F9:G9",
		},
		InstrumentCell:  "B3:D3",
		TemperatureCell: "B4:D4",
		RemarkCell:      "B21:J21",
		ScanPrimaryCell: "B11",
		ScanSecondCell:  "C11",
		BasisCells: map[domain.BasisSlot]string{
			domain.SlotGB50205:    "B12:B12",
			domain.SlotGB50661:    "C12:C12",
			domain.SlotJGT203:     "D12:D12",
			domain.SlotGBT50621:   "E12:E12",
			domain.SlotGBT11345:   "F12:F12",
			domain.SlotGBT29712:   "G12:G12",
			domain.SlotGBT29711:   "H12:H12",
			domain.SlotBasisOther: "I12:J12",
		},
		ProbeColumn:   "B",
		ProbeFirstRow: 13,
		ProbeLastRow:  20,
		StaticCells: []StaticCell{
			{Cell: "F6", Value: "CSK-IA"},
			{Cell: "H6", Value: "RB-1"},
			{Cell: "I6", Value: "RB-2"},
			{Cell: "B7:D7", Value: "化学浆糊"},
			{Cell: "B8:D8", Value: "化学浆糊"},
		},
		DataStartRow:     3,
		DataClearThrough: 202,
		DataColumns:      []int{1, 4, 5, 6},
		DataRemarkColumn: 13,
		DataLevelColumn:  12,
		DataLevelMark:    "Ⅰ",
	}
}

// DefaultFillValues returns the boilerplate values for the current template.
func DefaultFillValues() FillValues {
	return FillValues{
		Tester:              "于征",
		KValue:              "角度",
		SurfaceCompensation: "4dB",
		Sensitivity:         "DAC-14dB",
		SurfaceCondition:    "磨光",
		WeldingMethod:       "气保",
		Timing:              "焊后24h",
		GrooveForm:          "L",

		ScanSingleSided: "单面单侧",
		ScanDoubleSided: "单面双侧",
		RemarkBoth:      "注：D表示对接、JD表示角对接",
		RemarkCorner:    "注：JD表示角对接",
		RemarkButt:      "注：D表示对接",

		TesterCell:       "B5:D5",
		KValueCell:       "F5:J5",
		CompensationCell: "F7:J7",
		SensitivityCell:  "F8:J8",
		ConditionCell:    "B9:D9",
		WeldingCell:      "B10:D10",
		TimingCell:       "F10:J10",
		GrooveCell:       "F11:J11",
	}
}
