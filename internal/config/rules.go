package config

import (
	"fmt"

	"utreport/pkg/contracts/domain"
)

// ReportConfig groups the rule tables, template layout and fill values the
// report engine consumes. Everything here is data: a template revision is a
// config change, not a code change.
type ReportConfig struct {
	Rules  RuleSet        `yaml:"rules"`
	Layout TemplateLayout `yaml:"layout"`
	Values FillValues     `yaml:"values"`
}

// FieldLabel binds a canonical field to the label substring that marks it
// inside the report document.
type FieldLabel struct {
	Field domain.Field `yaml:"field"`
	Label string       `yaml:"label"`
}

// WeldTags holds the cell-text tags classifying a dataset row's weld type.
// The corner-butt tag is checked first: its tag contains the butt tag.
type WeldTags struct {
	CornerButt string `yaml:"corner_butt" validate:"required"`
	Butt       string `yaml:"butt" validate:"required"`
}

// InstrumentWindow selects an instrument identifier by inspection date:
// dates inside [Start, End] use InsideID, everything else OutsideID.
type InstrumentWindow struct {
	Start     domain.Date `yaml:"start"`
	End       domain.Date `yaml:"end"`
	InsideID  string      `yaml:"inside_id" validate:"required"`
	OutsideID string      `yaml:"outside_id" validate:"required"`
}

// LocationKeywords drive the scan-method cells and the remark legend from
// the extracted inspection location.
type LocationKeywords struct {
	CornerButt string `yaml:"corner_butt" validate:"required"`
	Butt       string `yaml:"butt" validate:"required"`
}

// Dataset describes the fixed column positions of the measurement workbook.
type Dataset struct {
	AnchorColumn       int    `yaml:"anchor_column" validate:"min=1"`
	MarkerColumn       int    `yaml:"marker_column" validate:"min=1"`
	WeldTypeColumn     int    `yaml:"weld_type_column" validate:"min=1"`
	ThicknessColumn    int    `yaml:"thickness_column" validate:"min=1"`
	ThicknessAltColumn int    `yaml:"thickness_alt_column" validate:"min=1"`
	CopyColumns        []int  `yaml:"copy_columns" validate:"min=1"`
	RemarkHeader       string `yaml:"remark_header"`
}

// RuleSet carries the immutable extraction and selection tables.
type RuleSet struct {
	LabelVocabulary []string                    `yaml:"label_vocabulary" validate:"min=1"`
	FieldLabels     []FieldLabel                `yaml:"field_labels" validate:"min=1"`
	ProbeRules      domain.ProbeRuleSet         `yaml:"probe_rules" validate:"required"`
	WeldTags        WeldTags                    `yaml:"weld_tags"`
	BasisCodes      map[string]domain.BasisSlot `yaml:"basis_codes" validate:"min=1"`
	MonthlyMeans    []float64                   `yaml:"monthly_means" validate:"len=12"`
	Instrument      InstrumentWindow            `yaml:"instrument"`
	Location        LocationKeywords            `yaml:"location"`
	Dataset         Dataset                     `yaml:"dataset"`
	MaxProbes       int                         `yaml:"max_probes" validate:"min=1"`
}

// Validate checks cross-field constraints the struct tags cannot express.
func (r ReportConfig) Validate() error {
	for weld, intervals := range r.Rules.ProbeRules {
		if len(intervals) == 0 {
			return fmt.Errorf("probe rules for weld type %q are empty", weld)
		}
		prev := intervals[0].Min
		for i, iv := range intervals {
			if iv.Min < prev {
				return fmt.Errorf("probe rules for weld type %q not ascending at interval %d", weld, i)
			}
			if len(iv.Models) == 0 {
				return fmt.Errorf("probe rules for weld type %q interval %d has no models", weld, i)
			}
			prev = iv.Min
		}
	}
	for code, slot := range r.Rules.BasisCodes {
		if slot == domain.SlotBasisOther {
			return fmt.Errorf("basis code %q maps to the catch-all slot", code)
		}
		if _, ok := r.Layout.BasisCells[slot]; !ok {
			return fmt.Errorf("basis code %q maps to slot %q with no layout cell", code, slot)
		}
	}
	if _, ok := r.Layout.BasisCells[domain.SlotBasisOther]; !ok {
		return fmt.Errorf("layout is missing the catch-all basis cell")
	}
	if len(r.Layout.DataColumns) != len(r.Rules.Dataset.CopyColumns) {
		return fmt.Errorf("layout data columns (%d) do not pair with dataset copy columns (%d)",
			len(r.Layout.DataColumns), len(r.Rules.Dataset.CopyColumns))
	}
	return nil
}

// DefaultRuleSet returns the hand-authored rule tables for the current
// template revision.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		LabelVocabulary: []string{
			"超声波探伤报告", "编号", "试验编号", "委托编号", "工程名称及", "施工部位",
			"委托单位", "施工单位", "监理单位", "构件名称", "检测部位", "材质", "板厚",
			"仪器型号", "试块", "耦合剂", "表面补偿", "表面状况", "执行处理", "探头型号",
			"探伤日期", "批准", "审核", "试验", "检测单位", "报告日期", "检测单位名称",
		},
		FieldLabels: []FieldLabel{
			{Field: domain.FieldEngagementNumber, Label: "委托编号"},
			{Field: domain.FieldProjectName, Label: "工程名称及"},
			{Field: domain.FieldInspectionLocation, Label: "检测部位"},
			{Field: domain.FieldMaterial, Label: "材质"},
			{Field: domain.FieldProbeModel, Label: "探头型号"},
			{Field: domain.FieldInspectionDate, Label: "探伤日期"},
			{Field: domain.FieldAppliedStandards, Label: "执行处理"},
		},
		ProbeRules: domain.ProbeRuleSet{
			domain.WeldTypeButt: {
				{Min: 8, Max: 15, Models: []string{"A2.5P9×9A70°"}},
				{Min: 15, Max: 25, Models: []string{"A2.5P9×9A70°"}},
				{Min: 25, Max: 40, Models: []string{"A2.5P9×9A70°", "A2.5P9×9A45°"}},
				{Min: 40, Max: 50, Models: []string{"A2.5P9×9A60°", "A2.5P9×9A45°"}},
				{Min: 50, Max: 75, Models: []string{"A2.5P13×13A70°", "A2.5P13×13A45°"}},
				{Min: 75, Max: 100, Models: []string{"A2.5P13×13A60°", "A2.5P13×13A45°"}},
				{Min: 100, Max: 0, Models: []string{"A2.5P13×13A60°", "A2.5P13×13A45°"}},
			},
			domain.WeldTypeCornerButt: {
				{Min: 8, Max: 15, Models: []string{"A2.5P9×9A70°"}},
				{Min: 15, Max: 25, Models: []string{"A2.5P9×9A70°"}},
				{Min: 25, Max: 40, Models: []string{"A2.5P9×9A60°", "A2.5P9×9A45°"}},
				{Min: 40, Max: 50, Models: []string{"A2.5P9×9A70°", "A2.5P9×9A60°"}},
				{Min: 50, Max: 75, Models: []string{"A2.5P13×13A70°", "A2.5P13×13A60°", "A2.5P13×13A45°"}},
				{Min: 75, Max: 100, Models: []string{"A2.5P13×13A70°", "A2.5P13×13A60°", "A2.5P13×13A45°"}},
				{Min: 100, Max: 0, Models: []string{"A2.5P9×9A70°", "A2.5P13×13A70°", "A2.5P13×13A60°", "A2.5P13×13A45°"}},
			},
		},
		WeldTags: WeldTags{
			CornerButt: "JD",
			Butt:       "D",
		},
		BasisCodes: map[string]domain.BasisSlot{
			"GB50205-2020":   domain.SlotGB50205,
			"GB50661-2011":   domain.SlotGB50661,
			"JG/T203-2007":   domain.SlotJGT203,
			"GB/T50621-2010": domain.SlotGBT50621,
			"GB/T11345-2023": domain.SlotGBT11345,
			"GB/T29712-2023": domain.SlotGBT29712,
			"GB/T29711-2023": domain.SlotGBT29711,
		},
		// Beijing monthly mean temperatures, January first.
		MonthlyMeans: []float64{-3, 0, 6, 14, 20, 24, 26, 25, 20, 13, 5, -1},
		Instrument: InstrumentWindow{
			Start:     domain.Date{Year: 2025, Month: 3, Day: 12},
			End:       domain.Date{Year: 2025, Month: 4, Day: 9},
			InsideID:  "13-27",
			OutsideID: "22-72",
		},
		Location: LocationKeywords{
			CornerButt: "角对接焊缝",
			Butt:       "对接焊缝",
		},
		Dataset: Dataset{
			AnchorColumn:       2,
			MarkerColumn:       6,
			WeldTypeColumn:     3,
			ThicknessColumn:    4,
			ThicknessAltColumn: 5,
			CopyColumns:        []int{2, 3, 4, 5},
			RemarkHeader:       "备注",
		},
		MaxProbes: 8,
	}
}

// DefaultReportConfig returns the complete built-in report configuration.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Rules:  DefaultRuleSet(),
		Layout: DefaultTemplateLayout(),
		Values: DefaultFillValues(),
	}
}
