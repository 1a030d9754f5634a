// Package report implements the data-transformation core of the report
// filler: field extraction from the inspection document, dataset day
// segmentation, probe selection, basis-code dispatch, temperature
// estimation and the final template assembly.
//
// Every function here is total over messy input. Missing structure,
// malformed dates and unclassifiable rows degrade to absent values;
// nothing in this package panics or returns an error for bad content.
package report

import (
	"log/slog"
	"regexp"
	"strings"

	"utreport/internal/cndate"
	"utreport/internal/config"
	"utreport/pkg/contracts/domain"
)

// Document is the report-document collaborator: ordered paragraph texts
// and structured table cell texts.
type Document interface {
	Paragraphs() []string
	Tables() [][][]string
}

var (
	gradePattern     = regexp.MustCompile(`本次检测共测试([一二])级焊缝`)
	datePattern      = regexp.MustCompile(`探伤日期[:：]?\s*([0-9年月日～\-\s]+)`)
	standardsPattern = regexp.MustCompile(`执行处理[:：]?\s*([A-Za-z0-9/—、，,;；\s-]+)`)
)

const dateContextLabel = "探伤日期"

// FieldExtractor pulls canonical fields out of a report document using a
// fixed label vocabulary, with whole-text regex fallbacks for fields the
// tables do not yield.
type FieldExtractor struct {
	vocabulary  []string
	fieldLabels []config.FieldLabel
	logger      *slog.Logger
}

// NewFieldExtractor builds an extractor over the given rule set.
func NewFieldExtractor(logger *slog.Logger, rules config.RuleSet) *FieldExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FieldExtractor{
		vocabulary:  rules.LabelVocabulary,
		fieldLabels: rules.FieldLabels,
		logger:      logger,
	}
}

// Extract walks the document tables first, paragraphs as fallback, and
// returns whatever fields it could find. Absent fields are absent keys.
func (e *FieldExtractor) Extract(doc Document) domain.FieldMap {
	fields := domain.FieldMap{}

	var tableTexts []string
	for _, table := range doc.Tables() {
		for _, row := range table {
			for _, cell := range row {
				if t := strings.TrimSpace(cell); t != "" {
					tableTexts = append(tableTexts, t)
				}
			}
			for _, fl := range e.fieldLabels {
				if fields.Has(fl.Field) {
					continue
				}
				if v, ok := e.valueAfterLabel(row, fl.Label); ok {
					fields[fl.Field] = v
				}
			}
		}
	}

	fullText := strings.Join(append(tableTexts, doc.Paragraphs()...), "\n")

	e.fillQualityGrade(fields, fullText)
	e.fillInspectionDate(fields, fullText)
	e.fillAppliedStandards(fields, fullText)
	e.fillRawDateContext(fields, fullText)

	e.logger.Debug("document fields extracted", slog.Int("field_count", len(fields)))
	return fields
}

// valueAfterLabel finds the first cell containing the label substring and
// returns the first non-empty, non-label cell text to its right.
func (e *FieldExtractor) valueAfterLabel(row []string, label string) (string, bool) {
	labelIdx := -1
	for i, cell := range row {
		if strings.Contains(cell, label) {
			labelIdx = i
			break
		}
	}
	if labelIdx < 0 {
		return "", false
	}
	for _, cell := range row[labelIdx+1:] {
		t := strings.TrimSpace(cell)
		if t != "" && !e.isLabel(t) {
			return t, true
		}
	}
	return "", false
}

// isLabel reports whether text reads as a label rather than a value:
// blank, or containing any vocabulary token as a substring.
func (e *FieldExtractor) isLabel(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return true
	}
	for _, token := range e.vocabulary {
		if strings.Contains(t, token) {
			return true
		}
	}
	return false
}

func (e *FieldExtractor) fillQualityGrade(fields domain.FieldMap, fullText string) {
	if m := gradePattern.FindStringSubmatch(fullText); m != nil {
		fields[domain.FieldQualityGrade] = m[1] + "级"
		return
	}
	// Bare keyword fallback when the summary sentence is absent.
	if strings.Contains(fullText, "一级") {
		fields[domain.FieldQualityGrade] = "一级"
	} else if strings.Contains(fullText, "二级") {
		fields[domain.FieldQualityGrade] = "二级"
	}
}

func (e *FieldExtractor) fillInspectionDate(fields domain.FieldMap, fullText string) {
	if !fields.Has(domain.FieldInspectionDate) {
		if m := datePattern.FindStringSubmatch(fullText); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				fields[domain.FieldInspectionDate] = v
			}
		}
	}
	// Noisy "date to date" strings collapse to the first full date.
	if v := fields.Get(domain.FieldInspectionDate); v != "" {
		fields[domain.FieldInspectionDate] = cndate.FirstDateString(v)
	}
}

func (e *FieldExtractor) fillAppliedStandards(fields domain.FieldMap, fullText string) {
	if fields.Has(domain.FieldAppliedStandards) {
		return
	}
	if m := standardsPattern.FindStringSubmatch(fullText); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" {
			fields[domain.FieldAppliedStandards] = v
		}
	}
}

// fillRawDateContext retains the document text after the last inspection
// date label. Date-range parsing uses it later for year inference.
func (e *FieldExtractor) fillRawDateContext(fields domain.FieldMap, fullText string) {
	if i := strings.LastIndex(fullText, dateContextLabel); i >= 0 {
		if v := fullText[i+len(dateContextLabel):]; v != "" {
			fields[domain.FieldRawDateContext] = v
		}
		return
	}
	if v := fields.Get(domain.FieldInspectionDate); v != "" {
		fields[domain.FieldRawDateContext] = v
	}
}
