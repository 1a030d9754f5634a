package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utreport/pkg/contracts/domain"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Len(t, cfg.Report.Rules.MonthlyMeans, 12)
	assert.Len(t, cfg.Report.Rules.ProbeRules[domain.WeldTypeButt], 7)
	assert.Len(t, cfg.Report.Rules.ProbeRules[domain.WeldTypeCornerButt], 7)
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("UTREPORT_LOGGING_LEVEL", "debug")
	t.Setenv("UTREPORT_LOGGING_OUTPUT", "stdout")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "stdout", cfg.Logging.Output)
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	t.Setenv("UTREPORT_LOGGING_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}

func TestReportConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *ReportConfig)
		wantErr string
	}{
		{
			name:   "default passes",
			mutate: func(cfg *ReportConfig) {},
		},
		{
			name: "empty interval list",
			mutate: func(cfg *ReportConfig) {
				cfg.Rules.ProbeRules[domain.WeldTypeButt] = nil
			},
			wantErr: "are empty",
		},
		{
			name: "intervals out of order",
			mutate: func(cfg *ReportConfig) {
				rules := cfg.Rules.ProbeRules[domain.WeldTypeButt]
				rules[2].Min = 1
			},
			wantErr: "not ascending",
		},
		{
			name: "interval without models",
			mutate: func(cfg *ReportConfig) {
				rules := cfg.Rules.ProbeRules[domain.WeldTypeCornerButt]
				rules[0].Models = nil
			},
			wantErr: "has no models",
		},
		{
			name: "basis code bound to catch-all",
			mutate: func(cfg *ReportConfig) {
				cfg.Rules.BasisCodes["GB50205-2020"] = domain.SlotBasisOther
			},
			wantErr: "catch-all slot",
		},
		{
			name: "basis slot without a cell",
			mutate: func(cfg *ReportConfig) {
				delete(cfg.Layout.BasisCells, domain.SlotGB50661)
			},
			wantErr: "no layout cell",
		},
		{
			name: "missing catch-all cell",
			mutate: func(cfg *ReportConfig) {
				delete(cfg.Layout.BasisCells, domain.SlotBasisOther)
			},
			wantErr: "catch-all basis cell",
		},
		{
			name: "copy and data columns must pair",
			mutate: func(cfg *ReportConfig) {
				cfg.Layout.DataColumns = []int{1, 4, 5}
			},
			wantErr: "do not pair",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultReportConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
