package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/adboard/adboard-go/internal/models"
)

// FieldMap maps a canonical field name to the key the export actually uses.
// Spelling drifts between export revisions (adset_name vs ad_set_name,
// bookings vs attributed_bookings); this keeps the drift in one place.
type FieldMap map[string]string

// Key returns the source key for a canonical field, defaulting to the
// canonical name itself.
func (m FieldMap) Key(canonical string) string {
	if m == nil {
		return canonical
	}
	if k, ok := m[canonical]; ok && k != "" {
		return k
	}
	return canonical
}

// Settings are the user-tunable analytics knobs, loaded from YAML and
// editable at runtime through the settings endpoints.
type Settings struct {
	Thresholds         models.KpiThresholds     `yaml:"thresholds"`
	Rules              models.OptimizationRules `yaml:"rules"`
	SuccessMinCriteria int                      `yaml:"success_min_criteria"`

	SpendFields       FieldMap `yaml:"spend_fields"`
	AttributionFields FieldMap `yaml:"attribution_fields"`
	FunnelFields      FieldMap `yaml:"funnel_fields"`
}

// DefaultSettings mirrors the values the dashboard shipped with.
func DefaultSettings() Settings {
	return Settings{
		Thresholds: models.KpiThresholds{
			CTR:                   0.30,
			FunnelStartRate:       5.0,
			CPA:                   120.0,
			Clicks:                50,
			ROAS:                  1.0,
			CPC:                   10.0,
			CPM:                   60.0,
			BookingConversionRate: 2.0,
		},
		Rules: models.OptimizationRules{
			PauseROASBelow:      0.5,
			PauseROASSpendFloor: 200,
			PauseCPAAbove:       250,
			PauseCPASpendFloor:  100,
			PauseCTRBelow:       0.15,
			PauseCTRSpendFloor:  150,
			PauseNoBookingSpend: 300,
			PauseCPCAbove:       15,
			PauseCPCSpendFloor:  100,

			ScaleROASAbove:        2.0,
			ScaleSpendFloor:       100,
			ScaleRequiresSuccess:  false,
			ScaleCTRAbove:         1.5,
			ScaleCPABelow:         60,
			ScaleBookingConvAbove: 5.0,

			PriorityHighSpend:   500,
			PriorityMediumSpend: 150,
		},
		SuccessMinCriteria: 6,
	}
}

// LoadSettings reads the YAML settings file over the defaults. A missing
// file is not an error: the defaults stand. A file that exists but does not
// parse is a configuration error and is reported.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parse settings: %w", err)
	}
	if s.SuccessMinCriteria <= 0 || s.SuccessMinCriteria > 8 {
		s.SuccessMinCriteria = DefaultSettings().SuccessMinCriteria
	}
	return s, nil
}
