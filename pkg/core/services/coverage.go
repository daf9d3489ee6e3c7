package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/marlowekitchens/kitchen-roster/internal/config"
	"github.com/marlowekitchens/kitchen-roster/pkg/core/calendar"
	"github.com/marlowekitchens/kitchen-roster/pkg/core/roster"
)

// PolicyForMonth expands the configured coverage overrides into the
// target month and wraps them around the default weekend-boost rule.
func PolicyForMonth(cfg *config.Config, year int, month time.Month) (roster.CoveragePolicy, error) {
	overrides := make(map[calendar.Date]roster.Coverage)

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

	for i, override := range cfg.CoverageOverrides {
		set, err := rrule.StrToRRuleSet(override.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in coverageOverrides[%d]: %w", i, err)
		}
		for _, occurrence := range set.Between(monthStart, monthEnd, true) {
			overrides[calendar.FromTime(occurrence)] = roster.Coverage{
				Morning:   override.Morning,
				Afternoon: override.Afternoon,
			}
		}
	}

	return roster.NewOverridePolicy(nil, overrides), nil
}
