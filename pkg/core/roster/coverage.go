package roster

import (
	"time"

	"github.com/marlowekitchens/kitchen-roster/pkg/core/calendar"
)

// Coverage is the required headcount per shift type for one date.
// It is derived on demand and never persisted.
type Coverage struct {
	Morning   int
	Afternoon int
}

// Total returns the combined headcount requirement.
func (c Coverage) Total() int { return c.Morning + c.Afternoon }

// CoveragePolicy maps a date to its required coverage. Policies must be
// pure: no side effects, no failure modes.
type CoveragePolicy interface {
	RequiredCoverage(d calendar.Date) Coverage
}

// WeekendBoostPolicy is the house rule: Friday through Sunday need two
// morning cooks and one afternoon cook, every other day one of each.
type WeekendBoostPolicy struct{}

func (WeekendBoostPolicy) RequiredCoverage(d calendar.Date) Coverage {
	switch d.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return Coverage{Morning: 2, Afternoon: 1}
	default:
		return Coverage{Morning: 1, Afternoon: 1}
	}
}

// OverridePolicy wraps a base policy with per-date exceptions, e.g.
// closure days or event days configured by the operator. Dates without
// an override fall through to the base policy.
type OverridePolicy struct {
	base      CoveragePolicy
	overrides map[calendar.Date]Coverage
}

// NewOverridePolicy builds an OverridePolicy. A nil base defaults to
// WeekendBoostPolicy.
func NewOverridePolicy(base CoveragePolicy, overrides map[calendar.Date]Coverage) OverridePolicy {
	if base == nil {
		base = WeekendBoostPolicy{}
	}
	return OverridePolicy{base: base, overrides: overrides}
}

func (p OverridePolicy) RequiredCoverage(d calendar.Date) Coverage {
	if c, ok := p.overrides[d]; ok {
		return c
	}
	return p.base.RequiredCoverage(d)
}
