package roster

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/marlowekitchens/kitchen-roster/pkg/core/calendar"
)

const (
	// fairnessWindowDays is the trailing span used to balance recent load
	// when ordering candidates.
	fairnessWindowDays = 7

	// maxLogEntries caps the diagnostic log so pathological inputs cannot
	// grow it without bound.
	maxLogEntries = 1000
)

// Params are the inputs for one generation run. The engine reads them
// and never mutates them.
type Params struct {
	Year  int
	Month time.Month

	// Employees is the full roster of candidates.
	Employees []Employee

	// History holds persisted assignments from before the target month.
	// They seed the index so constraints can look backward across the
	// month boundary; they are never returned in the output.
	History []Assignment

	// Policy decides required coverage per date. Nil defaults to
	// WeekendBoostPolicy.
	Policy CoveragePolicy

	// Seed drives the tie-break shuffle applied before the fairness
	// sort. The same inputs and seed always produce the same roster.
	Seed int64
}

// Result is the output of a generation run: the new assignments for the
// target month plus a bounded diagnostic log. Assignment IDs are left
// empty; the caller stamps them before persisting.
type Result struct {
	Assignments []Assignment
	Log         []string
}

func (r *Result) appendLog(line string) {
	if len(r.Log) >= maxLogEntries {
		return
	}
	if len(r.Log) == maxLogEntries-1 {
		r.Log = append(r.Log, "[WARNING] diagnostic log reached its cap, further entries dropped")
		return
	}
	r.Log = append(r.Log, line)
}

// Generate produces a month of shift assignments with a single greedy
// chronological pass. Days that cannot be fully staffed are logged and
// skipped over, never revisited; the run does not fail on
// understaffing. Malformed input fails fast before any assignment is
// produced.
func Generate(p Params) (*Result, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}

	policy := p.Policy
	if policy == nil {
		policy = WeekendBoostPolicy{}
	}

	ix := NewHistoryIndex(p.History)
	rng := rand.New(rand.NewSource(p.Seed))
	result := &Result{}

	for _, day := range calendar.MonthDates(p.Year, p.Month) {
		required := policy.RequiredCoverage(day)

		// Tie-break shuffle first, then a stable sort by trailing load,
		// so employees with equal recent load rotate between runs with
		// different seeds while everything stays reproducible for a
		// fixed one.
		pool := make([]Employee, len(p.Employees))
		copy(pool, p.Employees)
		rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
		sort.SliceStable(pool, func(i, j int) bool {
			return recentLoad(ix, pool[i].ID, day) < recentLoad(ix, pool[j].ID, day)
		})

		assignedToday := make(map[string]bool)
		filled := fillShift(result, ix, pool, assignedToday, day, ShiftMorning, required.Morning)
		filled += fillShift(result, ix, pool, assignedToday, day, ShiftAfternoon, required.Afternoon)

		if filled < required.Total() {
			result.appendLog(fmt.Sprintf("[WARNING] understaffed on %s: filled %d of %d required shifts",
				day, filled, required.Total()))
		}
	}

	return result, nil
}

// fillShift walks the fairness-ordered pool re-ranked by role affinity
// and commits legal candidates until the target is met or candidates
// run out. Committed assignments go into the index immediately so they
// constrain the rest of the run.
func fillShift(result *Result, ix *HistoryIndex, pool []Employee, assignedToday map[string]bool, day calendar.Date, shift ShiftType, target int) int {
	ranked := make([]Employee, len(pool))
	copy(ranked, pool)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ScoreRole(ranked[i].Role, shift) > ScoreRole(ranked[j].Role, shift)
	})

	filled := 0
	for _, emp := range ranked {
		if filled >= target {
			break
		}
		if assignedToday[emp.ID] {
			continue
		}

		decision := CheckAssignment(emp, day, shift, ix)
		if !decision.OK {
			result.appendLog(fmt.Sprintf("[FAIL] %s rejected for %s shift on %s: %s",
				emp.ID, shift, day, decision.Reason))
			continue
		}

		assignment := Assignment{
			Date:       day,
			EmployeeID: emp.ID,
			ShiftType:  shift,
		}
		ix.Add(assignment)
		result.Assignments = append(result.Assignments, assignment)
		assignedToday[emp.ID] = true
		filled++
	}
	return filled
}

// recentLoad counts the employee's worked shifts in the trailing window
// strictly before day.
func recentLoad(ix *HistoryIndex, employeeID string, day calendar.Date) int {
	load := 0
	for d := day.AddDays(-fairnessWindowDays); d.Before(day); d = d.AddDays(1) {
		if workedOn(ix, employeeID, d) {
			load++
		}
	}
	return load
}

func validateParams(p Params) error {
	if p.Month < time.January || p.Month > time.December {
		return fmt.Errorf("invalid month %d", p.Month)
	}
	if p.Year <= 0 {
		return fmt.Errorf("invalid year %d", p.Year)
	}

	seen := make(map[string]bool, len(p.Employees))
	for _, emp := range p.Employees {
		if err := emp.Validate(); err != nil {
			return fmt.Errorf("invalid employee: %w", err)
		}
		if seen[emp.ID] {
			return fmt.Errorf("duplicate employee id %s", emp.ID)
		}
		seen[emp.ID] = true
	}

	for _, a := range p.History {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("invalid history assignment: %w", err)
		}
	}

	return nil
}
