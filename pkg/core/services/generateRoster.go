package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/marlowekitchens/kitchen-roster/pkg/core/calendar"
	"github.com/marlowekitchens/kitchen-roster/pkg/core/roster"
	"github.com/marlowekitchens/kitchen-roster/pkg/db"
)

// GenerateRosterResult represents the outcome of a roster generation run
type GenerateRosterResult struct {
	Assignments []db.ShiftAssignment
	Log         []string
	Persisted   bool
}

// Understaffed counts the days the engine could not fully staff.
func (r *GenerateRosterResult) Understaffed() int {
	count := 0
	for _, line := range r.Log {
		if strings.HasPrefix(line, "[WARNING] understaffed") {
			count++
		}
	}
	return count
}

// GenerateRoster loads the employee roster and trailing shift history,
// runs the generation engine for the target month, and persists the new
// assignments unless dryRun is set. The engine itself never touches
// storage; everything it needs is fetched up front.
func GenerateRoster(ctx context.Context, database db.Store, logger *zap.Logger, policy roster.CoveragePolicy, year int, month time.Month, seed int64, dryRun bool) (*GenerateRosterResult, error) {
	logger.Info("Generating roster",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Int64("seed", seed),
		zap.Bool("dry_run", dryRun))

	employeeRecords, err := database.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	employees, err := employeesFromRecords(employeeRecords)
	if err != nil {
		return nil, err
	}
	logger.Debug("Employees loaded", zap.Int("count", len(employees)))

	monthStart := calendar.NewDate(year, month, 1)
	historyFrom := monthStart.AddDays(-roster.HistoryWindowDays)
	historyTo := monthStart.AddDays(-1)

	historyRecords, err := database.GetAssignmentsBetween(ctx, historyFrom.String(), historyTo.String())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift history: %w", err)
	}
	history, err := assignmentsFromRecords(historyRecords)
	if err != nil {
		return nil, err
	}
	logger.Debug("History loaded",
		zap.String("from", historyFrom.String()),
		zap.String("to", historyTo.String()),
		zap.Int("count", len(history)))

	result, err := roster.Generate(roster.Params{
		Year:      year,
		Month:     month,
		Employees: employees,
		History:   history,
		Policy:    policy,
		Seed:      seed,
	})
	if err != nil {
		return nil, fmt.Errorf("roster generation failed: %w", err)
	}

	out := &GenerateRosterResult{
		Assignments: assignmentRecords(result.Assignments),
		Log:         result.Log,
	}

	if understaffed := out.Understaffed(); understaffed > 0 {
		logger.Warn("Roster has understaffed days", zap.Int("days", understaffed))
	}

	if dryRun {
		logger.Info("Dry run, skipping persistence", zap.Int("assignments", len(out.Assignments)))
		return out, nil
	}

	if err := database.InsertAssignments(ctx, out.Assignments); err != nil {
		return nil, fmt.Errorf("failed to persist assignments: %w", err)
	}
	out.Persisted = true

	logger.Info("Roster generated and persisted",
		zap.Int("assignments", len(out.Assignments)),
		zap.Int("log_lines", len(out.Log)))

	return out, nil
}
