package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/marlowekitchens/kitchen-roster/pkg/core/calendar"
	"github.com/marlowekitchens/kitchen-roster/pkg/core/roster"
	"github.com/marlowekitchens/kitchen-roster/pkg/db"
)

// CheckAssignment answers an interactive "may this employee take this
// shift on this day" query against the persisted roster state, using
// the same constraint predicate as generation. It has no side effects.
func CheckAssignment(ctx context.Context, database db.Store, logger *zap.Logger, employeeID, dateStr, shiftStr string) (roster.Decision, error) {
	date, err := calendar.ParseDate(dateStr)
	if err != nil {
		return roster.Decision{}, err
	}
	shift, err := roster.ParseShiftType(shiftStr)
	if err != nil {
		return roster.Decision{}, err
	}
	if !shift.IsWorked() {
		return roster.Decision{}, fmt.Errorf("can only check morning or afternoon shifts, got %q", shiftStr)
	}

	record, err := database.GetEmployee(ctx, employeeID)
	if err != nil {
		return roster.Decision{}, fmt.Errorf("failed to fetch employee: %w", err)
	}
	employee, err := employeeFromRecord(*record)
	if err != nil {
		return roster.Decision{}, err
	}

	// The window must include the date itself so same-day assignments
	// are visible to the one-shift-per-day rule.
	from := date.AddDays(-roster.HistoryWindowDays)
	historyRecords, err := database.GetAssignmentsBetween(ctx, from.String(), date.String())
	if err != nil {
		return roster.Decision{}, fmt.Errorf("failed to fetch shift history: %w", err)
	}
	history, err := assignmentsFromRecords(historyRecords)
	if err != nil {
		return roster.Decision{}, err
	}

	decision := roster.CheckAssignment(employee, date, shift, roster.NewHistoryIndex(history))

	logger.Info("Checked assignment",
		zap.String("employee_id", employeeID),
		zap.String("date", dateStr),
		zap.String("shift", shiftStr),
		zap.Bool("legal", decision.OK),
		zap.String("reason", decision.Reason))

	return decision, nil
}
