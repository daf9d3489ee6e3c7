package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/marlowekitchens/kitchen-roster/pkg/db"
)

// GetAssignmentsBetween retrieves shift assignments with
// from <= shift_date <= to, both "2006-01-02" strings.
func (d *DB) GetAssignmentsBetween(ctx context.Context, from, to string) ([]db.ShiftAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, shift_date, employee_id, shift_type
		FROM shift_assignment
		WHERE shift_date BETWEEN $1 AND $2
		ORDER BY shift_date, employee_id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.ShiftAssignment
	for rows.Next() {
		var a db.ShiftAssignment
		var date time.Time
		if err := rows.Scan(&a.ID, &date, &a.EmployeeID, &a.ShiftType); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Date = date.Format("2006-01-02")
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// InsertAssignments inserts shift assignment records in one transaction
func (d *DB) InsertAssignments(ctx context.Context, assignments []db.ShiftAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO shift_assignment (id, shift_date, employee_id, shift_type)
			VALUES ($1, $2, $3, $4)
		`, a.ID, a.Date, a.EmployeeID, a.ShiftType)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
