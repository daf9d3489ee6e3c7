package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/marlowekitchens/kitchen-roster/pkg/db"
)

// ListEmployees retrieves all employee records with their vacation dates
func (d *DB) ListEmployees(ctx context.Context) ([]db.Employee, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, role, vacation_days_total
		FROM employee
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []db.Employee
	byID := make(map[string]int)
	for rows.Next() {
		var e db.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Role, &e.VacationDaysTotal); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		byID[e.ID] = len(employees)
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	vacations, err := d.vacationDates(ctx)
	if err != nil {
		return nil, err
	}
	for employeeID, dates := range vacations {
		if i, ok := byID[employeeID]; ok {
			employees[i].VacationDates = dates
		}
	}

	return employees, nil
}

// GetEmployee retrieves a single employee record by id
func (d *DB) GetEmployee(ctx context.Context, id string) (*db.Employee, error) {
	var e db.Employee
	err := d.pool.QueryRow(ctx, `
		SELECT id, name, role, vacation_days_total
		FROM employee
		WHERE id = $1
	`, id).Scan(&e.ID, &e.Name, &e.Role, &e.VacationDaysTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %s: %w", id, err)
	}

	rows, err := d.pool.Query(ctx, `
		SELECT vacation_date FROM employee_vacation WHERE employee_id = $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query vacation dates for %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan vacation date: %w", err)
		}
		e.VacationDates = append(e.VacationDates, date.Format("2006-01-02"))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vacation dates: %w", err)
	}

	return &e, nil
}

func (d *DB) vacationDates(ctx context.Context) (map[string][]string, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT employee_id, vacation_date FROM employee_vacation
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query vacation dates: %w", err)
	}
	defer rows.Close()

	vacations := make(map[string][]string)
	for rows.Next() {
		var employeeID string
		var date time.Time
		if err := rows.Scan(&employeeID, &date); err != nil {
			return nil, fmt.Errorf("failed to scan vacation date: %w", err)
		}
		vacations[employeeID] = append(vacations[employeeID], date.Format("2006-01-02"))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vacation dates: %w", err)
	}

	return vacations, nil
}
