package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/marlowekitchens/kitchen-roster/pkg/core/calendar"
	"github.com/marlowekitchens/kitchen-roster/pkg/core/roster"
	"github.com/marlowekitchens/kitchen-roster/pkg/db"
)

// employeeFromRecord converts a storage record into an engine employee,
// rejecting unknown roles and malformed dates.
func employeeFromRecord(rec db.Employee) (roster.Employee, error) {
	role, err := roster.ParseRole(rec.Role)
	if err != nil {
		return roster.Employee{}, fmt.Errorf("employee %s: %w", rec.ID, err)
	}

	vacations := make(map[calendar.Date]bool, len(rec.VacationDates))
	for _, s := range rec.VacationDates {
		d, err := calendar.ParseDate(s)
		if err != nil {
			return roster.Employee{}, fmt.Errorf("employee %s vacation date: %w", rec.ID, err)
		}
		vacations[d] = true
	}

	return roster.Employee{
		ID:                rec.ID,
		Name:              rec.Name,
		Role:              role,
		VacationDates:     vacations,
		VacationDaysTotal: rec.VacationDaysTotal,
	}, nil
}

func employeesFromRecords(records []db.Employee) ([]roster.Employee, error) {
	employees := make([]roster.Employee, 0, len(records))
	for _, rec := range records {
		emp, err := employeeFromRecord(rec)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, nil
}

func assignmentFromRecord(rec db.ShiftAssignment) (roster.Assignment, error) {
	d, err := calendar.ParseDate(rec.Date)
	if err != nil {
		return roster.Assignment{}, fmt.Errorf("assignment %s: %w", rec.ID, err)
	}
	shift, err := roster.ParseShiftType(rec.ShiftType)
	if err != nil {
		return roster.Assignment{}, fmt.Errorf("assignment %s: %w", rec.ID, err)
	}
	return roster.Assignment{
		ID:         rec.ID,
		Date:       d,
		EmployeeID: rec.EmployeeID,
		ShiftType:  shift,
	}, nil
}

func assignmentsFromRecords(records []db.ShiftAssignment) ([]roster.Assignment, error) {
	assignments := make([]roster.Assignment, 0, len(records))
	for _, rec := range records {
		a, err := assignmentFromRecord(rec)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

// assignmentRecords converts engine output into storage records,
// stamping a fresh id on each.
func assignmentRecords(assignments []roster.Assignment) []db.ShiftAssignment {
	records := make([]db.ShiftAssignment, 0, len(assignments))
	for _, a := range assignments {
		records = append(records, db.ShiftAssignment{
			ID:         uuid.New().String(),
			Date:       a.Date.String(),
			EmployeeID: a.EmployeeID,
			ShiftType:  string(a.ShiftType),
		})
	}
	return records
}
