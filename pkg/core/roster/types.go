// Package roster implements the kitchen roster generation engine: a
// greedy day-by-day assignment loop over a target month, the labor
// constraint predicate it consults, and the run-scoped history index
// both share. The engine is pure and single-threaded; fetching inputs
// and persisting output belong to the caller.
package roster

import (
	"fmt"

	"github.com/marlowekitchens/kitchen-roster/pkg/core/calendar"
)

// Role is an employee's kitchen role.
type Role string

const (
	// RoleMorningCook works mornings only and is never assigned afternoons.
	RoleMorningCook Role = "morning_cook"
	// RoleRotatingCook rotates between morning and afternoon shifts.
	RoleRotatingCook Role = "rotating_cook"
	RoleHeadChef     Role = "head_chef"
	RoleOther        Role = "other"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleMorningCook, RoleRotatingCook, RoleHeadChef, RoleOther:
		return true
	}
	return false
}

// ParseRole converts a stored role string into a Role, rejecting
// anything outside the closed set.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// ShiftType is the category of a single day's assignment for one employee.
type ShiftType string

const (
	ShiftMorning   ShiftType = "morning"
	ShiftAfternoon ShiftType = "afternoon"
	ShiftVacation  ShiftType = "vacation"
	ShiftSickLeave ShiftType = "sick_leave"
)

func (s ShiftType) IsValid() bool {
	switch s {
	case ShiftMorning, ShiftAfternoon, ShiftVacation, ShiftSickLeave:
		return true
	}
	return false
}

// IsWorked reports whether the shift type counts as a worked day for
// streak, rest-window and turnaround purposes. Vacation and sick leave
// occupy the day but are not work.
func (s ShiftType) IsWorked() bool {
	return s == ShiftMorning || s == ShiftAfternoon
}

// ParseShiftType converts a stored shift type string into a ShiftType.
func ParseShiftType(s string) (ShiftType, error) {
	st := ShiftType(s)
	if !st.IsValid() {
		return "", fmt.Errorf("unknown shift type %q", s)
	}
	return st, nil
}

// Employee is a read-only scheduling input. The engine never mutates it.
type Employee struct {
	ID   string
	Name string
	Role Role

	// VacationDates are the days this employee cannot be scheduled.
	VacationDates map[calendar.Date]bool

	// VacationDaysTotal is the annual entitlement. Carried for display
	// by callers; it is not a scheduling constraint.
	VacationDaysTotal int
}

// OnVacation reports whether the employee has booked vacation on d.
func (e Employee) OnVacation(d calendar.Date) bool {
	return e.VacationDates[d]
}

// Validate rejects malformed employee records before generation starts,
// since silent misbehavior here would corrupt the whole month's output.
func (e Employee) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("employee has empty id")
	}
	if !e.Role.IsValid() {
		return fmt.Errorf("employee %s has invalid role %q", e.ID, e.Role)
	}
	return nil
}

// Assignment is one employee's shift on one calendar date. At most one
// assignment may exist per (employee, date) pair; the constraint
// validator enforces this, not storage. Assignments are never mutated
// once created within a run.
type Assignment struct {
	ID         string
	Date       calendar.Date
	EmployeeID string
	ShiftType  ShiftType
}

// Validate rejects malformed history records.
func (a Assignment) Validate() error {
	if a.EmployeeID == "" {
		return fmt.Errorf("assignment has empty employee id")
	}
	if a.Date.IsZero() {
		return fmt.Errorf("assignment for employee %s has zero date", a.EmployeeID)
	}
	if !a.ShiftType.IsValid() {
		return fmt.Errorf("assignment for employee %s has invalid shift type %q", a.EmployeeID, a.ShiftType)
	}
	return nil
}
