package db

import "context"

// EmployeeStore defines the interface for employee roster lookups
type EmployeeStore interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	GetEmployee(ctx context.Context, id string) (*Employee, error)
}

// AssignmentStore defines the interface for shift assignment persistence
type AssignmentStore interface {
	// GetAssignmentsBetween returns assignments with from <= date <= to,
	// both in "2006-01-02" form.
	GetAssignmentsBetween(ctx context.Context, from, to string) ([]ShiftAssignment, error)
	InsertAssignments(ctx context.Context, assignments []ShiftAssignment) error
}

// Store combines all storage interfaces used by the services layer
type Store interface {
	EmployeeStore
	AssignmentStore
}
