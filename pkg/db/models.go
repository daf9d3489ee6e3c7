package db

// Employee is the storage-boundary employee record. Dates cross the
// boundary as "2006-01-02" strings; the services layer converts them
// into engine types.
type Employee struct {
	ID                string
	Name              string
	Role              string
	VacationDates     []string
	VacationDaysTotal int
}

// ShiftAssignment is the storage-boundary record for one employee's
// shift on one date.
type ShiftAssignment struct {
	ID         string
	Date       string
	EmployeeID string
	ShiftType  string
}
