package roster

import (
	"fmt"

	"github.com/marlowekitchens/kitchen-roster/pkg/core/calendar"
)

// Labor rule parameters.
const (
	// maxConsecutiveWorkdays is the longest permitted unbroken run of
	// worked days.
	maxConsecutiveWorkdays = 6

	// restWindowDays / minRestDaysPerWindow: in any rolling window of 28
	// calendar days an employee must have at least 8 days off.
	restWindowDays       = 28
	minRestDaysPerWindow = 8

	maxWorkedPerWindow = restWindowDays - minRestDaysPerWindow
)

// HistoryWindowDays is how much persisted history, in days before the
// checked date, the engine needs to evaluate every backward-looking
// rule. Callers seeding a HistoryIndex from storage should load at
// least this much.
const HistoryWindowDays = restWindowDays

// Decision is the outcome of a legality check. Reason names the first
// violated rule; it is empty when the assignment is legal.
type Decision struct {
	OK     bool
	Reason string
}

func reject(format string, args ...any) Decision {
	return Decision{OK: false, Reason: fmt.Sprintf(format, args...)}
}

// CheckAssignment decides whether assigning the employee the given
// shift on the given date is legal against the current index state.
// It is read-only with respect to the index and is used both by the
// generation loop and for ad-hoc "can I put this person here" queries
// during manual roster edits.
//
// Only the first violated rule is reported.
func CheckAssignment(emp Employee, d calendar.Date, shift ShiftType, ix *HistoryIndex) Decision {
	// Vacation block.
	if emp.OnVacation(d) {
		return reject("on vacation on %s", d)
	}

	// Role exclusivity: morning-only cooks never work afternoons.
	if emp.Role == RoleMorningCook && shift == ShiftAfternoon {
		return reject("morning-only cook cannot work the afternoon shift")
	}

	// One shift per day. Vacation and sick leave records occupy the day too.
	if assignedOn(ix, emp.ID, d) {
		return reject("already has an assignment on %s", d)
	}

	// No afternoon-to-morning turnaround.
	if shift == ShiftMorning && workedShiftOn(ix, emp.ID, d.AddDays(-1), ShiftAfternoon) {
		return reject("worked the afternoon shift on %s, too short a turnaround for a morning shift", d.AddDays(-1))
	}

	// Max consecutive working days. Walk backward from the day before;
	// the streak ends at the first day without a worked shift.
	streak := 0
	for day := d.AddDays(-1); workedOn(ix, emp.ID, day); day = day.AddDays(-1) {
		streak++
	}
	if streak >= maxConsecutiveWorkdays {
		return reject("already worked %d consecutive days before %s", streak, d)
	}

	// Rolling minimum rest: counting the new shift, no more than 20
	// worked days in the 28-day window ending on d.
	worked := 0
	for day := d.AddDays(-(restWindowDays - 1)); day.Before(d); day = day.AddDays(1) {
		if workedOn(ix, emp.ID, day) {
			worked++
		}
	}
	if worked+1 > maxWorkedPerWindow {
		return reject("would exceed %d worked days in the %d days ending %s", maxWorkedPerWindow, restWindowDays, d)
	}

	// No isolated single day off: working d after resting only d-1
	// would leave a lone day off between worked days. Rest periods must
	// span at least two consecutive days.
	if !workedOn(ix, emp.ID, d.AddDays(-1)) && workedOn(ix, emp.ID, d.AddDays(-2)) {
		return reject("would leave a single day off on %s between worked days", d.AddDays(-1))
	}

	return Decision{OK: true}
}

// assignedOn reports whether the employee has any assignment on d,
// including vacation and sick leave records.
func assignedOn(ix *HistoryIndex, employeeID string, d calendar.Date) bool {
	for _, a := range ix.On(d) {
		if a.EmployeeID == employeeID {
			return true
		}
	}
	return false
}

// workedOn reports whether the employee has a worked (morning or
// afternoon) shift on d.
func workedOn(ix *HistoryIndex, employeeID string, d calendar.Date) bool {
	for _, a := range ix.On(d) {
		if a.EmployeeID == employeeID && a.ShiftType.IsWorked() {
			return true
		}
	}
	return false
}

// workedShiftOn reports whether the employee worked the specific shift
// type on d.
func workedShiftOn(ix *HistoryIndex, employeeID string, d calendar.Date, shift ShiftType) bool {
	for _, a := range ix.On(d) {
		if a.EmployeeID == employeeID && a.ShiftType == shift {
			return true
		}
	}
	return false
}
