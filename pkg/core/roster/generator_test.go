package roster

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlowekitchens/kitchen-roster/pkg/core/calendar"
)

// fixedPolicy requires the same coverage every day.
type fixedPolicy struct {
	c Coverage
}

func (p fixedPolicy) RequiredCoverage(calendar.Date) Coverage { return p.c }

func fullKitchen() []Employee {
	employees := []Employee{
		{ID: "m1", Role: RoleMorningCook},
		{ID: "m2", Role: RoleMorningCook},
		{ID: "m3", Role: RoleMorningCook},
		{ID: "m4", Role: RoleMorningCook},
		{ID: "r1", Role: RoleRotatingCook},
		{ID: "r2", Role: RoleRotatingCook},
		{ID: "r3", Role: RoleRotatingCook},
		{ID: "r4", Role: RoleRotatingCook},
		{ID: "r5", Role: RoleRotatingCook},
		{ID: "c1", Role: RoleHeadChef},
		{ID: "c2", Role: RoleHeadChef},
		{ID: "o1", Role: RoleOther},
	}
	for i := range employees {
		employees[i].VacationDates = map[calendar.Date]bool{}
	}
	return employees
}

func understaffedLines(log []string) []string {
	var lines []string
	for _, line := range log {
		if strings.HasPrefix(line, "[WARNING] understaffed") {
			lines = append(lines, line)
		}
	}
	return lines
}

// verifyRosterProperties checks the output against every labor rule,
// counting history so streaks and windows span the month boundary.
func verifyRosterProperties(t *testing.T, employees []Employee, history []Assignment, generated []Assignment) {
	t.Helper()

	byEmployee := make(map[string]Employee)
	for _, emp := range employees {
		byEmployee[emp.ID] = emp
	}

	worked := make(map[string]map[calendar.Date]ShiftType)
	record := func(a Assignment) {
		if !a.ShiftType.IsWorked() {
			return
		}
		if worked[a.EmployeeID] == nil {
			worked[a.EmployeeID] = make(map[calendar.Date]ShiftType)
		}
		_, dup := worked[a.EmployeeID][a.Date]
		assert.False(t, dup, "double booking for %s on %s", a.EmployeeID, a.Date)
		worked[a.EmployeeID][a.Date] = a.ShiftType
	}
	for _, a := range history {
		record(a)
	}

	for _, a := range generated {
		emp, ok := byEmployee[a.EmployeeID]
		require.True(t, ok, "assignment for unknown employee %s", a.EmployeeID)

		assert.False(t, emp.OnVacation(a.Date), "%s assigned on vacation day %s", a.EmployeeID, a.Date)
		if emp.Role == RoleMorningCook {
			assert.NotEqual(t, ShiftAfternoon, a.ShiftType, "morning-only cook %s got an afternoon shift", a.EmployeeID)
		}
		record(a)
	}

	for employeeID, days := range worked {
		for d, shift := range days {
			if shift == ShiftMorning {
				assert.NotEqual(t, ShiftAfternoon, days[d.AddDays(-1)],
					"%s has a morning on %s right after an afternoon", employeeID, d)
			}

			streak := 1
			for back := d.AddDays(-1); ; back = back.AddDays(-1) {
				if _, ok := days[back]; !ok {
					break
				}
				streak++
			}
			assert.LessOrEqual(t, streak, maxConsecutiveWorkdays,
				"%s works %d consecutive days ending %s", employeeID, streak, d)

			inWindow := 0
			for back := d.AddDays(-(restWindowDays - 1)); !back.After(d); back = back.AddDays(1) {
				if _, ok := days[back]; ok {
					inWindow++
				}
			}
			assert.LessOrEqual(t, inWindow, maxWorkedPerWindow,
				"%s works %d days in the 28-day window ending %s", employeeID, inWindow, d)
		}
	}
}

func TestGenerate_FullyStaffedMonth(t *testing.T) {
	employees := fullKitchen()
	result, err := Generate(Params{
		Year:      2026,
		Month:     time.September,
		Employees: employees,
		Seed:      7,
	})
	require.NoError(t, err)

	assert.Empty(t, understaffedLines(result.Log), "a full kitchen should cover every day")

	// September 2026: 12 Fri/Sat/Sun days at 3 heads, 18 others at 2.
	assert.Len(t, result.Assignments, 12*3+18*2)

	verifyRosterProperties(t, employees, nil, result.Assignments)
}

func TestGenerate_Deterministic(t *testing.T) {
	run := func() *Result {
		result, err := Generate(Params{
			Year:      2026,
			Month:     time.September,
			Employees: fullKitchen(),
			Seed:      99,
		})
		require.NoError(t, err)
		return result
	}

	first := run()
	second := run()
	require.Equal(t, first.Assignments, second.Assignments)
	require.Equal(t, first.Log, second.Log)
}

func TestGenerate_AllVacationMonth(t *testing.T) {
	vacations := make(map[calendar.Date]bool)
	for _, d := range calendar.MonthDates(2026, time.September) {
		vacations[d] = true
	}
	employees := []Employee{{ID: "solo", Role: RoleRotatingCook, VacationDates: vacations}}

	result, err := Generate(Params{
		Year:      2026,
		Month:     time.September,
		Employees: employees,
		Seed:      1,
	})
	require.NoError(t, err)

	assert.Empty(t, result.Assignments)
	assert.Len(t, understaffedLines(result.Log), 30, "every day should log understaffing")
}

func TestGenerate_TurnaroundAcrossMonthBoundary(t *testing.T) {
	history := []Assignment{{
		ID:         "h1",
		Date:       calendar.NewDate(2026, time.August, 31),
		EmployeeID: "solo",
		ShiftType:  ShiftAfternoon,
	}}
	employees := []Employee{{ID: "solo", Role: RoleRotatingCook, VacationDates: map[calendar.Date]bool{}}}

	result, err := Generate(Params{
		Year:      2026,
		Month:     time.September,
		Employees: employees,
		History:   history,
		Seed:      1,
	})
	require.NoError(t, err)

	sep1 := calendar.NewDate(2026, time.September, 1)
	for _, a := range result.Assignments {
		assert.Equal(t, time.September, a.Date.Month(), "history months must not leak into the output")
		if a.Date.Equal(sep1) {
			assert.NotEqual(t, ShiftMorning, a.ShiftType, "morning after a history afternoon is illegal")
		}
	}

	// The only candidate is skipped for the morning slot, so day one is
	// understaffed but the afternoon still gets filled.
	require.NotEmpty(t, result.Assignments)
	assert.Equal(t, sep1, result.Assignments[0].Date)
	assert.Equal(t, ShiftAfternoon, result.Assignments[0].ShiftType)

	understaffed := understaffedLines(result.Log)
	require.NotEmpty(t, understaffed)
	assert.Contains(t, understaffed[0], "2026-09-01")

	verifyRosterProperties(t, employees, history, result.Assignments)
}

func TestGenerate_StreakBlocksStartOfMonth(t *testing.T) {
	// Six consecutive worked days at the end of August. Sep 1 would be a
	// seventh; Sep 2 would leave Sep 1 as an isolated day off. The first
	// legal day is Sep 3.
	var history []Assignment
	for day := 26; day <= 31; day++ {
		history = append(history, Assignment{
			Date:       calendar.NewDate(2026, time.August, day),
			EmployeeID: "solo",
			ShiftType:  ShiftMorning,
		})
	}
	employees := []Employee{{ID: "solo", Role: RoleRotatingCook, VacationDates: map[calendar.Date]bool{}}}

	result, err := Generate(Params{
		Year:      2026,
		Month:     time.September,
		Employees: employees,
		History:   history,
		Seed:      1,
	})
	require.NoError(t, err)

	require.NotEmpty(t, result.Assignments)
	assert.Equal(t, calendar.NewDate(2026, time.September, 3), result.Assignments[0].Date)

	verifyRosterProperties(t, employees, history, result.Assignments)
}

func TestGenerate_FairnessPrefersLighterLoad(t *testing.T) {
	// Both cooks are legal candidates; the one without recent shifts
	// must be picked first.
	var history []Assignment
	for day := 29; day <= 31; day++ {
		history = append(history, Assignment{
			Date:       calendar.NewDate(2026, time.August, day),
			EmployeeID: "busy",
			ShiftType:  ShiftMorning,
		})
	}
	employees := []Employee{
		{ID: "busy", Role: RoleRotatingCook, VacationDates: map[calendar.Date]bool{}},
		{ID: "idle", Role: RoleRotatingCook, VacationDates: map[calendar.Date]bool{}},
	}

	result, err := Generate(Params{
		Year:      2026,
		Month:     time.September,
		Employees: employees,
		History:   history,
		Policy:    fixedPolicy{Coverage{Morning: 1}},
		Seed:      5,
	})
	require.NoError(t, err)

	require.NotEmpty(t, result.Assignments)
	first := result.Assignments[0]
	assert.Equal(t, calendar.NewDate(2026, time.September, 1), first.Date)
	assert.Equal(t, "idle", first.EmployeeID)
}

func TestGenerate_LogCapped(t *testing.T) {
	// Forty employees on vacation all month reject 2400 times; the
	// diagnostic log must stay at its cap.
	vacations := make(map[calendar.Date]bool)
	for _, d := range calendar.MonthDates(2026, time.September) {
		vacations[d] = true
	}
	var employees []Employee
	for i := 0; i < 40; i++ {
		employees = append(employees, Employee{
			ID:            "emp" + string(rune('a'+i%26)) + string(rune('a'+i/26)),
			Role:          RoleRotatingCook,
			VacationDates: vacations,
		})
	}

	result, err := Generate(Params{
		Year:      2026,
		Month:     time.September,
		Employees: employees,
		Seed:      1,
	})
	require.NoError(t, err)

	require.Len(t, result.Log, maxLogEntries)
	assert.Contains(t, result.Log[len(result.Log)-1], "cap")
	assert.Empty(t, result.Assignments)
}

func TestGenerate_RejectsMalformedInput(t *testing.T) {
	valid := Employee{ID: "ok", Role: RoleOther, VacationDates: map[calendar.Date]bool{}}

	_, err := Generate(Params{Year: 2026, Month: 0, Employees: []Employee{valid}})
	assert.ErrorContains(t, err, "invalid month")

	_, err = Generate(Params{Year: -1, Month: time.May, Employees: []Employee{valid}})
	assert.ErrorContains(t, err, "invalid year")

	_, err = Generate(Params{Year: 2026, Month: time.May, Employees: []Employee{{ID: "", Role: RoleOther}}})
	assert.ErrorContains(t, err, "empty id")

	_, err = Generate(Params{Year: 2026, Month: time.May, Employees: []Employee{{ID: "x", Role: Role("waiter")}}})
	assert.ErrorContains(t, err, "invalid role")

	_, err = Generate(Params{Year: 2026, Month: time.May, Employees: []Employee{valid, valid}})
	assert.ErrorContains(t, err, "duplicate employee id")

	_, err = Generate(Params{
		Year: 2026, Month: time.May,
		Employees: []Employee{valid},
		History:   []Assignment{{EmployeeID: "x", Date: calendar.NewDate(2026, time.April, 1), ShiftType: ShiftType("night")}},
	})
	assert.ErrorContains(t, err, "invalid shift type")
}

func TestGenerate_EngineLeavesIDsEmpty(t *testing.T) {
	result, err := Generate(Params{
		Year:      2026,
		Month:     time.September,
		Employees: fullKitchen(),
		Seed:      3,
	})
	require.NoError(t, err)
	for _, a := range result.Assignments {
		assert.Empty(t, a.ID, "the caller stamps ids before persisting")
	}
}
