package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marlowekitchens/kitchen-roster/pkg/db"
)

func TestCheckAssignment_LegalQuery(t *testing.T) {
	store := &fakeStore{
		employees: []db.Employee{{ID: "r1", Name: "Emil", Role: "rotating_cook"}},
	}

	decision, err := CheckAssignment(context.Background(), store, zap.NewNop(), "r1", "2026-09-10", "morning")
	require.NoError(t, err)
	assert.True(t, decision.OK)
	assert.Empty(t, decision.Reason)
}

func TestCheckAssignment_VacationDay(t *testing.T) {
	store := &fakeStore{
		employees: []db.Employee{{
			ID: "r1", Name: "Emil", Role: "rotating_cook",
			VacationDates: []string{"2026-09-10"},
		}},
	}

	decision, err := CheckAssignment(context.Background(), store, zap.NewNop(), "r1", "2026-09-10", "morning")
	require.NoError(t, err)
	assert.False(t, decision.OK)
	assert.Contains(t, decision.Reason, "vacation")
}

func TestCheckAssignment_SeesPersistedSameDayShift(t *testing.T) {
	store := &fakeStore{
		employees: []db.Employee{{ID: "r1", Name: "Emil", Role: "rotating_cook"}},
		assignments: []db.ShiftAssignment{
			{ID: "a1", Date: "2026-09-10", EmployeeID: "r1", ShiftType: "morning"},
		},
	}

	decision, err := CheckAssignment(context.Background(), store, zap.NewNop(), "r1", "2026-09-10", "afternoon")
	require.NoError(t, err)
	assert.False(t, decision.OK)
	assert.Contains(t, decision.Reason, "already has an assignment")
}

func TestCheckAssignment_UnknownEmployee(t *testing.T) {
	store := &fakeStore{}

	_, err := CheckAssignment(context.Background(), store, zap.NewNop(), "ghost", "2026-09-10", "morning")
	assert.Error(t, err)
}

func TestCheckAssignment_RejectsNonWorkedShiftTypes(t *testing.T) {
	store := &fakeStore{
		employees: []db.Employee{{ID: "r1", Name: "Emil", Role: "rotating_cook"}},
	}

	_, err := CheckAssignment(context.Background(), store, zap.NewNop(), "r1", "2026-09-10", "vacation")
	assert.ErrorContains(t, err, "morning or afternoon")

	_, err = CheckAssignment(context.Background(), store, zap.NewNop(), "r1", "2026-09-10", "night")
	assert.ErrorContains(t, err, "unknown shift type")

	_, err = CheckAssignment(context.Background(), store, zap.NewNop(), "r1", "10/09/2026", "morning")
	assert.ErrorContains(t, err, "failed to parse date")
}
