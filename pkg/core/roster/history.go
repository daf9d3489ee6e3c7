package roster

import "github.com/marlowekitchens/kitchen-roster/pkg/core/calendar"

// HistoryIndex is a run-scoped, append-only index over shift
// assignments, holding two views of the same records: by date and by
// employee. It is seeded from persisted history so constraints can look
// backward across the month boundary, and the generator adds new
// assignments to it as they are committed. It carries no validation
// logic of its own.
//
// Each run owns its own instance; there is no sharing across
// concurrent runs and therefore no locking.
type HistoryIndex struct {
	byDate     map[calendar.Date][]Assignment
	byEmployee map[string][]Assignment
}

// NewHistoryIndex builds an index seeded with prior assignments. The
// seed is replayed through Add so both views stay consistent.
func NewHistoryIndex(seed []Assignment) *HistoryIndex {
	ix := &HistoryIndex{
		byDate:     make(map[calendar.Date][]Assignment),
		byEmployee: make(map[string][]Assignment),
	}
	for _, a := range seed {
		ix.Add(a)
	}
	return ix
}

// Add appends an assignment to both views.
func (ix *HistoryIndex) Add(a Assignment) {
	ix.byDate[a.Date] = append(ix.byDate[a.Date], a)
	ix.byEmployee[a.EmployeeID] = append(ix.byEmployee[a.EmployeeID], a)
}

// On returns the assignments on the given date.
func (ix *HistoryIndex) On(d calendar.Date) []Assignment {
	return ix.byDate[d]
}

// Of returns all assignments of the given employee, in no particular
// chronological order.
func (ix *HistoryIndex) Of(employeeID string) []Assignment {
	return ix.byEmployee[employeeID]
}
