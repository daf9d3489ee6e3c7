package roster

// ScoreRole ranks how well a role fits a shift type. Higher sorts
// first. The score only orders candidates, it never excludes anyone;
// rejection is the constraint validator's job. Ties keep the fairness
// ordering applied before this scoring pass.
func ScoreRole(role Role, shift ShiftType) int {
	switch shift {
	case ShiftMorning:
		switch role {
		case RoleMorningCook:
			return 2
		case RoleRotatingCook:
			return 1
		default:
			return 0
		}
	case ShiftAfternoon:
		switch role {
		case RoleRotatingCook:
			return 2
		case RoleHeadChef:
			return 1
		default:
			return -1
		}
	default:
		return 0
	}
}
