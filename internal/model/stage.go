package model

// Stage is one of the sequential production steps a job passes through.
// The order is strict: casting -> filing -> setting -> polishing.
type Stage string

const (
	StageCasting   Stage = "casting"
	StageFiling    Stage = "filing"
	StageSetting   Stage = "setting"
	StagePolishing Stage = "polishing"
)

// StageOrder is the production sequence. The first assignment of a job must
// be StageOrder[0]; every later assignment must be the stage immediately
// following the last completed one.
var StageOrder = []Stage{StageCasting, StageFiling, StageSetting, StagePolishing}

func (s Stage) Valid() bool {
	switch s {
	case StageCasting, StageFiling, StageSetting, StagePolishing:
		return true
	}
	return false
}

// RequiredRole returns the worker role allowed to work this stage.
func (s Stage) RequiredRole() Role {
	switch s {
	case StageCasting:
		return RoleCaster
	case StageFiling:
		return RoleFiler
	case StageSetting:
		return RoleSetter
	case StagePolishing:
		return RolePolisher
	}
	return ""
}

// Next returns the stage that follows s, or false when s is the final stage.
func (s Stage) Next() (Stage, bool) {
	for i, stage := range StageOrder {
		if stage == s && i+1 < len(StageOrder) {
			return StageOrder[i+1], true
		}
	}
	return "", false
}

// IsFinal reports whether completing this stage finishes the job.
func (s Stage) IsFinal() bool {
	return s == StagePolishing
}
