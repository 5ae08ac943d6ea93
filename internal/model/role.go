package model

// Role is the account tier. Each account carries exactly one role: the
// owner administers jobs and users, the four worker roles map one-to-one
// to the production stages they are allowed to work.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleCaster   Role = "caster"
	RoleFiler    Role = "filer"
	RoleSetter   Role = "setter"
	RolePolisher Role = "polisher"
)

// WorkerRoles lists the stage-bound roles, in production order.
var WorkerRoles = []Role{RoleCaster, RoleFiler, RoleSetter, RolePolisher}

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleCaster, RoleFiler, RoleSetter, RolePolisher:
		return true
	}
	return false
}

// IsWorker reports whether the role is one of the stage-bound worker roles.
func (r Role) IsWorker() bool {
	return r.Valid() && r != RoleOwner
}
