package sharepoint

// PrincipalKind classifies the assignee of a role assignment.
type PrincipalKind int

const (
	PrincipalKindOther PrincipalKind = iota
	PrincipalKindUser
	PrincipalKindGroup
)

func (k PrincipalKind) String() string {
	switch k {
	case PrincipalKindUser:
		return "user"
	case PrincipalKindGroup:
		return "group"
	default:
		return "other"
	}
}

// Principal represents a user, group, or other security principal
type Principal struct {
	ID        int64
	Kind      PrincipalKind
	Title     string
	LoginName string
	Email     string
}

// IsUser returns true if this is an individual user principal
func (p *Principal) IsUser() bool {
	return p.Kind == PrincipalKindUser
}

// GetDisplayName returns the best display name for the principal
func (p *Principal) GetDisplayName() string {
	if p.Title != "" {
		return p.Title
	}
	if p.LoginName != "" {
		return p.LoginName
	}
	return p.Email
}

// RoleAssignment is a read-only view of one permission assignment on a scoped
// object: the assignee plus the permission-level names bound to it.
type RoleAssignment struct {
	Member Principal
	Roles  []string
}

// Common SharePoint principal type codes (PrincipalType flags)
const (
	PrincipalTypeUser            = 1
	PrincipalTypeDistribution    = 2
	PrincipalTypeSecurity        = 4
	PrincipalTypeSharePointGroup = 8
)
