package sharepoint

import "fmt"

// KindFromPrincipalType maps a SharePoint PrincipalType code to a PrincipalKind.
// Flags: User=1, DistributionList=2, SecurityGroup=4, SharePointGroup=8.
func KindFromPrincipalType(t int) PrincipalKind {
	switch t {
	case PrincipalTypeUser:
		return PrincipalKindUser
	case PrincipalTypeDistribution, PrincipalTypeSecurity, PrincipalTypeSharePointGroup:
		return PrincipalKindGroup
	default:
		return PrincipalKindOther
	}
}

// PrincipalTypeName returns a readable name for a SharePoint principal type code.
func PrincipalTypeName(t int) string {
	switch t {
	case PrincipalTypeUser:
		return "User"
	case PrincipalTypeDistribution:
		return "DistributionList"
	case PrincipalTypeSecurity:
		return "SecurityGroup"
	case PrincipalTypeSharePointGroup:
		return "SharePointGroup"
	default:
		return fmt.Sprintf("%d", t)
	}
}
