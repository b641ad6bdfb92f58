package spclient

import (
	"context"

	"spscan/domain/sharepoint"
)

// SiteClient abstracts the content-store operations the scan engine consumes.
// Each method may fail independently; the engine applies its own per-category
// recovery policy and never aborts the whole scan for a local fault.
type SiteClient interface {
	// Web returns the root web of the connected site. It doubles as the
	// session check: a failure here is a connectivity fault and is fatal.
	Web(ctx context.Context) (*sharepoint.Web, error)

	// WebRoleAssignments returns the role assignments at web scope.
	WebRoleAssignments(ctx context.Context) ([]*sharepoint.RoleAssignment, error)

	// SiteGroups returns the permission groups of the site.
	SiteGroups(ctx context.Context) ([]*sharepoint.Group, error)

	// NonHiddenLists returns all lists not hidden from normal interfaces.
	NonHiddenLists(ctx context.Context) ([]*sharepoint.List, error)

	// ListItemPager starts cursor-based enumeration of a list's items.
	// Traversal order follows the store's native enumeration order.
	ListItemPager(ctx context.Context, list *sharepoint.List, pageSize int) ItemPager

	// HasUniquePermissions reports whether the item has broken permission
	// inheritance from its parent.
	HasUniquePermissions(ctx context.Context, item *sharepoint.Item) (bool, error)

	// ItemRoleAssignments returns the role assignments of a unique-permission item.
	ItemRoleAssignments(ctx context.Context, item *sharepoint.Item) ([]*sharepoint.RoleAssignment, error)
}

// ItemPager is a pull-based page iterator over a list's items. NextPage
// returns the next page, whether more pages remain, and any retrieval error.
// After an error or after the final page it keeps returning (nil, false, nil).
type ItemPager interface {
	NextPage(ctx context.Context) (items []*sharepoint.Item, more bool, err error)
}
