package spclient

import (
	"context"
	"encoding/json"
	"fmt"

	"spscan/domain/sharepoint"
	"spscan/logging"

	"github.com/koltyakov/gosip/api"
)

// SharePoint OData field selectors for consistent API queries
const (
	WebFields   = `Id,Title,Url`
	ListFields  = `Id,Title,Hidden,ItemCount,RootFolder/ServerRelativeUrl`
	ItemFields  = `Id,GUID,FileLeafRef,FileRef,Title`
	GroupFields = `Id,Title,OwnerTitle`

	RoleAssignmentFields = `
		RoleAssignments/Member/Id,
		RoleAssignments/Member/Title,
		RoleAssignments/Member/LoginName,
		RoleAssignments/Member/PrincipalType,
		RoleAssignments/Member/Email,
		RoleAssignments/RoleDefinitionBindings/Name
	`
	roleAssignmentExpand = `
		RoleAssignments,
		RoleAssignments/Member,
		RoleAssignments/RoleDefinitionBindings
	`
)

// GosipClient implements SiteClient on top of the Gosip REST API client.
type GosipClient struct {
	gosipAPI      *api.SP
	defaultConfig *api.RequestConfig
	cachedWebURL  string
	logger        *logging.Logger
}

// NewGosipClient wraps a Gosip API handle as a SiteClient.
func NewGosipClient(gosipAPI *api.SP) *GosipClient {
	return &GosipClient{
		gosipAPI:      gosipAPI,
		defaultConfig: &api.RequestConfig{},
		logger:        logging.Default().WithComponent("sharepoint_client"),
	}
}

// createRequestConfig creates a RequestConfig carrying the per-request context.
func (c *GosipClient) createRequestConfig(ctx context.Context) *api.RequestConfig {
	config := *c.defaultConfig
	config.Context = ctx
	return &config
}

// Web retrieves the root web of the connected site and caches its URL for
// constructing absolute item URLs.
func (c *GosipClient) Web(ctx context.Context) (*sharepoint.Web, error) {
	sp := c.gosipAPI.Conf(c.createRequestConfig(ctx))
	res, err := sp.Web().Select(WebFields).Get()
	if err != nil {
		return nil, fmt.Errorf("get web: %w", err)
	}

	var webData struct {
		Id    string
		Title string
		Url   string
	}
	if err := json.Unmarshal(res.Normalized(), &webData); err != nil {
		return nil, fmt.Errorf("decode web: %w", err)
	}

	c.cachedWebURL = webData.Url

	return &sharepoint.Web{
		ID:    webData.Id,
		URL:   webData.Url,
		Title: webData.Title,
	}, nil
}

// WebRoleAssignments retrieves role assignments at web scope.
func (c *GosipClient) WebRoleAssignments(ctx context.Context) ([]*sharepoint.RoleAssignment, error) {
	sp := c.gosipAPI.Conf(c.createRequestConfig(ctx))
	res, err := sp.Web().
		Select(RoleAssignmentFields).
		Expand(roleAssignmentExpand).
		Get()
	if err != nil {
		return nil, fmt.Errorf("get web role assignments: %w", err)
	}
	return parseRoleAssignments(res.Normalized())
}

// SiteGroups retrieves the permission groups of the site.
func (c *GosipClient) SiteGroups(ctx context.Context) ([]*sharepoint.Group, error) {
	sp := c.gosipAPI.Conf(c.createRequestConfig(ctx))
	res, err := sp.Web().SiteGroups().Select(GroupFields).Get()
	if err != nil {
		return nil, fmt.Errorf("get site groups: %w", err)
	}

	var groupsData []struct {
		Id         int64
		Title      string
		OwnerTitle string
	}
	if err := json.Unmarshal(res.Normalized(), &groupsData); err != nil {
		return nil, fmt.Errorf("decode site groups: %w", err)
	}

	groups := make([]*sharepoint.Group, 0, len(groupsData))
	for _, g := range groupsData {
		groups = append(groups, &sharepoint.Group{
			ID:         g.Id,
			Title:      g.Title,
			OwnerTitle: g.OwnerTitle,
		})
	}
	return groups, nil
}

// NonHiddenLists retrieves all lists of the web that are not hidden from
// normal interfaces.
func (c *GosipClient) NonHiddenLists(ctx context.Context) ([]*sharepoint.List, error) {
	sp := c.gosipAPI.Conf(c.createRequestConfig(ctx))
	res, err := sp.Web().Lists().Select(ListFields).Expand(`RootFolder`).Get()
	if err != nil {
		return nil, fmt.Errorf("get lists: %w", err)
	}

	var listsData []struct {
		Id         string
		Title      string
		Hidden     bool
		ItemCount  int
		RootFolder struct{ ServerRelativeUrl string }
	}
	if err := json.Unmarshal(res.Normalized(), &listsData); err != nil {
		return nil, fmt.Errorf("decode lists: %w", err)
	}

	lists := make([]*sharepoint.List, 0, len(listsData))
	for _, l := range listsData {
		if l.Hidden {
			continue
		}
		lists = append(lists, &sharepoint.List{
			ID:        l.Id,
			Title:     l.Title,
			URL:       joinURL(c.cachedWebURL, l.RootFolder.ServerRelativeUrl),
			ItemCount: l.ItemCount,
		})
	}
	return lists, nil
}

// ListItemPager creates a cursor-based pager over a list's items using
// Gosip's native pagination.
func (c *GosipClient) ListItemPager(ctx context.Context, list *sharepoint.List, pageSize int) ItemPager {
	sp := c.gosipAPI.Conf(c.createRequestConfig(ctx))
	query := sp.Web().Lists().GetByID(list.ID).Items().
		Select(ItemFields).
		Top(pageSize)

	return &gosipItemPager{
		client: c,
		listID: list.ID,
		query:  query,
	}
}

// HasUniquePermissions checks whether an item has unique role assignments.
func (c *GosipClient) HasUniquePermissions(ctx context.Context, item *sharepoint.Item) (bool, error) {
	sp := c.gosipAPI.Conf(c.createRequestConfig(ctx))
	return sp.Web().Lists().GetByID(item.ListID).Items().GetByID(item.ID).Roles().HasUniqueAssignments()
}

// ItemRoleAssignments retrieves role assignments for an item.
func (c *GosipClient) ItemRoleAssignments(ctx context.Context, item *sharepoint.Item) ([]*sharepoint.RoleAssignment, error) {
	sp := c.gosipAPI.Conf(c.createRequestConfig(ctx))
	res, err := sp.Web().Lists().GetByID(item.ListID).Items().GetByID(item.ID).
		Select(RoleAssignmentFields).
		Expand(roleAssignmentExpand).
		Get()
	if err != nil {
		return nil, fmt.Errorf("get item role assignments: %w", err)
	}
	return parseRoleAssignments(res.Normalized())
}

// gosipItemPager adapts Gosip's GetPaged/GetNextPage continuation to the
// ItemPager contract. It is single-use: after exhaustion or an error it
// keeps reporting no further pages.
type gosipItemPager struct {
	client  *GosipClient
	listID  string
	query   *api.Items
	page    *api.ItemsPage
	started bool
	done    bool
}

func (p *gosipItemPager) NextPage(ctx context.Context) ([]*sharepoint.Item, bool, error) {
	if p.done {
		return nil, false, nil
	}
	if ctx.Err() != nil {
		p.done = true
		return nil, false, fmt.Errorf("context canceled during pagination: %w", ctx.Err())
	}

	if !p.started {
		p.started = true
		page, err := p.query.GetPaged()
		if err != nil {
			p.done = true
			return nil, false, fmt.Errorf("get first page: %w", err)
		}
		if page == nil { // empty list
			p.done = true
			return nil, false, nil
		}
		p.page = page
	} else {
		if p.page == nil || !p.page.HasNextPage() {
			p.done = true
			return nil, false, nil
		}
		next, err := p.page.GetNextPage()
		if err != nil {
			p.done = true
			return nil, false, fmt.Errorf("get next page: %w", err)
		}
		p.page = next
	}

	items := p.convertPage()
	more := p.page.HasNextPage()
	if !more {
		p.done = true
	}
	return items, more, nil
}

// convertPage decodes the current page's raw item responses into domain items.
// Items that fail to decode are logged and skipped.
func (p *gosipItemPager) convertPage() []*sharepoint.Item {
	if p.page == nil || p.page.Items == nil {
		return nil
	}

	raw := p.page.Items.Data()
	items := make([]*sharepoint.Item, 0, len(raw))
	for _, ir := range raw {
		item, err := p.client.convertItemResponse(ir, p.listID)
		if err != nil {
			p.client.logger.Warn("Failed to decode list item response",
				"list_id", p.listID,
				"error", err.Error())
			continue
		}
		items = append(items, item)
	}
	return items
}

// convertItemResponse decodes one Gosip item response into a domain item.
func (c *GosipClient) convertItemResponse(itemResp api.ItemResp, listID string) (*sharepoint.Item, error) {
	var it struct {
		Id          int    `json:"Id"`
		IDAlt       int    `json:"ID"` // sometimes present instead of "Id"
		GUID        string `json:"GUID"`
		FileLeafRef string `json:"FileLeafRef"`
		FileRef     string `json:"FileRef"`
		Title       string `json:"Title"`
	}
	if err := json.Unmarshal(itemResp.Normalized(), &it); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	if it.Id == 0 && it.IDAlt != 0 {
		it.Id = it.IDAlt
	}

	name := firstNonEmpty(it.FileLeafRef, it.Title)

	return &sharepoint.Item{
		GUID:   it.GUID,
		ListID: listID,
		ID:     it.Id,
		URL:    joinURL(c.cachedWebURL, it.FileRef),
		Name:   name,
	}, nil
}

// parseRoleAssignments converts SharePoint role assignment JSON to the
// read-only view the engine consumes: one entry per assignment, with the
// assignee and the names of all permission levels bound to it. Handles both
// wrapped and direct JSON response formats.
func parseRoleAssignments(data []byte) ([]*sharepoint.RoleAssignment, error) {
	type rawAssignment struct {
		Member *struct {
			Id            int
			Title         string
			LoginName     string
			PrincipalType int
			Email         string
		}
		RoleDefinitionBindings []*struct {
			Name string
		}
	}

	var payload struct {
		RoleAssignments []*rawAssignment
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		// Fallback: array directly
		var rs []*rawAssignment
		if err2 := json.Unmarshal(data, &rs); err2 != nil {
			return nil, fmt.Errorf("decode role assignments: %v / %v", err, err2)
		}
		payload.RoleAssignments = rs
	}

	assignments := make([]*sharepoint.RoleAssignment, 0, len(payload.RoleAssignments))
	for _, ra := range payload.RoleAssignments {
		if ra == nil || ra.Member == nil {
			continue
		}

		roles := make([]string, 0, len(ra.RoleDefinitionBindings))
		for _, rd := range ra.RoleDefinitionBindings {
			if rd == nil {
				continue
			}
			roles = append(roles, rd.Name)
		}

		assignments = append(assignments, &sharepoint.RoleAssignment{
			Member: sharepoint.Principal{
				ID:        int64(ra.Member.Id),
				Kind:      sharepoint.KindFromPrincipalType(ra.Member.PrincipalType),
				Title:     ra.Member.Title,
				LoginName: ra.Member.LoginName,
				Email:     ra.Member.Email,
			},
			Roles: roles,
		})
	}

	return assignments, nil
}
