package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"spscan/domain/sharepoint"
	"spscan/infrastructure/spclient"
)

// MockSiteClient implements spclient.SiteClient for testing
type MockSiteClient struct {
	mock.Mock
}

func (m *MockSiteClient) Web(ctx context.Context) (*sharepoint.Web, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharepoint.Web), args.Error(1)
}

func (m *MockSiteClient) WebRoleAssignments(ctx context.Context) ([]*sharepoint.RoleAssignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sharepoint.RoleAssignment), args.Error(1)
}

func (m *MockSiteClient) SiteGroups(ctx context.Context) ([]*sharepoint.Group, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sharepoint.Group), args.Error(1)
}

func (m *MockSiteClient) NonHiddenLists(ctx context.Context) ([]*sharepoint.List, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sharepoint.List), args.Error(1)
}

func (m *MockSiteClient) ListItemPager(ctx context.Context, list *sharepoint.List, pageSize int) spclient.ItemPager {
	args := m.Called(ctx, list, pageSize)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(spclient.ItemPager)
}

func (m *MockSiteClient) HasUniquePermissions(ctx context.Context, item *sharepoint.Item) (bool, error) {
	args := m.Called(ctx, item)
	return args.Bool(0), args.Error(1)
}

func (m *MockSiteClient) ItemRoleAssignments(ctx context.Context, item *sharepoint.Item) ([]*sharepoint.RoleAssignment, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sharepoint.RoleAssignment), args.Error(1)
}

// MockItemPager implements spclient.ItemPager for testing
type MockItemPager struct {
	mock.Mock
}

func (m *MockItemPager) NextPage(ctx context.Context) ([]*sharepoint.Item, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*sharepoint.Item), args.Bool(1), args.Error(2)
}
