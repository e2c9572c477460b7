package member

import (
	"context"
	"fmt"

	"github.com/tlwa/courseadmin/core"
	"github.com/tlwa/courseadmin/listview"
	"github.com/tlwa/courseadmin/restapi"
)

// Tabs of the users/members screen; sent as the hasMember query parameter.
const (
	TabAll    = "all"
	TabMember = "member"
	TabNormal = "normal"
)

type (
	// QueryFilter narrows the paginated admin listings.
	QueryFilter struct {
		Search string
		Tab    string // users only
		Paging listview.Pagination
	}

	Service struct {
		c *restapi.Client
	}
)

func NewService(c *restapi.Client) *Service {
	return &Service{c: c}
}

// Users lists accounts page by page; the backend reports the total.
func (svc *Service) Users(ctx context.Context, qf QueryFilter) (UserPage, error) {
	query := qf.Paging.Query()
	if q := core.CleanString(qf.Search); q != "" {
		query.Set("q", q)
	}
	if qf.Tab != "" {
		query.Set("hasMember", qf.Tab)
	}

	var page UserPage
	if err := svc.c.Get(ctx, "/api/admin/users", query, &page); err != nil {
		return UserPage{}, err
	}
	return page, nil
}

func (svc *Service) Members(ctx context.Context, qf QueryFilter) (MemberPage, error) {
	query := qf.Paging.Query()
	if q := core.CleanString(qf.Search); q != "" {
		query.Set("q", q)
	}

	var page MemberPage
	if err := svc.c.Get(ctx, "/api/admin/members", query, &page); err != nil {
		return MemberPage{}, err
	}
	return page, nil
}

func (svc *Service) GetUser(ctx context.Context, id int) (User, error) {
	var usr User
	if err := svc.c.Get(ctx, fmt.Sprintf("/api/admin/users/%d", id), nil, &usr); err != nil {
		return User{}, err
	}
	return usr, nil
}

func (svc *Service) UpdateUser(ctx context.Context, id int, ui UserInput) error {
	if err := ui.Validate(); err != nil {
		return err
	}
	return svc.c.Put(ctx, fmt.Sprintf("/api/admin/users/%d", id), ui, nil)
}

func (svc *Service) DeleteUser(ctx context.Context, id int) error {
	return svc.c.Delete(ctx, fmt.Sprintf("/api/admin/users/%d", id))
}

func (svc *Service) GetMember(ctx context.Context, id int) (Member, error) {
	var mbr Member
	if err := svc.c.Get(ctx, fmt.Sprintf("/api/admin/members/%d", id), nil, &mbr); err != nil {
		return Member{}, err
	}
	return mbr, nil
}

func (svc *Service) UpdateMember(ctx context.Context, id int, mi MemberInput) error {
	if err := mi.Validate(); err != nil {
		return err
	}
	return svc.c.Put(ctx, fmt.Sprintf("/api/admin/members/%d", id), mi, nil)
}

func (svc *Service) DeleteMember(ctx context.Context, id int) error {
	return svc.c.Delete(ctx, fmt.Sprintf("/api/admin/members/%d", id))
}
