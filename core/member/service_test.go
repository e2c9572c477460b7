package member

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/tlwa/courseadmin/listview"
	"github.com/tlwa/courseadmin/restapi"
)

func setup(t *testing.T) (*Service, *url.Values) {
	var lastQuery url.Values
	e := echo.New()
	e.GET("/api/admin/users", func(c echo.Context) error {
		lastQuery = c.QueryParams()
		return c.JSON(http.StatusOK, UserPage{
			Rows:  []User{{ID: 1, FirstName: "Somchai", LastName: "S", Email: "s@test.th"}},
			Total: 55,
		})
	})
	e.GET("/api/admin/members", func(c echo.Context) error {
		lastQuery = c.QueryParams()
		return c.JSON(http.StatusOK, MemberPage{Total: 12})
	})
	e.PUT("/api/admin/users/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	client, err := restapi.NewClient(&restapi.Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	return NewService(client), &lastQuery
}

func Test_Service_Users(t *testing.T) {
	ctx := context.Background()
	svc, lastQuery := setup(t)

	paging := listview.NewPagination(10)
	paging.Page = 3
	page, err := svc.Users(ctx, QueryFilter{Search: "  som ", Tab: TabMember, Paging: paging})
	if err != nil {
		t.Fatalf("Users() failed: %v", err)
	}

	q := *lastQuery
	assert.Equal(t, "3", q.Get("page"))
	assert.Equal(t, "10", q.Get("pageSize"))
	assert.Equal(t, "som", q.Get("q"))
	assert.Equal(t, "member", q.Get("hasMember"))

	assert.Equal(t, 55, page.Total)
	if len(page.Rows) != 1 || page.Rows[0].Email != "s@test.th" {
		t.Errorf("Users() rows = %v", page.Rows)
	}
}

func Test_Service_Users_emptySearchOmitted(t *testing.T) {
	ctx := context.Background()
	svc, lastQuery := setup(t)

	if _, err := svc.Users(ctx, QueryFilter{Paging: listview.NewPagination(0)}); err != nil {
		t.Fatalf("Users() failed: %v", err)
	}
	q := *lastQuery
	if _, present := q["q"]; present {
		t.Error("an empty search must not be sent")
	}
	if _, present := q["hasMember"]; present {
		t.Error("an empty tab must not be sent")
	}
	assert.Equal(t, "20", q.Get("pageSize"))
}

func Test_Service_Members(t *testing.T) {
	svc, lastQuery := setup(t)

	page, err := svc.Members(context.Background(), QueryFilter{Search: "clinic", Paging: listview.NewPagination(20)})
	if err != nil {
		t.Fatalf("Members() failed: %v", err)
	}
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, "clinic", (*lastQuery).Get("q"))
}

func Test_UserInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      UserInput
		wantErr bool
	}{
		{name: "valid", in: UserInput{FirstName: "Somchai", LastName: "S", Email: "S@Test.TH"}},
		{name: "no first name", in: UserInput{LastName: "S", Email: "s@test.th"}, wantErr: true},
		{name: "bad email", in: UserInput{FirstName: "Somchai", LastName: "S", Email: "nope"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.in.Email != "s@test.th" {
				t.Errorf("email = %q, want lowered", tt.in.Email)
			}
		})
	}
}
